// Package presets provides built-in engine templates and bang parsing
package presets

import (
	"sort"
	"strings"

	"github.com/apimgr/websearch/src/engine"
)

// Placeholder is the pattern every preset URL uses
const Placeholder = "{query}"

// Preset is a built-in engine template
type Preset struct {
	Shortcut  string   `json:"shortcut" yaml:"shortcut"`
	Name      string   `json:"name" yaml:"name"`
	URL       string   `json:"url" yaml:"url"`
	Category  string   `json:"category" yaml:"category"`
	Separator string   `json:"separator,omitempty" yaml:"separator,omitempty"`
	Aliases   []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

var builtins = []Preset{
	{Shortcut: "g", Name: "Google", URL: "https://www.google.com/search?q={query}", Category: "general", Aliases: []string{"google"}},
	{Shortcut: "ddg", Name: "DuckDuckGo", URL: "https://duckduckgo.com/?q={query}", Category: "general", Aliases: []string{"duckduckgo"}},
	{Shortcut: "b", Name: "Bing", URL: "https://www.bing.com/search?q={query}", Category: "general", Aliases: []string{"bing"}},
	{Shortcut: "sp", Name: "Startpage", URL: "https://www.startpage.com/do/search?q={query}", Category: "general", Aliases: []string{"startpage"}},
	{Shortcut: "w", Name: "Wikipedia", URL: "https://en.wikipedia.org/wiki/{query}", Category: "reference", Separator: "_", Aliases: []string{"wiki", "wikipedia"}},
	{Shortcut: "wt", Name: "Wiktionary", URL: "https://en.wiktionary.org/wiki/{query}", Category: "reference", Separator: "_"},
	{Shortcut: "gh", Name: "GitHub", URL: "https://github.com/search?q={query}", Category: "code", Aliases: []string{"github"}},
	{Shortcut: "go", Name: "Go Packages", URL: "https://pkg.go.dev/search?q={query}", Category: "code", Aliases: []string{"godoc"}},
	{Shortcut: "so", Name: "Stack Overflow", URL: "https://stackoverflow.com/search?q={query}", Category: "code", Aliases: []string{"stackoverflow"}},
	{Shortcut: "mdn", Name: "MDN Web Docs", URL: "https://developer.mozilla.org/en-US/search?q={query}", Category: "code"},
	{Shortcut: "crates", Name: "crates.io", URL: "https://crates.io/search?q={query}", Category: "code"},
	{Shortcut: "yt", Name: "YouTube", URL: "https://www.youtube.com/results?search_query={query}", Category: "media", Aliases: []string{"youtube"}},
	{Shortcut: "r", Name: "Reddit", URL: "https://www.reddit.com/search/?q={query}", Category: "social", Aliases: []string{"reddit"}},
	{Shortcut: "osm", Name: "OpenStreetMap", URL: "https://www.openstreetmap.org/search?query={query}", Category: "maps"},
	{Shortcut: "aw", Name: "ArchWiki", URL: "https://wiki.archlinux.org/index.php?search={query}", Category: "reference", Aliases: []string{"archwiki"}},
}

var index = func() map[string]Preset {
	m := make(map[string]Preset, len(builtins))
	for _, p := range builtins {
		m[p.Shortcut] = p
		for _, alias := range p.Aliases {
			m[alias] = p
		}
	}
	return m
}()

// All returns every preset sorted by shortcut
func All() []Preset {
	out := make([]Preset, len(builtins))
	copy(out, builtins)
	sort.Slice(out, func(i, j int) bool { return out[i].Shortcut < out[j].Shortcut })
	return out
}

// Lookup finds a preset by shortcut or alias, ignoring case
func Lookup(shortcut string) (Preset, bool) {
	p, ok := index[strings.ToLower(shortcut)]
	return p, ok
}

// ByCategory returns the presets in category, sorted by shortcut
func ByCategory(category string) []Preset {
	var out []Preset
	for _, p := range All() {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct categories in sorted order
func Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range builtins {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Engine turns the preset into an engine named name. Whitespace in the term
// collapses to the preset separator, "+" unless set.
func (p Preset) Engine(name string) engine.Engine {
	if name == "" {
		name = p.Shortcut
	}
	sep := p.Separator
	if sep == "" {
		sep = "+"
	}
	return engine.New(name, p.URL, Placeholder, `\s+`, sep)
}

// ParseBang splits a term carrying a bang, either "!name rest" or
// "rest !name". The name is returned as typed.
func ParseBang(term string) (name, rest string, ok bool) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", "", false
	}

	if strings.HasPrefix(term, "!") {
		parts := strings.SplitN(term[1:], " ", 2)
		if parts[0] == "" {
			return "", "", false
		}
		if len(parts) > 1 {
			rest = strings.TrimSpace(parts[1])
		}
		return parts[0], rest, true
	}

	if idx := strings.LastIndex(term, " !"); idx > 0 {
		name = term[idx+2:]
		if name == "" || strings.Contains(name, " ") {
			return "", "", false
		}
		return name, strings.TrimSpace(term[:idx]), true
	}
	return "", "", false
}
