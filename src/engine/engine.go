// Package engine defines a configured search engine and resolves search
// terms into URLs through its template.
package engine

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// ErrPattern is returned when an engine's regex or placeholder cannot be
// compiled at resolution time.
var ErrPattern = errors.New("invalid engine pattern")

// Engine represents one configured search provider
type Engine struct {
	ID          uuid.UUID `yaml:"uuid" json:"uuid"`
	Name        string    `yaml:"name" json:"name"`
	URLPattern  string    `yaml:"url_pattern" json:"url_pattern"`
	Pattern     string    `yaml:"pattern" json:"pattern"`
	Regex       string    `yaml:"regex" json:"regex"`
	Replacement string    `yaml:"replacement" json:"replacement"`
}

// New creates an engine with a freshly generated identifier
func New(name, urlPattern, pattern, regex, replacement string) Engine {
	return Engine{
		ID:          uuid.New(),
		Name:        name,
		URLPattern:  urlPattern,
		Pattern:     pattern,
		Regex:       regex,
		Replacement: replacement,
	}
}

// URL resolves term into the final URL for this engine.
//
// The term is first normalized by replacing every match of Regex with
// Replacement (capture groups may be referenced as $1 or ${name}). Every
// literal occurrence of Pattern inside URLPattern is then replaced with the
// normalized term.
func (e Engine) URL(term string) (string, error) {
	re, err := regexp.Compile(e.Regex)
	if err != nil {
		return "", fmt.Errorf("%w: regex %q: %v", ErrPattern, e.Regex, err)
	}
	treated := Treat(re, e.Replacement, term)

	placeholder, err := regexp.Compile(regexp.QuoteMeta(e.Pattern))
	if err != nil {
		return "", fmt.Errorf("%w: pattern %q: %v", ErrPattern, e.Pattern, err)
	}

	// Literal so a "$" produced by the first stage is not expanded again
	return placeholder.ReplaceAllLiteralString(e.URLPattern, treated), nil
}

// Treat applies the normalization stage of resolution and returns the
// treated string.
func Treat(re *regexp.Regexp, replacement, term string) string {
	return re.ReplaceAllString(term, replacement)
}

// Validate checks that both expressions used by URL compile
func (e Engine) Validate() error {
	if _, err := regexp.Compile(e.Regex); err != nil {
		return fmt.Errorf("%w: regex %q: %v", ErrPattern, e.Regex, err)
	}
	if _, err := regexp.Compile(regexp.QuoteMeta(e.Pattern)); err != nil {
		return fmt.Errorf("%w: pattern %q: %v", ErrPattern, e.Pattern, err)
	}
	return nil
}

// String returns the engine name
func (e Engine) String() string {
	return e.Name
}
