package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apimgr/websearch/src/catalog"
	"github.com/apimgr/websearch/src/engine"
	"github.com/apimgr/websearch/src/presets"
	"github.com/apimgr/websearch/src/tui"
)

// search is one term paired with the engine that resolves it
type search struct {
	engine engine.Engine
	term   string
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <term...>",
	Short: "Print the search URL for each term without opening it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		searches, err := planSearches(c, args)
		if err != nil {
			return err
		}

		for _, s := range searches {
			url, err := s.engine.URL(s.term)
			if err != nil {
				return fmt.Errorf("unable to generate URL for %q: %w", s.term, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
		}
		return nil
	},
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose an engine and enter a term interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		if c.IsEmpty() {
			return fmt.Errorf("cannot pick an engine: %w", catalog.ErrEmptyCatalog)
		}

		preselect := engineName
		if preselect == "" {
			preselect = c.DefaultName()
		}

		e, term, err := runPicker(cmd.InOrStdin(), cmd.OutOrStdout(), c.Engines(), preselect)
		if errors.Is(err, tui.ErrCancelled) {
			rt.logger.Info("picker cancelled")
			return nil
		}
		if err != nil {
			return err
		}
		return openSearches(cmd, []search{{engine: e, term: term}})
	},
}

func runSearch(cmd *cobra.Command, args []string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}

	terms := args
	if len(terms) == 0 {
		term, err := readTerm(cmd.Context(), rt.env, cmd.InOrStdin(), rt.logger)
		if err != nil {
			rt.logger.Warn("no search term given", "error", err)
			return fmt.Errorf("no search term given and none could be read: %w", err)
		}
		terms = []string{term}
	}

	searches, err := planSearches(c, terms)
	if err != nil {
		return err
	}
	return openSearches(cmd, searches)
}

// planSearches pairs every term with its engine. A term carrying a bang
// ("!wiki turing" or "turing !wiki") naming a configured engine uses that
// engine; every other term uses selectEngine.
func planSearches(c *catalog.Catalog, terms []string) ([]search, error) {
	var fallback *engine.Engine
	out := make([]search, 0, len(terms))

	for _, term := range terms {
		if name, rest, ok := presets.ParseBang(term); ok {
			if e, err := c.WhereNameFold(name); err == nil {
				rt.logger.Info("bang selected engine", "bang", name, "engine", e.Name)
				out = append(out, search{engine: e, term: rest})
				continue
			}
		}

		if fallback == nil {
			e, err := selectEngine(c, engineName)
			if err != nil {
				return nil, err
			}
			fallback = &e
		}
		out = append(out, search{engine: *fallback, term: term})
	}
	return out, nil
}

// selectEngine picks the named engine, falling back to the default when the
// name is empty or unknown.
func selectEngine(c *catalog.Catalog, name string) (engine.Engine, error) {
	if name != "" {
		e, err := c.WhereName(name)
		if err == nil {
			rt.logger.Info("engine found", "engine", name)
			return e, nil
		}
		rt.logger.Warn("engine not found, falling back to default", "engine", name)
		if d, ok := c.Default(); ok {
			return d, nil
		}
		return engine.Engine{}, fmt.Errorf("no engine named %q and no default engine defined", name)
	}

	if d, ok := c.Default(); ok {
		rt.logger.Info("using default engine", "engine", d.Name)
		return d, nil
	}
	if dangling := c.DefaultName(); dangling != "" {
		return engine.Engine{}, fmt.Errorf("default engine %q no longer exists, specify one with --engine", dangling)
	}
	return engine.Engine{}, errors.New("no search engine specified and no default engine defined")
}

// openSearches resolves and opens every search. A failing search is reported
// and the remaining ones are still processed.
func openSearches(cmd *cobra.Command, searches []search) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	launchBrowser := !printOnly && rt.env.GetMode().CanLaunchBrowser()
	if !printOnly && !launchBrowser {
		rt.logger.Warn("no graphical display, printing URLs instead", "mode", rt.env.GetMode().String())
	}

	failed := 0
	for _, s := range searches {
		url, err := s.engine.URL(s.term)
		if err != nil {
			rt.logger.Error("unable to generate URL", "engine", s.engine.Name, "term", s.term, "error", err)
			fmt.Fprintf(errOut, "Error: unable to generate URL for %q: %v\n", s.term, err)
			failed++
			continue
		}

		if !launchBrowser {
			if useColor() {
				fmt.Fprintln(out, tui.URLStyle(url))
			} else {
				fmt.Fprintln(out, url)
			}
			continue
		}

		if err := rt.opener.Browser(cmd.Context(), url); err != nil {
			rt.logger.Error("unable to open browser", "url", url, "error", err)
			fmt.Fprintf(errOut, "Error: unable to open %s: %v\n", url, err)
			failed++
			continue
		}
		rt.logger.Info("browser opened", "engine", s.engine.Name, "url", url)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d searches failed", failed, len(searches))
	}
	return nil
}
