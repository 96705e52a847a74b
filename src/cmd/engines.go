package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/apimgr/websearch/src/catalog"
	"github.com/apimgr/websearch/src/engine"
	"github.com/apimgr/websearch/src/presets"
	"github.com/apimgr/websearch/src/tui"
)

var (
	addForce       bool
	addInteractive bool
	addAsDefault   bool
	addPreset      string

	removeByID    bool
	removeByIndex bool

	showAll  bool
	showByID bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the configured search engines",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat("plain")
		if err != nil {
			return err
		}
		c, err := loadCatalog()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch format {
		case "json":
			return writeJSON(out, c.Names())
		case "yaml":
			return writeYAML(out, c.Names())
		case "table":
			names, urls := c.Names(), c.URLPatterns()
			patterns, regexes, replacements := c.Patterns(), c.Regexes(), c.Replacements()

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tURL PATTERN\tPATTERN\tREGEX\tREPLACEMENT\tDEFAULT")
			for i, name := range names {
				mark := ""
				if name == c.DefaultName() {
					mark = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", name, urls[i], patterns[i], regexes[i], replacements[i], mark)
			}
			return w.Flush()
		default:
			for _, name := range c.Names() {
				if useColor() {
					name = tui.NameStyle(name)
				}
				fmt.Fprintf(out, "- %s\n", name)
			}
		}
		return nil
	},
}

var defaultCmd = &cobra.Command{
	Use:   "default [name]",
	Short: "Show or set the default search engine",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			name := args[0]
			if err := c.SetDefault(name); err != nil {
				rt.logger.Warn("cannot set default engine", "engine", name, "error", err)
				return fmt.Errorf("cannot set default engine %q: %w", name, err)
			}
			if err := saveCatalog(c); err != nil {
				return err
			}
			rt.logger.Info("default engine set", "engine", name)
			fmt.Fprintf(cmd.OutOrStdout(), "Default engine set to %s\n", name)
			return nil
		}

		if e, ok := c.Default(); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", e.Name)
			return nil
		}
		if dangling := c.DefaultName(); dangling != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Default engine %q no longer exists!\n", dangling)
			return nil
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "No default engine defined!")
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <name> <url_pattern> <pattern> <regex> <replacement>",
	Short: "Add a search engine",
	Long: `Add a search engine to the engines file.

The URL pattern contains the pattern as a placeholder. Before substitution
every match of regex in the term is replaced by replacement; ${1} refers to
capture groups.

Examples:
  ` + binaryName + ` add google 'https://www.google.com/search?q={q}' '{q}' '\s+' '+'
  ` + binaryName + ` add --interactive
  ` + binaryName + ` add --preset w wiki`,
	Args: cobra.MaximumNArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}

		var e engine.Engine
		switch {
		case addPreset != "":
			p, ok := presets.Lookup(addPreset)
			if !ok {
				return fmt.Errorf("unknown preset %q, see '%s presets'", addPreset, binaryName)
			}
			if len(args) > 1 {
				return fmt.Errorf("add --preset takes at most a name (got %d arguments)", len(args))
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			e = p.Engine(name)
		case addInteractive:
			e, err = runAddForm(cmd.InOrStdin(), cmd.OutOrStdout(), args...)
			if errors.Is(err, tui.ErrCancelled) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled")
				return nil
			}
			if err != nil {
				return err
			}
		default:
			if len(args) != 5 {
				return fmt.Errorf("add needs name, url_pattern, pattern, regex and replacement (got %d), or --interactive", len(args))
			}
			e = engine.New(args[0], args[1], args[2], args[3], args[4])
		}

		if err := e.Validate(); err != nil {
			return err
		}
		if !addForce && c.Contains(e.Name) {
			rt.logger.Warn("engine already exists", "engine", e.Name)
			return fmt.Errorf("the engines file already contains an engine named %s (use --force to add it anyway)", e.Name)
		}

		c.Push(e)
		if addAsDefault {
			if err := c.SetDefault(e.Name); err != nil {
				return err
			}
		}
		if err := saveCatalog(c); err != nil {
			return err
		}

		rt.logger.Info("engine added", "engine", e.Name, "uuid", e.ID.String())
		fmt.Fprintf(cmd.OutOrStdout(), "Added engine %s (%s)\n", e.Name, e.ID)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove search engines by name, uuid or position",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}

		value := args[0]
		removed := 0
		switch {
		case removeByID:
			id, perr := uuid.Parse(value)
			if perr != nil {
				return fmt.Errorf("%q is not a valid uuid: %w", value, perr)
			}
			removed, err = c.RemoveWhereID(id)
		case removeByIndex:
			index, perr := strconv.Atoi(value)
			if perr != nil {
				return fmt.Errorf("%q is not a valid index: %w", value, perr)
			}
			err = c.RemoveAt(index)
			if err == nil {
				removed = 1
			}
		default:
			removed, err = c.RemoveWhereName(value)
		}
		if err != nil {
			rt.logger.Error("failed to remove engine", "value", value, "error", err)
			return fmt.Errorf("failed to remove %s from the engines list: %w", value, err)
		}

		if err := saveCatalog(c); err != nil {
			return err
		}

		rt.logger.Info("engines removed", "value", value, "count", removed)
		if removed == 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "No engine matched %s\n", value)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d engine(s)\n", removed)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show the full definition of search engines",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !showAll && len(args) == 0 {
			return errors.New("specify an engine name or use --all")
		}
		format, err := outputFormat("yaml")
		if err != nil {
			return err
		}
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		if c.IsEmpty() {
			return fmt.Errorf("nothing to show: %w", catalog.ErrEmptyCatalog)
		}

		if showAll {
			return writeEngines(cmd.OutOrStdout(), format, c.Engines(), true)
		}

		var e engine.Engine
		if showByID {
			id, perr := uuid.Parse(args[0])
			if perr != nil {
				return fmt.Errorf("%q is not a valid uuid: %w", args[0], perr)
			}
			e, err = c.WhereID(id)
		} else {
			e, err = c.WhereName(args[0])
		}
		if err != nil {
			rt.logger.Warn("engine not found", "value", args[0])
			return fmt.Errorf("there is no engine defined as %s: %w", args[0], err)
		}
		return writeEngines(cmd.OutOrStdout(), format, []engine.Engine{e}, false)
	},
}

func init() {
	addCmd.Flags().BoolVarP(&addForce, "force", "F", false, "add even if an engine with the same name exists")
	addCmd.Flags().BoolVarP(&addInteractive, "interactive", "i", false, "prompt for each field")
	addCmd.Flags().BoolVarP(&addAsDefault, "default", "d", false, "make the new engine the default")
	addCmd.Flags().StringVarP(&addPreset, "preset", "P", "", "create the engine from a built-in template")
	addCmd.MarkFlagsMutuallyExclusive("preset", "interactive")

	removeCmd.Flags().BoolVarP(&removeByID, "uuid", "u", false, "treat the argument as an engine uuid")
	removeCmd.Flags().BoolVar(&removeByIndex, "index", false, "treat the argument as a position in the list")
	removeCmd.MarkFlagsMutuallyExclusive("uuid", "index")

	showCmd.Flags().BoolVarP(&showAll, "all", "a", false, "show every engine")
	showCmd.Flags().BoolVarP(&showByID, "uuid", "u", false, "treat the argument as an engine uuid")
	showCmd.MarkFlagsMutuallyExclusive("all", "uuid")
}

func writeEngines(w io.Writer, format string, engines []engine.Engine, list bool) error {
	switch format {
	case "json":
		if list {
			return writeJSON(w, engines)
		}
		return writeJSON(w, engines[0])
	case "yaml", "plain":
		for _, e := range engines {
			if err := writeYAML(w, e); err != nil {
				return err
			}
			fmt.Fprintln(w)
		}
		return nil
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "UUID\tNAME\tURL PATTERN\tPATTERN\tREGEX\tREPLACEMENT")
		for _, e := range engines {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Name, e.URLPattern, e.Pattern, e.Regex, e.Replacement)
		}
		return tw.Flush()
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
