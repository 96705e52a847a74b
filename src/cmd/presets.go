package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/apimgr/websearch/src/presets"
)

var presetCategory string

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List built-in engine templates usable with add --preset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := outputFormat("table")
		if err != nil {
			return err
		}

		list := presets.All()
		if presetCategory != "" {
			list = presets.ByCategory(presetCategory)
			if len(list) == 0 {
				return fmt.Errorf("unknown category %q (available: %s)", presetCategory, strings.Join(presets.Categories(), ", "))
			}
		}

		out := cmd.OutOrStdout()
		switch format {
		case "json":
			return writeJSON(out, list)
		case "yaml":
			return writeYAML(out, list)
		case "plain":
			for _, p := range list {
				fmt.Fprintf(out, "- %s\n", p.Shortcut)
			}
			return nil
		default:
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SHORTCUT\tNAME\tCATEGORY\tURL")
			for _, p := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Shortcut, p.Name, p.Category, p.URL)
			}
			return w.Flush()
		}
	},
}

func init() {
	presetsCmd.Flags().StringVar(&presetCategory, "category", "", "only list presets in this category")
}
