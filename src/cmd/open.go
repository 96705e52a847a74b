package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apimgr/websearch/src/store"
)

var openInTerminal bool

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the engines file in the default application or an editor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := rt.store.Path()

		// Load creates the file when missing; a malformed file is still opened
		// so it can be fixed.
		if _, err := rt.store.Load(); err != nil && !errors.Is(err, store.ErrMalformedConfig) {
			return fmt.Errorf("error opening engines file: %w", err)
		}

		if !openInTerminal {
			if err := rt.opener.Open(cmd.Context(), path); err != nil {
				rt.logger.Error("failed to open engines file", "error", err)
				return fmt.Errorf("error opening engines file: %w", err)
			}
			rt.logger.Info("engines file opened")
			return nil
		}

		if err := rt.opener.Editor(cmd.Context(), path); err != nil {
			rt.logger.Error("editor failed", "error", err)
			return fmt.Errorf("error editing engines file: %w", err)
		}
		rt.logger.Info("engines file edited")

		if _, err := rt.store.Load(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s cannot be loaded after editing: %v\n", path, err)
		}
		return nil
	},
}

func init() {
	openCmd.Flags().BoolVarP(&openInTerminal, "terminal", "t", false, "edit the file in the terminal editor")
}
