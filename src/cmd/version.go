package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apimgr/websearch/src/version"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		if versionShort {
			fmt.Fprintln(cmd.OutOrStdout(), info.Version)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), info.Full(binaryName))
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "print only the version number")
}
