package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultSettings = `# websearch settings
engines:
  file: ""

logging:
  level: info
  file: ""
  max_size: 10
  max_files: 5

browser:
  command: ""

editor:
  command: ""

output:
  format: plain
  color: auto
`

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(settings.AllSettings())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a settings value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		settings.Set(key, value)

		path := settings.ConfigFileUsed()
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return err
		}
		if err := settings.WriteConfigAs(path); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}

		rt.logger.Info("setting changed", "key", key)
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a settings value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if !settings.IsSet(key) {
			return fmt.Errorf("key not found: %s", key)
		}
		fmt.Fprintln(cmd.OutOrStdout(), settings.Get(key))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the default settings file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := settings.ConfigFileUsed()

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("settings file already exists: %s", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(defaultSettings), 0600); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created settings file: %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings, engines and log file locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "settings: %s\n", settings.ConfigFileUsed())
		fmt.Fprintf(out, "engines:  %s\n", rt.store.Path())
		logFile := settings.GetString("logging.file")
		if logFile == "" {
			logFile = rt.dirs.LogFile()
		}
		fmt.Fprintf(out, "log:      %s\n", logFile)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}
