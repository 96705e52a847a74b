package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apimgr/websearch/src/catalog"
	"github.com/apimgr/websearch/src/paths"
	"github.com/apimgr/websearch/src/presets"
	"github.com/apimgr/websearch/src/store"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Shell integration commands",
	Long: `Shell integration for completions and init scripts.

Completions cover engine names (--engine, default, remove, show), engine
uuids (remove --uuid, show --uuid), preset shortcuts (add --preset),
preset categories and settings keys.`,
}

var completionsCmd = &cobra.Command{
	Use:   "completions [bash|zsh|fish|powershell]",
	Short: "Generate shell completions",
	Long: `Generate shell completion script for the specified shell.
If no shell is specified, auto-detects from $SHELL environment variable.

Examples:
  ` + binaryName + ` shell completions > ~/.local/share/bash-completion/completions/` + binaryName + `
  ` + binaryName + ` shell completions zsh > ~/.zsh/completions/_` + binaryName + `
  ` + binaryName + ` shell completions fish > ~/.config/fish/completions/` + binaryName + `.fish`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish", "powershell", "pwsh"},
	RunE: func(cmd *cobra.Command, args []string) error {
		shell := detectShell()
		if len(args) > 0 {
			shell = args[0]
		}
		return printCompletions(cmd.OutOrStdout(), shell)
	},
}

var shellInitCmd = &cobra.Command{
	Use:   "init [bash|zsh|fish|powershell]",
	Short: "Generate shell init command",
	Long: `Generate shell init command for eval.
If no shell is specified, auto-detects from $SHELL environment variable.

Add to your shell rc file:
  eval "$(` + binaryName + ` shell init)"`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"bash", "zsh", "fish", "powershell", "pwsh"},
	RunE: func(cmd *cobra.Command, args []string) error {
		shell := detectShell()
		if len(args) > 0 {
			shell = args[0]
		}
		return printInit(cmd.OutOrStdout(), shell)
	},
}

func init() {
	shellCmd.AddCommand(completionsCmd)
	shellCmd.AddCommand(shellInitCmd)

	rootCmd.RegisterFlagCompletionFunc("engine", completeEngineFlag)
	rootCmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(
		[]cobra.Completion{"plain", "table", "yaml", "json"}, cobra.ShellCompDirectiveNoFileComp))
	addCmd.RegisterFlagCompletionFunc("preset", completePresets)
	presetsCmd.RegisterFlagCompletionFunc("category", completeCategories)

	defaultCmd.ValidArgsFunction = completeEngineArg
	removeCmd.ValidArgsFunction = completeEngineArg
	showCmd.ValidArgsFunction = completeEngineArg
	configGetCmd.ValidArgsFunction = completeSettingsKey
	configSetCmd.ValidArgsFunction = completeSettingsKey
}

// completionCatalog loads the engines for a completion request. The hidden
// completion command skips setup, so settings are read here once the
// target command's flags are parsed. A missing engines file is not created.
func completionCatalog() (*catalog.Catalog, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dirs := paths.ForHome(home, os.Getenv)
	if err := loadSettings(dirs, home); err != nil {
		return nil, err
	}

	path := enginesPath(dirs, home)
	if _, err := os.Stat(path); err != nil {
		return catalog.New(), nil
	}
	return store.New(path, nil).Load()
}

func completeEngineFlag(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	c, err := completionCatalog()
	if err != nil {
		cobra.CompErrorln(err.Error())
		return nil, cobra.ShellCompDirectiveError
	}
	return engineNames(c, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeEngineArg completes the single engine argument of default, remove
// and show. --uuid switches to identifiers and --index to positions.
func completeEngineArg(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	c, err := completionCatalog()
	if err != nil {
		cobra.CompErrorln(err.Error())
		return nil, cobra.ShellCompDirectiveError
	}

	var out []cobra.Completion
	switch {
	case flagSet(cmd, "uuid"):
		for _, e := range c.Engines() {
			if id := e.ID.String(); strings.HasPrefix(id, toComplete) {
				out = append(out, cobra.CompletionWithDesc(id, e.Name))
			}
		}
	case flagSet(cmd, "index"):
		for i, e := range c.Engines() {
			if idx := strconv.Itoa(i); strings.HasPrefix(idx, toComplete) {
				out = append(out, cobra.CompletionWithDesc(idx, e.Name))
			}
		}
	default:
		out = engineNames(c, toComplete)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func completePresets(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	var out []cobra.Completion
	for _, p := range presets.All() {
		if strings.HasPrefix(p.Shortcut, toComplete) {
			out = append(out, cobra.CompletionWithDesc(p.Shortcut, p.Name))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func completeCategories(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	return withPrefix(presets.Categories(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

func completeSettingsKey(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	keys := settingsKeys()
	return withPrefix(keys, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// settingsKeys lists every known settings key in sorted order
func settingsKeys() []string {
	v := viper.New()
	setDefaults(v)
	keys := v.AllKeys()
	sort.Strings(keys)
	return keys
}

func engineNames(c *catalog.Catalog, prefix string) []cobra.Completion {
	seen := make(map[string]bool)
	var out []cobra.Completion
	for _, e := range c.Engines() {
		if seen[e.Name] || !strings.HasPrefix(e.Name, prefix) {
			continue
		}
		seen[e.Name] = true
		out = append(out, cobra.CompletionWithDesc(e.Name, e.URLPattern))
	}
	return out
}

func withPrefix(values []string, prefix string) []cobra.Completion {
	var out []cobra.Completion
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			out = append(out, v)
		}
	}
	return out
}

func flagSet(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// detectShell reads the shell name from $SHELL, defaulting to bash
func detectShell() string {
	shellPath := os.Getenv("SHELL")
	if shellPath == "" {
		return "bash"
	}
	base := filepath.Base(shellPath)
	if idx := strings.LastIndex(base, "\\"); idx >= 0 {
		base = base[idx+1:]
	}
	return base
}

func printCompletions(w io.Writer, shell string) error {
	switch shell {
	case "bash":
		return rootCmd.GenBashCompletionV2(w, true)
	case "zsh":
		return rootCmd.GenZshCompletion(w)
	case "fish":
		return rootCmd.GenFishCompletion(w, true)
	case "powershell", "pwsh":
		return rootCmd.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell: %s\nSupported: bash, zsh, fish, powershell", shell)
	}
}

func printInit(w io.Writer, shell string) error {
	switch shell {
	case "bash":
		fmt.Fprintf(w, "source <(%s shell completions bash)\n", binaryName)
	case "zsh":
		fmt.Fprintf(w, "source <(%s shell completions zsh)\n", binaryName)
	case "fish":
		fmt.Fprintf(w, "%s shell completions fish | source\n", binaryName)
	case "powershell", "pwsh":
		fmt.Fprintf(w, "Invoke-Expression (& %s shell completions powershell)\n", binaryName)
	default:
		return fmt.Errorf("unsupported shell: %s\nSupported: bash, zsh, fish, powershell", shell)
	}
	return nil
}
