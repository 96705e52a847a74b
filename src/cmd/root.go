// Package cmd implements the websearch command line
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/apimgr/websearch/src/catalog"
	"github.com/apimgr/websearch/src/display"
	"github.com/apimgr/websearch/src/launch"
	"github.com/apimgr/websearch/src/logging"
	"github.com/apimgr/websearch/src/paths"
	"github.com/apimgr/websearch/src/selection"
	"github.com/apimgr/websearch/src/store"
	"github.com/apimgr/websearch/src/tui"
)

const binaryName = "websearch"

var (
	cfgFile     string
	enginesFile string
	engineName  string
	printOnly   bool
	output      string
	noColor     bool

	settings = viper.New()
	rt       *runtimeEnv
)

// runtimeEnv is the per-invocation state assembled before a command runs
type runtimeEnv struct {
	home     string
	dirs     *paths.Dirs
	logger   *slog.Logger
	logClose io.Closer
	store    *store.Store
	env      display.Env
	opener   opener
}

// opener launches the browser and editor
type opener interface {
	Browser(ctx context.Context, url string) error
	Open(ctx context.Context, path string) error
	Editor(ctx context.Context, path string) error
}

// Collaborators swapped out in tests
var (
	detectEnv = display.Detect
	newOpener = func(s *viper.Viper) opener {
		return launch.New(runtime.GOOS, s.GetString("browser.command"), s.GetString("editor.command"))
	}
	readTerm = func(ctx context.Context, env display.Env, stdin io.Reader, logger *slog.Logger) (string, error) {
		return selection.New(env, stdin, logger).Term(ctx)
	}
	runAddForm = tui.AddEngine
	runPicker  = tui.Pick
)

var rootCmd = &cobra.Command{
	Use:   binaryName + " [term...]",
	Short: "Open search terms in the browser through configured search engines",
	Long: `websearch turns a search term into a URL using a named search engine
template and opens it in the browser.

Each argument is searched separately; quote multi-word terms. Without
arguments the current text selection (or clipboard, or piped stdin) is used.

Examples:
  ` + binaryName + ` "go generics"
  ` + binaryName + ` -e wiki "Alan Turing"
  echo "rfc 9110" | ` + binaryName + ` -p`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runSearch,
}

// Execute runs the root command and releases per-invocation resources
func Execute(ctx context.Context) error {
	defer teardown()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "settings file path")
	rootCmd.PersistentFlags().StringVarP(&enginesFile, "engines-file", "f", "", "engines file path")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output format: plain, table, yaml, json")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&engineName, "engine", "e", "", "search engine to use (default engine if omitted)")
	rootCmd.PersistentFlags().BoolVarP(&printOnly, "print", "p", false, "print URLs instead of opening them")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(defaultCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(shellCmd)
}

// skipsSetup reports whether cmd runs without settings, logging or engines
func skipsSetup(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "shell", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return cmd.Parent() != nil && cmd.Parent().Name() == "shell"
}

func setup(cmd *cobra.Command, args []string) error {
	if skipsSetup(cmd) {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}
	dirs := paths.ForHome(home, os.Getenv)
	if err := dirs.EnsureDirs(); err != nil {
		return fmt.Errorf("init directories: %w", err)
	}

	if err := loadSettings(dirs, home); err != nil {
		return err
	}

	logger, closer, err := logging.New(logging.ConfigFromViper(settings), dirs.LogFile(), logging.NewRunID())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not initialize log file: %v\n", err)
		logger = logging.Stderr(slog.LevelWarn)
		closer = nil
	}

	path := enginesPath(dirs, home)

	rt = &runtimeEnv{
		home:     home,
		dirs:     dirs,
		logger:   logger,
		logClose: closer,
		store:    store.New(path, logger),
		env:      detectEnv(),
		opener:   newOpener(settings),
	}
	logger.Debug("command started", "command", cmd.CommandPath(), "mode", rt.env.GetMode().String())
	return nil
}

// enginesPath picks the engines file: --engines-file, then the settings,
// then the platform default.
func enginesPath(dirs *paths.Dirs, home string) string {
	path := enginesFile
	if path == "" {
		path = settings.GetString("engines.file")
	}
	if path == "" {
		path = dirs.EnginesFile()
	}
	return paths.Expand(path, home)
}

func teardown() {
	if rt != nil && rt.logClose != nil {
		rt.logClose.Close()
	}
	rt = nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("engines.file", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_files", 5)
	v.SetDefault("browser.command", "")
	v.SetDefault("editor.command", "")
	v.SetDefault("output.format", "")
	v.SetDefault("output.color", "auto")
}

// loadSettings reads the settings file; a missing file leaves the defaults
func loadSettings(dirs *paths.Dirs, home string) error {
	settings.SetConfigFile(dirs.ResolveConfigPath(cfgFile, home))
	settings.SetConfigType("yaml")
	settings.SetEnvPrefix("WEBSEARCH")
	settings.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	settings.AutomaticEnv()
	setDefaults(settings)

	if err := settings.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read settings %s: %w", settings.ConfigFileUsed(), err)
	}
	return nil
}

func loadCatalog() (*catalog.Catalog, error) {
	c, err := rt.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load engines from %s: %w", rt.store.Path(), err)
	}
	return c, nil
}

// saveCatalog persists c once at the end of a mutating command. The
// in-memory change is kept even when saving fails.
func saveCatalog(c *catalog.Catalog) error {
	if err := rt.store.Save(c); err != nil {
		return fmt.Errorf("save engines to %s: %w", rt.store.Path(), err)
	}
	return nil
}

func outputFormat(fallback string) (string, error) {
	format := output
	if format == "" {
		format = settings.GetString("output.format")
	}
	if format == "" {
		format = fallback
	}
	switch format {
	case "plain", "table", "yaml", "json":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (use plain, table, yaml or json)", format)
	}
}

func useColor() bool {
	if noColor {
		return false
	}
	switch settings.GetString("output.color") {
	case "never":
		return false
	case "always":
		return true
	default:
		return rt != nil && rt.env.HasColor
	}
}
