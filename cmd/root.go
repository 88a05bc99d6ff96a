package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/venom/internal/app"
	"github.com/zjrosen/venom/internal/config"
	"github.com/zjrosen/venom/internal/log"
	"github.com/zjrosen/venom/internal/paths"
	"github.com/zjrosen/venom/internal/session"
	"github.com/zjrosen/venom/internal/shared"
	"github.com/zjrosen/venom/internal/storage"
	"github.com/zjrosen/venom/internal/store"
	"github.com/zjrosen/venom/internal/tracing"
	"github.com/zjrosen/venom/internal/ui/styles"
	"github.com/zjrosen/venom/internal/watcher"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, otherwise
	// the OSC 11 reply can show up as typed text.
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	cfg     config.Config

	// configUsed is the file the config was read from. The view policy is
	// written back to it.
	configUsed string

	// configErr is reported by commands that need a valid config.
	configErr error

	debugMode bool
	logPath   string
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "venom",
	Short: "A terminal task tracker",
	Long: `venom keeps a personal list of tasks with labels, priorities, notes and
due dates, and edits them in a terminal UI.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/venom/config.yaml)")
	rootCmd.PersistentFlags().StringP("path", "p", "",
		"task file (default: ~/.venom/todo.json)")
	rootCmd.PersistentFlags().String("backend", "",
		"storage backend: json or sqlite")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false,
		"write a debug log (also enabled by VENOM_DEBUG)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "",
		"debug log file (default: ~/.config/venom/debug.log)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colors")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"do not reload when the task file changes on disk")

	_ = viper.BindPFlag("save_path", rootCmd.PersistentFlags().Lookup("path"))
	_ = viper.BindPFlag("storage.backend", rootCmd.PersistentFlags().Lookup("backend"))
}

func initConfig() {
	v := viper.GetViper()
	setDefaults(v)

	cwd, _ := os.Getwd()
	configUsed, configErr = readConfig(v, cfgFile, cwd, paths.DefaultConfigPath())
	if configErr != nil {
		cfg = config.Defaults()
		return
	}
	cfg, configErr = decodeConfig(v)
}

func setDefaults(v *viper.Viper) {
	d := config.Defaults()
	v.SetDefault("save_path", d.SavePath)
	v.SetDefault("auto_reload", d.AutoReload)
	v.SetDefault("auto_reload_debounce", d.AutoReloadDebounce)
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("ui.vim_mode", d.UI.VimMode)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("ui.show_summary", d.UI.ShowSummary)
	v.SetDefault("labels.color_format", d.Labels.ColorFormat)
	v.SetDefault("view.policy", d.View.Policy)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)

	v.SetEnvPrefix("VENOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// readConfig loads the config file and returns its path.
//
// Lookup order:
//  1. explicit (--config)
//  2. .venom/config.yaml under cwd
//  3. userPath (~/.config/venom/config.yaml)
//
// When none exists a default config is written to userPath.
func readConfig(v *viper.Viper, explicit, cwd, userPath string) (string, error) {
	path := explicit
	if path == "" {
		path = userPath
		if local := paths.LocalConfigPath(cwd); fileExists(local) {
			path = local
		}
	}
	path = paths.Expand(path)

	if !fileExists(path) {
		if explicit != "" {
			return path, fmt.Errorf("config file %s not found", path)
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return path, err
		}
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return path, fmt.Errorf("reading config %s: %w", path, err)
	}
	log.Debug(log.CatConfig, "config loaded", "path", path)
	return path, nil
}

func decodeConfig(v *viper.Viper) (config.Config, error) {
	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return config.Defaults(), fmt.Errorf("decoding config: %w", err)
	}
	if err := config.Validate(c); err != nil {
		return config.Defaults(), err
	}
	if c.Tracing.FilePath == "" {
		c.Tracing.FilePath = paths.DefaultTracesPath()
	} else {
		c.Tracing.FilePath = paths.Expand(c.Tracing.FilePath)
	}
	return c, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// setupLogging opens the debug log when --debug or VENOM_DEBUG is set.
func setupLogging() func() {
	if !debugMode && os.Getenv("VENOM_DEBUG") == "" {
		return func() {}
	}
	path := logPath
	if path == "" {
		path = paths.DefaultLogPath()
	}
	path = paths.Expand(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "venom: creating log directory: %v\n", err)
		return func() {}
	}
	cleanup, err := log.Init(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "venom: %v\n", err)
		return func() {}
	}
	log.Info(log.CatConfig, "venom starting", "version", version, "config", configUsed)
	return cleanup
}

// applyAppearance sets the color profile and theme overrides.
func applyAppearance() error {
	if noColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	if err := styles.ApplyTheme(cfg.Theme.FlattenedColors()); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	return nil
}

// openStore opens the configured backend and loads the task document. A
// document that cannot be read starts an empty list; the error is logged.
func openStore(ctx context.Context) (storage.Backend, *store.Store, error) {
	path := paths.ResolveSavePath(cfg.SavePath, cfg.Storage.Backend)
	backend, err := storage.Open(cfg.Storage.Backend, path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}

	doc, err := backend.Load(ctx)
	if err != nil {
		log.ErrorErr(log.CatStorage, "loading tasks, starting empty", err, "path", path)
		return backend, store.New(), nil
	}
	return backend, store.FromDocument(doc), nil
}

func startWatcher(path string) *watcher.Watcher {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		log.ErrorErr(log.CatWatcher, "auto reload disabled", err, "path", path)
		return nil
	}
	w, err := watcher.New(watcher.Config{Path: path, Debounce: cfg.AutoReloadDebounce})
	if err != nil {
		log.ErrorErr(log.CatWatcher, "auto reload disabled", err, "path", path)
		return nil
	}
	if err := w.Start(); err != nil {
		_ = w.Stop()
		log.ErrorErr(log.CatWatcher, "auto reload disabled", err, "path", path)
		return nil
	}
	return w
}

func runApp(cmd *cobra.Command, _ []string) error {
	if configErr != nil {
		return configErr
	}
	cleanup := setupLogging()
	defer cleanup()

	if err := applyAppearance(); err != nil {
		return err
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		log.ErrorErr(log.CatTrace, "tracing disabled", err)
		provider = tracing.Noop()
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	backend, st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = backend.Close() }()

	sess := session.New(st, session.Options{
		Persister:   backend,
		Clipboard:   shared.SystemClipboard{},
		Tracer:      provider.Tracer(),
		Policy:      cfg.Policy(),
		VimEnabled:  cfg.UI.VimMode,
		LabelFormat: cfg.LabelFormat(),
	})

	var w *watcher.Watcher
	if noReload, _ := cmd.Flags().GetBool("no-auto-reload"); cfg.AutoReload && !noReload {
		w = startWatcher(backend.Path())
	}

	zone.NewGlobal()
	model := app.New(app.Options{
		Session:       sess,
		Backend:       backend,
		Watcher:       w,
		ConfigPath:    configUsed,
		ShowSummary:   cfg.UI.ShowSummary,
		MarkdownStyle: cfg.UI.MarkdownStyle,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
