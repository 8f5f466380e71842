package main

import (
	"embed"
	"fmt"
	"os"

	"HoldPad/clock"
	"HoldPad/config"
	"HoldPad/i18n"
	"HoldPad/ui"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//go:embed assets/*
var content embed.FS

const defaultConfigFile = "assets/holdpad.yaml"

var (
	version = "0.1.0"
	cfgFile string
	lang    string
	debug   bool
	noSound bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "holdpad",
		Short: "Control pad with hold-to-repeat buttons",
		Long: `HoldPad shows a pad of axes with - and + buttons. Holding a button
repeats its step every half second, and ten times a second after five
seconds. Releasing or dragging off the button stops it.`,
		SilenceUsage: true,
		RunE:         runApp,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML file overriding the built-in configuration")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "UI language (overrides "+i18n.EnvLang+" and the system locale)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noSound, "no-sound", false, "disable click feedback")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("holdpad version %s\n", version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func runApp(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	defaults, err := content.ReadFile(defaultConfigFile)
	if err != nil {
		return fmt.Errorf("failed to read built-in config: %w", err)
	}
	cfg, err := config.Load(defaults, cfgFile)
	if err != nil {
		return err
	}

	i18n.Detect(logger)
	if lang != "" {
		i18n.SetLang(lang)
	}

	fyneApp := app.New()
	fyneApp.Settings().SetTheme(ui.NewCustomTheme(ui.AccentColor))

	a, err := NewAppManager(cfg, content, logger, clock.System, cfg.Sound && !noSound)
	if err != nil {
		return fmt.Errorf("failed to build pad: %w", err)
	}

	w := ui.CreateMainWindow(a, fyneApp, cfg.Title)
	a.mainWindow = w
	w.SetOnClosed(a.Shutdown)

	w.ShowAndRun()
	return nil
}
