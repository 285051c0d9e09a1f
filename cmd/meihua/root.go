package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/meihua/internal/cli"
	"github.com/aretw0/meihua/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meihua",
	Short: "Plum-blossom hexagram casting for finding lost objects",
	Long: `meihua casts a hexagram from three numbers or from the lunar year, month, day and hour,
derives the changed and mutual hexagrams and turns them into a search hint:
which direction to look in, at what height and in what kind of place.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "meihua.yaml", "Path to the YAML config file (missing file is fine)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every casting at debug level")
	rootCmd.PersistentFlags().String("journal", "", "Journal backend: none, memory, file or redis")
}

// app is the resolved configuration shared by every command.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	debug  bool
}

// loadApp resolves config (file, then env, then flags) and builds the logger.
// With quiet set, logs stay off unless --log-level or --debug asks for them,
// so reports written to stdout are not interleaved with log lines.
func loadApp(cmd *cobra.Command, quiet bool) (*app, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("journal") {
		cfg.Journal.Backend, _ = flags.GetString("journal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	debug, _ := flags.GetBool("debug")
	level := cfg.LogLevel
	if quiet && !flags.Changed("log-level") {
		level = ""
	}
	logger, err := cli.CreateLogger(level, debug)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, debug: debug}, nil
}

// openEngine builds the engine for a command. The close function is never nil.
func (a *app) openEngine(cmd *cobra.Command, opts cli.EngineOptions) (*engineHandle, error) {
	opts.Config = a.cfg
	opts.Logger = a.logger
	opts.Debug = a.debug
	eng, closeFn, err := cli.CreateEngine(cmd.Context(), opts)
	if err != nil {
		return nil, err
	}
	return &engineHandle{Engine: eng, close: closeFn}, nil
}
