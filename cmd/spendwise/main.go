package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "spendwise",
		Short: "💰 Personal expense tracker",
		Long: `spendwise: track expenses, category budgets and savings goals from the terminal.

Everything lives in a local SQLite file. Nothing leaves your machine unless
you export it.`,
		PersistentPreRunE: initConfig,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/spendwise/config.yaml)")
	rootCmd.PersistentFlags().String("db", "", "database file (default: "+config.DefaultDatabasePath()+")")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyDatabasePath, rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))

	addGroup("expenses", "Expenses:", addCmd(), quickCmd(), editCmd(), deleteCmd(), listCmd(), browseCmd())
	addGroup("insights", "Insights:", dashboardCmd(), analyticsCmd())
	addGroup("planning", "Planning:", budgetsCmd(), goalsCmd(), settingsCmd())
	addGroup("data", "Data:", exportCmd(), importCmd(), importOFXCmd(), backupCmd(), clearCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Debug("Received interrupt signal, shutting down")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		slog.Debug("Command failed", "error", err)
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err)))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("failed to locate config directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(filepath.Join(configDir, "spendwise"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables, optionally seeded from a .env file
	if err := loadDotEnv(".env"); err != nil {
		return err
	}
	viper.SetEnvPrefix("SPENDWISE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return common.NewUserError("Invalid configuration", err)
	}

	// Set up logging
	level, err := common.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if err := common.SetupLogger(os.Stderr, level, cfg.LogFormat); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	slog.Debug("Configuration loaded",
		"config_file", viper.ConfigFileUsed(),
		"database", cfg.DatabasePath)
	return nil
}

// loadDotEnv exports variables from the given files. Missing files are
// ignored and variables already set in the environment win.
func loadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return common.NewUserError("Invalid .env file "+path, err)
		}
		slog.Debug("Loaded environment file", "path", path)
	}
	return nil
}

// addGroup registers cmds under a titled help section.
func addGroup(id, title string, cmds ...*cobra.Command) {
	rootCmd.AddGroup(&cobra.Group{ID: id, Title: title})
	for _, c := range cmds {
		c.GroupID = id
		rootCmd.AddCommand(c)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			writef(cmd.OutOrStdout(), "spendwise %s\n", version)
		},
	}
}
