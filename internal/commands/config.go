package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"memberdesk/internal/config"
	"memberdesk/internal/logging"
)

var (
	// Variables to hold flag values
	serverURL string
	envName   string
	logLevel  string
	timezone  string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage memberdesk configuration",
	Long:  "View and update memberdesk configuration settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get configuration value",
	Long:  "Display specific configuration value or all configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		key := ""
		if len(args) == 1 {
			key = args[0]
		}
		return printConfig(cmd.OutOrStdout(), cfg, key)
	},
}

func printConfig(w io.Writer, cfg *config.Config, key string) error {
	if key == "" {
		fmt.Fprintln(w, "Current configuration:")
		fmt.Fprintf(w, "Server URL: %s\n", cfg.ServerURL)
		fmt.Fprintf(w, "Environment: %s\n", cfg.Env)
		fmt.Fprintf(w, "Log level: %s\n", cfg.LogLevel)
		fmt.Fprintf(w, "Time zone: %s\n", cfg.Timezone)
		if cfg.Email != "" {
			fmt.Fprintf(w, "Email: %s\n", cfg.Email)
		}
		return nil
	}

	switch key {
	case "server-url":
		fmt.Fprintln(w, cfg.ServerURL)
	case "env":
		fmt.Fprintln(w, cfg.Env)
	case "log-level":
		fmt.Fprintln(w, cfg.LogLevel)
	case "timezone":
		fmt.Fprintln(w, cfg.Timezone)
	case "email":
		fmt.Fprintln(w, cfg.Email)
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// applyConfigFlags copies set flags into cfg and reports what changed
func applyConfigFlags(w io.Writer, cfg *config.Config) (bool, error) {
	updated := false

	if serverURL != "" {
		fmt.Fprintf(w, "Server URL updated: %s -> %s\n", cfg.ServerURL, serverURL)
		cfg.ServerURL = serverURL
		updated = true
	}
	if envName != "" {
		if envName != "development" && envName != "production" {
			return false, fmt.Errorf("env must be development or production, got %q", envName)
		}
		cfg.Env = envName
		updated = true
	}
	if logLevel != "" {
		cfg.LogLevel = logging.ParseLevel(logLevel).String()
		updated = true
	}
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return false, fmt.Errorf("invalid time zone %q: %w", timezone, err)
		}
		cfg.Timezone = timezone
		updated = true
	}

	return updated, nil
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	Long:  "Update configuration settings like server URL or time zone",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		configUpdated, err := applyConfigFlags(cmd.OutOrStdout(), cfg)
		if err != nil {
			return err
		}

		if !configUpdated {
			fmt.Fprintln(cmd.OutOrStdout(), "No changes were made to the configuration.")
			return nil
		}
		if err := config.SaveGlobalConfig(cfg); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration updated successfully.")
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  "Create a new configuration file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := config.GetGlobalConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}

		if _, err := os.Stat(configPath); err == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration file already exists.")
			fmt.Fprintln(cmd.OutOrStdout(), "Use 'memberdesk config set' to modify existing configuration.")
			return nil
		}

		// Defaults come from Load on a missing file
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if _, err := applyConfigFlags(cmd.OutOrStdout(), cfg); err != nil {
			return err
		}

		if err := config.SaveGlobalConfig(cfg); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Configuration initialized successfully.")
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", configPath)
		return nil
	},
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show configuration file paths",
	Long:  "Display the configuration directory and file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		globalConfigDir, err := config.GetGlobalConfigDir()
		if err != nil {
			return err
		}
		globalConfigPath, err := config.GetGlobalConfigPath()
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "Global config paths:")
		fmt.Fprintf(out, "- Config directory: %s\n", globalConfigDir)
		fmt.Fprintf(out, "- Config file: %s\n", globalConfigPath)

		fmt.Fprintln(out, "\nExistence status:")
		if _, err := os.Stat(globalConfigPath); os.IsNotExist(err) {
			fmt.Fprintln(out, "- Global config file: Does not exist")
		} else {
			fmt.Fprintln(out, "- Global config file: Exists")
		}

		fmt.Fprintf(out, "\nEnvironment overrides use the %s_ prefix, e.g. %s_SERVER_URL\n", config.EnvPrefix, config.EnvPrefix)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathsCmd)

	for _, c := range []*cobra.Command{configSetCmd, configInitCmd} {
		c.Flags().StringVar(&serverURL, "server-url", "", "Set API server URL")
		c.Flags().StringVar(&envName, "env", "", "Set environment (development or production)")
		c.Flags().StringVar(&logLevel, "log-level", "", "Set log level (debug, info, warn, error)")
		c.Flags().StringVar(&timezone, "timezone", "", "Set the gym's IANA time zone")
	}
}
