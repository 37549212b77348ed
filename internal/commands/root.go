package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"memberdesk/internal/config"
	"memberdesk/internal/logging"
)

var (
	globalConfig *config.Config
	logger       = zap.NewNop()

	verbose        bool
	serverOverride string
)

var rootCmd = &cobra.Command{
	Use:   "memberdesk",
	Short: "Memberdesk - front desk membership onboarding and pricing",
	Long: `Memberdesk is a command-line tool for gym front desk staff.
It walks new households through onboarding, prices memberships and add-on
services, and submits clients, subscriptions and signed agreements to the server.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if globalConfig == nil {
			cfg, err := config.LoadGlobalConfig()
			if err != nil {
				return fmt.Errorf("error loading global config: %w", err)
			}
			globalConfig = cfg
		}
		if serverOverride != "" {
			globalConfig.ServerURL = serverOverride
		}

		level := globalConfig.LogLevel
		if verbose {
			level = "debug"
		}
		l, err := logging.New(globalConfig.Env, level)
		if err != nil {
			return fmt.Errorf("error creating logger: %w", err)
		}
		logger = l
		return nil
	},
}

// Execute runs the root command. A nil cfg is loaded on demand.
func Execute(ctx context.Context, cfg *config.Config) error {
	globalConfig = cfg
	defer func() {
		_ = logger.Sync()
	}()
	return rootCmd.ExecuteContext(ctx)
}

// clock returns the current time in the gym's time zone
func clock() time.Time {
	return time.Now().In(globalConfig.Location())
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log API requests and other debug output")
	rootCmd.PersistentFlags().StringVar(&serverOverride, "server", "", "API server URL for this invocation")
}
