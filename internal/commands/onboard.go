package commands

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"memberdesk/internal/onboarding"
	"memberdesk/internal/pricing"
	"memberdesk/internal/ui"
)

var onboardSource string

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Enroll a new household with the onboarding wizard",
	Long: `Open the interactive onboarding wizard. It collects the primary member,
family members, membership, term and services, shows the price, captures the
signed agreement and submits everything to the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := parseSource(onboardSource)
		if err != nil {
			return err
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		catalog, err := client.FetchCatalog(cmd.Context())
		if err != nil {
			return fmt.Errorf("error loading catalog: %w", err)
		}

		quoter := newQuoter(catalog)
		wizard := onboarding.NewWizard(catalog, onboarding.WithClock(clock))
		submitter := onboarding.NewSubmitter(client, catalog, quoter, source, logger, onboarding.WithSubmitClock(clock))

		model := ui.NewModel(cmd.Context(), wizard, quoter, source, submitter)
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		final, err := p.Run()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("error running wizard: %w", err)
		}

		result, ok := final.(ui.Model)
		if !ok {
			return nil
		}
		printReceipt(cmd.OutOrStdout(), result.Receipt)
		switch {
		case result.Err != nil:
			logger.Error("enrollment failed", zap.Error(result.Err))
			return fmt.Errorf("enrollment failed: %w", result.Err)
		case result.Receipt == nil:
			fmt.Fprintln(cmd.OutOrStdout(), "Onboarding cancelled, nothing was submitted.")
		default:
			printQuote(cmd.OutOrStdout(), result.Receipt.Quote, catalog)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(onboardCmd)

	onboardCmd.Flags().StringVar(&onboardSource, "source", string(pricing.SourceRateTable), "Price source for submitted subscriptions: rate-table or plans")
}
