package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"memberdesk/internal/config"
	"memberdesk/internal/models"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connection and catalog status",
	Long:  `Display the configured server, the signed-in user and what the catalog offers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		printConnection(out, globalConfig)

		if !globalConfig.LoggedIn() {
			color.New(color.FgYellow).Fprintln(out, "Not logged in")
			fmt.Fprintln(out, "  (use \"memberdesk login\" to sign in)")
			return nil
		}

		catalog, err := fetchCatalog(cmd.Context())
		if err != nil {
			color.New(color.FgRed).Fprintf(out, "Catalog unavailable: %v\n", err)
			return nil
		}
		printCatalogSummary(out, catalog)
		return nil
	},
}

func printConnection(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "On server: %s (%s)\n", cfg.ServerURL, cfg.Env)
	fmt.Fprintf(w, "Time zone: %s\n", cfg.Location())
	if cfg.LoggedIn() {
		color.New(color.FgGreen).Fprintf(w, "Logged in as %s\n", cfg.Email)
	}
	fmt.Fprintln(w)
}

func printCatalogSummary(w io.Writer, c *models.Catalog) {
	fmt.Fprintln(w, "Catalog:")
	fmt.Fprintf(w, "\tmemberships:        %d\n", len(c.Memberships))
	fmt.Fprintf(w, "\tterms:              %d\n", len(c.SubscriptionTypes))
	fmt.Fprintf(w, "\tservices:           %d\n", len(c.Services))
	fmt.Fprintf(w, "\tmembership plans:   %d\n", len(c.MembershipPlans))
	fmt.Fprintf(w, "\tservice plans:      %d\n", len(c.ServicePlans))

	for _, st := range c.SubscriptionTypes {
		if _, ok := st.Tenure(); !ok {
			color.New(color.FgYellow).Fprintf(w, "\tterm %s (%d months) is not priced by the rate table\n", st.Name, st.Months)
		}
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
