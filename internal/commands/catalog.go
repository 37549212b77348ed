package commands

import (
	"fmt"
	"io"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"memberdesk/internal/models"
	"memberdesk/internal/util"
)

var catalogCmd = &cobra.Command{
	Use:       "catalog [memberships|services|plans]",
	Short:     "List memberships, services and plans",
	Long:      "Show what the gym offers. Without an argument every section is printed.",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"memberships", "services", "plans"},
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := fetchCatalog(cmd.Context())
		if err != nil {
			return err
		}

		section := ""
		if len(args) == 1 {
			section = args[0]
		}
		printCatalog(cmd.OutOrStdout(), catalog, section)
		return nil
	},
}

func printCatalog(w io.Writer, c *models.Catalog, section string) {
	if section == "" || section == "memberships" {
		headerColor.Fprintln(w, "Memberships:")
		if len(c.Memberships) == 0 {
			mutedColor.Fprintln(w, "  none")
		}
		for _, m := range c.Memberships {
			fmt.Fprintf(w, "  %s (%s)\n", m.Name, m.ID)
			if m.Description != "" {
				mutedColor.Fprintf(w, "    %s\n", m.Description)
			}
		}

		headerColor.Fprintln(w, "Terms:")
		for _, st := range c.SubscriptionTypes {
			label := fmt.Sprintf("%d months", st.Months)
			if tenure, ok := st.Tenure(); ok {
				label = tenure.Label()
			}
			fmt.Fprintf(w, "  %s: %s (%s)\n", st.Name, label, st.ID)
		}
	}

	if section == "" || section == "services" {
		headerColor.Fprintln(w, "Services:")
		if len(c.Services) == 0 {
			mutedColor.Fprintln(w, "  none")
		}
		for _, s := range c.Services {
			fmt.Fprintf(w, "  %s (%s)\n", s.Name, s.ID)
		}
	}

	if section == "" || section == "plans" {
		subscriptionNames := lo.SliceToMap(c.SubscriptionTypes, func(st models.SubscriptionType) (string, string) {
			return st.ID, st.Name
		})
		membershipNames := lo.SliceToMap(c.Memberships, func(m models.Membership) (string, string) {
			return m.ID, m.Name
		})

		headerColor.Fprintln(w, "Membership plans:")
		for _, p := range c.MembershipPlans {
			fmt.Fprintf(w, "  %-24s %-12s %-7s %-8s %10s  %s\n",
				util.Truncate(lo.ValueOr(membershipNames, p.MembershipID, p.MembershipID), 24),
				util.Truncate(lo.ValueOr(subscriptionNames, p.SubscriptionTypeID, p.SubscriptionTypeID), 12),
				p.AgeGroup, p.FundingType, util.FormatMoney(p.Price), p.ID)
		}

		headerColor.Fprintln(w, "Service plans:")
		for _, p := range c.ServicePlans {
			fmt.Fprintf(w, "  %-24s %-12s %-7s %-8s %10s  %s\n",
				util.Truncate(c.ServiceName(p.ServiceID), 24),
				util.Truncate(lo.ValueOr(subscriptionNames, p.SubscriptionTypeID, p.SubscriptionTypeID), 12),
				p.AgeGroup, p.FundingType, util.FormatMoney(p.Price), p.ID)
		}
	}
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
