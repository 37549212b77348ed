package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"memberdesk/internal/models"
	"memberdesk/internal/pricing"
)

var (
	quoteMembers    []string
	quoteTenure     string
	quoteSource     string
	quoteMembership string
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Quote a household",
	Long: `Price a whole household. Each --member is name:dob with optional
":rceb" and ":head" markers. The first member is the head unless another
member is marked.

The plans source and --membership need a login, since plans come from the server.

Examples:
  memberdesk quote --member "Ada Lovelace:1980-12-10" --member "Byron:2016-03-01"
  memberdesk quote --member "Ada:1980-12-10" --source plans --membership Basic`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tenure, err := pricing.ParseTenure(quoteTenure)
		if err != nil {
			return err
		}
		source, err := parseSource(quoteSource)
		if err != nil {
			return err
		}
		household, err := buildHousehold(quoteMembers, tenure)
		if err != nil {
			return err
		}

		var catalog *models.Catalog
		if source == pricing.SourcePlans || quoteMembership != "" {
			catalog, err = fetchCatalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := attachCatalog(&household, catalog, quoteMembership); err != nil {
				return err
			}
		}

		quoter := newQuoter(catalog)
		printQuote(cmd.OutOrStdout(), quoter.Quote(household, source), catalog)
		return nil
	},
}

func parseSource(raw string) (pricing.Source, error) {
	switch pricing.Source(strings.ToLower(strings.TrimSpace(raw))) {
	case pricing.SourceRateTable, "":
		return pricing.SourceRateTable, nil
	case pricing.SourcePlans:
		return pricing.SourcePlans, nil
	}
	return "", fmt.Errorf("unknown price source %q, use rate-table or plans", raw)
}

// splitSpec splits "name:dob[:marker]...". RFC 3339 dates contain colons, so
// the date is the shortest run of fields after the name that parses.
func splitSpec(spec string) (name, dob string, markers []string, err error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 {
		return "", "", nil, errors.New("expected name:dob")
	}

	name = strings.TrimSpace(parts[0])
	if name == "" {
		return "", "", nil, errors.New("name is required")
	}

	for end := 2; end <= len(parts); end++ {
		candidate := strings.TrimSpace(strings.Join(parts[1:end], ":"))
		if _, ok := pricing.ParseDateOfBirth(candidate); ok {
			return name, candidate, parts[end:], nil
		}
	}
	return "", "", nil, errors.New("invalid date of birth, use YYYY-MM-DD or RFC 3339")
}

// parseMemberSpec reads name:dob[:rceb][:head]
func parseMemberSpec(spec string) (pricing.Member, error) {
	name, dob, markers, err := splitSpec(spec)
	if err != nil {
		return pricing.Member{}, fmt.Errorf("member %q: %w", spec, err)
	}

	m := pricing.Member{Name: name, DateOfBirth: dob}
	for _, marker := range markers {
		switch strings.ToLower(strings.TrimSpace(marker)) {
		case "rceb":
			m.RCEB = true
		case "head":
			m.IsHead = true
		default:
			return pricing.Member{}, fmt.Errorf("member %q: unknown marker %q", spec, marker)
		}
	}
	return m, nil
}

// buildHousehold parses member specs and puts the head first
func buildHousehold(specs []string, tenure pricing.Tenure) (pricing.Household, error) {
	if len(specs) == 0 {
		return pricing.Household{}, fmt.Errorf("at least one --member is required")
	}

	members := make([]pricing.Member, 0, len(specs))
	for _, spec := range specs {
		m, err := parseMemberSpec(spec)
		if err != nil {
			return pricing.Household{}, err
		}
		m.Tenure = tenure
		members = append(members, m)
	}

	heads := lo.CountBy(members, func(m pricing.Member) bool { return m.IsHead })
	switch {
	case heads > 1:
		return pricing.Household{}, fmt.Errorf("only one member can be the head, got %d", heads)
	case heads == 0:
		members[0].IsHead = true
	default:
		_, index, _ := lo.FindIndexOf(members, func(m pricing.Member) bool { return m.IsHead })
		head := members[index]
		members = append([]pricing.Member{head}, append(members[:index:index], members[index+1:]...)...)
	}

	return pricing.Household{Members: members}, nil
}

// attachCatalog sets the membership and subscription type used for plan lookups
func attachCatalog(h *pricing.Household, catalog *models.Catalog, membershipRef string) error {
	membership, err := findMembership(catalog, membershipRef)
	if err != nil {
		return err
	}

	for i := range h.Members {
		st, err := catalog.SubscriptionTypeFor(h.Members[i].Tenure)
		if err != nil {
			return err
		}
		h.Members[i].MembershipID = membership.ID
		h.Members[i].SubscriptionTypeID = st.ID
	}
	return nil
}

func fetchCatalog(ctx context.Context) (*models.Catalog, error) {
	client, err := newAPIClient()
	if err != nil {
		return nil, err
	}
	catalog, err := client.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading catalog: %w", err)
	}
	return catalog, nil
}

func newQuoter(catalog *models.Catalog) *pricing.Quoter {
	calc := pricing.NewCalculator(pricing.DefaultRates, pricing.WithClock(clock))
	if catalog == nil {
		return pricing.NewQuoter(calc, nil)
	}
	return pricing.NewQuoter(calc, catalog.Resolver())
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringArrayVar(&quoteMembers, "member", nil, "Household member as name:dob[:rceb][:head] (repeatable)")
	quoteCmd.Flags().StringVar(&quoteTenure, "tenure", string(pricing.Tenure12Month), "Term: 12mo, 6mo or 3mo")
	quoteCmd.Flags().StringVar(&quoteSource, "source", string(pricing.SourceRateTable), "Price source: rate-table or plans")
	quoteCmd.Flags().StringVar(&quoteMembership, "membership", "", "Membership ID or name for plan lookups")
}
