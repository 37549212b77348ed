package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"memberdesk/internal/pricing"
	"memberdesk/internal/util"
)

var (
	priceDOB     string
	priceTenure  string
	priceMembers int
	priceHead    bool
	priceRCEB    bool
)

type priceInput struct {
	DateOfBirth  string
	Tenure       pricing.Tenure
	TotalMembers int
	IsHead       bool
	RCEB         bool
}

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Price a single member from the rate table",
	Long: `Calculate one member's membership price from the published rate table.

Examples:
  memberdesk price --dob 1980-12-10 --tenure 12mo
  memberdesk price --dob 2016-03-01 --members 3 --tenure 6mo`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tenure, err := pricing.ParseTenure(priceTenure)
		if err != nil {
			return err
		}

		calc := pricing.NewCalculator(pricing.DefaultRates, pricing.WithClock(clock))
		return runPrice(cmd.OutOrStdout(), calc, priceInput{
			DateOfBirth:  priceDOB,
			Tenure:       tenure,
			TotalMembers: priceMembers,
			IsHead:       priceHead || priceMembers == 1,
			RCEB:         priceRCEB,
		})
	},
}

func runPrice(w io.Writer, calc *pricing.Calculator, in priceInput) error {
	if strings.TrimSpace(in.DateOfBirth) == "" {
		return fmt.Errorf("--dob is required")
	}
	if _, ok := pricing.ParseDateOfBirth(in.DateOfBirth); !ok {
		return fmt.Errorf("invalid date of birth %q, use YYYY-MM-DD", in.DateOfBirth)
	}
	if in.TotalMembers < 1 {
		return fmt.Errorf("--members must be at least 1")
	}

	now := calc.Now()
	category := pricing.Classify(in.DateOfBirth, now)
	class := pricing.RateClassFor(category, in.IsHead, in.TotalMembers)
	price := calc.CalculateMemberPrice(in.DateOfBirth, in.IsHead, in.TotalMembers, in.Tenure, in.RCEB)

	fmt.Fprintf(w, "Age: %d (%s)\n", pricing.Age(in.DateOfBirth, now), category)
	fmt.Fprintf(w, "Rate class: %s\n", class)
	fmt.Fprintf(w, "Term: %s\n", in.Tenure.Label())

	switch {
	case in.RCEB:
		totalColor.Fprintf(w, "Price: %s (RCEB funded)\n", util.FormatMoney(price))
	case in.Tenure == pricing.Tenure12Month:
		totalColor.Fprintf(w, "Price: %s per month\n", util.FormatMoney(price))
	default:
		totalColor.Fprintf(w, "Price: %s\n", util.FormatMoney(price))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(priceCmd)

	priceCmd.Flags().StringVar(&priceDOB, "dob", "", "Date of birth (YYYY-MM-DD)")
	priceCmd.Flags().StringVar(&priceTenure, "tenure", string(pricing.Tenure12Month), "Term: 12mo, 6mo or 3mo")
	priceCmd.Flags().IntVar(&priceMembers, "members", 1, "Number of people in the household")
	priceCmd.Flags().BoolVar(&priceHead, "head", false, "Price as the household head")
	priceCmd.Flags().BoolVar(&priceRCEB, "rceb", false, "Member is funded by RCEB")
}
