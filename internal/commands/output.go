package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"memberdesk/internal/models"
	"memberdesk/internal/onboarding"
	"memberdesk/internal/pricing"
	"memberdesk/internal/util"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	mutedColor  = color.New(color.FgHiBlack)
	totalColor  = color.New(color.Bold)
	okColor     = color.New(color.FgGreen, color.Bold)
	warnColor   = color.New(color.FgYellow)
)

// printQuote writes one line per member followed by their services and the total
func printQuote(w io.Writer, q pricing.Quote, catalog *models.Catalog) {
	headerColor.Fprintf(w, "Quote (%s)\n", q.Source)

	for _, line := range q.Lines {
		name := line.Member.Name
		if line.Member.IsHead {
			name += " *"
		}
		if line.Member.RCEB {
			name += " (RCEB)"
		}
		fmt.Fprintf(w, "  %-28s %-7s %-16s %10s\n",
			name, line.Category, line.RateClass, util.FormatPrice(line.Membership))

		if line.MembershipPlanID != "" {
			mutedColor.Fprintf(w, "      plan %s (%s match)\n", line.MembershipPlanID, line.MembershipRule)
		} else if q.Source == pricing.SourcePlans {
			warnColor.Fprintln(w, "      no membership plan found")
		}

		for _, charge := range line.Services {
			fmt.Fprintf(w, "    + %-49s %10s\n", catalog.ServiceName(charge.ServiceID), util.FormatPrice(charge.Price))
		}
	}

	suffix := ""
	if len(q.Lines) > 0 && q.Lines[0].Member.Tenure == pricing.Tenure12Month {
		suffix = " per month"
	}
	totalColor.Fprintf(w, "Total: %s%s\n", util.FormatMoney(q.Total), suffix)
}

// printReceipt reports what was created, including partial results
func printReceipt(w io.Writer, r *onboarding.Receipt) {
	if r == nil {
		return
	}
	if r.Client != nil {
		okColor.Fprintf(w, "Client created: %s\n", r.Client.ID)
	}
	for _, member := range r.FamilyMembers {
		fmt.Fprintf(w, "  Family member: %s (%s)\n", member.ID, member.Profile.FullName())
	}
	for _, sub := range r.Subscriptions {
		fmt.Fprintf(w, "  Subscription: %s (plan %s)\n", sub.ID, sub.MembershipPlanID)
	}
	if r.Contract != nil {
		fmt.Fprintf(w, "  Contract: %s (terms %s)\n", r.Contract.ID, r.Contract.TermsVersion)
	}
}

// confirm asks a yes/no question, defaulting to no
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
