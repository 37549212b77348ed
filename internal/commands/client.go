package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"memberdesk/internal/models"
	"memberdesk/internal/onboarding"
	"memberdesk/internal/pricing"
	"memberdesk/internal/util"
)

// adminAPI is what the admin client flow needs from the server
type adminAPI interface {
	onboarding.Gateway
	GetCurrentUser(ctx context.Context) (*models.StaffUser, error)
	FetchCatalog(ctx context.Context) (*models.Catalog, error)
}

type clientAddOptions struct {
	Primary       onboarding.Applicant
	Family        []string
	Services      []string
	MembershipRef string
	Tenure        string
	Signature     string
	Yes           bool
}

var clientAdd clientAddOptions

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage clients",
	Long:  "Create clients outside the onboarding wizard",
}

var clientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a client from flags (admin only)",
	Long: `Create a client, their family members, subscriptions and signed
agreement in one step. Prices come from the server's plans.

Example:
  memberdesk client add --first-name Ada --last-name Lovelace \
    --email ada@example.com --dob 1980-12-10 --membership Basic \
    --family "Byron:2016-03-01:services=Swim Lessons" --service "Swim Lessons" \
    --signature "Ada Lovelace"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		return runClientAdd(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), client, clientAdd)
	},
}

func runClientAdd(ctx context.Context, in io.Reader, out io.Writer, server adminAPI, opts clientAddOptions) error {
	user, err := server.GetCurrentUser(ctx)
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		return fmt.Errorf("client add requires an admin account, %s is %q", user.Email, user.Role)
	}

	tenure, err := pricing.ParseTenure(opts.Tenure)
	if err != nil {
		return err
	}

	catalog, err := server.FetchCatalog(ctx)
	if err != nil {
		return fmt.Errorf("error loading catalog: %w", err)
	}

	membership, err := findMembership(catalog, opts.MembershipRef)
	if err != nil {
		return err
	}

	primary := opts.Primary
	if primary.ServiceIDs, err = resolveServices(catalog, lo.Union(primary.ServiceIDs, opts.Services)); err != nil {
		return err
	}

	family := make([]onboarding.Applicant, 0, len(opts.Family))
	for _, spec := range opts.Family {
		member, refs, err := parseFamilySpec(spec, primary.LastName)
		if err != nil {
			return err
		}
		if member.ServiceIDs, err = resolveServices(catalog, refs); err != nil {
			return err
		}
		family = append(family, member)
	}

	enrollment := onboarding.Enrollment{
		Primary:      primary,
		Family:       family,
		MembershipID: membership.ID,
		Tenure:       tenure,
		Signature:    onboarding.Sign(opts.Signature, clock()),
	}

	submitter := onboarding.NewSubmitter(server, catalog, newQuoter(catalog), pricing.SourcePlans, logger,
		onboarding.WithSubmitClock(clock))

	quote, err := submitter.Prepare(enrollment)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s, %s\n", membership.Name, tenure.Label())
	printQuote(out, quote, catalog)

	if !opts.Yes && !confirm(in, out, "Create this client?") {
		fmt.Fprintln(out, "Operation cancelled.")
		return nil
	}

	receipt, err := submitter.Submit(ctx, enrollment)
	printReceipt(out, receipt)
	if err != nil {
		logger.Error("client add failed", zap.Error(err))
		return fmt.Errorf("client add failed: %w", err)
	}
	return nil
}

// findMembership looks up a membership by ID when ref is a UUID, by ID or name otherwise
func findMembership(catalog *models.Catalog, ref string) (models.Membership, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		if len(catalog.Memberships) == 1 {
			return catalog.Memberships[0], nil
		}
		return models.Membership{}, errors.New("--membership is required")
	}

	if util.IsUUID(ref) {
		m, ok := lo.Find(catalog.Memberships, func(m models.Membership) bool { return strings.EqualFold(m.ID, ref) })
		if !ok {
			return models.Membership{}, fmt.Errorf("membership %s: %w", ref, models.ErrNotFound)
		}
		return m, nil
	}
	return catalog.Membership(ref)
}

// parseFamilySpec reads "First [Last]:dob[:rceb][:services=Ref,Ref]". A
// missing last name is taken from the primary member. Service refs are
// returned unresolved.
func parseFamilySpec(spec, defaultLastName string) (onboarding.Applicant, []string, error) {
	fullName, dob, markers, err := splitSpec(spec)
	if err != nil {
		return onboarding.Applicant{}, nil, fmt.Errorf("family member %q: %w", spec, err)
	}

	name := strings.Fields(fullName)
	a := onboarding.Applicant{
		FirstName:   strings.Join(name[:max(len(name)-1, 1)], " "),
		LastName:    defaultLastName,
		DateOfBirth: dob,
	}
	if len(name) > 1 {
		a.LastName = name[len(name)-1]
	}

	var services []string
	for _, marker := range markers {
		marker = strings.TrimSpace(marker)
		key, value, found := strings.Cut(marker, "=")
		switch {
		case strings.EqualFold(marker, "rceb"):
			a.RCEB = true
		case found && strings.EqualFold(strings.TrimSpace(key), "services"):
			for _, ref := range strings.Split(value, ",") {
				if ref = strings.TrimSpace(ref); ref != "" {
					services = append(services, ref)
				}
			}
		default:
			return onboarding.Applicant{}, nil, fmt.Errorf("family member %q: unknown marker %q", spec, marker)
		}
	}
	return a, services, nil
}

// resolveServices maps service IDs or names to catalog IDs, dropping repeats
func resolveServices(catalog *models.Catalog, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		service, err := catalog.Service(ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, service.ID)
	}
	return lo.Uniq(ids), nil
}

func init() {
	rootCmd.AddCommand(clientCmd)
	clientCmd.AddCommand(clientAddCmd)

	flags := clientAddCmd.Flags()
	flags.StringVar(&clientAdd.Primary.FirstName, "first-name", "", "Primary member's first name")
	flags.StringVar(&clientAdd.Primary.LastName, "last-name", "", "Primary member's last name")
	flags.StringVar(&clientAdd.Primary.Email, "email", "", "Primary member's email")
	flags.StringVar(&clientAdd.Primary.Phone, "phone", "", "Primary member's phone number")
	flags.StringVar(&clientAdd.Primary.DateOfBirth, "dob", "", "Primary member's date of birth (YYYY-MM-DD)")
	flags.BoolVar(&clientAdd.Primary.RCEB, "rceb", false, "Primary member is funded by RCEB")
	flags.StringVar(&clientAdd.MembershipRef, "membership", "", "Membership ID or name")
	flags.StringVar(&clientAdd.Tenure, "tenure", string(pricing.Tenure12Month), "Term: 12mo, 6mo or 3mo")
	flags.StringArrayVar(&clientAdd.Services, "service", nil, "Service ID or name for the primary member (repeatable)")
	flags.StringArrayVar(&clientAdd.Family, "family", nil, "Family member as \"First [Last]:dob[:rceb][:services=Ref,Ref]\" (repeatable)")
	flags.StringVar(&clientAdd.Signature, "signature", "", "Signer's full name accepting the membership agreement")
	flags.BoolVarP(&clientAdd.Yes, "yes", "y", false, "Skip the confirmation prompt")
}
