package onboarding

import (
	"strings"
	"time"
	"unicode"
)

// TermsVersion identifies the agreement text below on stored contracts
const TermsVersion = "2026-01"

// Terms is the membership agreement shown before signing.
const Terms = `MEMBERSHIP AGREEMENT

1. Term. The membership runs for the selected term. Twelve month memberships
   are billed monthly; six and three month memberships are paid in full.
2. Household. Family members added to this account share the primary
   member's term and are billed to the primary member.
3. Funding. Members funded through the Regional Center of the East Bay
   (RCEB) are not charged. Funding must remain active for the whole term.
4. Cancellation. Paid-in-full terms are not refundable. Monthly terms may
   be cancelled with 30 days written notice.
5. Assumption of risk. Members use the facilities and services at their
   own risk and agree to follow posted rules and staff instructions.
6. Minors. The primary member is responsible for family members under 18.`

// Signature is the signer's typed name standing in for a drawn signature
type Signature struct {
	Name     string
	SignedAt time.Time
}

// HasContent reports whether anything was actually signed
func (s Signature) HasContent() bool {
	return strings.IndexFunc(s.Name, func(r rune) bool { return !unicode.IsSpace(r) }) >= 0
}

// Sign records name as the signature at the given time
func Sign(name string, at time.Time) Signature {
	return Signature{Name: strings.TrimSpace(name), SignedAt: at}
}
