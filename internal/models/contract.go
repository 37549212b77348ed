package models

import "time"

// ContractRequest submits a signed membership agreement
type ContractRequest struct {
	TermsVersion string    `json:"terms_version"`
	SignerName   string    `json:"signer_name"`
	SignedAt     time.Time `json:"signed_at"`
	Total        string    `json:"total"`
}

// Contract is a stored, signed agreement
type Contract struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"client_id"`
	TermsVersion string    `json:"terms_version"`
	SignedAt     time.Time `json:"signed_at"`
}
