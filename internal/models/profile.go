package models

import (
	"strings"
	"time"
)

// Profile holds the personal details shared by primary clients and family members
type Profile struct {
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	DateOfBirth  string   `json:"date_of_birth"`
	RCEBFlag     bool     `json:"rceb_flag"`
	Relationship string   `json:"relationship,omitempty"`
	ServiceIDs   []string `json:"service_ids,omitempty"`
}

// FullName joins first and last name
func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// ClientRequest creates the primary account holder
type ClientRequest struct {
	Profile
	MembershipID string `json:"membership_id"`
	Tenure       string `json:"tenure"`
}

// Client is the household's primary account holder
type Client struct {
	ID string `json:"id"`
	Profile
	CreatedAt time.Time `json:"created_at"`
}

// FamilyMemberRequest adds a member to a client's household
type FamilyMemberRequest struct {
	Profile
}

// FamilyMember is a household member added under a client
type FamilyMember struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	Profile
	CreatedAt time.Time `json:"created_at"`
}
