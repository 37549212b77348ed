package models

import "time"

// SubscriptionRequest creates one member's subscription
type SubscriptionRequest struct {
	ClientID           string   `json:"client_id"`
	FamilyMemberID     string   `json:"family_member_id,omitempty"`
	MembershipPlanID   string   `json:"membership_plan_id"`
	SubscriptionTypeID string   `json:"subscription_type_id"`
	ServicePlanIDs     []string `json:"service_plan_ids,omitempty"`
	Price              string   `json:"price"`
	StartDate          string   `json:"start_date"`
}

// Subscription is a created member subscription
type Subscription struct {
	ID                 string    `json:"id"`
	ClientID           string    `json:"client_id"`
	FamilyMemberID     string    `json:"family_member_id,omitempty"`
	MembershipPlanID   string    `json:"membership_plan_id"`
	SubscriptionTypeID string    `json:"subscription_type_id"`
	Status             string    `json:"status"`
	RenewalDate        string    `json:"renewal_date,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}
