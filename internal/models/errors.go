package models

import (
	"errors"
)

// API errors
var (
	// ErrUnauthorized is returned when the server rejects the auth token
	ErrUnauthorized = errors.New("not logged in or session expired")

	// ErrNotFound is returned when a catalog entry cannot be found
	ErrNotFound = errors.New("not found")
)

// Enrollment errors
var (
	// ErrPlanNotFound is returned when no membership plan matches a member
	ErrPlanNotFound = errors.New("no matching plan")

	// ErrSubscriptionTypeNotFound is returned when the catalog has no subscription type for a tenure
	ErrSubscriptionTypeNotFound = errors.New("no subscription type for tenure")
)
