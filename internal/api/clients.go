package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"memberdesk/internal/models"
)

// CreateClient creates the household's primary account holder
func (c *Client) CreateClient(ctx context.Context, req models.ClientRequest) (*models.Client, error) {
	var response struct {
		Message string        `json:"message"`
		Client  models.Client `json:"client"`
	}
	if err := c.do(ctx, http.MethodPost, "clients", req, &response); err != nil {
		return nil, fmt.Errorf("client creation failed: %w", err)
	}
	return &response.Client, nil
}

// AddFamilyMember adds a member to an existing client's household
func (c *Client) AddFamilyMember(ctx context.Context, clientID string, req models.FamilyMemberRequest) (*models.FamilyMember, error) {
	var response struct {
		Message      string              `json:"message"`
		FamilyMember models.FamilyMember `json:"family_member"`
	}
	path := fmt.Sprintf("clients/%s/family-members", url.PathEscape(clientID))
	if err := c.do(ctx, http.MethodPost, path, req, &response); err != nil {
		return nil, fmt.Errorf("adding family member failed: %w", err)
	}
	return &response.FamilyMember, nil
}

// CreateSubscription subscribes one member to a resolved plan
func (c *Client) CreateSubscription(ctx context.Context, req models.SubscriptionRequest) (*models.Subscription, error) {
	var response struct {
		Message      string              `json:"message"`
		Subscription models.Subscription `json:"subscription"`
	}
	if err := c.do(ctx, http.MethodPost, "subscriptions", req, &response); err != nil {
		return nil, fmt.Errorf("subscription creation failed: %w", err)
	}
	return &response.Subscription, nil
}

// SignContract stores the signed membership agreement for a client
func (c *Client) SignContract(ctx context.Context, clientID string, req models.ContractRequest) (*models.Contract, error) {
	var response struct {
		Message  string          `json:"message"`
		Contract models.Contract `json:"contract"`
	}
	path := fmt.Sprintf("clients/%s/contracts", url.PathEscape(clientID))
	if err := c.do(ctx, http.MethodPost, path, req, &response); err != nil {
		return nil, fmt.Errorf("contract submission failed: %w", err)
	}
	return &response.Contract, nil
}
