package api

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"memberdesk/internal/models"
)

// ListMemberships returns the membership products on offer
func (c *Client) ListMemberships(ctx context.Context) ([]models.Membership, error) {
	var response struct {
		Memberships []models.Membership `json:"memberships"`
	}
	if err := c.do(ctx, http.MethodGet, "memberships", nil, &response); err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	return response.Memberships, nil
}

// ListSubscriptionTypes returns the billing terms
func (c *Client) ListSubscriptionTypes(ctx context.Context) ([]models.SubscriptionType, error) {
	var response struct {
		SubscriptionTypes []models.SubscriptionType `json:"subscription_types"`
	}
	if err := c.do(ctx, http.MethodGet, "subscription-types", nil, &response); err != nil {
		return nil, fmt.Errorf("failed to list subscription types: %w", err)
	}
	return response.SubscriptionTypes, nil
}

// ListServices returns the add-on services
func (c *Client) ListServices(ctx context.Context) ([]models.Service, error) {
	var response struct {
		Services []models.Service `json:"services"`
	}
	if err := c.do(ctx, http.MethodGet, "services", nil, &response); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return response.Services, nil
}

// ListMembershipPlans returns every membership price record
func (c *Client) ListMembershipPlans(ctx context.Context) ([]models.MembershipPlan, error) {
	var response struct {
		Plans []models.MembershipPlan `json:"membership_plans"`
	}
	if err := c.do(ctx, http.MethodGet, "membership-plans", nil, &response); err != nil {
		return nil, fmt.Errorf("failed to list membership plans: %w", err)
	}
	return response.Plans, nil
}

// ListServicePlans returns every service price record
func (c *Client) ListServicePlans(ctx context.Context) ([]models.ServicePlan, error) {
	var response struct {
		Plans []models.ServicePlan `json:"service_plans"`
	}
	if err := c.do(ctx, http.MethodGet, "service-plans", nil, &response); err != nil {
		return nil, fmt.Errorf("failed to list service plans: %w", err)
	}
	return response.Plans, nil
}

// FetchCatalog loads all catalogs concurrently. The first failure cancels
// the remaining requests.
func (c *Client) FetchCatalog(ctx context.Context) (*models.Catalog, error) {
	var catalog models.Catalog
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		catalog.Memberships, err = c.ListMemberships(ctx)
		return err
	})
	g.Go(func() (err error) {
		catalog.SubscriptionTypes, err = c.ListSubscriptionTypes(ctx)
		return err
	})
	g.Go(func() (err error) {
		catalog.Services, err = c.ListServices(ctx)
		return err
	})
	g.Go(func() (err error) {
		catalog.MembershipPlans, err = c.ListMembershipPlans(ctx)
		return err
	})
	g.Go(func() (err error) {
		catalog.ServicePlans, err = c.ListServicePlans(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.log.Debug("catalog loaded",
		zap.Int("memberships", len(catalog.Memberships)),
		zap.Int("subscription_types", len(catalog.SubscriptionTypes)),
		zap.Int("services", len(catalog.Services)),
		zap.Int("membership_plans", len(catalog.MembershipPlans)),
		zap.Int("service_plans", len(catalog.ServicePlans)),
	)

	return &catalog, nil
}
