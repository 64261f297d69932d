package domain

import "strings"

// Plan describes a paid tier on the pricing page.
type Plan struct {
	Key          string
	Name         string
	PriceID      string // provider price identifier, may be a placeholder
	MonthlyPrice int    // USD
	Features     []string
}

const (
	PlanKeyPro        = "PRO"
	PlanKeyEnterprise = "ENTERPRISE"

	// Placeholder price ids shipped when billing is not configured.
	placeholderMarker = "mock"
)

// NotConfigured reports whether the plan still carries a placeholder price
// id. Checkout must refuse such plans without contacting the backend.
func (p Plan) NotConfigured() bool {
	return p.PriceID == "" || strings.Contains(p.PriceID, placeholderMarker)
}

// DefaultPlans returns the static two-tier plan table, substituting the
// provided price ids when non-empty.
func DefaultPlans(proPriceID, enterprisePriceID string) map[string]Plan {
	if proPriceID == "" {
		proPriceID = "price_mock_pro"
	}
	if enterprisePriceID == "" {
		enterprisePriceID = "price_mock_enterprise"
	}

	return map[string]Plan{
		PlanKeyPro: {
			Key:          PlanKeyPro,
			Name:         "Pro Plan",
			PriceID:      proPriceID,
			MonthlyPrice: 29,
			Features: []string{
				"Unlimited projects",
				"Advanced analytics",
				"Priority support",
				"Team collaboration",
				"API access",
			},
		},
		PlanKeyEnterprise: {
			Key:          PlanKeyEnterprise,
			Name:         "Enterprise Plan",
			PriceID:      enterprisePriceID,
			MonthlyPrice: 99,
			Features: []string{
				"Everything in Pro",
				"Custom integrations",
				"Dedicated support",
				"Advanced security",
				"Custom branding",
			},
		},
	}
}
