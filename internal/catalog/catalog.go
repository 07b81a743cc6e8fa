// Package catalog defines the builtin query templates for the partner
// revenue graph and registers them into a caller-supplied registry.
package catalog

import (
	"fmt"
	"strings"

	"github.com/graphfoundry/queryforge/internal/registry"
	"github.com/graphfoundry/queryforge/internal/template"
)

// Register adds every builtin template to the registry. It fails on the
// first definition or duplicate-name error; builtins are expected to
// register exactly once at startup.
func Register(reg *registry.Registry) error {
	builders := []func() (*template.Template, error){
		newPeriodRevenue,
		newRevenueByTier,
		newTopProducts,
		newCommissionPayout,
		newPartnerROI,
		newTierRateLookup,
		newRewardStructure,
		newInactivePartners,
		newChurnRisk,
		newAnomalousTransactions,
		newConcentrationRisk,
		newCohortRetention,
		newReferralReach,
		newPeriodGrowth,
	}

	for _, build := range builders {
		t, err := build()
		if err != nil {
			return fmt.Errorf("build builtin template: %w", err)
		}
		if err := reg.Register(t); err != nil {
			return fmt.Errorf("register builtin template: %w", err)
		}
	}
	return nil
}

// Categories used by the builtin templates.
const (
	categoryRevenue  = "revenue"
	categoryPartners = "partners"
	categoryRisk     = "risk"
	categoryGrowth   = "growth"
)

// quote wraps a value in Cypher single-quote string syntax.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
}

// limit resolves the row cap for a query: an explicit context override wins,
// then a limit parameter, then the recipe default.
func limit(p template.Params, ctx *template.Context, fallback int) int {
	if ctx != nil && ctx.RowLimit > 0 {
		return ctx.RowLimit
	}
	if p.Has("limit") && p.Int("limit") > 0 {
		return p.Int("limit")
	}
	return fallback
}
