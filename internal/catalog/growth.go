package catalog

import (
	"fmt"
	"strings"

	"github.com/graphfoundry/queryforge/internal/params"
	"github.com/graphfoundry/queryforge/internal/template"
)

func newCohortRetention() (*template.Template, error) {
	schemas := []params.Schema{
		{Name: "cohort_month", Type: params.TypeString, Required: true,
			Rule:     &params.Rule{Pattern: `^\d{4}-(0[1-9]|1[0-2])$`},
			Examples: []string{"2024-03"}},
		{Name: "months", Type: params.TypeNumber, Required: false, Default: float64(6),
			Rule: &params.Rule{Min: params.Bound(1), Max: params.Bound(24)}},
	}

	render := func(p template.Params, ctx *template.Context) string {
		var b strings.Builder
		b.WriteString(fmt.Sprintf("MATCH (c:Customer {cohort: %s})\n", quote(p.String("cohort_month"))))
		b.WriteString("OPTIONAL MATCH (c)-[:MADE]->(t:Transaction)\n")
		b.WriteString("WITH c, date_part('month', t.date) AS activity_month\n")
		b.WriteString("RETURN activity_month,\n")
		b.WriteString("       count(DISTINCT c) AS active_customers\n")
		b.WriteString("ORDER BY activity_month\n")
		b.WriteString(fmt.Sprintf("LIMIT %d", p.Int("months")))
		return b.String()
	}

	return template.New(
		"cohort_retention",
		"Track how many customers from one signup cohort stay active month over month.",
		categoryGrowth,
		schemas,
		render,
		template.WithTags("growth", "retention", "cohort"),
		template.WithPainPoint("Retention reporting restarts from raw exports every cohort review."),
	)
}

func newReferralReach() (*template.Template, error) {
	schemas := []params.Schema{
		{Name: "partner_id", Type: params.TypeString, Required: true,
			Rule: &params.Rule{Pattern: `^P-\d+$`}},
		{Name: "depth", Type: params.TypeNumber, Required: false, Default: float64(2),
			Rule: &params.Rule{Min: params.Bound(1), Max: params.Bound(5)}},
	}

	render := func(p template.Params, ctx *template.Context) string {
		var b strings.Builder
		b.WriteString(fmt.Sprintf("MATCH (pt:Partner {id: %s})-[:REFERRED*1..%d]->(c:Customer)\n",
			quote(p.String("partner_id")), p.Int("depth")))
		b.WriteString("OPTIONAL MATCH (c)-[:MADE]->(t:Transaction)\n")
		b.WriteString("RETURN count(DISTINCT c) AS reached_customers,\n")
		b.WriteString("       sum(t.amount) AS referred_revenue")
		return b.String()
	}

	return template.New(
		"referral_reach",
		"Measure the customer reach and revenue of one partner's referral network to a bounded depth.",
		categoryGrowth,
		schemas,
		render,
		template.WithTags("growth", "referral", "partner", "network"),
		template.WithPainPoint("Referral value beyond the first hop is never credited to the originating partner."),
	)
}

func newPeriodGrowth() (*template.Template, error) {
	schemas := []params.Schema{
		{Name: "current_start", Type: params.TypeDate, Required: true},
		{Name: "current_end", Type: params.TypeDate, Required: true},
		{Name: "previous_start", Type: params.TypeDate, Required: true},
		{Name: "previous_end", Type: params.TypeDate, Required: true},
	}

	render := func(p template.Params, ctx *template.Context) string {
		var b strings.Builder
		b.WriteString("MATCH (t:Transaction)\n")
		b.WriteString(fmt.Sprintf("WHERE t.date >= date(%s) AND t.date <= date(%s)\n",
			quote(p.Date("current_start")), quote(p.Date("current_end"))))
		b.WriteString("WITH sum(t.amount) AS current_revenue\n")
		b.WriteString("MATCH (t:Transaction)\n")
		b.WriteString(fmt.Sprintf("WHERE t.date >= date(%s) AND t.date <= date(%s)\n",
			quote(p.Date("previous_start")), quote(p.Date("previous_end"))))
		b.WriteString("WITH current_revenue, sum(t.amount) AS previous_revenue\n")
		b.WriteString("RETURN current_revenue,\n")
		b.WriteString("       previous_revenue,\n")
		b.WriteString("       (current_revenue - previous_revenue) / previous_revenue AS growth_rate")
		return b.String()
	}

	return template.New(
		"period_growth",
		"Compare revenue between two periods and compute the growth rate.",
		categoryGrowth,
		schemas,
		render,
		template.WithTags("growth", "revenue", "comparison"),
		template.WithPainPoint("Quarter-over-quarter growth numbers disagree between decks because each is computed differently."),
	)
}
