package catalog

import (
	"fmt"
	"strings"

	"github.com/graphfoundry/queryforge/internal/params"
	"github.com/graphfoundry/queryforge/internal/template"
)

func newPeriodRevenue() (*template.Template, error) {
	schemas := []params.Schema{
		{Name: "start_date", Type: params.TypeDate, Required: true,
			Examples: []string{"2024-01-01"}},
		{Name: "end_date", Type: params.TypeDate, Required: true,
			Examples: []string{"2024-12-31"}},
		{Name: "region", Type: params.TypeString, Required: false,
			Rule:     &params.Rule{Min: params.Bound(2), Max: params.Bound(64)},
			Examples: []string{"EMEA", "APAC"}},
		{Name: "min_amount", Type: params.TypeDecimal, Required: false, Default: 0},
	}

	render := func(p template.Params, ctx *template.Context) string {
		var b strings.Builder
		b.WriteString("MATCH (c:Customer)-[:MADE]->(t:Transaction)\n")
		b.WriteString(fmt.Sprintf("WHERE t.date >= date(%s) AND t.date <= date(%s)",
			quote(p.Date("start_date")), quote(p.Date("end_date"))))
		if p.Has("region") {
			b.WriteString(fmt.Sprintf("\n  AND c.region = %s", quote(p.String("region"))))
		}
		if d := p.Decimal("min_amount"); !d.IsZero() {
			b.WriteString(fmt.Sprintf("\n  AND t.amount >= %s", d.String()))
		}
		b.WriteString("\nRETURN date_part('month', t.date) AS month,\n")
		b.WriteString("       sum(t.amount) AS revenue,\n")
		b.WriteString("       count(t) AS transactions\n")
		b.WriteString("ORDER BY month")
		return b.String()
	}

	return template.New(
		"period_revenue",
		"Aggregate monthly revenue over a date range, optionally filtered by region and a minimum transaction amount.",
		categoryRevenue,
		schemas,
		render,
		template.WithTags("revenue", "aggregation", "monthly"),
		template.WithPainPoint("Finance cannot see revenue trends without hand-writing date-bucketed graph queries."),
	)
}

func newRevenueByTier() (*template.Template, error) {
	schemas := []params.Schema{
		{Name: "start_date", Type: params.TypeDate, Required: true},
		{Name: "end_date", Type: params.TypeDate, Required: true},
		{Name: "tiers", Type: params.TypeArray, Required: false,
			Examples: []string{"bronze,silver,gold"}},
	}

	render := func(p template.Params, ctx *template.Context) string {
		var b strings.Builder
		b.WriteString("MATCH (pt:Partner)-[:SOURCED]->(t:Transaction)\n")
		b.WriteString(fmt.Sprintf("WHERE t.date >= date(%s) AND t.date <= date(%s)",
			quote(p.Date("start_date")), quote(p.Date("end_date"))))
		if tiers := p.Strings("tiers"); len(tiers) > 0 {
			quoted := make([]string, len(tiers))
			for i, tier := range tiers {
				quoted[i] = quote(tier)
			}
			b.WriteString(fmt.Sprintf("\n  AND pt.tier IN [%s]", strings.Join(quoted, ", ")))
		}
		b.WriteString("\nRETURN pt.tier AS tier,\n")
		b.WriteString("       sum(t.amount) AS revenue,\n")
		b.WriteString("       count(DISTINCT pt) AS partners\n")
		b.WriteString("ORDER BY revenue DESC")
		return b.String()
	}

	return template.New(
		"revenue_by_tier",
		"Break down partner-sourced revenue by partner tier for a date range.",
		categoryRevenue,
		schemas,
		render,
		template.WithTags("revenue", "partner", "tier"),
		template.WithPainPoint("Tier performance reviews require joining partner and transaction data by hand."),
	)
}

func newTopProducts() (*template.Template, error) {
	schemas := []params.Schema{
		{Name: "start_date", Type: params.TypeDate, Required: true},
		{Name: "end_date", Type: params.TypeDate, Required: true},
		{Name: "limit", Type: params.TypeNumber, Required: false, Default: float64(10),
			Rule: &params.Rule{Min: params.Bound(1), Max: params.Bound(100)}},
		{Name: "category", Type: params.TypeString, Required: false},
	}

	render := func(p template.Params, ctx *template.Context) string {
		var b strings.Builder
		b.WriteString("MATCH (t:Transaction)-[:FOR]->(pr:Product)\n")
		b.WriteString(fmt.Sprintf("WHERE t.date >= date(%s) AND t.date <= date(%s)",
			quote(p.Date("start_date")), quote(p.Date("end_date"))))
		if p.Has("category") {
			b.WriteString(fmt.Sprintf("\n  AND pr.category = %s", quote(p.String("category"))))
		}
		b.WriteString("\nRETURN pr.name AS product,\n")
		b.WriteString("       sum(t.amount) AS revenue,\n")
		b.WriteString("       count(t) AS sales\n")
		b.WriteString("ORDER BY revenue DESC\n")
		b.WriteString(fmt.Sprintf("LIMIT %d", limit(p, ctx, 10)))
		return b.String()
	}

	return template.New(
		"top_products",
		"Rank products by revenue over a date range, optionally within one product category.",
		categoryRevenue,
		schemas,
		render,
		template.WithTags("revenue", "product", "ranking"),
		template.WithPainPoint("Product leaderboards are rebuilt ad hoc for every business review."),
	)
}

func newCommissionPayout() (*template.Template, error) {
	schemas := []params.Schema{
		{Name: "period", Type: params.TypeString, Required: true,
			Rule:     &params.Rule{Pattern: `^\d{4}-(0[1-9]|1[0-2])$`},
			Examples: []string{"2024-06"}},
		{Name: "min_payout", Type: params.TypeDecimal, Required: false, Default: 0},
	}

	render := func(p template.Params, ctx *template.Context) string {
		var b strings.Builder
		b.WriteString("MATCH (pt:Partner)-[e:EARNED]->(c:Commission)\n")
		b.WriteString(fmt.Sprintf("WHERE c.period = %s", quote(p.String("period"))))
		if d := p.Decimal("min_payout"); !d.IsZero() {
			b.WriteString(fmt.Sprintf("\n  AND c.amount >= %s", d.String()))
		}
		b.WriteString("\nRETURN pt.name AS partner,\n")
		b.WriteString("       pt.tier AS tier,\n")
		b.WriteString("       sum(c.amount) AS payout\n")
		b.WriteString("ORDER BY payout DESC")
		return b.String()
	}

	return template.New(
		"commission_payout",
		"Summarize commission payouts per partner for one monthly period.",
		categoryRevenue,
		schemas,
		render,
		template.WithTags("revenue", "commission", "payout"),
		template.WithPainPoint("Monthly payout runs depend on a fragile spreadsheet export."),
	)
}
