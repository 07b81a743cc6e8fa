package catalog

import (
	"fmt"
	"strings"

	"github.com/graphfoundry/queryforge/internal/params"
	"github.com/graphfoundry/queryforge/internal/template"
)

// Risk thresholds are recipe literals tuned against historical data.
const (
	churnInactiveDays   = 90
	anomalyStdDevFactor = "3.0"
	concentrationShare  = "0.25"
)

func newChurnRisk() (*template.Template, error) {
	schemas := []params.Schema{
		{Name: "as_of", Type: params.TypeDate, Required: true},
		{Name: "segment", Type: params.TypeString, Required: false},
		{Name: "limit", Type: params.TypeNumber, Required: false, Default: float64(25),
			Rule: &params.Rule{Min: params.Bound(1), Max: params.Bound(500)}},
	}

	render := func(p template.Params, ctx *template.Context) string {
		var b strings.Builder
		b.WriteString("MATCH (c:Customer)-[:MADE]->(t:Transaction)\n")
		if p.Has("segment") {
			b.WriteString(fmt.Sprintf("WHERE c.segment = %s\n", quote(p.String("segment"))))
		}
		b.WriteString("WITH c, max(t.date) AS last_purchase, count(t) AS orders, sum(t.amount) AS lifetime_value\n")
		b.WriteString(fmt.Sprintf("WHERE last_purchase < date(%s) - INTERVAL %d DAYS\n",
			quote(p.Date("as_of")), churnInactiveDays))
		b.WriteString("RETURN c.id AS customer,\n")
		b.WriteString("       last_purchase,\n")
		b.WriteString("       orders,\n")
		b.WriteString("       lifetime_value\n")
		b.WriteString("ORDER BY lifetime_value DESC\n")
		b.WriteString(fmt.Sprintf("LIMIT %d", limit(p, ctx, 25)))
		return b.String()
	}

	return template.New(
		"churn_risk",
		"Surface high-value customers with no purchases in the churn window before a reference date.",
		categoryRisk,
		schemas,
		render,
		template.WithTags("churn", "customer", "retention"),
		template.WithPainPoint("Churn is discovered after renewal deadlines instead of before them."),
	)
}

func newAnomalousTransactions() (*template.Template, error) {
	schemas := []params.Schema{
		{Name: "start_date", Type: params.TypeDate, Required: true},
		{Name: "end_date", Type: params.TypeDate, Required: true},
		{Name: "limit", Type: params.TypeNumber, Required: false, Default: float64(50)},
	}

	render := func(p template.Params, ctx *template.Context) string {
		var b strings.Builder
		b.WriteString("MATCH (t:Transaction)\n")
		b.WriteString(fmt.Sprintf("WHERE t.date >= date(%s) AND t.date <= date(%s)\n",
			quote(p.Date("start_date")), quote(p.Date("end_date"))))
		b.WriteString("WITH avg(t.amount) AS mean, stddev(t.amount) AS sd\n")
		b.WriteString("MATCH (c:Customer)-[:MADE]->(t:Transaction)\n")
		b.WriteString(fmt.Sprintf("WHERE t.date >= date(%s) AND t.date <= date(%s)\n",
			quote(p.Date("start_date")), quote(p.Date("end_date"))))
		b.WriteString(fmt.Sprintf("  AND abs(t.amount - mean) > sd * %s\n", anomalyStdDevFactor))
		b.WriteString("RETURN t.id AS transaction, c.id AS customer, t.amount AS amount, t.date AS date\n")
		b.WriteString("ORDER BY abs(t.amount - mean) DESC\n")
		b.WriteString(fmt.Sprintf("LIMIT %d", limit(p, ctx, 50)))
		return b.String()
	}

	return template.New(
		"anomalous_transactions",
		"Scan a date range for transactions far outside the period's amount distribution.",
		categoryRisk,
		schemas,
		render,
		template.WithTags("risk", "anomaly", "fraud"),
		template.WithPainPoint("Outlier transactions surface only when a customer disputes a charge."),
	)
}

func newConcentrationRisk() (*template.Template, error) {
	schemas := []params.Schema{
		{Name: "period", Type: params.TypeString, Required: true,
			Rule: &params.Rule{Pattern: `^\d{4}(-Q[1-4])?$`}, Examples: []string{"2024", "2024-Q2"}},
	}

	render := func(p template.Params, ctx *template.Context) string {
		var b strings.Builder
		b.WriteString("MATCH (pt:Partner)-[:SOURCED]->(t:Transaction)\n")
		b.WriteString(fmt.Sprintf("WHERE t.period = %s\n", quote(p.String("period"))))
		b.WriteString("WITH sum(t.amount) AS total\n")
		b.WriteString("MATCH (pt:Partner)-[:SOURCED]->(t:Transaction)\n")
		b.WriteString(fmt.Sprintf("WHERE t.period = %s\n", quote(p.String("period"))))
		b.WriteString("WITH pt, total, sum(t.amount) AS partner_revenue\n")
		b.WriteString(fmt.Sprintf("WHERE partner_revenue / total > %s\n", concentrationShare))
		b.WriteString("RETURN pt.name AS partner,\n")
		b.WriteString("       partner_revenue,\n")
		b.WriteString("       partner_revenue / total AS share\n")
		b.WriteString("ORDER BY share DESC")
		return b.String()
	}

	return template.New(
		"concentration_risk",
		"Flag partners contributing more than the concentration threshold of a period's revenue.",
		categoryRisk,
		schemas,
		render,
		template.WithTags("risk", "partner", "concentration"),
		template.WithPainPoint("Revenue dependence on a single partner is invisible until the partner leaves."),
	)
}
