package catalog

import (
	"fmt"
	"strings"

	"github.com/graphfoundry/queryforge/internal/params"
	"github.com/graphfoundry/queryforge/internal/template"
)

// Tier commission splits are recipe literals, not parameters. See the
// reward_structure and tier_rate templates.
const (
	bronzeRate = "0.05"
	silverRate = "0.08"
	goldRate   = "0.12"
)

func newPartnerROI() (*template.Template, error) {
	schemas := []params.Schema{
		{Name: "partner_id", Type: params.TypeString, Required: true,
			Rule:     &params.Rule{Pattern: `^P-\d+$`},
			Examples: []string{"P-1042"}},
		{Name: "start_date", Type: params.TypeDate, Required: true},
		{Name: "end_date", Type: params.TypeDate, Required: true},
		{Name: "include_costs", Type: params.TypeBoolean, Required: false, Default: true},
	}

	render := func(p template.Params, ctx *template.Context) string {
		var b strings.Builder
		b.WriteString(fmt.Sprintf("MATCH (pt:Partner {id: %s})-[:SOURCED]->(t:Transaction)\n",
			quote(p.String("partner_id"))))
		b.WriteString(fmt.Sprintf("WHERE t.date >= date(%s) AND t.date <= date(%s)\n",
			quote(p.Date("start_date")), quote(p.Date("end_date"))))
		if p.Bool("include_costs") {
			b.WriteString("OPTIONAL MATCH (pt)-[:INCURRED]->(cost:Cost)\n")
			b.WriteString("RETURN pt.name AS partner,\n")
			b.WriteString("       sum(t.amount) AS revenue,\n")
			b.WriteString("       sum(cost.amount) AS costs,\n")
			b.WriteString("       sum(t.amount) - sum(cost.amount) AS net_return")
		} else {
			b.WriteString("RETURN pt.name AS partner,\n")
			b.WriteString("       sum(t.amount) AS revenue")
		}
		return b.String()
	}

	return template.New(
		"partner_roi",
		"Compute one partner's sourced revenue and, optionally, cost-adjusted net return over a date range.",
		categoryPartners,
		schemas,
		render,
		template.WithTags("partner", "roi", "revenue"),
		template.WithPainPoint("Partner managers cannot answer whether a partnership pays for itself."),
	)
}

func newTierRateLookup() (*template.Template, error) {
	schemas := []params.Schema{
		{Name: "tier", Type: params.TypeString, Required: true,
			Rule:     &params.Rule{Pattern: `^(bronze|silver|gold)$`},
			Examples: []string{"gold"}},
	}

	render := func(p template.Params, ctx *template.Context) string {
		rate := bronzeRate
		switch p.String("tier") {
		case "silver":
			rate = silverRate
		case "gold":
			rate = goldRate
		}
		var b strings.Builder
		b.WriteString(fmt.Sprintf("MATCH (pt:Partner {tier: %s})-[:SOURCED]->(t:Transaction)\n",
			quote(p.String("tier"))))
		b.WriteString("RETURN pt.name AS partner,\n")
		b.WriteString("       sum(t.amount) AS revenue,\n")
		b.WriteString(fmt.Sprintf("       sum(t.amount) * %s AS projected_commission", rate))
		return b.String()
	}

	return template.New(
		"tier_rate",
		"Project commission owed to partners of one tier using the tier's standard rate.",
		categoryPartners,
		schemas,
		render,
		template.WithTags("partner", "tier", "commission"),
		template.WithPainPoint("Commission projections drift because tier rates live in three different spreadsheets."),
	)
}

func newRewardStructure() (*template.Template, error) {
	schemas := []params.Schema{
		{Name: "min_revenue", Type: params.TypeDecimal, Required: false, Default: 0},
	}

	render := func(p template.Params, ctx *template.Context) string {
		var b strings.Builder
		b.WriteString("MATCH (pt:Partner)-[:SOURCED]->(t:Transaction)\n")
		b.WriteString("WITH pt, sum(t.amount) AS revenue\n")
		if d := p.Decimal("min_revenue"); !d.IsZero() {
			b.WriteString(fmt.Sprintf("WHERE revenue >= %s\n", d.String()))
		}
		b.WriteString("RETURN pt.name AS partner,\n")
		b.WriteString("       pt.tier AS tier,\n")
		b.WriteString("       revenue,\n")
		b.WriteString("       CASE pt.tier\n")
		b.WriteString(fmt.Sprintf("         WHEN 'gold' THEN revenue * %s\n", goldRate))
		b.WriteString(fmt.Sprintf("         WHEN 'silver' THEN revenue * %s\n", silverRate))
		b.WriteString(fmt.Sprintf("         ELSE revenue * %s\n", bronzeRate))
		b.WriteString("       END AS reward\n")
		b.WriteString("ORDER BY reward DESC")
		return b.String()
	}

	return template.New(
		"reward_structure",
		"List every partner's revenue and tier-based reward under the standard commission splits.",
		categoryPartners,
		schemas,
		render,
		template.WithTags("partner", "reward", "commission"),
		template.WithPainPoint("Reward statements are reconciled manually against tier rules every quarter."),
	)
}

func newInactivePartners() (*template.Template, error) {
	schemas := []params.Schema{
		{Name: "since", Type: params.TypeDate, Required: true,
			Examples: []string{"2024-01-01"}},
		{Name: "tiers", Type: params.TypeArray, Required: false},
	}

	render := func(p template.Params, ctx *template.Context) string {
		var b strings.Builder
		b.WriteString("MATCH (pt:Partner)\n")
		b.WriteString(fmt.Sprintf("WHERE NOT EXISTS {\n  MATCH (pt)-[:SOURCED]->(t:Transaction)\n  WHERE t.date >= date(%s)\n}",
			quote(p.Date("since"))))
		if tiers := p.Strings("tiers"); len(tiers) > 0 {
			quoted := make([]string, len(tiers))
			for i, tier := range tiers {
				quoted[i] = quote(tier)
			}
			b.WriteString(fmt.Sprintf("\n  AND pt.tier IN [%s]", strings.Join(quoted, ", ")))
		}
		b.WriteString("\nRETURN pt.id AS id, pt.name AS partner, pt.tier AS tier\n")
		b.WriteString("ORDER BY partner")
		return b.String()
	}

	return template.New(
		"inactive_partners",
		"Find partners with no sourced transactions since a cutoff date.",
		categoryPartners,
		schemas,
		render,
		template.WithTags("partner", "activity"),
		template.WithPainPoint("Dormant partnerships linger for quarters before anyone notices."),
	)
}
