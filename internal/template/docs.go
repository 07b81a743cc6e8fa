package template

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/graphfoundry/queryforge/internal/params"
)

// Document renders a deterministic markdown description of the template:
// heading, purpose, classification, pain point, and a parameter table. It is
// a pure function of the template's static definition.
func Document(t *Template) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", t.Name())
	fmt.Fprintf(&b, "%s\n\n", t.Purpose())
	fmt.Fprintf(&b, "**Category:** %s", t.Category())
	if tags := t.Tags(); len(tags) > 0 {
		fmt.Fprintf(&b, " · **Tags:** %s", strings.Join(tags, ", "))
	}
	b.WriteString("\n\n")

	if t.PainPoint() != "" {
		fmt.Fprintf(&b, "**Pain point:** %s\n\n", t.PainPoint())
	}

	schemas := t.Schemas()
	if len(schemas) == 0 {
		b.WriteString("This template takes no parameters.\n")
		return b.String()
	}

	table := tablewriter.NewWriter(&b)
	table.SetHeader([]string{"Parameter", "Type", "Required", "Default", "Constraints", "Examples"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")

	for _, schema := range schemas {
		table.Append([]string{
			schema.Name,
			string(schema.Type),
			yesNo(schema.Required),
			defaultText(schema.Default),
			constraintText(schema.Rule),
			strings.Join(schema.Examples, ", "),
		})
	}
	table.Render()

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func defaultText(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func constraintText(rule *params.Rule) string {
	if rule == nil {
		return ""
	}
	var parts []string
	if rule.Min != nil {
		parts = append(parts, fmt.Sprintf("min %v", *rule.Min))
	}
	if rule.Max != nil {
		parts = append(parts, fmt.Sprintf("max %v", *rule.Max))
	}
	if rule.Pattern != "" {
		parts = append(parts, fmt.Sprintf("pattern %s", rule.Pattern))
	}
	if rule.Custom != nil {
		parts = append(parts, "custom")
	}
	return strings.Join(parts, ", ")
}
