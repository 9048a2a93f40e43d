package theme

import (
	"strconv"
	"strings"
)

// Variable is one CSS custom property.
type Variable struct {
	Name  string // including the leading "--"
	Value string
}

// VariableGroups returns the custom properties of t grouped as typography,
// colors, spacing, tables, code and lists. Name, version and the zebra flag
// are not properties: zebra switches a stylesheet rule instead.
func VariableGroups(t Theme) [][]Variable {
	ty, c, s, tb, cd, l := t.Typography, t.Colors, t.Spacing, t.Tables, t.Code, t.Lists

	return [][]Variable{
		{
			{"--font-family", ty.FontFamily},
			{"--font-size-base", ty.BaseFontSize},
			{"--line-height", formatNumber(ty.LineHeight)},
			{"--h1-size", ty.H1.Size},
			{"--h1-weight", strconv.Itoa(ty.H1.Weight)},
			{"--h2-size", ty.H2.Size},
			{"--h2-weight", strconv.Itoa(ty.H2.Weight)},
			{"--h3-size", ty.H3.Size},
			{"--h3-weight", strconv.Itoa(ty.H3.Weight)},
			{"--h4-size", ty.H4.Size},
			{"--h4-weight", strconv.Itoa(ty.H4.Weight)},
		},
		{
			{"--color-background", c.Background},
			{"--color-surface", c.Surface},
			{"--color-text", c.Text},
			{"--color-headings", c.Headings},
			{"--color-links", c.Links},
			{"--color-links-hover", c.LinksHover},
			{"--color-code-bg", c.CodeBackground},
			{"--color-code-text", c.CodeText},
			{"--color-inline-code-bg", c.InlineCodeBg},
			{"--color-inline-code-text", c.InlineCodeText},
			{"--color-table-header", c.TableHeader},
			{"--color-table-row", c.TableRow},
			{"--color-table-row-alt", c.TableRowAlt},
			{"--color-border", c.Border},
			{"--color-blockquote-border", c.BlockquoteBorder},
			{"--color-blockquote-bg", c.BlockquoteBg},
		},
		{
			{"--spacing-paragraph", s.ParagraphSpacing},
			{"--spacing-list", s.ListSpacing},
			{"--spacing-block", s.BlockSpacing},
		},
		{
			{"--table-border-style", tb.BorderStyle},
			{"--table-border-width", tb.BorderWidth},
			{"--table-cell-padding", tb.CellPadding},
		},
		{
			{"--code-font-family", cd.FontFamily},
			{"--code-font-size", cd.FontSize},
			{"--code-line-height", formatNumber(cd.LineHeight)},
			{"--code-block-padding", cd.BlockPadding},
			{"--code-border-radius", cd.BorderRadius},
		},
		{
			{"--list-bullet-style", l.BulletStyle},
			{"--list-ordered-style", l.OrderedStyle},
			{"--list-nested-indent", l.NestedIndent},
		},
	}
}

// CSSVariables renders t as "--name: value;" lines with a blank line
// between groups. The output has no surrounding selector.
func CSSVariables(t Theme) string {
	var sb strings.Builder
	for i, group := range VariableGroups(t) {
		if i > 0 {
			sb.WriteString("\n")
		}
		for _, v := range group {
			sb.WriteString(v.Name)
			sb.WriteString(": ")
			sb.WriteString(v.Value)
			sb.WriteString(";\n")
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// formatNumber prints the shortest representation, so 1.6 stays "1.6"
// and 2 prints as "2".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
