package theme

// SchemaVersion is the theme JSON version written by this package.
// Documents without a version import with Version 0, meaning unversioned;
// versions above SchemaVersion are rejected.
const SchemaVersion = 1

// Theme is a complete set of document style values.
type Theme struct {
	Name       string     `json:"name"`
	Version    int        `json:"version,omitempty"`
	Typography Typography `json:"typography"`
	Colors     Colors     `json:"colors"`
	Spacing    Spacing    `json:"spacing"`
	Tables     Tables     `json:"tables"`
	Code       Code       `json:"code"`
	Lists      Lists      `json:"lists"`
}

// Heading is the size and weight of one heading level.
type Heading struct {
	Size   string `json:"size"`
	Weight int    `json:"weight"`
}

// Typography holds body and heading font settings.
type Typography struct {
	FontFamily   string  `json:"fontFamily"`
	BaseFontSize string  `json:"baseFontSize"`
	LineHeight   float64 `json:"lineHeight"`
	H1           Heading `json:"h1"`
	H2           Heading `json:"h2"`
	H3           Heading `json:"h3"`
	H4           Heading `json:"h4"`
}

// Colors holds the color roles used by the stylesheet.
type Colors struct {
	Background       string `json:"background"`
	Surface          string `json:"surface"`
	Text             string `json:"text"`
	Headings         string `json:"headings"`
	Links            string `json:"links"`
	LinksHover       string `json:"linksHover"`
	CodeBackground   string `json:"codeBackground"`
	CodeText         string `json:"codeText"`
	InlineCodeBg     string `json:"inlineCodeBg"`
	InlineCodeText   string `json:"inlineCodeText"`
	TableHeader      string `json:"tableHeader"`
	TableRow         string `json:"tableRow"`
	TableRowAlt      string `json:"tableRowAlt"`
	Border           string `json:"border"`
	BlockquoteBorder string `json:"blockquoteBorder"`
	BlockquoteBg     string `json:"blockquoteBg"`
}

// Spacing holds vertical rhythm values.
type Spacing struct {
	ParagraphSpacing string `json:"paragraphSpacing"`
	ListSpacing      string `json:"listSpacing"`
	BlockSpacing     string `json:"blockSpacing"`
}

// Tables holds table border and row settings.
type Tables struct {
	BorderStyle string `json:"borderStyle"`
	BorderWidth string `json:"borderWidth"`
	Zebra       bool   `json:"zebra"`
	CellPadding string `json:"cellPadding"`
}

// Code holds inline code and code block settings.
type Code struct {
	FontFamily   string  `json:"fontFamily"`
	FontSize     string  `json:"fontSize"`
	LineHeight   float64 `json:"lineHeight"`
	BlockPadding string  `json:"blockPadding"`
	BorderRadius string  `json:"borderRadius"`
}

// Lists holds list marker and indentation settings.
type Lists struct {
	BulletStyle  string `json:"bulletStyle"`
	OrderedStyle string `json:"orderedStyle"`
	NestedIndent string `json:"nestedIndent"`
}

// Clone returns an independent copy of t. Theme holds no references, so
// this is a plain copy; it exists to make edits of built-ins explicit.
func Clone(t Theme) Theme {
	return t
}
