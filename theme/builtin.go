package theme

// Built-in theme names.
const (
	LightName  = "light"
	DarkName   = "dark"
	CustomName = "custom"
)

var light = Theme{
	Name:    LightName,
	Version: SchemaVersion,
	Typography: Typography{
		FontFamily:   "Inter, system-ui, -apple-system, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif",
		BaseFontSize: "16px",
		LineHeight:   1.6,
		H1:           Heading{Size: "2rem", Weight: 700},
		H2:           Heading{Size: "1.5rem", Weight: 600},
		H3:           Heading{Size: "1.25rem", Weight: 600},
		H4:           Heading{Size: "1rem", Weight: 600},
	},
	Colors: Colors{
		Background:       "#ffffff",
		Surface:          "#f8f9fb",
		Text:             "#111827",
		Headings:         "#0f172a",
		Links:            "#1d4ed8",
		LinksHover:       "#1e40af",
		CodeBackground:   "#0b1220",
		CodeText:         "#e6edf3",
		InlineCodeBg:     "#e5e7eb",
		InlineCodeText:   "#374151",
		TableHeader:      "#eef2ff",
		TableRow:         "#ffffff",
		TableRowAlt:      "#f9fafb",
		Border:           "#e5e7eb",
		BlockquoteBorder: "#d1d5db",
		BlockquoteBg:     "#f9fafb",
	},
	Spacing: Spacing{
		ParagraphSpacing: "1rem",
		ListSpacing:      "0.5rem",
		BlockSpacing:     "1.5rem",
	},
	Tables: Tables{
		BorderStyle: "solid",
		BorderWidth: "1px",
		Zebra:       true,
		CellPadding: "0.75rem",
	},
	Code: Code{
		FontFamily:   "Menlo, Monaco, 'Courier New', monospace",
		FontSize:     "0.95rem",
		LineHeight:   1.5,
		BlockPadding: "1rem",
		BorderRadius: "0.375rem",
	},
	Lists: Lists{
		BulletStyle:  "disc",
		OrderedStyle: "decimal",
		NestedIndent: "1.5rem",
	},
}

var dark = func() Theme {
	t := light
	t.Name = DarkName
	t.Colors = Colors{
		Background:       "#0f172a",
		Surface:          "#1e293b",
		Text:             "#e2e8f0",
		Headings:         "#f1f5f9",
		Links:            "#60a5fa",
		LinksHover:       "#93c5fd",
		CodeBackground:   "#020617",
		CodeText:         "#e2e8f0",
		InlineCodeBg:     "#334155",
		InlineCodeText:   "#e2e8f0",
		TableHeader:      "#1e293b",
		TableRow:         "#0f172a",
		TableRowAlt:      "#1e293b",
		Border:           "#334155",
		BlockquoteBorder: "#475569",
		BlockquoteBg:     "#1e293b",
	}
	return t
}()

var custom = func() Theme {
	t := light
	t.Name = CustomName
	return t
}()

// Light returns a copy of the built-in light theme.
func Light() Theme { return light }

// Dark returns a copy of the built-in dark theme.
func Dark() Theme { return dark }

// Custom returns a copy of the editable starting theme, a light theme
// named "custom".
func Custom() Theme { return custom }

// Get returns a copy of the built-in theme with the given name.
func Get(name string) (Theme, bool) {
	switch name {
	case LightName:
		return light, true
	case DarkName:
		return dark, true
	case CustomName:
		return custom, true
	}
	return Theme{}, false
}

// Names returns the built-in theme names in collection order.
func Names() []string {
	return []string{LightName, DarkName, CustomName}
}

// Themes returns a new collection holding copies of the built-in themes.
func Themes() *Collection {
	return NewCollection(light, dark, custom)
}
