package md2html

import (
	"fmt"
	"html"
	"strings"
)

// ParsedDocument is the result of Parse.
type ParsedDocument struct {
	// HTML is the rendered fragment, sanitized unless disabled.
	HTML string

	// Metadata holds the frontmatter keys. It is nil when the input has no
	// frontmatter or extraction was disabled, never an empty map.
	Metadata map[string]string
}

// DocumentMetadata fills the author, description and keywords meta tags.
// Empty fields are not emitted.
type DocumentMetadata struct {
	Author      string
	Description string
	Keywords    string
}

// DocumentMetadataFromMap picks the author, description and keywords entries
// from frontmatter. "tags" is used when "keywords" is absent. Returns nil
// when none are set.
func DocumentMetadataFromMap(m map[string]string) *DocumentMetadata {
	meta := &DocumentMetadata{
		Author:      m["author"],
		Description: m["description"],
		Keywords:    m["keywords"],
	}
	if meta.Keywords == "" {
		meta.Keywords = m["tags"]
	}
	if *meta == (DocumentMetadata{}) {
		return nil
	}
	return meta
}

// Escaped returns a copy with every field HTML-escaped, ready for
// WithMetadata when the values come from untrusted frontmatter.
// A nil receiver returns nil.
func (m *DocumentMetadata) Escaped() *DocumentMetadata {
	if m == nil {
		return nil
	}
	return &DocumentMetadata{
		Author:      html.EscapeString(m.Author),
		Description: html.EscapeString(m.Description),
		Keywords:    html.EscapeString(m.Keywords),
	}
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// paperSizes holds portrait width and height in inches.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// PageSizes returns the accepted page sizes, default first.
func PageSizes() []string {
	return []string{PageSizeLetter, PageSizeA4, PageSizeLegal}
}

// Orientations returns the accepted orientations, default first.
func Orientations() []string {
	return []string{OrientationPortrait, OrientationLandscape}
}

// PageSettings configures PDF page dimensions. Names are matched without
// regard to case and empty fields take the defaults.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns letter portrait with half-inch margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate reports the first invalid field. A nil PageSettings is valid.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if _, ok := paperSizes[strings.ToLower(p.Size)]; p.Size != "" && !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	switch strings.ToLower(p.Orientation) {
	case "", OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin != 0 && (p.Margin < MinMargin || p.Margin > MaxMargin) {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// dimensions returns paper width, height and margin in inches. Unknown sizes
// print as letter.
func (p *PageSettings) dimensions() (width, height, margin float64) {
	paper, landscape, margin := paperSizes[PageSizeLetter], false, DefaultMargin
	if p != nil {
		if dims, ok := paperSizes[strings.ToLower(p.Size)]; ok {
			paper = dims
		}
		landscape = strings.EqualFold(p.Orientation, OrientationLandscape)
		if p.Margin != 0 {
			margin = p.Margin
		}
	}
	width, height = paper[0], paper[1]
	if landscape {
		width, height = height, width
	}
	return width, height, margin
}
