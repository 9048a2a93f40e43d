package md2html

import (
	"sync"

	"github.com/alnah/go-md2html/internal/pipeline"
)

// Policy is an allow-list sanitization policy: tags, attributes and URL
// schemes that survive, and whether disallowed elements keep their content.
type Policy = pipeline.Policy

// PolicyOverrides replaces individual keys of the default policy. A set
// field replaces the whole key: a custom AllowedTags list is used as is,
// not merged with the defaults.
type PolicyOverrides = pipeline.PolicyOverrides

// DefaultPolicy returns the policy applied to rendered Markdown.
func DefaultPolicy() Policy {
	return pipeline.DefaultPolicy()
}

// SanitizeReport is the result of SanitizeWithReport.
type SanitizeReport struct {
	HTML string

	// Removed labels the dangerous constructs found in the input before
	// sanitization, in a fixed order. It is approximate: a label means the
	// construct was present, not that it was verified as stripped.
	Removed []string
}

var defaultSanitizer = sync.OnceValue(func() *pipeline.Sanitizer {
	return pipeline.NewSanitizer(pipeline.DefaultPolicy())
})

// Sanitize filters html through the default policy with overrides applied.
// It never fails and is idempotent. Pass nil to use the defaults.
func Sanitize(html string, overrides *PolicyOverrides) string {
	if overrides.IsZero() {
		return defaultSanitizer().Sanitize(html)
	}
	return pipeline.NewSanitizer(pipeline.DefaultPolicy().Merge(overrides)).Sanitize(html)
}

// HasDangerousContent reports whether html contains script blocks, event
// handler attributes, javascript: or data:text/html URLs, or iframe, object
// or embed tags. It is a fast heuristic for reporting; Sanitize is the
// enforcement.
func HasDangerousContent(html string) bool {
	return pipeline.HasDangerousContent(html)
}

// SanitizeWithReport sanitizes html with the default policy and lists the
// script tags, event handlers, javascript: protocols and iframe elements
// detected beforehand.
func SanitizeWithReport(html string) SanitizeReport {
	return SanitizeReport{
		HTML:    defaultSanitizer().Sanitize(html),
		Removed: pipeline.DetectDangerousContent(html),
	}
}
