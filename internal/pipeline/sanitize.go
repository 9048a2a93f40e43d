package pipeline

import (
	"regexp"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Policy is an allow-list sanitization policy.
type Policy struct {
	AllowedTags       []string
	AllowedAttributes []string
	AllowedURLSchemes []string
	AllowRelativeURLs bool
	// KeepContent unwraps disallowed elements instead of removing them
	// with their content. Script and style content is always removed.
	KeepContent bool
}

// DefaultPolicy returns the allow-list used for rendered Markdown.
func DefaultPolicy() Policy {
	return Policy{
		AllowedTags: []string{
			"h1", "h2", "h3", "h4", "h5", "h6",
			"p", "br", "hr",
			"strong", "em", "del", "ins", "mark",
			"code", "pre", "blockquote",
			"ul", "ol", "li",
			"a", "img",
			"table", "thead", "tbody", "tfoot", "tr", "th", "td",
			"div", "span", "input",
		},
		AllowedAttributes: []string{
			"href", "title", "alt", "src", "class", "id",
			"type", "checked", "disabled",
			"align", "colspan", "rowspan",
		},
		AllowedURLSchemes: []string{
			"http", "https", "ftp", "ftps",
			"mailto", "tel", "callto", "sms", "cid", "xmpp",
		},
		AllowRelativeURLs: true,
		KeepContent:       true,
	}
}

// PolicyOverrides replaces individual policy keys. Nil fields keep the
// current value; a set field replaces the whole key, lists are not unioned.
type PolicyOverrides struct {
	AllowedTags       []string
	AllowedAttributes []string
	AllowedURLSchemes []string
	AllowRelativeURLs *bool
	KeepContent       *bool
}

// IsZero reports whether no key is overridden.
func (o *PolicyOverrides) IsZero() bool {
	return o == nil || (o.AllowedTags == nil && o.AllowedAttributes == nil &&
		o.AllowedURLSchemes == nil && o.AllowRelativeURLs == nil && o.KeepContent == nil)
}

// Merge returns a copy of p with the set keys of o applied.
func (p Policy) Merge(o *PolicyOverrides) Policy {
	merged := Policy{
		AllowedTags:       slices.Clone(p.AllowedTags),
		AllowedAttributes: slices.Clone(p.AllowedAttributes),
		AllowedURLSchemes: slices.Clone(p.AllowedURLSchemes),
		AllowRelativeURLs: p.AllowRelativeURLs,
		KeepContent:       p.KeepContent,
	}
	if o == nil {
		return merged
	}
	if o.AllowedTags != nil {
		merged.AllowedTags = slices.Clone(o.AllowedTags)
	}
	if o.AllowedAttributes != nil {
		merged.AllowedAttributes = slices.Clone(o.AllowedAttributes)
	}
	if o.AllowedURLSchemes != nil {
		merged.AllowedURLSchemes = slices.Clone(o.AllowedURLSchemes)
	}
	if o.AllowRelativeURLs != nil {
		merged.AllowRelativeURLs = *o.AllowRelativeURLs
	}
	if o.KeepContent != nil {
		merged.KeepContent = *o.KeepContent
	}
	return merged
}

// knownElements lists the HTML elements excised when KeepContent is false.
// Unknown tags are still unwrapped by bluemonday.
var knownElements = []string{
	"a", "abbr", "address", "area", "article", "aside", "audio",
	"b", "base", "bdi", "bdo", "blockquote", "body", "br", "button",
	"canvas", "caption", "center", "cite", "code", "col", "colgroup",
	"data", "datalist", "dd", "del", "details", "dfn", "dialog", "div", "dl", "dt",
	"em", "embed", "fieldset", "figcaption", "figure", "font", "footer", "form",
	"h1", "h2", "h3", "h4", "h5", "h6", "head", "header", "hgroup", "hr", "html",
	"i", "iframe", "img", "input", "ins", "kbd", "label", "legend", "li", "link",
	"main", "map", "mark", "math", "menu", "meta", "meter", "nav", "noscript",
	"object", "ol", "optgroup", "option", "output", "p", "param", "picture", "pre", "progress",
	"q", "rp", "rt", "ruby", "s", "samp", "script", "search", "section", "select",
	"slot", "small", "source", "span", "strong", "style", "sub", "summary", "sup", "svg",
	"table", "tbody", "td", "template", "textarea", "tfoot", "th", "thead", "time",
	"title", "tr", "track", "u", "ul", "var", "video", "wbr",
}

// Sanitizer applies a compiled Policy. It is safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer compiles p into a bluemonday policy.
func NewSanitizer(p Policy) *Sanitizer {
	bm := bluemonday.NewPolicy()

	tags := lowerAll(p.AllowedTags)
	if len(tags) > 0 {
		bm.AllowElements(tags...)
	}
	if attrs := lowerAll(p.AllowedAttributes); len(attrs) > 0 {
		bm.AllowAttrs(attrs...).Globally()
	}

	// Parseable URLs are always required so that an empty scheme list
	// rejects every absolute URL instead of accepting all of them.
	bm.RequireParseableURLs(true)
	if schemes := lowerAll(p.AllowedURLSchemes); len(schemes) > 0 {
		bm.AllowURLSchemes(schemes...)
	}
	bm.AllowRelativeURLs(p.AllowRelativeURLs)

	if !p.KeepContent {
		var skip []string
		for _, name := range knownElements {
			if !slices.Contains(tags, name) {
				skip = append(skip, name)
			}
		}
		bm.SkipElementsContent(skip...)
	}

	return &Sanitizer{policy: bm}
}

// Sanitize returns html filtered through the policy. It never fails.
func (s *Sanitizer) Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return s.policy.Sanitize(html)
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Dangerous content heuristics
// ---------------------------------------------------------------------------

// contentProbe is a regular expression looking for one kind of unsafe markup.
type contentProbe struct {
	label   string
	pattern *regexp.Regexp
	report  bool
}

// Probes are independent and run on the unsanitized input. Report order is
// the order below.
var contentProbes = []contentProbe{
	{label: "script tags", pattern: regexp.MustCompile(`(?is)<script\b.*?</script>`), report: true},
	{label: "event handlers", pattern: regexp.MustCompile(`(?i)on\w+\s*=`), report: true},
	{label: "javascript: protocols", pattern: regexp.MustCompile(`(?i)javascript:`), report: true},
	{label: "data:text/html URIs", pattern: regexp.MustCompile(`(?i)data:text/html`)},
	{label: "iframe elements", pattern: regexp.MustCompile(`(?i)<iframe`), report: true},
	{label: "object elements", pattern: regexp.MustCompile(`(?i)<object`)},
	{label: "embed elements", pattern: regexp.MustCompile(`(?i)<embed`)},
}

// HasDangerousContent reports whether any probe matches html.
// It is a fast pre-check, not an enforcement mechanism.
func HasDangerousContent(html string) bool {
	for _, probe := range contentProbes {
		if probe.pattern.MatchString(html) {
			return true
		}
	}
	return false
}

// DetectDangerousContent returns the labels of the reported probes that
// match html. The result describes what was present before sanitization,
// not a verified diff. It is never nil.
func DetectDangerousContent(html string) []string {
	found := []string{}
	for _, probe := range contentProbes {
		if probe.report && probe.pattern.MatchString(html) {
			found = append(found, probe.label)
		}
	}
	return found
}
