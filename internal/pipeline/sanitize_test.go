package pipeline

import (
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestSanitizer_DefaultPolicy - Allow-list Behavior
// ---------------------------------------------------------------------------

func TestSanitizer_DefaultPolicy(t *testing.T) {
	t.Parallel()

	s := NewSanitizer(DefaultPolicy())

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "script removed with content",
			input:        "<script>alert(1)</script><p>ok</p>",
			wantContains: []string{"<p>ok</p>"},
			wantNot:      []string{"<script", "alert(1)"},
		},
		{
			name:         "event handler attribute removed",
			input:        `<p onclick="steal()">text</p>`,
			wantContains: []string{"<p>text</p>"},
			wantNot:      []string{"onclick", "steal()"},
		},
		{
			name:         "javascript href removed, text kept",
			input:        `<a href="javascript:alert(1)">click</a>`,
			wantContains: []string{"click"},
			wantNot:      []string{"javascript:", "<a"},
		},
		{
			name:         "uppercase javascript scheme removed",
			input:        `<a href="JAVASCRIPT:alert(1)">click</a>`,
			wantContains: []string{"click"},
			wantNot:      []string{"JAVASCRIPT:", "<a"},
		},
		{
			name:    "data html URI removed",
			input:   `<a href="data:text/html;base64,PHNjcmlwdD4=">x</a>`,
			wantNot: []string{"data:text/html"},
		},
		{
			name:         "iframe removed",
			input:        `<iframe src="https://evil.example"></iframe><p>after</p>`,
			wantContains: []string{"<p>after</p>"},
			wantNot:      []string{"<iframe"},
		},
		{
			name:         "object and embed removed",
			input:        `<object data="x.swf"></object><embed src="x.swf"><p>after</p>`,
			wantContains: []string{"<p>after</p>"},
			wantNot:      []string{"<object", "<embed"},
		},
		{
			name:         "disallowed element unwrapped",
			input:        "<section><p>inside</p></section>",
			wantContains: []string{"<p>inside</p>"},
			wantNot:      []string{"<section"},
		},
		{
			name:         "style content removed",
			input:        "<style>body{display:none}</style><p>ok</p>",
			wantContains: []string{"<p>ok</p>"},
			wantNot:      []string{"display:none"},
		},
		{
			name:         "allowed schemes kept",
			input:        `<a href="mailto:a@example.com">m</a><a href="https://example.com">h</a>`,
			wantContains: []string{`href="mailto:a@example.com"`, `href="https://example.com"`},
		},
		{
			name:         "relative URLs kept",
			input:        `<a href="/docs/page.html#top">r</a><img src="image.png" alt="pic">`,
			wantContains: []string{`href="/docs/page.html#top"`, `src="image.png"`, `alt="pic"`},
		},
		{
			name:         "heading ids kept",
			input:        `<h1 id="hello-world">Hello World</h1>`,
			wantContains: []string{`<h1 id="hello-world">Hello World</h1>`},
		},
		{
			name:         "task list checkbox kept",
			input:        `<li><input checked="" disabled="" type="checkbox"> Done</li>`,
			wantContains: []string{"<input", `checked=""`, `disabled=""`, `type="checkbox"`},
		},
		{
			name:         "disallowed attribute removed",
			input:        `<p style="color:red" class="note">x</p>`,
			wantContains: []string{`<p class="note">x</p>`},
			wantNot:      []string{"style="},
		},
		{
			name:         "table attributes kept",
			input:        `<table><tr><td colspan="2" align="left">c</td></tr></table>`,
			wantContains: []string{`colspan="2"`, `align="left"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := s.Sanitize(tt.input)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\ngot: %s", want, got)
				}
			}
			for _, notWant := range tt.wantNot {
				if strings.Contains(got, notWant) {
					t.Errorf("output should not contain %q\ngot: %s", notWant, got)
				}
			}
		})
	}
}

func TestSanitizer_EmptyInput(t *testing.T) {
	t.Parallel()

	if got := NewSanitizer(DefaultPolicy()).Sanitize(""); got != "" {
		t.Errorf("Sanitize(\"\") = %q, want empty", got)
	}
}

func TestSanitizer_Idempotent(t *testing.T) {
	t.Parallel()

	s := NewSanitizer(DefaultPolicy())
	inputs := []string{
		"<p>plain</p>",
		"<script>x</script><p onclick=\"y\">z</p>",
		`<a href="javascript:void(0)">a</a><a href="https://example.com?q=1&r=2">b</a>`,
		"<div><section><em>nested</em></section></div>",
		`<ul><li><input type="checkbox" checked disabled> t</li></ul>`,
		"<p>5 &lt; 6 &amp;&amp; \"quoted\"</p>",
		"<table><thead><tr><th>A</th></tr></thead><tbody><tr><td>1</td></tr></tbody></table>",
		"unclosed <b>bold <i>italic",
	}

	for _, input := range inputs {
		once := s.Sanitize(input)
		twice := s.Sanitize(once)
		if once != twice {
			t.Errorf("not idempotent for %q\nonce:  %s\ntwice: %s", input, once, twice)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPolicy_Merge - Override Semantics
// ---------------------------------------------------------------------------

func TestPolicy_Merge(t *testing.T) {
	t.Parallel()

	t.Run("nil overrides keep defaults", func(t *testing.T) {
		t.Parallel()

		base := DefaultPolicy()
		merged := base.Merge(nil)
		if !slices.Equal(merged.AllowedTags, base.AllowedTags) {
			t.Errorf("AllowedTags changed: %v", merged.AllowedTags)
		}
		if merged.KeepContent != base.KeepContent || merged.AllowRelativeURLs != base.AllowRelativeURLs {
			t.Error("boolean keys changed")
		}
	})

	t.Run("set list replaces whole key", func(t *testing.T) {
		t.Parallel()

		merged := DefaultPolicy().Merge(&PolicyOverrides{AllowedTags: []string{"p"}})
		if !slices.Equal(merged.AllowedTags, []string{"p"}) {
			t.Errorf("AllowedTags = %v, want [p]", merged.AllowedTags)
		}
		if !slices.Equal(merged.AllowedAttributes, DefaultPolicy().AllowedAttributes) {
			t.Error("untouched key AllowedAttributes changed")
		}
	})

	t.Run("merge does not alias overrides", func(t *testing.T) {
		t.Parallel()

		tags := []string{"p", "em"}
		merged := DefaultPolicy().Merge(&PolicyOverrides{AllowedTags: tags})
		tags[0] = "script"
		if merged.AllowedTags[0] != "p" {
			t.Errorf("merged policy aliases override slice: %v", merged.AllowedTags)
		}
	})

	t.Run("boolean pointers applied", func(t *testing.T) {
		t.Parallel()

		off := false
		merged := DefaultPolicy().Merge(&PolicyOverrides{KeepContent: &off, AllowRelativeURLs: &off})
		if merged.KeepContent || merged.AllowRelativeURLs {
			t.Errorf("booleans not overridden: %+v", merged)
		}
	})
}

func TestPolicyOverrides_IsZero(t *testing.T) {
	t.Parallel()

	var nilOverrides *PolicyOverrides
	if !nilOverrides.IsZero() {
		t.Error("nil overrides should be zero")
	}
	if !(&PolicyOverrides{}).IsZero() {
		t.Error("empty overrides should be zero")
	}
	if (&PolicyOverrides{AllowedTags: []string{}}).IsZero() {
		t.Error("empty but set tag list should not be zero")
	}
}

// ---------------------------------------------------------------------------
// TestSanitizer_Overrides - Custom Policies
// ---------------------------------------------------------------------------

func TestSanitizer_Overrides(t *testing.T) {
	t.Parallel()

	off := false

	tests := []struct {
		name         string
		overrides    *PolicyOverrides
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "replaced tag list unwraps former tags",
			overrides:    &PolicyOverrides{AllowedTags: []string{"p"}},
			input:        "<p><strong>bold</strong></p>",
			wantContains: []string{"<p>bold</p>"},
			wantNot:      []string{"<strong>"},
		},
		{
			name:         "keep content off excises disallowed elements",
			overrides:    &PolicyOverrides{KeepContent: &off},
			input:        "<section>hidden</section><p>shown</p>",
			wantContains: []string{"<p>shown</p>"},
			wantNot:      []string{"hidden"},
		},
		{
			name:         "relative URLs disabled",
			overrides:    &PolicyOverrides{AllowRelativeURLs: &off},
			input:        `<a href="/local">l</a><a href="https://example.com">r</a>`,
			wantContains: []string{`href="https://example.com"`},
			wantNot:      []string{`href="/local"`},
		},
		{
			name:         "empty scheme list rejects absolute URLs",
			overrides:    &PolicyOverrides{AllowedURLSchemes: []string{}},
			input:        `<a href="https://example.com">r</a><a href="page.html">p</a>`,
			wantContains: []string{`href="page.html"`},
			wantNot:      []string{"https://example.com"},
		},
		{
			name:         "uppercase names normalized",
			overrides:    &PolicyOverrides{AllowedTags: []string{"P", "Section"}},
			input:        "<section><p>x</p></section>",
			wantContains: []string{"<section><p>x</p></section>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewSanitizer(DefaultPolicy().Merge(tt.overrides))
			got := s.Sanitize(tt.input)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\ngot: %s", want, got)
				}
			}
			for _, notWant := range tt.wantNot {
				if strings.Contains(got, notWant) {
					t.Errorf("output should not contain %q\ngot: %s", notWant, got)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHasDangerousContent / TestDetectDangerousContent - Heuristics
// ---------------------------------------------------------------------------

func TestHasDangerousContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain paragraph", "<p>hello</p>", false},
		{"empty", "", false},
		{"script block", "<script>alert(1)</script>", true},
		{"multiline script block", "<SCRIPT type=\"x\">\nalert(1)\n</SCRIPT>", true},
		{"unterminated script", "<script>alert(1)", false},
		{"event handler", `<img src=x onerror="a()">`, true},
		{"event handler with spaces", `<p onmouseover = "a()">`, true},
		{"javascript scheme", `<a href="JavaScript:x">`, true},
		{"data html", `<a href="data:text/html,x">`, true},
		{"iframe", "<IFRAME src=x>", true},
		{"object", "<object data=x>", true},
		{"embed", "<embed src=x>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := HasDangerousContent(tt.input); got != tt.want {
				t.Errorf("HasDangerousContent(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDetectDangerousContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "clean input",
			input: "<p>fine</p>",
			want:  []string{},
		},
		{
			name:  "all reported kinds in fixed order",
			input: `<iframe></iframe><a href="javascript:x" onclick="y">z</a><script>s</script>`,
			want:  []string{"script tags", "event handlers", "javascript: protocols", "iframe elements"},
		},
		{
			name:  "object and embed not reported",
			input: "<object></object><embed>",
			want:  []string{},
		},
		{
			name:  "event handler only",
			input: `<div onload="x">`,
			want:  []string{"event handlers"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := DetectDangerousContent(tt.input)
			if got == nil {
				t.Fatal("DetectDangerousContent returned nil, want non-nil slice")
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("DetectDangerousContent() = %v, want %v", got, tt.want)
			}
		})
	}
}
