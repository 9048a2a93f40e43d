package pipeline

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestCodeStyleCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		style string
	}{
		{"default style", ""},
		{"named style", "monokai"},
		{"case insensitive", "GitHub"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			css, err := CodeStyleCSS(tt.style)
			if err != nil {
				t.Fatalf("CodeStyleCSS(%q) error: %v", tt.style, err)
			}
			if !strings.Contains(css, ".md-preview .chroma") {
				t.Errorf("CodeStyleCSS(%q) missing scoped .chroma rule:\n%s", tt.style, css)
			}
			for _, line := range strings.Split(css, "\n") {
				if strings.HasPrefix(line, ".chroma") {
					t.Errorf("unscoped rule %q", line)
				}
			}
		})
	}
}

func TestCodeStyleCSS_Unknown(t *testing.T) {
	t.Parallel()

	_, err := CodeStyleCSS("no-such-style")
	if !errors.Is(err, ErrUnknownCodeStyle) {
		t.Errorf("error = %v, want ErrUnknownCodeStyle", err)
	}
}

func TestCodeStyles(t *testing.T) {
	t.Parallel()

	if !slices.Contains(CodeStyles(), DefaultCodeStyle) {
		t.Errorf("CodeStyles() should contain %q", DefaultCodeStyle)
	}
}

func TestScopeCSS(t *testing.T) {
	t.Parallel()

	in := "/* Background */ .bg { color: #000 }\n/* Keyword */ .chroma .k { color: #f00 }\nplain"
	want := "/* Background */ .md-preview .bg { color: #000 }\n/* Keyword */ .md-preview .chroma .k { color: #f00 }\nplain"

	if got := scopeCSS(in, ".md-preview"); got != want {
		t.Errorf("scopeCSS() =\n%s\nwant:\n%s", got, want)
	}
}
