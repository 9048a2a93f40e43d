package pipeline

import (
	"context"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PrintStyler adds page rules to a finished document before printing.
type PrintStyler interface {
	AddPrintStyle(ctx context.Context, doc, css string) string
}

// HeadStyler places a <style media="print"> element at the end of the
// document head. Documents without a head get it right after <body>, and
// bare fragments get it prepended.
type HeadStyler struct{}

var _ PrintStyler = HeadStyler{}

func (HeadStyler) AddPrintStyle(ctx context.Context, doc, css string) string {
	if css == "" || ctx.Err() != nil {
		return doc
	}
	block := `<style media="print">` + escapeStyleText(css) + "</style>"
	at := styleOffset(doc)
	return doc[:at] + block + doc[at:]
}

// styleOffset scans doc with the HTML tokenizer, so tags inside scripts,
// comments or attribute values are never mistaken for the head boundary.
func styleOffset(doc string) int {
	z := html.NewTokenizer(strings.NewReader(doc))
	offset, afterBody := 0, -1
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		n := len(z.Raw())
		switch tt {
		case html.EndTagToken:
			if name, _ := z.TagName(); atom.Lookup(name) == atom.Head {
				return offset
			}
		case html.StartTagToken:
			if name, _ := z.TagName(); afterBody < 0 && atom.Lookup(name) == atom.Body {
				afterBody = offset + n
			}
		}
		offset += n
	}
	if afterBody >= 0 {
		return afterBody
	}
	return 0
}

// escapeStyleText keeps CSS from closing the <style> element it is placed in.
func escapeStyleText(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
