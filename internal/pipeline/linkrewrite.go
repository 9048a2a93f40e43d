package pipeline

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// linkAttr names an element attribute that holds a reference to another file.
type linkAttr struct {
	tag atom.Atom
	key string
}

var (
	anchorHrefs = []linkAttr{{atom.A, "href"}}
	fileRefs    = []linkAttr{{atom.A, "href"}, {atom.Img, "src"}, {atom.Source, "src"}, {atom.Video, "poster"}}
)

// RewriteMarkdownLinks points relative links to Markdown files at the HTML
// files a batch conversion produces: "guide.md#install" becomes
// "guide.html#install". Absolute URLs and anchors are left alone.
func RewriteMarkdownLinks(htmlContent string) (string, error) {
	if !mentionsMarkdown(htmlContent) {
		return htmlContent, nil
	}
	return rewriteAttrs(htmlContent, anchorHrefs, markdownLinkToHTML)
}

// mentionsMarkdown reports whether s may hold a link to a .md or .markdown
// file, in any case.
func mentionsMarkdown(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, ".md") || strings.Contains(lower, ".markdown")
}

// markdownLinkToHTML swaps a trailing .md or .markdown extension for .html,
// keeping any query and fragment.
func markdownLinkToHTML(href string) string {
	if !isRelativeRef(href) {
		return href
	}
	u, err := url.Parse(href)
	if err != nil || u.Path == "" {
		return href
	}

	ext := path.Ext(u.Path)
	switch strings.ToLower(ext) {
	case ".md", ".markdown":
		u.Path = u.Path[:len(u.Path)-len(ext)] + ".html"
		return u.String()
	}
	return href
}

// RewriteRelativePaths turns relative file references into file:// URLs
// rooted at sourceDir, so a headless browser loading the HTML from a temp
// file still finds images and linked files. An empty sourceDir is a no-op.
//
// References that leave sourceDir ("../x.png") are kept as written.
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}
	root, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	return rewriteAttrs(htmlContent, fileRefs, func(ref string) string {
		if !isRelativeRef(ref) {
			return ref
		}
		local := filepath.FromSlash(ref)
		if !filepath.IsLocal(local) {
			return ref
		}
		return fileURL(filepath.Join(root, local))
	})
}

// rewriteAttrs replaces every attribute listed in attrs with rewrite(value).
// Full documents render back as documents and fragments as fragments.
func rewriteAttrs(htmlContent string, attrs []linkAttr, rewrite func(string) string) (string, error) {
	t, err := parseTree(htmlContent)
	if err != nil {
		return "", err
	}

	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for i := range n.Attr {
				if matchesAttr(attrs, n.DataAtom, n.Attr[i].Key) {
					n.Attr[i].Val = rewrite(n.Attr[i].Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	for _, n := range t.nodes {
		visit(n)
	}
	return t.render()
}

func matchesAttr(attrs []linkAttr, tag atom.Atom, key string) bool {
	for _, a := range attrs {
		if a.tag == tag && a.key == key {
			return true
		}
	}
	return false
}

// tree is parsed HTML: a single document node, or the top-level nodes of a
// body fragment.
type tree struct {
	nodes []*html.Node
}

func parseTree(content string) (*tree, error) {
	head := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return nil, err
		}
		return &tree{nodes: []*html.Node{doc}}, nil
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, err
	}
	return &tree{nodes: nodes}, nil
}

func (t *tree) render() (string, error) {
	var sb strings.Builder
	for _, n := range t.nodes {
		if err := html.Render(&sb, n); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// isRelativeRef reports whether ref is a relative path, not a URL, an
// in-page anchor, or an absolute path.
func isRelativeRef(ref string) bool {
	switch {
	case ref == "", ref[0] == '#', ref[0] == '/', strings.HasPrefix(ref, `\`):
		return false
	case filepath.IsAbs(ref):
		return false
	}
	u, err := url.Parse(ref)
	return err == nil && u.Scheme == "" && u.Host == ""
}

// fileURL converts an absolute path to a file:// URL.
func fileURL(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
