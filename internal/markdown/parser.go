// Package markdown renders markdown files for preview, with GFM extensions and syntax highlighting.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

var (
	anchorDisallowed = regexp.MustCompile(`[^a-z0-9\-\p{Han}\p{Hiragana}\p{Katakana}]`)
	anchorDashes     = regexp.MustCompile(`-+`)
)

// Heading is one entry of a document outline
type Heading struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// Document is a rendered markdown file
type Document struct {
	HTML      string    `json:"html"`
	Outline   []Heading `json:"outline"`
	Title     string    `json:"title"`
	Words     int       `json:"words"`
	Checked   int       `json:"checked"`
	Unchecked int       `json:"unchecked"`
}

// Renderer converts markdown to HTML with goldmark
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a renderer with GFM, highlighting and heading IDs enabled.
// style names a chroma style, "monokai" when empty.
func NewRenderer(style string) *Renderer {
	if style == "" {
		style = "monokai"
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			html.WithUnsafe(),
		),
	)

	return &Renderer{md: md}
}

// Render converts markdown source to HTML and collects its outline
func (r *Renderer) Render(source string) (*Document, error) {
	src := []byte(source)

	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return nil, err
	}

	doc := &Document{
		HTML:  buf.String(),
		// Rough count, markup tokens included
		Words: len(strings.Fields(source)),
	}
	r.inspect(src, doc)
	if len(doc.Outline) > 0 {
		doc.Title = doc.Outline[0].Title
	}
	return doc, nil
}

// inspect walks the AST once for headings and task list boxes
func (r *Renderer) inspect(source []byte, doc *Document) {
	// Convert does not expose its AST, so parse a second time
	root := r.md.Parser().Parse(text.NewReader(source))

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			title := plainText(node, source)
			doc.Outline = append(doc.Outline, Heading{
				Level:  node.Level,
				Title:  title,
				Anchor: anchorFor(title),
			})
		case *extast.TaskCheckBox:
			if node.IsChecked {
				doc.Checked++
			} else {
				doc.Unchecked++
			}
		}
		return ast.WalkContinue, nil
	})
}

// plainText concatenates the text children of a node
func plainText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.String()
}

// anchorFor creates a URL-safe anchor from a heading title
func anchorFor(title string) string {
	anchor := strings.ToLower(title)
	// Spaces become hyphens
	anchor = strings.ReplaceAll(anchor, " ", "-")
	// Keep ASCII letters, digits, hyphens and CJK characters
	anchor = anchorDisallowed.ReplaceAllString(anchor, "")
	// Collapse runs of hyphens
	anchor = anchorDashes.ReplaceAllString(anchor, "-")
	return strings.Trim(anchor, "-")
}
