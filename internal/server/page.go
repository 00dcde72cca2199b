package server

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"yashubustudio/samas/samas"
)

const (
	pageTitle       = "हिंदी समास पहचान और व्याख्या"
	inputHeading    = "हिंदी पाठ दर्ज करें:"
	submitLabel     = "पाठ संसाधित करें"
	expandedHeading = "संशोधित पाठ:"
	listingHeading  = "पहचाने गए समास और उनके प्रकार:"
	elapsedHeading  = "प्रतिक्रिया समय:"
	emptyWarning    = "कृपया कुछ पाठ दर्ज करें।"
	secondsSuffix   = "सेकंड"
)

const pageStyle = `
body { font-family: Arial, sans-serif; background: linear-gradient(135deg, #ff9a9e, #fad0c4); margin: 0; padding: 2rem; }
main { max-width: 860px; margin: 0 auto; }
h1 { color: #333366; text-align: center; }
textarea { width: 100%; min-height: 10rem; border-radius: 10px; padding: 10px; box-sizing: border-box; }
button { background: #4CAF50; color: white; font-size: 18px; border: 0; border-radius: 10px; padding: .5rem 1.5rem; margin-top: .5rem; }
.output-box { background: white; border-radius: 10px; padding: 10px; }
.warning { background: #fff3cd; border-radius: 10px; padding: 10px; }
`

// pageData is what the form page shows below the input.
type pageData struct {
	Text    string
	Warning bool
	Result  *samas.Result
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func appendAll(parent *html.Node, children ...*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}

// multiline renders s inside a div, turning newlines into <br> elements.
func multiline(class, s string) *html.Node {
	div := element(atom.Div, "class", class)
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			div.AppendChild(element(atom.Br))
		}
		if line != "" {
			div.AppendChild(textNode(line))
		}
	}
	return div
}

func buildPage(d pageData) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	head := appendAll(element(atom.Head),
		element(atom.Meta, "charset", "utf-8"),
		element(atom.Meta, "name", "viewport", "content", "width=device-width, initial-scale=1"),
		appendAll(element(atom.Title), textNode(pageTitle)),
		appendAll(element(atom.Style), textNode(pageStyle)),
	)

	form := appendAll(element(atom.Form, "method", "post", "action", "/"),
		appendAll(element(atom.Label, "for", "text"), textNode(inputHeading)),
		appendAll(element(atom.Textarea, "id", "text", "name", "text"), textNode(d.Text)),
		appendAll(element(atom.Button, "type", "submit"), textNode(submitLabel)),
	)

	content := appendAll(element(atom.Main),
		appendAll(element(atom.H1), textNode(pageTitle)),
		form,
	)
	switch {
	case d.Warning:
		content.AppendChild(appendAll(element(atom.P, "class", "warning"), textNode(emptyWarning)))
	case d.Result != nil:
		appendAll(content,
			appendAll(element(atom.H2), textNode(expandedHeading)),
			multiline("output-box expanded", d.Result.Expanded),
			appendAll(element(atom.H2), textNode(listingHeading)),
			multiline("output-box listing", d.Result.Listing()),
			appendAll(element(atom.H2), textNode(elapsedHeading)),
			appendAll(element(atom.P, "class", "elapsed"), textNode(d.Result.ElapsedSeconds()+" "+secondsSuffix)),
		)
	}

	root := appendAll(element(atom.Html, "lang", "hi"), head, appendAll(element(atom.Body), content))
	doc.AppendChild(root)
	return doc
}

func renderPage(w io.Writer, d pageData) error {
	return html.Render(w, buildPage(d))
}
