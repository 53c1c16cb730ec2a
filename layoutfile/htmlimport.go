package layoutfile

import (
	"bytes"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/matboard/model"
)

// LayoutScriptID is the id of the script tag carrying the embedded layout in
// standalone HTML exports of the web editor.
const LayoutScriptID = "mat-layout"

// UnmarshalHTML extracts the layout embedded in an HTML page and builds a
// document from it. The layout is carried in a
// <script type="application/json"> element; when several are present the one
// with id "mat-layout" wins, otherwise the first is used.
func UnmarshalHTML(r io.Reader) (*model.Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, &ParseError{Msg: "parsing HTML", Err: err}
	}

	payload, ok := findLayoutScript(doc)
	if !ok {
		return nil, &ParseError{Msg: "no embedded layout script found"}
	}
	return Unmarshal([]byte(payload))
}

// Open reads a layout file, detects its format and builds a document from
// it. It returns a *ParseError for unrecognized formats.
func Open(filename string) (*model.Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	format := Detect(filename)
	if format == Unknown {
		format = DetectData(data)
	}

	switch format {
	case JSON:
		return Unmarshal(data)
	case HTML:
		return UnmarshalHTML(bytes.NewReader(data))
	default:
		return nil, &ParseError{Msg: "unrecognized layout format: " + filename}
	}
}

// findLayoutScript walks the parse tree collecting application/json script
// bodies, preferring the one tagged with LayoutScriptID.
func findLayoutScript(n *html.Node) (string, bool) {
	var first string
	var found bool

	var walk func(*html.Node) (string, bool)
	walk = func(n *html.Node) (string, bool) {
		if n.Type == html.ElementNode && n.Data == "script" {
			var typ, id string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "type":
					typ = attr.Val
				case "id":
					id = attr.Val
				}
			}
			if typ == "application/json" {
				body := textContent(n)
				if id == LayoutScriptID {
					return body, true
				}
				if !found {
					first = body
					found = true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if body, exact := walk(c); exact {
				return body, true
			}
		}
		return "", false
	}

	if body, exact := walk(n); exact {
		return body, true
	}
	return first, found
}

// textContent returns the concatenated text beneath a node.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
