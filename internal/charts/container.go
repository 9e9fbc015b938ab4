package charts

import (
	"bytes"
	"fmt"
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderContainer returns an empty <div> that hosts a chart. elementID always
// wins over an "id" entry in attrs. Attribute values are escaped; attribute
// names must be plain HTML attribute names.
func (g *Generator) RenderContainer(elementID string, attrs map[string]string) (string, error) {
	if elementID == "" {
		return "", ErrEmptyElementID
	}

	node := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "id", Val: elementID}},
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if k == "id" {
			continue
		}
		if !isAttributeName(k) {
			return "", formatErr("attributes", -1, "invalid attribute name %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		node.Attr = append(node.Attr, html.Attribute{Key: k, Val: attrs[k]})
	}

	return renderNode(node)
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("failed to render %s element: %w", n.Data, err)
	}
	return buf.String(), nil
}

func isAttributeName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_' || r == ':' || r == '.'):
		default:
			return false
		}
	}
	return true
}
