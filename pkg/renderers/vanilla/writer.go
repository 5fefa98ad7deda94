package vanilla

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-cardgen/pkg/visual"
)

// nodeWriter serialises a visual tree to HTML. Text is escaped; document
// markup goes through the sanitising policy.
type nodeWriter struct {
	b      strings.Builder
	policy *bluemonday.Policy
}

func writeHTML(root *visual.Node, policy *bluemonday.Policy) string {
	if root == nil {
		return ""
	}
	w := &nodeWriter{policy: policy}
	w.node(root)
	return w.b.String()
}

func (w *nodeWriter) node(n *visual.Node) {
	tag := strings.ToLower(strings.TrimSpace(n.Tag))
	if tag == "" {
		tag = "div"
	}

	w.b.WriteString("<" + tag)
	w.attr("id", n.ID)
	w.attr("class", strings.Join(n.Classes, " "))
	for _, name := range n.AttrNames() {
		if !validAttrName(name) || unsafeURL(name, n.Attrs[name]) {
			continue
		}
		w.attr(name, n.Attrs[name])
	}
	if len(n.Style) > 0 {
		decls := make([]string, 0, len(n.Style))
		for _, prop := range n.StyleNames() {
			decls = append(decls, prop+": "+n.Style[prop])
		}
		w.attr("style", strings.Join(decls, "; "))
	}
	w.b.WriteString(">")
	if isVoid(tag) {
		return
	}

	if n.Text != "" {
		w.b.WriteString(html.EscapeString(n.Text))
	}
	if n.Markup != "" {
		w.b.WriteString(w.policy.Sanitize(n.Markup))
	}
	for _, child := range n.Children {
		if child != nil {
			w.node(child)
		}
	}
	w.b.WriteString("</" + tag + ">")
}

func (w *nodeWriter) attr(name, value string) {
	if value == "" {
		return
	}
	w.b.WriteString(" " + name + `="` + html.EscapeString(value) + `"`)
}

func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, " \t\n\f\r\"'<>/=")
}

func unsafeURL(name, value string) bool {
	switch name {
	case "src", "href", "action", "formaction":
	default:
		return false
	}
	scheme := strings.ToLower(strings.TrimSpace(value))
	return strings.HasPrefix(scheme, "javascript:") || strings.HasPrefix(scheme, "vbscript:")
}
