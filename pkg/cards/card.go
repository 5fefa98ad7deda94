package cards

import (
	"fmt"

	"github.com/goliatone/go-cardgen/pkg/version"
	"github.com/goliatone/go-cardgen/pkg/visual"
)

// AdaptiveCardTypeName is the JSON type of a document root.
const AdaptiveCardTypeName = "AdaptiveCard"

// AdaptiveCard is the document root. Its children live under "body".
type AdaptiveCard struct {
	Container
	version version.Version
}

// NewAdaptiveCard creates an empty card targeting v.
func NewAdaptiveCard(v version.Version) *AdaptiveCard {
	card := &AdaptiveCard{version: v}
	card.Container = Container{itemsKey: "body", owner: card}
	return card
}

// JSONTypeName implements Element.
func (a *AdaptiveCard) JSONTypeName() string { return AdaptiveCardTypeName }

// Version returns the document schema version.
func (a *AdaptiveCard) Version() version.Version { return a.version }

// Parse implements Element. The context version is expected to have been
// set from the "version" member already.
func (a *AdaptiveCard) Parse(node map[string]any, ctx *SerializationContext) {
	a.version = ctx.Version()
	a.Container.Parse(node, ctx)
}

// ToJSON implements Element.
func (a *AdaptiveCard) ToJSON(ctx *SerializationContext) map[string]any {
	out := a.Container.ToJSON(ctx)
	v := a.version
	if v.IsZero() {
		v = ctx.Version()
	}
	out["version"] = v.String()
	return out
}

// Materialize implements Element. A card always yields its root node.
func (a *AdaptiveCard) Materialize(rc *RenderContext) *visual.Node {
	root := visual.New("div").AddClass(a.Host().classNames("adaptiveCard")...)
	for _, item := range a.items {
		if !rc.Permits(item) {
			continue
		}
		root.Append(Render(item, rc))
	}
	return root
}

func readDocumentVersion(node map[string]any) (version.Version, bool, error) {
	raw, ok := node["version"]
	if !ok || raw == nil {
		return version.Version{}, false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return version.Version{}, false, fmt.Errorf("\"version\" expects a string, got %s", jsonKind(raw))
	}
	v, err := version.Parse(s)
	if err != nil {
		return version.Version{}, false, err
	}
	return v, true, nil
}
