package cards

import (
	"github.com/goliatone/go-cardgen/pkg/property"
	"github.com/goliatone/go-cardgen/pkg/version"
	"github.com/goliatone/go-cardgen/pkg/visual"
)

// ImageTypeName is the JSON type of an image.
const ImageTypeName = "Image"

// Image properties.
var (
	URLProperty     = property.String{Name: "url", MinVersion: version.V1_0}
	AltTextProperty = property.String{Name: "altText", MinVersion: version.V1_0}
)

// Image displays a picture by URL.
type Image struct {
	BaseElement
}

// NewImage creates an image pointing at url.
func NewImage(url, altText string) *Image {
	img := &Image{}
	URLProperty.Set(&img.props, url)
	AltTextProperty.Set(&img.props, altText)
	return img
}

// JSONTypeName implements Element.
func (i *Image) JSONTypeName() string { return ImageTypeName }

// URL returns the image source.
func (i *Image) URL() string { return URLProperty.Get(&i.props) }

// AltText returns the alternate text.
func (i *Image) AltText() string { return AltTextProperty.Get(&i.props) }

// SetURL replaces the image source.
func (i *Image) SetURL(url string) { URLProperty.Set(&i.props, url) }

// SetAltText replaces the alternate text.
func (i *Image) SetAltText(alt string) { AltTextProperty.Set(&i.props, alt) }

// Parse implements Element.
func (i *Image) Parse(node map[string]any, ctx *SerializationContext) {
	i.ParseCommon(node, ctx)
	for _, desc := range []property.String{URLProperty, AltTextProperty} {
		value, ok, err := desc.Read(node)
		if err != nil {
			ctx.invalidProperty(desc.Name, err)
			continue
		}
		if ok {
			desc.Set(&i.props, value)
		}
	}
}

// ToJSON implements Element.
func (i *Image) ToJSON(_ *SerializationContext) map[string]any {
	out := map[string]any{URLProperty.Name: i.URL()}
	i.WriteCommon(out)
	if alt := i.AltText(); alt != "" {
		out[AltTextProperty.Name] = alt
	}
	return out
}

// Materialize implements Element. An image without a URL yields nothing.
func (i *Image) Materialize(_ *RenderContext) *visual.Node {
	url := i.URL()
	if url == "" {
		return nil
	}
	return visual.New("img").
		AddClass(i.Host().classNames("image")...).
		SetAttr("src", url).
		SetAttr("alt", i.AltText())
}
