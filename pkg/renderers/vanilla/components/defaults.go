package components

// Swiper bundle the carousel runtime mounts onto.
const (
	SwiperStylesheet = "https://cdn.jsdelivr.net/npm/swiper@8/swiper-bundle.min.css"
	SwiperScript     = "https://cdn.jsdelivr.net/npm/swiper@8/swiper-bundle.min.js"
)

// NewDefaultRegistry constructs a registry with the assets of the built-in
// element types. runtime is the inline script that mounts sliders; an empty
// value leaves mounting to the host page.
func NewDefaultRegistry(runtime string) *Registry {
	registry := New()

	carousel := Descriptor{
		Stylesheets: []string{SwiperStylesheet},
		Scripts:     []Script{{Src: SwiperScript}},
	}
	if runtime != "" {
		carousel.Scripts = append(carousel.Scripts, Script{Inline: runtime})
	}
	registry.MustRegister("Carousel", carousel)

	return registry
}
