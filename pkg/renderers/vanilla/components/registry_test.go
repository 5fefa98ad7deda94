package components

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistryDescriptorClone(t *testing.T) {
	reg := New()

	if err := reg.Register("Carousel", Descriptor{Stylesheets: []string{"/a.css"}}); err != nil {
		t.Fatalf("register: %v", err)
	}

	desc, ok := reg.Descriptor("Carousel")
	if !ok {
		t.Fatalf("descriptor not found")
	}

	desc.Stylesheets = append(desc.Stylesheets, "/mutated.css")

	original, _ := reg.Descriptor("Carousel")
	if len(original.Stylesheets) != 1 || original.Stylesheets[0] != "/a.css" {
		t.Fatalf("registry descriptor mutated: %#v", original.Stylesheets)
	}
	if _, ok := reg.Descriptor("carousel"); ok {
		t.Fatalf("type names are case-sensitive")
	}
}

func TestRegistryAssetsDeduplicates(t *testing.T) {
	reg := New()
	reg.MustRegister("Carousel", Descriptor{
		Stylesheets: []string{"/shared.css", "/carousel.css"},
		Scripts:     []Script{{Src: "/shared.js"}},
	})
	reg.MustRegister("Image", Descriptor{
		Stylesheets: []string{"/shared.css", "/image.css"},
		Scripts:     []Script{{Src: "/shared.js"}, {Inline: "init()"}},
	})

	styles, scripts := reg.Assets([]string{"Carousel", "TextBlock", "Image"})
	if diff := cmp.Diff([]string{"/shared.css", "/carousel.css", "/image.css"}, styles); diff != "" {
		t.Fatalf("stylesheets mismatch (-want +got):\n%s", diff)
	}
	want := []Script{{Src: "/shared.js"}, {Inline: "init()"}}
	if diff := cmp.Diff(want, scripts); diff != "" {
		t.Fatalf("scripts mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryRejectsEmptyDescriptors(t *testing.T) {
	reg := New()
	if err := reg.Register(" ", Descriptor{Stylesheets: []string{"/a.css"}}); err == nil {
		t.Fatalf("expected error for blank type name")
	}
	if err := reg.Register("Image", Descriptor{}); err == nil {
		t.Fatalf("expected error for descriptor without assets")
	}
}

func TestDefaultRegistry(t *testing.T) {
	reg := NewDefaultRegistry("mount()")
	if diff := cmp.Diff([]string{"Carousel"}, reg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	_, scripts := reg.Assets([]string{"Carousel"})
	want := []Script{{Src: SwiperScript}, {Inline: "mount()"}}
	if diff := cmp.Diff(want, scripts); diff != "" {
		t.Fatalf("scripts mismatch (-want +got):\n%s", diff)
	}

	clone := reg.Clone()
	clone.MustRegister("Image", Descriptor{Stylesheets: []string{"/image.css"}})
	if len(reg.Names()) != 1 {
		t.Fatalf("clone must not leak into the original")
	}
}
