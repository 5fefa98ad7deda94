package visual

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAppendSkipsNil(t *testing.T) {
	root := New("div", "root")
	root.Append(nil, New("p"), nil, New("span"))

	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}

	var missing *Node
	if missing.Append(New("p")) != nil {
		t.Fatalf("appending to a nil node should stay nil")
	}
}

func TestClassesAndAttrs(t *testing.T) {
	n := New("button", "swiper-button-prev", "", "swiper-button-prev")
	if diff := cmp.Diff([]string{"swiper-button-prev"}, n.Classes); diff != "" {
		t.Fatalf("classes mismatch (-want +got):\n%s", diff)
	}

	n.SetAttr("aria-label", "Previous").SetAttr("data-x", "1").SetAttr("data-x", "")
	if diff := cmp.Diff([]string{"aria-label"}, n.AttrNames()); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}
	if n.Attr("aria-label") != "Previous" {
		t.Fatalf("unexpected attr value %q", n.Attr("aria-label"))
	}
}

func TestFindAndFindAll(t *testing.T) {
	slideA := New("div", "swiper-slide")
	slideB := New("div", "swiper-slide")
	root := New("div").Append(New("div", "swiper").Append(New("div", "swiper-wrapper").Append(slideA, slideB)))

	if got := root.Find(WithClass("swiper-slide")); got != slideA {
		t.Fatalf("expected first slide")
	}
	if got := root.FindAll(WithClass("swiper-slide")); len(got) != 2 || got[1] != slideB {
		t.Fatalf("expected both slides in order, got %d", len(got))
	}
	if root.Find(WithClass("missing")) != nil {
		t.Fatalf("expected no match")
	}
}
