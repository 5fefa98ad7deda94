// Package cards turns card JSON documents into a typed element tree and back.
//
// Parsing is failure tolerant: unknown or disallowed child types are dropped
// and reported as ValidationEvents while their siblings keep parsing. Only a
// root that is not a JSON object (or cannot stand alone) fails a parse.
//
// The Carousel is a paged composition. It owns an ordered list of Pages and,
// on every render pass, derives the subset of pages that actually produced an
// artifact. Hosts query that subset through FirstVisibleRenderedItem and
// LastVisibleRenderedItem.
//
//	res, err := cards.Parse(data, cards.WithHostConfig(cfg))
//	if err != nil {
//		return err
//	}
//	for _, ev := range res.Events {
//		log.Println(ev)
//	}
//	artifact := cards.Render(res.Root, &cards.RenderContext{Slider: widget})
package cards
