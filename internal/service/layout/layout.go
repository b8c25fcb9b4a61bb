// Package layout maps a slide's declared layout onto a concrete template
// layout and a geometry spec for free-floating regions.
package layout

import (
	"fmt"
	"strings"

	"github.com/ninocam2680/slidegen-backend/internal/document"
	"github.com/ninocam2680/slidegen-backend/internal/infra/logger"
)

// Category is the abstract layout family a slide belongs to.
type Category string

const (
	CategoryTextOnly     Category = "text-only"
	CategoryCenteredText Category = "centered-text"
	CategoryImageLeft    Category = "image-left"
	CategoryImageRight   Category = "image-right"
)

// Geometry is the fixed rectangle set used when regions are rendered as
// free textboxes instead of native placeholders. Nil means the category has
// no such region.
type Geometry struct {
	Title    *document.Rect
	Subtitle *document.Rect
	Content  *document.Rect
	Image    *document.Rect
}

// HasImage reports whether the category defines an image region.
func (g Geometry) HasImage() bool { return g.Image != nil }

func rect(x, y, w, h float64) *document.Rect {
	return &document.Rect{X: x, Y: y, W: w, H: h}
}

// Region table for a 10 x 5.625in (16:9) canvas. The image-right rectangle
// follows the historical placement at (5, 2) with a 4in width.
var geometryTable = map[Category]Geometry{
	CategoryTextOnly: {
		Title:    rect(0.4, 0.3, 9.2, 1.0),
		Subtitle: rect(0.4, 1.3, 9.2, 0.6),
		Content:  rect(0.4, 2.0, 9.2, 3.2),
	},
	CategoryCenteredText: {
		Title:    rect(1.0, 1.6, 8.0, 1.2),
		Subtitle: rect(1.5, 2.9, 7.0, 0.8),
		Content:  rect(1.5, 3.7, 7.0, 1.6),
	},
	CategoryImageLeft: {
		Title:   rect(0.4, 0.3, 9.2, 1.0),
		Content: rect(4.9, 1.5, 4.7, 3.6),
		Image:   rect(0.6, 2.0, 4.0, 3.0),
	},
	CategoryImageRight: {
		Title:   rect(0.4, 0.3, 9.2, 1.0),
		Content: rect(0.6, 1.5, 4.4, 3.6),
		Image:   rect(5.0, 2.0, 4.0, 3.0),
	},
}

// GeometryFor returns the region table for a category; unknown categories
// get the text-only geometry.
func GeometryFor(c Category) Geometry {
	if g, ok := geometryTable[c]; ok {
		return g
	}
	return geometryTable[CategoryTextOnly]
}

type alias struct {
	category     Category
	templateName string
}

// Free-form layout identifiers accepted on the wire, both the English
// category names and the Italian names the original templates use.
var aliases = map[string]alias{
	"text-only":           {CategoryTextOnly, "Solo testo"},
	"solo testo":          {CategoryTextOnly, "Solo testo"},
	"centered-text":       {CategoryCenteredText, "Testo centrato"},
	"testo centrato":      {CategoryCenteredText, "Testo centrato"},
	"image-left":          {CategoryImageLeft, "Immagine a sinistra"},
	"immagine a sinistra": {CategoryImageLeft, "Immagine a sinistra"},
	"image-right":         {CategoryImageRight, "Immagine a destra"},
	"immagine a destra":   {CategoryImageRight, "Immagine a destra"},
}

// Entry is one layout from the resolved template with its slot capabilities
// resolved once and cached.
type Entry struct {
	Name   string
	Layout document.Layout
	slots  map[document.SlotKind]bool
}

func (e *Entry) HasSlot(k document.SlotKind) bool {
	return e != nil && e.slots[k]
}

// Catalog is the ordered layout set of one resolved template.
type Catalog struct {
	entries []*Entry
}

func (c *Catalog) Entries() []*Entry { return c.entries }

func (c *Catalog) Empty() bool { return len(c.entries) == 0 }

// First returns the first catalog entry, or nil for an empty catalog.
func (c *Catalog) First() *Entry {
	if len(c.entries) == 0 {
		return nil
	}
	return c.entries[0]
}

// BuildCatalog probes each template layout with a transient slide to learn
// which placeholder slots it exposes. Probe slides are always removed; a
// layout that cannot be probed is kept with an empty slot set.
func BuildCatalog(doc document.Document, log *logger.Logger) *Catalog {
	c := &Catalog{}
	for _, l := range doc.Layouts() {
		entry := &Entry{
			Name:   l.Name(),
			Layout: l,
			slots:  make(map[document.SlotKind]bool),
		}
		slide, err := doc.AddSlide(l)
		if err != nil {
			log.Warn("layout probe failed", "layout", l.Name(), "error", err)
			c.entries = append(c.entries, entry)
			continue
		}
		for _, ph := range slide.Placeholders() {
			entry.slots[ph.Kind()] = true
		}
		if err := doc.RemoveSlide(slide); err != nil {
			log.Warn("failed to remove probe slide", "layout", l.Name(), "error", err)
		}
		c.entries = append(c.entries, entry)
	}
	return c
}

// Resolution is the outcome of resolving one requested layout. Entry is nil
// only when the catalog itself is empty (blank-deck mode).
type Resolution struct {
	Entry    *Entry
	Category Category
	Geometry Geometry
	Note     string
}

// Resolve maps a requested layout name or category onto a catalog entry and
// a geometry spec. It never fails: unknown names fall back deterministically
// and the fallback is reported in Note.
func Resolve(requested string, c *Catalog) Resolution {
	norm := strings.ToLower(strings.TrimSpace(requested))

	category := CategoryTextOnly
	templateName := ""
	if a, ok := aliases[norm]; ok {
		category = a.category
		templateName = a.templateName
	}

	res := Resolution{
		Category: category,
		Geometry: GeometryFor(category),
	}

	if c == nil || c.Empty() {
		if norm != "" {
			res.Note = "no template layouts available; using geometry only"
		}
		return res
	}

	// Exact name match against the catalog wins, then the alias's canonical
	// template name, then the deterministic fallback.
	if e := c.find(norm); e != nil {
		res.Entry = e
		return res
	}
	if templateName != "" {
		if e := c.find(strings.ToLower(templateName)); e != nil {
			res.Entry = e
			return res
		}
	}
	res.Entry = fallbackEntry(c)
	res.Note = fmt.Sprintf("layout %q not found; using %s", requested, res.Entry.Name)
	return res
}

func (c *Catalog) find(lowerName string) *Entry {
	if lowerName == "" {
		return nil
	}
	for _, e := range c.entries {
		if strings.ToLower(e.Name) == lowerName {
			return e
		}
	}
	return nil
}

// fallbackEntry prefers an explicit blank layout so free-text positioning is
// unobstructed, and otherwise takes the first catalog entry.
func fallbackEntry(c *Catalog) *Entry {
	for _, e := range c.entries {
		lower := strings.ToLower(e.Name)
		if strings.Contains(lower, "blank") || strings.Contains(lower, "vuot") {
			return e
		}
	}
	return c.entries[0]
}
