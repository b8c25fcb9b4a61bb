package layout

import (
	"testing"

	"github.com/ninocam2680/slidegen-backend/internal/document"
	"github.com/ninocam2680/slidegen-backend/internal/infra/logger"
)

func italianCatalog(t *testing.T) (*document.MemoryDocument, *Catalog) {
	t.Helper()
	doc := document.NewMemory(
		&document.MemoryLayout{LayoutName: "Testo centrato", SlotKinds: []document.SlotKind{document.SlotTitle, document.SlotBody}},
		&document.MemoryLayout{LayoutName: "Solo testo", SlotKinds: []document.SlotKind{document.SlotTitle, document.SlotBody}},
		&document.MemoryLayout{LayoutName: "Immagine a sinistra", SlotKinds: []document.SlotKind{document.SlotTitle, document.SlotPicture}},
		&document.MemoryLayout{LayoutName: "Vuota", SlotKinds: nil},
	)
	return doc, BuildCatalog(doc, logger.NewNop())
}

func TestResolveCategories(t *testing.T) {
	_, catalog := italianCatalog(t)

	tests := []struct {
		requested string
		category  Category
		hasImage  bool
	}{
		{"text-only", CategoryTextOnly, false},
		{"solo testo", CategoryTextOnly, false},
		{"centered-text", CategoryCenteredText, false},
		{"Testo Centrato", CategoryCenteredText, false},
		{"image-left", CategoryImageLeft, true},
		{"immagine a sinistra", CategoryImageLeft, true},
		{"image-right", CategoryImageRight, true},
		{"IMMAGINE A DESTRA", CategoryImageRight, true},
		{"something else", CategoryTextOnly, false},
		{"", CategoryTextOnly, false},
	}

	for _, tt := range tests {
		res := Resolve(tt.requested, catalog)
		if res.Category != tt.category {
			t.Errorf("Resolve(%q): category = %q, want %q", tt.requested, res.Category, tt.category)
		}
		if res.Geometry.HasImage() != tt.hasImage {
			t.Errorf("Resolve(%q): HasImage = %v, want %v", tt.requested, res.Geometry.HasImage(), tt.hasImage)
		}
	}
}

func TestResolveExactNameMatchWins(t *testing.T) {
	_, catalog := italianCatalog(t)

	res := Resolve("IMMAGINE A SINISTRA", catalog)
	if res.Entry == nil || res.Entry.Name != "Immagine a sinistra" {
		t.Fatalf("expected exact case-insensitive match, got %+v", res.Entry)
	}
	if !res.Entry.HasSlot(document.SlotPicture) {
		t.Fatal("expected cached picture slot on entry")
	}
}

func TestResolveFallbackPrefersBlank(t *testing.T) {
	_, catalog := italianCatalog(t)

	first := Resolve("does-not-exist", catalog)
	if first.Entry == nil || first.Entry.Name != "Vuota" {
		t.Fatalf("expected blank-style fallback, got %+v", first.Entry)
	}
	if first.Note == "" {
		t.Fatal("expected a diagnostic note on fallback")
	}

	second := Resolve("does-not-exist", catalog)
	if second.Entry != first.Entry {
		t.Fatal("fallback must be deterministic for the same catalog")
	}
}

func TestResolveFallbackFirstEntryWithoutBlank(t *testing.T) {
	doc := document.NewMemory(
		&document.MemoryLayout{LayoutName: "Uno"},
		&document.MemoryLayout{LayoutName: "Due"},
	)
	catalog := BuildCatalog(doc, logger.NewNop())

	res := Resolve("missing", catalog)
	if res.Entry == nil || res.Entry.Name != "Uno" {
		t.Fatalf("expected first entry fallback, got %+v", res.Entry)
	}
}

func TestResolveEmptyCatalog(t *testing.T) {
	res := Resolve("solo testo", &Catalog{})
	if res.Entry != nil {
		t.Fatalf("expected nil entry for empty catalog, got %+v", res.Entry)
	}
	if res.Geometry.Title == nil || res.Geometry.Content == nil {
		t.Fatal("expected usable geometry even without a catalog")
	}
}

func TestBuildCatalogRemovesProbeSlides(t *testing.T) {
	doc, catalog := italianCatalog(t)

	if got := len(doc.SlideList); got != 0 {
		t.Fatalf("expected all probe slides removed, %d left", got)
	}
	if len(catalog.Entries()) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(catalog.Entries()))
	}
}

func TestBuildCatalogToleratesFailingLayout(t *testing.T) {
	doc := document.NewMemory(
		&document.MemoryLayout{LayoutName: "Broken", SlotKinds: []document.SlotKind{document.SlotTitle}},
		&document.MemoryLayout{LayoutName: "Fine", SlotKinds: []document.SlotKind{document.SlotBody}},
	)
	doc.FailAddFor = "Broken"

	catalog := BuildCatalog(doc, logger.NewNop())
	if len(catalog.Entries()) != 2 {
		t.Fatalf("expected both entries kept, got %d", len(catalog.Entries()))
	}
	if catalog.Entries()[0].HasSlot(document.SlotTitle) {
		t.Fatal("unprobeable layout must have an empty slot set")
	}
	if !catalog.Entries()[1].HasSlot(document.SlotBody) {
		t.Fatal("later layouts must still be probed")
	}
}

func TestGeometryInBounds(t *testing.T) {
	const pageW, pageH = 10.0, 5.625

	for _, c := range []Category{CategoryTextOnly, CategoryCenteredText, CategoryImageLeft, CategoryImageRight} {
		g := GeometryFor(c)
		for name, r := range map[string]*document.Rect{"title": g.Title, "subtitle": g.Subtitle, "content": g.Content, "image": g.Image} {
			if r == nil {
				continue
			}
			if r.X < 0 || r.Y < 0 || r.X+r.W > pageW || r.Y+r.H > pageH {
				t.Errorf("%s/%s out of bounds: %+v", c, name, r)
			}
		}
	}
}

func TestGeometryForUnknownCategory(t *testing.T) {
	got := GeometryFor(Category("mystery"))
	want := GeometryFor(CategoryTextOnly)
	if got.Title == nil || *got.Title != *want.Title {
		t.Fatalf("unknown category should use text-only geometry, got %+v", got)
	}
}
