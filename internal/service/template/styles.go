package template

import (
	"github.com/ninocam2680/slidegen-backend/internal/document"
	"github.com/ninocam2680/slidegen-backend/internal/infra/logger"
)

// Profile holds representative font attributes harvested from a template's
// layouts. Every slot is best-effort; a nil slot means no sample was found.
type Profile struct {
	Title    *document.FontStyle
	Body     *document.FontStyle
	Subtitle *document.FontStyle
}

func (p Profile) complete() bool {
	return p.Title != nil && p.Body != nil && p.Subtitle != nil
}

// ExtractStyles walks the template's layout catalog with transient probe
// slides and records the font of the first non-empty paragraph per semantic
// slot. Probe slides are always removed, partial profiles are valid, and a
// failing layout never stops extraction for the rest.
func ExtractStyles(doc document.Document, log *logger.Logger) Profile {
	var profile Profile
	for _, l := range doc.Layouts() {
		probeLayout(doc, l, &profile, log)
		if profile.complete() {
			break
		}
	}
	return profile
}

func probeLayout(doc document.Document, l document.Layout, profile *Profile, log *logger.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("style probe panicked", "layout", l.Name(), "panic", r)
		}
	}()

	slide, err := doc.AddSlide(l)
	if err != nil {
		log.Warn("style probe failed", "layout", l.Name(), "error", err)
		return
	}
	defer func() {
		if err := doc.RemoveSlide(slide); err != nil {
			log.Warn("failed to remove style probe slide", "layout", l.Name(), "error", err)
		}
	}()

	for _, ph := range slide.Placeholders() {
		font, ok := ph.SampleFont()
		if !ok {
			continue
		}
		f := font
		switch ph.Kind() {
		case document.SlotTitle:
			if profile.Title == nil {
				profile.Title = &f
			}
		case document.SlotBody:
			if profile.Body == nil {
				profile.Body = &f
			}
		case document.SlotSubtitle:
			if profile.Subtitle == nil {
				profile.Subtitle = &f
			}
		}
	}
}
