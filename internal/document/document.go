// Package document is the typed boundary over the pptx container library.
// The assembly engine drives slides, layouts and placeholders exclusively
// through these interfaces; all container-specific calls live in one adapter.
package document

import (
	"io"
)

// SlotKind identifies the semantic role of a placeholder region.
type SlotKind int

const (
	SlotTitle SlotKind = iota
	SlotSubtitle
	SlotBody
	SlotPicture
	SlotOther
)

func (k SlotKind) String() string {
	switch k {
	case SlotTitle:
		return "title"
	case SlotSubtitle:
		return "subtitle"
	case SlotBody:
		return "body"
	case SlotPicture:
		return "picture"
	default:
		return "other"
	}
}

// Rect is a region on a slide, in inches from the top-left corner.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// FontStyle carries run-level font attributes. Every field is optional; a nil
// field means "do not override, keep the document default".
type FontStyle struct {
	Size      *float64 // points
	Bold      *bool
	Italic    *bool
	Underline *bool
	Color     *string // RRGGBB hex
}

// IsZero reports whether no attribute is set.
func (f FontStyle) IsZero() bool {
	return f.Size == nil && f.Bold == nil && f.Italic == nil && f.Underline == nil && f.Color == nil
}

// Document is one open presentation. A Document is owned by a single
// assembly run; implementations need not be safe for concurrent use.
type Document interface {
	Layouts() []Layout
	// AddSlide appends a slide. A nil layout produces a blank slide.
	AddSlide(l Layout) (Slide, error)
	Slides() []Slide
	RemoveSlide(s Slide) error
	// PageSize returns the slide dimensions in inches.
	PageSize() (w, h float64)
	SetPageSize(w, h float64)
	Save(w io.Writer) error
}

// Layout is one named layout from a template's catalog.
type Layout interface {
	Name() string
}

// Slide is a mutable slide in the output deck.
type Slide interface {
	Placeholders() []Placeholder
	AddTextBox(r Rect) TextFrame
	AddPicture(data []byte, r Rect) error
}

// Placeholder is a typed, template-defined region a slide can fill.
type Placeholder interface {
	Kind() SlotKind
	Frame() TextFrame
	// SampleFont returns the font of the first non-empty paragraph, when one
	// exists. Used to harvest inheritable defaults from template content.
	SampleFont() (FontStyle, bool)
}

// TextFrame receives paragraphs in render order. A zero FontStyle leaves the
// inherited formatting untouched.
type TextFrame interface {
	AddParagraph(text string, font FontStyle, bullet bool)
}
