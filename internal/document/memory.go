package document

import (
	"archive/zip"
	"fmt"
	"io"
)

// In-memory implementation of the container boundary. Tests use it to assert
// on assembled shape structure without touching the real pptx library.

type MemoryDocument struct {
	LayoutSet  []*MemoryLayout
	SlideList  []*MemorySlide
	PageW      float64
	PageH      float64
	FailSave   bool
	FailAddFor string // layout name whose AddSlide fails, for degradation tests
}

func NewMemory(layouts ...*MemoryLayout) *MemoryDocument {
	return &MemoryDocument{LayoutSet: layouts, PageW: 10, PageH: 7.5}
}

type MemoryLayout struct {
	LayoutName string
	SlotKinds  []SlotKind
	Fonts      map[SlotKind]FontStyle
}

func (l *MemoryLayout) Name() string { return l.LayoutName }

func (d *MemoryDocument) Layouts() []Layout {
	var out []Layout
	for _, l := range d.LayoutSet {
		out = append(out, l)
	}
	return out
}

func (d *MemoryDocument) AddSlide(l Layout) (Slide, error) {
	s := &MemorySlide{}
	if l != nil {
		ml, ok := l.(*MemoryLayout)
		if !ok {
			return nil, fmt.Errorf("layout does not belong to this document")
		}
		if d.FailAddFor != "" && ml.LayoutName == d.FailAddFor {
			return nil, fmt.Errorf("layout %q cannot be instantiated", ml.LayoutName)
		}
		s.LayoutName = ml.LayoutName
		for _, k := range ml.SlotKinds {
			ph := &MemoryPlaceholder{SlotKind: k}
			if f, ok := ml.Fonts[k]; ok {
				ph.Font = f
				ph.HasFont = true
			}
			s.PlaceholderList = append(s.PlaceholderList, ph)
		}
	}
	d.SlideList = append(d.SlideList, s)
	return s, nil
}

func (d *MemoryDocument) Slides() []Slide {
	var out []Slide
	for _, s := range d.SlideList {
		out = append(out, s)
	}
	return out
}

func (d *MemoryDocument) RemoveSlide(s Slide) error {
	ms, ok := s.(*MemorySlide)
	if !ok {
		return fmt.Errorf("slide does not belong to this document")
	}
	for i, cur := range d.SlideList {
		if cur == ms {
			d.SlideList = append(d.SlideList[:i], d.SlideList[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("slide not found")
}

func (d *MemoryDocument) PageSize() (float64, float64) { return d.PageW, d.PageH }

func (d *MemoryDocument) SetPageSize(w, h float64) {
	d.PageW = w
	d.PageH = h
}

func (d *MemoryDocument) Save(w io.Writer) error {
	if d.FailSave {
		return fmt.Errorf("save failed")
	}
	zw := zip.NewWriter(w)
	f, err := zw.Create("[Content_Types].xml")
	if err != nil {
		return err
	}
	if _, err := f.Write([]byte(`<?xml version="1.0"?><Types/>`)); err != nil {
		return err
	}
	return zw.Close()
}

type MemorySlide struct {
	LayoutName      string
	PlaceholderList []*MemoryPlaceholder
	TextBoxes       []*MemoryTextBox
	Pictures        []MemoryPicture
}

func (s *MemorySlide) Placeholders() []Placeholder {
	var out []Placeholder
	for _, ph := range s.PlaceholderList {
		out = append(out, ph)
	}
	return out
}

func (s *MemorySlide) AddTextBox(r Rect) TextFrame {
	tb := &MemoryTextBox{Rect: r}
	s.TextBoxes = append(s.TextBoxes, tb)
	return tb
}

func (s *MemorySlide) AddPicture(data []byte, r Rect) error {
	if len(data) == 0 {
		return fmt.Errorf("empty image data")
	}
	s.Pictures = append(s.Pictures, MemoryPicture{Data: data, Rect: r})
	return nil
}

// Placeholder returns the first placeholder of the given kind, for tests.
func (s *MemorySlide) Placeholder(k SlotKind) *MemoryPlaceholder {
	for _, ph := range s.PlaceholderList {
		if ph.SlotKind == k {
			return ph
		}
	}
	return nil
}

type MemoryPlaceholder struct {
	SlotKind   SlotKind
	Font       FontStyle
	HasFont    bool
	Paragraphs []MemoryParagraph
}

func (p *MemoryPlaceholder) Kind() SlotKind { return p.SlotKind }

func (p *MemoryPlaceholder) Frame() TextFrame { return (*memoryFrame)(&p.Paragraphs) }

func (p *MemoryPlaceholder) SampleFont() (FontStyle, bool) { return p.Font, p.HasFont }

type MemoryTextBox struct {
	Rect       Rect
	Paragraphs []MemoryParagraph
}

func (t *MemoryTextBox) AddParagraph(text string, font FontStyle, bullet bool) {
	t.Paragraphs = append(t.Paragraphs, MemoryParagraph{Text: text, Font: font, Bullet: bullet})
}

type memoryFrame []MemoryParagraph

func (f *memoryFrame) AddParagraph(text string, font FontStyle, bullet bool) {
	*f = append(*f, MemoryParagraph{Text: text, Font: font, Bullet: bullet})
}

type MemoryParagraph struct {
	Text   string
	Font   FontStyle
	Bullet bool
}

type MemoryPicture struct {
	Data []byte
	Rect Rect
}
