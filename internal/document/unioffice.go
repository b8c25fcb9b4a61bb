package document

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/unidoc/unioffice/v2/color"
	"github.com/unidoc/unioffice/v2/common"
	"github.com/unidoc/unioffice/v2/drawing"
	"github.com/unidoc/unioffice/v2/measurement"
	"github.com/unidoc/unioffice/v2/presentation"
	"github.com/unidoc/unioffice/v2/schema/soo/dml"
	"github.com/unidoc/unioffice/v2/schema/soo/pml"
)

const emuPerInch = 914400

// Open opens an existing pptx file.
func Open(path string) (Document, error) {
	p, err := presentation.Open(path)
	if err != nil {
		return nil, err
	}
	return &pptxDocument{p: p}, nil
}

// New creates an empty presentation.
func New() Document {
	return &pptxDocument{p: presentation.New()}
}

type pptxDocument struct {
	p *presentation.Presentation
}

func (d *pptxDocument) Layouts() []Layout {
	var out []Layout
	for _, l := range d.p.SlideLayouts() {
		out = append(out, pptxLayout{l: l})
	}
	return out
}

func (d *pptxDocument) AddSlide(l Layout) (Slide, error) {
	if l == nil {
		return pptxSlide{d: d, s: d.p.AddSlide()}, nil
	}
	pl, ok := l.(pptxLayout)
	if !ok {
		return nil, fmt.Errorf("layout does not belong to this document")
	}
	s, err := d.p.AddSlideWithLayout(pl.l)
	if err != nil {
		return nil, err
	}
	return pptxSlide{d: d, s: s}, nil
}

func (d *pptxDocument) Slides() []Slide {
	var out []Slide
	for _, s := range d.p.Slides() {
		out = append(out, pptxSlide{d: d, s: s})
	}
	return out
}

func (d *pptxDocument) RemoveSlide(s Slide) error {
	ps, ok := s.(pptxSlide)
	if !ok {
		return fmt.Errorf("slide does not belong to this document")
	}
	return d.p.RemoveSlide(ps.s)
}

func (d *pptxDocument) PageSize() (float64, float64) {
	sz := d.p.X().SldSz
	if sz == nil {
		return 10, 7.5
	}
	return float64(sz.CxAttr) / emuPerInch, float64(sz.CyAttr) / emuPerInch
}

func (d *pptxDocument) SetPageSize(w, h float64) {
	if d.p.X().SldSz == nil {
		d.p.X().SldSz = pml.NewCT_SlideSize()
	}
	d.p.X().SldSz.CxAttr = int32(w * emuPerInch)
	d.p.X().SldSz.CyAttr = int32(h * emuPerInch)
}

func (d *pptxDocument) Save(w io.Writer) error {
	return d.p.Save(w)
}

type pptxLayout struct {
	l presentation.SlideLayout
}

func (l pptxLayout) Name() string {
	return l.l.Name()
}

type pptxSlide struct {
	d *pptxDocument
	s presentation.Slide
}

func (s pptxSlide) Placeholders() []Placeholder {
	var out []Placeholder
	for _, ph := range s.s.PlaceHolders() {
		out = append(out, pptxPlaceholder{ph: ph})
	}
	return out
}

func (s pptxSlide) AddTextBox(r Rect) TextFrame {
	tb := s.s.AddTextBox()
	tb.Properties().SetPosition(inches(r.X), inches(r.Y))
	tb.Properties().SetSize(inches(r.W), inches(r.H))
	return pptxTextFrame{add: tb.AddParagraph}
}

func (s pptxSlide) AddPicture(data []byte, r Rect) error {
	img, err := common.ImageFromBytes(data)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	iref, err := s.d.p.AddImage(img)
	if err != nil {
		return fmt.Errorf("register image: %w", err)
	}
	pic := s.s.AddImage(iref)
	pic.Properties().SetPosition(inches(r.X), inches(r.Y))
	pic.Properties().SetSize(inches(r.W), inches(r.H))
	return nil
}

type pptxPlaceholder struct {
	ph presentation.PlaceHolder
}

func (p pptxPlaceholder) Kind() SlotKind {
	switch p.ph.Type() {
	case pml.ST_PlaceholderTypeTitle, pml.ST_PlaceholderTypeCtrTitle:
		return SlotTitle
	case pml.ST_PlaceholderTypeSubTitle:
		return SlotSubtitle
	case pml.ST_PlaceholderTypeBody:
		return SlotBody
	case pml.ST_PlaceholderTypePic:
		return SlotPicture
	}
	// Untyped placeholders follow the pptx convention: index 0 is the title,
	// anything else holds body content.
	if p.ph.Index() == 0 {
		return SlotTitle
	}
	return SlotBody
}

func (p pptxPlaceholder) Frame() TextFrame {
	return pptxTextFrame{add: p.ph.AddParagraph}
}

func (p pptxPlaceholder) SampleFont() (FontStyle, bool) {
	sp := p.ph.X()
	if sp == nil || sp.TxBody == nil {
		return FontStyle{}, false
	}
	for _, para := range sp.TxBody.P {
		for _, tr := range para.EG_TextRun {
			r := tr.Run
			if r == nil || strings.TrimSpace(r.T) == "" {
				continue
			}
			return fontFromProperties(r.Rpr), true
		}
	}
	return FontStyle{}, false
}

type pptxTextFrame struct {
	add func() drawing.Paragraph
}

func (f pptxTextFrame) AddParagraph(text string, font FontStyle, bullet bool) {
	para := f.add()
	if bullet {
		para.Properties().SetBulletChar("•")
	}
	run := para.AddRun()
	run.SetText(text)
	applyFont(run, font)
}

func applyFont(run drawing.Run, font FontStyle) {
	if font.IsZero() {
		return
	}
	props := run.Properties()
	if font.Size != nil {
		props.SetSize(measurement.Distance(*font.Size) * measurement.Point)
	}
	if font.Bold != nil {
		props.SetBold(*font.Bold)
	}
	if font.Color != nil {
		if c, ok := parseHexColor(*font.Color); ok {
			props.SetSolidFill(c)
		}
	}
	if font.Italic != nil || font.Underline != nil {
		rt := run.X().Run
		if rt == nil {
			return
		}
		if rt.Rpr == nil {
			rt.Rpr = dml.NewCT_TextCharacterProperties()
		}
		if font.Italic != nil {
			rt.Rpr.IAttr = boolPtr(*font.Italic)
		}
		if font.Underline != nil && *font.Underline {
			rt.Rpr.UAttr = dml.ST_TextUnderlineTypeSng
		}
	}
}

func fontFromProperties(rpr *dml.CT_TextCharacterProperties) FontStyle {
	var out FontStyle
	if rpr == nil {
		return out
	}
	if rpr.SzAttr != nil {
		sz := float64(*rpr.SzAttr) / 100
		out.Size = &sz
	}
	if rpr.BAttr != nil {
		out.Bold = boolPtr(*rpr.BAttr)
	}
	if rpr.IAttr != nil {
		out.Italic = boolPtr(*rpr.IAttr)
	}
	if rpr.UAttr != dml.ST_TextUnderlineTypeUnset && rpr.UAttr != dml.ST_TextUnderlineTypeNone {
		out.Underline = boolPtr(true)
	}
	if rpr.SolidFill != nil && rpr.SolidFill.SrgbClr != nil {
		hex := strings.ToUpper(rpr.SolidFill.SrgbClr.ValAttr)
		out.Color = &hex
	}
	return out
}

func parseHexColor(s string) (color.Color, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	// ARGB hex is accepted too; the alpha byte is ignored.
	if len(s) == 8 {
		s = s[2:]
	}
	if len(s) != 6 {
		return color.Color{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.Color{}, false
	}
	return color.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), true
}

func inches(v float64) measurement.Distance {
	return measurement.Distance(v) * measurement.Inch
}

func boolPtr(b bool) *bool { return &b }
