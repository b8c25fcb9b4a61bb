// Package render fills one slide with title, subtitle and content regions,
// either through the layout's native placeholders or as free textboxes at
// the resolved geometry.
package render

import (
	"strings"

	"github.com/ninocam2680/slidegen-backend/internal/document"
	"github.com/ninocam2680/slidegen-backend/internal/infra/logger"
	"github.com/ninocam2680/slidegen-backend/internal/service/layout"
	"github.com/ninocam2680/slidegen-backend/internal/service/template"
)

// Warning is a region-level render degradation. Warnings are collected per
// slide for observability; they never fail the slide.
type Warning struct {
	Region  string
	Message string
}

// Text is the textual content of one slide.
type Text struct {
	Title    string
	Subtitle string
	Content  string
}

// FontOverrides are the explicit per-call font overrides. An override for a
// region always wins over any template-inherited style.
type FontOverrides struct {
	Title    *document.FontStyle
	Subtitle *document.FontStyle
	Body     *document.FontStyle
}

// Hard-coded defaults, used when neither an override nor a template sample
// applies to a synthesized textbox.
var (
	defaultTitleFont    = document.FontStyle{Size: f64(36), Bold: boolPtr(true), Color: str("1F2937")}
	defaultSubtitleFont = document.FontStyle{Size: f64(20), Color: str("52525B")}
	defaultBodyFont     = document.FontStyle{Size: f64(14), Color: str("334155")}
)

// Line is one parsed content line.
type Line struct {
	Text   string
	Bullet bool
}

// SplitContent converts newline-delimited content into render lines: a
// "- " prefix marks a list item (prefix stripped exactly once), blank lines
// are dropped, everything else is a plain paragraph.
func SplitContent(content string) []Line {
	var out []Line
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "- "); ok {
			out = append(out, Line{Text: rest, Bullet: true})
			continue
		}
		out = append(out, Line{Text: line})
	}
	return out
}

// Render writes txt onto slide. Placeholder mode is used when the resolved
// layout exposes native title or body slots; otherwise regions become free
// textboxes at the geometry rectangles. All failures degrade to warnings.
func Render(slide document.Slide, txt Text, res layout.Resolution, profile template.Profile, overrides FontOverrides, log *logger.Logger) []Warning {
	if res.Entry.HasSlot(document.SlotTitle) || res.Entry.HasSlot(document.SlotBody) {
		return renderPlaceholders(slide, txt, res, profile, overrides, log)
	}
	return renderTextboxes(slide, txt, res.Geometry, profile, overrides)
}

func renderPlaceholders(slide document.Slide, txt Text, res layout.Resolution, profile template.Profile, overrides FontOverrides, log *logger.Logger) []Warning {
	var warnings []Warning

	title := findPlaceholder(slide, document.SlotTitle)
	body := findPlaceholder(slide, document.SlotBody)
	subtitle := findPlaceholder(slide, document.SlotSubtitle)

	if title == nil && body == nil {
		// The layout promised slots its slide did not deliver. Fall back to a
		// single combined textbox so no information is silently lost.
		warnings = append(warnings, Warning{
			Region:  "slide",
			Message: "title and body placeholders missing; using combined textbox",
		})
		renderCombined(slide, txt, profile, overrides)
		return warnings
	}

	lines := SplitContent(txt.Content)

	if txt.Title != "" {
		if title != nil {
			title.Frame().AddParagraph(txt.Title, styleOrInherit(overrides.Title), false)
		} else {
			warnings = append(warnings, Warning{Region: "title", Message: "no title placeholder in layout " + res.Entry.Name})
			log.Debug("skipping title region", "layout", res.Entry.Name)
		}
	}

	if txt.Subtitle != "" {
		if subtitle != nil {
			subtitle.Frame().AddParagraph(txt.Subtitle, styleOrInherit(overrides.Subtitle), false)
		} else if body != nil && len(lines) == 0 {
			// A subtitle-only slide may reuse the body slot.
			body.Frame().AddParagraph(txt.Subtitle, styleOrInherit(overrides.Subtitle), false)
		} else {
			warnings = append(warnings, Warning{Region: "subtitle", Message: "no subtitle placeholder in layout " + res.Entry.Name})
		}
	}

	if len(lines) > 0 {
		if body != nil {
			frame := body.Frame()
			for _, line := range lines {
				frame.AddParagraph(line.Text, styleOrInherit(overrides.Body), line.Bullet)
			}
		} else {
			warnings = append(warnings, Warning{Region: "content", Message: "no body placeholder in layout " + res.Entry.Name})
			log.Debug("skipping content region", "layout", res.Entry.Name)
		}
	}

	return warnings
}

func renderTextboxes(slide document.Slide, txt Text, geo layout.Geometry, profile template.Profile, overrides FontOverrides) []Warning {
	var warnings []Warning

	if txt.Title != "" {
		if geo.Title != nil {
			font := resolveFont(overrides.Title, profile.Title, defaultTitleFont)
			slide.AddTextBox(*geo.Title).AddParagraph(txt.Title, font, false)
		} else {
			warnings = append(warnings, Warning{Region: "title", Message: "geometry has no title region"})
		}
	}

	if txt.Subtitle != "" {
		if geo.Subtitle != nil {
			// Subtitle inherits the body sample when the template had no
			// subtitle content to harvest.
			inherited := profile.Subtitle
			if inherited == nil {
				inherited = profile.Body
			}
			font := resolveFont(overrides.Subtitle, inherited, defaultSubtitleFont)
			slide.AddTextBox(*geo.Subtitle).AddParagraph(txt.Subtitle, font, false)
		} else {
			warnings = append(warnings, Warning{Region: "subtitle", Message: "geometry has no subtitle region"})
		}
	}

	if txt.Content != "" && geo.Content != nil {
		lines := SplitContent(txt.Content)
		if len(lines) > 0 {
			font := resolveFont(overrides.Body, profile.Body, defaultBodyFont)
			frame := slide.AddTextBox(*geo.Content)
			for _, line := range lines {
				frame.AddParagraph(line.Text, font, line.Bullet)
			}
		}
	}

	return warnings
}

// renderCombined emits one textbox holding the title followed by the content
// lines, at the text-only geometry.
func renderCombined(slide document.Slide, txt Text, profile template.Profile, overrides FontOverrides) {
	geo := layout.GeometryFor(layout.CategoryTextOnly)
	area := document.Rect{X: geo.Title.X, Y: geo.Title.Y, W: geo.Title.W, H: geo.Title.H + geo.Content.H}
	frame := slide.AddTextBox(area)
	if txt.Title != "" {
		frame.AddParagraph(txt.Title, resolveFont(overrides.Title, profile.Title, defaultTitleFont), false)
	}
	bodyFont := resolveFont(overrides.Body, profile.Body, defaultBodyFont)
	for _, line := range SplitContent(txt.Content) {
		frame.AddParagraph(line.Text, bodyFont, line.Bullet)
	}
}

func findPlaceholder(slide document.Slide, k document.SlotKind) document.Placeholder {
	for _, ph := range slide.Placeholders() {
		if ph.Kind() == k {
			return ph
		}
	}
	return nil
}

// resolveFont applies the deterministic chain: explicit override, then
// template-inherited sample, then the hard default. Override fields that are
// unset fall through to the next source per field.
func resolveFont(override, inherited *document.FontStyle, def document.FontStyle) document.FontStyle {
	out := def
	if inherited != nil {
		out = mergeFont(*inherited, out)
	}
	if override != nil {
		out = mergeFont(*override, out)
	}
	return out
}

// mergeFont fills top's unset fields from base.
func mergeFont(top, base document.FontStyle) document.FontStyle {
	out := top
	if out.Size == nil {
		out.Size = base.Size
	}
	if out.Bold == nil {
		out.Bold = base.Bold
	}
	if out.Italic == nil {
		out.Italic = base.Italic
	}
	if out.Underline == nil {
		out.Underline = base.Underline
	}
	if out.Color == nil {
		out.Color = base.Color
	}
	return out
}

// styleOrInherit returns the override when present and an empty style
// otherwise, so placeholder text keeps the layout's own formatting.
func styleOrInherit(override *document.FontStyle) document.FontStyle {
	if override != nil {
		return *override
	}
	return document.FontStyle{}
}

func f64(v float64) *float64 { return &v }
func boolPtr(b bool) *bool   { return &b }
func str(s string) *string   { return &s }
