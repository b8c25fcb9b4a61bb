// Package assembler orchestrates one deck request end to end: template
// resolution, style extraction, per-slide layout/content/image work, in
// strict input order.
package assembler

import (
	"context"
	"fmt"

	"github.com/ninocam2680/slidegen-backend/internal/document"
	"github.com/ninocam2680/slidegen-backend/internal/infra/limiter"
	"github.com/ninocam2680/slidegen-backend/internal/infra/logger"
	"github.com/ninocam2680/slidegen-backend/internal/service/imagefetch"
	"github.com/ninocam2680/slidegen-backend/internal/service/layout"
	"github.com/ninocam2680/slidegen-backend/internal/service/render"
	"github.com/ninocam2680/slidegen-backend/internal/service/template"
	"github.com/ninocam2680/slidegen-backend/pkg/errors"
)

const imagePlaceholderText = "Image not available"

var imagePlaceholderFont = document.FontStyle{Size: sizePtr(12), Color: colorPtr("9CA3AF")}

// SlideSpec is one requested slide.
type SlideSpec struct {
	Layout   string
	Title    string
	Subtitle string
	Content  string
	ImageURL string
}

// Dimensions is an explicit page size override, in inches.
type Dimensions struct {
	Width  float64
	Height float64
}

// DeckRequest is one whole assembly call. It is consumed exactly once; the
// backing document is created fresh and never shared across requests.
type DeckRequest struct {
	RequestID  string
	Title      string
	Style      string
	Format     string
	Dimensions *Dimensions
	Fonts      render.FontOverrides
	Slides     []SlideSpec
}

// SlideReport carries the warnings collected while rendering one slide.
type SlideReport struct {
	Index    int
	Warnings []render.Warning
}

// Deck is the assembled, not-yet-serialized result.
type Deck struct {
	Document     document.Document
	FromTemplate bool
	Reports      []SlideReport
}

// WarningCount sums warnings across all slides.
func (d *Deck) WarningCount() int {
	n := 0
	for _, r := range d.Reports {
		n += len(r.Warnings)
	}
	return n
}

// TemplateResolver yields an opened document container for a style.
type TemplateResolver interface {
	Resolve(style string) (document.Document, bool, error)
}

// ImageFetcher retrieves one remote image.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (*imagefetch.Image, error)
}

type Assembler struct {
	templates TemplateResolver
	images    ImageFetcher
	limiter   *limiter.Limiter
	logger    *logger.Logger
}

func New(templates TemplateResolver, images ImageFetcher, lim *limiter.Limiter, log *logger.Logger) *Assembler {
	return &Assembler{
		templates: templates,
		images:    images,
		limiter:   lim,
		logger:    log,
	}
}

// Assemble builds the deck for one request. Slides are produced strictly in
// input order and are never dropped: per-slide failures degrade the affected
// regions only. The only fatal outcomes are template-container creation
// failures.
func (a *Assembler) Assemble(ctx context.Context, req *DeckRequest) (*Deck, error) {
	release, err := a.limiter.Acquire(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRateLimited, "rate limit exceeded")
	}
	defer release()

	log := a.logger.With("request_id", req.RequestID)
	log.Info("starting deck assembly",
		"style", req.Style,
		"format", req.Format,
		"slides", len(req.Slides),
	)

	doc, fromTemplate, err := a.templates.Resolve(req.Style)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTemplate, "failed to open document container")
	}
	if req.Dimensions != nil && req.Dimensions.Width > 0 && req.Dimensions.Height > 0 {
		doc.SetPageSize(req.Dimensions.Width, req.Dimensions.Height)
	}

	profile := template.ExtractStyles(doc, log)
	catalog := layout.BuildCatalog(doc, log)

	deck := &Deck{Document: doc, FromTemplate: fromTemplate}

	if req.Title != "" {
		a.addTitleSlide(doc, catalog, profile, req, log)
	}

	for i, spec := range req.Slides {
		report := SlideReport{Index: i}
		a.assembleSlide(ctx, doc, catalog, profile, req, spec, &report, log)
		deck.Reports = append(deck.Reports, report)
	}

	log.Info("deck assembled",
		"slides", len(doc.Slides()),
		"warnings", deck.WarningCount(),
		"from_template", fromTemplate,
	)
	return deck, nil
}

// assembleSlide renders one slide. Failures are contained here: a panic or
// error degrades this slide and assembly moves on to the next.
func (a *Assembler) assembleSlide(ctx context.Context, doc document.Document, catalog *layout.Catalog, profile template.Profile, req *DeckRequest, spec SlideSpec, report *SlideReport, log *logger.Logger) {
	defer func() {
		if r := recover(); r != nil {
			report.Warnings = append(report.Warnings, render.Warning{
				Region:  "slide",
				Message: fmt.Sprintf("slide rendering failed: %v", r),
			})
			log.Error("slide rendering failed", "slide", report.Index, "panic", r)
		}
	}()

	res := layout.Resolve(spec.Layout, catalog)
	if res.Note != "" {
		report.Warnings = append(report.Warnings, render.Warning{Region: "layout", Message: res.Note})
	}

	slide, err := a.addSlide(doc, res.Entry)
	if err != nil {
		report.Warnings = append(report.Warnings, render.Warning{
			Region:  "slide",
			Message: fmt.Sprintf("failed to add slide: %v", err),
		})
		log.Error("failed to add slide", "slide", report.Index, "error", err)
		return
	}

	warns := render.Render(slide, render.Text{
		Title:    spec.Title,
		Subtitle: spec.Subtitle,
		Content:  spec.Content,
	}, res, profile, req.Fonts, log)
	report.Warnings = append(report.Warnings, warns...)

	// Images are only attempted when the category defines an image region.
	if res.Geometry.HasImage() && spec.ImageURL != "" {
		a.placeImage(ctx, slide, *res.Geometry.Image, spec.ImageURL, report, log)
	}
}

// addSlide instantiates the resolved layout, degrading to a blank slide when
// the layout cannot be used.
func (a *Assembler) addSlide(doc document.Document, entry *layout.Entry) (document.Slide, error) {
	if entry != nil {
		slide, err := doc.AddSlide(entry.Layout)
		if err == nil {
			return slide, nil
		}
		a.logger.Warn("layout instantiation failed, using blank slide", "layout", entry.Name, "error", err)
	}
	return doc.AddSlide(nil)
}

// placeImage embeds the fetched image, or a visible placeholder box with the
// same dimensions so the layout stays symmetric.
func (a *Assembler) placeImage(ctx context.Context, slide document.Slide, area document.Rect, url string, report *SlideReport, log *logger.Logger) {
	img, err := a.images.Fetch(ctx, url)
	if err == nil {
		if err = slide.AddPicture(img.Data, area); err == nil {
			return
		}
	}
	report.Warnings = append(report.Warnings, render.Warning{
		Region:  "image",
		Message: fmt.Sprintf("image unavailable: %v", err),
	})
	log.Warn("image unavailable, rendering placeholder", "slide", report.Index, "url", url, "error", err)
	slide.AddTextBox(area).AddParagraph(imagePlaceholderText, imagePlaceholderFont, false)
}

// addTitleSlide prepends the deck-level title slide, the same way the
// service has always done: first template layout when one exists, centered
// free text otherwise.
func (a *Assembler) addTitleSlide(doc document.Document, catalog *layout.Catalog, profile template.Profile, req *DeckRequest, log *logger.Logger) {
	res := layout.Resolution{
		Entry:    catalog.First(),
		Category: layout.CategoryCenteredText,
		Geometry: layout.GeometryFor(layout.CategoryCenteredText),
	}
	slide, err := a.addSlide(doc, res.Entry)
	if err != nil {
		log.Error("failed to add title slide", "error", err)
		return
	}
	render.Render(slide, render.Text{Title: req.Title}, res, profile, req.Fonts, log)
}

func sizePtr(v float64) *float64 { return &v }
func colorPtr(s string) *string  { return &s }
