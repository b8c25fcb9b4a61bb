package api

type GenerateDeckRequest struct {
	Secret          string                  `json:"secret"`
	Title           string                  `json:"title"`
	Style           string                  `json:"style"`
	Format          string                  `json:"format"`
	Dimensions      *DimensionsDTO          `json:"dimensions"`
	Fonts           map[string]FontOverride `json:"fonts"`
	Slides          []SlideSpecDTO          `json:"slides" binding:"required"`
	Persist         bool                    `json:"persist"`
	ClientRequestID string                  `json:"client_request_id"`
}

type SlideSpecDTO struct {
	Layout   string `json:"layout"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

type DimensionsDTO struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FontOverride is a per-region font override keyed by region name
// ("title", "subtitle", "body").
type FontOverride struct {
	Size  float64 `json:"size"`
	Color string  `json:"color"`
}

// ErrorResponse is the uniform failure body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PersistedDeckResponse is returned instead of the attachment when the
// caller asked for the deck to be stored.
type PersistedDeckResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	URL       string `json:"url"`
	Warnings  int    `json:"warnings,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

const (
	StatusSucceeded = "SUCCEEDED"

	pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)
