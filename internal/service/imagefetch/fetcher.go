// Package imagefetch retrieves remote images for slide embedding.
package imagefetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/ninocam2680/slidegen-backend/internal/infra/httpclient"
	"github.com/ninocam2680/slidegen-backend/internal/infra/logger"
	"github.com/ninocam2680/slidegen-backend/pkg/errors"
)

// Oversized downloads are cut off rather than buffered unbounded.
const maxImageBytes = 20 << 20

type Image struct {
	Data []byte
	MIME string
}

type Fetcher struct {
	client  *httpclient.Client
	timeout time.Duration
	logger  *logger.Logger
}

func New(client *httpclient.Client, timeout time.Duration, log *logger.Logger) *Fetcher {
	return &Fetcher{
		client:  client,
		timeout: timeout,
		logger:  log,
	}
}

// Fetch downloads and validates one image within the configured timeout.
// Every failure comes back as an error for the caller to degrade on; Fetch
// itself never renders placeholders.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Image, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New(errors.ErrCodeImageFetch, "empty image url")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	resp, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeImageFetch, "image request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrCodeImageFetch, fmt.Sprintf("image request returned %d", resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeImageFetch, "failed to read image body")
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, errors.New(errors.ErrCodeImageFetch, fmt.Sprintf("not an image: %s", mt.String()))
	}

	f.logger.Debug("image fetched", "url", url, "bytes", len(data), "mime", mt.String())
	return &Image{Data: data, MIME: mt.String()}, nil
}
