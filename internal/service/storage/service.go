// Package storage persists generated decks for later download.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ninocam2680/slidegen-backend/internal/infra/logger"
	"github.com/ninocam2680/slidegen-backend/pkg/errors"
)

type Service struct {
	basePath string
	baseURL  string
	logger   *logger.Logger
}

func New(basePath, baseURL string, log *logger.Logger) *Service {
	return &Service{
		basePath: basePath,
		baseURL:  baseURL,
		logger:   log,
	}
}

// BasePath returns the directory served under the download route.
func (s *Service) BasePath() string { return s.basePath }

// SaveDeck writes one generated deck and returns its download URL.
func (s *Service) SaveDeck(ctx context.Context, id string, data []byte) (string, error) {
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeStorage, "failed to create output directory")
	}

	filename := fmt.Sprintf("%s.pptx", id)
	filePath := filepath.Join(s.basePath, filename)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeStorage, "failed to write deck")
	}

	url := fmt.Sprintf("%s/%s", s.baseURL, filename)
	s.logger.Info("deck persisted", "path", filePath, "url", url, "size", len(data))
	return url, nil
}

// GetDeck reads a persisted deck back by id.
func (s *Service) GetDeck(ctx context.Context, id string) ([]byte, error) {
	filePath := filepath.Join(s.basePath, fmt.Sprintf("%s.pptx", id))
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeNotFound, "deck not found")
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorage, "failed to read deck")
	}
	return data, nil
}
