package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninocam2680/slidegen-backend/internal/document"
	"github.com/ninocam2680/slidegen-backend/internal/infra/logger"
)

func fontSized(size float64) document.FontStyle {
	return document.FontStyle{Size: &size}
}

func TestExtractStylesHarvestsAllSlots(t *testing.T) {
	doc := document.NewMemory(
		&document.MemoryLayout{
			LayoutName: "Testo centrato",
			SlotKinds:  []document.SlotKind{document.SlotTitle, document.SlotSubtitle, document.SlotBody},
			Fonts: map[document.SlotKind]document.FontStyle{
				document.SlotTitle:    fontSized(40),
				document.SlotSubtitle: fontSized(22),
				document.SlotBody:     fontSized(16),
			},
		},
	)

	profile := ExtractStyles(doc, logger.NewNop())
	require.NotNil(t, profile.Title)
	assert.Equal(t, 40.0, *profile.Title.Size)
	require.NotNil(t, profile.Subtitle)
	assert.Equal(t, 22.0, *profile.Subtitle.Size)
	require.NotNil(t, profile.Body)
	assert.Equal(t, 16.0, *profile.Body.Size)

	assert.Empty(t, doc.SlideList, "probe slides must be removed")
}

func TestExtractStylesPartialProfile(t *testing.T) {
	doc := document.NewMemory(
		&document.MemoryLayout{
			LayoutName: "Solo testo",
			SlotKinds:  []document.SlotKind{document.SlotTitle, document.SlotBody},
			Fonts: map[document.SlotKind]document.FontStyle{
				document.SlotTitle: fontSized(38),
			},
		},
	)

	profile := ExtractStyles(doc, logger.NewNop())
	require.NotNil(t, profile.Title)
	assert.Equal(t, 38.0, *profile.Title.Size)
	assert.Nil(t, profile.Body, "slots without a sample stay nil")
	assert.Nil(t, profile.Subtitle)
}

func TestExtractStylesFirstSampleWins(t *testing.T) {
	doc := document.NewMemory(
		&document.MemoryLayout{
			LayoutName: "Uno",
			SlotKinds:  []document.SlotKind{document.SlotTitle},
			Fonts:      map[document.SlotKind]document.FontStyle{document.SlotTitle: fontSized(40)},
		},
		&document.MemoryLayout{
			LayoutName: "Due",
			SlotKinds:  []document.SlotKind{document.SlotTitle},
			Fonts:      map[document.SlotKind]document.FontStyle{document.SlotTitle: fontSized(12)},
		},
	)

	profile := ExtractStyles(doc, logger.NewNop())
	require.NotNil(t, profile.Title)
	assert.Equal(t, 40.0, *profile.Title.Size)
}

func TestExtractStylesSkipsFailingLayout(t *testing.T) {
	doc := document.NewMemory(
		&document.MemoryLayout{
			LayoutName: "Rotto",
			SlotKinds:  []document.SlotKind{document.SlotTitle},
			Fonts:      map[document.SlotKind]document.FontStyle{document.SlotTitle: fontSized(40)},
		},
		&document.MemoryLayout{
			LayoutName: "Sano",
			SlotKinds:  []document.SlotKind{document.SlotBody},
			Fonts:      map[document.SlotKind]document.FontStyle{document.SlotBody: fontSized(14)},
		},
	)
	doc.FailAddFor = "Rotto"

	profile := ExtractStyles(doc, logger.NewNop())
	assert.Nil(t, profile.Title)
	require.NotNil(t, profile.Body)
	assert.Equal(t, 14.0, *profile.Body.Size)
	assert.Empty(t, doc.SlideList)
}

func TestExtractStylesEmptyDocument(t *testing.T) {
	profile := ExtractStyles(document.NewMemory(), logger.NewNop())
	assert.Nil(t, profile.Title)
	assert.Nil(t, profile.Body)
	assert.Nil(t, profile.Subtitle)
}
