package template

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ninocam2680/slidegen-backend/internal/document"
	"github.com/ninocam2680/slidegen-backend/internal/infra/logger"
)

// testResolver wires a Resolver to in-memory documents over a temp dir.
func testResolver(t *testing.T, files ...string) (*Resolver, *document.MemoryDocument) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("PK"), 0o644))
	}

	opened := document.NewMemory(
		&document.MemoryLayout{LayoutName: "Solo testo", SlotKinds: []document.SlotKind{document.SlotTitle, document.SlotBody}},
	)

	r := NewResolver(dir, logger.NewNop())
	r.open = func(path string) (document.Document, error) { return opened, nil }
	r.create = func() document.Document { return document.NewMemory() }
	return r, opened
}

func TestResolveMissingStyleYieldsBlankDeck(t *testing.T) {
	r, _ := testResolver(t)

	doc, fromTemplate, err := r.Resolve("corporate")
	require.NoError(t, err)
	assert.False(t, fromTemplate)

	w, h := doc.PageSize()
	assert.Equal(t, 10.0, w)
	assert.Equal(t, 5.625, h)
}

func TestResolveEmptyStyleYieldsBlankDeck(t *testing.T) {
	r, _ := testResolver(t, "corporate.pptx")

	doc, fromTemplate, err := r.Resolve("")
	require.NoError(t, err)
	assert.False(t, fromTemplate)
	assert.Empty(t, doc.Layouts())
}

func TestResolveFindsTemplateCaseInsensitively(t *testing.T) {
	r, opened := testResolver(t, "Corporate.PPTX")

	doc, fromTemplate, err := r.Resolve("corporate")
	require.NoError(t, err)
	assert.True(t, fromTemplate)
	assert.Same(t, document.Document(opened), doc)
}

func TestResolvePurgesTemplateSlides(t *testing.T) {
	r, opened := testResolver(t, "corporate.pptx")
	_, err := opened.AddSlide(nil)
	require.NoError(t, err)
	_, err = opened.AddSlide(nil)
	require.NoError(t, err)

	_, fromTemplate, err := r.Resolve("corporate")
	require.NoError(t, err)
	assert.True(t, fromTemplate)
	assert.Empty(t, opened.SlideList, "templates are layout libraries, their slides must go")
}

func TestResolveOpenFailureDegradesToBlank(t *testing.T) {
	r, _ := testResolver(t, "corporate.pptx")
	r.open = func(path string) (document.Document, error) { return nil, errors.New("corrupt zip") }

	doc, fromTemplate, err := r.Resolve("corporate")
	require.NoError(t, err, "an unreadable template must not abort the request")
	assert.False(t, fromTemplate)
	require.NotNil(t, doc)

	w, h := doc.PageSize()
	assert.Equal(t, 10.0, w)
	assert.Equal(t, 5.625, h)
}

func TestTemplatePathIgnoresDirectoriesAndOtherFiles(t *testing.T) {
	r, _ := testResolver(t, "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(r.dir, "corporate.pptx"), 0o755))

	assert.Empty(t, r.templatePath("corporate"))
	assert.Empty(t, r.templatePath("notes"))
}
