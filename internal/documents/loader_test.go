package documents

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-ranker/internal/resume"
)

var pdfBytes = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")

type stubExtractor struct {
	text string
	err  error
	mime string
}

func (s *stubExtractor) Extract(_ context.Context, _ string, mime string, _ []byte) (string, error) {
	s.mime = mime
	return s.text, s.err
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", []byte("Senior Go developer\r\nKubernetes"))
	writeFile(t, dir, "a.md", []byte("# Jane\nPython"))
	writeFile(t, dir, ".hidden", []byte("skip me"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o700))

	docs, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "a.md", docs[0].Name)
	assert.Equal(t, "b.txt", docs[1].Name)
	assert.Equal(t, "Senior Go developer\nKubernetes", docs[1].Text)

	for _, doc := range docs {
		assert.Equal(t, resume.KindText, doc.Kind)
		assert.NotEmpty(t, doc.ID)
		assert.NoError(t, doc.Validate())
	}
	assert.NotEqual(t, docs[0].ID, docs[1].ID)
}

func TestLoadBinaryWithoutExtractor(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cv.pdf", pdfBytes)

	doc, err := NewLoader().LoadFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, resume.KindBinary, doc.Kind)
	assert.False(t, doc.Extracted)
	assert.Empty(t, doc.Text)
	assert.True(t, errors.Is(doc.Validate(), resume.ErrInvalidInput))
}

func TestLoadBinaryWithExtractor(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cv.pdf", pdfBytes)
	extractor := &stubExtractor{text: "  Data scientist\u0007 with pandas "}

	doc, err := NewLoader(WithExtractor(extractor)).LoadFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", extractor.mime)
	assert.Equal(t, resume.KindBinary, doc.Kind)
	assert.True(t, doc.Extracted)
	assert.Equal(t, "Data scientist with pandas", doc.Text)
	assert.NoError(t, doc.Validate())
}

func TestLoadBinaryExtractorFailure(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cv.pdf", pdfBytes)

	_, err := NewLoader(WithExtractor(&stubExtractor{err: errors.New("corrupt")})).LoadFile(context.Background(), path)
	assert.Error(t, err)
}

func TestFromBytesUsesInjectedClockAndIDs(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := NewLoader()
	l.now = func() time.Time { return fixed }
	l.newID = func() string { return "doc-1" }

	doc, err := l.FromBytes(context.Background(), "cv.txt", []byte("hello"))
	require.NoError(t, err)

	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, fixed, doc.CreatedAt)
}

func TestLoadMissingPath(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	_, err = NewLoader().Load(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestLoadHonoursCancellation(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cv.txt", []byte("go"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader().Load(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"ｆｕｌｌ-width ＧＯ":        "full-width GO",
		"ﬁnance":                "finance",
		"line\r\nbreak\tand\x00": "line\nbreak\tand",
		"  padded  ":             "padded",
	}

	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), in)
	}
}
