// Package documents turns files on disk into resume documents.
package documents

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/resume"
)

// MaxFileSize is the largest file the loader accepts.
const MaxFileSize = 10 << 20

var ErrTooLarge = errors.New("file is too large")

// TextExtractor turns a binary document (PDF, image) into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, name string, mime string, data []byte) (string, error)
}

// Loader reads documents. Without a TextExtractor binary documents are
// returned unextracted.
type Loader struct {
	extractor TextExtractor
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

type Option func(*Loader)

func WithExtractor(e TextExtractor) Option {
	return func(l *Loader) { l.extractor = e }
}

func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) { l.logger = logger.OrNop(log) }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		logger: zap.NewNop(),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every path. Directories contribute their regular files in
// lexical order; hidden files are skipped.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]resume.Document, error) {
	files, err := expand(paths)
	if err != nil {
		return nil, err
	}

	docs := make([]resume.Document, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := l.LoadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	l.logger.Info("documents loaded", zap.Int("count", len(docs)))
	return docs, nil
}

// LoadFile reads a single file.
func (l *Loader) LoadFile(ctx context.Context, path string) (*resume.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %q is %d bytes", ErrTooLarge, path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	return l.FromBytes(ctx, filepath.Base(path), data)
}

// FromBytes builds a document from raw content. Text content is normalised;
// binary content goes through the extractor when one is configured.
func (l *Loader) FromBytes(ctx context.Context, name string, data []byte) (*resume.Document, error) {
	mime := mimetype.Detect(data)

	doc := &resume.Document{
		ID:        l.newID(),
		Name:      name,
		CreatedAt: l.now(),
	}

	log := logger.WithFields(l.logger, logger.DocumentFields(doc.ID, name)...)

	if isText(mime) {
		doc.Kind = resume.KindText
		doc.Text = Normalize(string(data))
		log.Debug("text document loaded", zap.String("mime", mime.String()))
		return doc, nil
	}

	doc.Kind = resume.KindBinary
	if l.extractor == nil {
		log.Debug("binary document left unextracted", zap.String("mime", mime.String()))
		return doc, nil
	}

	text, err := l.extractor.Extract(ctx, name, mime.String(), data)
	if err != nil {
		return nil, fmt.Errorf("extract text from %q: %w", name, err)
	}

	doc.Text = Normalize(text)
	doc.Extracted = true
	log.Debug("binary document extracted", zap.String("mime", mime.String()), zap.Int("length", len(doc.Text)))

	return doc, nil
}

func isText(mime *mimetype.MIME) bool {
	for m := mime; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "text/") {
			return true
		}
	}
	return false
}

// Normalize applies NFKC, unifies line endings and drops control
// characters other than newlines and tabs.
func Normalize(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.ReplaceAll(normed, "\r\n", "\n")
	normed = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
	return strings.TrimSpace(normed)
}

func expand(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", path, err)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("read directory %q: %w", path, err)
		}

		var inDir []string
		for _, entry := range entries {
			if strings.HasPrefix(entry.Name(), ".") || !entry.Type().IsRegular() {
				continue
			}
			inDir = append(inDir, filepath.Join(path, entry.Name()))
		}
		sort.Strings(inDir)
		files = append(files, inDir...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no documents found: %w", fs.ErrNotExist)
	}

	return files, nil
}
