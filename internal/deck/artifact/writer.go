// Package artifact persists rendered documents with a temp-file-then-rename
// protocol: the destination directory only ever sees complete files.
package artifact

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yungbote/deckgen-backend/internal/deck/slidedoc"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

type Encoder interface {
	Encode(w io.Writer, doc *slidedoc.Document) error
	Extension() string
}

type Artifact struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Pages int    `json:"pages"`
	Bytes int64  `json:"bytes"`
}

type Writer struct {
	encoder    Encoder
	scratchDir string
	now        func() time.Time
	newID      func() string
	rename     func(oldpath, newpath string) error
	log        *logger.Logger
}

type Option func(*Writer)

// WithScratchDir sets where temp files are created. Empty means os.TempDir.
func WithScratchDir(dir string) Option { return func(w *Writer) { w.scratchDir = dir } }

func WithClock(now func() time.Time) Option { return func(w *Writer) { w.now = now } }

func WithIDSource(newID func() string) Option { return func(w *Writer) { w.newID = newID } }

// WithRename replaces os.Rename for the final move into the destination.
func WithRename(rename func(oldpath, newpath string) error) Option {
	return func(w *Writer) { w.rename = rename }
}

func WithLogger(log *logger.Logger) Option {
	return func(w *Writer) {
		if log != nil {
			w.log = log.With("component", "ArtifactWriter")
		}
	}
}

func NewWriter(enc Encoder, opts ...Option) *Writer {
	w := &Writer{
		encoder: enc,
		now:     time.Now,
		newID:   func() string { return strings.ReplaceAll(uuid.NewString(), "-", "") },
		rename:  os.Rename,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Name returns a fresh artifact file name. The random suffix keeps
// concurrent writers apart without locking.
func (w *Writer) Name() string {
	return "presentation_" + w.now().Format("20060102_150405") + "_" + w.newID() + w.encoder.Extension()
}

// Persist encodes doc into destDir. On failure nothing is left at the
// destination and the error is an *Error. ctx is used for tracing only.
func (w *Writer) Persist(ctx context.Context, doc *slidedoc.Document, destDir string) (Artifact, error) {
	_, span := otel.Tracer("deckgen/artifact").Start(ctx, "artifact.persist")
	defer span.End()

	art, err := w.persist(doc, destDir)
	if err != nil {
		kind, _ := KindOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(kind))
		w.log.Warn("persist failed", "dest_dir", destDir, "kind", kind, "error", err)
		return Artifact{}, err
	}
	span.SetAttributes(
		attribute.String("artifact.name", art.Name),
		attribute.Int("artifact.pages", art.Pages),
		attribute.Int64("artifact.bytes", art.Bytes),
	)
	w.log.Debug("artifact persisted", "path", art.Path, "pages", art.Pages, "bytes", art.Bytes)
	return art, nil
}

func (w *Writer) persist(doc *slidedoc.Document, destDir string) (Artifact, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return Artifact{}, classify("mkdir", destDir, err)
	}
	scratch := w.scratchDir
	if scratch == "" {
		scratch = os.TempDir()
	}

	name := w.Name()
	final := filepath.Join(destDir, name)

	tmp, n, err := w.stage(scratch, doc)
	if err != nil {
		return Artifact{}, err
	}
	err = w.rename(tmp, final)
	if err != nil && isCrossDevice(err) {
		// scratch is on another filesystem; stage next to the destination
		removeQuietly(tmp)
		w.log.Debug("scratch dir on another device, staging in destination", "scratch_dir", scratch)
		tmp, n, err = w.stage(destDir, doc)
		if err != nil {
			return Artifact{}, err
		}
		err = w.rename(tmp, final)
	}
	if err != nil {
		removeQuietly(tmp)
		return Artifact{}, classify("rename", final, err)
	}

	pages := 0
	if doc != nil {
		pages = len(doc.Pages)
	}
	return Artifact{Name: name, Path: final, Pages: pages, Bytes: n}, nil
}

// stage writes doc to a new temp file in dir and returns its path. Every
// failure path removes the temp file before returning.
func (w *Writer) stage(dir string, doc *slidedoc.Document) (string, int64, error) {
	f, err := os.CreateTemp(dir, ".deck-*.partial")
	if err != nil {
		return "", 0, classify("create_temp", dir, err)
	}
	path := f.Name()
	fail := func(op string, err error) (string, int64, error) {
		_ = f.Close()
		removeQuietly(path)
		return "", 0, classify(op, path, err)
	}

	cw := &countingWriter{w: f}
	if err := w.encoder.Encode(cw, doc); err != nil {
		return fail("encode", err)
	}
	if err := f.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := f.Close(); err != nil {
		removeQuietly(path)
		return "", 0, classify("close", path, err)
	}
	return path, cw.n, nil
}

func removeQuietly(path string) {
	if path != "" {
		_ = os.Remove(path)
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
