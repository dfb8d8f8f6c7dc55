package document

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
	"liendesk/internal/logging"
)

// Service stages local files for upload and sends them to the backend. The
// size limit is checked before any network call.
type Service struct {
	gw       domain.DocumentGateway
	maxBytes int64
	logger   *logging.Logger
}

// New returns a document service. A non-positive maxBytes uses
// domain.MaxUploadBytes.
func New(gw domain.DocumentGateway, maxBytes int64, logger *logging.Logger) *Service {
	if maxBytes <= 0 {
		maxBytes = domain.MaxUploadBytes
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Service{gw: gw, maxBytes: maxBytes, logger: logger.WithComponent("document")}
}

// Stage stats each path. Regular files within the limit are accepted;
// every other path is rejected with an error naming it.
func (s *Service) Stage(paths ...string) (accepted []domain.PendingFile, rejected []error) {
	for _, p := range paths {
		f, err := s.stat(p)
		if err != nil {
			rejected = append(rejected, err)
			continue
		}
		accepted = append(accepted, f)
	}
	return accepted, rejected
}

func (s *Service) stat(path string) (domain.PendingFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.PendingFile{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if !info.Mode().IsRegular() {
		return domain.PendingFile{}, fmt.Errorf("%s is not a regular file", filepath.Base(path))
	}
	if err := s.check(info.Name(), info.Size()); err != nil {
		return domain.PendingFile{}, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return domain.PendingFile{Name: info.Name(), Path: abs, Size: info.Size()}, nil
}

func (s *Service) check(name string, size int64) error {
	if size > s.maxBytes {
		return &errors.FileTooLargeError{Name: name, Size: size, Limit: s.maxBytes}
	}
	return nil
}

// Upload sends files to project id in one multipart request. Sizes are
// re-checked against the files on disk first, so nothing is sent when any
// file has grown past the limit.
func (s *Service) Upload(ctx context.Context, id domain.ProjectID, files []domain.PendingFile) ([]domain.Document, error) {
	if len(files) == 0 {
		return nil, nil
	}
	for _, f := range files {
		fresh, err := s.stat(f.Path)
		if err != nil {
			return nil, err
		}
		if err := s.check(f.Name, fresh.Size); err != nil {
			return nil, err
		}
	}

	parts := make([]domain.UploadFile, 0, len(files))
	for _, f := range files {
		fh, err := os.Open(f.Path)
		if err != nil {
			closeAll(parts)
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		parts = append(parts, domain.UploadFile{Name: f.Name, Content: fh})
	}
	defer closeAll(parts)

	docs, err := s.gw.UploadDocuments(ctx, id, parts)
	if err != nil {
		return nil, err
	}
	s.logger.Info("documents uploaded", "project_id", id.String(), "count", len(docs))
	return docs, nil
}

func closeAll(parts []domain.UploadFile) {
	for _, p := range parts {
		if c, ok := p.Content.(io.Closer); ok {
			_ = c.Close()
		}
	}
}

// Filter keeps the documents whose name matches the glob pattern, compared
// case-insensitively. An empty pattern keeps everything.
func Filter(docs []domain.Document, pattern string) ([]domain.Document, error) {
	if strings.TrimSpace(pattern) == "" {
		return docs, nil
	}
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	var out []domain.Document
	for _, d := range docs {
		if g.Match(strings.ToLower(d.Name)) {
			out = append(out, d)
		}
	}
	return out, nil
}

// Compile-time assertion that Service implements domain.DocumentService.
var _ domain.DocumentService = (*Service)(nil)
