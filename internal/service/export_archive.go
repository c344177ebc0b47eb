package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/escolalink/escola-api/pkg/errors"
	"github.com/escolalink/escola-api/pkg/jobs"
	"github.com/escolalink/escola-api/pkg/storage"
)

// ExportArchive keeps a disk copy of every rendered export and hands out
// signed download links for them. Writes happen off the request path on a
// background queue, and copies older than the retention period are swept
// away periodically.
type ExportArchive struct {
	archive   *storage.Archive
	tokens    *storage.DownloadTokens
	queue     *jobs.Queue
	retention time.Duration
	stop      chan struct{}
	logger    *zap.Logger
}

// sweepInterval is how often the retention sweep scans the archive.
const sweepInterval = time.Hour

type archivedDocument struct {
	Name string
	Data []byte
}

// NewExportArchive constructs the archive with its background writer. A
// retention of zero disables the sweep.
func NewExportArchive(dir, secret string, linkTTL, retention time.Duration, logger *zap.Logger) (*ExportArchive, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store, err := storage.NewArchive(dir)
	if err != nil {
		return nil, err
	}
	a := &ExportArchive{
		archive:   store,
		tokens:    storage.NewDownloadTokens(secret, linkTTL),
		retention: retention,
		stop:      make(chan struct{}),
		logger:    logger,
	}
	a.queue = jobs.NewQueue("export-archive", a.persist, jobs.Options{Workers: 1, Logger: logger})
	return a, nil
}

// Start launches the background writer and the retention sweep.
func (a *ExportArchive) Start(ctx context.Context) {
	if a == nil {
		return
	}
	a.queue.Start(ctx)
	if a.retention > 0 {
		go a.sweepLoop(ctx)
	}
}

// Stop drains the background writer and halts the retention sweep.
func (a *ExportArchive) Stop() {
	if a == nil {
		return
	}
	close(a.stop)
	a.queue.Stop()
}

func (a *ExportArchive) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.stop:
			return
		case <-ticker.C:
			a.sweep()
		}
	}
}

func (a *ExportArchive) sweep() {
	pruned, err := a.archive.Prune(a.retention)
	if err != nil {
		a.logger.Warn("archive sweep failed", zap.Error(err))
		return
	}
	if len(pruned) > 0 {
		a.logger.Info("expired exports removed", zap.Int("count", len(pruned)))
	}
}

// Keep schedules the result for archival and returns a signed download
// token for the stored copy. A nil archive keeps nothing and returns "".
func (a *ExportArchive) Keep(result *ExportResult) string {
	if a == nil || result == nil {
		return ""
	}
	data := make([]byte, len(result.Data))
	copy(data, result.Data)
	err := a.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    "archive-export",
		Payload: archivedDocument{Name: result.FileName, Data: data},
	})
	if err != nil {
		a.logger.Warn("export not archived", zap.String("file", result.FileName), zap.Error(err))
		return ""
	}
	token, _, err := a.tokens.Issue(result.FileName)
	if err != nil {
		a.logger.Warn("download token not issued", zap.String("file", result.FileName), zap.Error(err))
		return ""
	}
	return token
}

// Fetch validates a download token and loads the archived copy.
func (a *ExportArchive) Fetch(ctx context.Context, token string) (*ExportResult, error) {
	if a == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export archive is disabled")
	}
	name, err := a.tokens.Verify(token)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid download token")
	}
	data, err := a.archive.Read(name)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "archived document not found")
	}
	return &ExportResult{
		FileName:    name,
		ContentType: contentTypeFor(name),
		Data:        data,
	}, nil
}

func (a *ExportArchive) persist(ctx context.Context, job jobs.Job) error {
	doc, ok := job.Payload.(archivedDocument)
	if !ok {
		return fmt.Errorf("unexpected payload %T", job.Payload)
	}
	if err := a.archive.Save(doc.Name, doc.Data); err != nil {
		return err
	}
	a.logger.Debug("export archived", zap.String("file", doc.Name))
	return nil
}

func contentTypeFor(name string) string {
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(name, ".csv"):
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
