package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExportService(t *testing.T) *ExportService {
	t.Helper()
	st := seededStore(t)
	svc := NewExportService(NewGradeService(st, nil, nil), NewFinanceService(st, nil, nil), nil, nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestExportGradeSheetCSV(t *testing.T) {
	svc := newExportService(t)

	result, err := svc.GradeSheet(context.Background(), "cls-001", "sbj-001", FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "grades_cls-001_sbj-001_20260310.csv", result.FileName)
	assert.Equal(t, "text/csv", result.ContentType)

	body := strings.TrimPrefix(string(result.Data), "\ufeff")
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 4, "header plus one line per enrolled student")
	assert.Equal(t, "Student,Nota 1,Nota 2,Final Exam,Average", strings.TrimSpace(lines[0]))
	assert.Contains(t, body, "Beatriz Almeida,15,18,16,16.33")
	// Ungraded students keep the sentinel in the exported sheet too.
	assert.Contains(t, body, "Eva Tavares,,,,-")
}

func TestExportGradeSheetPDF(t *testing.T) {
	svc := newExportService(t)

	result, err := svc.GradeSheet(context.Background(), "cls-001", "sbj-001", FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Data), "%PDF"))
}

func TestExportFinanceStatementCSV(t *testing.T) {
	svc := newExportService(t)

	result, err := svc.FinanceStatement(context.Background(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "finance_20260310.csv", result.FileName)
	body := strings.TrimPrefix(string(result.Data), "\ufeff")
	assert.Equal(t, "Date,Description,Category,Type,Amount", strings.TrimSpace(strings.SplitN(body, "\n", 2)[0]))
}

func TestExportUnsupportedFormat(t *testing.T) {
	svc := newExportService(t)

	_, err := svc.GradeSheet(context.Background(), "cls-001", "sbj-001", ExportFormat("xlsx"))
	require.Error(t, err)
}

func TestExportArchiveRoundTrip(t *testing.T) {
	archive, err := NewExportArchive(t.TempDir(), "test-secret", time.Hour, 0, nil)
	require.NoError(t, err)
	archive.Start(context.Background())
	defer archive.Stop()

	st := seededStore(t)
	svc := NewExportService(NewGradeService(st, nil, nil), NewFinanceService(st, nil, nil), archive, nil, nil)

	result, err := svc.GradeSheet(context.Background(), "cls-001", "sbj-001", FormatCSV)
	require.NoError(t, err)
	require.NotEmpty(t, result.ArchiveToken)

	// Archival happens on a background worker.
	require.Eventually(t, func() bool {
		_, err := svc.ArchivedDocument(context.Background(), result.ArchiveToken)
		return err == nil
	}, time.Second, 10*time.Millisecond)

	archived, err := svc.ArchivedDocument(context.Background(), result.ArchiveToken)
	require.NoError(t, err)
	assert.Equal(t, result.FileName, archived.FileName)
	assert.Equal(t, result.Data, archived.Data)

	_, err = svc.ArchivedDocument(context.Background(), "bogus.token.value")
	require.Error(t, err)
}

func TestExportArchiveRetentionSweep(t *testing.T) {
	dir := t.TempDir()
	archive, err := NewExportArchive(dir, "test-secret", time.Hour, 24*time.Hour, nil)
	require.NoError(t, err)
	archive.Start(context.Background())
	defer archive.Stop()

	st := seededStore(t)
	svc := NewExportService(NewGradeService(st, nil, nil), NewFinanceService(st, nil, nil), archive, nil, nil)

	result, err := svc.GradeSheet(context.Background(), "cls-001", "sbj-001", FormatCSV)
	require.NoError(t, err)
	path := filepath.Join(dir, result.FileName)
	require.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, time.Second, 10*time.Millisecond)

	// A fresh document survives the sweep.
	archive.sweep()
	_, err = os.Stat(path)
	require.NoError(t, err)

	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(path, stale, stale))
	archive.sweep()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
