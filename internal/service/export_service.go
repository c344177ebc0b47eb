package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/escolalink/escola-api/pkg/errors"
	"github.com/escolalink/escola-api/pkg/export"
)

// ExportFormat names a supported download format.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportResult carries the rendered document and the metadata the handler
// needs to serve it as a download. ArchiveToken is set when a copy was
// scheduled for archival.
type ExportResult struct {
	FileName     string
	ContentType  string
	Data         []byte
	ArchiveToken string
}

// ExportService renders grade sheets and finance statements into
// downloadable documents.
type ExportService struct {
	grades  *GradeService
	finance *FinanceService
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	archive *ExportArchive
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService constructs the export service. The archive may be nil,
// in which case downloads are served inline only.
func NewExportService(grades *GradeService, finance *FinanceService, archive *ExportArchive, metrics *MetricsService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		grades:  grades,
		finance: finance,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		archive: archive,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// GradeSheet renders the grade sheet of one class and subject.
func (s *ExportService) GradeSheet(ctx context.Context, classID, subjectID string, format ExportFormat) (*ExportResult, error) {
	sheet, err := s.grades.ClassGradeSheet(ctx, classID, subjectID)
	if err != nil {
		return nil, err
	}

	headers := []string{"Student", "Nota 1", "Nota 2", "Final Exam", "Average"}
	rows := make([]map[string]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		rows = append(rows, map[string]string{
			"Student":    row.StudentName,
			"Nota 1":     row.Record.Nota1,
			"Nota 2":     row.Record.Nota2,
			"Final Exam": row.Record.FinalExam,
			"Average":    row.Average,
		})
	}

	title := fmt.Sprintf("%s - %s", sheet.ClassName, sheet.SubjectName)
	base := fmt.Sprintf("grades_%s_%s_%s", sheet.ClassID, sheet.SubjectID, s.now().Format("20060102"))
	return s.render(export.Dataset{Headers: headers, Rows: rows}, format, title, base)
}

// FinanceStatement renders the transaction ledger.
func (s *ExportService) FinanceStatement(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	transactions, err := s.finance.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.finance.Categories(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	headers := []string{"Date", "Description", "Category", "Type", "Amount"}
	rows := make([]map[string]string, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, map[string]string{
			"Date":        tx.Date.Format("2006-01-02"),
			"Description": tx.Description,
			"Category":    names[tx.CategoryID],
			"Type":        string(tx.Type),
			"Amount":      fmt.Sprintf("%.2f", tx.Amount),
		})
	}

	base := fmt.Sprintf("finance_%s", s.now().Format("20060102"))
	return s.render(export.Dataset{Headers: headers, Rows: rows}, format, "Financial Statement", base)
}

func (s *ExportService) render(data export.Dataset, format ExportFormat, title, base string) (*ExportResult, error) {
	var result *ExportResult
	switch format {
	case FormatCSV:
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, "EXPORT_FAILED", 500, "failed to render csv")
		}
		result = &ExportResult{
			FileName:    base + ".csv",
			ContentType: "text/csv",
			Data:        payload,
		}
	case FormatPDF:
		payload, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, appErrors.Wrap(err, "EXPORT_FAILED", 500, "failed to render pdf")
		}
		result = &ExportResult{
			FileName:    base + ".pdf",
			ContentType: "application/pdf",
			Data:        payload,
		}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	s.metrics.ObserveExport(string(format))
	result.ArchiveToken = s.archive.Keep(result)
	return result, nil
}

// ArchivedDocument serves a previously archived export by its signed token.
func (s *ExportService) ArchivedDocument(ctx context.Context, token string) (*ExportResult, error) {
	return s.archive.Fetch(ctx, token)
}
