package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"abarto-backend/internal/domain"
	"abarto-backend/internal/repositories"
	"abarto-backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReportDocsService renders stored report records as downloadable PDFs.
type ReportDocsService struct {
	Reports   repositories.ResourceRepository
	RequestID string
}

func NewReportDocsService(reports repositories.ResourceRepository) ReportDocsService {
	return ReportDocsService{Reports: reports}
}

func (s ReportDocsService) GeneratePDF(ctx context.Context, reportID int64) ([]byte, string, error) {
	rec, err := s.Reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "reports", "generate_pdf", fmt.Sprintf("report_id=%d", reportID))
	return buildReportPDF(rec)
}

func buildReportPDF(rec domain.Record) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("ABARTO Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, strField(rec, "title", "Untitled report"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Type      : %s", strField(rec, "type", "-")),
		fmt.Sprintf("Author    : %s", strField(rec, "author", "-")),
		fmt.Sprintf("Period    : %s - %s", dateField(rec, "period_start"), dateField(rec, "period_end")),
		fmt.Sprintf("Generated : %s", utils.FormatDateTime(utils.NowUTC())),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	if summary := strField(rec, "summary", ""); summary != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Summary")
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, summary, "", "L", false)
	}

	if content := strField(rec, "content", ""); content != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Detail")
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, content, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "render report pdf", Err: err}
	}

	id, _ := rec["id"].(int64)
	filename := fmt.Sprintf("report-%d.pdf", id)
	return buf.Bytes(), filename, nil
}

func strField(rec domain.Record, name, fallback string) string {
	if s, ok := rec[name].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func dateField(rec domain.Record, name string) string {
	if t, ok := rec[name].(time.Time); ok {
		return utils.FormatDate(t)
	}
	return "-"
}
