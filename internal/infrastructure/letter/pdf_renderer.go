package letter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"loan-origination/internal/domain/customer"
	"loan-origination/internal/domain/sanction"
	"loan-origination/internal/pkg/apperrors"
)

// PDFRenderer writes sanction letters as PDF files under outputDir.
type PDFRenderer struct {
	outputDir string
	logger    *slog.Logger
	now       func() time.Time
}

var _ sanction.Renderer = (*PDFRenderer)(nil)

func NewPDFRenderer(outputDir string, logger *slog.Logger) (*PDFRenderer, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating letter output directory %s: %w", outputDir, err)
	}
	return &PDFRenderer{
		outputDir: outputDir,
		logger:    logger.With(slog.String("component", "PDFRenderer")),
		now:       time.Now,
	}, nil
}

func (r *PDFRenderer) Render(ctx context.Context, cust *customer.Record, loan sanction.Loan) (sanction.Artifact, error) {
	filename := fmt.Sprintf("Sanction_Letter_%s_%s.pdf",
		strings.ReplaceAll(cust.Name, " ", "_"),
		r.now().Format("20060102_150405"),
	)
	path := filepath.Join(r.outputDir, filename)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Personal Loan Sanction Letter", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", r.now().Format("02-January-2006")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, "To,", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, cust.Name, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, cust.Address, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Phone: %s", cust.Phone), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Email: %s", cust.Email), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, "Subject: Personal Loan Sanction", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 11)
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"We are pleased to inform you that your personal loan application has been approved. "+
			"The sanction details are as follows:\n\n"+
			"Sanctioned Loan Amount: Rs. %d\n"+
			"Interest Rate: %s%% p.a.\n"+
			"Tenure: %d months\n"+
			"Estimated Monthly Installment: Rs. %s\n"+
			"Customer ID: %s\n\n"+
			"This sanction letter is valid for 30 days from the date of issue. "+
			"Please contact our branch to proceed with the disbursement process.\n\n"+
			"Congratulations on your loan approval!\n\n"+
			"Sincerely,\nThe Loan Origination Team",
		cust.Name,
		loan.ApprovedAmount,
		loan.InterestRate.String(),
		loan.TenureMonths,
		loan.MonthlyInstallment.StringFixed(2),
		cust.CustomerID,
	)
	pdf.MultiCell(0, 6, body, "", "L", false)

	if err := pdf.OutputFileAndClose(path); err != nil {
		r.logger.ErrorContext(ctx, "Failed to write sanction letter", slog.Any("error", err), slog.String("path", path))
		return sanction.Artifact{}, apperrors.WrapRenderingError(err, "could not write sanction letter")
	}

	r.logger.InfoContext(ctx, "Sanction letter generated", slog.String("path", path))
	return sanction.Artifact{Filename: filename, Path: path}, nil
}
