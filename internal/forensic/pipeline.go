// Package forensic orchestrates the analysis pipeline: parse the document
// into text runs, run the consistency detectors, score the results, and
// render the two annotated overlays.
package forensic

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wyawin/docaudit/internal/analysis"
	"github.com/wyawin/docaudit/internal/overlay"
	"github.com/wyawin/docaudit/internal/pdf"
)

// ErrParse wraps parser failures. An empty run list is a valid parse
// result, not a parse failure; it yields a clean, non-suspicious report.
var ErrParse = errors.New("document parsing failed")

// ErrOverlay wraps writer failures when an annotation plan cannot be
// rendered. The originating cause is always preserved.
var ErrOverlay = errors.New("overlay generation failed")

// Result is one complete analysis: the report plus the two annotated
// documents. Overlay bytes marshal as base64 in JSON responses.
type Result struct {
	ID                string          `json:"id"`
	FileName          string          `json:"fileName"`
	FileSize          int64           `json:"fileSize"`
	CreatedAt         time.Time       `json:"createdAt"`
	Report            analysis.Report `json:"report"`
	SuspiciousOverlay []byte          `json:"suspiciousPdf,omitempty"`
	FontTypeOverlay   []byte          `json:"fontTypePdf,omitempty"`
}

// Analyze runs the full pipeline over one uploaded document. Each call is
// independent and shares no mutable state with concurrent calls.
func Analyze(logger *slog.Logger, fileName string, doc []byte) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	runs, pageHeight, err := pdf.ExtractRuns(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	logger.Debug("extracted text runs", "file", fileName, "runs", len(runs), "page_height", pageHeight)

	issues := analysis.Detect(runs)
	fonts := analysis.FontInventory(runs)
	report := analysis.Score(issues, fonts)

	logger.Info("analysis complete",
		"file", fileName,
		"suspicious", report.Suspicious,
		"issues", report.Summary.TotalIssues,
		"severity", report.SeverityScore,
		"confidence", report.Confidence,
	)

	suspicious, err := renderOverlay(doc, pageHeight, overlay.PlanSuspicious(runs, issues, pageHeight))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOverlay, err)
	}
	fontTypes, err := renderOverlay(doc, pageHeight, overlay.PlanFontTypes(runs, pageHeight))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOverlay, err)
	}

	return &Result{
		ID:                uuid.New().String(),
		FileName:          fileName,
		FileSize:          int64(len(doc)),
		CreatedAt:         report.Timestamp,
		Report:            report,
		SuspiciousOverlay: suspicious,
		FontTypeOverlay:   fontTypes,
	}, nil
}

// renderOverlay burns one plan into a copy of the document. Documents
// without a usable page height pass through unannotated rather than
// failing; there is nothing to place rectangles on.
func renderOverlay(doc []byte, pageHeight float64, plan overlay.Plan) ([]byte, error) {
	if pageHeight <= 0 {
		out := make([]byte, len(doc))
		copy(out, doc)
		return out, nil
	}

	var buf bytes.Buffer
	if err := pdf.RenderPlan(bytes.NewReader(doc), &buf, plan); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
