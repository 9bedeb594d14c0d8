// Package pdf is the document boundary of the analysis pipeline: it turns
// PDF bytes into the ordered text-run list the detectors consume, and burns
// annotation plans back into a copy of the document.
package pdf

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/wyawin/docaudit/internal/textrun"
)

// ExtractRuns parses the document and returns its text runs in reading
// order (page by page, content order within a page) along with the first
// page's height, which the overlay planner uses for page bucketing.
//
// Run positions use the PDF's native text space with y measured from a
// document-wide origin: page n's runs are offset by n times the first
// page's height. Downstream code never flips or rescales coordinates.
func ExtractRuns(rs io.ReadSeeker) ([]textrun.TextRun, float64, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read document: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to validate document: %w", err)
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read page dimensions: %w", err)
	}
	if len(dims) == 0 {
		return nil, 0, nil
	}
	pageHeight := dims[0].Height

	var runs []textrun.TextRun
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		content, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to extract content of page %d: %w", pageNr, err)
		}
		if content == nil {
			continue
		}
		data, err := io.ReadAll(content)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read content of page %d: %w", pageNr, err)
		}

		pageRuns := extractRunsFromContent(data, pageFonts(ctx, pageNr))

		yOffset := float64(pageNr-1) * pageHeight
		for _, r := range pageRuns {
			r.Position.Y += yOffset
			runs = append(runs, r)
		}
	}
	return runs, pageHeight, nil
}

// pageFonts maps a page's font resource names to their BaseFont names.
// Resolution failures fall back to the resource name; the analysis treats
// family identifiers as opaque either way.
func pageFonts(ctx *model.Context, pageNr int) map[string]string {
	fonts := make(map[string]string)

	pageDict, _, inhPAttrs, err := ctx.PageDict(pageNr, false)
	if err != nil || pageDict == nil {
		return fonts
	}

	var resources types.Dict
	if obj, found := pageDict.Find("Resources"); found {
		resources, _ = ctx.DereferenceDict(obj)
	}
	if resources == nil && inhPAttrs != nil {
		resources = inhPAttrs.Resources
	}
	if resources == nil {
		return fonts
	}

	fontsObj, found := resources.Find("Font")
	if !found {
		return fonts
	}
	fontDict, err := ctx.DereferenceDict(fontsObj)
	if err != nil || fontDict == nil {
		return fonts
	}

	for name, obj := range fontDict {
		d, err := ctx.DereferenceDict(obj)
		if err != nil || d == nil {
			continue
		}
		if base := d.NameEntry("BaseFont"); base != nil {
			fonts[name] = *base
		}
	}
	return fonts
}
