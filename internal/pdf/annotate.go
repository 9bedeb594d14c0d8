package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/wyawin/docaudit/internal/overlay"
)

// Names of the resources the overlay content references. Prefixed to avoid
// colliding with the page's own resource names.
const (
	overlayGSName   = "GSdocaudit"
	overlayFontName = "Fdocaudit"
	legendFontSize  = 10
	legendSwatch    = 10.0
	legendLineStep  = 14.0
)

// RenderPlan burns an annotation plan into a copy of the document: one
// filled rectangle per annotation plus the legend on the first page. The
// plan is validated first; rejected plans leave the writer untouched.
//
// Rectangle y coordinates arrive document-wide (page bucketing by uniform
// page height) and are translated back to page-local coordinates here.
func RenderPlan(rs io.ReadSeeker, w io.Writer, plan overlay.Plan) error {
	if err := ValidatePlan(plan); err != nil {
		return err
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(rs, conf)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return fmt.Errorf("failed to validate document: %w", err)
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return fmt.Errorf("failed to read page dimensions: %w", err)
	}
	if len(dims) == 0 {
		return fmt.Errorf("%w: document has no pages", ErrInvalidPlan)
	}
	pageHeight := dims[0].Height

	perPage := make(map[int][]overlay.Annotation)
	for _, a := range plan.Annotations {
		pageNr := a.PageIndex + 1
		if pageNr < 1 {
			pageNr = 1
		}
		if pageNr > ctx.PageCount {
			pageNr = ctx.PageCount
		}
		perPage[pageNr] = append(perPage[pageNr], a)
	}

	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		anns := perPage[pageNr]
		withLegend := pageNr == 1 && len(plan.Legend.Entries) > 0
		if len(anns) == 0 && !withLegend {
			continue
		}

		var content bytes.Buffer
		writeRects(&content, anns, pageNr, pageHeight)
		if withLegend {
			writeLegend(&content, plan.Legend)
		}
		if err := appendPageContent(ctx, pageNr, content.Bytes()); err != nil {
			return fmt.Errorf("failed to annotate page %d: %w", pageNr, err)
		}
	}

	if err := api.WriteContext(ctx, w); err != nil {
		return fmt.Errorf("failed to write annotated document: %w", err)
	}
	return nil
}

func writeRects(buf *bytes.Buffer, anns []overlay.Annotation, pageNr int, pageHeight float64) {
	for _, a := range anns {
		y := a.Rect.Y - float64(pageNr-1)*pageHeight
		fmt.Fprintf(buf, "q /%s gs %.3f %.3f %.3f rg %.2f %.2f %.2f %.2f re f Q\n",
			overlayGSName, a.Color.R, a.Color.G, a.Color.B, a.Rect.X, y, a.Rect.W, a.Rect.H)
	}
}

// writeLegend draws swatch rows stacked upward from the legend origin, each
// with a color square and its label.
func writeLegend(buf *bytes.Buffer, legend overlay.Legend) {
	for i, entry := range legend.Entries {
		y := legend.Y + float64(i)*legendLineStep
		fmt.Fprintf(buf, "q %.3f %.3f %.3f rg %.2f %.2f %.2f %.2f re f Q\n",
			entry.Color.R, entry.Color.G, entry.Color.B, legend.X, y, legendSwatch, legendSwatch)
		fmt.Fprintf(buf, "BT /%s %d Tf 0 0 0 rg %.2f %.2f Td (%s) Tj ET\n",
			overlayFontName, legendFontSize, legend.X+legendSwatch+4, y+2, escapeString(entry.Label))
	}
}

func escapeString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// appendPageContent adds a new content stream after the page's existing
// streams and ensures the resources the overlay content references exist.
func appendPageContent(ctx *model.Context, pageNr int, bb []byte) error {
	pageDict, _, inhPAttrs, err := ctx.PageDict(pageNr, false)
	if err != nil {
		return fmt.Errorf("failed to resolve page dict: %w", err)
	}
	if pageDict == nil {
		return fmt.Errorf("page %d has no page dict", pageNr)
	}

	sd, err := ctx.XRefTable.NewStreamDictForBuf(bb)
	if err != nil {
		return fmt.Errorf("failed to create content stream: %w", err)
	}
	if err := sd.Encode(); err != nil {
		return fmt.Errorf("failed to encode content stream: %w", err)
	}
	ref, err := ctx.XRefTable.IndRefForNewObject(*sd)
	if err != nil {
		return fmt.Errorf("failed to register content stream: %w", err)
	}

	switch contents := pageDict["Contents"].(type) {
	case types.Array:
		pageDict["Contents"] = append(contents, *ref)
	case types.IndirectRef:
		pageDict["Contents"] = types.Array{contents, *ref}
	default:
		pageDict["Contents"] = *ref
	}

	return ensureOverlayResources(ctx, pageDict, inhPAttrs)
}

// ensureOverlayResources guarantees the page has a Resources dict carrying
// the overlay's ExtGState and legend font. When the page inherits its
// resources, they are copied down onto the page first so the override stays
// local.
func ensureOverlayResources(ctx *model.Context, pageDict types.Dict, inhPAttrs *model.InheritedPageAttrs) error {
	var resources types.Dict
	if obj, found := pageDict.Find("Resources"); found {
		resources, _ = ctx.DereferenceDict(obj)
	}
	if resources == nil {
		resources = types.Dict{}
		if inhPAttrs != nil && inhPAttrs.Resources != nil {
			for k, v := range inhPAttrs.Resources {
				resources[k] = v
			}
		}
		pageDict["Resources"] = resources
	}

	var extGState types.Dict
	if obj, found := resources.Find("ExtGState"); found {
		extGState, _ = ctx.DereferenceDict(obj)
	}
	if extGState == nil {
		extGState = types.Dict{}
	}
	extGState[overlayGSName] = types.Dict{
		"Type": types.Name("ExtGState"),
		"ca":   types.Float(overlayFillOpacity),
		"CA":   types.Float(overlayFillOpacity),
	}
	resources["ExtGState"] = extGState

	var fontRes types.Dict
	if obj, found := resources.Find("Font"); found {
		fontRes, _ = ctx.DereferenceDict(obj)
	}
	if fontRes == nil {
		fontRes = types.Dict{}
	}
	fontRes[overlayFontName] = types.Dict{
		"Type":     types.Name("Font"),
		"Subtype":  types.Name("Type1"),
		"BaseFont": types.Name("Helvetica"),
	}
	resources["Font"] = fontRes

	return nil
}

// overlayFillOpacity matches the opacity both planners emit. A single
// graphics state keeps the overlay content stream small; per-annotation
// opacities in the plan are honored at validation time and rendered with
// this shared state.
const overlayFillOpacity = 0.3
