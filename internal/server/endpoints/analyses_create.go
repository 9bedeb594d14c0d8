package endpoints

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wyawin/docaudit/internal/api"
	"github.com/wyawin/docaudit/internal/forensic"
	"github.com/wyawin/docaudit/internal/svcctx"
)

// CreateAnalysisEndpoint handles POST /api/analyses with a multipart file
// upload. The document is analyzed synchronously and the full result,
// including both annotated overlays, is returned.
type CreateAnalysisEndpoint struct{}

var _ api.Endpoint = (*CreateAnalysisEndpoint)(nil)

func (e *CreateAnalysisEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/analyses", e.handler
}

func (e *CreateAnalysisEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Analyze a document
//	@Description	Upload a PDF and run the tampering analysis on it
//	@Tags			analyses
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"PDF document to analyze"
//	@Success		200	{object}	forensic.Result
//	@Failure		400	{object}	ErrorResponse
//	@Failure		413	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/analyses [post]
func (e *CreateAnalysisEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	cfgMgr := svcctx.ConfigFrom(r.Context())
	if cfgMgr == nil {
		writeError(w, http.StatusServiceUnavailable, "config manager not initialized")
		return
	}
	maxBytes := cfgMgr.Get().MaxUploadBytes()

	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d byte limit", maxBytes))
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	fhs := r.MultipartForm.File["file"]
	if len(fhs) == 0 {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	fh := fhs[0]

	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("file %s is not a PDF", fh.Filename))
		return
	}

	src, err := fh.Open()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to open uploaded file: %v", err))
		return
	}
	doc, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read uploaded file: %v", err))
		return
	}

	if ct := http.DetectContentType(doc); ct != "application/pdf" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("file %s is not a PDF (detected %s)", fh.Filename, ct))
		return
	}

	store := svcctx.StoreFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "analysis store not initialized")
		return
	}
	logger := svcctx.LoggerFrom(r.Context())

	result, err := forensic.Analyze(logger, fh.Filename, doc)
	if err != nil {
		if errors.Is(err, forensic.ErrParse) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := store.Save(result, doc); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to persist analysis: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (e *CreateAnalysisEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file.pdf>",
		Short: "Upload a PDF for analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var result forensic.Result
			if err := client.Upload(cmd.Context(), "/api/analyses", args[0], &result); err != nil {
				return err
			}
			// The overlays come back base64-encoded; drop them from CLI
			// output and let the overlay command fetch them on demand.
			result.SuspiciousOverlay = nil
			result.FontTypeOverlay = nil
			return api.Output(result)
		},
	}
}
