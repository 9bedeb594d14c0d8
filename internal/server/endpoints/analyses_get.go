package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/wyawin/docaudit/internal/analysis"
	"github.com/wyawin/docaudit/internal/api"
	"github.com/wyawin/docaudit/internal/forensic"
	"github.com/wyawin/docaudit/internal/svcctx"
)

// AnalysisDetailResponse is the response for getting a single analysis.
type AnalysisDetailResponse struct {
	forensic.Record
	Report analysis.Report `json:"report"`
}

// GetAnalysisEndpoint handles GET /api/analyses/{id}.
type GetAnalysisEndpoint struct{}

func (e *GetAnalysisEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/analyses/{id}", e.handler
}

func (e *GetAnalysisEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get an analysis
//	@Description	Get one analysis record with its full tampering report
//	@Tags			analyses
//	@Produce		json
//	@Param			id	path		string	true	"Analysis ID"
//	@Success		200	{object}	AnalysisDetailResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/analyses/{id} [get]
func (e *GetAnalysisEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.StoreFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "analysis store not initialized")
		return
	}

	id := r.PathValue("id")
	record, ok := store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "analysis not found")
		return
	}

	report, err := store.Report(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, AnalysisDetailResponse{Record: record, Report: report})
}

func (e *GetAnalysisEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get an analysis with its full report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp AnalysisDetailResponse
			if err := client.Get(cmd.Context(), "/api/analyses/"+args[0], &resp); err != nil {
				return err
			}

			return api.Output(resp)
		},
	}
}
