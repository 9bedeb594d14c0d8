package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/wyawin/docaudit/internal/api"
	"github.com/wyawin/docaudit/internal/forensic"
	"github.com/wyawin/docaudit/internal/svcctx"
)

// ListAnalysesResponse is the response for listing analyses.
type ListAnalysesResponse struct {
	Analyses []forensic.Record `json:"analyses"`
}

// ListAnalysesEndpoint handles GET /api/analyses.
type ListAnalysesEndpoint struct{}

func (e *ListAnalysesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/analyses", e.handler
}

func (e *ListAnalysesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List analyses
//	@Description	List all completed analyses, newest first
//	@Tags			analyses
//	@Produce		json
//	@Success		200	{object}	ListAnalysesResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/analyses [get]
func (e *ListAnalysesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.StoreFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "analysis store not initialized")
		return
	}

	writeJSON(w, http.StatusOK, ListAnalysesResponse{Analyses: store.List()})
}

func (e *ListAnalysesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all analyses",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ListAnalysesResponse
			if err := client.Get(cmd.Context(), "/api/analyses", &resp); err != nil {
				return err
			}

			return api.Output(resp)
		},
	}
}
