package endpoints

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/wyawin/docaudit/internal/api"
	"github.com/wyawin/docaudit/internal/forensic"
	"github.com/wyawin/docaudit/internal/svcctx"
)

// GetOverlayEndpoint handles GET /api/analyses/{id}/overlay/{kind}.
// It serves one of the two annotated PDFs produced by an analysis:
// "suspicious" or "fonts".
type GetOverlayEndpoint struct{}

func (e *GetOverlayEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/analyses/{id}/overlay/{kind}", e.handler
}

func (e *GetOverlayEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Download an annotated overlay
//	@Description	Download the annotated PDF for an analysis (kind: suspicious or fonts)
//	@Tags			analyses
//	@Produce		application/pdf
//	@Param			id		path	string	true	"Analysis ID"
//	@Param			kind	path	string	true	"Overlay kind"	Enums(suspicious, fonts)
//	@Success		200	{file}		file
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/analyses/{id}/overlay/{kind} [get]
func (e *GetOverlayEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.StoreFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, "analysis store not initialized")
		return
	}

	id := r.PathValue("id")
	kind := r.PathValue("kind")
	if kind != forensic.OverlaySuspicious && kind != forensic.OverlayFontTypes {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown overlay kind %q", kind))
		return
	}

	if _, ok := store.Get(id); !ok {
		writeError(w, http.StatusNotFound, "analysis not found")
		return
	}

	data, err := store.Overlay(id, kind)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+"."+kind+".pdf"))
	w.Write(data)
}

func (e *GetOverlayEndpoint) Command(getServerURL func() string) *cobra.Command {
	var outputFile string
	cmd := &cobra.Command{
		Use:   "overlay <id> <kind>",
		Short: "Download an annotated overlay PDF (kind: suspicious or fonts)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, kind := args[0], args[1]
			client := api.NewClient(getServerURL())

			data, err := client.GetRaw(cmd.Context(), "/api/analyses/"+id+"/overlay/"+kind)
			if err != nil {
				return err
			}

			dest := outputFile
			if dest == "" {
				dest = id + "." + kind + ".pdf"
			}
			if err := os.WriteFile(dest, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", dest, err)
			}
			fmt.Printf("Wrote %s (%d bytes)\n", dest, len(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")
	return cmd
}
