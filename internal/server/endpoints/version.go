package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/wyawin/docaudit/internal/api"
	"github.com/wyawin/docaudit/version"
)

// VersionResponse reports the server's build information.
type VersionResponse struct {
	Release    string `json:"release"`
	Commit     string `json:"commit"`
	CommitDate string `json:"commitDate"`
	Go         string `json:"go"`
}

// VersionEndpoint handles GET /version.
type VersionEndpoint struct{}

func (e *VersionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/version", e.handler
}

func (e *VersionEndpoint) RequiresInit() bool { return false }

func (e *VersionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{
		Release:    version.GitRelease,
		Commit:     version.GitCommit,
		CommitDate: version.GitCommitDate,
		Go:         version.GoInfo,
	})
}

func (e *VersionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Get the server's build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp VersionResponse
			if err := client.Get(cmd.Context(), "/version", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
