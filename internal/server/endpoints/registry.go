package endpoints

import (
	"github.com/wyawin/docaudit/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	SwaggerSpecPath string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&VersionEndpoint{},

		// Analysis endpoints
		&CreateAnalysisEndpoint{},
		&ListAnalysesEndpoint{},
		&GetAnalysisEndpoint{},
		&GetOverlayEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{SpecPath: cfg.SwaggerSpecPath},
		&SwaggerUIEndpoint{},
	}
}

// AnalysisCommands returns the endpoints whose CLI commands group under
// the "analyses" subcommand.
func AnalysisCommands() []api.Endpoint {
	return []api.Endpoint{
		&CreateAnalysisEndpoint{},
		&ListAnalysesEndpoint{},
		&GetAnalysisEndpoint{},
		&GetOverlayEndpoint{},
	}
}
