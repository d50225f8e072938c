package mcp

import (
	"context"
	"encoding/json"

	"distfit-mcp/internal/config"
	"distfit-mcp/internal/estimation"
	"distfit-mcp/internal/fit"
	"distfit-mcp/internal/simulation"
	"distfit-mcp/internal/summary"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Selector runs the selection cascade on one observation.
type Selector interface {
	SelectBestDistribution(ctx context.Context, obs summary.Observation) (fit.Verdict, error)
}

// Server holds the state for the MCP server.
type Server struct {
	cfg        *config.AppConfig
	selector   Selector
	estimators []estimation.Key
	mcp        *sdk.Server

	// newSimulation is swapped by tests to make draws reproducible.
	newSimulation func(seed int64) *simulation.Engine
}

// NewServer creates a new MCP server and registers its tools.
func NewServer(cfg *config.AppConfig, selector Selector, estimators []estimation.Key, version string) (*Server, error) {
	s := &Server{
		cfg:        cfg,
		selector:   selector,
		estimators: estimators,
		newSimulation: func(seed int64) *simulation.Engine {
			if seed == 0 {
				return simulation.NewEngine()
			}
			return simulation.NewSeededEngine(seed)
		},
	}

	s.mcp = sdk.NewServer(&sdk.Implementation{
		Name:    "distfit-mcp",
		Version: version,
	}, &sdk.ServerOptions{
		Instructions: "Selects the best-fitting probability distribution (Normal, Log-Normal, Weibull, Exponential, Beta) " +
			"for a sample known only through its summary statistics, and simulates draws from it.",
	})

	if err := s.registerTools(); err != nil {
		return nil, err
	}
	return s, nil
}

// Serve runs the MCP session over Stdio until the client disconnects or ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	log.Info().Int("estimators", len(s.estimators)).Msg("MCP Server starting Stdio loop")
	return s.mcp.Run(ctx, &sdk.StdioTransport{})
}

// ResponseEnvelope is the uniform payload of every tool result.
type ResponseEnvelope struct {
	Data     any      `json:"data"`
	Warnings []string `json:"warnings,omitempty"`
	Visuals  []string `json:"visuals,omitempty"`
}

// WrapResponse builds an envelope, dropping empty visuals.
func WrapResponse(data any, warnings []string, visuals ...string) ResponseEnvelope {
	env := ResponseEnvelope{Data: data, Warnings: warnings}
	for _, v := range visuals {
		if v != "" {
			env.Visuals = append(env.Visuals, v)
		}
	}
	return env
}

func formatResult(data any) string {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode tool result")
		return err.Error()
	}
	return string(out)
}
