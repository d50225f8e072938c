package mcp

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// ObservationInput is the wire form of a summary observation. Statistics are
// pointers so a missing value is not mistaken for 0.
type ObservationInput struct {
	Scenario string   `json:"scenario" jsonschema:"which statistics are supplied: s1 (min, median, max), s2 (q1, median, q3) or s3 (all five)"`
	N        int      `json:"n" jsonschema:"sample size (at least 10)"`
	Min      *float64 `json:"min,omitempty" jsonschema:"sample minimum, required for s1 and s3"`
	Q1       *float64 `json:"q1,omitempty" jsonschema:"first quartile, required for s2 and s3"`
	Median   *float64 `json:"median" jsonschema:"sample median"`
	Q3       *float64 `json:"q3,omitempty" jsonschema:"third quartile, required for s2 and s3"`
	Max      *float64 `json:"max,omitempty" jsonschema:"sample maximum, required for s1 and s3"`
}

// SimulateInput asks for draws from the best fit of an observation.
type SimulateInput struct {
	Observation ObservationInput `json:"observation" jsonschema:"the summary statistics to fit"`
	Trials      int              `json:"trials,omitempty" jsonschema:"number of Monte-Carlo draws (defaults to the server setting)"`
	Seed        int64            `json:"seed,omitempty" jsonschema:"random seed for reproducible draws (0 picks a fresh seed)"`
}

// ListEstimatorsInput takes no arguments.
type ListEstimatorsInput struct{}

func (s *Server) registerTools() error {
	selectSchema, err := observationSchema()
	if err != nil {
		return err
	}
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name: "select_best_distribution",
		Description: "Selects the best-fitting distribution for a sample described only by summary statistics. " +
			"Returns the family, estimated mean and SD, distribution parameters, and any heuristic warnings.",
		InputSchema: selectSchema,
	}, toolHandler(s.handleSelectBestDistribution))

	simulateSchema, err := jsonschema.For[SimulateInput](nil)
	if err != nil {
		return fmt.Errorf("simulate_best_fit schema: %w", err)
	}
	if obs, ok := simulateSchema.Properties["observation"]; ok {
		constrainObservation(obs)
	}
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "simulate_best_fit",
		Description: "Fits the observation, then draws from the selected distribution and reports the P10, P50, P85 and P95 outcomes.",
		InputSchema: simulateSchema,
	}, toolHandler(s.handleSimulateBestFit))

	listSchema, err := jsonschema.For[ListEstimatorsInput](nil)
	if err != nil {
		return fmt.Errorf("list_estimators schema: %w", err)
	}
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_estimators",
		Description: "Lists the loaded moment estimators with their scenario, family, target and feature arity.",
		InputSchema: listSchema,
	}, toolHandler(s.handleListEstimators))

	return nil
}

func observationSchema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[ObservationInput](nil)
	if err != nil {
		return nil, fmt.Errorf("observation schema: %w", err)
	}
	constrainObservation(schema)
	return schema, nil
}

// constrainObservation adds the constraints struct tags cannot express.
func constrainObservation(schema *jsonschema.Schema) {
	if p, ok := schema.Properties["scenario"]; ok {
		p.Enum = []any{"s1", "s2", "s3"}
	}
	if p, ok := schema.Properties["n"]; ok {
		minN := 10.0
		p.Minimum = &minN
	}
}

// toolHandler adapts a domain handler to the SDK. Domain errors become
// tool-level errors so the client sees the message instead of a protocol failure.
func toolHandler[In any](fn func(context.Context, In) (ResponseEnvelope, error)) sdk.ToolHandlerFor[In, any] {
	return func(ctx context.Context, req *sdk.CallToolRequest, in In) (*sdk.CallToolResult, any, error) {
		env, err := fn(ctx, in)
		if err != nil {
			name := ""
			if req != nil && req.Params != nil {
				name = req.Params.Name
			}
			log.Warn().Err(err).Str("tool", name).Msg("Tool call failed")
			return &sdk.CallToolResult{
				IsError: true,
				Content: []sdk.Content{&sdk.TextContent{Text: err.Error()}},
			}, nil, nil
		}
		return &sdk.CallToolResult{
			Content: []sdk.Content{&sdk.TextContent{Text: formatResult(env)}},
		}, nil, nil
	}
}
