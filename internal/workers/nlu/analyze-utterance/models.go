package analyzeutterance

import (
	"context"

	"luis-client/internal/common/logger"
	"luis-client/internal/common/observability"
	"luis-client/pkg/luis"
)

type Input struct {
	Utterance string                 `json:"utterance"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

type Output struct {
	AnalysisID  string                 `json:"analysisId"`
	Query       string                 `json:"query"`
	TopIntent   string                 `json:"topIntent"`
	TopScore    *float64               `json:"topScore"`
	Intents     []IntentView           `json:"intents"`
	Entities    []EntityView           `json:"entities"`
	EntityCount int                    `json:"entityCount"`
	Context     map[string]interface{} `json:"context,omitempty"`
}

// IntentView and EntityView are the process-variable shapes of luis.Intent and luis.Entity.
type IntentView struct {
	Name  string   `json:"name"`
	Score *float64 `json:"score"`
}

type EntityView struct {
	Text       string                 `json:"text"`
	Type       string                 `json:"type"`
	Score      *float64               `json:"score,omitempty"`
	StartIndex *int                   `json:"startIndex,omitempty"`
	EndIndex   *int                   `json:"endIndex,omitempty"`
	Resolution map[string]interface{} `json:"resolution,omitempty"`
}

// Analyzer is satisfied by *luis.Client.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*luis.Result, error)
}

type ServiceDependencies struct {
	Analyzer      Analyzer
	Logger        logger.Logger
	Observability *observability.Observability
}
