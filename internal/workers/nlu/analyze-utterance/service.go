package analyzeutterance

import (
	"context"
	stderrors "errors"
	"time"

	"luis-client/internal/common/errors"
	"luis-client/internal/common/logger"
	"luis-client/internal/common/metrics"
	"luis-client/internal/common/observability"
	"luis-client/pkg/luis"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Service struct {
	config   *Config
	analyzer Analyzer
	logger   logger.Logger
	obs      *observability.Observability
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		config:   config,
		analyzer: deps.Analyzer,
		logger:   log,
		obs:      deps.Observability,
	}
}

// Execute sends the utterance to LUIS and flattens the result into process variables.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	if s.analyzer == nil {
		return nil, errors.NewConfigurationError("no LUIS endpoint configured for " + TaskType)
	}

	callCtx := ctx
	if s.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.config.RequestTimeout)
		defer cancel()
	}

	callCtx, span := s.obs.StartSpan(callCtx, "analyze",
		attribute.String("task_type", TaskType),
		attribute.Int("utterance_length", len(input.Utterance)),
	)
	defer span.End()

	start := time.Now()
	result, err := s.analyzer.Analyze(callCtx, input.Utterance)
	outcome := classifyOutcome(err)
	metrics.AnalyzeRequests.WithLabelValues(outcome).Inc()
	metrics.AnalyzeDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	s.obs.RecordAnalyze(ctx, outcome)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.NewAnalyzeTimeoutError(err)
		}
		return nil, err
	}

	output := buildOutput(result)
	output.Context = input.Context

	span.SetAttributes(
		attribute.String("top_intent", output.TopIntent),
		attribute.Int("entity_count", output.EntityCount),
	)

	s.logger.Info("Utterance analyzed", map[string]interface{}{
		"analysisId":  output.AnalysisID,
		"topIntent":   output.TopIntent,
		"intentCount": len(output.Intents),
		"entityCount": output.EntityCount,
		"duration":    time.Since(start).String(),
	})

	return output, nil
}

func buildOutput(result *luis.Result) *Output {
	output := &Output{
		AnalysisID:  uuid.New().String(),
		Query:       result.Query,
		Intents:     make([]IntentView, 0, len(result.Intents)),
		Entities:    make([]EntityView, 0, len(result.Entities)),
		EntityCount: len(result.Entities),
	}

	if best := result.BestIntent(); best != nil {
		output.TopIntent = best.Name
		output.TopScore = best.Score
	}

	for _, intent := range result.Intents {
		output.Intents = append(output.Intents, IntentView{Name: intent.Name, Score: intent.Score})
	}

	for _, entity := range result.Entities {
		output.Entities = append(output.Entities, EntityView{
			Text:       entity.Text,
			Type:       entity.Type,
			Score:      entity.Score,
			StartIndex: entity.StartIndex,
			EndIndex:   entity.EndIndex,
			Resolution: entity.Resolution,
		})
	}

	return output
}

func classifyOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case luis.IsRequestError(err):
		return metrics.OutcomeRequest
	case luis.IsMalformedResponse(err):
		return metrics.OutcomeMalformed
	default:
		return metrics.OutcomeOther
	}
}
