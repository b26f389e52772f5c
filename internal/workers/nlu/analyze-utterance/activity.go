package analyzeutterance

import (
	"encoding/json"

	"luis-client/internal/common/errors"
	"luis-client/pkg/registry"
)

// Activity describes this worker for the activity registry.
func Activity(cfg *Config) registry.Activity {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var inputSchema map[string]interface{}
	raw, _ := json.Marshal(GetInputSchema())
	_ = json.Unmarshal(raw, &inputSchema)

	codes := []errors.ErrorCode{
		errors.ErrCodeConfiguration,
		errors.ErrCodeRequestFailed,
		errors.ErrCodeMalformedResponse,
		errors.ErrCodeInputParsingFailed,
		errors.ErrCodeValidationFailed,
		errors.ErrCodeAnalyzeTimeout,
	}
	errorCodes := make([]string, 0, len(codes))
	retries := 0
	for _, code := range codes {
		errorCodes = append(errorCodes, errors.BPMNErrorMapping[code])
		if r := errors.GetRetryCount(code); r > retries {
			retries = r
		}
	}

	return registry.Activity{
		ID:          WorkerName,
		DisplayName: "Analyze Utterance",
		Description: "Sends an utterance to a LUIS app and returns ranked intents and position-ordered entities",
		Category:    "nlu",
		Version:     "1.0.0",
		TaskType:    TaskType,
		InputSchema: inputSchema,
		OutputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"analysisId":  map[string]interface{}{"type": "string"},
				"query":       map[string]interface{}{"type": "string"},
				"topIntent":   map[string]interface{}{"type": "string"},
				"topScore":    map[string]interface{}{"type": []string{"number", "null"}},
				"intents":     map[string]interface{}{"type": "array"},
				"entities":    map[string]interface{}{"type": "array"},
				"entityCount": map[string]interface{}{"type": "integer"},
				"context":     map[string]interface{}{"type": "object"},
			},
		},
		ErrorCodes: errorCodes,
		Timeout:    cfg.Timeout.String(),
		Retries:    retries,
		Tags:       []string{"luis", "intent", "entity"},
	}
}
