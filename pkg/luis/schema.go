package luis

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// responseSchema is the wire contract of a LUIS query response. Members not listed
// here are allowed and ignored.
var responseSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"query"},
	"properties": map[string]interface{}{
		"query": map[string]interface{}{"type": []interface{}{"string", "null"}},
		"intents": map[string]interface{}{
			"type":  []interface{}{"array", "null"},
			"items": intentSchema,
		},
		"entities": map[string]interface{}{
			"type":  []interface{}{"array", "null"},
			"items": entitySchema,
		},
	},
}

var intentSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"intent", "score"},
	"properties": map[string]interface{}{
		"intent": map[string]interface{}{"type": "string"},
		"score":  map[string]interface{}{"type": []interface{}{"number", "null"}},
	},
}

var entitySchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"entity", "type"},
	"properties": map[string]interface{}{
		"entity":     map[string]interface{}{"type": "string"},
		"type":       map[string]interface{}{"type": "string"},
		"score":      map[string]interface{}{"type": []interface{}{"number", "null"}},
		"startIndex": map[string]interface{}{"type": []interface{}{"integer", "null"}},
		"endIndex":   map[string]interface{}{"type": []interface{}{"integer", "null"}},
		"resolution": map[string]interface{}{"type": []interface{}{"object", "null"}},
	},
}

var compiledResponseSchema *gojsonschema.Schema

func init() {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(responseSchema))
	if err != nil {
		panic(fmt.Sprintf("luis: invalid response schema: %v", err))
	}
	compiledResponseSchema = schema
}

// validateResponse checks obj against the wire contract and returns every violation.
func validateResponse(obj map[string]interface{}) error {
	result, err := compiledResponseSchema.Validate(gojsonschema.NewGoLoader(obj))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		msgs[i] = desc.String()
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
