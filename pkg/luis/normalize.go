package luis

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"luis-client/internal/common/errors"
	"luis-client/internal/common/logger"
)

// IntentFromJSON converts one element of the response "intents" array. Both
// "intent" and "score" must be present; a null score is kept as nil.
func IntentFromJSON(obj map[string]interface{}) (Intent, error) {
	rawName, ok := obj["intent"]
	if !ok {
		return Intent{}, missingField("intent", "intent")
	}
	name, ok := rawName.(string)
	if !ok {
		return Intent{}, wrongType("intent", "intent", "string", rawName)
	}

	rawScore, ok := obj["score"]
	if !ok {
		return Intent{}, missingField("intent", "score")
	}
	score, err := optionalFloat("intent", "score", rawScore)
	if err != nil {
		return Intent{}, err
	}

	return Intent{Name: name, Score: score}, nil
}

// EntityFromJSON converts one element of the response "entities" array. "entity"
// and "type" are required; everything else defaults to nil.
func EntityFromJSON(obj map[string]interface{}) (Entity, error) {
	text, err := requiredString("entity", "entity", obj)
	if err != nil {
		return Entity{}, err
	}
	typ, err := requiredString("entity", "type", obj)
	if err != nil {
		return Entity{}, err
	}

	score, err := optionalFloat("entity", "score", obj["score"])
	if err != nil {
		return Entity{}, err
	}
	start, err := optionalIndex("entity", "startIndex", obj["startIndex"])
	if err != nil {
		return Entity{}, err
	}
	end, err := optionalIndex("entity", "endIndex", obj["endIndex"])
	if err != nil {
		return Entity{}, err
	}

	var resolution map[string]interface{}
	if raw := obj["resolution"]; raw != nil {
		m, ok := raw.(map[string]interface{})
		if !ok {
			return Entity{}, wrongType("entity", "resolution", "object", raw)
		}
		resolution = m
	}

	return Entity{
		Text:       text,
		Type:       typ,
		Score:      score,
		StartIndex: start,
		EndIndex:   end,
		Resolution: resolution,
	}, nil
}

// ResultFromJSON converts a decoded response body into a Result.
func ResultFromJSON(obj map[string]interface{}) (*Result, error) {
	return ResultFromJSONWithLogger(obj, logger.NewNoOpLogger())
}

// ResultFromJSONWithLogger is ResultFromJSON with the raw response logged at debug level.
func ResultFromJSONWithLogger(obj map[string]interface{}, log logger.Logger) (*Result, error) {
	log.Debug("Got response from LUIS", map[string]interface{}{"response": obj})

	if err := validateResponse(obj); err != nil {
		return nil, errors.NewMalformedResponseError(err.Error(), err)
	}

	// Presence of "query" is guaranteed by the schema; null becomes "".
	query, _ := obj["query"].(string)

	rawIntents, err := optionalObjects("intents", obj["intents"])
	if err != nil {
		return nil, err
	}
	intents := make([]Intent, 0, len(rawIntents))
	for _, raw := range rawIntents {
		intent, err := IntentFromJSON(raw)
		if err != nil {
			return nil, err
		}
		intents = append(intents, intent)
	}

	rawEntities, err := optionalObjects("entities", obj["entities"])
	if err != nil {
		return nil, err
	}
	entities := make([]Entity, 0, len(rawEntities))
	for _, raw := range rawEntities {
		entity, err := EntityFromJSON(raw)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	sortEntities(entities)

	return &Result{
		Query:    query,
		Intents:  intents,
		Entities: entities,
	}, nil
}

// sortEntities orders by start index ascending; entities without one sort first.
func sortEntities(entities []Entity) {
	sort.SliceStable(entities, func(i, j int) bool {
		return startKey(entities[i]) < startKey(entities[j])
	})
}

func startKey(e Entity) int {
	if e.StartIndex == nil {
		return -1
	}
	return *e.StartIndex
}

func optionalObjects(field string, raw interface{}) ([]map[string]interface{}, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, wrongType("response", field, "array", raw)
	}
	out := make([]map[string]interface{}, len(items))
	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, wrongType("response", fmt.Sprintf("%s[%d]", field, i), "object", item)
		}
		out[i] = m
	}
	return out, nil
}

func requiredString(kind, field string, obj map[string]interface{}) (string, error) {
	raw, ok := obj[field]
	if !ok {
		return "", missingField(kind, field)
	}
	s, ok := raw.(string)
	if !ok {
		return "", wrongType(kind, field, "string", raw)
	}
	return s, nil
}

func optionalFloat(kind, field string, raw interface{}) (*float64, error) {
	if raw == nil {
		return nil, nil
	}
	f, ok := toFloat(raw)
	if !ok {
		return nil, wrongType(kind, field, "number", raw)
	}
	return &f, nil
}

// optionalIndex reads a character offset: a non-negative integer that fits in int.
func optionalIndex(kind, field string, raw interface{}) (*int, error) {
	if raw == nil {
		return nil, nil
	}
	f, ok := toFloat(raw)
	if !ok || f != math.Trunc(f) || f >= float64(math.MaxInt) {
		return nil, wrongType(kind, field, "integer", raw)
	}
	if f < 0 {
		return nil, errors.NewMalformedResponseError(fmt.Sprintf("%s: field %q must not be negative, got %v", kind, field, raw), nil)
	}
	i := int(f)
	return &i, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func missingField(kind, field string) error {
	return errors.NewMalformedResponseError(fmt.Sprintf("%s: missing required field %q", kind, field), nil)
}

func wrongType(kind, field, want string, got interface{}) error {
	return errors.NewMalformedResponseError(fmt.Sprintf("%s: field %q must be %s, got %T", kind, field, want, got), nil)
}
