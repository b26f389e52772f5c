package luis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var obj map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &obj))
	return obj
}

func TestIntentFromJSON(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantName  string
		wantScore *float64
		wantErr   bool
	}{
		{name: "name and score", raw: `{"intent": "Greeting", "score": 0.75}`, wantName: "Greeting", wantScore: floatPtr(0.75)},
		{name: "null score", raw: `{"intent": "None", "score": null}`, wantName: "None"},
		{name: "extra members ignored", raw: `{"intent": "Greeting", "score": 1, "actions": []}`, wantName: "Greeting", wantScore: floatPtr(1)},
		{name: "missing score", raw: `{"intent": "Greeting"}`, wantErr: true},
		{name: "missing intent", raw: `{"score": 0.5}`, wantErr: true},
		{name: "non-string intent", raw: `{"intent": 3, "score": 0.5}`, wantErr: true},
		{name: "non-numeric score", raw: `{"intent": "Greeting", "score": "high"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, err := IntentFromJSON(decode(t, tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsMalformedResponse(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, intent.Name)
			assert.Equal(t, tt.wantScore, intent.Score)
		})
	}
}

func TestEntityFromJSON(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		e, err := EntityFromJSON(decode(t, `{
			"entity": "paris", "type": "Location", "score": 0.9,
			"startIndex": 3, "endIndex": 7, "resolution": {"values": ["Paris"]}
		}`))
		require.NoError(t, err)
		assert.Equal(t, "paris", e.Text)
		assert.Equal(t, "Location", e.Type)
		assert.Equal(t, floatPtr(0.9), e.Score)
		assert.Equal(t, intPtr(3), e.StartIndex)
		assert.Equal(t, intPtr(7), e.EndIndex)
		assert.Equal(t, map[string]interface{}{"values": []interface{}{"Paris"}}, e.Resolution)
	})

	t.Run("only required fields", func(t *testing.T) {
		e, err := EntityFromJSON(decode(t, `{"entity": "x", "type": "T"}`))
		require.NoError(t, err)
		assert.Nil(t, e.Score)
		assert.Nil(t, e.StartIndex)
		assert.Nil(t, e.EndIndex)
		assert.Nil(t, e.Resolution)
	})

	t.Run("explicit nulls are absent", func(t *testing.T) {
		e, err := EntityFromJSON(decode(t, `{"entity": "x", "type": "T", "score": null, "startIndex": null, "resolution": null}`))
		require.NoError(t, err)
		assert.Nil(t, e.Score)
		assert.Nil(t, e.StartIndex)
		assert.Nil(t, e.Resolution)
	})

	t.Run("zero start index is present", func(t *testing.T) {
		e, err := EntityFromJSON(decode(t, `{"entity": "x", "type": "T", "startIndex": 0}`))
		require.NoError(t, err)
		require.NotNil(t, e.StartIndex)
		assert.Equal(t, 0, *e.StartIndex)
	})

	errCases := map[string]string{
		"missing entity":         `{"type": "T"}`,
		"missing type":           `{"entity": "x"}`,
		"fractional startIndex":  `{"entity": "x", "type": "T", "startIndex": 1.5}`,
		"string endIndex":        `{"entity": "x", "type": "T", "endIndex": "4"}`,
		"negative startIndex":    `{"entity": "x", "type": "T", "startIndex": -1}`,
		"negative endIndex":      `{"entity": "x", "type": "T", "endIndex": -3}`,
		"overflowing startIndex": `{"entity": "x", "type": "T", "startIndex": 1e20}`,
		"overflowing endIndex":   `{"entity": "x", "type": "T", "endIndex": 9223372036854775808}`,
		"array resolution":       `{"entity": "x", "type": "T", "resolution": []}`,
	}
	for name, raw := range errCases {
		t.Run(name, func(t *testing.T) {
			_, err := EntityFromJSON(decode(t, raw))
			require.Error(t, err)
			assert.True(t, IsMalformedResponse(err))
		})
	}
}

func TestResultFromJSON_EntityOrder(t *testing.T) {
	res, err := ResultFromJSON(decode(t, `{
		"query": "q",
		"entities": [
			{"entity": "five", "type": "T", "startIndex": 5},
			{"entity": "one", "type": "T", "startIndex": 1},
			{"entity": "none", "type": "T"}
		]
	}`))
	require.NoError(t, err)

	got := make([]string, len(res.Entities))
	for i, e := range res.Entities {
		got[i] = e.Text
	}
	assert.Equal(t, []string{"none", "one", "five"}, got)
}

func TestResultFromJSON_StableEntityOrder(t *testing.T) {
	res, err := ResultFromJSON(decode(t, `{
		"query": "q",
		"entities": [
			{"entity": "b", "type": "T", "startIndex": 2},
			{"entity": "x", "type": "T"},
			{"entity": "a", "type": "T", "startIndex": 2},
			{"entity": "zero", "type": "T", "startIndex": 0},
			{"entity": "y", "type": "T"}
		]
	}`))
	require.NoError(t, err)

	got := make([]string, len(res.Entities))
	for i, e := range res.Entities {
		got[i] = e.Text
	}
	assert.Equal(t, []string{"x", "y", "zero", "b", "a"}, got)
}

func TestResultFromJSON_OutOfRangeIndexRejected(t *testing.T) {
	for _, raw := range []string{
		`{"query": "", "entities": [
			{"entity": "a", "type": "T", "startIndex": 0},
			{"entity": "b", "type": "T"},
			{"entity": "c", "type": "T", "startIndex": 1e20}
		]}`,
		`{"query": "", "entities": [
			{"entity": "b", "type": "T"},
			{"entity": "c", "type": "T", "startIndex": -2}
		]}`,
	} {
		res, err := ResultFromJSON(decode(t, raw))
		require.Error(t, err)
		assert.Nil(t, res)
		assert.True(t, IsMalformedResponse(err))
	}
}

func TestResultFromJSON_IntentOrderPreserved(t *testing.T) {
	res, err := ResultFromJSON(decode(t, `{
		"query": "q",
		"intents": [
			{"intent": "Low", "score": 0.1},
			{"intent": "High", "score": 0.9},
			{"intent": "Unscored", "score": null}
		]
	}`))
	require.NoError(t, err)

	require.Len(t, res.Intents, 3)
	assert.Equal(t, "Low", res.Intents[0].Name)
	assert.Equal(t, "High", res.Intents[1].Name)
	assert.Equal(t, "Unscored", res.Intents[2].Name)
	assert.Equal(t, "Low", res.BestIntent().Name)
}

func TestResultFromJSON_MissingListsDefaultEmpty(t *testing.T) {
	res, err := ResultFromJSON(decode(t, `{"query": "hello", "topScoringIntent": {"intent": "x"}}`))
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Query)
	assert.NotNil(t, res.Intents)
	assert.NotNil(t, res.Entities)
	assert.Empty(t, res.Intents)
	assert.Empty(t, res.Entities)
	assert.Nil(t, res.BestIntent())

	res, err = ResultFromJSON(decode(t, `{"query": null, "intents": null, "entities": null}`))
	require.NoError(t, err)
	assert.Equal(t, "", res.Query)
	assert.Empty(t, res.Intents)
	assert.Empty(t, res.Entities)
}

func TestResultFromJSON_Malformed(t *testing.T) {
	cases := map[string]string{
		"missing query":        `{"intents": []}`,
		"numeric query":        `{"query": 7}`,
		"intents not array":    `{"query": "q", "intents": {}}`,
		"intent missing score": `{"query": "q", "intents": [{"intent": "A"}]}`,
		"entity missing type":  `{"query": "q", "entities": [{"entity": "A"}]}`,
		"entity not object":    `{"query": "q", "entities": ["A"]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := ResultFromJSON(decode(t, raw))
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, IsMalformedResponse(err))
		})
	}
}

func TestResultFromJSON_ResolutionVerbatim(t *testing.T) {
	res, err := ResultFromJSON(decode(t, `{
		"query": "q",
		"entities": [{
			"entity": "3 pm", "type": "builtin.datetimeV2.time",
			"resolution": {"values": [{"timex": "T15", "type": "time", "value": "15:00:00"}], "extra": 2}
		}]
	}`))
	require.NoError(t, err)

	want := map[string]interface{}{
		"values": []interface{}{
			map[string]interface{}{"timex": "T15", "type": "time", "value": "15:00:00"},
		},
		"extra": float64(2),
	}
	assert.Equal(t, want, res.Entities[0].Resolution)
}

func TestResultFromJSON_NumbersFromUseNumberDecoder(t *testing.T) {
	obj := map[string]interface{}{
		"query": "q",
		"intents": []interface{}{
			map[string]interface{}{"intent": "A", "score": json.Number("0.5")},
		},
		"entities": []interface{}{
			map[string]interface{}{"entity": "e", "type": "T", "startIndex": json.Number("4")},
		},
	}
	res, err := ResultFromJSON(obj)
	require.NoError(t, err)
	assert.Equal(t, floatPtr(0.5), res.Intents[0].Score)
	assert.Equal(t, intPtr(4), res.Entities[0].StartIndex)
}

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }
