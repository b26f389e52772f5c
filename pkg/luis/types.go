package luis

import (
	"fmt"
	"strings"
)

// Intent is a candidate action recognized by LUIS. Score is nil when the service
// did not supply one.
type Intent struct {
	Name  string   `json:"intent"`
	Score *float64 `json:"score"`
}

func (i Intent) String() string {
	return fmt.Sprintf("<Intent name=%q score=%s>", i.Name, formatFloat(i.Score))
}

// Entity is a labeled span of the query. Optional fields are nil when absent;
// Resolution is kept exactly as the service sent it and shares the decoded body's
// map, so callers must treat it as read-only.
type Entity struct {
	Text       string                 `json:"entity"`
	Type       string                 `json:"type"`
	Score      *float64               `json:"score,omitempty"`
	StartIndex *int                   `json:"startIndex,omitempty"`
	EndIndex   *int                   `json:"endIndex,omitempty"`
	Resolution map[string]interface{} `json:"resolution,omitempty"`
}

func (e Entity) String() string {
	resolution := "nil"
	if e.Resolution != nil {
		resolution = fmt.Sprintf("%v", e.Resolution)
	}
	return fmt.Sprintf("<Entity text=%q type=%q score=%s start_index=%s end_index=%s resolution=%s>",
		e.Text, e.Type, formatFloat(e.Score), formatInt(e.StartIndex), formatInt(e.EndIndex), resolution)
}

// Result is the parsed response for one query. Intents keep the service's ranking;
// entities are ordered by start index with unpositioned entities first.
type Result struct {
	Query    string   `json:"query"`
	Intents  []Intent `json:"intents"`
	Entities []Entity `json:"entities"`
}

// BestIntent returns the first intent, or nil when there is none. The service lists
// its top interpretation first, so this never looks at scores. The returned value is
// a copy; changing it does not affect r.Intents.
func (r *Result) BestIntent() *Intent {
	if r == nil || len(r.Intents) == 0 {
		return nil
	}
	best := r.Intents[0]
	if best.Score != nil {
		score := *best.Score
		best.Score = &score
	}
	return &best
}

func (r *Result) String() string {
	if r == nil {
		return "<Result nil>"
	}
	intents := make([]string, len(r.Intents))
	for i, in := range r.Intents {
		intents[i] = in.String()
	}
	entities := make([]string, len(r.Entities))
	for i, e := range r.Entities {
		entities[i] = e.String()
	}
	return fmt.Sprintf("<Result query=%q intents=[%s] entities=[%s]>",
		r.Query, strings.Join(intents, " "), strings.Join(entities, " "))
}

func formatFloat(f *float64) string {
	if f == nil {
		return "nil"
	}
	return fmt.Sprintf("%g", *f)
}

func formatInt(i *int) string {
	if i == nil {
		return "nil"
	}
	return fmt.Sprintf("%d", *i)
}
