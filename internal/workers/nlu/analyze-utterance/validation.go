package analyzeutterance

import "luis-client/internal/common/validation"

// MaxUtteranceLength is the longest query a LUIS endpoint accepts.
const MaxUtteranceLength = 500

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"utterance"},
		Properties: map[string]validation.Property{
			"utterance": {
				Type:        "string",
				Description: "Text to send to the LUIS app",
				MinLength:   validation.IntPtr(1),
				MaxLength:   validation.IntPtr(MaxUtteranceLength),
			},
			"context": {
				Type:        "object",
				Description: "Opaque caller context echoed into the output",
				Nullable:    true,
			},
		},
		// Jobs carry every process variable unless fetch variables are narrowed.
		AdditionalProperties: true,
	}
}
