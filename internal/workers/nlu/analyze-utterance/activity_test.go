package analyzeutterance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivity(t *testing.T) {
	activity := Activity(nil)

	assert.Equal(t, TaskType, activity.TaskType)
	assert.Equal(t, WorkerName, activity.ID)
	assert.Equal(t, "30s", activity.Timeout)
	assert.Equal(t, 3, activity.Retries)
	assert.Contains(t, activity.ErrorCodes, "LUIS_REQUEST_FAILED")
	assert.Contains(t, activity.ErrorCodes, "LUIS_TIMEOUT")

	require.NotNil(t, activity.InputSchema)
	assert.Equal(t, []interface{}{"utterance"}, activity.InputSchema["required"])
	props, ok := activity.InputSchema["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, props, "utterance")
	assert.Contains(t, props, "context")
}
