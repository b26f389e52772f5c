// internal/common/camunda/worker.go
package camunda

import (
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// WorkerOptions describes one job worker subscription.
type WorkerOptions struct {
	TaskType       string
	MaxJobsActive  int
	Timeout        time.Duration
	FetchVariables []string
}

// OpenWorker opens a job worker for opts.TaskType. The worker is named after the task type.
func OpenWorker(client zbc.Client, opts WorkerOptions, handler worker.JobHandler) worker.JobWorker {
	step := client.NewJobWorker().
		JobType(opts.TaskType).
		Handler(handler).
		MaxJobsActive(opts.MaxJobsActive).
		Timeout(opts.Timeout).
		Name(fmt.Sprintf("%s-worker", opts.TaskType))

	if len(opts.FetchVariables) > 0 {
		step = step.FetchVariables(opts.FetchVariables...)
	}

	return step.Open()
}
