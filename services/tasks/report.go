package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeReportRefresh = "report:refresh"

// refreshWindow collapses repeated refreshes for the same member.
const refreshWindow = 30 * time.Second

type ReportRefreshPayload struct {
	MemberID string `json:"memberId"`
}

func NewReportRefreshTask(memberID string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ReportRefreshPayload{MemberID: memberID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReportRefresh, b)
	opts := []asynq.Option{
		asynq.Unique(refreshWindow),
		asynq.MaxRetry(3),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

func ParseReportRefreshPayload(task *asynq.Task) (ReportRefreshPayload, error) {
	var p ReportRefreshPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid report refresh payload: %w", err)
	}
	if p.MemberID == "" {
		return p, errors.New("invalid report refresh payload: missing memberId")
	}
	return p, nil
}

// Enqueuer is the subset of *asynq.Client used to schedule tasks.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// RefreshQueue schedules report refresh tasks on asynq.
type RefreshQueue struct {
	client Enqueuer
}

func NewRefreshQueue(client Enqueuer) *RefreshQueue {
	return &RefreshQueue{client: client}
}

func (q *RefreshQueue) EnqueueRefresh(ctx context.Context, memberID string) error {
	task, opts, err := NewReportRefreshTask(memberID)
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, task, opts...); err != nil && !errors.Is(err, asynq.ErrDuplicateTask) {
		return err
	}
	return nil
}
