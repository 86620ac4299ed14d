package cron

import (
	"context"
	"fmt"
	"time"

	"gymflow/config"
	"gymflow/services/tasks"
	"gymflow/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Refresher recomputes a member's cached report.
type Refresher interface {
	Refresh(ctx context.Context, memberID string) error
}

// QueueRedisOpt returns the asynq connection for the task queue database.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitReportWorker starts the report refresh worker in background. The
// returned server must be shut down by the caller.
func InitReportWorker(refresher Refresher) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReportRefresh, handleReportRefresh(refresher, logger))

	go func() {
		logger.Info("starting report worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("report worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("report worker gave up; reports will refresh on read only")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

func handleReportRefresh(refresher Refresher, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseReportRefreshPayload(task)
		if err != nil {
			logger.Warn("dropping report refresh task", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		if err := refresher.Refresh(ctx, p.MemberID); err != nil {
			logger.Error("report refresh failed", zap.String("memberId", p.MemberID), zap.Error(err))
			return err
		}
		logger.Debug("report refreshed", zap.String("memberId", p.MemberID))
		return nil
	}
}
