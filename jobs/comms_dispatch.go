package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CommsDispatchJob notifies the recipients of a communication post. Delivery
// is a log line for now; the mail transport slots in behind notifyRecipient.
type CommsDispatchJob struct {
	Pool   *pgxpool.Pool
	Logger *slog.Logger
	clock  func() time.Time
}

// NewCommsDispatchJob wires dependencies for the dispatch handler.
func NewCommsDispatchJob(pool *pgxpool.Pool, logger *slog.Logger) *CommsDispatchJob {
	return &CommsDispatchJob{
		Pool:   pool,
		Logger: logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes comms dispatch tasks.
func (j *CommsDispatchJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Pool == nil {
		return errors.New("comms dispatch: handler not configured")
	}
	var payload CommsDispatchPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.TenantID == "" || payload.PostID == "" {
		return asynq.SkipRetry
	}

	logger := j.logger().With(
		slog.String("tenant_id", payload.TenantID),
		slog.String("post_id", payload.PostID),
	)
	started := j.now()
	logger.Info("starting communication dispatch")

	recipients, err := j.fetchRecipients(ctx, payload.TenantID, payload.PostID)
	if err != nil {
		logger.Error("load recipients", slog.Any("error", err))
		return err
	}
	for _, userID := range recipients {
		j.notifyRecipient(logger, userID)
	}

	logger.Info("completed communication dispatch",
		slog.Int("recipients", len(recipients)),
		slog.Duration("duration", time.Since(started)))
	return nil
}

func (j *CommsDispatchJob) fetchRecipients(ctx context.Context, tenantID, postID string) ([]string, error) {
	rows, err := j.Pool.Query(ctx,
		`SELECT user_id FROM communication_post_recipients
		 WHERE tenant_id = $1 AND post_id = $2 AND NOT acknowledged
		 ORDER BY user_id`, tenantID, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipients []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		recipients = append(recipients, userID)
	}
	return recipients, rows.Err()
}

func (j *CommsDispatchJob) notifyRecipient(logger *slog.Logger, userID string) {
	logger.Info("notifying recipient", slog.String("user_id", userID))
}

func (j *CommsDispatchJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskCommsDispatch))
	}
	return slog.Default().With(slog.String("job", TaskCommsDispatch))
}

func (j *CommsDispatchJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
