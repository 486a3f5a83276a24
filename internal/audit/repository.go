package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository returns a Store and Repository backed by audit_events.
func NewPGRepository(pool *pgxpool.Pool) interface {
	Store
	Repository
} {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) Insert(ctx context.Context, event Event) error {
	changes, err := json.Marshal(event.Changes)
	if err != nil {
		return fmt.Errorf("audit: marshal changes: %w", err)
	}
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return fmt.Errorf("audit: marshal metadata: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO audit_events (id, tenant_id, actor_id, entity, entity_id, action, changes, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		event.ID, event.TenantID, event.ActorID, event.Entity, event.EntityID,
		event.Action, changes, metadata, event.CreatedAt)
	return err
}

func (r *pgRepository) List(ctx context.Context, tenantID string, filters Filters) ([]Event, error) {
	query := `SELECT id, tenant_id, actor_id, entity, entity_id, action, changes, metadata, created_at
	          FROM audit_events WHERE tenant_id = $1`
	args := []any{tenantID}
	argCount := 1

	if filters.Entity != "" {
		argCount++
		query += ` AND entity = $` + strconv.Itoa(argCount)
		args = append(args, filters.Entity)
	}
	if filters.EntityID != "" {
		argCount++
		query += ` AND entity_id = $` + strconv.Itoa(argCount)
		args = append(args, filters.EntityID)
	}
	if filters.Action != "" {
		argCount++
		query += ` AND action = $` + strconv.Itoa(argCount)
		args = append(args, filters.Action)
	}
	if !filters.From.IsZero() {
		argCount++
		query += ` AND created_at >= $` + strconv.Itoa(argCount)
		args = append(args, filters.From)
	}
	if !filters.To.IsZero() {
		argCount++
		query += ` AND created_at <= $` + strconv.Itoa(argCount)
		args = append(args, filters.To)
	}
	if !filters.Cursor.IsZero() {
		argCount++
		query += ` AND created_at < $` + strconv.Itoa(argCount)
		args = append(args, filters.Cursor)
	}

	argCount++
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(argCount)
	args = append(args, filters.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			event    Event
			changes  []byte
			metadata []byte
		)
		if err := rows.Scan(&event.ID, &event.TenantID, &event.ActorID, &event.Entity,
			&event.EntityID, &event.Action, &changes, &metadata, &event.CreatedAt); err != nil {
			return nil, err
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &event.Changes); err != nil {
				return nil, fmt.Errorf("audit: unmarshal changes: %w", err)
			}
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
				return nil, fmt.Errorf("audit: unmarshal metadata: %w", err)
			}
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
