package comms

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-hris/meridian/internal/platform/httpx"
)

// Repository is the data access surface for communications.
type Repository interface {
	RecipientReader
	SupervisorReader
	CreatePost(ctx context.Context, post Post) error
	GetPost(ctx context.Context, tenantID, id string) (Post, error)
	ListPosts(ctx context.Context, tenantID string, limit, offset int) ([]Post, error)
	UpdatePost(ctx context.Context, post Post) error
	DeletePost(ctx context.Context, tenantID, id string) error
	InsertRecipients(ctx context.Context, recipients []Recipient) error
	TeamMemberIDs(ctx context.Context, tenantID string, teamIDs []string) ([]string, error)
	Acknowledge(ctx context.Context, postID, userID string, at time.Time) error
	AckSummary(ctx context.Context, tenantID, postID string) (AckSummary, error)
	ListRequiredAcks(ctx context.Context, tenantID, userID string, pendingOnly bool) ([]AckItem, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns a Postgres-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) CreatePost(ctx context.Context, post Post) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO communication_posts (id, tenant_id, author_id, title, body, require_ack, team_ids, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		post.ID, post.TenantID, post.AuthorID, post.Title, post.Body,
		post.RequireAck, post.TeamIDs, post.CreatedAt, post.UpdatedAt)
	return err
}

func (r *repository) GetPost(ctx context.Context, tenantID, id string) (Post, error) {
	var post Post
	err := r.db.QueryRow(ctx,
		`SELECT id, tenant_id, author_id, title, body, require_ack, team_ids, created_at, updated_at
		 FROM communication_posts WHERE tenant_id = $1 AND id = $2`,
		tenantID, id).Scan(&post.ID, &post.TenantID, &post.AuthorID, &post.Title,
		&post.Body, &post.RequireAck, &post.TeamIDs, &post.CreatedAt, &post.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Post{}, httpx.ErrNotFound
	}
	return post, err
}

func (r *repository) ListPosts(ctx context.Context, tenantID string, limit, offset int) ([]Post, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, tenant_id, author_id, title, body, require_ack, team_ids, created_at, updated_at
		 FROM communication_posts WHERE tenant_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var post Post
		if err := rows.Scan(&post.ID, &post.TenantID, &post.AuthorID, &post.Title,
			&post.Body, &post.RequireAck, &post.TeamIDs, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *repository) UpdatePost(ctx context.Context, post Post) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE communication_posts SET title = $1, body = $2, updated_at = $3
		 WHERE tenant_id = $4 AND id = $5`,
		post.Title, post.Body, post.UpdatedAt, post.TenantID, post.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) DeletePost(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM communication_posts WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) InsertRecipients(ctx context.Context, recipients []Recipient) error {
	for _, recipient := range recipients {
		if _, err := r.db.Exec(ctx,
			`INSERT INTO communication_post_recipients (post_id, user_id, tenant_id, acknowledged)
			 VALUES ($1, $2, $3, FALSE)
			 ON CONFLICT (post_id, user_id) DO NOTHING`,
			recipient.PostID, recipient.UserID, recipient.TenantID); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) IsSupervisorOf(ctx context.Context, tenantID, userID string, teamIDs []string) (bool, error) {
	var supervises bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM team_members
		   WHERE tenant_id = $1 AND user_id = $2 AND is_supervisor AND team_id = ANY($3))`,
		tenantID, userID, teamIDs).Scan(&supervises)
	return supervises, err
}

func (r *repository) TeamMemberIDs(ctx context.Context, tenantID string, teamIDs []string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT user_id FROM team_members
		 WHERE tenant_id = $1 AND team_id = ANY($2)`,
		tenantID, teamIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *repository) RecipientTenant(ctx context.Context, postID, userID string) (string, error) {
	var tenantID string
	err := r.db.QueryRow(ctx,
		`SELECT tenant_id FROM communication_post_recipients WHERE post_id = $1 AND user_id = $2`,
		postID, userID).Scan(&tenantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", httpx.ErrNotFound
	}
	return tenantID, err
}

func (r *repository) Acknowledge(ctx context.Context, postID, userID string, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE communication_post_recipients
		 SET acknowledged = TRUE, acknowledged_at = COALESCE(acknowledged_at, $1)
		 WHERE post_id = $2 AND user_id = $3`,
		at, postID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) AckSummary(ctx context.Context, tenantID, postID string) (AckSummary, error) {
	summary := AckSummary{PostID: postID}
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE acknowledged)
		 FROM communication_post_recipients WHERE tenant_id = $1 AND post_id = $2`,
		tenantID, postID).Scan(&summary.Required, &summary.Acknowledged)
	return summary, err
}

func (r *repository) ListRequiredAcks(ctx context.Context, tenantID, userID string, pendingOnly bool) ([]AckItem, error) {
	query := `SELECT p.id, p.title, p.require_ack, r.acknowledged, r.acknowledged_at, p.created_at
	          FROM communication_post_recipients r
	          JOIN communication_posts p ON p.id = r.post_id
	          WHERE r.tenant_id = $1 AND r.user_id = $2 AND p.require_ack`
	if pendingOnly {
		query += ` AND NOT r.acknowledged`
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, query, tenantID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []AckItem
	for rows.Next() {
		var item AckItem
		if err := rows.Scan(&item.PostID, &item.Title, &item.RequireAck,
			&item.Acknowledged, &item.AcknowledgedAt, &item.PostedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
