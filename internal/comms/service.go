package comms

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-hris/meridian/internal/audit"
	"github.com/meridian-hris/meridian/internal/authz"
	"github.com/meridian-hris/meridian/internal/platform/httpx"
	"github.com/meridian-hris/meridian/internal/shared"
)

// Posts may only be edited by their author inside this window; admin-tier
// role keys bypass it.
const editWindow = 15 * time.Minute

const maxPageSize = 50

// Notifier dispatches recipient notifications out of band.
type Notifier interface {
	EnqueueDispatch(ctx context.Context, postID string) error
}

// Service coordinates communication posts and acknowledgements.
type Service struct {
	repo     Repository
	notifier Notifier
	recorder *audit.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs the communications service. notifier may be nil.
func NewService(repo Repository, notifier Notifier, recorder *audit.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, recorder: recorder, logger: logger, now: time.Now}
}

func (s *Service) scope(ctx context.Context) (*shared.Scope, error) {
	sc := shared.ScopeFromContext(ctx)
	if sc == nil || sc.TenantID == "" {
		return nil, fmt.Errorf("%w: tenant context missing", httpx.ErrUnauthorized)
	}
	if sc.ActorID == "" || sc.ActorID == "anonymous" {
		return nil, fmt.Errorf("%w: user context missing", httpx.ErrUnauthorized)
	}
	return sc, nil
}

func (s *Service) isAdminTier(sc *shared.Scope) bool {
	for _, key := range authz.ScopeRoleKeys(sc) {
		if key == authz.KeySystemOwner || key == authz.KeyHRBusinessPartner {
			return true
		}
	}
	return false
}

// CreatePost persists a post, materializes its recipients from the target
// teams and enqueues notification dispatch.
func (s *Service) CreatePost(ctx context.Context, req CreatePostRequest) (Post, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return Post{}, err
	}

	now := s.now().UTC()
	post := Post{
		ID:         uuid.NewString(),
		TenantID:   sc.TenantID,
		AuthorID:   sc.ActorID,
		Title:      req.Title,
		Body:       req.Body,
		RequireAck: req.RequireAck,
		TeamIDs:    req.TeamIDs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return Post{}, err
	}

	memberIDs, err := s.repo.TeamMemberIDs(ctx, sc.TenantID, req.TeamIDs)
	if err != nil {
		return Post{}, err
	}
	recipients := make([]Recipient, 0, len(memberIDs))
	for _, userID := range memberIDs {
		recipients = append(recipients, Recipient{
			PostID:   post.ID,
			UserID:   userID,
			TenantID: sc.TenantID,
		})
	}
	if err := s.repo.InsertRecipients(ctx, recipients); err != nil {
		return Post{}, err
	}

	if s.notifier != nil {
		if err := s.notifier.EnqueueDispatch(ctx, post.ID); err != nil {
			// Notification delivery is best effort; the post itself stands.
			s.logger.Warn("enqueue notification dispatch", slog.Any("error", err),
				slog.String("post_id", post.ID))
		}
	}

	if err := s.recorder.Record(ctx, "communication_post", post.ID, "created", map[string]any{
		"title":      post.Title,
		"requireAck": post.RequireAck,
		"recipients": len(recipients),
	}); err != nil {
		return Post{}, err
	}
	return post, nil
}

// GetPost loads one tenant-scoped post.
func (s *Service) GetPost(ctx context.Context, id string) (Post, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return Post{}, err
	}
	return s.repo.GetPost(ctx, sc.TenantID, id)
}

// ListPosts returns posts newest first.
func (s *Service) ListPosts(ctx context.Context, req ListPostsRequest) ([]Post, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	return s.repo.ListPosts(ctx, sc.TenantID, limit, req.Offset)
}

// UpdatePost edits title/body. Only the author may edit, and only inside the
// edit window; admin-tier role keys bypass both restrictions.
func (s *Service) UpdatePost(ctx context.Context, id string, req UpdatePostRequest) (Post, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return Post{}, err
	}
	post, err := s.repo.GetPost(ctx, sc.TenantID, id)
	if err != nil {
		return Post{}, err
	}

	if !s.isAdminTier(sc) {
		if post.AuthorID != sc.ActorID {
			return Post{}, fmt.Errorf("%w: only the author may edit this post", httpx.ErrForbidden)
		}
		if s.now().Sub(post.CreatedAt) > editWindow {
			return Post{}, fmt.Errorf("%w: edit window has elapsed", httpx.ErrForbidden)
		}
	}

	changes := map[string]any{}
	if req.Title != nil {
		changes["title"] = map[string]string{"from": post.Title, "to": *req.Title}
		post.Title = *req.Title
	}
	if req.Body != nil {
		changes["body"] = "updated"
		post.Body = *req.Body
	}
	if len(changes) == 0 {
		return post, nil
	}
	post.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdatePost(ctx, post); err != nil {
		return Post{}, err
	}
	if err := s.recorder.Record(ctx, "communication_post", post.ID, "updated", changes); err != nil {
		return Post{}, err
	}
	return post, nil
}

// DeletePost removes a post. Only the author or admin tier may delete.
func (s *Service) DeletePost(ctx context.Context, id string) error {
	sc, err := s.scope(ctx)
	if err != nil {
		return err
	}
	post, err := s.repo.GetPost(ctx, sc.TenantID, id)
	if err != nil {
		return err
	}
	if !s.isAdminTier(sc) && post.AuthorID != sc.ActorID {
		return fmt.Errorf("%w: only the author may delete this post", httpx.ErrForbidden)
	}
	if err := s.repo.DeletePost(ctx, sc.TenantID, id); err != nil {
		return err
	}
	return s.recorder.Record(ctx, "communication_post", id, "deleted", map[string]any{
		"title": post.Title,
	})
}

// Acknowledge marks the current actor's recipient row acknowledged. The
// recipient guard has already verified membership and tenant.
func (s *Service) Acknowledge(ctx context.Context, postID string) error {
	sc, err := s.scope(ctx)
	if err != nil {
		return err
	}
	if err := s.repo.Acknowledge(ctx, postID, sc.ActorID, s.now().UTC()); err != nil {
		return err
	}
	return s.recorder.Record(ctx, "communication_post", postID, "acknowledged", map[string]any{
		"userId": sc.ActorID,
	})
}

// GetAckSummary aggregates acknowledgement counts for a post.
func (s *Service) GetAckSummary(ctx context.Context, postID string) (AckSummary, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return AckSummary{}, err
	}
	if _, err := s.repo.GetPost(ctx, sc.TenantID, postID); err != nil {
		return AckSummary{}, err
	}
	return s.repo.AckSummary(ctx, sc.TenantID, postID)
}

// ListMyRequiredAcks returns the actor's required acknowledgements.
func (s *Service) ListMyRequiredAcks(ctx context.Context, pendingOnly bool) ([]AckItem, error) {
	sc, err := s.scope(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListRequiredAcks(ctx, sc.TenantID, sc.ActorID, pendingOnly)
}
