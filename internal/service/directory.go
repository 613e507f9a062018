package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/opsdesk/helpdesk-service/internal/repository"
)

// AssigneeInfo is the display information resolved for an assignee.
type AssigneeInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AssigneeDirectory resolves user ids to display info for listing
// enrichment. Resolution is best-effort: a miss or a failure reports
// ok=false and the caller falls back to the raw identifier.
type AssigneeDirectory interface {
	Resolve(ctx context.Context, userID string) (AssigneeInfo, bool)
}

type cachedDirectory struct {
	users  repository.UserRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewAssigneeDirectory builds a redis-cached directory over the user
// repository. The client may be nil; lookups then go straight to the store.
func NewAssigneeDirectory(users repository.UserRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) AssigneeDirectory {
	return &cachedDirectory{users: users, client: client, ttl: ttl, logger: logger}
}

const directoryKeyPrefix = "directory:user:"

func (d *cachedDirectory) Resolve(ctx context.Context, userID string) (AssigneeInfo, bool) {
	if info, ok := d.fromCache(ctx, userID); ok {
		return info, true
	}

	user, err := d.users.GetByID(ctx, userID)
	if err != nil {
		// Enrichment never fails the listing; the caller shows the raw id.
		d.logger.Debug("assignee lookup failed", zap.String("user_id", userID), zap.Error(err))
		return AssigneeInfo{}, false
	}

	info := AssigneeInfo{Name: user.Name, Email: user.Email}
	d.toCache(ctx, userID, info)
	return info, true
}

func (d *cachedDirectory) fromCache(ctx context.Context, userID string) (AssigneeInfo, bool) {
	if d.client == nil {
		return AssigneeInfo{}, false
	}
	raw, err := d.client.Get(ctx, directoryKeyPrefix+userID).Bytes()
	if err != nil {
		return AssigneeInfo{}, false
	}
	var info AssigneeInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return AssigneeInfo{}, false
	}
	return info, true
}

func (d *cachedDirectory) toCache(ctx context.Context, userID string, info AssigneeInfo) {
	if d.client == nil {
		return
	}
	raw, err := json.Marshal(info)
	if err != nil {
		return
	}
	if err := d.client.Set(ctx, directoryKeyPrefix+userID, raw, d.ttl).Err(); err != nil {
		d.logger.Debug("directory cache write failed", zap.String("user_id", userID), zap.Error(err))
	}
}
