package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"shortlink-be/internal/entities"
)

// Each link is a hash at shortlink:{id} with fields id, target, visitCount and creatorIp.
const shortLinkKeyPrefix = "shortlink:"

var (
	insertIfAbsentScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1], 'id', ARGV[1], 'target', ARGV[2], 'visitCount', 0, 'creatorIp', ARGV[3])
return 1
`)

	incrementIfPresentScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
return redis.call('HINCRBY', KEYS[1], 'visitCount', 1)
`)

	// Owner-guarded writes return 1 on success, 0 for a missing hash and -1 when
	// creatorIp differs from ARGV[1].
	updateIfCreatorScript = redis.NewScript(`
local creator = redis.call('HGET', KEYS[1], 'creatorIp')
if not creator then
	return 0
end
if creator ~= ARGV[1] then
	return -1
end
redis.call('HSET', KEYS[1], 'target', ARGV[2], 'creatorIp', ARGV[3])
return 1
`)

	deleteIfCreatorScript = redis.NewScript(`
local creator = redis.call('HGET', KEYS[1], 'creatorIp')
if not creator then
	return 0
end
if creator ~= ARGV[1] then
	return -1
end
redis.call('DEL', KEYS[1])
return 1
`)
)

type redisShortLinkRepository struct {
	client redis.UniversalClient
}

// NewRedisShortLinkRepository creates a repository that keeps every link in a Redis hash.
// Conditional writes run as Lua scripts so they are atomic on the server.
func NewRedisShortLinkRepository(client redis.UniversalClient) ShortLinkRepository {
	return &redisShortLinkRepository{client: client}
}

func shortLinkKey(id string) string {
	return shortLinkKeyPrefix + id
}

func (r *redisShortLinkRepository) Insert(ctx context.Context, id, target, creatorIP string) (*entities.ShortLink, error) {
	created, err := insertIfAbsentScript.Run(ctx, r.client, []string{shortLinkKey(id)}, id, target, creatorIP).Int()
	if err != nil {
		return nil, fmt.Errorf("failed to insert short link: %w", err)
	}
	if created == 0 {
		return nil, ErrAlreadyExists
	}

	return &entities.ShortLink{
		ID:        id,
		Target:    target,
		CreatorIP: creatorIP,
	}, nil
}

func (r *redisShortLinkRepository) FindByID(ctx context.Context, id string) (*entities.ShortLink, error) {
	fields, err := r.client.HGetAll(ctx, shortLinkKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to find short link: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	count, err := strconv.ParseInt(fields["visitCount"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt visit count for %q: %w", id, err)
	}

	return &entities.ShortLink{
		ID:         id,
		Target:     fields["target"],
		VisitCount: count,
		CreatorIP:  fields["creatorIp"],
	}, nil
}

func (r *redisShortLinkRepository) IncrementVisitCount(ctx context.Context, id string) error {
	count, err := incrementIfPresentScript.Run(ctx, r.client, []string{shortLinkKey(id)}).Int64()
	if err != nil {
		return fmt.Errorf("failed to increment visit count: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *redisShortLinkRepository) UpdateTarget(ctx context.Context, id, creatorIP, newTarget, newCreatorIP string) error {
	status, err := updateIfCreatorScript.Run(ctx, r.client, []string{shortLinkKey(id)}, creatorIP, newTarget, newCreatorIP).Int()
	if err != nil {
		return fmt.Errorf("failed to update short link: %w", err)
	}
	return ownedWriteResult(status)
}

func (r *redisShortLinkRepository) Delete(ctx context.Context, id, creatorIP string) error {
	status, err := deleteIfCreatorScript.Run(ctx, r.client, []string{shortLinkKey(id)}, creatorIP).Int()
	if err != nil {
		return fmt.Errorf("failed to delete short link: %w", err)
	}
	return ownedWriteResult(status)
}

func ownedWriteResult(status int) error {
	switch status {
	case 1:
		return nil
	case -1:
		return ErrCreatorMismatch
	default:
		return ErrNotFound
	}
}

func (r *redisShortLinkRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
