package service

//go:generate mockgen -source=link_service.go -destination=mocks/mock_link_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"

	"shortlink-be/internal/cache"
	"shortlink-be/internal/entities"
	"shortlink-be/internal/idgen"
	"shortlink-be/internal/logger"
	"shortlink-be/internal/models"
	"shortlink-be/internal/repository"
)

const (
	defaultMaxAttempts  = 5
	defaultStoreTimeout = 3 * time.Second
	defaultCacheTTL     = time.Hour

	// Pause between identifier attempts after a collision.
	collisionBackoff = 5 * time.Millisecond
)

// LinkService defines the short link lifecycle
type LinkService interface {
	Shorten(ctx context.Context, targetURL, callerIP string) (string, error)
	Redirect(ctx context.Context, id string) (string, error)
	Update(ctx context.Context, id, newTarget, callerIP string) error
	Delete(ctx context.Context, id, callerIP string) error
	Stats(ctx context.Context, id, callerIP string) (*models.LinkStatsResponse, error)
	Exists(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// Options tunes a LinkService. Zero values fall back to defaults.
type Options struct {
	MaxAttempts  int           // Identifier generations tried per Shorten
	StoreTimeout time.Duration // Bound for every store and cache call
	CacheTTL     time.Duration // Lifetime of cached id -> target entries
}

type linkService struct {
	repo    repository.ShortLinkRepository
	gen     idgen.Generator
	cache   cache.Cache
	opts    Options
	lookups singleflight.Group
}

// cachedTarget is the cache entry for a redirect lookup.
type cachedTarget struct {
	Target string `json:"target"`
}

// NewLinkService creates the lifecycle service. cacheClient may be nil.
func NewLinkService(repo repository.ShortLinkRepository, gen idgen.Generator, cacheClient cache.Cache, opts Options) LinkService {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.StoreTimeout <= 0 {
		opts.StoreTimeout = defaultStoreTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}

	return &linkService{
		repo:  repo,
		gen:   gen,
		cache: cacheClient,
		opts:  opts,
	}
}

func validTarget(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

func targetCacheKey(id string) string {
	return "target:" + id
}

func (s *linkService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opts.StoreTimeout)
}

// Shorten stores targetURL under a freshly generated id and returns the id
func (s *linkService) Shorten(ctx context.Context, targetURL, callerIP string) (string, error) {
	if !validTarget(targetURL) {
		return "", ErrInvalidURL
	}

	backoff := retry.WithMaxRetries(uint64(s.opts.MaxAttempts-1), retry.NewConstant(collisionBackoff))

	var id string
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		candidate, err := s.gen.Generate()
		if err != nil {
			return fmt.Errorf("failed to generate short link id: %w", err)
		}

		opCtx, cancel := s.storeContext(ctx)
		defer cancel()

		if _, err := s.repo.Insert(opCtx, candidate, targetURL, callerIP); err != nil {
			if errors.Is(err, repository.ErrAlreadyExists) {
				logger.Warn().Str("id", candidate).Msg("Short link id collision, regenerating")
				return retry.RetryableError(err)
			}
			return storeError("insert", err)
		}

		id = candidate
		return nil
	})

	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, repository.ErrAlreadyExists):
		return "", fmt.Errorf("%w after %d attempts", ErrGenerationExhausted, s.opts.MaxAttempts)
	case errors.Is(err, ErrStoreUnavailable):
		return "", err
	case ctx.Err() != nil:
		return "", storeError("insert", err)
	default:
		return "", err
	}
}

// Redirect resolves id and counts the visit. The count is incremented exactly once per
// successful call.
func (s *linkService) Redirect(ctx context.Context, id string) (string, error) {
	target, err := s.lookupTarget(ctx, id)
	if err != nil {
		return "", err
	}

	opCtx, cancel := s.storeContext(ctx)
	defer cancel()

	if err := s.repo.IncrementVisitCount(opCtx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Deleted between lookup and increment.
			s.evict(ctx, id)
			return "", ErrNotFound
		}
		return "", storeError("increment visit count", err)
	}

	return target, nil
}

// Update replaces the target and hands the creator credential to callerIP
func (s *linkService) Update(ctx context.Context, id, newTarget, callerIP string) error {
	if _, err := s.authorize(ctx, id, callerIP); err != nil {
		return err
	}
	if !validTarget(newTarget) {
		return ErrInvalidURL
	}

	opCtx, cancel := s.storeContext(ctx)
	defer cancel()

	// Guarded on callerIP in the store as well.
	if err := s.repo.UpdateTarget(opCtx, id, callerIP, newTarget, callerIP); err != nil {
		return guardedWriteError("update", err)
	}

	s.evict(ctx, id)
	return nil
}

// Delete removes the link when callerIP is its creator
func (s *linkService) Delete(ctx context.Context, id, callerIP string) error {
	opCtx, cancel := s.storeContext(ctx)
	defer cancel()

	if err := s.repo.Delete(opCtx, id, callerIP); err != nil {
		return guardedWriteError("delete", err)
	}

	s.evict(ctx, id)
	return nil
}

// Stats returns the visit counter to the link's creator
func (s *linkService) Stats(ctx context.Context, id, callerIP string) (*models.LinkStatsResponse, error) {
	link, err := s.authorize(ctx, id, callerIP)
	if err != nil {
		return nil, err
	}

	return &models.LinkStatsResponse{
		ID:         link.ID,
		Target:     link.Target,
		VisitCount: link.VisitCount,
	}, nil
}

// Exists reports ErrNotFound when id is unknown
func (s *linkService) Exists(ctx context.Context, id string) error {
	_, err := s.lookupTarget(ctx, id)
	return err
}

func (s *linkService) Ping(ctx context.Context) error {
	opCtx, cancel := s.storeContext(ctx)
	defer cancel()

	if err := s.repo.Ping(opCtx); err != nil {
		return storeError("ping", err)
	}
	return nil
}

// authorize loads id and checks callerIP against the stored creator IP. A mismatch says
// nothing else about the record.
func (s *linkService) authorize(ctx context.Context, id, callerIP string) (*entities.ShortLink, error) {
	link, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if link.CreatorIP != callerIP {
		return nil, ErrForbidden
	}
	return link, nil
}

func guardedWriteError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrCreatorMismatch):
		return ErrForbidden
	default:
		return storeError(op, err)
	}
}

func (s *linkService) findByID(ctx context.Context, id string) (*entities.ShortLink, error) {
	opCtx, cancel := s.storeContext(ctx)
	defer cancel()

	link, err := s.repo.FindByID(opCtx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError("find", err)
	}
	return link, nil
}

// lookupTarget reads through the cache. Concurrent misses for one id share a store read,
// which runs detached from any single caller and is bounded by the store timeout alone.
func (s *linkService) lookupTarget(ctx context.Context, id string) (string, error) {
	if target, ok := s.cachedTarget(ctx, id); ok {
		return target, nil
	}

	flight := s.lookups.DoChan(id, func() (interface{}, error) {
		flightCtx := context.WithoutCancel(ctx)

		link, err := s.findByID(flightCtx, id)
		if err != nil {
			return "", err
		}
		s.remember(flightCtx, link)
		return link.Target, nil
	})

	select {
	case <-ctx.Done():
		return "", storeError("find", ctx.Err())
	case res := <-flight:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (s *linkService) cachedTarget(ctx context.Context, id string) (string, bool) {
	if s.cache == nil {
		return "", false
	}

	opCtx, cancel := s.storeContext(ctx)
	defer cancel()

	var entry cachedTarget
	if err := s.cache.GetJSON(opCtx, targetCacheKey(id), &entry); err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			logger.Warn().Err(err).Str("id", id).Msg("Cache read failed, falling back to store")
		}
		return "", false
	}
	return entry.Target, entry.Target != ""
}

func (s *linkService) remember(ctx context.Context, link *entities.ShortLink) {
	if s.cache == nil {
		return
	}

	opCtx, cancel := s.storeContext(ctx)
	defer cancel()

	if err := s.cache.SetJSON(opCtx, targetCacheKey(link.ID), cachedTarget{Target: link.Target}, s.opts.CacheTTL); err != nil {
		logger.Warn().Err(err).Str("id", link.ID).Msg("Cache write failed")
	}
}

func (s *linkService) evict(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}

	opCtx, cancel := s.storeContext(ctx)
	defer cancel()

	if err := s.cache.Delete(opCtx, targetCacheKey(id)); err != nil {
		logger.Warn().Err(err).Str("id", id).Msg("Cache eviction failed")
	}
}
