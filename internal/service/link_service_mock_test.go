package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"shortlink-be/internal/entities"
	"shortlink-be/internal/repository"
	"shortlink-be/internal/repository/mocks"
)

func newMockedService(t *testing.T, gen *sequenceGenerator, opts Options) (LinkService, *mocks.MockShortLinkRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockShortLinkRepository(ctrl)
	return NewLinkService(repo, gen, nil, opts), repo
}

func TestShortenRetriesOnCollision(t *testing.T) {
	svc, repo := newMockedService(t, &sequenceGenerator{ids: []string{"aaaaaaaa", "bbbbbbbb"}}, Options{})

	gomock.InOrder(
		repo.EXPECT().Insert(gomock.Any(), "aaaaaaaa", "https://example.com", "1.2.3.4").
			Return(nil, repository.ErrAlreadyExists),
		repo.EXPECT().Insert(gomock.Any(), "bbbbbbbb", "https://example.com", "1.2.3.4").
			Return(&entities.ShortLink{ID: "bbbbbbbb", Target: "https://example.com", CreatorIP: "1.2.3.4"}, nil),
	)

	id, err := svc.Shorten(context.Background(), "https://example.com", "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, "bbbbbbbb", id)
}

func TestShortenGivesUpAfterMaxAttempts(t *testing.T) {
	svc, repo := newMockedService(t, &sequenceGenerator{ids: []string{"aaaaaaaa", "bbbbbbbb", "cccccccc", "dddddddd"}}, Options{MaxAttempts: 3})

	repo.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, repository.ErrAlreadyExists).
		Times(3)

	_, err := svc.Shorten(context.Background(), "https://example.com", "1.2.3.4")
	assert.ErrorIs(t, err, ErrGenerationExhausted)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)
}

func TestShortenDoesNotRetryStoreFailure(t *testing.T) {
	svc, repo := newMockedService(t, &sequenceGenerator{ids: []string{"aaaaaaaa", "bbbbbbbb"}}, Options{})

	repo.EXPECT().Insert(gomock.Any(), "aaaaaaaa", gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused")).
		Times(1)

	_, err := svc.Shorten(context.Background(), "https://example.com", "1.2.3.4")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestShortenGeneratorFailure(t *testing.T) {
	svc, _ := newMockedService(t, &sequenceGenerator{}, Options{})

	_, err := svc.Shorten(context.Background(), "https://example.com", "1.2.3.4")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)
	assert.NotErrorIs(t, err, ErrGenerationExhausted)
}

func TestShortenInvalidURLTouchesNothing(t *testing.T) {
	// No expectations: any repository call fails the test.
	svc, _ := newMockedService(t, &sequenceGenerator{ids: []string{"aaaaaaaa"}}, Options{})

	_, err := svc.Shorten(context.Background(), "www.example.com", "1.2.3.4")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestStoreTimeoutIsUnavailable(t *testing.T) {
	svc, repo := newMockedService(t, &sequenceGenerator{}, Options{StoreTimeout: 20 * time.Millisecond})

	repo.EXPECT().FindByID(gomock.Any(), "abc12345").
		DoAndReturn(func(ctx context.Context, _ string) (*entities.ShortLink, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	start := time.Now()
	_, err := svc.Redirect(context.Background(), "abc12345")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRedirectIncrementFailure(t *testing.T) {
	svc, repo := newMockedService(t, &sequenceGenerator{}, Options{})

	repo.EXPECT().FindByID(gomock.Any(), "abc12345").
		Return(&entities.ShortLink{ID: "abc12345", Target: "https://example.com", CreatorIP: "1.2.3.4"}, nil)
	repo.EXPECT().IncrementVisitCount(gomock.Any(), "abc12345").
		Return(errors.New("disk full"))

	_, err := svc.Redirect(context.Background(), "abc12345")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestRedirectRacingDelete(t *testing.T) {
	svc, repo := newMockedService(t, &sequenceGenerator{}, Options{})

	repo.EXPECT().FindByID(gomock.Any(), "abc12345").
		Return(&entities.ShortLink{ID: "abc12345", Target: "https://example.com", CreatorIP: "1.2.3.4"}, nil)
	repo.EXPECT().IncrementVisitCount(gomock.Any(), "abc12345").
		Return(repository.ErrNotFound)

	_, err := svc.Redirect(context.Background(), "abc12345")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMutationsRacingDelete(t *testing.T) {
	link := &entities.ShortLink{ID: "abc12345", Target: "https://example.com", CreatorIP: "1.2.3.4"}

	t.Run("update", func(t *testing.T) {
		svc, repo := newMockedService(t, &sequenceGenerator{}, Options{})
		repo.EXPECT().FindByID(gomock.Any(), "abc12345").Return(link, nil)
		repo.EXPECT().UpdateTarget(gomock.Any(), "abc12345", "1.2.3.4", "https://example.org", "1.2.3.4").
			Return(repository.ErrNotFound)

		assert.ErrorIs(t, svc.Update(context.Background(), "abc12345", "https://example.org", "1.2.3.4"), ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		svc, repo := newMockedService(t, &sequenceGenerator{}, Options{})
		repo.EXPECT().Delete(gomock.Any(), "abc12345", "1.2.3.4").Return(repository.ErrNotFound)

		assert.ErrorIs(t, svc.Delete(context.Background(), "abc12345", "1.2.3.4"), ErrNotFound)
	})
}

func TestUpdateRacingChangeOfCreator(t *testing.T) {
	svc, repo := newMockedService(t, &sequenceGenerator{}, Options{})
	link := &entities.ShortLink{ID: "abc12345", Target: "https://example.com", CreatorIP: "1.2.3.4"}

	// The record changes hands between the read and the write.
	repo.EXPECT().FindByID(gomock.Any(), "abc12345").Return(link, nil)
	repo.EXPECT().UpdateTarget(gomock.Any(), "abc12345", "1.2.3.4", "https://example.org", "1.2.3.4").
		Return(repository.ErrCreatorMismatch)

	assert.ErrorIs(t, svc.Update(context.Background(), "abc12345", "https://example.org", "1.2.3.4"), ErrForbidden)
}

func TestForbiddenCallers(t *testing.T) {
	svc, repo := newMockedService(t, &sequenceGenerator{}, Options{})
	link := &entities.ShortLink{ID: "abc12345", Target: "https://example.com", CreatorIP: "1.2.3.4"}

	// Update stops after the read; delete is rejected by the guarded write.
	repo.EXPECT().FindByID(gomock.Any(), "abc12345").Return(link, nil)
	repo.EXPECT().Delete(gomock.Any(), "abc12345", "5.6.7.8").Return(repository.ErrCreatorMismatch)

	assert.ErrorIs(t, svc.Update(context.Background(), "abc12345", "https://example.org", "5.6.7.8"), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(context.Background(), "abc12345", "5.6.7.8"), ErrForbidden)
}

func TestCancelledCallerDoesNotFailSharedLookup(t *testing.T) {
	svc, repo := newMockedService(t, &sequenceGenerator{}, Options{StoreTimeout: 5 * time.Second})

	started := make(chan struct{}, 2)
	release := make(chan struct{})
	repo.EXPECT().FindByID(gomock.Any(), "abc12345").
		DoAndReturn(func(ctx context.Context, id string) (*entities.ShortLink, error) {
			started <- struct{}{}
			select {
			case <-release:
				return &entities.ShortLink{ID: id, Target: "https://example.com", CreatorIP: "1.2.3.4"}, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}).
		MinTimes(1).MaxTimes(2)
	repo.EXPECT().IncrementVisitCount(gomock.Any(), "abc12345").Return(nil)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := svc.Redirect(ctxA, "abc12345")
		errA <- err
	}()
	<-started

	type result struct {
		target string
		err    error
	}
	resB := make(chan result, 1)
	go func() {
		target, err := svc.Redirect(context.Background(), "abc12345")
		resB <- result{target, err}
	}()

	// Let B join the lookup, then drop A while the read is still in progress.
	time.Sleep(50 * time.Millisecond)
	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	close(release)
	b := <-resB
	require.NoError(t, b.err)
	assert.Equal(t, "https://example.com", b.target)
}
