package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"giggles.com/cmd/model"
	"giggles.com/pkg/cache"
	"giggles.com/pkg/errno"
	"github.com/alicebob/miniredis/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errStore = errors.New("store unavailable")

type fakeUserStore struct {
	users map[string]*model.User
	// auraErr 查询 aura 列时返回的错误
	auraErr  error
	plainErr error
	calls    []bool
}

func (f *fakeUserStore) GetUser(ctx context.Context, userID string, withAura bool) (*model.User, error) {
	f.calls = append(f.calls, withAura)
	if withAura && f.auraErr != nil {
		return nil, f.auraErr
	}
	if !withAura && f.plainErr != nil {
		return nil, f.plainErr
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, pkgerrors.Wrapf(gorm.ErrRecordNotFound, "get user %s", userID)
	}
	cp := *u
	if !withAura {
		cp.Aura = 0
	}
	return &cp, nil
}

type fakeCounts struct {
	posts, followers, following          int64
	postsErr, followersErr, followingErr error
}

func (f *fakeCounts) CountUserVideos(ctx context.Context, userID string) (int64, error) {
	return f.posts, f.postsErr
}

func (f *fakeCounts) GetFollowerCount(ctx context.Context, userID string) (int64, error) {
	return f.followers, f.followersErr
}

func (f *fakeCounts) GetFollowingCount(ctx context.Context, userID string) (int64, error) {
	return f.following, f.followingErr
}

type fakeProfileCache struct {
	entries map[string]*model.UserProfile
	getErr  error
	sets    int
}

func (f *fakeProfileCache) Get(ctx context.Context, userID string) (*model.UserProfile, int64, error) {
	if f.getErr != nil {
		return nil, 0, f.getErr
	}
	return f.entries[userID], 0, nil
}

func (f *fakeProfileCache) Set(ctx context.Context, p *model.UserProfile, version int64) (bool, error) {
	f.sets++
	f.entries[p.ID] = p
	return true, nil
}

func aliceStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{
		"alice": {ID: "alice", Username: "alice", AvatarURL: "http://a/alice.png", Aura: 42},
	}}
}

func TestUserProfile(t *testing.T) {
	counts := &fakeCounts{posts: 3, followers: 10, following: 2}
	s := NewUserService(aliceStore(), counts, counts, nil)

	p, err := s.UserProfile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, &model.UserProfile{
		ID: "alice", Username: "alice", AvatarURL: "http://a/alice.png",
		Aura: 42, Posts: 3, Followers: 10, Following: 2,
	}, p)
}

func TestUserProfileNotFound(t *testing.T) {
	counts := &fakeCounts{}
	_, err := NewUserService(aliceStore(), counts, counts, nil).UserProfile(context.Background(), "nobody")
	assert.Equal(t, int64(errno.NotFoundErrCode), errno.ConvertErr(err).ErrCode)
}

func TestUserProfileRetriesWithoutAura(t *testing.T) {
	store := aliceStore()
	store.auraErr = errors.New("Error 1054: Unknown column 'aura'")
	counts := &fakeCounts{posts: 1}

	p, err := NewUserService(store, counts, counts, nil).UserProfile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Zero(t, p.Aura)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, []bool{true, false}, store.calls)
}

func TestUserProfilePrimaryFetchFailure(t *testing.T) {
	store := aliceStore()
	store.auraErr = errStore
	store.plainErr = errStore
	counts := &fakeCounts{}
	_, err := NewUserService(store, counts, counts, nil).UserProfile(context.Background(), "alice")
	assert.Equal(t, int64(errno.DependencyErrCode), errno.ConvertErr(err).ErrCode)
}

func TestUserProfileCountsDegradeIndependently(t *testing.T) {
	counts := &fakeCounts{posts: 3, followers: 10, following: 2, followersErr: errStore}
	p, err := NewUserService(aliceStore(), counts, counts, nil).UserProfile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.Posts)
	assert.Zero(t, p.Followers)
	assert.Equal(t, int64(2), p.Following)
}

func TestUserProfileCache(t *testing.T) {
	ctx := context.Background()
	store := aliceStore()
	counts := &fakeCounts{posts: 1}
	pc := &fakeProfileCache{entries: map[string]*model.UserProfile{}}
	s := NewUserService(store, counts, counts, pc)

	_, err := s.UserProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, pc.sets)

	counts.posts = 5
	p, err := s.UserProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Posts, "served from cache")
	assert.Len(t, store.calls, 1)

	pc.getErr = errStore
	p, err = s.UserProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.Posts)
	assert.Equal(t, 1, pc.sets, "no write when the cache read failed")
}

// followDuringCount 在粉丝数统计途中提交一次关注并失效缓存
type followDuringCount struct {
	fakeCounts
	cache    *cache.ProfileCache
	followed bool
}

func (f *followDuringCount) GetFollowerCount(ctx context.Context, userID string) (int64, error) {
	n := f.followers
	if !f.followed {
		f.followed = true
		f.followers++
		if err := f.cache.Invalidate(ctx, userID); err != nil {
			return 0, err
		}
	}
	return n, nil
}

func TestUserProfileIgnoresCountsReadBeforeFollow(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	profiles := cache.NewProfileCache(client, time.Minute)

	counts := &followDuringCount{cache: profiles}
	s := NewUserService(aliceStore(), counts, counts, profiles)

	p, err := s.UserProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, p.Followers)
	assert.False(t, mr.Exists("user:profile:alice"), "stale aggregate must not be cached")

	p, err = s.UserProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Followers)
	assert.True(t, mr.Exists("user:profile:alice"))

	p, err = s.UserProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Followers)
}
