package service

import (
	"context"
	"strings"

	"giggles.com/cmd/model"
	"giggles.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserStore interface {
	GetUser(ctx context.Context, userID string, withAura bool) (*model.User, error)
}

type PostCounter interface {
	CountUserVideos(ctx context.Context, userID string) (int64, error)
}

type FollowCounter interface {
	GetFollowerCount(ctx context.Context, userID string) (int64, error)
	GetFollowingCount(ctx context.Context, userID string) (int64, error)
}

// ProfileCache Get 返回的版本号原样交给 Set，期间被失效过的结果不会写入
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*model.UserProfile, int64, error)
	Set(ctx context.Context, profile *model.UserProfile, version int64) (bool, error)
}

type UserService struct {
	users   UserStore
	posts   PostCounter
	follows FollowCounter
	cache   ProfileCache
}

// NewUserService cache 可以为 nil
func NewUserService(users UserStore, posts PostCounter, follows FollowCounter, cache ProfileCache) *UserService {
	return &UserService{users: users, posts: posts, follows: follows, cache: cache}
}

// UserProfile 用户基本信息加上发布数、粉丝数、关注数。
// 三个计数互相独立，任何一个失败都按 0 处理
func (s *UserService) UserProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, errno.ValidationErr.WithMessage("user id is required")
	}

	// 版本号必须在计数之前读取
	cacheable := false
	var version int64
	if s.cache != nil {
		cached, ver, err := s.cache.Get(ctx, userID)
		switch {
		case err != nil:
			hlog.CtxWarnf(ctx, "read profile cache of %s failed: %v", userID, err)
		case cached != nil:
			return cached, nil
		default:
			cacheable, version = true, ver
		}
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &model.UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
		Aura:      user.Aura,
		Posts:     s.count(ctx, "posts", userID, s.posts.CountUserVideos),
		Followers: s.count(ctx, "followers", userID, s.follows.GetFollowerCount),
		Following: s.count(ctx, "following", userID, s.follows.GetFollowingCount),
	}

	if cacheable {
		if stored, err := s.cache.Set(ctx, profile, version); err != nil {
			hlog.CtxWarnf(ctx, "write profile cache of %s failed: %v", userID, err)
		} else if !stored {
			hlog.CtxInfof(ctx, "profile of %s changed while counting, not cached", userID)
		}
	}
	return profile, nil
}

// getUser aura 列可能不存在，非 not-found 的失败去掉 aura 再查一次
func (s *UserService) getUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetUser(ctx, userID, true)
	if err == nil {
		return user, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errno.NotFoundErr.WithMessage("user not found")
	}

	hlog.CtxWarnf(ctx, "get user %s with aura failed, retrying without it: %v", userID, err)
	user, err = s.users.GetUser(ctx, userID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.NotFoundErr.WithMessage("user not found")
		}
		hlog.CtxErrorf(ctx, "get user %s failed: %v", userID, err)
		return nil, errno.DependencyErr.WithMessage("failed to load user")
	}
	user.Aura = 0
	return user, nil
}

func (s *UserService) count(ctx context.Context, name, userID string, fn func(context.Context, string) (int64, error)) int64 {
	n, err := fn(ctx, userID)
	if err != nil {
		hlog.CtxWarnf(ctx, "count %s of %s failed: %v", name, userID, err)
		return 0
	}
	return n
}
