package service

import (
	"context"
	"strings"

	"giggles.com/pkg/errno"
	"giggles.com/pkg/retry"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type RelationStore interface {
	UpsertFollow(ctx context.Context, followerID, followedID string) error
	CreateFollow(ctx context.Context, followerID, followedID string) error
	DeleteFollow(ctx context.Context, followerID, followedID string) error
	IsRelationExist(ctx context.Context, followerID, followedID string) (bool, error)
	GetFollowerCount(ctx context.Context, userID string) (int64, error)
}

// ProfileInvalidator 关注关系变化后清掉双方主页的聚合缓存
type ProfileInvalidator interface {
	Invalidate(ctx context.Context, userIDs ...string) error
}

type RelationService struct {
	store    RelationStore
	policy   retry.Policy
	profiles ProfileInvalidator
}

// NewRelationService profiles 可以为 nil
func NewRelationService(store RelationStore, policy retry.Policy, profiles ProfileInvalidator) *RelationService {
	return &RelationService{store: store, policy: policy, profiles: profiles}
}

// Follow follower 关注 target，返回 target 最新的粉丝数
func (s *RelationService) Follow(ctx context.Context, target, follower string) (int64, error) {
	target, follower, err := validatePair(target, follower)
	if err != nil {
		return 0, err
	}

	if err := s.store.UpsertFollow(ctx, follower, target); err != nil {
		hlog.CtxWarnf(ctx, "upsert follow %s->%s failed, retrying with plain insert: %v", follower, target, err)
		if err := s.store.CreateFollow(ctx, follower, target); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			hlog.CtxErrorf(ctx, "create follow %s->%s failed: %v", follower, target, err)
			return 0, errno.DependencyErr.WithMessage("failed to follow user")
		}
	}
	s.invalidate(ctx, target, follower)

	// 新的关注关系可能还没对计数可见
	return s.followerCount(ctx, target, func(n int64) bool { return n >= 1 }), nil
}

// Unfollow 删除不存在的关注关系不算错误
func (s *RelationService) Unfollow(ctx context.Context, target, follower string) (int64, error) {
	target, follower, err := validatePair(target, follower)
	if err != nil {
		return 0, err
	}

	if err := s.store.DeleteFollow(ctx, follower, target); err != nil {
		hlog.CtxErrorf(ctx, "delete follow %s->%s failed: %v", follower, target, err)
		return 0, errno.DependencyErr.WithMessage("failed to unfollow user")
	}
	s.invalidate(ctx, target, follower)

	return s.followerCount(ctx, target, nil), nil
}

// IsFollowing 查询失败时返回 false
func (s *RelationService) IsFollowing(ctx context.Context, target, follower string) bool {
	target, follower = strings.TrimSpace(target), strings.TrimSpace(follower)
	if target == "" || follower == "" {
		return false
	}
	ok, err := s.store.IsRelationExist(ctx, follower, target)
	if err != nil {
		hlog.CtxWarnf(ctx, "check follow %s->%s failed: %v", follower, target, err)
		return false
	}
	return ok
}

// followerCount 读不到时返回最后一次读到的值，一次都没读到返回 0
func (s *RelationService) followerCount(ctx context.Context, userID string, accept func(int64) bool) int64 {
	n, err := retry.Value(ctx, s.policy, func(ctx context.Context) (int64, error) {
		return s.store.GetFollowerCount(ctx, userID)
	}, accept)
	if err != nil {
		hlog.CtxWarnf(ctx, "read follower count of %s failed: %v", userID, err)
		return 0
	}
	return n
}

func (s *RelationService) invalidate(ctx context.Context, userIDs ...string) {
	if s.profiles == nil {
		return
	}
	if err := s.profiles.Invalidate(ctx, userIDs...); err != nil {
		hlog.CtxWarnf(ctx, "invalidate profile cache %v failed: %v", userIDs, err)
	}
}

func validatePair(target, follower string) (string, string, error) {
	target, follower = strings.TrimSpace(target), strings.TrimSpace(follower)
	if target == "" || follower == "" {
		return "", "", errno.ValidationErr.WithMessage("target and follower_id are required")
	}
	if target == follower {
		return "", "", errno.ValidationErr.WithMessage("cannot follow yourself")
	}
	return target, follower, nil
}
