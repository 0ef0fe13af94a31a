package handlers

import "context"

type RelationService interface {
	Follow(ctx context.Context, target, follower string) (int64, error)
	Unfollow(ctx context.Context, target, follower string) (int64, error)
	IsFollowing(ctx context.Context, target, follower string) bool
}

type Handler struct {
	svc RelationService
}

func New(svc RelationService) *Handler {
	return &Handler{svc: svc}
}

// RelationParam target 为被关注的用户
type RelationParam struct {
	Target     string `path:"id"`
	FollowerID string `query:"follower_id"`
}
