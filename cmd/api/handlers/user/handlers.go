package handlers

import (
	"context"

	"giggles.com/cmd/model"
)

type UserService interface {
	UserProfile(ctx context.Context, userID string) (*model.UserProfile, error)
}

type Handler struct {
	svc UserService
}

func New(svc UserService) *Handler {
	return &Handler{svc: svc}
}

type GetUserInfoParam struct {
	UserID string `path:"id"`
}
