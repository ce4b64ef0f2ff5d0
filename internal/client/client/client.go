package client

import (
	"context"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
)

// Client is the remote user-management API.
type Client interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*MessageResponse, error)
	ConfirmEmail(ctx context.Context, token string) (*MessageResponse, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUsers(ctx context.Context, req UpdateUsersRequest) (*MessageResponse, error)
	DeleteUsers(ctx context.Context, req DeleteUsersRequest) (*MessageResponse, error)
	DeleteUnverified(ctx context.Context) (*DeleteUnverifiedResponse, error)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// UpdateUsersRequest carries the numeric status code (see models.Status.Code).
type UpdateUsersRequest struct {
	IDs    []string `json:"ids"`
	Status int      `json:"status"`
}

type DeleteUsersRequest struct {
	IDs []string `json:"ids"`
}

type DeleteUnverifiedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}
