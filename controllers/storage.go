package controllers

import (
	"context"

	"toolshare/db"
	"toolshare/models"
)

// Store is the slice of the repo the controllers consume. *db.Repo
// satisfies it; tests swap in a mock.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	TouchUserLogin(ctx context.Context, userID string) error
	ListUsers(ctx context.Context, q string, page, size int) (db.ListUsersResult, error)
	DeleteUserByID(ctx context.Context, id string) ([]string, error)

	CreateTool(ctx context.Context, t *models.Tool) error
	ListAvailableTools(ctx context.Context, excludeOwnerID string, page, size int) (*db.PagedTools, error)
	ListToolsByOwner(ctx context.Context, ownerID string) ([]models.Tool, error)
	GetOwnedTool(ctx context.Context, id, ownerID string) (*models.Tool, error)
	UpdateTool(ctx context.Context, t *models.Tool) error
	SetToolImage(ctx context.Context, id, ownerID, path string) (string, error)
	DeleteOwnedTool(ctx context.Context, id, ownerID string) (*models.Tool, error)
	ToolStats(ctx context.Context, userID string) (*db.ToolStats, error)

	CreateRequest(ctx context.Context, borrowerID, toolID, reason string, duration int) (*models.BorrowRequest, error)
	ApproveRequest(ctx context.Context, requestID, actingOwnerID string) (*models.BorrowRequest, error)
	RejectRequest(ctx context.Context, requestID, actingOwnerID string) (*models.BorrowRequest, error)
	MarkReturned(ctx context.Context, requestID, actingOwnerID string) (*models.BorrowRequest, error)
	ListMyRequests(ctx context.Context, borrowerID string, page, size int) (*db.PagedRequests, error)
	ListIncomingRequests(ctx context.Context, ownerID string, page, size int) (*db.PagedRequests, error)
	CountNotifications(ctx context.Context, userID string) (*db.NotificationCounts, error)
	MarkNotificationsRead(ctx context.Context, userID string) error
	RequestStats(ctx context.Context, userID string) (*db.RequestStats, error)
}

var _ Store = (*db.Repo)(nil)
