package controllers_test

import (
	"context"
	"errors"

	"toolshare/controllers"
	"toolshare/db"
	"toolshare/models"
)

// mockStore implements controllers.Store; tests override the function
// fields they exercise.
type mockStore struct {
	createUserFn         func(ctx context.Context, u *models.User) error
	findUserByIDFn       func(ctx context.Context, id string) (*models.User, error)
	findUserByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	listUsersFn          func(ctx context.Context, q string, page, size int) (db.ListUsersResult, error)
	deleteUserByIDFn     func(ctx context.Context, id string) ([]string, error)

	createToolFn         func(ctx context.Context, t *models.Tool) error
	listAvailableToolsFn func(ctx context.Context, excludeOwnerID string, page, size int) (*db.PagedTools, error)
	listToolsByOwnerFn   func(ctx context.Context, ownerID string) ([]models.Tool, error)
	getOwnedToolFn       func(ctx context.Context, id, ownerID string) (*models.Tool, error)
	updateToolFn         func(ctx context.Context, t *models.Tool) error
	setToolImageFn       func(ctx context.Context, id, ownerID, path string) (string, error)
	deleteOwnedToolFn    func(ctx context.Context, id, ownerID string) (*models.Tool, error)
	toolStatsFn          func(ctx context.Context, userID string) (*db.ToolStats, error)

	createRequestFn         func(ctx context.Context, borrowerID, toolID, reason string, duration int) (*models.BorrowRequest, error)
	approveRequestFn        func(ctx context.Context, requestID, actingOwnerID string) (*models.BorrowRequest, error)
	rejectRequestFn         func(ctx context.Context, requestID, actingOwnerID string) (*models.BorrowRequest, error)
	markReturnedFn          func(ctx context.Context, requestID, actingOwnerID string) (*models.BorrowRequest, error)
	listMyRequestsFn        func(ctx context.Context, borrowerID string, page, size int) (*db.PagedRequests, error)
	listIncomingRequestsFn  func(ctx context.Context, ownerID string, page, size int) (*db.PagedRequests, error)
	countNotificationsFn    func(ctx context.Context, userID string) (*db.NotificationCounts, error)
	markNotificationsReadFn func(ctx context.Context, userID string) error
	requestStatsFn          func(ctx context.Context, userID string) (*db.RequestStats, error)
}

var _ controllers.Store = (*mockStore)(nil)

var errNotStubbed = errors.New("not stubbed")

func (m *mockStore) CreateUser(ctx context.Context, u *models.User) error {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, u)
	}
	return nil
}

func (m *mockStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.findUserByIDFn != nil {
		return m.findUserByIDFn(ctx, id)
	}
	return &models.User{ID: id, Username: "alice", DisplayName: "Alice"}, nil
}

func (m *mockStore) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.findUserByUsernameFn != nil {
		return m.findUserByUsernameFn(ctx, username)
	}
	return nil, db.ErrNotFound
}

func (m *mockStore) TouchUserLogin(ctx context.Context, userID string) error { return nil }

func (m *mockStore) ListUsers(ctx context.Context, q string, page, size int) (db.ListUsersResult, error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(ctx, q, page, size)
	}
	return db.ListUsersResult{}, nil
}

func (m *mockStore) DeleteUserByID(ctx context.Context, id string) ([]string, error) {
	if m.deleteUserByIDFn != nil {
		return m.deleteUserByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockStore) CreateTool(ctx context.Context, t *models.Tool) error {
	if m.createToolFn != nil {
		return m.createToolFn(ctx, t)
	}
	return nil
}

func (m *mockStore) ListAvailableTools(ctx context.Context, excludeOwnerID string, page, size int) (*db.PagedTools, error) {
	if m.listAvailableToolsFn != nil {
		return m.listAvailableToolsFn(ctx, excludeOwnerID, page, size)
	}
	return &db.PagedTools{}, nil
}

func (m *mockStore) ListToolsByOwner(ctx context.Context, ownerID string) ([]models.Tool, error) {
	if m.listToolsByOwnerFn != nil {
		return m.listToolsByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockStore) GetOwnedTool(ctx context.Context, id, ownerID string) (*models.Tool, error) {
	if m.getOwnedToolFn != nil {
		return m.getOwnedToolFn(ctx, id, ownerID)
	}
	return nil, errNotStubbed
}

func (m *mockStore) UpdateTool(ctx context.Context, t *models.Tool) error {
	if m.updateToolFn != nil {
		return m.updateToolFn(ctx, t)
	}
	return nil
}

func (m *mockStore) SetToolImage(ctx context.Context, id, ownerID, path string) (string, error) {
	if m.setToolImageFn != nil {
		return m.setToolImageFn(ctx, id, ownerID, path)
	}
	return "", nil
}

func (m *mockStore) DeleteOwnedTool(ctx context.Context, id, ownerID string) (*models.Tool, error) {
	if m.deleteOwnedToolFn != nil {
		return m.deleteOwnedToolFn(ctx, id, ownerID)
	}
	return nil, errNotStubbed
}

func (m *mockStore) ToolStats(ctx context.Context, userID string) (*db.ToolStats, error) {
	if m.toolStatsFn != nil {
		return m.toolStatsFn(ctx, userID)
	}
	return &db.ToolStats{}, nil
}

func (m *mockStore) CreateRequest(ctx context.Context, borrowerID, toolID, reason string, duration int) (*models.BorrowRequest, error) {
	if m.createRequestFn != nil {
		return m.createRequestFn(ctx, borrowerID, toolID, reason, duration)
	}
	return nil, errNotStubbed
}

func (m *mockStore) ApproveRequest(ctx context.Context, requestID, actingOwnerID string) (*models.BorrowRequest, error) {
	if m.approveRequestFn != nil {
		return m.approveRequestFn(ctx, requestID, actingOwnerID)
	}
	return nil, errNotStubbed
}

func (m *mockStore) RejectRequest(ctx context.Context, requestID, actingOwnerID string) (*models.BorrowRequest, error) {
	if m.rejectRequestFn != nil {
		return m.rejectRequestFn(ctx, requestID, actingOwnerID)
	}
	return nil, errNotStubbed
}

func (m *mockStore) MarkReturned(ctx context.Context, requestID, actingOwnerID string) (*models.BorrowRequest, error) {
	if m.markReturnedFn != nil {
		return m.markReturnedFn(ctx, requestID, actingOwnerID)
	}
	return nil, errNotStubbed
}

func (m *mockStore) ListMyRequests(ctx context.Context, borrowerID string, page, size int) (*db.PagedRequests, error) {
	if m.listMyRequestsFn != nil {
		return m.listMyRequestsFn(ctx, borrowerID, page, size)
	}
	return &db.PagedRequests{}, nil
}

func (m *mockStore) ListIncomingRequests(ctx context.Context, ownerID string, page, size int) (*db.PagedRequests, error) {
	if m.listIncomingRequestsFn != nil {
		return m.listIncomingRequestsFn(ctx, ownerID, page, size)
	}
	return &db.PagedRequests{}, nil
}

func (m *mockStore) CountNotifications(ctx context.Context, userID string) (*db.NotificationCounts, error) {
	if m.countNotificationsFn != nil {
		return m.countNotificationsFn(ctx, userID)
	}
	return &db.NotificationCounts{}, nil
}

func (m *mockStore) MarkNotificationsRead(ctx context.Context, userID string) error {
	if m.markNotificationsReadFn != nil {
		return m.markNotificationsReadFn(ctx, userID)
	}
	return nil
}

func (m *mockStore) RequestStats(ctx context.Context, userID string) (*db.RequestStats, error) {
	if m.requestStatsFn != nil {
		return m.requestStatsFn(ctx, userID)
	}
	return &db.RequestStats{}, nil
}
