package db

import (
	"context"

	"toolshare/models"

	"gorm.io/gorm"
)

// Notification ledger: no stored counters, only the per-request
// notified booleans. Counts are derived on read.

type NotificationCounts struct {
	NewApprovals int64 `json:"new_approvals"`
	NewRequests  int64 `json:"new_requests"`
	Total        int64 `json:"total_notifications"`
}

// CountNotifications returns the user's two unread counters:
// decisions on their own requests, and fresh pending requests on
// their tools.
func (r *Repo) CountNotifications(ctx context.Context, userID string) (*NotificationCounts, error) {
	var c NotificationCounts

	if err := r.DB.WithContext(ctx).Model(&models.BorrowRequest{}).
		Where("borrower_id = ? AND status IN ? AND borrower_notified = FALSE",
			userID, []models.Status{models.StatusApproved, models.StatusRejected}).
		Count(&c.NewApprovals).Error; err != nil {
		return nil, err
	}

	if err := r.DB.WithContext(ctx).Model(&models.BorrowRequest{}).
		Joins("JOIN "+models.ToolTable+" t ON t.id = "+models.RequestTable+".tool_id").
		Where("t.owner_id = ? AND status = ? AND owner_notified = FALSE",
			userID, models.StatusPending).
		Count(&c.NewRequests).Error; err != nil {
		return nil, err
	}

	c.Total = c.NewApprovals + c.NewRequests
	return &c, nil
}

// MarkNotificationsRead clears both notification classes for the user
// in one call: borrower-side decisions and owner-side pending
// requests. Both sweeps always run, whatever role the user was acting
// in.
func (r *Repo) MarkNotificationsRead(ctx context.Context, userID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.BorrowRequest{}).
			Where("borrower_id = ? AND borrower_notified = FALSE", userID).
			Update("borrower_notified", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.BorrowRequest{}).
			Where("owner_notified = FALSE AND status = ? AND tool_id IN (?)",
				models.StatusPending,
				tx.Session(&gorm.Session{NewDB: true}).
					Model(&models.Tool{}).Select("id").Where("owner_id = ?", userID)).
			Update("owner_notified", true).Error
	})
}
