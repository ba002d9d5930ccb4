package db

import (
	"context"

	"toolshare/models"
)

// Dashboard aggregations. Read-only, computed per call.

type ToolStats struct {
	TotalTools     int64 `json:"total_tools"`
	AvailableTools int64 `json:"available_tools"`
	MyTools        int64 `json:"my_tools"`
}

func (r *Repo) ToolStats(ctx context.Context, userID string) (*ToolStats, error) {
	var s ToolStats
	db := r.DB.WithContext(ctx)

	if err := db.Model(&models.Tool{}).Count(&s.TotalTools).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Tool{}).
		Where("is_available = TRUE").
		Count(&s.AvailableTools).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Tool{}).
		Where("owner_id = ?", userID).
		Count(&s.MyTools).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

type RequestStats struct {
	TotalRequests int64 `json:"total_requests"`
	TotalUsers    int64 `json:"total_users"`
	TotalTools    int64 `json:"total_tools"`
	TotalLent     int64 `json:"total_lent"`
	TotalBorrowed int64 `json:"total_borrowed"`
}

// RequestStats mixes global totals with the caller's lent/borrowed
// counts, one dashboard payload.
func (r *Repo) RequestStats(ctx context.Context, userID string) (*RequestStats, error) {
	var s RequestStats
	db := r.DB.WithContext(ctx)

	if err := db.Model(&models.BorrowRequest{}).Count(&s.TotalRequests).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Count(&s.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Tool{}).Count(&s.TotalTools).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.BorrowRequest{}).
		Joins("JOIN "+models.ToolTable+" t ON t.id = "+models.RequestTable+".tool_id").
		Where("t.owner_id = ?", userID).
		Count(&s.TotalLent).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.BorrowRequest{}).
		Where("borrower_id = ?", userID).
		Count(&s.TotalBorrowed).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
