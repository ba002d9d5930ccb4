package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"toolshare/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Request lifecycle. Every transition is one transaction: lock the
// rows, re-check the guard, then write. A concurrent loser sees the
// guard fail and gets ErrNotFound, never a double-applied effect.

// CreateRequest files a pending request after the four guards:
// tool exists and is available, not the borrower's own tool, duration
// in range, no pending duplicate for the same (tool, borrower).
func (r *Repo) CreateRequest(ctx context.Context, borrowerID, toolID, reason string, duration int) (*models.BorrowRequest, error) {
	if duration < models.MinDurationDays || duration > models.MaxDurationDays {
		return nil, validation(fmt.Sprintf("duration must be between %d and %d days",
			models.MinDurationDays, models.MaxDurationDays))
	}
	if !validUUID(toolID) {
		return nil, validation("tool not found or not available")
	}

	var req *models.BorrowRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 锁住工具，防止与 approve/delete 并发
		var tool models.Tool
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&tool, "id = ?", toolID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return validation("tool not found or not available")
			}
			return err
		}
		if !tool.IsAvailable {
			return validation("tool not found or not available")
		}
		if tool.OwnerID == borrowerID {
			return validation("you cannot borrow your own tool")
		}

		// 描述性预检；唯一部分索引是兜底
		var n int64
		if err := tx.Model(&models.BorrowRequest{}).
			Where("tool_id = ? AND borrower_id = ? AND status = ?",
				toolID, borrowerID, models.StatusPending).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return validation("you already have a pending request for this tool")
		}

		req = &models.BorrowRequest{
			ID:         uuid.NewString(),
			ToolID:     toolID,
			BorrowerID: borrowerID,
			Reason:     reason,
			Duration:   duration,
			Status:     models.StatusPending,
		}
		if err := tx.Create(req).Error; err != nil {
			return err
		}
		req.Tool = &tool
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// lockRequestForTransition loads and locks a request in the expected prior
// status, owned by actingOwner's tool. Any mismatch — missing row,
// wrong status, wrong owner — comes back as ErrNotFound; the log line
// keeps them apart for debugging.
func lockRequestForTransition(tx *gorm.DB, requestID, actingOwnerID string, want models.Status) (*models.BorrowRequest, *models.Tool, error) {
	var req models.BorrowRequest
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, "id = ? AND status = ?", requestID, want).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("request transition: %s not found in status %q", requestID, want)
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	var tool models.Tool
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&tool, "id = ?", req.ToolID).Error; err != nil {
		return nil, nil, err
	}
	if tool.OwnerID != actingOwnerID {
		log.Printf("request transition: %s owner guard failed for user %s", requestID, actingOwnerID)
		return nil, nil, ErrNotFound
	}
	return &req, &tool, nil
}

// ApproveRequest: pending -> approved. Takes the tool off the market,
// sets the return date exactly once, and re-flags the borrower's
// notification.
func (r *Repo) ApproveRequest(ctx context.Context, requestID, actingOwnerID string) (*models.BorrowRequest, error) {
	if !validUUID(requestID) {
		return nil, ErrNotFound
	}
	var out *models.BorrowRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, tool, err := lockRequestForTransition(tx, requestID, actingOwnerID, models.StatusPending)
		if err != nil {
			return err
		}
		// 可用性不变量：pending 请求的工具必须还在市场上
		if !tool.IsAvailable {
			log.Printf("approve %s: tool %s already unavailable", requestID, tool.ID)
			return ErrNotFound
		}

		if err := tx.Model(&models.Tool{}).
			Where("id = ? AND is_available = TRUE", tool.ID).
			Update("is_available", false).Error; err != nil {
			return err
		}

		updates := map[string]any{
			"status":            models.StatusApproved,
			"borrower_notified": false,
		}
		if req.ReturnDate == nil {
			rd := models.ReturnDateFrom(time.Now().UTC(), req.Duration)
			updates["return_date"] = rd
			req.ReturnDate = &rd
		}
		if err := tx.Model(&models.BorrowRequest{}).
			Where("id = ?", req.ID).
			Updates(updates).Error; err != nil {
			return err
		}

		req.Status = models.StatusApproved
		req.BorrowerNotified = false
		req.Tool = tool
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RejectRequest: pending -> rejected. The tool never left the market
// for a pending request, so availability is untouched.
func (r *Repo) RejectRequest(ctx context.Context, requestID, actingOwnerID string) (*models.BorrowRequest, error) {
	if !validUUID(requestID) {
		return nil, ErrNotFound
	}
	var out *models.BorrowRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, tool, err := lockRequestForTransition(tx, requestID, actingOwnerID, models.StatusPending)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.BorrowRequest{}).
			Where("id = ?", req.ID).
			Updates(map[string]any{
				"status":            models.StatusRejected,
				"borrower_notified": false,
			}).Error; err != nil {
			return err
		}
		req.Status = models.StatusRejected
		req.BorrowerNotified = false
		req.Tool = tool
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkReturned: approved -> returned. Puts the tool back on the
// market. Notification flags and return date stay as they are.
func (r *Repo) MarkReturned(ctx context.Context, requestID, actingOwnerID string) (*models.BorrowRequest, error) {
	if !validUUID(requestID) {
		return nil, ErrNotFound
	}
	var out *models.BorrowRequest
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, tool, err := lockRequestForTransition(tx, requestID, actingOwnerID, models.StatusApproved)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Tool{}).
			Where("id = ?", tool.ID).
			Update("is_available", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.BorrowRequest{}).
			Where("id = ?", req.ID).
			Update("status", models.StatusReturned).Error; err != nil {
			return err
		}
		req.Status = models.StatusReturned
		tool.IsAvailable = true
		req.Tool = tool
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type PagedRequests struct {
	Total    int64                  `json:"total"`
	Requests []models.BorrowRequest `json:"requests"`
}

func markOverdue(reqs []models.BorrowRequest) {
	now := time.Now().UTC()
	for i := range reqs {
		reqs[i].Overdue = reqs[i].IsOverdueAt(now)
	}
}

// ListMyRequests pages over the caller's own requests, newest first.
func (r *Repo) ListMyRequests(ctx context.Context, borrowerID string, page, size int) (*PagedRequests, error) {
	page, size = clampPage(page, size)

	tx := r.DB.WithContext(ctx).Model(&models.BorrowRequest{}).
		Where("borrower_id = ?", borrowerID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var reqs []models.BorrowRequest
	if err := tx.
		Preload("Tool").
		Preload("Tool.Owner").
		Preload("Borrower").
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	markOverdue(reqs)
	return &PagedRequests{Total: total, Requests: reqs}, nil
}

// ListIncomingRequests pages over requests on the caller's tools.
func (r *Repo) ListIncomingRequests(ctx context.Context, ownerID string, page, size int) (*PagedRequests, error) {
	page, size = clampPage(page, size)

	tx := r.DB.WithContext(ctx).Model(&models.BorrowRequest{}).
		Joins("JOIN "+models.ToolTable+" t ON t.id = "+models.RequestTable+".tool_id").
		Where("t.owner_id = ?", ownerID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var reqs []models.BorrowRequest
	if err := tx.
		Preload("Tool").
		Preload("Tool.Owner").
		Preload("Borrower").
		Order(models.RequestTable + ".created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&reqs).Error; err != nil {
		return nil, err
	}
	markOverdue(reqs)
	return &PagedRequests{Total: total, Requests: reqs}, nil
}
