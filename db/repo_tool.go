package db

import (
	"context"
	"errors"

	"toolshare/models"

	"gorm.io/gorm"
)

// Browse pagination: Django 风格 page_size=10，上限 50
const (
	defaultPageSize = 10
	maxPageSize     = 50
)

func clampPage(page, size int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// Tools

func (r *Repo) CreateTool(ctx context.Context, t *models.Tool) error {
	if !t.Category.Valid() {
		return validation("invalid category")
	}
	if !t.Condition.Valid() {
		return validation("invalid condition")
	}
	return r.DB.WithContext(ctx).Create(t).Error
}

type PagedTools struct {
	Total int64         `json:"total"`
	Tools []models.Tool `json:"tools"`
}

// ListAvailableTools is the browse view: other users' available tools,
// newest first.
func (r *Repo) ListAvailableTools(ctx context.Context, excludeOwnerID string, page, size int) (*PagedTools, error) {
	page, size = clampPage(page, size)

	tx := r.DB.WithContext(ctx).Model(&models.Tool{}).
		Where("is_available = TRUE AND owner_id <> ?", excludeOwnerID)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	var tools []models.Tool
	if err := tx.
		Preload("Owner").
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&tools).Error; err != nil {
		return nil, err
	}
	return &PagedTools{Total: total, Tools: tools}, nil
}

func (r *Repo) ListToolsByOwner(ctx context.Context, ownerID string) ([]models.Tool, error) {
	var tools []models.Tool
	err := r.DB.WithContext(ctx).
		Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&tools).Error
	return tools, err
}

// GetOwnedTool is the ownership-scoped detail view: a non-owner gets
// ErrNotFound, same as a missing id.
func (r *Repo) GetOwnedTool(ctx context.Context, id, ownerID string) (*models.Tool, error) {
	if !validUUID(id) {
		return nil, ErrNotFound
	}
	var t models.Tool
	err := r.DB.WithContext(ctx).
		Preload("Owner").
		First(&t, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// UpdateTool writes the owner-editable columns only. Availability
// belongs to the request lifecycle; a stale in-memory copy must not be
// able to put a lent tool back on the market.
func (r *Repo) UpdateTool(ctx context.Context, t *models.Tool) error {
	if !t.Category.Valid() {
		return validation("invalid category")
	}
	if !t.Condition.Valid() {
		return validation("invalid condition")
	}
	return r.DB.WithContext(ctx).Model(&models.Tool{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"name":      t.Name,
			"category":  t.Category,
			"condition": t.Condition,
		}).Error
}

// SetToolImage stores the new blob path and returns the previous one
// so the caller can release it.
func (r *Repo) SetToolImage(ctx context.Context, id, ownerID, path string) (string, error) {
	if !validUUID(id) {
		return "", ErrNotFound
	}
	var old string
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.Tool
		if err := tx.First(&t, "id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		old = t.ImagePath
		return tx.Model(&t).Update("image_path", path).Error
	})
	if err != nil {
		return "", err
	}
	return old, nil
}

// DeleteOwnedTool removes the tool and its requests; the returned tool
// carries the image path for blob release.
func (r *Repo) DeleteOwnedTool(ctx context.Context, id, ownerID string) (*models.Tool, error) {
	if !validUUID(id) {
		return nil, ErrNotFound
	}
	var t models.Tool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, "id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("tool_id = ?", t.ID).Delete(&models.BorrowRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&t).Error
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}
