package db

import (
	"context"
	"errors"
	"strings"

	"toolshare/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound covers both "no such row" and "row exists but fails an
// ownership/state guard" — callers must not be able to tell the two
// apart. The repo logs the distinction before returning it.
var ErrNotFound = errors.New("not found")

// ValidationError is a semantically invalid input: bad enum value,
// duration out of range, duplicate pending request, self-borrow,
// unavailable tool. Nothing is written when one is returned.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validation(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// validUUID screens ids bound for uuid-typed columns: a malformed id
// can never match a row, and passing it through would fail the
// parameter cast (SQLSTATE 22P02) instead of reading as no-match.
func validUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// isUniqueViolation reports a Postgres unique-index violation
// (SQLSTATE 23505), the backstop behind the descriptive pre-checks.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

// Users

func (r *Repo) CreateUser(ctx context.Context, u *models.User) error {
	err := r.DB.WithContext(ctx).Create(u).Error
	if isUniqueViolation(err) {
		// 并发注册同名：唯一索引兜底，映射成可读的校验错误
		return validation("username already taken")
	}
	return err
}

func (r *Repo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) TouchUserLogin(ctx context.Context, userID string) error {
	// 用数据库时间更准，且避免并发覆盖：NOW() + 计数自增
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"last_login_at": gorm.Expr("NOW()"),
			"last_seen_at":  gorm.Expr("NOW()"),
			"login_count":   gorm.Expr("COALESCE(login_count, 0) + 1"),
		}).Error
}

func (r *Repo) TouchUserSeen(ctx context.Context, userID string) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_seen_at", gorm.Expr("NOW()")).Error
}

type ListUsersResult struct {
	Users []models.User `json:"users"`
	Total int64         `json:"total"`
}

// ListUsers pages over users, optionally matching username/display name.
func (r *Repo) ListUsers(ctx context.Context, q string, page, size int) (ListUsersResult, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.User{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(username) LIKE ? OR LOWER(display_name) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return ListUsersResult{}, err
	}

	var users []models.User
	if err := tx.
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&users).Error; err != nil {
		return ListUsersResult{}, err
	}
	return ListUsersResult{Users: users, Total: total}, nil
}

// DeleteUserByID removes the user and everything hanging off them:
// requests they filed, requests on their tools, and the tools
// themselves. Returns the image paths of deleted tools so the caller
// can release the blobs.
func (r *Repo) DeleteUserByID(ctx context.Context, id string) ([]string, error) {
	var imagePaths []string
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Tool{}).
			Where("owner_id = ? AND image_path <> ''", id).
			Pluck("image_path", &imagePaths).Error; err != nil {
			return err
		}

		// 外键有级联，这里显式删除保险起见（同老代码删 credentials 的做法）
		if err := tx.Where("borrower_id = ?", id).Delete(&models.BorrowRequest{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("tool_id IN (?)", tx.Session(&gorm.Session{NewDB: true}).
				Model(&models.Tool{}).Select("id").Where("owner_id = ?", id)).
			Delete(&models.BorrowRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", id).Delete(&models.Tool{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{ID: id}).Error
	})
	if err != nil {
		return nil, err
	}
	return imagePaths, nil
}
