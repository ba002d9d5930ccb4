package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"toolshare/app"
	"toolshare/db"
	"toolshare/models"
	"toolshare/session"
	"toolshare/storage"

	"github.com/gin-gonic/gin"
)

type Srv struct {
	Store     Store
	Repo      *db.Repo
	AppSess   *session.AppSessionStore
	Blobs     *storage.BlobStore
	WebOrigin string
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	repo := db.NewRepo(a.DB)
	return &Srv{
		Store:     repo,
		Repo:      repo,
		AppSess:   a.AppSessions(),
		Blobs:     storage.NewBlobStore(a.Config.MediaRoot),
		WebOrigin: a.Config.WebOrigin,
		Cfg:       a.Config,
	}
}

// --- helpers ---

// 统一错误映射：ValidationError→400，NotFound→404，其余→500
func respondErr(c *gin.Context, err error) {
	switch {
	case db.IsValidation(err):
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": "not found"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}

func currentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return "", false
	}
	uid, _ := v.(string)
	return uid, true
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return page, size
}

// 统一设置业务会话 Cookie
func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

func (s *Srv) clearAppCookie(w http.ResponseWriter) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
}

// fillImageURLs resolves stored blob paths against the request host.
func fillImageURLs(c *gin.Context, tools ...*models.Tool) {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	for _, t := range tools {
		if t == nil || t.ImagePath == "" {
			continue
		}
		t.ImageURL = scheme + "://" + c.Request.Host + "/media/" + t.ImagePath
	}
}
