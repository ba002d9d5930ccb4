package controllers

import (
	"errors"
	"net/http"

	"toolshare/app"
	"toolshare/db"
	"toolshare/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

// POST /api/auth/signup
func (ac *AuthController) Signup(c *gin.Context) {
	var in struct {
		Username    string `json:"username" binding:"required"`
		DisplayName string `json:"displayName" binding:"required"`
		Password    string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	if _, err := ac.Store.FindUserByUsername(c.Request.Context(), in.Username); err == nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "username already taken"})
		return
	} else if !errors.Is(err, db.ErrNotFound) {
		respondErr(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		respondErr(c, err)
		return
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		DisplayName:  in.DisplayName,
		PasswordHash: hash,
	}
	if err := ac.Store.CreateUser(c.Request.Context(), u); err != nil {
		respondErr(c, err)
		return
	}

	if err := ac.issueSession(c, u.ID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"user": u})
}

// POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	u, err := ac.Store.FindUserByUsername(c.Request.Context(), in.Username)
	if err != nil {
		// 不区分用户不存在和密码错误
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(in.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}

	if err := ac.issueSession(c, u.ID); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}

// 登录成功：创建会话 + 触发登录快照
func (ac *AuthController) issueSession(c *gin.Context, userID string) error {
	_ = ac.Store.TouchUserLogin(c.Request.Context(), userID) // 忽略错误，不阻塞登录
	id := uuid.NewString()
	if err := ac.AppSess.Create(c.Request.Context(), id, userID); err != nil {
		return err
	}
	ac.setAppCookie(c.Writer, id, ac.Cfg.SessionTTL)
	return nil
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.AppSess.Delete(c.Request.Context(), ck.Value)
	}
	ac.clearAppCookie(c.Writer)
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// GET /api/auth/whoami
func (ac *AuthController) Whoami(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	u, err := ac.Store.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}
