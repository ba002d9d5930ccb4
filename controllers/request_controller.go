package controllers

import (
	"net/http"

	"toolshare/app"

	"github.com/gin-gonic/gin"
)

type RequestController struct{ *Srv }

func NewRequestController(s *Srv) *RequestController { return &RequestController{Srv: s} }

// POST /api/requests
func (rc *RequestController) CreateRequest(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var in struct {
		ToolID   string `json:"toolId" binding:"required"`
		Reason   string `json:"reason" binding:"required"`
		Duration int    `json:"duration" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	req, err := rc.Store.CreateRequest(c.Request.Context(), uid, in.ToolID, in.Reason, in.Duration)
	if err != nil {
		respondErr(c, err)
		return
	}
	if req.Tool != nil {
		fillImageURLs(c, req.Tool)
	}
	c.JSON(http.StatusCreated, req)
}

// GET /api/requests — 我发出的请求
func (rc *RequestController) ListMine(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	page, size := pageParams(c)
	res, err := rc.Store.ListMyRequests(c.Request.Context(), uid, page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	for i := range res.Requests {
		fillImageURLs(c, res.Requests[i].Tool)
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/requests/incoming — 我的工具收到的请求
func (rc *RequestController) ListIncoming(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	page, size := pageParams(c)
	res, err := rc.Store.ListIncomingRequests(c.Request.Context(), uid, page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	for i := range res.Requests {
		fillImageURLs(c, res.Requests[i].Tool)
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/requests/:id/approve
func (rc *RequestController) Approve(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	req, err := rc.Store.ApproveRequest(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "request approved successfully", "request": req})
}

// POST /api/requests/:id/reject
func (rc *RequestController) Reject(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	req, err := rc.Store.RejectRequest(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "request rejected successfully", "request": req})
}

// POST /api/requests/:id/returned
func (rc *RequestController) MarkReturned(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	req, err := rc.Store.MarkReturned(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "tool marked as returned successfully", "request": req})
}

// GET /api/requests/notifications
func (rc *RequestController) Notifications(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	counts, err := rc.Store.CountNotifications(c.Request.Context(), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// POST /api/requests/notifications/read
func (rc *RequestController) MarkNotificationsRead(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := rc.Store.MarkNotificationsRead(c.Request.Context(), uid); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "notifications marked as read"})
}

// GET /api/requests/stats
func (rc *RequestController) Stats(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	s, err := rc.Store.RequestStats(c.Request.Context(), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
