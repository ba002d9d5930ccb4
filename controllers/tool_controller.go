package controllers

import (
	"net/http"

	"toolshare/app"
	"toolshare/models"
	"toolshare/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ToolController struct{ *Srv }

func NewToolController(s *Srv) *ToolController { return &ToolController{Srv: s} }

type toolInput struct {
	Name      string `json:"name" binding:"required"`
	Category  string `json:"category" binding:"required"`
	Condition string `json:"condition" binding:"required"`
}

// POST /api/tools
func (tc *ToolController) CreateTool(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var in toolInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	t := &models.Tool{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Category:    models.Category(in.Category),
		Condition:   models.Condition(in.Condition),
		IsAvailable: true,
		OwnerID:     uid,
	}
	if err := tc.Store.CreateTool(c.Request.Context(), t); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// GET /api/tools — 别人的可借工具，分页
func (tc *ToolController) ListAvailable(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	page, size := pageParams(c)
	res, err := tc.Store.ListAvailableTools(c.Request.Context(), uid, page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	for i := range res.Tools {
		fillImageURLs(c, &res.Tools[i])
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/tools/mine
func (tc *ToolController) ListMine(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	tools, err := tc.Store.ListToolsByOwner(c.Request.Context(), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	for i := range tools {
		fillImageURLs(c, &tools[i])
	}
	c.JSON(http.StatusOK, app.H{"tools": tools})
}

// GET /api/tools/:id — 仅限 owner，其他人 404
func (tc *ToolController) GetTool(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	t, err := tc.Store.GetOwnedTool(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	fillImageURLs(c, t)
	c.JSON(http.StatusOK, t)
}

// PUT /api/tools/:id
func (tc *ToolController) UpdateTool(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	var in toolInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	t, err := tc.Store.GetOwnedTool(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	t.Name = in.Name
	t.Category = models.Category(in.Category)
	t.Condition = models.Condition(in.Condition)
	if err := tc.Store.UpdateTool(c.Request.Context(), t); err != nil {
		respondErr(c, err)
		return
	}
	fillImageURLs(c, t)
	c.JSON(http.StatusOK, t)
}

// DELETE /api/tools/:id — 连带释放图片 blob
func (tc *ToolController) DeleteTool(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	t, err := tc.Store.DeleteOwnedTool(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	if err := tc.Blobs.Remove(t.ImagePath); err != nil {
		// 行已删，文件残留只记日志
		c.JSON(http.StatusOK, app.H{"message": "tool deleted, image cleanup failed"})
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "tool deleted successfully"})
}

// PUT /api/tools/:id/image — multipart 上传，旧图释放
func (tc *ToolController) UploadImage(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing image file"})
		return
	}
	src, err := fh.Open()
	if err != nil {
		respondErr(c, err)
		return
	}
	defer src.Close()

	path := storage.ToolImagePath(uid, fh.Filename)
	if _, err := tc.Blobs.Save(path, src); err != nil {
		respondErr(c, err)
		return
	}

	old, err := tc.Store.SetToolImage(c.Request.Context(), c.Param("id"), uid, path)
	if err != nil {
		_ = tc.Blobs.Remove(path)
		respondErr(c, err)
		return
	}
	if old != "" && old != path {
		_ = tc.Blobs.Remove(old)
	}

	t, err := tc.Store.GetOwnedTool(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	fillImageURLs(c, t)
	c.JSON(http.StatusOK, t)
}

// GET /api/tools/stats
func (tc *ToolController) Stats(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	s, err := tc.Store.ToolStats(c.Request.Context(), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
