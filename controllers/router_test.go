package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"toolshare/controllers"
	"toolshare/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testUserID = "11111111-1111-1111-1111-111111111111"

// newTestRouter wires the controllers behind a stub auth middleware
// that injects a fixed caller.
func newTestRouter(t *testing.T, store controllers.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &controllers.Srv{
		Store: store,
		Blobs: storage.NewBlobStore(t.TempDir()),
	}
	authCtl := controllers.NewAuthController(s)
	toolCtl := controllers.NewToolController(s)
	reqCtl := controllers.NewRequestController(s)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", testUserID)
		c.Set("username", "alice")
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", authCtl.Signup)
		auth.POST("/login", authCtl.Login)
	}
	tools := r.Group("/api/tools")
	{
		tools.GET("", toolCtl.ListAvailable)
		tools.POST("", toolCtl.CreateTool)
		tools.GET("/mine", toolCtl.ListMine)
		tools.GET("/stats", toolCtl.Stats)
		tools.GET("/:id", toolCtl.GetTool)
		tools.PUT("/:id", toolCtl.UpdateTool)
		tools.DELETE("/:id", toolCtl.DeleteTool)
	}
	requests := r.Group("/api/requests")
	{
		requests.GET("", reqCtl.ListMine)
		requests.POST("", reqCtl.CreateRequest)
		requests.GET("/incoming", reqCtl.ListIncoming)
		requests.GET("/stats", reqCtl.Stats)
		requests.GET("/notifications", reqCtl.Notifications)
		requests.POST("/notifications/read", reqCtl.MarkNotificationsRead)
		requests.POST("/:id/approve", reqCtl.Approve)
		requests.POST("/:id/reject", reqCtl.Reject)
		requests.POST("/:id/returned", reqCtl.MarkReturned)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}
