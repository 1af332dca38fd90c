package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"job_assessment_backend/internal/model"
	"job_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuth 令牌即用户 ID，角色取自 users
type fakeAuth struct {
	users map[string]*model.User
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (*util.Claims, *model.User, error) {
	if token == "db-down" {
		return nil, nil, errors.New("connection refused")
	}
	u, ok := f.users[token]
	if !ok {
		return nil, nil, util.ErrInvalidToken
	}
	// 令牌里的角色故意写成学生，中间件应以用户记录为准
	return &util.Claims{UserID: u.ID, Role: model.RoleStudent}, u, nil
}

func newFakeAuth() *fakeAuth {
	student := &model.User{Role: model.RoleStudent}
	student.ID = "student-1"
	admin := &model.User{Role: model.RoleAdmin}
	admin.ID = "admin-1"
	return &fakeAuth{users: map[string]*model.User{"student-1": student, "admin-1": admin}}
}

func newRouter(auth Authenticator) *gin.Engine {
	r := gin.New()
	ok := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": util.GetUserFromContext(c).UserID})
	}
	r.GET("/me", AuthMiddleware(auth), ok)
	r.GET("/admin", AuthMiddleware(auth), RoleMiddleware(model.RoleAdmin), ok)
	r.GET("/unguarded", RoleMiddleware(model.RoleAdmin), ok)
	return r
}

func do(r http.Handler, path, token string) (int, map[string]interface{}) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(newFakeAuth())

	code, body := do(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "No token, authorization denied", body["message"])

	code, body = do(r, "/me", "forged")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Token is not valid", body["message"])

	// 数据库故障不是令牌问题
	code, body = do(r, "/me", "db-down")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Server error", body["message"])

	code, body = do(r, "/me", "student-1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "student-1", body["userId"])

	// 查询参数中的 token 同样可用
	code, _ = do(r, "/me?token=student-1", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestRoleMiddleware(t *testing.T) {
	r := newRouter(newFakeAuth())

	code, body := do(r, "/admin", "student-1")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Access denied", body["message"])

	code, _ = do(r, "/admin", "admin-1")
	assert.Equal(t, http.StatusOK, code)

	code, body = do(r, "/unguarded", "admin-1")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Not authorized", body["message"])
}

type seenRecorder struct {
	mu   sync.Mutex
	seen []string
	done chan struct{}
}

func (s *seenRecorder) UpdateLastSeen(_ context.Context, userID string) error {
	s.mu.Lock()
	s.seen = append(s.seen, userID)
	s.mu.Unlock()
	close(s.done)
	return nil
}

func TestActivityMiddleware(t *testing.T) {
	rec := &seenRecorder{done: make(chan struct{})}
	r := gin.New()
	r.GET("/ping", AuthMiddleware(newFakeAuth()), ActivityMiddleware(rec), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	code, _ := do(r, "/ping", "student-1")
	assert.Equal(t, http.StatusNoContent, code)

	select {
	case <-rec.done:
	case <-time.After(time.Second):
		t.Fatal("last seen was not recorded")
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []string{"student-1"}, rec.seen)
}
