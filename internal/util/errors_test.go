package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runHandleError(err error) (int, ErrorResponse) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	HandleError(c, err)

	var body ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

func TestHandleError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found sentinel", ErrJobNotFound, http.StatusNotFound, "Job not found"},
		{"wrapped conflict", fmt.Errorf("submit: %w", ErrSubmissionExists), http.StatusConflict, "Task already submitted"},
		{"validation", NewValidationError("Title is required"), http.StatusBadRequest, "Title is required"},
		{"unauthorized", ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"forbidden", ErrPermissionDenied, http.StatusForbidden, "Access denied"},
		{"gorm not found", gorm.ErrRecordNotFound, http.StatusNotFound, "Resource not found"},
		{"gorm duplicate", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), http.StatusConflict, "Resource already exists"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "Server error"},
		{"internal app error", NewInternalError("save", errors.New("disk")), http.StatusInternalServerError, "Server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := runHandleError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.msg, body.Message)
		})
	}
}

func TestHandleError_InternalCarriesDetail(t *testing.T) {
	_, body := runHandleError(errors.New("connection refused"))
	require.Equal(t, "connection refused", body.Error)
}

func TestAppErrorUnwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := NewInternalError("save template", inner)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "save template: disk full", err.Error())
}
