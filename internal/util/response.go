package util

import (
	"net/http"

	"job_assessment_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse 失败响应结构
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Success 读取类接口直接返回资源本身
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 返回 {message, <key>: resource}
func Created(c *gin.Context, message, key string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"message": message, key: data})
}

// Updated 修改类接口返回 {message, <key>: resource}
func Updated(c *gin.Context, message, key string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"message": message, key: data})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Message: message})
}

func ErrorWithDetail(c *gin.Context, code int, message, detail string) {
	c.JSON(code, ErrorResponse{Message: message, Error: detail})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Not authorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Access denied")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// InvalidBody 请求体绑定失败
func InvalidBody(c *gin.Context, err error) {
	ErrorWithDetail(c, http.StatusBadRequest, "Invalid request body", err.Error())
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context, err error) {
	ErrorWithDetail(c, http.StatusInternalServerError, "Server error", err.Error())
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	InternalServerError(c, err)
}
