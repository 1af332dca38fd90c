package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnprocessable
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindConflict
)

func (k ErrorKind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// AppError 业务错误，Kind 决定 HTTP 状态码
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewUnprocessableError(message string) *AppError {
	return &AppError{Kind: KindUnprocessable, Message: message}
}

// NewNotFoundError 生成 "<resource> not found"
func NewNotFoundError(resource string) *AppError {
	return &AppError{Kind: KindNotFound, Message: resource + " not found"}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

var (
	ErrUserNotFound        = NewNotFoundError("User")
	ErrJobNotFound         = NewNotFoundError("Job")
	ErrApplicationNotFound = NewNotFoundError("Application")
	ErrTaskNotFound        = NewNotFoundError("Task")
	ErrTemplateNotFound    = NewNotFoundError("Task template")
	ErrAssignmentNotFound  = NewNotFoundError("Task assignment")
	ErrSubmissionNotFound  = NewNotFoundError("Task submission")

	ErrEmailRegistered    = NewConflictError("User already exists")
	ErrInvalidCredentials = &AppError{Kind: KindUnauthorized, Message: "Invalid credentials"}
	ErrInvalidToken       = &AppError{Kind: KindUnauthorized, Message: "Token is not valid"}
	ErrRoleMismatch       = NewForbiddenError("Access denied for this role")
	ErrInvalidAdminKey    = NewForbiddenError("Invalid admin key")
	ErrPermissionDenied   = NewForbiddenError("Access denied")
	ErrWrongPassword      = NewValidationError("Current password is incorrect")
	ErrDeleteSelf         = NewValidationError("You cannot delete your own account")

	ErrJobInactive        = NewValidationError("This job is no longer accepting applications")
	ErrJobHasApplications = NewConflictError("Job has applications, deactivate it instead")
	ErrAlreadyApplied     = NewConflictError("You have already applied for this job")
	ErrApplicationInUse   = NewConflictError("Application has assigned tasks and cannot be deleted")
	ErrTaskNumberTaken    = NewConflictError("Task number already exists")
	ErrTemplateInUse      = NewConflictError("Task template is already assigned and cannot be changed")
	ErrSubmissionExists   = NewConflictError("Task already submitted")
	ErrUserMismatch       = NewValidationError("User does not match the application")
)

// HandleError 统一把 service 层错误映射为 HTTP 响应
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		Error(c, appErr.Kind.Status(), appErr.Message)
		return
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		NotFound(c, "Resource not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		Error(c, http.StatusConflict, "Resource already exists")
	default:
		LogInternalError(c, err)
	}
}
