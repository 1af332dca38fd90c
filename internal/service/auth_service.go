package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"job_assessment_backend/internal/config"
	"job_assessment_backend/internal/model"
	"job_assessment_backend/internal/util"
	"job_assessment_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	Users    UserStore
	Config   *config.Config
	HashCost int
	Now      Clock
}

func NewAuthService(users UserStore, cfg *config.Config) *AuthService {
	return &AuthService{Users: users, Config: cfg, HashCost: bcrypt.DefaultCost}
}

type SignupRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	AdminKey string `json:"adminKey"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Signup(ctx context.Context, role model.UserRole, req SignupRequest) (*AuthResult, error) {
	if role == model.RoleAdmin {
		if key := s.Config.Auth.AdminSignupKey; key != "" && req.AdminKey != key {
			return nil, util.ErrInvalidAdminKey
		}
	}

	email := normalizeEmail(req.Email)
	if _, err := s.Users.FindByEmail(ctx, email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !isNotFound(err) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.HashCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FullName: strings.TrimSpace(req.FullName),
		Email:    email,
		Password: string(hashed),
		Role:     role,
		Phone:    strings.TrimSpace(req.Phone),
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrEmailRegistered
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Log.Info("user registered", zap.String("userId", user.ID), zap.String("role", string(role)))
	return s.issue(user)
}

// Login 角色与登录入口不一致时返回 403
func (s *AuthService) Login(ctx context.Context, role model.UserRole, req LoginRequest) (*AuthResult, error) {
	user, err := s.Users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, util.ErrInvalidCredentials
	}
	if user.Role != role {
		return nil, util.ErrRoleMismatch
	}

	now := s.Now.Now()
	if err := s.Users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.Log.Warn("update last login failed", zap.String("userId", user.ID), zap.Error(err))
	} else {
		user.LastLogin = &now
	}
	return s.issue(user)
}

// Authenticate 校验令牌并确认用户仍然存在。只有令牌无效或用户不存在时返回 ErrInvalidToken
func (s *AuthService) Authenticate(ctx context.Context, token string) (*util.Claims, *model.User, error) {
	claims, err := util.ParseJWT(token, s.Config.JWT.Secret)
	if err != nil {
		return nil, nil, util.ErrInvalidToken
	}
	user, err := s.Users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, util.ErrInvalidToken
		}
		return nil, nil, fmt.Errorf("load token user: %w", err)
	}
	return claims, user, nil
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := util.GenerateJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
