package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"job_assessment_backend/internal/model"
	"job_assessment_backend/internal/repository"
	"job_assessment_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*model.User, error)
	List(ctx context.Context, filter repository.UserFilter) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	UpdateLastSeen(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type UserService struct {
	Users    UserStore
	HashCost int
	Now      Clock
}

func NewUserService(users UserStore) *UserService {
	return &UserService{Users: users, HashCost: bcrypt.DefaultCost}
}

type ProfileUpdateRequest struct {
	FullName   *string             `json:"fullName"`
	Phone      *string             `json:"phone"`
	Skills     *[]string           `json:"skills"`
	Education  *[]model.Education  `json:"education"`
	Experience *[]model.Experience `json:"experience"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func (s *UserService) GetProfile(ctx context.Context, id string) (*model.User, error) {
	user, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, req ProfileUpdateRequest) (*model.User, error) {
	user, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrUserNotFound)
	}

	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, util.NewValidationError("Full name cannot be empty")
		}
		user.FullName = name
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Skills != nil {
		user.Skills = util.CompactStrings(*req.Skills)
	}
	if req.Education != nil {
		user.Education = cleanEducation(*req.Education)
	}
	if req.Experience != nil {
		user.Experience = cleanExperience(*req.Experience)
	}
	user.ProfileCompleted = len(user.Skills) > 0 && len(user.Education) > 0

	if err := s.Users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, id string, req ChangePasswordRequest) error {
	user, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return notFound(err, util.ErrUserNotFound)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
		return util.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.HashCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.Users.Update(ctx, user)
}

func (s *UserService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]model.User, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, util.NewValidationError("Invalid role filter")
	}
	return s.Users.List(ctx, filter)
}

// DeleteUser 管理员不能删除自己，其投递记录保留快照
func (s *UserService) DeleteUser(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return util.ErrDeleteSelf
	}
	if _, err := s.Users.FindByID(ctx, id); err != nil {
		return notFound(err, util.ErrUserNotFound)
	}
	return notFound(s.Users.Delete(ctx, id), util.ErrUserNotFound)
}

func (s *UserService) UpdateLastSeen(ctx context.Context, id string) error {
	return s.Users.UpdateLastSeen(ctx, id, s.Now.Now())
}
