package user

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/muhammadheryan/marketplace/cmd/config"
	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	redisrepo "github.com/muhammadheryan/marketplace/repository/redis"
	"github.com/muhammadheryan/marketplace/repository/sqlerr"
	userrepo "github.com/muhammadheryan/marketplace/repository/user"
	"github.com/muhammadheryan/marketplace/utils/errors"
	"github.com/muhammadheryan/marketplace/utils/logger"
	validatorx "github.com/muhammadheryan/marketplace/utils/validator"
	"go.uber.org/zap"
)

type UserApp interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.UserEntity, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (*model.Identity, error)
	Logout(ctx context.Context, sessionID string) error
	GetProfile(ctx context.Context, userID uint64) (*model.UserEntity, error)
	UpdateProfile(ctx context.Context, userID uint64, req *model.UpdateProfileRequest) (*model.UserEntity, error)
	DeleteAccount(ctx context.Context, userID uint64) error
	ChangePassword(ctx context.Context, userID uint64, req *model.ChangePasswordRequest) error
}

type UserAppImpl struct {
	config      *config.Config
	credentials *Credentials
	userRepo    userrepo.UserRepository
	redisRepo   redisrepo.Repository
}

func NewUserApp(config *config.Config, userRepo userrepo.UserRepository, redisRepo redisrepo.Repository) UserApp {
	return &UserAppImpl{
		config:      config,
		credentials: NewCredentials(config.Auth),
		userRepo:    userRepo,
		redisRepo:   redisRepo,
	}
}

func (s *UserAppImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.UserEntity, error) {
	input := model.RegisterRequest{
		Name:     strings.TrimSpace(req.Name),
		Email:    normalizeEmail(req.Email),
		Password: req.Password,
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest).WithMessage("Name, email and password are required")
	}
	if err := validatorx.ValidateStruct(&input); err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest).WithMessage(validatorx.Describe(err))
	}
	if len(input.Password) > MaxPasswordBytes {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest).WithMessage("password must be at most 72 bytes")
	}

	existingUser, err := s.userRepo.Get(ctx, &model.UserFilter{Email: input.Email})
	if err != nil {
		logger.Error("[Register] err userRepo.Get email", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}
	if existingUser != nil {
		return nil, errors.SetCustomError(constant.ErrCredentialExists)
	}

	hashedPassword, err := s.credentials.Hash(input.Password)
	if err != nil {
		logger.Error("[Register] err credentials.Hash", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	userEntity, err := s.userRepo.Create(ctx, &model.UserEntity{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		// lost the race against a concurrent registration
		if sqlerr.IsDuplicate(err) {
			return nil, errors.SetCustomError(constant.ErrCredentialExists)
		}
		logger.Error("[Register] err userRepo.Create", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}

	userEntity.PasswordHash = ""
	return userEntity, nil
}

func (s *UserAppImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest).WithMessage("Email and password are required")
	}
	if !validatorx.IsEmail(email) {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest).WithMessage("Invalid email format")
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{Email: email})
	if err != nil {
		logger.Error("[Login] err userRepo.Get", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrInvalidCredentials)
	}

	if !user.IsActive {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	if !s.credentials.Verify(req.Password, user.PasswordHash) {
		return nil, errors.SetCustomError(constant.ErrInvalidCredentials)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Error("[Login] err userRepo.UpdateLastLogin", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}

	token, claims, err := s.credentials.IssueToken(user.ID, user.Email)
	if err != nil {
		logger.Error("[Login] err credentials.IssueToken", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// Store session in Redis
	err = s.redisRepo.SetSession(ctx, claims.ID, user.ID, s.sessionTTL())
	if err != nil {
		logger.Error("[Login] err SetSession", zap.String("error", err.Error()))
		return nil, redisrepo.AsCustomError(err)
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	user.PasswordHash = ""

	return &model.LoginResponse{
		Token: token,
		User:  user,
	}, nil
}

// ValidateToken verifies the bearer token and that its session is still registered.
func (s *UserAppImpl) ValidateToken(ctx context.Context, tokenString string) (*model.Identity, error) {
	userID, claims, err := s.credentials.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	redisUserID, err := s.redisRepo.GetSession(ctx, claims.ID)
	if err != nil {
		if goerrors.Is(err, redisrepo.ErrSessionNotFound) {
			return nil, fmt.Errorf("invalid or expired session")
		}
		logger.Error("[ValidateToken] err GetSession", zap.String("error", err.Error()))
		return nil, redisrepo.AsCustomError(err)
	}

	if redisUserID != userID {
		return nil, fmt.Errorf("token does not match user session")
	}

	return &model.Identity{
		UserID:    userID,
		Email:     claims.Email,
		SessionID: claims.ID,
	}, nil
}

func (s *UserAppImpl) Logout(ctx context.Context, sessionID string) error {
	if err := s.redisRepo.DeleteSession(ctx, sessionID); err != nil {
		logger.Error("[Logout] err DeleteSession", zap.String("error", err.Error()))
		return redisrepo.AsCustomError(err)
	}
	return nil
}

func (s *UserAppImpl) GetProfile(ctx context.Context, userID uint64) (*model.UserEntity, error) {
	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		logger.Error("[GetProfile] err userRepo.Get", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}
	if user == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound).WithMessage("User not found")
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *UserAppImpl) UpdateProfile(ctx context.Context, userID uint64, req *model.UpdateProfileRequest) (*model.UserEntity, error) {
	update := &model.UserUpdate{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errors.SetCustomError(constant.ErrInvalidRequest).WithMessage("name cannot be empty")
		}
		update.Name = &name
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if !validatorx.IsEmail(email) {
			return nil, errors.SetCustomError(constant.ErrInvalidRequest).WithMessage("Invalid email format")
		}

		existingUser, err := s.userRepo.Get(ctx, &model.UserFilter{Email: email})
		if err != nil {
			logger.Error("[UpdateProfile] err userRepo.Get email", zap.String("error", err.Error()))
			return nil, sqlerr.AsCustomError(err)
		}
		if existingUser != nil && existingUser.ID != userID {
			return nil, errors.SetCustomError(constant.ErrCredentialExists)
		}
		update.Email = &email
	}

	if update.Name == nil && update.Email == nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest).WithMessage("No fields to update")
	}

	if err := s.userRepo.Update(ctx, userID, update); err != nil {
		if sqlerr.IsDuplicate(err) {
			return nil, errors.SetCustomError(constant.ErrCredentialExists)
		}
		logger.Error("[UpdateProfile] err userRepo.Update", zap.String("error", err.Error()))
		return nil, sqlerr.AsCustomError(err)
	}

	return s.GetProfile(ctx, userID)
}

// DeleteAccount revokes every session of the user, then removes the user.
func (s *UserAppImpl) DeleteAccount(ctx context.Context, userID uint64) error {
	if err := s.redisRepo.DeleteUserSessions(ctx, userID); err != nil {
		logger.Error("[DeleteAccount] err DeleteUserSessions", zap.String("error", err.Error()))
		return redisrepo.AsCustomError(err)
	}

	deleted, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		logger.Error("[DeleteAccount] err userRepo.Delete", zap.String("error", err.Error()))
		return sqlerr.AsCustomError(err)
	}
	if !deleted {
		return errors.SetCustomError(constant.ErrNotFound).WithMessage("User not found")
	}
	return nil
}

func (s *UserAppImpl) ChangePassword(ctx context.Context, userID uint64, req *model.ChangePasswordRequest) error {
	if err := validatorx.ValidateStruct(req); err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest).WithMessage(validatorx.Describe(err))
	}
	if len(req.NewPassword) > MaxPasswordBytes {
		return errors.SetCustomError(constant.ErrInvalidRequest).WithMessage("newPassword must be at most 72 bytes")
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: userID})
	if err != nil {
		logger.Error("[ChangePassword] err userRepo.Get", zap.String("error", err.Error()))
		return sqlerr.AsCustomError(err)
	}
	if user == nil {
		return errors.SetCustomError(constant.ErrNotFound).WithMessage("User not found")
	}

	// 400 rather than 401 so clients keep their session
	if !s.credentials.Verify(req.CurrentPassword, user.PasswordHash) {
		return errors.SetCustomError(constant.ErrInvalidRequest).WithMessage("Current password is incorrect")
	}

	hashedPassword, err := s.credentials.Hash(req.NewPassword)
	if err != nil {
		logger.Error("[ChangePassword] err credentials.Hash", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.userRepo.Update(ctx, userID, &model.UserUpdate{PasswordHash: &hashedPassword}); err != nil {
		logger.Error("[ChangePassword] err userRepo.Update", zap.String("error", err.Error()))
		return sqlerr.AsCustomError(err)
	}
	return nil
}

func (s *UserAppImpl) sessionTTL() time.Duration {
	if s.config.Auth.SessionExpTime > 0 {
		return s.config.Auth.SessionExpTime
	}
	return s.credentials.expiry
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
