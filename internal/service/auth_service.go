package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/config"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/dto"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/repository"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/pkg/jwt"
	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserNotFound       = errors.New("账号不存在")
	ErrOldPasswordWrong   = errors.New("原密码不正确")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询账号
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询账号失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	personID := ""
	if user.PersonID != nil {
		personID = *user.PersonID
	}

	// 3. 生成 Token 对
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role, personID)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role, personID, req.RememberMe)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User: dto.UserResponse{
			ID:                 user.UserID,
			Username:           user.Username,
			Email:              user.Email,
			Role:               user.Role,
			PersonID:           personID,
			MustChangePassword: user.MustChangePassword,
		},
	}, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return nil, ErrInvalidCredentials
	}

	// 已登出的 refresh token 不可续签
	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err == nil && blacklisted {
			return nil, ErrInvalidCredentials
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询账号失败", zap.Error(err))
		return nil, err
	}

	personID := ""
	if user.PersonID != nil {
		personID = *user.PersonID
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role, personID)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role, personID, false)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User: dto.UserResponse{
			ID:                 user.UserID,
			Username:           user.Username,
			Email:              user.Email,
			Role:               user.Role,
			PersonID:           personID,
			MustChangePassword: user.MustChangePassword,
		},
	}, nil
}

// Logout 将当前 Access Token 的 JTI 加入黑名单
// Redis 不可用时降级为无状态登出（Token 到期自然失效）
func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询账号失败", zap.Error(err))
		return nil, err
	}

	personID := ""
	if user.PersonID != nil {
		personID = *user.PersonID
	}

	return &dto.UserResponse{
		ID:                 user.UserID,
		Username:           user.Username,
		Email:              user.Email,
		Role:               user.Role,
		PersonID:           personID,
		MustChangePassword: user.MustChangePassword,
	}, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询账号失败", zap.Error(err))
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrOldPasswordWrong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("生成密码哈希失败", zap.Error(err))
		return err
	}

	return s.repo.User.UpdatePassword(ctx, userID, string(hash))
}
