package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/linemk/shop-api/internal/domain/models"
	security "github.com/linemk/shop-api/internal/jwt-new"
	"github.com/linemk/shop-api/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput — данные для регистрации пользователя
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6"`
	Address  string `json:"address" validate:"required,min=6"`
}

// LoginInput — учетные данные
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResult возвращается при успешном логине
type LoginResult struct {
	User  models.UserBrief `json:"user"`
	Token string           `json:"token"`
}

type AuthServiceInterface interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

type AuthService struct {
	log       *slog.Logger
	userRepo  storage.UserStorage
	tokenRepo storage.TokenStorage
	secret    string
	tokenTTL  time.Duration
}

var _ AuthServiceInterface = (*AuthService)(nil)

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, tokenRepo storage.TokenStorage, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		log:       log,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		secret:    secret,
		tokenTTL:  tokenTTL,
	}
}

// Register создаёт пользователя. Пароль хранится только в виде bcrypt-хэша.
// Дубликат email отдельно не проверяется: ошибка уникальности из БД
// возвращается как общая ошибка.
func (a *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	const op = "service.AuthService.Register"
	logger := a.log.With(slog.String("op", op), slog.String("email", in.Email))

	if verr := validateStruct(in); verr != nil {
		logger.Info("validation failed", slog.String("field", verr.Field))
		return nil, verr
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user, err := a.userRepo.CreateUser(ctx, &models.User{
		Name:     in.Name,
		Email:    in.Email,
		PassHash: passHash,
		Address:  in.Address,
	})
	if err != nil {
		logger.Error("failed to create user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	logger.Info("user registered", slog.Int64("userID", user.ID))
	return user, nil
}

// Login проверяет учетные данные и выпускает JWT-токен.
// При любой ошибке проверки возвращается ErrUnauthorized без данных пользователя.
func (a *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	const op = "service.AuthService.Login"
	logger := a.log.With(slog.String("op", op), slog.String("email", in.Email))
	logger.Info("checking user")

	if verr := validateStruct(in); verr != nil {
		logger.Info("validation failed", slog.String("field", verr.Field))
		return nil, verr
	}

	user, err := a.userRepo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Warn("user not found")
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(in.Password)); err != nil {
		logger.Warn("invalid password")
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	token, err := security.NewToken(user, a.secret, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.Int64("userID", user.ID))
	return &LoginResult{User: user.Brief(), Token: token}, nil
}

// Logout отзывает токен до истечения его срока. Повторный logout тем же
// токеном не доходит сюда: middleware отклоняет отозванный токен.
func (a *AuthService) Logout(ctx context.Context, token string) error {
	const op = "service.AuthService.Logout"
	logger := a.log.With(slog.String("op", op))

	claims, err := security.ParseToken(token, a.secret)
	if err != nil {
		logger.Warn("invalid token", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	jti, err := claims.TokenID()
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	userID, err := claims.UserID()
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	if err := a.tokenRepo.RevokeToken(ctx, jti, userID, claims.ExpiresAt.Time); err != nil {
		logger.Error("failed to revoke token", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("user logged out", slog.Int64("userID", userID))
	return nil
}

// CurrentUser разрешает токен в пользователя.
func (a *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	const op = "service.AuthService.CurrentUser"
	logger := a.log.With(slog.String("op", op))

	claims, err := security.ParseToken(token, a.secret)
	if err != nil {
		logger.Debug("invalid token", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	jti, err := claims.TokenID()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	revoked, err := a.tokenRepo.IsTokenRevoked(ctx, jti)
	if err != nil {
		logger.Error("failed to check token", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if revoked {
		logger.Debug("token revoked", slog.Int64("userID", userID))
		return nil, fmt.Errorf("%s: token revoked: %w", op, ErrUnauthorized)
	}

	user, err := a.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}
	return user, nil
}
