package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/samber/oops"

	"vehicle-app/internal/model"
	"vehicle-app/internal/store"
)

// UserStore 為 AuthService 所需的使用者存取介面，*store.UserStore 實作此介面
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int) (*model.User, error)
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	IsAdmin  bool
}

type AuthService struct {
	users            UserStore
	hasher           PasswordHasher
	tokens           *TokenService
	allowAdminSignup bool
}

func NewAuthService(users UserStore, hasher PasswordHasher, tokens *TokenService, allowAdminSignup bool) *AuthService {
	return &AuthService{
		users:            users,
		hasher:           hasher,
		tokens:           tokens,
		allowAdminSignup: allowAdminSignup,
	}
}

func (s *AuthService) Tokens() *TokenService { return s.tokens }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register 建立使用者；allowAdminSignup 為 false 時忽略 IsAdmin
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, oops.Code(CodeValidation).Public("Invalid password").Wrap(err)
	}

	u := &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: hash,
		IsAdmin:      in.IsAdmin && s.allowAdminSignup,
	}
	created, err := s.users.CreateUser(ctx, u)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return nil, oops.Code(CodePersistence).
				Public("Failed to register user: email already in use").
				With("email", u.Email).
				Wrap(err)
		}
		return nil, oops.Code(CodePersistence).Public("Failed to register user").Wrap(err)
	}
	return created, nil
}

// Login 驗證帳密並簽發 token；帳號不存在與密碼錯誤回傳相同訊息
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, *model.User, error) {
	invalid := oops.Code(CodeInvalidCredentials).Public("Invalid Credentials")

	u, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", time.Time{}, nil, invalid.Errorf("unknown email")
		}
		return "", time.Time{}, nil, oops.Code(CodePersistence).Public("Failed to login").Wrap(err)
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return "", time.Time{}, nil, invalid.With("user_id", u.ID).Errorf("password mismatch")
	}

	token, exp, err := s.tokens.Issue(u)
	if err != nil {
		return "", time.Time{}, nil, err
	}
	return token, exp, u, nil
}

// CurrentUser 由 token 取得使用者，任何失敗都視為未驗證
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, oops.Code(CodeUnauthenticated).Public("Unauthenticated").With("user_id", claims.UserID).Wrap(err)
	}
	return u, nil
}
