package auth

import (
	"context"
	"time"

	"vehicle-app/internal/model"
	"vehicle-app/internal/service"
)

// Authenticator *service.AuthService 實作此介面
type Authenticator interface {
	Register(ctx context.Context, in service.RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, time.Time, *model.User, error)
	CurrentUser(ctx context.Context, token string) (*model.User, error)
}

// FakeAuthenticator 測試用，未設定的方法被呼叫時 panic
type FakeAuthenticator struct {
	RegisterFn    func(ctx context.Context, in service.RegisterInput) (*model.User, error)
	LoginFn       func(ctx context.Context, email, password string) (string, time.Time, *model.User, error)
	CurrentUserFn func(ctx context.Context, token string) (*model.User, error)
}

func (f *FakeAuthenticator) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	if f.RegisterFn != nil {
		return f.RegisterFn(ctx, in)
	}
	panic("unexpected Register")
}

func (f *FakeAuthenticator) Login(ctx context.Context, email, password string) (string, time.Time, *model.User, error) {
	if f.LoginFn != nil {
		return f.LoginFn(ctx, email, password)
	}
	panic("unexpected Login")
}

func (f *FakeAuthenticator) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	if f.CurrentUserFn != nil {
		return f.CurrentUserFn(ctx, token)
	}
	panic("unexpected CurrentUser")
}
