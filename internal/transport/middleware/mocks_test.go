package middleware

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/equitybridge-backend/internal/auth"
)

//go:generate moq -out mocks_test.go -pkg middleware . authenticator clientResolver

type authenticatorMock struct {
	AuthenticateFunc func(ctx context.Context, token string) (auth.Principal, error)

	calls struct {
		Authenticate []struct {
			Ctx   context.Context
			Token string
		}
	}
	lockAuthenticate sync.RWMutex
}

func (mock *authenticatorMock) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	if mock.AuthenticateFunc == nil {
		panic("authenticatorMock.AuthenticateFunc: method is nil but authenticator.Authenticate was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{Ctx: ctx, Token: token}
	mock.lockAuthenticate.Lock()
	mock.calls.Authenticate = append(mock.calls.Authenticate, callInfo)
	mock.lockAuthenticate.Unlock()
	return mock.AuthenticateFunc(ctx, token)
}

func (mock *authenticatorMock) AuthenticateCalls() []struct {
	Ctx   context.Context
	Token string
} {
	mock.lockAuthenticate.RLock()
	defer mock.lockAuthenticate.RUnlock()
	return mock.calls.Authenticate
}

type clientResolverMock struct {
	ResolveClientFunc func(ctx context.Context, p auth.Principal) (uuid.UUID, error)

	calls struct {
		ResolveClient []struct {
			Ctx context.Context
			P   auth.Principal
		}
	}
	lockResolveClient sync.RWMutex
}

func (mock *clientResolverMock) ResolveClient(ctx context.Context, p auth.Principal) (uuid.UUID, error) {
	if mock.ResolveClientFunc == nil {
		panic("clientResolverMock.ResolveClientFunc: method is nil but clientResolver.ResolveClient was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   auth.Principal
	}{Ctx: ctx, P: p}
	mock.lockResolveClient.Lock()
	mock.calls.ResolveClient = append(mock.calls.ResolveClient, callInfo)
	mock.lockResolveClient.Unlock()
	return mock.ResolveClientFunc(ctx, p)
}

func (mock *clientResolverMock) ResolveClientCalls() []struct {
	Ctx context.Context
	P   auth.Principal
} {
	mock.lockResolveClient.RLock()
	defer mock.lockResolveClient.RUnlock()
	return mock.calls.ResolveClient
}
