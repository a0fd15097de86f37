package identity

import (
	"context"
	"sync"

	"github.com/heartmarshall/equitybridge-backend/internal/auth"
	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

//go:generate moq -out mocks_test.go -pkg identity . principalVerifier clientRepo

var _ principalVerifier = &principalVerifierMock{}

type principalVerifierMock struct {
	VerifyFunc func(ctx context.Context, token string) (auth.Principal, error)

	calls struct {
		Verify []struct {
			Ctx   context.Context
			Token string
		}
	}
	lockVerify sync.RWMutex
}

func (mock *principalVerifierMock) Verify(ctx context.Context, token string) (auth.Principal, error) {
	if mock.VerifyFunc == nil {
		panic("principalVerifierMock.VerifyFunc: method is nil but principalVerifier.Verify was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{Ctx: ctx, Token: token}
	mock.lockVerify.Lock()
	mock.calls.Verify = append(mock.calls.Verify, callInfo)
	mock.lockVerify.Unlock()
	return mock.VerifyFunc(ctx, token)
}

func (mock *principalVerifierMock) VerifyCalls() []struct {
	Ctx   context.Context
	Token string
} {
	mock.lockVerify.RLock()
	calls := mock.calls.Verify
	mock.lockVerify.RUnlock()
	return calls
}

var _ clientRepo = &clientRepoMock{}

type clientRepoMock struct {
	GetByPrincipalFunc func(ctx context.Context, principalID string) (*domain.Client, error)
	CreateFunc         func(ctx context.Context, c *domain.Client) (*domain.Client, error)

	calls struct {
		GetByPrincipal []struct {
			Ctx         context.Context
			PrincipalID string
		}
		Create []struct {
			Ctx context.Context
			C   *domain.Client
		}
	}
	lockGetByPrincipal sync.RWMutex
	lockCreate         sync.RWMutex
}

func (mock *clientRepoMock) GetByPrincipal(ctx context.Context, principalID string) (*domain.Client, error) {
	if mock.GetByPrincipalFunc == nil {
		panic("clientRepoMock.GetByPrincipalFunc: method is nil but clientRepo.GetByPrincipal was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		PrincipalID string
	}{Ctx: ctx, PrincipalID: principalID}
	mock.lockGetByPrincipal.Lock()
	mock.calls.GetByPrincipal = append(mock.calls.GetByPrincipal, callInfo)
	mock.lockGetByPrincipal.Unlock()
	return mock.GetByPrincipalFunc(ctx, principalID)
}

func (mock *clientRepoMock) GetByPrincipalCalls() []struct {
	Ctx         context.Context
	PrincipalID string
} {
	mock.lockGetByPrincipal.RLock()
	calls := mock.calls.GetByPrincipal
	mock.lockGetByPrincipal.RUnlock()
	return calls
}

func (mock *clientRepoMock) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	if mock.CreateFunc == nil {
		panic("clientRepoMock.CreateFunc: method is nil but clientRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   *domain.Client
	}{Ctx: ctx, C: c}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *clientRepoMock) CreateCalls() []struct {
	Ctx context.Context
	C   *domain.Client
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
