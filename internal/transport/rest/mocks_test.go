package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/equitybridge-backend/internal/auth"
	"github.com/heartmarshall/equitybridge-backend/internal/domain"
	"github.com/heartmarshall/equitybridge-backend/internal/service/funding"
	"github.com/heartmarshall/equitybridge-backend/internal/service/identity"
)

//go:generate moq -out mocks_test.go -pkg rest . profileService fundingService identityService

type profileServiceMock struct {
	CreateOrGetProfileFunc func(ctx context.Context, p auth.Principal, input identity.ProfileInput) (*domain.Client, bool, error)
	GetProfileFunc         func(ctx context.Context, p auth.Principal) (*domain.Client, error)

	calls struct {
		CreateOrGetProfile []struct {
			Ctx   context.Context
			P     auth.Principal
			Input identity.ProfileInput
		}
		GetProfile []struct {
			Ctx context.Context
			P   auth.Principal
		}
	}
	lockCreateOrGetProfile sync.RWMutex
	lockGetProfile         sync.RWMutex
}

func (mock *profileServiceMock) CreateOrGetProfile(ctx context.Context, p auth.Principal, input identity.ProfileInput) (*domain.Client, bool, error) {
	if mock.CreateOrGetProfileFunc == nil {
		panic("profileServiceMock.CreateOrGetProfileFunc: method is nil but profileService.CreateOrGetProfile was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		P     auth.Principal
		Input identity.ProfileInput
	}{Ctx: ctx, P: p, Input: input}
	mock.lockCreateOrGetProfile.Lock()
	mock.calls.CreateOrGetProfile = append(mock.calls.CreateOrGetProfile, callInfo)
	mock.lockCreateOrGetProfile.Unlock()
	return mock.CreateOrGetProfileFunc(ctx, p, input)
}

func (mock *profileServiceMock) CreateOrGetProfileCalls() []struct {
	Ctx   context.Context
	P     auth.Principal
	Input identity.ProfileInput
} {
	mock.lockCreateOrGetProfile.RLock()
	defer mock.lockCreateOrGetProfile.RUnlock()
	return mock.calls.CreateOrGetProfile
}

func (mock *profileServiceMock) GetProfile(ctx context.Context, p auth.Principal) (*domain.Client, error) {
	if mock.GetProfileFunc == nil {
		panic("profileServiceMock.GetProfileFunc: method is nil but profileService.GetProfile was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   auth.Principal
	}{Ctx: ctx, P: p}
	mock.lockGetProfile.Lock()
	mock.calls.GetProfile = append(mock.calls.GetProfile, callInfo)
	mock.lockGetProfile.Unlock()
	return mock.GetProfileFunc(ctx, p)
}

func (mock *profileServiceMock) GetProfileCalls() []struct {
	Ctx context.Context
	P   auth.Principal
} {
	mock.lockGetProfile.RLock()
	defer mock.lockGetProfile.RUnlock()
	return mock.calls.GetProfile
}

type fundingServiceMock struct {
	SubmitFunc func(ctx context.Context, input funding.SubmitInput) (*funding.SubmitResult, error)
	ListFunc   func(ctx context.Context, input funding.ListInput) ([]domain.FundingRequestSummary, error)
	GetFunc    func(ctx context.Context, id uuid.UUID) (*domain.FundingRequest, error)

	calls struct {
		Submit []struct {
			Ctx   context.Context
			Input funding.SubmitInput
		}
		List []struct {
			Ctx   context.Context
			Input funding.ListInput
		}
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockSubmit sync.RWMutex
	lockList   sync.RWMutex
	lockGet    sync.RWMutex
}

func (mock *fundingServiceMock) Submit(ctx context.Context, input funding.SubmitInput) (*funding.SubmitResult, error) {
	if mock.SubmitFunc == nil {
		panic("fundingServiceMock.SubmitFunc: method is nil but fundingService.Submit was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input funding.SubmitInput
	}{Ctx: ctx, Input: input}
	mock.lockSubmit.Lock()
	mock.calls.Submit = append(mock.calls.Submit, callInfo)
	mock.lockSubmit.Unlock()
	return mock.SubmitFunc(ctx, input)
}

func (mock *fundingServiceMock) SubmitCalls() []struct {
	Ctx   context.Context
	Input funding.SubmitInput
} {
	mock.lockSubmit.RLock()
	defer mock.lockSubmit.RUnlock()
	return mock.calls.Submit
}

func (mock *fundingServiceMock) List(ctx context.Context, input funding.ListInput) ([]domain.FundingRequestSummary, error) {
	if mock.ListFunc == nil {
		panic("fundingServiceMock.ListFunc: method is nil but fundingService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input funding.ListInput
	}{Ctx: ctx, Input: input}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *fundingServiceMock) ListCalls() []struct {
	Ctx   context.Context
	Input funding.ListInput
} {
	mock.lockList.RLock()
	defer mock.lockList.RUnlock()
	return mock.calls.List
}

func (mock *fundingServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.FundingRequest, error) {
	if mock.GetFunc == nil {
		panic("fundingServiceMock.GetFunc: method is nil but fundingService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *fundingServiceMock) GetCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGet.RLock()
	defer mock.lockGet.RUnlock()
	return mock.calls.Get
}

type identityServiceMock struct {
	AuthenticateFunc  func(ctx context.Context, token string) (auth.Principal, error)
	ResolveClientFunc func(ctx context.Context, p auth.Principal) (uuid.UUID, error)
}

func (mock *identityServiceMock) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	if mock.AuthenticateFunc == nil {
		panic("identityServiceMock.AuthenticateFunc: method is nil but identityService.Authenticate was just called")
	}
	return mock.AuthenticateFunc(ctx, token)
}

func (mock *identityServiceMock) ResolveClient(ctx context.Context, p auth.Principal) (uuid.UUID, error) {
	if mock.ResolveClientFunc == nil {
		panic("identityServiceMock.ResolveClientFunc: method is nil but identityService.ResolveClient was just called")
	}
	return mock.ResolveClientFunc(ctx, p)
}
