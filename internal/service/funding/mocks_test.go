package funding

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

//go:generate moq -out mocks_test.go -pkg funding . blobStore requestRepo txManager

var _ blobStore = &blobStoreMock{}

type blobStoreMock struct {
	StoreFunc func(ctx context.Context, payload []byte, suggestedName, namespace string) (string, error)

	calls struct {
		Store []struct {
			Ctx           context.Context
			Payload       []byte
			SuggestedName string
			Namespace     string
		}
	}
	lockStore sync.RWMutex
}

func (mock *blobStoreMock) Store(ctx context.Context, payload []byte, suggestedName, namespace string) (string, error) {
	if mock.StoreFunc == nil {
		panic("blobStoreMock.StoreFunc: method is nil but blobStore.Store was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		Payload       []byte
		SuggestedName string
		Namespace     string
	}{Ctx: ctx, Payload: payload, SuggestedName: suggestedName, Namespace: namespace}
	mock.lockStore.Lock()
	mock.calls.Store = append(mock.calls.Store, callInfo)
	mock.lockStore.Unlock()
	return mock.StoreFunc(ctx, payload, suggestedName, namespace)
}

func (mock *blobStoreMock) StoreCalls() []struct {
	Ctx           context.Context
	Payload       []byte
	SuggestedName string
	Namespace     string
} {
	mock.lockStore.RLock()
	calls := mock.calls.Store
	mock.lockStore.RUnlock()
	return calls
}

var _ requestRepo = &requestRepoMock{}

type requestRepoMock struct {
	CreateFunc       func(ctx context.Context, fr *domain.FundingRequest) error
	ListByClientFunc func(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]domain.FundingRequestSummary, error)
	GetByIDFunc      func(ctx context.Context, clientID, id uuid.UUID) (*domain.FundingRequest, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Fr  *domain.FundingRequest
		}
		ListByClient []struct {
			Ctx      context.Context
			ClientID uuid.UUID
			Limit    int
			Offset   int
		}
		GetByID []struct {
			Ctx      context.Context
			ClientID uuid.UUID
			ID       uuid.UUID
		}
	}
	lockCreate       sync.RWMutex
	lockListByClient sync.RWMutex
	lockGetByID      sync.RWMutex
}

func (mock *requestRepoMock) Create(ctx context.Context, fr *domain.FundingRequest) error {
	if mock.CreateFunc == nil {
		panic("requestRepoMock.CreateFunc: method is nil but requestRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fr  *domain.FundingRequest
	}{Ctx: ctx, Fr: fr}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, fr)
}

func (mock *requestRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Fr  *domain.FundingRequest
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *requestRepoMock) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]domain.FundingRequestSummary, error) {
	if mock.ListByClientFunc == nil {
		panic("requestRepoMock.ListByClientFunc: method is nil but requestRepo.ListByClient was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ClientID uuid.UUID
		Limit    int
		Offset   int
	}{Ctx: ctx, ClientID: clientID, Limit: limit, Offset: offset}
	mock.lockListByClient.Lock()
	mock.calls.ListByClient = append(mock.calls.ListByClient, callInfo)
	mock.lockListByClient.Unlock()
	return mock.ListByClientFunc(ctx, clientID, limit, offset)
}

func (mock *requestRepoMock) ListByClientCalls() []struct {
	Ctx      context.Context
	ClientID uuid.UUID
	Limit    int
	Offset   int
} {
	mock.lockListByClient.RLock()
	calls := mock.calls.ListByClient
	mock.lockListByClient.RUnlock()
	return calls
}

func (mock *requestRepoMock) GetByID(ctx context.Context, clientID, id uuid.UUID) (*domain.FundingRequest, error) {
	if mock.GetByIDFunc == nil {
		panic("requestRepoMock.GetByIDFunc: method is nil but requestRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ClientID uuid.UUID
		ID       uuid.UUID
	}{Ctx: ctx, ClientID: clientID, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, clientID, id)
}

func (mock *requestRepoMock) GetByIDCalls() []struct {
	Ctx      context.Context
	ClientID uuid.UUID
	ID       uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct {
			Ctx context.Context
			Fn  func(ctx context.Context) error
		}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{Ctx: ctx, Fn: fn}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	mock.lockRunInTx.RLock()
	calls := mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}
