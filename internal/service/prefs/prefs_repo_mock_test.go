package prefs

import (
	"context"
	"sync"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
)

var _ prefsRepo = &prefsRepoMock{}

type prefsRepoMock struct {
	GetFunc    func(ctx context.Context, clientID, key string) (*domain.Preference, error)
	UpsertFunc func(ctx context.Context, p domain.Preference) (*domain.Preference, error)

	calls struct {
		Get []struct {
			ClientID string
			Key      string
		}
		Upsert []struct {
			P domain.Preference
		}
	}
	lockGet    sync.RWMutex
	lockUpsert sync.RWMutex
}

func (m *prefsRepoMock) Get(ctx context.Context, clientID, key string) (*domain.Preference, error) {
	if m.GetFunc == nil {
		panic("prefsRepoMock.GetFunc: method is nil but prefsRepo.Get was just called")
	}
	m.lockGet.Lock()
	m.calls.Get = append(m.calls.Get, struct {
		ClientID string
		Key      string
	}{clientID, key})
	m.lockGet.Unlock()
	return m.GetFunc(ctx, clientID, key)
}

func (m *prefsRepoMock) GetCalls() []struct {
	ClientID string
	Key      string
} {
	m.lockGet.RLock()
	defer m.lockGet.RUnlock()
	return m.calls.Get
}

func (m *prefsRepoMock) Upsert(ctx context.Context, p domain.Preference) (*domain.Preference, error) {
	if m.UpsertFunc == nil {
		panic("prefsRepoMock.UpsertFunc: method is nil but prefsRepo.Upsert was just called")
	}
	m.lockUpsert.Lock()
	m.calls.Upsert = append(m.calls.Upsert, struct {
		P domain.Preference
	}{p})
	m.lockUpsert.Unlock()
	return m.UpsertFunc(ctx, p)
}

func (m *prefsRepoMock) UpsertCalls() []struct {
	P domain.Preference
} {
	m.lockUpsert.RLock()
	defer m.lockUpsert.RUnlock()
	return m.calls.Upsert
}
