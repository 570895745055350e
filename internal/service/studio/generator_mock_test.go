package studio

import (
	"context"
	"sync"

	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
)

var _ textGenerator = &textGeneratorMock{}

type textGeneratorMock struct {
	GenerateFunc func(ctx context.Context, req domain.GenerationRequest) (string, error)

	calls struct {
		Generate []struct {
			Ctx context.Context
			Req domain.GenerationRequest
		}
	}
	lockGenerate sync.RWMutex
}

func (mock *textGeneratorMock) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	if mock.GenerateFunc == nil {
		panic("textGeneratorMock.GenerateFunc: method is nil but textGenerator.Generate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req domain.GenerationRequest
	}{Ctx: ctx, Req: req}
	mock.lockGenerate.Lock()
	mock.calls.Generate = append(mock.calls.Generate, callInfo)
	mock.lockGenerate.Unlock()
	return mock.GenerateFunc(ctx, req)
}

func (mock *textGeneratorMock) GenerateCalls() []struct {
	Ctx context.Context
	Req domain.GenerationRequest
} {
	mock.lockGenerate.RLock()
	calls := mock.calls.Generate
	mock.lockGenerate.RUnlock()
	return calls
}

var _ thumbnailGenerator = &thumbnailGeneratorMock{}

type thumbnailGeneratorMock struct {
	GenerateThumbnailFunc func(ctx context.Context, req domain.ThumbnailRequest) (string, error)

	calls struct {
		GenerateThumbnail []struct {
			Ctx context.Context
			Req domain.ThumbnailRequest
		}
	}
	lockGenerateThumbnail sync.RWMutex
}

func (mock *thumbnailGeneratorMock) GenerateThumbnail(ctx context.Context, req domain.ThumbnailRequest) (string, error) {
	if mock.GenerateThumbnailFunc == nil {
		panic("thumbnailGeneratorMock.GenerateThumbnailFunc: method is nil but thumbnailGenerator.GenerateThumbnail was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req domain.ThumbnailRequest
	}{Ctx: ctx, Req: req}
	mock.lockGenerateThumbnail.Lock()
	mock.calls.GenerateThumbnail = append(mock.calls.GenerateThumbnail, callInfo)
	mock.lockGenerateThumbnail.Unlock()
	return mock.GenerateThumbnailFunc(ctx, req)
}

func (mock *thumbnailGeneratorMock) GenerateThumbnailCalls() []struct {
	Ctx context.Context
	Req domain.ThumbnailRequest
} {
	mock.lockGenerateThumbnail.RLock()
	calls := mock.calls.GenerateThumbnail
	mock.lockGenerateThumbnail.RUnlock()
	return calls
}

var _ prefsReader = &prefsReaderMock{}

type prefsReaderMock struct {
	GetFunc func(ctx context.Context, clientID, key string) (string, bool, error)

	calls struct {
		Get []struct {
			ClientID string
			Key      string
		}
	}
	lockGet sync.RWMutex
}

func (mock *prefsReaderMock) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	if mock.GetFunc == nil {
		panic("prefsReaderMock.GetFunc: method is nil but prefsReader.Get was just called")
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, struct {
		ClientID string
		Key      string
	}{ClientID: clientID, Key: key})
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, clientID, key)
}

func (mock *prefsReaderMock) GetCalls() []struct {
	ClientID string
	Key      string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

var _ outcomeRecorder = &outcomeRecorderMock{}

type outcomeRecorderMock struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (mock *outcomeRecorderMock) RecordGeneration(kind, outcome string) {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	if mock.outcomes == nil {
		mock.outcomes = make(map[string]int)
	}
	mock.outcomes[kind+"/"+outcome]++
}

func (mock *outcomeRecorderMock) Count(kind, outcome string) int {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return mock.outcomes[kind+"/"+outcome]
}
