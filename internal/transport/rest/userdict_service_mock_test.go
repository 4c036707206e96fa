package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/userdict/internal/domain"
	"github.com/heartmarshall/userdict/internal/service/userdict"
)

var _ userDictService = &userDictServiceMock{}

type userDictServiceMock struct {
	GetAllWordsFunc          func() map[uuid.UUID]domain.Word
	AddWordFunc              func(ctx context.Context, p domain.WordProperty) (uuid.UUID, error)
	UpdateWordFunc           func(ctx context.Context, id string, p domain.WordProperty) error
	DeleteWordFunc           func(ctx context.Context, id string) error
	ImportDictionaryFunc     func(ctx context.Context, entries map[uuid.UUID]domain.Word, override bool) (*userdict.ImportResult, error)
	ApplyJTalkDictionaryFunc func(ctx context.Context) error

	mu    sync.Mutex
	calls struct {
		UpdateWord []string
		DeleteWord []string
		Import     []bool
	}
}

func (m *userDictServiceMock) GetAllWords() map[uuid.UUID]domain.Word {
	if m.GetAllWordsFunc == nil {
		panic("userDictServiceMock.GetAllWordsFunc: method is nil but userDictService.GetAllWords was just called")
	}
	return m.GetAllWordsFunc()
}

func (m *userDictServiceMock) AddWord(ctx context.Context, p domain.WordProperty) (uuid.UUID, error) {
	if m.AddWordFunc == nil {
		panic("userDictServiceMock.AddWordFunc: method is nil but userDictService.AddWord was just called")
	}
	return m.AddWordFunc(ctx, p)
}

func (m *userDictServiceMock) UpdateWord(ctx context.Context, id string, p domain.WordProperty) error {
	if m.UpdateWordFunc == nil {
		panic("userDictServiceMock.UpdateWordFunc: method is nil but userDictService.UpdateWord was just called")
	}
	m.mu.Lock()
	m.calls.UpdateWord = append(m.calls.UpdateWord, id)
	m.mu.Unlock()
	return m.UpdateWordFunc(ctx, id, p)
}

func (m *userDictServiceMock) DeleteWord(ctx context.Context, id string) error {
	if m.DeleteWordFunc == nil {
		panic("userDictServiceMock.DeleteWordFunc: method is nil but userDictService.DeleteWord was just called")
	}
	m.mu.Lock()
	m.calls.DeleteWord = append(m.calls.DeleteWord, id)
	m.mu.Unlock()
	return m.DeleteWordFunc(ctx, id)
}

func (m *userDictServiceMock) ImportDictionary(ctx context.Context, entries map[uuid.UUID]domain.Word, override bool) (*userdict.ImportResult, error) {
	if m.ImportDictionaryFunc == nil {
		panic("userDictServiceMock.ImportDictionaryFunc: method is nil but userDictService.ImportDictionary was just called")
	}
	m.mu.Lock()
	m.calls.Import = append(m.calls.Import, override)
	m.mu.Unlock()
	return m.ImportDictionaryFunc(ctx, entries, override)
}

func (m *userDictServiceMock) ApplyJTalkDictionary(ctx context.Context) error {
	if m.ApplyJTalkDictionaryFunc == nil {
		panic("userDictServiceMock.ApplyJTalkDictionaryFunc: method is nil but userDictService.ApplyJTalkDictionary was just called")
	}
	return m.ApplyJTalkDictionaryFunc(ctx)
}
