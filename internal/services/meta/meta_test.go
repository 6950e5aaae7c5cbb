package meta

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/business-marketplace/internal/models"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	if args.Bool(0) {
		*(result.(*[]models.FilterOption)) = []models.FilterOption{{Value: "cached", Label: "Cached"}}
	}
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_Industries(t *testing.T) {
	t.Run("промах кеша строит и кеширует словарь", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Get", "meta:industries", mock.Anything).Return(false, nil).Once()
		cache.On("Set", "meta:industries", mock.Anything, time.Hour).Return(nil).Once()

		service := New(cache, newNoopLogger())
		opts := service.Industries()

		assert.Len(t, opts, 10)
		assert.Contains(t, opts, models.FilterOption{Value: "food_service", Label: "Food Service"})
		cache.AssertExpectations(t)
	})

	t.Run("попадание в кеш возвращает сохранённый словарь", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Get", "meta:industries", mock.Anything).Return(true, nil).Once()

		service := New(cache, newNoopLogger())
		opts := service.Industries()

		assert.Equal(t, []models.FilterOption{{Value: "cached", Label: "Cached"}}, opts)
		cache.AssertNotCalled(t, "Set")
	})

	t.Run("ошибка кеша не мешает выдаче", func(t *testing.T) {
		cache := new(MockCache)
		cache.On("Get", "meta:industries", mock.Anything).Return(false, errors.New("redis down")).Once()
		cache.On("Set", "meta:industries", mock.Anything, time.Hour).Return(errors.New("redis down")).Once()

		service := New(cache, newNoopLogger())
		assert.Len(t, service.Industries(), 10)
	})
}

func TestService_Regions(t *testing.T) {
	cache := new(MockCache)
	cache.On("Get", "meta:regions", mock.Anything).Return(false, nil).Once()
	cache.On("Set", "meta:regions", mock.Anything, time.Hour).Return(nil).Once()

	service := New(cache, newNoopLogger())
	opts := service.Regions()

	assert.Len(t, opts, 8)
	assert.Contains(t, opts, models.FilterOption{Value: "chisinau", Label: "Chisinau"})
}

func TestService_RiskGrades(t *testing.T) {
	cache := new(MockCache)
	cache.On("Get", "meta:risk_grades", mock.Anything).Return(false, nil).Once()
	cache.On("Set", "meta:risk_grades", mock.Anything, time.Hour).Return(nil).Once()

	service := New(cache, newNoopLogger())
	opts := service.RiskGrades()

	if assert.Len(t, opts, 5) {
		assert.Equal(t, models.FilterOption{Value: "A", Label: "A - Low Risk"}, opts[0])
		assert.Equal(t, models.FilterOption{Value: "E", Label: "E - High Risk"}, opts[4])
	}
}
