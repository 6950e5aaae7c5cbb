// Package meta отдаёт словари фильтров каталога: отрасли, регионы
// и рейтинги риска. Словари статичны, но кешируются в redis, чтобы
// страница каталога не собирала их на каждый запрос.
package meta

import (
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/business-marketplace/internal/lib/sl"
	"github.com/magabrotheeeer/business-marketplace/internal/models"
)

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
}

// Service реализует выдачу словарей фильтров с кешированием.
type Service struct {
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(cache Cache, log *slog.Logger) *Service {
	return &Service{
		cache: cache,
		log:   log,
	}
}

var industries = []string{
	"manufacturing", "retail", "food_service", "technology", "agriculture",
	"construction", "healthcare", "education", "finance", "transportation",
}

var regions = []string{
	"chisinau", "balti", "tiraspol", "cahul", "ungheni", "soroca", "orhei", "comrat",
}

var riskGrades = []models.FilterOption{
	{Value: "A", Label: "A - Low Risk"},
	{Value: "B", Label: "B - Medium-Low Risk"},
	{Value: "C", Label: "C - Medium Risk"},
	{Value: "D", Label: "D - Medium-High Risk"},
	{Value: "E", Label: "E - High Risk"},
}

// Industries возвращает словарь отраслей.
func (s *Service) Industries() []models.FilterOption {
	return s.cached("meta:industries", func() []models.FilterOption {
		return labeled(industries)
	})
}

// Regions возвращает словарь регионов.
func (s *Service) Regions() []models.FilterOption {
	return s.cached("meta:regions", func() []models.FilterOption {
		return labeled(regions)
	})
}

// RiskGrades возвращает словарь рейтингов риска.
func (s *Service) RiskGrades() []models.FilterOption {
	return s.cached("meta:risk_grades", func() []models.FilterOption {
		return riskGrades
	})
}

// cached возвращает словарь из кеша, при промахе строит его и кеширует.
// Ошибки кеша не мешают выдаче — словарь строится заново.
func (s *Service) cached(key string, build func() []models.FilterOption) []models.FilterOption {
	var result []models.FilterOption
	found, err := s.cache.Get(key, &result)
	if err != nil {
		s.log.Warn("failed to read filter options from cache", sl.Err(err))
	}
	if found {
		return result
	}
	result = build()
	if err := s.cache.Set(key, result, time.Hour); err != nil {
		s.log.Warn("failed to cache filter options", sl.Err(err))
	}
	return result
}

// labeled строит пары значение/подпись из технических значений словаря.
func labeled(values []string) []models.FilterOption {
	options := make([]models.FilterOption, 0, len(values))
	for _, v := range values {
		label := strings.Title(strings.ReplaceAll(v, "_", " ")) //nolint:staticcheck // словарь ASCII
		options = append(options, models.FilterOption{Value: v, Label: label})
	}
	return options
}
