// Package event содержит логику бизнес-уровня для календарных событий:
// создание, редактирование и выборка вместе со списком участников.
package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sole-app/sole-backend/internal/apperr"
	"github.com/sole-app/sole-backend/internal/lib/sl"
	"github.com/sole-app/sole-backend/internal/models"
)

// Ключ кеша списка всех событий. Инвалидируется при любой записи.
const listCacheKey = "events:list"

const listCacheTTL = time.Minute

// Repository описывает контракт для работы с событиями в базе данных.
type Repository interface {
	CreateEventWithAttendees(ctx context.Context, event models.Event, attendeeIDs []int) (int, error)
	UpdateEventWithAttendees(ctx context.Context, event models.Event, attendeeIDs []int) error
	GetEventWithAttendees(ctx context.Context, id int) (*models.EventWithAttendees, error)
	ListEvents(ctx context.Context) ([]*models.EventWithAttendees, error)
	ListEventsForUser(ctx context.Context, userID int) ([]*models.EventWithAttendees, error)
}

// Cache описывает кеш горячих данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service отвечает за операции над событиями.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// parseInterval разбирает и проверяет даты события: RFC3339,
// начало строго раньше окончания.
func parseInterval(start, end string) (time.Time, time.Time, error) {
	startDatetime, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start datetime: %w", apperr.ErrValidation)
	}
	endDatetime, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end datetime: %w", apperr.ErrValidation)
	}
	if !startDatetime.Before(endDatetime) {
		return time.Time{}, time.Time{}, fmt.Errorf("start must be before end: %w", apperr.ErrValidation)
	}
	return startDatetime, endDatetime, nil
}

// dedupe убирает повторы из списка идентификаторов, сохраняя порядок.
func dedupe(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	result := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// Create сохраняет событие вместе с участниками и возвращает его
// в развернутом виде.
func (s *Service) Create(ctx context.Context, req models.DummyEvent) (*models.EventWithAttendees, error) {
	startDatetime, endDatetime, err := parseInterval(req.Start, req.End)
	if err != nil {
		return nil, err
	}

	event := models.Event{
		Title:         req.Title,
		StartDatetime: startDatetime,
		EndDatetime:   endDatetime,
	}

	id, err := s.repo.CreateEventWithAttendees(ctx, event, dedupe(req.Attendees))
	if err != nil {
		return nil, err
	}
	s.log.Info("created new event", slog.Int("id", id))
	s.invalidateList()

	return s.repo.GetEventWithAttendees(ctx, id)
}

// Edit обновляет событие и полностью заменяет состав участников.
// Пустой список участников допустим и очищает состав.
func (s *Service) Edit(ctx context.Context, id int, req models.DummyEditEvent) (*models.EventWithAttendees, error) {
	startDatetime, endDatetime, err := parseInterval(req.Start, req.End)
	if err != nil {
		return nil, err
	}

	event := models.Event{
		ID:            id,
		Title:         req.Title,
		StartDatetime: startDatetime,
		EndDatetime:   endDatetime,
	}

	if err := s.repo.UpdateEventWithAttendees(ctx, event, dedupe(req.Attendees)); err != nil {
		return nil, err
	}
	s.log.Info("updated event", slog.Int("id", id))
	s.invalidateList()

	return s.repo.GetEventWithAttendees(ctx, id)
}

// List возвращает все события с участниками, сначала из кеша.
func (s *Service) List(ctx context.Context) ([]*models.EventWithAttendees, error) {
	var cached []*models.EventWithAttendees
	found, err := s.cache.Get(listCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read events from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	result, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(listCacheKey, result, listCacheTTL); err != nil {
		s.log.Warn("failed to cache events", sl.Err(err))
	}
	return result, nil
}

// ListForUser возвращает события, где пользователь числится участником.
func (s *Service) ListForUser(ctx context.Context, userID int) ([]*models.EventWithAttendees, error) {
	return s.repo.ListEventsForUser(ctx, userID)
}

// Get возвращает событие по идентификатору.
func (s *Service) Get(ctx context.Context, id int) (*models.EventWithAttendees, error) {
	return s.repo.GetEventWithAttendees(ctx, id)
}

func (s *Service) invalidateList() {
	if err := s.cache.Invalidate(listCacheKey); err != nil {
		s.log.Warn("failed to invalidate events cache", sl.Err(err))
	}
}
