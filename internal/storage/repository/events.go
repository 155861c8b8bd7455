package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sole-app/sole-backend/internal/apperr"
	"github.com/sole-app/sole-backend/internal/models"
)

// CreateEventWithAttendees вставляет событие и связи с участниками
// в одной транзакции. Все attendeeIDs проверяются на существование:
// неизвестный ID отклоняет операцию целиком (apperr.ErrValidation),
// откатывая транзакцию.
func (s *Storage) CreateEventWithAttendees(ctx context.Context, event models.Event, attendeeIDs []int) (int, error) {
	const op = "storage.CreateEventWithAttendees"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO events (title, start_datetime, end_datetime)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	if err := tx.QueryRowContext(ctx, query,
		event.Title, event.StartDatetime, event.EndDatetime).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, translateErr(err))
	}

	if err := insertAttendees(ctx, tx, newID, attendeeIDs); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdateEventWithAttendees в одной транзакции обновляет поля события,
// удаляет все прежние связи с участниками и вставляет новые.
// Полная замена состава, не диф: участники, отсутствующие в новом списке,
// удаляются. Несуществующее событие — apperr.ErrNotFound.
func (s *Storage) UpdateEventWithAttendees(ctx context.Context, event models.Event, attendeeIDs []int) error {
	const op = "storage.UpdateEventWithAttendees"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `UPDATE events
			  SET title = $1, start_datetime = $2, end_datetime = $3
			  WHERE id = $4`
	result, err := tx.ExecContext(ctx, query,
		event.Title, event.StartDatetime, event.EndDatetime, event.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateErr(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM event_attendees WHERE event_id = $1`, event.ID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := insertAttendees(ctx, tx, event.ID, attendeeIDs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// insertAttendees проверяет, что каждый ID соответствует существующему
// пользователю, и вставляет связи. Выполняется внутри открытой транзакции.
func insertAttendees(ctx context.Context, tx *sql.Tx, eventID int, attendeeIDs []int) error {
	if len(attendeeIDs) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(attendeeIDs))
	for _, id := range attendeeIDs {
		ids = append(ids, int64(id))
	}

	var known int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE id = ANY($1)`, ids).Scan(&known); err != nil {
		return err
	}
	if known != len(attendeeIDs) {
		return fmt.Errorf("unknown attendee ids: %w", apperr.ErrValidation)
	}

	for _, id := range attendeeIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO event_attendees (event_id, user_id) VALUES ($1, $2)`,
			eventID, id); err != nil {
			return translateErr(err)
		}
	}
	return nil
}

// GetEventWithAttendees возвращает событие по ID вместе с участниками.
func (s *Storage) GetEventWithAttendees(ctx context.Context, id int) (*models.EventWithAttendees, error) {
	const op = "storage.GetEventWithAttendees"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, start_datetime, end_datetime
			  FROM events
			  WHERE id = $1`
	var ev models.EventWithAttendees
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&ev.ID, &ev.Title, &ev.Start, &ev.End); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateErr(err))
	}

	attendees, err := s.attendeesByEvent(ctx, []int{ev.ID})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ev.Attendees = attendees[ev.ID]
	if ev.Attendees == nil {
		ev.Attendees = []models.Attendee{}
	}
	return &ev, nil
}

// ListEvents возвращает все события с разрешёнными списками участников.
// Событие без участников получает пустой список.
func (s *Storage) ListEvents(ctx context.Context) ([]*models.EventWithAttendees, error) {
	const op = "storage.ListEvents"
	return s.listEvents(ctx, op,
		`SELECT id, title, start_datetime, end_datetime
		 FROM events
		 ORDER BY id`)
}

// ListEventsForUser возвращает события, в составе участников которых
// присутствует пользователь userID.
func (s *Storage) ListEventsForUser(ctx context.Context, userID int) ([]*models.EventWithAttendees, error) {
	const op = "storage.ListEventsForUser"
	return s.listEvents(ctx, op,
		`SELECT e.id, e.title, e.start_datetime, e.end_datetime
		 FROM events e
		 WHERE EXISTS (
		     SELECT 1 FROM event_attendees ea
		     WHERE ea.event_id = e.id AND ea.user_id = $1
		 )
		 ORDER BY e.id`, userID)
}

func (s *Storage) listEvents(ctx context.Context, op, query string, args ...any) ([]*models.EventWithAttendees, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.EventWithAttendees
	var eventIDs []int
	for rows.Next() {
		var ev models.EventWithAttendees
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Start, &ev.End); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ev.Attendees = []models.Attendee{}
		result = append(result, &ev)
		eventIDs = append(eventIDs, ev.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(eventIDs) == 0 {
		return result, nil
	}

	attendees, err := s.attendeesByEvent(ctx, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, ev := range result {
		if list, ok := attendees[ev.ID]; ok {
			ev.Attendees = list
		}
	}
	return result, nil
}

// attendeesByEvent возвращает участников (id, имя) для набора событий.
func (s *Storage) attendeesByEvent(ctx context.Context, eventIDs []int) (map[int][]models.Attendee, error) {
	ids := make([]int64, 0, len(eventIDs))
	for _, id := range eventIDs {
		ids = append(ids, int64(id))
	}

	query := `SELECT ea.event_id, u.id, u.username
			  FROM event_attendees ea
			  JOIN users u ON u.id = ea.user_id
			  WHERE ea.event_id = ANY($1)
			  ORDER BY ea.event_id, u.id`
	rows, err := s.DB.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make(map[int][]models.Attendee)
	for rows.Next() {
		var eventID int
		var a models.Attendee
		if err := rows.Scan(&eventID, &a.ID, &a.Name); err != nil {
			return nil, err
		}
		result[eventID] = append(result[eventID], a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
