package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sole-app/sole-backend/internal/models"
)

const userColumns = `id, username, email, password_hash, dob, address, phone_number,
			      image, is_verified, subscription, trial_end_date`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	u := &models.User{}
	var image sql.NullString
	var trialEndDate sql.NullTime
	var subscription string
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.DOB,
		&u.Address, &u.PhoneNumber, &image, &u.IsVerified, &subscription, &trialEndDate); err != nil {
		return nil, err
	}
	if image.Valid {
		u.Image = &image.String
	}
	if trialEndDate.Valid {
		u.TrialEndDate = &trialEndDate.Time
	}
	u.Subscription = models.Subscription(subscription)
	return u, nil
}

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его ID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (int, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO users (username, email, password_hash, dob, address,
			      phone_number, image, is_verified, subscription, trial_end_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.DOB, user.Address,
		user.PhoneNumber, user.Image, user.IsVerified, string(user.Subscription),
		user.TrialEndDate).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, translateErr(err))
	}
	return newID, nil
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateErr(err))
	}
	return u, nil
}

// GetUserByID возвращает пользователя по его ID.
func (s *Storage) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.GetUserByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateErr(err))
	}
	return u, nil
}

// ListUsers возвращает всех пользователей, отсортированных по ID.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUserProfile частично обновляет профиль: nil-поля остаются прежними.
func (s *Storage) UpdateUserProfile(ctx context.Context, id int, upd models.UpdateProfile) error {
	const op = "storage.UpdateUserProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET username = $1,
			      dob = COALESCE($2, dob),
			      address = COALESCE($3, address),
			      phone_number = COALESCE($4, phone_number),
			      image = COALESCE($5, image)
			  WHERE id = $6`
	result, err := s.DB.ExecContext(ctx, query,
		upd.Username, upd.DOB, upd.Address, upd.PhoneNumber, upd.Image, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateErr(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, translateErr(sql.ErrNoRows))
	}
	return nil
}

// UpdatePasswordHash заменяет хэш пароля пользователя.
func (s *Storage) UpdatePasswordHash(ctx context.Context, id int, passwordHash string) error {
	const op = "storage.UpdatePasswordHash"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_hash = $1
			  WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, translateErr(sql.ErrNoRows))
	}
	return nil
}

// MarkVerified устанавливает флаг подтверждённой почты.
func (s *Storage) MarkVerified(ctx context.Context, id int) error {
	const op = "storage.MarkVerified"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_verified = true
			  WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, translateErr(sql.ErrNoRows))
	}
	return nil
}

// UpdateSubscription устанавливает тариф и дату окончания периода.
// trialEndDate может быть nil — тогда дата очищается (откат на free_trial).
func (s *Storage) UpdateSubscription(ctx context.Context, id int, subscription models.Subscription, trialEndDate *time.Time) error {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET subscription = $1,
			      trial_end_date = $2
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, string(subscription), trialEndDate, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, translateErr(sql.ErrNoRows))
	}
	return nil
}

// FindTrialEndingToday находит пользователей с истекающим сегодня пробным периодом.
func (s *Storage) FindTrialEndingToday(ctx context.Context) ([]*models.User, error) {
	const op = "storage.FindTrialEndingToday"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE subscription = 'free_trial'
			    AND trial_end_date::DATE = CURRENT_DATE`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
