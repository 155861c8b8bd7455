// Package user содержит логику бизнес-уровня для работы с учётными
// записями: регистрация, вход, подтверждение почты, восстановление
// пароля, профиль и управление тарифом подписки.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sole-app/sole-backend/internal/apperr"
	"github.com/sole-app/sole-backend/internal/lib/jwt"
	"github.com/sole-app/sole-backend/internal/lib/password"
	"github.com/sole-app/sole-backend/internal/lib/sl"
	"github.com/sole-app/sole-backend/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре логин/пароль
// или неверном старом пароле при его смене.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Длительность пробного периода, назначаемого при регистрации.
const trialPeriod = 7 * 24 * time.Hour

const (
	verifyTokenTTL = 24 * time.Hour
	resetTokenTTL  = time.Hour
)

// Repository описывает контракт для работы с пользователями в базе данных.
type Repository interface {
	RegisterUser(ctx context.Context, user models.User) (int, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUserProfile(ctx context.Context, id int, upd models.UpdateProfile) error
	UpdatePasswordHash(ctx context.Context, id int, passwordHash string) error
	MarkVerified(ctx context.Context, id int) error
	UpdateSubscription(ctx context.Context, id int, subscription models.Subscription, trialEndDate *time.Time) error
}

// Mailer отправляет сервисные письма пользователю.
type Mailer interface {
	SendVerificationEmail(email, username, token string) error
	SendPasswordResetEmail(email, username, token string) error
}

// Service отвечает за операции над учётными записями.
type Service struct {
	repo     Repository
	jwtMaker jwt.Maker
	mailer   Mailer
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, jwtMaker jwt.Maker, mailer Mailer, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		jwtMaker: jwtMaker,
		mailer:   mailer,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля и пробным
// периодом на неделю. Возвращает id и признак того, что письмо с
// подтверждением ушло: сбой почты не отменяет регистрацию.
func (s *Service) Register(ctx context.Context, req models.DummyRegisterUser) (int, bool, error) {
	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		return 0, false, fmt.Errorf("invalid dob: %w", apperr.ErrValidation)
	}

	if _, err := s.repo.GetUserByEmail(ctx, req.Email); err == nil {
		return 0, false, fmt.Errorf("email already registered: %w", apperr.ErrConflict)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return 0, false, err
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return 0, false, err
	}

	trialEndDate := time.Now().UTC().Add(trialPeriod)
	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		DOB:          dob,
		Address:      req.Address,
		PhoneNumber:  req.PhoneNumber,
		Subscription: models.SubscriptionFreeTrial,
		TrialEndDate: &trialEndDate,
	}

	id, err := s.repo.RegisterUser(ctx, user)
	if err != nil {
		return 0, false, err
	}
	s.log.Info("registered new user", slog.Int("id", id))

	token, err := s.jwtMaker.GenerateToken(id, req.Username, jwt.PurposeVerifyEmail, verifyTokenTTL)
	if err == nil {
		err = s.mailer.SendVerificationEmail(req.Email, req.Username, token)
	}
	if err != nil {
		s.log.Warn("failed to send verification email", slog.Int("id", id), sl.Err(err))
		return id, false, nil
	}
	return id, true, nil
}

// Login проверяет пароль пользователя и генерирует JWT доступа.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Username, jwt.PurposeAccess, 0)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// VerifyEmail подтверждает почту по одноразовой ссылке из письма.
// Повторное подтверждение считается конфликтом.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.jwtMaker.ParseToken(token, jwt.PurposeVerifyEmail)
	if err != nil {
		return fmt.Errorf("invalid verification token: %w", apperr.ErrValidation)
	}
	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return fmt.Errorf("email already verified: %w", apperr.ErrConflict)
	}
	return s.repo.MarkVerified(ctx, user.ID)
}

// ForgotPassword отправляет письмо со ссылкой на сброс пароля.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Username, jwt.PurposePasswordReset, resetTokenTTL)
	if err != nil {
		return err
	}
	if err := s.mailer.SendPasswordResetEmail(user.Email, user.Username, token); err != nil {
		s.log.Error("failed to send password reset email", slog.Int("id", user.ID), sl.Err(err))
		return fmt.Errorf("send reset email: %w", apperr.ErrDependency)
	}
	return nil
}

// ResetPassword устанавливает новый пароль по токену из письма.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.jwtMaker.ParseToken(token, jwt.PurposePasswordReset)
	if err != nil {
		return fmt.Errorf("invalid reset token: %w", apperr.ErrValidation)
	}
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePasswordHash(ctx, claims.UserID, hashed)
}

// UpdatePassword меняет пароль авторизованного пользователя,
// предварительно проверив старый.
func (s *Service) UpdatePassword(ctx context.Context, userID int, oldPassword, newPassword string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := password.CompareHash(user.PasswordHash, oldPassword); err != nil {
		return ErrInvalidCredentials
	}
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePasswordHash(ctx, userID, hashed)
}

// UpdateProfile частично обновляет профиль пользователя. image - имя
// загруженного файла изображения, nil, если файл не передавался.
func (s *Service) UpdateProfile(ctx context.Context, userID int, req models.DummyUpdateProfile, image *string) (*models.User, error) {
	upd := models.UpdateProfile{
		Username: req.Username,
		Image:    image,
	}
	if req.DOB != "" {
		dob, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			return nil, fmt.Errorf("invalid dob: %w", apperr.ErrValidation)
		}
		upd.DOB = &dob
	}
	if req.Address != "" {
		upd.Address = &req.Address
	}
	if req.PhoneNumber != "" {
		upd.PhoneNumber = &req.PhoneNumber
	}

	if err := s.repo.UpdateUserProfile(ctx, userID, upd); err != nil {
		return nil, err
	}
	return s.repo.GetUserByID(ctx, userID)
}

// GetByID возвращает пользователя по идентификатору.
func (s *Service) GetByID(ctx context.Context, id int) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// GetByEmail возвращает пользователя по почте.
func (s *Service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetUserByEmail(ctx, email)
}

// List возвращает всех пользователей.
func (s *Service) List(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

// Upgrade переводит пользователя на платный тариф: standard действует
// месяц, premium - год.
func (s *Service) Upgrade(ctx context.Context, userID int, tier models.Subscription) error {
	var endDate time.Time
	now := time.Now().UTC()
	switch tier {
	case models.SubscriptionStandard:
		endDate = now.AddDate(0, 1, 0)
	case models.SubscriptionPremium:
		endDate = now.AddDate(1, 0, 0)
	default:
		return fmt.Errorf("unknown subscription tier %q: %w", tier, apperr.ErrValidation)
	}
	if err := s.repo.UpdateSubscription(ctx, userID, tier, &endDate); err != nil {
		return err
	}
	s.log.Info("subscription upgraded",
		slog.Int("id", userID), slog.String("tier", string(tier)))
	return nil
}

// Downgrade откатывает пользователя на free_trial и очищает дату
// окончания периода.
func (s *Service) Downgrade(ctx context.Context, userID int) error {
	if err := s.repo.UpdateSubscription(ctx, userID, models.SubscriptionFreeTrial, nil); err != nil {
		return err
	}
	s.log.Info("subscription cancelled", slog.Int("id", userID))
	return nil
}

// HasTrialEnded сообщает, истёк ли пробный период пользователя.
// Для платных тарифов всегда false.
func (s *Service) HasTrialEnded(ctx context.Context, userID int) (bool, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user.Subscription != models.SubscriptionFreeTrial || user.TrialEndDate == nil {
		return false, nil
	}
	return user.TrialEndDate.Before(time.Now().UTC()), nil
}
