// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля, профиль и состояние подписки.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Subscription — тариф подписки пользователя.
// Допустимы только перечисленные ниже значения, любое другое считается
// ошибкой данных и отклоняется на уровне бизнес-логики.
type Subscription string

const (
	// SubscriptionFreeTrial — пробный период, назначается при регистрации.
	SubscriptionFreeTrial Subscription = "free_trial"
	// SubscriptionStandard — платный тариф на месяц.
	SubscriptionStandard Subscription = "standard"
	// SubscriptionPremium — платный тариф на год.
	SubscriptionPremium Subscription = "premium"
)

// IsValid сообщает, входит ли значение в перечисление тарифов.
func (s Subscription) IsValid() bool {
	switch s {
	case SubscriptionFreeTrial, SubscriptionStandard, SubscriptionPremium:
		return true
	}
	return false
}

// IsPaid сообщает, является ли тариф платным.
func (s Subscription) IsPaid() bool {
	return s == SubscriptionStandard || s == SubscriptionPremium
}

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int          // Уникальный идентификатор пользователя
	Username     string       // Имя пользователя (уникальное)
	Email        string       // Электронная почта (уникальная)
	PasswordHash string       // Хэш пароля пользователя
	DOB          time.Time    // Дата рождения
	Address      string       // Адрес
	PhoneNumber  string       // Номер телефона
	Image        *string      // Путь к изображению профиля (nil, если не загружено)
	IsVerified   bool         // Подтверждена ли почта
	Subscription Subscription // Текущий тариф подписки
	TrialEndDate *time.Time   // Дата окончания пробного или оплаченного периода
}

// DummyRegisterUser используется для приёма данных регистрации из запроса,
// прежде чем конвертировать их в User. Дата рождения приходит строкой,
// чтобы её можно было валидировать и парсить вручную.
type DummyRegisterUser struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DOB         string `json:"dob" validate:"required"` // Дата рождения в формате 2006-01-02
	Address     string `json:"address" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// DummyUpdateProfile используется для приёма частичного обновления профиля.
// Пустые поля не изменяются.
type DummyUpdateProfile struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	DOB         string `json:"dob,omitempty" validate:"omitempty"`
	Address     string `json:"address,omitempty" validate:"omitempty"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty"`
}

// UpdateProfile — разобранные поля частичного обновления профиля,
// передаваемые в слой доступа к данным. nil означает "не менять".
type UpdateProfile struct {
	Username    string
	DOB         *time.Time
	Address     *string
	PhoneNumber *string
	Image       *string
}

// UserView — представление пользователя для JSON-ответов,
// без хэша пароля и служебных полей.
type UserView struct {
	ID           int          `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	DOB          time.Time    `json:"dob"`
	Address      string       `json:"address"`
	PhoneNumber  string       `json:"phone_number"`
	Image        *string      `json:"image"`
	IsVerified   bool         `json:"is_verified"`
	Subscription Subscription `json:"subscription"`
	TrialEndDate *time.Time   `json:"trial_end_date"`
}

// View конвертирует User в UserView.
func (u *User) View() UserView {
	return UserView{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		DOB:          u.DOB,
		Address:      u.Address,
		PhoneNumber:  u.PhoneNumber,
		Image:        u.Image,
		IsVerified:   u.IsVerified,
		Subscription: u.Subscription,
		TrialEndDate: u.TrialEndDate,
	}
}
