// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Токены выпускаются с назначением (purpose): доступ к API, подтверждение почты,
// сброс пароля. Токен одного назначения не принимается там, где ожидается другое.
package jwt

import (
	"time"
)

// Purpose — назначение выпущенного токена.
type Purpose string

const (
	// PurposeAccess — токен доступа к API.
	PurposeAccess Purpose = "access"
	// PurposeVerifyEmail — токен подтверждения электронной почты.
	PurposeVerifyEmail Purpose = "verify_email"
	// PurposePasswordReset — токен сброса пароля.
	PurposePasswordReset Purpose = "password_reset"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateToken создаёт токен для пользователя с заданным назначением и TTL.
	GenerateToken(userID int, username string, purpose Purpose, ttl time.Duration) (string, error)
	// ParseToken разбирает токен и возвращает *CustomClaims, проверяя назначение.
	ParseToken(tokenStr string, purpose Purpose) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена доступа (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена доступа.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// AccessTTL возвращает настроенное время жизни токена доступа.
func (j *MakerImpl) AccessTTL() time.Duration {
	return j.tokenTTL
}
