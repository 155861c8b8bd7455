// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// CustomClaims расширяет стандартные claims JWT, добавляя идентификатор,
// имя пользователя и назначение токена.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	UserID               int     `json:"user_id"`  // Идентификатор пользователя
	Username             string  `json:"username"` // Имя пользователя
	Purpose              Purpose `json:"purpose"`  // Назначение токена
	jwt.RegisteredClaims         // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// GenerateToken создает JWT токен с заданными userID, username и назначением,
// подписывая его секретным ключом. При нулевом ttl используется tokenTTL.
func (j *MakerImpl) GenerateToken(userID int, username string, purpose Purpose, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = j.tokenTTL
	}
	claims := CustomClaims{
		UserID:   userID,
		Username: username,
		Purpose:  purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет его подпись, срок действия и назначение,
// возвращает CustomClaims с данными, если токен корректен.
func (j *MakerImpl) ParseToken(tokenStr string, purpose Purpose) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	if claims.Purpose != purpose {
		return nil, fmt.Errorf("%s: unexpected token purpose %q", op, claims.Purpose)
	}
	return claims, nil
}
