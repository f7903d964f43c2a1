// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// CustomClaims расширяет стандартные claims JWT, добавляя идентификатор,
// имя и роль пользователя.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/taskr/internal/models"
)

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	UserID               int         `json:"user_id"`  // Идентификатор пользователя
	Username             string      `json:"username"` // Имя пользователя
	Role                 models.Role `json:"role"`     // Роль пользователя
	jwt.RegisteredClaims             // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// Actor конвертирует claims обратно в доменного актора.
func (c *CustomClaims) Actor() models.Actor {
	return models.Actor{
		ID:   c.UserID,
		Name: c.Username,
		Role: c.Role,
	}
}

// GenerateToken создает JWT токен для актора, подписывая его секретным ключом.
//
// Время жизни токена определяется полем tokenTTL, каждому токену
// назначается уникальный идентификатор (jti).
func (j *MakerImpl) GenerateToken(actor models.Actor) (string, error) {
	claims := CustomClaims{
		UserID:   actor.ID,
		Username: actor.Name,
		Role:     actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(j.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит JWT токен, проверяет его подпись и валидность,
// возвращает CustomClaims с данными, если токен корректен.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
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
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%s: unknown role in token", op)
	}
	return claims, nil
}
