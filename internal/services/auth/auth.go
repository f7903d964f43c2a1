// Package auth содержит логику бизнес-уровня для регистрации и входа пользователей.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/taskr/internal/lib/jwt"
	"github.com/magabrotheeeer/taskr/internal/lib/password"
	"github.com/magabrotheeeer/taskr/internal/models"
	"github.com/magabrotheeeer/taskr/internal/storage/repository"
)

// ErrInvalidCredentials возвращается при любом неуспешном входе.
// Отсутствующее имя и неверный пароль дают одну и ту же ошибку,
// чтобы по ответу нельзя было определить существование пользователя.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserExists возвращается, когда имя или email уже заняты.
var ErrUserExists = errors.New("user already exists")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int, error)

	// GetUserByName возвращает пользователя по имени или ошибку, если не найден.
	GetUserByName(ctx context.Context, name string) (*models.User, error)
}

// Service отвечает за регистрацию, вход и выпуск JWT для JSON API.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и ролью "user".
//
// Публичная регистрация никогда не назначает иную роль.
func (s *Service) Register(ctx context.Context, name, email, rawPassword string) (int, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return 0, err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return 0, ErrUserExists
		}
		return 0, err
	}
	return id, nil
}

// CreateUserWithRole заводит пользователя с явной ролью.
//
// Привилегированный конструктор для seed-данных и bootstrap администратора,
// не доступен ни с одного HTTP-маршрута.
func (s *Service) CreateUserWithRole(ctx context.Context, name, email, rawPassword string, role models.Role) (int, error) {
	if !role.Valid() {
		return 0, fmt.Errorf("unknown role: %q", role)
	}
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return 0, err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}
	return s.users.CreateUser(ctx, user)
}

// Login проверяет пароль пользователя и возвращает его учётную запись.
//
// Любая причина отказа схлопывается в ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, name, rawPassword string) (*models.User, error) {
	user, err := s.users.GetUserByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// LoginToken выполняет вход и выпускает JWT для JSON API.
func (s *Service) LoginToken(ctx context.Context, name, rawPassword string) (string, models.Actor, error) {
	user, err := s.Login(ctx, name, rawPassword)
	if err != nil {
		return "", models.Actor{}, err
	}
	actor := models.Actor{
		ID:   user.ID,
		Name: user.Name,
		Role: user.Role,
	}
	token, err := s.jwtMaker.GenerateToken(actor)
	if err != nil {
		return "", models.Actor{}, err
	}
	return token, actor, nil
}
