// Package services содержит логику бизнес-уровня для работы с пользователями
// и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/crystal-plan/internal/errs"
	"github.com/magabrotheeeer/crystal-plan/internal/lib/birthday"
	"github.com/magabrotheeeer/crystal-plan/internal/lib/jwt"
	"github.com/magabrotheeeer/crystal-plan/internal/lib/password"
	"github.com/magabrotheeeer/crystal-plan/internal/lib/sl"
	"github.com/magabrotheeeer/crystal-plan/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// GetUser возвращает активного пользователя по ID.
	GetUser(ctx context.Context, id string) (*models.User, error)
	// GetUserByEmail возвращает активного пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ExistsUserByEmail сообщает, занят ли email активным пользователем.
	ExistsUserByEmail(ctx context.Context, email string) (bool, error)
	// UpdateUser обновляет данные пользователя по ID.
	UpdateUser(ctx context.Context, user models.User, id string) (int64, error)
	// DeleteUser мягко удаляет пользователя по ID.
	DeleteUser(ctx context.Context, id string) (int64, error)
}

// EventSaver сохраняет события, создаваемые при регистрации пользователя.
type EventSaver interface {
	CreateEvent(ctx context.Context, event models.Event) (string, error)
}

// UserService отвечает за регистрацию, авторизацию и управление профилем.
type UserService struct {
	users    UserRepository
	events   EventSaver
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users UserRepository, events EventSaver, jwtMaker jwt.Maker, log *slog.Logger) *UserService {
	return &UserService{
		users:    users,
		events:   events,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля и генерирует
// для него события дней рождения на годы вперед. Ошибки генерации событий
// не откатывают регистрацию, они только логируются.
func (s *UserService) Register(ctx context.Context, req models.DummyUser) (string, error) {
	birthDate, err := time.Parse("2006-01-02", req.Birthday)
	if err != nil {
		return "", fmt.Errorf("%w: invalid birthday: %v", errs.ErrInvalidArgument, err)
	}

	taken, err := s.users.ExistsUserByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if taken {
		return "", fmt.Errorf("%w: email already registered", errs.ErrConflict)
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	user := models.User{
		UUID:         uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
		Birthday:     birthDate,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return "", err
	}
	user.ID = id

	s.log.Info("registered new user", slog.String("id", id))

	s.createBirthdayEvents(ctx, user, now)

	return id, nil
}

// createBirthdayEvents сохраняет серию событий дней рождения пользователя.
func (s *UserService) createBirthdayEvents(ctx context.Context, user models.User, now time.Time) {
	for _, event := range birthday.Events(user, now) {
		event.UUID = uuid.New().String()
		event.Active = true
		event.CreatedAt = now
		event.UpdatedAt = now
		if err := event.Validate(); err != nil {
			s.log.Warn("skipping invalid birthday event", sl.Err(err))
			continue
		}
		if _, err := s.events.CreateEvent(ctx, event); err != nil {
			s.log.Warn("failed to save birthday event",
				slog.String("user_id", user.ID), sl.Err(err))
		}
	}
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *UserService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", errs.ErrInvalidCredentials
		}
		return "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", errs.ErrInvalidCredentials
	}
	return s.jwtMaker.GenerateToken(user.ID, user.Email)
}

// Get возвращает активного пользователя по ID.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetUser(ctx, id)
}

// Update обновляет имя, email и дату рождения пользователя.
func (s *UserService) Update(ctx context.Context, req models.DummyUser, id string) (int64, error) {
	birthDate, err := time.Parse("2006-01-02", req.Birthday)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid birthday: %v", errs.ErrInvalidArgument, err)
	}

	existing, err := s.users.GetUser(ctx, id)
	if err != nil {
		return 0, err
	}

	hashed := existing.PasswordHash
	if req.Password != "" {
		hashed, err = password.GetHash(req.Password)
		if err != nil {
			return 0, err
		}
	}

	user := models.User{
		UUID:         existing.UUID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
		Birthday:     birthDate,
		Active:       true,
		CreatedAt:    existing.CreatedAt,
		UpdatedAt:    time.Now().UTC(),
	}

	return s.users.UpdateUser(ctx, user, id)
}

// Delete мягко удаляет пользователя. Его email после этого может быть
// использован при новой регистрации.
func (s *UserService) Delete(ctx context.Context, id string) (int64, error) {
	return s.users.DeleteUser(ctx, id)
}
