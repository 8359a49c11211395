// Package errs содержит доменные ошибки-сентинелы, общие для всех слоёв.
// Хранилище и сервисы оборачивают их через fmt.Errorf("%s: %w", op, err),
// HTTP-обработчики сопоставляют их через errors.Is с кодами статусов.
package errs

import "errors"

var (
	// ErrNotFound — запрошенная активная запись не найдена по id или email.
	ErrNotFound = errors.New("entity not found")
	// ErrInvalidArgument — нарушено правило валидации входных данных.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict — конфликт бизнес-правила, например дубликат email
	// среди активных пользователей.
	ErrConflict = errors.New("business rule conflict")
	// ErrInvalidCredentials — неверная пара email/пароль при входе.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
