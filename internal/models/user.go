// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля, дату рождения и
// признак мягкого удаления.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Email уникален только среди активных пользователей: после мягкого
// удаления адрес может быть использован повторно.
type User struct {
	ID           string    // Идентификатор, назначается хранилищем
	UUID         string    // Внешний uuid, назначается при создании
	Name         string    // Имя пользователя
	Email        string    // Электронная почта
	PasswordHash string    // Хэш пароля пользователя
	Birthday     time.Time // Дата рождения (точность до дня)
	Active       bool      // Признак мягкого удаления
	CreatedAt    time.Time // Время создания
	UpdatedAt    time.Time // Время последнего обновления
}

// DummyUser используется для приёма данных пользователя из JSON-запроса.
// Дата рождения приходит строкой в формате 2006-01-02.
type DummyUser struct {
	Name     string `json:"name" validate:"required,min=1,max=100"` // Имя
	Email    string `json:"email" validate:"required,email"`        // Электронная почта
	Password string `json:"password" validate:"required,min=8"`     // Пароль
	Birthday string `json:"birthday" validate:"required"`           // Дата рождения
}
