package service

import (
	"errors"
	"fmt"
)

// ErrNotFound возвращается когда заявка или пользователь исчезли из
// хранилища к моменту операции
var ErrNotFound = errors.New("not found")

// ErrInvalidCredentials возвращается при неверной паре email/пароль
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError ошибка валидации конкретного поля заявки
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConflictError пересечение кандидата с существующим слотом.
// Reason - готовый текст для пользователя.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}
