package domain

import (
	"errors"
	"fmt"

	"git.appkode.ru/pub/go/failure"

	"deal_radar/pkg/errcodes"
)

// AppError представляет доменную ошибку приложения.
type AppError struct {
	Code    failure.ErrorCode
	Message string
	cause   error
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap возвращает обёрнутую ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.cause
}

// NewError создаёт новую доменную ошибку.
func NewError(code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WrapError оборачивает существующую ошибку с доменным контекстом.
func WrapError(err error, code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   err,
	}
}

// IsAppError проверяет, является ли ошибка доменной.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetCode извлекает код ошибки, если это AppError.
func GetCode(err error) (failure.ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}

// HasCode сообщает, несёт ли ошибка указанный код.
func HasCode(err error, code failure.ErrorCode) bool {
	got, ok := GetCode(err)
	return ok && got == code
}

// IsNotFound отличает ожидаемое "игра не найдена" от сбоев адаптера.
func IsNotFound(err error) bool {
	return HasCode(err, errcodes.GameNotFound)
}

// IsConfigurationError сообщает об ошибке конфигурации или списка игр.
func IsConfigurationError(err error) bool {
	code, ok := GetCode(err)
	if !ok {
		return false
	}

	switch code {
	case errcodes.InvalidConfiguration, errcodes.GameListMissing, errcodes.GameListEmpty:
		return true
	default:
		return false
	}
}
