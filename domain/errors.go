package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors. Messages are shown to end users, hence Portuguese.
var (
	ErrUserNotFound       = NewError(ErrCodeNotFound, "usuário não encontrado")
	ErrCompanyNotFound    = NewError(ErrCodeNotFound, "empresa não encontrada")
	ErrColumnNotFound     = NewError(ErrCodeNotFound, "coluna não encontrada")
	ErrTaskNotFound       = NewError(ErrCodeNotFound, "tarefa não encontrada")
	ErrAgentNotFound      = NewError(ErrCodeNotFound, "agente não encontrado")
	ErrInvitationNotFound = NewError(ErrCodeNotFound, "convite não encontrado")
	ErrSessionNotFound    = NewError(ErrCodeNotFound, "sessão não encontrada")
	ErrUnauthorized       = NewError(ErrCodeUnauthorized, "não autorizado")
	ErrInvalidCredentials = NewError(ErrCodeUnauthorized, "email ou senha inválidos")
	ErrInvalidPayload     = NewError(ErrCodeInvalid, "dados inválidos")
	ErrEmptyTaskTitle     = NewError(ErrCodeInvalid, "o título da tarefa é obrigatório")
	ErrInvalidView        = NewError(ErrCodeInvalid, "quadro inválido")
	ErrEmailTaken         = NewError(ErrCodeConflict, "este email já está cadastrado")
	ErrInviteExpired      = NewError(ErrCodeInvalid, "este convite expirou")
	ErrInviteUsed         = NewError(ErrCodeConflict, "este convite já foi utilizado")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
