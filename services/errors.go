package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("User not authorized")
	ErrInvalidResetToken = errors.New("Password reset token is invalid or has expired")
	ErrUnknownEmail      = errors.New("User with that email does not exist")
)

// Messages for validation failures that are not tied to a single field.
const (
	msgInvalidCredentials = "Invalid Credentials"
	msgUserExists         = "User already exists"
)

// NotFoundError names the resource that did not resolve.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(resource string) error { return &NotFoundError{Resource: resource} }

// FieldError is a single input problem, reported before any store access.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Msg
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func invalid(param, msg string) error {
	return &ValidationError{Errors: []FieldError{{Msg: msg, Param: param}}}
}

// lookupErr turns a missing record into a NotFoundError and passes anything else through.
func lookupErr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(resource)
	}
	return err
}
