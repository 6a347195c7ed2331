// Package errs provides the error values the bridge layer responds with.
package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"

	"github.com/jrazmi/stockdata/core/repositories"
	"github.com/jrazmi/stockdata/sdk/validation"
)

// Code names a class of failure and fixes its HTTP status.
type Code string

// Set of error codes.
const (
	InvalidArgument Code = "invalid_argument"
	NotFound        Code = "not_found"
	AlreadyExists   Code = "already_exists"
	Unavailable     Code = "unavailable"
	Internal        Code = "internal"
	// InternalOnlyLog is logged in full but answered as Internal.
	InternalOnlyLog Code = "internal_only_log"
)

var httpStatus = map[Code]int{
	InvalidArgument: http.StatusBadRequest,
	NotFound:        http.StatusNotFound,
	AlreadyExists:   http.StatusConflict,
	Unavailable:     http.StatusServiceUnavailable,
	Internal:        http.StatusInternalServerError,
	InternalOnlyLog: http.StatusInternalServerError,
}

// Error is an application error that encodes as {"code", "message"}.
type Error struct {
	Code     Code                   `json:"code"`
	Message  string                 `json:"message"`
	Fields   validation.FieldErrors `json:"fields,omitempty"`
	FuncName string                 `json:"-"`
	FileName string                 `json:"-"`
}

// New wraps err with code, recording the caller for logs.
func New(code Code, err error) *Error {
	e := newAt(code, err.Error())
	var fe validation.FieldErrors
	if errors.As(err, &fe) {
		e.Fields = fe
	}
	return e
}

// Newf builds an error with a formatted message, recording the caller.
func Newf(code Code, format string, v ...any) *Error {
	return newAt(code, fmt.Sprintf(format, v...))
}

func newAt(code Code, msg string) *Error {
	pc, filename, line, _ := runtime.Caller(2)
	return &Error{
		Code:     code,
		Message:  msg,
		FuncName: runtime.FuncForPC(pc).Name(),
		FileName: fmt.Sprintf("%s:%d", filename, line),
	}
}

// NewFromRepo classifies a repository error by its sentinel.
func NewFromRepo(err error) *Error {
	var code Code
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		code = NotFound
	case errors.Is(err, repositories.ErrDuplicate):
		code = AlreadyExists
	case errors.Is(err, repositories.ErrInvalidReference), errors.Is(err, repositories.ErrInvalidInput):
		code = InvalidArgument
	default:
		code = InternalOnlyLog
	}

	e := newAt(code, err.Error())
	var fe validation.FieldErrors
	if errors.As(err, &fe) {
		e.Fields = fe
	}
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Encode implements the web.Encoder interface.
func (e *Error) Encode() ([]byte, string, error) {
	data, err := json.Marshal(e)
	return data, "application/json", err
}

// HTTPStatus returns the status for the error's code.
func (e *Error) HTTPStatus() int {
	if s, ok := httpStatus[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
