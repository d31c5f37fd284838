package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind is the closed set of failures the presentation layer distinguishes.
type Kind string

const (
	KindNetwork      Kind = "network"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindValidation   Kind = "validation"
	KindRateLimited  Kind = "rate_limited"
	KindServer       Kind = "server"
	KindUnknown      Kind = "unknown"
)

var Kinds = []Kind{
	KindNetwork,
	KindUnauthorized,
	KindForbidden,
	KindValidation,
	KindRateLimited,
	KindServer,
	KindUnknown,
}

// Error is returned by every upstream call that did not succeed.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Fields carries per-field validation messages from a 422 response.
	Fields map[string][]string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Status > 0 {
		fmt.Fprintf(&b, " (%d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MessageKey is the i18n key of the user facing message for the kind.
func (e *Error) MessageKey() string {
	return MessageKey(e.Kind)
}

func MessageKey(k Kind) string {
	return "errors." + string(k)
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// KindFromStatus maps an HTTP status code onto a Kind. 2xx and 3xx map to
// KindUnknown since they are not failures.
func KindFromStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusUnprocessableEntity, status == http.StatusBadRequest:
		return KindValidation
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// Classify turns a finished (or failed) upstream exchange into an *Error.
// A non-nil transportErr always yields KindNetwork.
func Classify(status int, body []byte, transportErr error) *Error {
	if transportErr != nil {
		return &Error{Kind: KindNetwork, Err: transportErr}
	}

	e := &Error{Kind: KindFromStatus(status), Status: status}
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return e
	}

	e.Message = gjson.GetBytes(body, "message").String()
	if errs := gjson.GetBytes(body, "errors"); errs.IsObject() {
		e.Fields = make(map[string][]string)
		errs.ForEach(func(field, msgs gjson.Result) bool {
			if msgs.IsArray() {
				for _, m := range msgs.Array() {
					e.Fields[field.String()] = append(e.Fields[field.String()], m.String())
				}
			} else {
				e.Fields[field.String()] = []string{msgs.String()}
			}
			return true
		})
	}
	return e
}

// KindOf returns the Kind carried by err, KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
