// Package auth signs visitors in and out against the upstream API and
// tracks where each browser session is in the sign-in flow.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/octabyte/emaar-web/activity"
	"github.com/octabyte/emaar-web/apiclient"
	"github.com/octabyte/emaar-web/apierr"
	"github.com/octabyte/emaar-web/enums"
	"github.com/octabyte/emaar-web/models"
	otellog "github.com/octabyte/emaar-web/otel/logger"
	"github.com/octabyte/emaar-web/otel/metrics"
	"github.com/octabyte/emaar-web/session"
)

// AuthAPI is the part of the upstream API the service needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (apiclient.LoginResult, error)
	Logout(ctx context.Context, token string) error
}

// Credentials is the login form.
type Credentials struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type Service struct {
	api       AuthAPI
	store     session.Store
	publisher activity.Publisher
	validate  *validator.Validate

	mu       sync.Mutex
	inflight map[string]int
}

type Option func(*Service)

func WithPublisher(p activity.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithValidator replaces the default validator, typically with one that has
// translations registered.
func WithValidator(v *validator.Validate) Option {
	return func(s *Service) {
		if v != nil {
			s.validate = v
		}
	}
}

func NewService(api AuthAPI, store session.Store, opts ...Option) *Service {
	s := &Service{
		api:       api,
		store:     store,
		publisher: activity.Noop{},
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		inflight:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login exchanges credentials for a token and stores it under sid. Failures
// are *apierr.Error; the caller renders the message for its Kind. Nothing is
// retried.
func (s *Service) Login(ctx context.Context, sid, email, password string) (models.Session, error) {
	s.begin(sid)
	defer s.end(sid)

	creds := Credentials{Email: email, Password: password}
	if err := s.validate.Struct(creds); err != nil {
		apiErr := &apierr.Error{Kind: apierr.KindValidation, Message: "invalid login form", Err: err}
		s.loginFailed(ctx, sid, apiErr)
		return models.Session{}, apiErr
	}

	res, err := s.api.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		apiErr := asAPIError(err)
		s.loginFailed(ctx, sid, apiErr)
		return models.Session{}, apiErr
	}

	user := res.User
	sess := models.Session{Token: res.Token, User: &user, CreatedAt: time.Now().UTC()}
	if err := s.store.Set(ctx, sid, sess); err != nil {
		apiErr := &apierr.Error{Kind: apierr.KindUnknown, Message: "store session", Err: err}
		s.loginFailed(ctx, sid, apiErr)
		return models.Session{}, apiErr
	}

	metrics.RecordLoginAttempt(ctx, metrics.LoginSucceeded, "")
	otellog.InfoCtx(ctx, "login succeeded",
		zap.String("session_id", sid), zap.Uint64("user_id", user.ID), zap.String("role", sess.Role()))
	s.publisher.Publish(ctx, activity.Event{
		Name:      activity.LoginSucceeded,
		SessionID: sid,
		UserID:    user.ID,
		Data:      map[string]any{"role": sess.Role()},
	})
	return sess, nil
}

func (s *Service) loginFailed(ctx context.Context, sid string, err *apierr.Error) {
	metrics.RecordLoginAttempt(ctx, metrics.LoginFailed, string(err.Kind))
	otellog.WarnCtx(ctx, "login failed",
		zap.String("session_id", sid), zap.String("kind", string(err.Kind)), zap.Int("status", err.Status))
	s.publisher.Publish(ctx, activity.Event{
		Name:      activity.LoginFailed,
		SessionID: sid,
		Data:      map[string]any{"kind": string(err.Kind)},
	})
}

// Logout tells the API to revoke the token and forgets the session. The
// local session is cleared whatever the API answers.
func (s *Service) Logout(ctx context.Context, sid string) error {
	current := s.store.Get(ctx, sid)
	if current.Token != "" {
		if err := s.api.Logout(ctx, current.Token); err != nil {
			otellog.WarnCtx(ctx, "upstream logout failed, clearing session anyway",
				zap.String("session_id", sid), zap.String("kind", string(apierr.KindOf(err))))
		}
	}

	if err := s.store.Clear(ctx, sid); err != nil {
		otellog.ErrorCtx(ctx, "clear session", err, zap.String("session_id", sid))
		return err
	}

	event := activity.Event{Name: activity.Logout, SessionID: sid}
	if current.User != nil {
		event.UserID = current.User.ID
	}
	s.publisher.Publish(ctx, event)
	return nil
}

// Rotate moves the session stored under sid to a freshly minted id and
// returns it. The old id holds nothing afterwards.
func (s *Service) Rotate(ctx context.Context, sid string) (string, error) {
	fresh := session.NewID()
	if err := s.store.Set(ctx, fresh, s.store.Get(ctx, sid)); err != nil {
		return "", fmt.Errorf("store rotated session: %w", err)
	}
	if err := s.store.Clear(ctx, sid); err != nil {
		_ = s.store.Clear(ctx, fresh)
		return "", fmt.Errorf("clear previous session: %w", err)
	}
	otellog.DebugCtx(ctx, "session id rotated", zap.String("session_id", fresh))
	return fresh, nil
}

// Invalidate drops a session whose token the API rejected.
func (s *Service) Invalidate(ctx context.Context, sid string) {
	current := s.store.Get(ctx, sid)
	if err := s.store.Clear(ctx, sid); err != nil {
		otellog.ErrorCtx(ctx, "clear invalidated session", err, zap.String("session_id", sid))
	}
	otellog.InfoCtx(ctx, "session invalidated", zap.String("session_id", sid))

	event := activity.Event{Name: activity.SessionInvalidated, SessionID: sid}
	if current.User != nil {
		event.UserID = current.User.ID
	}
	s.publisher.Publish(ctx, event)
}

func (s *Service) Current(ctx context.Context, sid string) models.Session {
	return s.store.Get(ctx, sid)
}

func (s *Service) IsAuthenticated(ctx context.Context, sid string) bool {
	return s.Current(ctx, sid).IsAuthenticated()
}

// State is authenticating while a login for sid is in flight, otherwise
// derived from the stored session.
func (s *Service) State(ctx context.Context, sid string) enums.AuthState {
	if s.Pending(sid) {
		return enums.AuthStateAuthenticating
	}
	if s.IsAuthenticated(ctx, sid) {
		return enums.AuthStateAuthenticated
	}
	return enums.AuthStateAnonymous
}

// Pending reports whether a login for sid is in flight.
func (s *Service) Pending(sid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight[sid] > 0
}

func (s *Service) begin(sid string) {
	s.mu.Lock()
	s.inflight[sid]++
	s.mu.Unlock()
}

func (s *Service) end(sid string) {
	s.mu.Lock()
	if s.inflight[sid] <= 1 {
		delete(s.inflight, sid)
	} else {
		s.inflight[sid]--
	}
	s.mu.Unlock()
}

func asAPIError(err error) *apierr.Error {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &apierr.Error{Kind: apierr.KindUnknown, Err: err}
}
