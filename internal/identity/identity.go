// Package identity handles registration, email verification, login and
// logout against the local user directory. Access keys are opaque tokens
// compared by equality.
package identity

import (
	"context"
	"fmt"
	"math/rand/v2"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/karmaloop/internal/logging"
	"github.com/abhisek/karmaloop/internal/store"
)

// KeyPrefix starts every access key.
const KeyPrefix = "KL-2025-"

const keyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultClarity is the career clarity slider's starting value.
const DefaultClarity = 50

// Service implements the identity operations.
type Service struct {
	directory store.DirectoryRepo
	session   store.SessionRepo
	results   store.ResultRepo
	validate  *validator.Validate
	log       *logging.Logger

	// Now and Rand are replaceable for tests.
	Now  func() time.Time
	Rand *rand.Rand
}

// NewService creates a Service over the given repositories.
func NewService(directory store.DirectoryRepo, session store.SessionRepo, results store.ResultRepo, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Service{
		directory: directory,
		session:   session,
		results:   results,
		validate:  v,
		log:       log,
		Now:       time.Now,
		Rand:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6b61726d61)),
	}
}

// NewKey generates a fresh access key.
func (s *Service) NewKey() string {
	var b strings.Builder
	b.WriteString(KeyPrefix)
	for range 4 {
		b.WriteByte(keyAlphabet[s.Rand.IntN(len(keyAlphabet))])
	}
	return b.String()
}

// VerifyEmail checks the email format and that it is not registered yet,
// then issues the access key the user keeps for life.
func (s *Service) VerifyEmail(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") ||
		s.validate.Var(email, "required,email") != nil {
		return "", &ValidationError{Fields: []FieldError{{Field: "identity.email", Rule: "email"}}}
	}

	existing, err := s.directory.Find(ctx, email)
	if err != nil {
		return "", fmt.Errorf("verify email: %w", err)
	}
	if existing != nil {
		return "", ErrAlreadyRegistered
	}

	key := s.NewKey()
	s.log.Info("email verified", "email", email)
	return key, nil
}

// Register validates rec, stores it (replacing any record with the same
// email) and logs the user in.
func (s *Service) Register(ctx context.Context, rec store.UserRecord) (*store.UserRecord, error) {
	rec = normalize(rec)
	if err := s.validate.Struct(rec); err != nil {
		return nil, fromValidator(err)
	}
	if rec.Timestamp == "" {
		rec.Timestamp = s.Now().UTC().Format(time.RFC3339Nano)
	}

	if err := s.directory.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := s.session.Set(ctx, rec); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	s.log.Info("user registered", "email", rec.Identity.Email)
	return &rec, nil
}

// Login sets the session pointer when email and key both match a record.
func (s *Service) Login(ctx context.Context, email, key string) (*store.UserRecord, error) {
	email, key = strings.TrimSpace(email), strings.TrimSpace(key)

	rec, err := s.directory.Find(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if rec == nil || rec.Identity.AccessKey != key {
		s.log.Warn("login denied", "email", email)
		return nil, ErrNotFound
	}

	if err := s.session.Set(ctx, *rec); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	s.log.Info("login", "email", email)
	return rec, nil
}

// Logout clears the session pointer and the latest result.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if err := s.results.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info("logout")
	return nil
}

// Current returns the logged-in user, or nil for a guest.
func (s *Service) Current(ctx context.Context) (*store.UserRecord, error) {
	rec, err := s.session.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return rec, nil
}

// ProfileEdit carries the fields the profile editor may change. Empty
// Interest leaves the interests untouched.
type ProfileEdit struct {
	Name     string
	Field    string
	Interest string
}

// UpdateProfile applies edit to the logged-in user. The access key and
// email never change.
func (s *Service) UpdateProfile(ctx context.Context, edit ProfileEdit) (*store.UserRecord, error) {
	cur, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, ErrNotLoggedIn
	}

	rec := *cur
	rec.Identity.Name = edit.Name
	rec.Academic.Field = edit.Field
	if interest := strings.TrimSpace(edit.Interest); interest != "" {
		rec.Career.Interests = append([]string(nil), rec.Career.Interests...)
		if len(rec.Career.Interests) == 0 {
			rec.Career.Interests = []string{interest}
		} else {
			rec.Career.Interests[0] = interest
		}
	}

	rec = normalize(rec)
	if err := s.validate.Struct(rec); err != nil {
		return nil, fromValidator(err)
	}
	if err := s.directory.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if err := s.session.Set(ctx, rec); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &rec, nil
}

func normalize(rec store.UserRecord) store.UserRecord {
	rec.Identity.Name = strings.TrimSpace(rec.Identity.Name)
	rec.Identity.Email = strings.TrimSpace(rec.Identity.Email)
	rec.Identity.AccessKey = strings.TrimSpace(rec.Identity.AccessKey)
	rec.Academic.Institution = strings.TrimSpace(rec.Academic.Institution)
	rec.Academic.Qualification = strings.TrimSpace(rec.Academic.Qualification)
	rec.Academic.Field = strings.TrimSpace(rec.Academic.Field)
	if rec.Career.Interests == nil {
		rec.Career.Interests = []string{}
	}
	return rec
}
