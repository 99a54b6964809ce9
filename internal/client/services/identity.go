// Package services holds the shopper-facing application services of the
// footcap client: identity (signup, login, session), the per-user cart and
// wishlist, and checkout. All state is persisted through a kv.Repository.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/footcap/internal/client/events"
	"github.com/dmitrijs2005/footcap/internal/client/models"
	"github.com/dmitrijs2005/footcap/internal/client/repositories/kv"
	"github.com/dmitrijs2005/footcap/internal/client/session"
	"github.com/dmitrijs2005/footcap/internal/common"
	"github.com/dmitrijs2005/footcap/internal/cryptox"
	"github.com/dmitrijs2005/footcap/internal/logging"
	"github.com/google/uuid"
)

const sessionSecretSize = 32

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IdentityProvider is the read side of IdentityService that the cart,
// wishlist and checkout depend on.
type IdentityProvider interface {
	CurrentUser() (*models.User, bool)
	IsLoggedIn() bool
}

// IdentityService manages registered users and the single active session.
//
// Contract:
//   - SignUp: register a new user and log them in.
//   - LogIn: verify credentials and establish a session.
//   - LogOut: drop the session; a no-op when nobody is logged in.
//   - Restore: pick up the session persisted by a previous run.
//   - ClearLocalData: log out and delete everything footcap has stored.
//
// SignUp, LogIn and Restore publish events.UserLoggedIn on success; LogOut
// publishes events.UserLoggedOut when it actually ended a session.
type IdentityService interface {
	IdentityProvider
	SignUp(ctx context.Context, name, email string, password []byte) (*models.User, error)
	LogIn(ctx context.Context, email string, password []byte) (*models.User, error)
	LogOut(ctx context.Context) error
	Restore(ctx context.Context) error
	ClearLocalData(ctx context.Context) (int, error)
}

type identityService struct {
	repo kv.Repository
	bus  *events.Bus
	log  logging.Logger
	ttl  time.Duration
	now  func() time.Time

	mu      sync.RWMutex
	current *models.User
	secret  []byte
}

// NewIdentityService returns an IdentityService with no active session.
// sessionTTL bounds the validity of persisted session tokens.
func NewIdentityService(repo kv.Repository, bus *events.Bus, log logging.Logger, sessionTTL time.Duration) IdentityService {
	return &identityService{
		repo: repo,
		bus:  bus,
		log:  log.With("component", "identity"),
		ttl:  sessionTTL,
		now:  time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *identityService) SignUp(ctx context.Context, name, email string, password []byte) (*models.User, error) {
	email = normalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: please enter a valid email address", common.ErrValidation)
	}
	if len(password) < common.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters long", common.ErrValidation, common.MinPasswordLength)
	}

	users, err := loadList[models.User](ctx, s.repo, s.log, KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("load users error: %w", err)
	}
	for _, u := range users {
		if u.Email == email {
			return nil, common.ErrConflict
		}
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: cryptox.HashPassword(password),
		CreatedAt:    s.now().UTC(),
	}
	users = append(users, user)

	usersEntry, err := encode(KeyUsers, users)
	if err != nil {
		return nil, err
	}
	sessEntry, sess, err := s.newSession(ctx, user)
	if err != nil {
		return nil, err
	}

	// The new user and the session pointer land together or not at all.
	if err := s.repo.SetMany(ctx, usersEntry, sessEntry); err != nil {
		return nil, fmt.Errorf("save user error: %w", err)
	}

	s.log.Info(ctx, "user signed up", "user_id", user.ID)
	s.activate(ctx, sess.User)
	return &sess.User, nil
}

func (s *identityService) LogIn(ctx context.Context, email string, password []byte) (*models.User, error) {
	email = normalizeEmail(email)

	users, err := loadList[models.User](ctx, s.repo, s.log, KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("load users error: %w", err)
	}

	var found *models.User
	for i := range users {
		if users[i].Email == email {
			found = &users[i]
			break
		}
	}
	if found == nil {
		return nil, common.ErrInvalidCredentials
	}

	ok, err := cryptox.VerifyPassword(found.PasswordHash, password)
	if err != nil {
		s.log.Warn(ctx, "stored password hash unreadable", "user_id", found.ID, "error", err)
		return nil, common.ErrInvalidCredentials
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	sessEntry, sess, err := s.newSession(ctx, *found)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Set(ctx, sessEntry.Key, sessEntry.Value); err != nil {
		return nil, fmt.Errorf("save session error: %w", err)
	}

	s.log.Info(ctx, "user logged in", "user_id", found.ID)
	s.activate(ctx, sess.User)
	return &sess.User, nil
}

func (s *identityService) LogOut(ctx context.Context) error {
	s.mu.RLock()
	cur := s.current
	s.mu.RUnlock()
	if cur == nil {
		return nil
	}

	if err := s.repo.Delete(ctx, KeyCurrentUser); err != nil {
		return fmt.Errorf("delete session error: %w", err)
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.log.Info(ctx, "user logged out", "user_id", cur.ID)
	if err := s.bus.Publish(ctx, events.UserLoggedOut{}); err != nil {
		s.log.Error(ctx, "logout subscriber failed", "error", err)
	}
	return nil
}

// ClearLocalData ends the session, then removes every stored key: users, the
// session secret, carts, wishlists and orders. It returns how many keys were
// removed.
func (s *identityService) ClearLocalData(ctx context.Context) (int, error) {
	if err := s.LogOut(ctx); err != nil {
		return 0, err
	}

	stored, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list stored data error: %w", err)
	}
	if err := s.repo.Clear(ctx); err != nil {
		return 0, fmt.Errorf("clear stored data error: %w", err)
	}

	s.mu.Lock()
	s.secret = nil
	s.mu.Unlock()

	s.log.Info(ctx, "local data cleared", "keys", len(stored))
	return len(stored), nil
}

// Restore loads the persisted session pointer. A pointer that does not parse
// or whose token fails verification is removed and treated as no session.
func (s *identityService) Restore(ctx context.Context) error {
	data, err := s.repo.Get(ctx, KeyCurrentUser)
	if err != nil {
		return fmt.Errorf("load session error: %w", err)
	}
	if data == nil {
		return nil
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.log.Warn(ctx, "discarding unreadable session", "error", err)
		return s.discardSession(ctx)
	}

	secret, err := s.sessionSecret(ctx)
	if err != nil {
		return err
	}
	userID, err := session.UserIDFromToken(sess.Token, secret)
	if err != nil || userID != sess.User.ID {
		reason := "user mismatch"
		if err != nil {
			reason = err.Error()
		}
		s.log.Info(ctx, "discarding stale session", "user_id", sess.User.ID, "reason", reason)
		return s.discardSession(ctx)
	}

	s.log.Debug(ctx, "session restored", "user_id", userID)
	s.activate(ctx, sess.User)
	return nil
}

func (s *identityService) IsLoggedIn() bool {
	_, ok := s.CurrentUser()
	return ok
}

// CurrentUser returns a copy of the logged-in user.
func (s *identityService) CurrentUser() (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, false
	}
	u := *s.current
	return &u, true
}

func (s *identityService) activate(ctx context.Context, u models.User) {
	s.mu.Lock()
	s.current = &u
	s.mu.Unlock()

	if err := s.bus.Publish(ctx, events.UserLoggedIn{User: u}); err != nil {
		s.log.Error(ctx, "login subscriber failed", "user_id", u.ID, "error", err)
	}
}

func (s *identityService) discardSession(ctx context.Context) error {
	if err := s.repo.Delete(ctx, KeyCurrentUser); err != nil {
		return fmt.Errorf("delete session error: %w", err)
	}
	return nil
}

func (s *identityService) newSession(ctx context.Context, u models.User) (kv.Entry, models.Session, error) {
	secret, err := s.sessionSecret(ctx)
	if err != nil {
		return kv.Entry{}, models.Session{}, err
	}
	token, err := session.GenerateToken(u.ID, secret, s.ttl)
	if err != nil {
		return kv.Entry{}, models.Session{}, err
	}

	sess := models.Session{User: u.Public(), Token: token, CreatedAt: s.now().UTC()}
	e, err := encode(KeyCurrentUser, sess)
	return e, sess, err
}

// sessionSecret returns the token signing key, creating and persisting one on
// first use. The key is stored as a JSON string (base64 of the raw bytes); an
// unreadable or short value is replaced, which invalidates existing sessions.
func (s *identityService) sessionSecret(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	secret := s.secret
	s.mu.RUnlock()
	if secret != nil {
		return secret, nil
	}

	data, err := s.repo.Get(ctx, KeySessionSecret)
	if err != nil {
		return nil, fmt.Errorf("load session secret error: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &secret); err != nil || len(secret) < sessionSecretSize {
			s.log.Warn(ctx, "replacing unreadable session secret", "error", err)
			secret = nil
		}
	}
	if secret == nil {
		secret = common.GenerateRandByteArray(sessionSecretSize)
		if err := saveJSON(ctx, s.repo, KeySessionSecret, secret); err != nil {
			return nil, fmt.Errorf("save session secret error: %w", err)
		}
	}

	s.mu.Lock()
	s.secret = secret
	s.mu.Unlock()
	return secret, nil
}
