// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/tasknest/internal/platform/apperr"
	"github.com/taibuivan/tasknest/internal/platform/revocation"
	"github.com/taibuivan/tasknest/internal/platform/sec"
	"github.com/taibuivan/tasknest/internal/users/auth"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// # Clock

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *fakeClock) Advance(d time.Duration) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.now = clock.now.Add(d)
}

// # User Repository

// memoryUsers is an in-memory [auth.UserRepository] enforcing the same
// uniqueness rules as the users.account indexes.
type memoryUsers struct {
	mu      sync.Mutex
	byID    map[string]*auth.User
	failing error
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byID: make(map[string]*auth.User)}
}

func (repository *memoryUsers) find(match func(*auth.User) bool) (*auth.User, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.failing != nil {
		return nil, repository.failing
	}
	for _, user := range repository.byID {
		if match(user) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	return repository.find(func(user *auth.User) bool { return user.ID == id })
}

func (repository *memoryUsers) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	return repository.find(func(user *auth.User) bool { return user.Username == username })
}

func (repository *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return repository.find(func(user *auth.User) bool { return user.Email == email })
}

func (repository *memoryUsers) Create(_ context.Context, user *auth.User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, existing := range repository.byID {
		if existing.Username == user.Username {
			return auth.ErrDuplicateUsername
		}
		if existing.Email == user.Email {
			return auth.ErrDuplicateEmail
		}
	}
	user.CreatedAt = time.Now().UTC()
	clone := *user
	repository.byID[user.ID] = &clone
	return nil
}

func (repository *memoryUsers) UpdatePassword(_ context.Context, userID, newHash string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.byID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

func (repository *memoryUsers) setRole(username string, role sec.UserRole) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	for _, user := range repository.byID {
		if user.Username == username {
			user.Role = role
		}
	}
}

func (repository *memoryUsers) remove(username string) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	for id, user := range repository.byID {
		if user.Username == username {
			delete(repository.byID, id)
		}
	}
}

// # Events & Metrics

type publishedEvent struct {
	topic   string
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (publisher *recordingPublisher) Publish(_ context.Context, topic string, payload any) error {
	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	if publisher.err != nil {
		return publisher.err
	}
	publisher.events = append(publisher.events, publishedEvent{topic: topic, payload: payload})
	return nil
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (recorder *countingRecorder) AuthEvent(event, outcome string) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	if recorder.counts == nil {
		recorder.counts = make(map[string]int)
	}
	recorder.counts[event+"/"+outcome]++
}

// failingRevocations fails every call.
type failingRevocations struct{}

func (failingRevocations) Revoke(context.Context, string, time.Duration) error {
	return errors.New("revocation backend down")
}

func (failingRevocations) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("revocation backend down")
}

// # Fixture

type fixture struct {
	clock       *fakeClock
	users       *memoryUsers
	tokens      *sec.TokenService
	revocations *revocation.MemoryStore
	publisher   *recordingPublisher
	recorder    *countingRecorder
	service     *auth.Service
	guard       *auth.Guard
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tokens, err := sec.NewTokenService(testSecret, "tasknest.test", 7*24*time.Hour, sec.WithClock(clock.Now))
	require.NoError(t, err)

	f := &fixture{
		clock:       clock,
		users:       newMemoryUsers(),
		tokens:      tokens,
		revocations: revocation.NewMemoryStore(revocation.WithClock(clock.Now)),
		publisher:   &recordingPublisher{},
		recorder:    &countingRecorder{},
	}

	f.service = auth.NewService(f.users, sec.NewHasher(bcrypt.MinCost), f.tokens, f.revocations, discardLogger(),
		auth.WithEvents(f.publisher),
		auth.WithRecorder(f.recorder),
	)
	f.guard = auth.NewGuard(f.users, f.tokens, f.revocations, nil, discardLogger())

	return f
}

// register creates an account directly through the service, as an admin actor.
func (f *fixture) register(t *testing.T, username string, role sec.UserRole) *auth.User {
	t.Helper()

	admin := &sec.Principal{Role: sec.RoleAdmin}
	user, err := f.service.Register(context.Background(), auth.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse battery",
		Role:     role,
	}, admin)
	require.NoError(t, err)
	return user
}

// login returns a token pair for an account created with [fixture.register].
func (f *fixture) login(t *testing.T, username string) *auth.TokenPair {
	t.Helper()

	pair, err := f.service.Login(context.Background(), username, "correct horse battery")
	require.NoError(t, err)
	return pair
}
