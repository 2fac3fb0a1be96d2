package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/martin/resumeai/internal/ai"
	"github.com/martin/resumeai/internal/config"
	"github.com/martin/resumeai/internal/db"
	"github.com/martin/resumeai/internal/server/middleware"
	"github.com/martin/resumeai/internal/server/ratelimit"
	"github.com/martin/resumeai/internal/types"
)

// fakeDB is an in-memory Database implementation for handler tests.
type fakeDB struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*db.User
	emails  map[string]uuid.UUID
	resumes map[uuid.UUID]*db.Resume
	letters map[uuid.UUID]*db.CoverLetter
	subs    map[uuid.UUID]*db.Subscription

	// failNext forces the next call to fail, for error-path tests.
	failNext error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:   make(map[uuid.UUID]*db.User),
		emails:  make(map[string]uuid.UUID),
		resumes: make(map[uuid.UUID]*db.Resume),
		letters: make(map[uuid.UUID]*db.CoverLetter),
		subs:    make(map[uuid.UUID]*db.Subscription),
	}
}

func (f *fakeDB) takeFailure() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeDB) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return uuid.Nil, err
	}
	id := uuid.New()
	now := time.Now()
	f.users[id] = &db.User{ID: id, Name: name, Email: email, PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	f.emails[email] = id
	return id, nil
}

func (f *fakeDB) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	id, ok := f.emails[email]
	if !ok {
		return nil, nil
	}
	copied := *f.users[id]
	return &copied, nil
}

func (f *fakeDB) CheckEmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return false, err
	}
	_, ok := f.emails[email]
	return ok, nil
}

func (f *fakeDB) UpdateUser(_ context.Context, id uuid.UUID, name, phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	if u, ok := f.users[id]; ok {
		u.Name = name
		u.Phone = phone
		u.UpdatedAt = time.Now()
	}
	return nil
}

func (f *fakeDB) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	if u, ok := f.users[id]; ok {
		u.PasswordHash = passwordHash
		u.UpdatedAt = time.Now()
	}
	return nil
}

func (f *fakeDB) CreateResume(_ context.Context, userID uuid.UUID, title string, content json.RawMessage, aiGenerated bool, aiScore int) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return uuid.Nil, err
	}
	id := uuid.New()
	now := time.Now()
	f.resumes[id] = &db.Resume{ID: id, UserID: userID, Title: title, Content: content, AIGenerated: aiGenerated, AIScore: aiScore, CreatedAt: now, UpdatedAt: now}
	return id, nil
}

func (f *fakeDB) GetResume(_ context.Context, id uuid.UUID) (*db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	r, ok := f.resumes[id]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (f *fakeDB) ListResumes(_ context.Context, userID uuid.UUID) ([]db.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	var out []db.Resume
	for _, r := range f.resumes {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeDB) UpdateResume(_ context.Context, id uuid.UUID, title string, content json.RawMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	if r, ok := f.resumes[id]; ok {
		r.Title = title
		r.Content = content
		r.UpdatedAt = time.Now()
	}
	return nil
}

func (f *fakeDB) DeleteResume(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	delete(f.resumes, id)
	return nil
}

func (f *fakeDB) CountAIResumes(_ context.Context, userID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return 0, err
	}
	count := 0
	for _, r := range f.resumes {
		if r.UserID == userID && r.AIGenerated {
			count++
		}
	}
	return count, nil
}

func (f *fakeDB) CreateCoverLetter(_ context.Context, userID uuid.UUID, title string, content json.RawMessage) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return uuid.Nil, err
	}
	id := uuid.New()
	now := time.Now()
	f.letters[id] = &db.CoverLetter{ID: id, UserID: userID, Title: title, Content: content, CreatedAt: now, UpdatedAt: now}
	return id, nil
}

func (f *fakeDB) GetCoverLetter(_ context.Context, id uuid.UUID) (*db.CoverLetter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	l, ok := f.letters[id]
	if !ok {
		return nil, nil
	}
	copied := *l
	return &copied, nil
}

func (f *fakeDB) ListCoverLetters(_ context.Context, userID uuid.UUID) ([]db.CoverLetter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	var out []db.CoverLetter
	for _, l := range f.letters {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeDB) DeleteCoverLetter(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	delete(f.letters, id)
	return nil
}

func (f *fakeDB) GetSubscription(_ context.Context, userID uuid.UUID) (*db.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}
	s, ok := f.subs[userID]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (f *fakeDB) UpsertSubscription(_ context.Context, userID uuid.UUID, plan, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	now := time.Now()
	f.subs[userID] = &db.Subscription{UserID: userID, Plan: plan, Status: status, CreatedAt: now, UpdatedAt: now}
	return nil
}

// stubGenerator returns canned generation results.
type stubGenerator struct {
	resume    *ai.GeneratedResume
	resumeErr error
	letter    types.NormalizedContent
	letterErr error

	lastResumeInput types.ResumeInput
	lastProvider    string
}

func (s *stubGenerator) GenerateResumeContent(_ context.Context, input types.ResumeInput, provider string) (*ai.GeneratedResume, error) {
	s.lastResumeInput = input
	s.lastProvider = provider
	if s.resumeErr != nil {
		return nil, s.resumeErr
	}
	if s.resume != nil {
		return s.resume, nil
	}
	return &ai.GeneratedResume{
		Content: types.NormalizedContent{"summary": "Generated summary"},
		Score:   60,
	}, nil
}

func (s *stubGenerator) GenerateCoverLetterContent(_ context.Context, input types.CoverLetterInput, provider string) (types.NormalizedContent, error) {
	s.lastProvider = provider
	if s.letterErr != nil {
		return nil, s.letterErr
	}
	if s.letter != nil {
		return s.letter, nil
	}
	return types.NormalizedContent{"greeting": "Dear Hiring Manager,"}, nil
}

// newTestServer builds a Server wired to the fake database and stub
// generator, with rate limiting disabled.
func newTestServer(_ *testing.T, database Database, gen ContentGenerator) *Server {
	passwordConfig := &config.PasswordConfig{BcryptCost: 4} // min cost for fast tests
	jwtConfig := &config.JWTConfig{
		Secret:     "test-secret-key-for-jwt-signing-minimum-32-bytes",
		Expiration: 24 * time.Hour,
	}

	if gen == nil {
		gen = &stubGenerator{}
	}

	s := &Server{
		db:          database,
		registry:    ai.NewRegistry(),
		gateway:     gen,
		rateLimiter: ratelimit.NewLimiter(&ratelimit.Config{Enabled: false}),
	}
	s.userService = NewUserService(database, passwordConfig)
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)
	return s
}

// createTestUser registers a user directly through the service and returns
// its ID and a valid bearer token.
func createTestUser(t *testing.T, s *Server, email string) (uuid.UUID, string) {
	t.Helper()

	user, err := s.userService.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Test User",
		Email:    email,
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user.ID, token
}

// authedRequest builds a request carrying the authenticated user in its
// context, bypassing the JWT middleware for direct handler tests.
func authedRequest(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(middleware.WithUserID(r.Context(), userID))
}

var errDatabaseDown = fmt.Errorf("database down")
