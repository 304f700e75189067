package services

import (
	"context"
	"errors"
	"safecity-service/internal/domain"
	"safecity-service/internal/ports"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type fakeProvider struct {
	mu       sync.Mutex
	calls    int
	features []domain.Feature
	err      error
}

func (p *fakeProvider) FetchNearby(ctx context.Context, category domain.Category, center domain.Coordinates) ([]domain.Feature, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.features, p.err
}

func (p *fakeProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type fakePlaceCache struct {
	mu        sync.Mutex
	rows      []domain.CachedPlace
	upserts   [][]domain.CachedPlace
	upsertErr error
	listErr   error
	lists     int
}

func (c *fakePlaceCache) UpsertMany(ctx context.Context, places []domain.CachedPlace) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.upserts = append(c.upserts, places)
	return c.upsertErr
}

func (c *fakePlaceCache) ListByCategory(ctx context.Context, category domain.Category, limit int) ([]domain.CachedPlace, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists++
	if c.listErr != nil {
		return nil, c.listErr
	}

	out := make([]domain.CachedPlace, 0)
	for _, r := range c.rows {
		if r.Category == category && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (c *fakePlaceCache) Upserts() [][]domain.CachedPlace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.upserts
}

type fakeUsers struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*domain.User
	history []domain.LocationEntry
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeUsers) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	cp := *u
	r.byID[u.ID] = &cp
	return nil
}

func (r *fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUsers) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return r.mutate(id, func(u *domain.User) { u.Verified = true })
}

func (r *fakeUsers) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.mutate(id, func(u *domain.User) { u.PasswordHash = passwordHash })
}

func (r *fakeUsers) UpdateName(ctx context.Context, id uuid.UUID, name string) (*domain.User, error) {
	if err := r.mutate(id, func(u *domain.User) { u.Name = name }); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *fakeUsers) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeUsers) RecordLocation(ctx context.Context, id uuid.UUID, c domain.Coordinates) (*domain.User, *domain.LocationEntry, error) {
	if err := r.mutate(id, func(u *domain.User) { loc := c; u.Location = &loc }); err != nil {
		return nil, nil, err
	}

	entry := domain.LocationEntry{ID: uuid.New(), UserID: id, Coordinates: c, RecordedAt: time.Now()}
	r.mu.Lock()
	r.history = append(r.history, entry)
	r.mu.Unlock()

	u, err := r.GetByID(ctx, id)
	return u, &entry, err
}

func (r *fakeUsers) mutate(id uuid.UUID, fn func(u *domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	fn(u)
	return nil
}

type fakeOTPs struct {
	mu    sync.Mutex
	codes map[string]string
}

func newFakeOTPs() *fakeOTPs { return &fakeOTPs{codes: make(map[string]string)} }

func (s *fakeOTPs) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = code
	return nil
}

func (s *fakeOTPs) Check(ctx context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	want, ok := s.codes[email]
	if !ok {
		return domain.ErrOTPExpired
	}
	if want != code {
		return domain.ErrInvalidOTP
	}
	return nil
}

func (s *fakeOTPs) Delete(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email)
	return nil
}

type sentMail struct {
	to, code string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendOTP(ctx context.Context, email, code string, validFor time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: email, code: code})
	return nil
}

// Plain-text "hashing" keeps the auth tests independent of bcrypt cost.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return domain.ErrInvalidPassword
	}
	return nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(u *domain.User) (string, error) { return "token-for-" + u.ID.String(), nil }

func (fakeTokens) Parse(token string) (ports.Claims, error) {
	id, err := uuid.Parse(strings.TrimPrefix(token, "token-for-"))
	if err != nil {
		return ports.Claims{}, domain.ErrUnauthorized
	}
	return ports.Claims{UserID: id}, nil
}

type fakeTips struct {
	mu   sync.Mutex
	tips []domain.SafetyTip
}

func (r *fakeTips) Create(ctx context.Context, tip *domain.SafetyTip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tips = append(r.tips, *tip)
	return nil
}

func (r *fakeTips) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SafetyTip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.SafetyTip, 0)
	for _, t := range r.tips {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTips) Update(ctx context.Context, userID, tipID uuid.UUID, text string) (*domain.SafetyTip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tips {
		if r.tips[i].ID == tipID && r.tips[i].UserID == userID {
			r.tips[i].Tip = text
			cp := r.tips[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeTips) Delete(ctx context.Context, userID, tipID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tips {
		if r.tips[i].ID == tipID && r.tips[i].UserID == userID {
			r.tips = append(r.tips[:i], r.tips[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeReports struct {
	mu      sync.Mutex
	reports []domain.Report
}

func (r *fakeReports) Create(ctx context.Context, rep *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, *rep)
	return nil
}

func (r *fakeReports) ListSince(ctx context.Context, since time.Time) ([]domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Report, 0)
	for _, rep := range r.reports {
		if rep.CreatedAt.After(since) {
			out = append(out, rep)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeLimiter struct {
	limit  int
	counts map[string]int
}

func (l *fakeLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.counts == nil {
		l.counts = make(map[string]int)
	}
	l.counts[key]++
	return l.counts[key] <= l.limit, nil
}

type fakeAdvisor struct {
	prompt string
	answer string
	err    error
}

func (a *fakeAdvisor) Advise(ctx context.Context, prompt string) (string, error) {
	a.prompt = prompt
	return a.answer, a.err
}

var errBoom = errors.New("boom")
