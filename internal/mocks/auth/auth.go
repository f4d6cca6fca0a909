package auth

// Package auth contains simple hand-written test doubles for auth ports and the
// credential store. They are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nazmul162001/educonnect/internal/core"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/domain/model"
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
	"github.com/nazmul162001/educonnect/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider   = (*MockAuthProvider)(nil)
	_ ports.SessionStore   = (*MemorySessionStore)(nil)
	_ ports.TokenCodec     = (*StaticTokenCodec)(nil)
	_ ports.PasswordHasher = (*PlainHasher)(nil)
	_ core.UserRepository  = (*MemoryUserStore)(nil)
)

// MockAuthProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockAuthProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	// ProviderName is returned by Name; defaults to "mock".
	ProviderName string
	AuthURL      string
	DefaultUser  domainauth.Identity

	mu        sync.Mutex
	callCount int
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		ProviderName: "mock",
		AuthURL:      "https://mock-idp/auth",
		DefaultUser: domainauth.Identity{
			Provider: "mock",
			Subject:  "mock-subject-1",
			Email:    "mock.user@example.com",
			Name:     "Mock User",
			Image:    "https://img.example.com/mock.png",
		},
	}
}

// Name returns the registry key.
func (m *MockAuthProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// Begin returns the configured auth URL with state-N and nonce-N.
func (m *MockAuthProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}

	m.mu.Lock()
	m.callCount++
	n := m.callCount
	m.mu.Unlock()

	authURL := m.AuthURL
	if authURL == "" {
		authURL = "https://mock-idp/auth"
	}
	return authURL, fmt.Sprintf("state-%d", n), fmt.Sprintf("nonce-%d", n), nil
}

// Exchange returns DefaultUser with a fresh expiry.
func (m *MockAuthProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	user := m.DefaultUser
	if user.Email == "" {
		user.Email = "mock.user@example.com"
	}
	user.Provider = m.Name()
	user.ExpiresAt = time.Now().Add(time.Hour)
	return user, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	// Err, when set, is returned by every call to simulate an unreachable store.
	Err error

	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if m.Err != nil {
		return m.Err
	}
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if m.Err != nil {
		return domainauth.Session{}, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Errors returned by StaticTokenCodec.Verify.
var (
	ErrTokenMalformed = errors.New("static token malformed")
	ErrTokenExpired   = errors.New("static token expired")
)

// StaticTokenCodec encodes claims as readable text. It is not signed and is only
// meant for tests that need a deterministic TokenCodec.
type StaticTokenCodec struct {
	Lifetime time.Duration
	// Now overrides the clock; defaults to time.Now.
	Now func() time.Time
}

const staticTokenPrefix = "static"

func (c *StaticTokenCodec) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Issue returns "static|id|email|role|expUnix".
func (c *StaticTokenCodec) Issue(userID, email string, role domainauth.Role) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	exp := c.now().Add(c.TTL()).Unix()
	return strings.Join([]string{staticTokenPrefix, userID, email, string(role), strconv.FormatInt(exp, 10)}, "|"), nil
}

// Verify parses a token produced by Issue.
func (c *StaticTokenCodec) Verify(token string) (ports.TokenClaims, error) {
	parts := strings.Split(token, "|")
	if len(parts) != 5 || parts[0] != staticTokenPrefix {
		return ports.TokenClaims{}, ErrTokenMalformed
	}
	exp, err := strconv.ParseInt(parts[4], 10, 64)
	if err != nil {
		return ports.TokenClaims{}, ErrTokenMalformed
	}
	expiresAt := time.Unix(exp, 0)
	if !c.now().Before(expiresAt) {
		return ports.TokenClaims{}, ErrTokenExpired
	}
	return ports.TokenClaims{
		UserID:    parts[1],
		Email:     parts[2],
		Role:      domainauth.Role(parts[3]),
		IssuedAt:  expiresAt.Add(-c.TTL()),
		ExpiresAt: expiresAt,
	}, nil
}

// TTL returns Lifetime, defaulting to one hour.
func (c *StaticTokenCodec) TTL() time.Duration {
	if c.Lifetime <= 0 {
		return time.Hour
	}
	return c.Lifetime
}

// PlainHasher "hashes" by prefixing. For tests only.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return "plain:" + password, nil
}

func (PlainHasher) Compare(hash, password string) bool {
	return hash != "" && hash == "plain:"+password
}

type storedUser struct {
	principal domainauth.Principal
	hash      string
}

// MemoryUserStore is an in-memory credential store honouring the unique email index.
type MemoryUserStore struct {
	// Err, when set, is returned by every call to simulate an unreachable store.
	Err error
	// BeforeCreate, when set, runs before Create takes the lock. Tests use it to
	// line up concurrent first sign-ins.
	BeforeCreate func(email string)
	// Now overrides the clock; defaults to time.Now.
	Now func() time.Time

	mu    sync.Mutex
	users map[string]*storedUser
}

// NewMemoryUserStore creates an empty MemoryUserStore.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]*storedUser)}
}

func (s *MemoryUserStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func userNotFound() error { return apperrors.NotFound("User not found") }

func emailConflict() error {
	return &apperrors.AppError{Code: apperrors.ErrCodeConflict, Message: "User already exists", Field: "email"}
}

// byEmailLocked returns the record with email. Callers hold mu.
func (s *MemoryUserStore) byEmailLocked(email string) *storedUser {
	email = domainauth.NormalizeEmail(email)
	for _, u := range s.users {
		if u.principal.Email == email {
			return u
		}
	}
	return nil
}

func (s *MemoryUserStore) Create(_ context.Context, p core.CreateUserParams) (*domainauth.Principal, error) {
	if s.BeforeCreate != nil {
		s.BeforeCreate(p.Email)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.byEmailLocked(p.Email) != nil {
		return nil, emailConflict()
	}
	role := p.Role
	if role == "" {
		role = domainauth.RoleStudent
	}
	now := s.now()
	u := &storedUser{
		principal: domainauth.Principal{
			ID:        uuid.NewString(),
			Name:      strings.TrimSpace(p.Name),
			Email:     domainauth.NormalizeEmail(p.Email),
			Role:      role,
			Image:     p.Image,
			CreatedAt: now,
			UpdatedAt: now,
		},
		hash: p.PasswordHash,
	}
	s.users[u.principal.ID] = u
	out := u.principal
	return &out, nil
}

func (s *MemoryUserStore) GetByID(_ context.Context, id string) (*domainauth.Principal, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, userNotFound()
	}
	out := u.principal
	return &out, nil
}

func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (*domainauth.Principal, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.byEmailLocked(email)
	if u == nil {
		return nil, userNotFound()
	}
	out := u.principal
	return &out, nil
}

func (s *MemoryUserStore) GetCredentialsByEmail(_ context.Context, email string) (*domainauth.Credentials, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.byEmailLocked(email)
	if u == nil {
		return nil, userNotFound()
	}
	return &domainauth.Credentials{UserID: u.principal.ID, Email: u.principal.Email, PasswordHash: u.hash}, nil
}

func (s *MemoryUserStore) EmailTakenByOther(_ context.Context, email, excludeID string) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.byEmailLocked(email)
	return u != nil && u.principal.ID != excludeID, nil
}

func (s *MemoryUserStore) UpdateDisplay(_ context.Context, id, name, image string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return userNotFound()
	}
	if name = strings.TrimSpace(name); name != "" {
		u.principal.Name = name
	}
	if image = strings.TrimSpace(image); image != "" {
		u.principal.Image = image
	}
	u.principal.UpdatedAt = s.now()
	return nil
}

func (s *MemoryUserStore) UpdateProfile(
	_ context.Context,
	id string,
	changes []model.ProfileField,
) (*domainauth.Principal, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, userNotFound()
	}

	next := u.principal
	for _, c := range changes {
		switch c.Column {
		case "name":
			next.Name = c.Value
		case "email":
			email := domainauth.NormalizeEmail(c.Value)
			if other := s.byEmailLocked(email); other != nil && other.principal.ID != id {
				return nil, emailConflict()
			}
			next.Email = email
		case "image":
			next.Image = c.Value
		case "street":
			next.Street = c.Value
		case "city":
			next.City = c.Value
		case "state":
			next.State = c.Value
		case "zip_code":
			next.ZipCode = c.Value
		case "country":
			next.Country = c.Value
		case "university":
			next.University = c.Value
		case "major":
			next.Major = c.Value
		case "graduation_year":
			next.GraduationYear = c.Value
		case "gpa":
			next.GPA = c.Value
		default:
			return nil, apperrors.Internal("unknown profile column " + c.Column)
		}
	}
	next.UpdatedAt = s.now()
	u.principal = next
	out := next
	return &out, nil
}

func (s *MemoryUserStore) UpdatePasswordHash(_ context.Context, id, hash string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return userNotFound()
	}
	u.hash = hash
	return nil
}

func (s *MemoryUserStore) SetRole(_ context.Context, id string, role domainauth.Role) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return userNotFound()
	}
	u.principal.Role = role
	return nil
}

// Emails returns every stored email, sorted. Duplicates would appear twice.
func (s *MemoryUserStore) Emails() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.principal.Email)
	}
	sort.Strings(out)
	return out
}

// PasswordHash returns the stored hash for id, for assertions.
func (s *MemoryUserStore) PasswordHash(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u.hash
	}
	return ""
}
