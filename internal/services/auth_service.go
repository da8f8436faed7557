package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthStore abstracts persistence operations required by AuthService.
type AuthStore interface {
	FindUserByEmail(email string) (*User, error)
	AddUser(u *User) error
}

// TokenSigner mints a bearer token for an authenticated owner.
type TokenSigner func(uid, email string, ttl time.Duration) (string, error)

// AuthService registers and authenticates form owners.
type AuthService struct {
	store     AuthStore
	now       func() time.Time
	newID     func() string
	signToken TokenSigner
	tokenTTL  time.Duration
	adminCode string
}

type AuthResult struct {
	Token  string
	UserID string
}

// NewAuthService wires the store and token signer. When adminCode is
// non-empty, registration requires callers to present it.
func NewAuthService(store AuthStore, signer TokenSigner, adminCode string) *AuthService {
	return &AuthService{
		store:     store,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
		signToken: signer,
		tokenTTL:  30 * 24 * time.Hour,
		adminCode: adminCode,
	}
}

func (s *AuthService) Register(name, email, password, adminCode string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, NewInvalidError("email/password required")
	}
	if s.adminCode != "" && adminCode != s.adminCode {
		return nil, NewInvalidError("invalid admin code")
	}
	existing, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewConflictError("email exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &User{
		ID:        s.newID(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		PassHash:  hash,
		CreatedAt: s.now(),
	}
	if err := s.store.AddUser(user); err != nil {
		return nil, err
	}
	if s.signToken == nil {
		return nil, NewInvalidError("token signer not configured")
	}
	token, err := s.signToken(user.ID, user.Email, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, UserID: user.ID}, nil
}

func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, NewInvalidError("email/password required")
	}
	u, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(u.PassHash, []byte(password)); err != nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if s.signToken == nil {
		return nil, NewInvalidError("token signer not configured")
	}
	token, err := s.signToken(u.ID, u.Email, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, UserID: u.ID}, nil
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}
