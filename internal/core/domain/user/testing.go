package user

import (
	"context"
	"crypto/sha256"
	"fmt"
	c "gatekeeper/internal/core/domain/common"
	"sync"
	"time"
)

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		maxID = u.ID
	}
	u = User{
		ID:           maxID + 1,
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: input.PasswordHash,
		Role:         input.Role,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = password
			return nil
		}
	}
	return ErrUserDoesNotExist
}

type FakeResetTokenRepository struct {
	Tokens      map[ID]ResetToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeResetTokenRepository() *FakeResetTokenRepository {
	return &FakeResetTokenRepository{Tokens: make(map[ID]ResetToken)}
}

func (r *FakeResetTokenRepository) Create(ctx context.Context, input CreateResetTokenInput) error {
	if r.ReturnError {
		return fmt.Errorf("could not create reset token %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Tokens[input.UserID] = ResetToken{
		UserID:     input.UserID,
		SecretHash: input.SecretHash,
		CreatedAt:  input.CreatedAt,
	}
	return nil
}

func (r *FakeResetTokenRepository) GetByUserID(ctx context.Context, userID ID) (t ResetToken, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	t, ok := r.Tokens[userID]
	if !ok {
		return t, ErrResetTokenDoesNotExist
	}
	return t, nil
}

func (r *FakeResetTokenRepository) DeleteByUserID(ctx context.Context, userID ID) (int64, error) {
	if r.ReturnError {
		return 0, fmt.Errorf("could not delete reset tokens for user %d", userID)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.Tokens[userID]; !ok {
		return 0, nil
	}
	delete(r.Tokens, userID)
	return 1, nil
}

func (r *FakeResetTokenRepository) TokenCount() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return len(r.Tokens)
}

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	sum := sha256.Sum256([]byte(password))
	return PasswordHash(fmt.Sprintf("%x", sum)), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeResetSecretGenerator struct {
	Secret RawResetSecret
}

func NewFakeResetSecretGenerator(secret string) *FakeResetSecretGenerator {
	return &FakeResetSecretGenerator{Secret: RawResetSecret(secret)}
}

func (g *FakeResetSecretGenerator) GenerateResetSecret() RawResetSecret {
	return g.Secret
}

type FakeSessionIssuer struct {
	ClaimsByToken map[SessionToken]SessionClaims
	ReturnError   bool
	lock          sync.Mutex
}

func NewFakeSessionIssuer() *FakeSessionIssuer {
	return &FakeSessionIssuer{ClaimsByToken: make(map[SessionToken]SessionClaims)}
}

func (i *FakeSessionIssuer) Issue(u User) (SessionToken, error) {
	if i.ReturnError {
		return "", fmt.Errorf("could not issue session token for user %d", u.ID)
	}
	i.lock.Lock()
	defer i.lock.Unlock()
	token := SessionToken(fmt.Sprintf("session-token-%d-%d", u.ID, len(i.ClaimsByToken)))
	i.ClaimsByToken[token] = SessionClaims{UserID: u.ID, IssuedAt: time.Now().UTC()}
	return token, nil
}

func (i *FakeSessionIssuer) Verify(token SessionToken) (claims SessionClaims, err error) {
	i.lock.Lock()
	defer i.lock.Unlock()
	claims, ok := i.ClaimsByToken[token]
	if !ok {
		return claims, ErrInvalidSessionToken
	}
	return claims, nil
}

type FakePasswordResetLinkSender struct {
	SentTo      []User
	SentLinks   []string
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetLinkSender() *FakePasswordResetLinkSender {
	return &FakePasswordResetLinkSender{}
}

func (s *FakePasswordResetLinkSender) SendResetLink(ctx context.Context, user User, link string) error {
	if s.ReturnError {
		return fmt.Errorf("could not send reset link to user %d", user.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.SentTo = append(s.SentTo, user)
	s.SentLinks = append(s.SentLinks, link)
	return nil
}

func (s *FakePasswordResetLinkSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.SentTo)
}

type FakePasswordChangedSender struct {
	SentTo      []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordChangedSender() *FakePasswordChangedSender {
	return &FakePasswordChangedSender{}
}

func (s *FakePasswordChangedSender) SendPasswordChanged(ctx context.Context, user User) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password changed notification to user %d", user.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.SentTo = append(s.SentTo, user)
	return nil
}

func (s *FakePasswordChangedSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.SentTo)
}
