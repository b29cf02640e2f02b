package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/tradelog/trade-journal-backend/internal/apperrors"
	"github.com/tradelog/trade-journal-backend/internal/model"
	"github.com/tradelog/trade-journal-backend/internal/repository"
)

// AuthService handles registration, login, and session tokens. Sessions are
// stateless fernet tokens carrying the user ID; the token's embedded
// timestamp plus the configured TTL bound its lifetime, so there is no
// session table to clean up.
type AuthService struct {
	userRepo *repository.UserRepository
	settings *SettingsService
	key      *fernet.Key
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService. encodedKey is a base64 fernet
// key; generate one with fernet.Key{}.Generate or any fernet tooling.
func NewAuthService(userRepo *repository.UserRepository, settings *SettingsService, encodedKey string, tokenTTL time.Duration) (*AuthService, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session key: %w", err)
	}

	return &AuthService{
		userRepo: userRepo,
		settings: settings,
		key:      key,
		tokenTTL: tokenTTL,
	}, nil
}

// Register creates a user account plus its default settings row and returns
// the user with a fresh session token.
func (s *AuthService) Register(email, password string) (model.User, string, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return model.User{}, "", err
	}

	user := model.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return model.User{}, "", err
	}
	if _, err := s.settings.GetOrCreate(user.ID); err != nil {
		return model.User{}, "", err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return model.User{}, "", err
	}

	return user, token, nil
}

// Login verifies credentials and returns the user with a session token.
// Unknown email and wrong password both map to ErrInvalidCredentials.
func (s *AuthService) Login(email, password string) (model.User, string, error) {
	user, err := s.userRepo.GetUserByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return model.User{}, "", apperrors.ErrInvalidCredentials
		}
		return model.User{}, "", err
	}

	if !verifyPassword(user.PasswordHash, password) {
		return model.User{}, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return model.User{}, "", err
	}

	return user, token, nil
}

// VerifyToken validates a session token and returns the user ID it carries.
// Expired or tampered tokens return apperrors.ErrInvalidSession.
func (s *AuthService) VerifyToken(token string) (string, error) {
	if token == "" {
		return "", apperrors.ErrNoAuthSession
	}

	payload := fernet.VerifyAndDecrypt([]byte(token), s.tokenTTL, []*fernet.Key{s.key})
	if payload == nil {
		return "", apperrors.ErrInvalidSession
	}

	return string(payload), nil
}

func (s *AuthService) issueToken(userID string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(userID), s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return string(token), nil
}

// hashPassword produces a salted SHA-256 digest encoded as "salt$digest".
func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	digest := sha256.Sum256(append(salt, []byte(password)...))
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(digest[:]), nil
}

func verifyPassword(stored, password string) bool {
	saltHex, digestHex, ok := strings.Cut(stored, "$")
	if !ok {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	digest := sha256.Sum256(append(salt, []byte(password)...))
	computed := hex.EncodeToString(digest[:])

	return subtle.ConstantTimeCompare([]byte(computed), []byte(digestHex)) == 1
}
