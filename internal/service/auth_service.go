package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"todo-app/internal/domain"
	"todo-app/internal/repository"
)

const (
	sessionTokenBytes = 32
	defaultSessionTTL = 24 * time.Hour
)

// AuthService coordina signup, login y la autorizacion por sesion.
type AuthService struct {
	logger     *zap.Logger
	users      repository.UserRepository
	hasher     PasswordHasher
	sessions   SessionStore
	sessionTTL time.Duration
}

func NewAuthService(
	logger *zap.Logger,
	users repository.UserRepository,
	hasher PasswordHasher,
	sessions SessionStore,
	sessionTTL time.Duration,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{
		logger:     logger,
		users:      users,
		hasher:     hasher,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// LoginResult lleva el token en claro; solo debe viajar al cliente.
type LoginResult struct {
	User    domain.User
	Session domain.Session
	Token   string
}

// Signup valida, verifica unicidad, hashea y persiste el usuario.
func (s *AuthService) Signup(ctx context.Context, form SignupForm) (domain.User, error) {
	input, err := ValidateSignup(form)
	if err != nil {
		return domain.User{}, err
	}

	// Verificacion rapida; el constraint UNIQUE de la tabla es el que decide.
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return domain.User{}, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, fmt.Errorf("lookup email: %w", err)
	}
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return domain.User{}, ErrDuplicateUsername
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, fmt.Errorf("lookup username: %w", err)
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) || errors.Is(err, ErrDuplicateUsername) {
			return domain.User{}, err
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login busca por email o username segun el formato de loginID, verifica el
// password y abre una sesion nueva.
func (s *AuthService) Login(ctx context.Context, loginID, password string) (LoginResult, error) {
	loginID = strings.TrimSpace(loginID)
	if loginID == "" || password == "" {
		return LoginResult{}, ErrMissingField
	}

	var (
		user        domain.User
		err         error
		notFoundErr error
	)
	if IsEmail(loginID) {
		user, err = s.users.GetByEmail(ctx, loginID)
		notFoundErr = ErrEmailNotFound
	} else {
		user, err = s.users.GetByUsername(ctx, loginID)
		notFoundErr = ErrUsernameNotFound
	}
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return LoginResult{}, notFoundErr
		}
		return LoginResult{}, fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return LoginResult{}, ErrBadCredentials
	}

	token, err := generateSessionToken()
	if err != nil {
		return LoginResult{}, fmt.Errorf("generate session token: %w", err)
	}
	now := time.Now().UTC()
	session := domain.Session{
		ID:              HashSessionToken(token),
		IsAuthenticated: true,
		User:            user.Snapshot(),
		CreatedAt:       now,
		ExpiresAt:       now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return LoginResult{}, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return LoginResult{User: user, Session: session, Token: token}, nil
}

// Authorize decide si token corresponde a una sesion autenticada y vigente.
func (s *AuthService) Authorize(ctx context.Context, token string) (domain.SessionUser, error) {
	if strings.TrimSpace(token) == "" {
		return domain.SessionUser{}, ErrNoSession
	}
	session, err := s.sessions.Get(ctx, HashSessionToken(token))
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return domain.SessionUser{}, ErrSessionNotFound
		}
		return domain.SessionUser{}, fmt.Errorf("get session: %w", err)
	}
	if session.IsExpiredAt(time.Now().UTC()) {
		return domain.SessionUser{}, ErrSessionNotFound
	}
	if !session.IsAuthenticated {
		return domain.SessionUser{}, ErrNotAuthenticated
	}
	return session.User, nil
}

func generateSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashSessionToken es la clave con la que el store guarda la sesion.
func HashSessionToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
