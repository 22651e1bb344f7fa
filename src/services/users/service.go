package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"Bizonii-Backend/src/logger"
	"Bizonii-Backend/src/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Store persists users. Lookups return models.ErrNotFound when nothing matches.
type Store interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Generate(userID, email string) (string, error)
}

// TokenRevoker keeps a token unusable until ttl elapses.
type TokenRevoker interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
}

type Service struct {
	store   Store
	tokens  TokenIssuer
	revoker TokenRevoker
	log     zerolog.Logger
}

func NewService(store Store, tokens TokenIssuer, revoker TokenRevoker) *Service {
	return &Service{store: store, tokens: tokens, revoker: revoker, log: logger.Component("users")}
}

// Register - creates an account with a unique name and email
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if len(name) < 3 {
		return nil, fmt.Errorf("%w: name must have at least 3 characters", models.ErrInvalidInput)
	}
	if req.AccountType == models.AccountIndividual && req.FiscalCode != "" {
		return nil, fmt.Errorf("%w: individual accounts cannot have a fiscal code", models.ErrInvalidInput)
	}
	if err := s.ensureFree(ctx, s.store.GetByName, name, "name"); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, s.store.GetByEmail, email, "email"); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:          uuid.NewString(),
		AccountType: req.AccountType,
		Name:        name,
		Email:       email,
		Address:     req.Address,
		FiscalCode:  req.FiscalCode,
		Password:    string(hash),
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info().Str("user_id", user.ID).Msg("✅ user registered")
	return user, nil
}

func (s *Service) ensureFree(ctx context.Context, lookup func(context.Context, string) (*models.User, error), value, what string) error {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s already registered", models.ErrConflict, what)
	case errors.Is(err, models.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("lookup user by %s: %w", what, err)
	}
}

// Login - checks credentials and issues a bearer token
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	user, err := s.store.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: invalid email or password", models.ErrUnauthorized)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", models.ErrUnauthorized)
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &models.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// Logout - revokes token until it would have expired anyway
func (s *Service) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.revoker.Add(ctx, token, ttl)
}

func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("🗑️ user deleted")
	return nil
}
