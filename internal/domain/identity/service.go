package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinic/clinic/internal/platform/auth"
)

// ErrInvalidCredentials is returned when the email or password does not match.
var ErrInvalidCredentials = errors.New("invalid email or password")

type Service struct {
	repo Repository
	jwt  auth.JWTConfig
}

func NewService(repo Repository, jwt auth.JWTConfig) *Service {
	return &Service{repo: repo, jwt: jwt}
}

// Signup registers a new client profile with a bcrypt password hash.
func (s *Service) Signup(ctx context.Context, req *SignupRequest) (*Profile, error) {
	if req.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("password must have at least 6 characters")
	}
	if req.FullName == "" {
		return nil, fmt.Errorf("full_name is required")
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	p := &Profile{
		Email:        strings.ToLower(req.Email),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         "client",
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Login verifies the credentials and returns the profile with a signed access
// token.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*Profile, string, error) {
	p, err := s.repo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.IssueToken(s.jwt, p.ID.String(), p.Email, p.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}
	return p, token, nil
}

func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByPhone looks a profile up by its phone number. The WhatsApp bot uses it
// to recognise professionals messaging the clinic number.
func (s *Service) GetByPhone(ctx context.Context, phone string) (*Profile, error) {
	return s.repo.GetByPhone(ctx, phone)
}

func (s *Service) ListProfessionals(ctx context.Context) ([]*Profile, error) {
	return s.repo.ListByRole(ctx, "professional")
}

// ProfessionalName returns the display name of a professional.
func (s *Service) ProfessionalName(ctx context.Context, id uuid.UUID) (string, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return p.FullName, nil
}
