package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"business-console/internal/entity"
	"business-console/internal/repository"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrProfileExists      = errors.New("an account already exists on this installation")
)

type JwtCustomClaims struct {
	Tenant       string `json:"tenant"`
	BusinessName string `json:"businessName,omitempty"`
	jwt.RegisteredClaims
}

// ProfileUpdate carries the editable business display fields. Nil fields
// are left unchanged.
type ProfileUpdate struct {
	BusinessName    *string `json:"businessName"`
	BusinessAddress *string `json:"businessAddress"`
	BusinessContact *string `json:"businessContact"`
	Currency        *string `json:"currency"`
	ProfilePicture  *string `json:"profilePicture"`
}

// AuthService manages the installation's single profile record and issues
// tokens whose subject is the tenant identifier.
type AuthService struct {
	profiles *repository.ProfileRepository
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(profiles *repository.ProfileRepository, secret []byte) *AuthService {
	return &AuthService{profiles: profiles, secret: secret, ttl: 24 * time.Hour, now: time.Now}
}

// Signup creates the profile. It fails once a profile exists.
func (s *AuthService) Signup(ctx context.Context, username, password, businessName string) (*entity.Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if _, err := s.profiles.Load(ctx); err == nil {
		return nil, ErrProfileExists
	} else if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	profile := &entity.Profile{
		StoredUsername: username,
		StoredPassword: string(hash),
		BusinessName:   strings.TrimSpace(businessName),
	}
	if err := s.profiles.Save(ctx, profile); err != nil {
		logger.Error().Err(err).Msg("Error creating profile")
		return nil, err
	}
	return profile, nil
}

// Login checks the credentials against the profile and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	profile, err := s.profiles.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !strings.EqualFold(profile.StoredUsername, strings.TrimSpace(username)) {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.StoredPassword), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := &JwtCustomClaims{
		Tenant:       profile.StoredUsername,
		BusinessName: profile.BusinessName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.StoredUsername,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// UpdateProfile applies the non-nil fields of update to the profile.
func (s *AuthService) UpdateProfile(ctx context.Context, update ProfileUpdate) (*entity.Profile, error) {
	profile, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, err
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&profile.BusinessName, update.BusinessName)
	set(&profile.BusinessAddress, update.BusinessAddress)
	set(&profile.BusinessContact, update.BusinessContact)
	set(&profile.Currency, update.Currency)
	set(&profile.ProfilePicture, update.ProfilePicture)

	if err := s.profiles.Save(ctx, profile); err != nil {
		logger.Error().Err(err).Msg("Error updating profile")
		return nil, err
	}
	return profile, nil
}
