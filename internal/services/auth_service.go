package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samsara-collective/circle-api/internal/constants"
	"github.com/samsara-collective/circle-api/internal/models"
	"github.com/samsara-collective/circle-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrNotInvited           = errors.New("this email has not been invited")
	ErrInviteClaimed        = errors.New("this invite has already been claimed")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUsernameRequired     = errors.New("username is required")
	ErrMemberNotFound       = errors.New("member not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles the invite-gated signup flow and login.
type AuthService struct {
	memberRepo repository.MemberRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(memberRepo repository.MemberRepository) *AuthService {
	return &AuthService{
		memberRepo: memberRepo,
	}
}

// SignupInput represents the information needed to claim an invite.
type SignupInput struct {
	Email    string
	Username string
	Password string
}

// Signup claims an invite: the email must match a seeded member row that no
// one has claimed yet. Claiming fills in the username and password hash.
func (s *AuthService) Signup(input SignupInput) (*models.Member, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	if email == "" {
		return nil, ErrNotInvited
	}
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	member, err := s.memberRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotInvited
		}
		return nil, fmt.Errorf("failed to verify invite: %w", err)
	}

	if member.Claimed() {
		return nil, ErrInviteClaimed
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	now := time.Now()
	member.Username = username
	member.PasswordHash = string(hashedPassword)
	member.ClaimedAt = &now

	if err := s.memberRepo.Update(member); err != nil {
		return nil, fmt.Errorf("failed to claim invite: %w", err)
	}

	return member, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated member.
func (s *AuthService) Login(input LoginInput) (*models.Member, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	member, err := s.memberRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	// An unclaimed invite has no password and cannot log in.
	if !member.Claimed() {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return member, nil
}

// GetMember retrieves a member by ID.
func (s *AuthService) GetMember(id uint64) (*models.Member, error) {
	member, err := s.memberRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	return member, nil
}
