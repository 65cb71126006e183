package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"cottoncare/internal/domain"
	"cottoncare/internal/repos"
	"cottoncare/internal/validate"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = repos.ErrEmailTaken
	ErrNoSession  = errors.New("not signed in")
)

type AuthService struct {
	Users *repos.UserRepo
	Cost  int
}

func NewAuthService(users *repos.UserRepo) *AuthService {
	return &AuthService{Users: users, Cost: bcrypt.DefaultCost}
}

type SignupInput struct {
	Name            string `json:"name" validate:"required,min=2,max=80"`
	Email           string `json:"email" validate:"required,email,max=254"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type ProfileInput struct {
	Name    *string         `json:"name" validate:"omitempty,min=2,max=80"`
	Phone   *string         `json:"phone" validate:"omitempty,min=10,phone"`
	Address *domain.Address `json:"address" validate:"omitempty"`
}

// Login checks the credentials and binds the session to the user. Unknown email and
// wrong password both yield ErrBadCreds.
func (s *AuthService) Login(ctx context.Context, sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(ctx, sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// Signup creates a non-admin account and signs it in.
func (s *AuthService) Signup(ctx context.Context, sid string, in SignupInput) (*domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.Cost)
	if err != nil {
		return nil, err
	}
	u := domain.User{
		ID:    "user-" + uuid.NewString(),
		Email: in.Email,
		Name:  in.Name,
		Hash:  string(hash),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	if err := s.Users.BindSession(ctx, sid, u.ID); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.Users.UnbindSession(ctx, sid)
}

// CurrentUser resolves the session. An anonymous session yields ErrNoSession.
func (s *AuthService) CurrentUser(ctx context.Context, sid string) (*domain.User, error) {
	if sid == "" {
		return nil, ErrNoSession
	}
	u, err := s.Users.SessionUser(ctx, sid)
	if errors.Is(err, repos.ErrNotFound) {
		return nil, ErrNoSession
	}
	return u, err
}

// UpdateProfile changes the name, phone and default address of a user.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*domain.User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	return s.Users.Modify(ctx, userID, func(u *domain.User) {
		if in.Name != nil {
			u.Name = strings.TrimSpace(*in.Name)
		}
		if in.Phone != nil {
			u.Phone = strings.TrimSpace(*in.Phone)
		}
		if in.Address != nil {
			a := *in.Address
			u.Address = &a
		}
	})
}

func (s *AuthService) ListUsers(ctx context.Context) []domain.User {
	all, _ := s.Users.List(ctx)
	out := make([]domain.User, 0, len(all))
	for _, u := range all {
		out = append(out, u.Public())
	}
	return out
}
