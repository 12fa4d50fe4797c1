package iam

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bizdir/bizdirapi/internal/auth"
	"github.com/bizdir/bizdirapi/internal/db/bunx"
	"github.com/bizdir/bizdirapi/internal/db/models"
	"github.com/bizdir/bizdirapi/internal/repository"
)

// Identity and access errors surfaced to the transport layer.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrEmailTaken         = errors.New("email is already registered")
)

// Service owns user accounts and session issuance.
type Service struct {
	users  repository.UserRepository
	cache  *userCache
	secret string
	maxAge time.Duration
}

// NewService creates the identity service.
func NewService(users repository.UserRepository, secret string, maxAge time.Duration) *Service {
	return &Service{
		users:  users,
		cache:  newUserCache(),
		secret: secret,
		maxAge: maxAge,
	}
}

// Login verifies the credentials and returns a signed session token.
// Disabled accounts cannot log in.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login lookup: %w", err)
	}
	if user.IsDisabled() {
		return "", nil, ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.IssueToken(s.secret, s.maxAge, user)
	if err != nil {
		return "", nil, fmt.Errorf("issue session: %w", err)
	}
	return token, user, nil
}

// Authenticate resolves a bearer token to a live principal. The role is read
// from the current user record, not the token, so role changes and account
// disabling take effect within the cache TTL rather than at token expiry.
func (s *Service) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	session, err := auth.VerifyToken(s.secret, token)
	if err != nil {
		return auth.Principal{}, err
	}

	user, ok := s.cache.get(session.ID)
	if !ok {
		user, err = s.users.GetByID(ctx, session.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return auth.Principal{}, fmt.Errorf("%w: user no longer exists", auth.ErrTokenInvalid)
			}
			return auth.Principal{}, fmt.Errorf("authenticate lookup: %w", err)
		}
		s.cache.put(user)
	}

	if user.IsDisabled() {
		return auth.Principal{}, ErrAccountDisabled
	}

	return auth.Principal{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

// WhoAmI returns the current user record for an authenticated principal.
func (s *Service) WhoAmI(ctx context.Context, principal auth.Principal) (*models.User, error) {
	user, err := s.users.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("whoami: %w", err)
	}
	return user, nil
}

// CreateUserInput carries the fields accepted when registering a user.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// CreateUser registers a new account. When no admin exists yet the created
// user is promoted to admin regardless of the requested role, so a fresh
// deployment can bootstrap itself.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if in.Name == "" || in.Email == "" {
		return nil, errors.New("name and email are required")
	}
	if len(in.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	role := in.Role
	if role == "" {
		role = models.RoleGuest
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	admins, err := s.users.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	}
	if admins == 0 && role != models.RoleAdmin {
		log.Printf("INFO: no admin account exists, promoting %s to admin", in.Email)
		role = models.RoleAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           bunx.NewUUIDv7(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// UpdateUserInput carries the mutable user fields; nil means unchanged.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *models.Role
	Disabled *bool
}

// UpdateUser applies a partial update. Non-admin callers may only update
// their own record and may not change role or disabled state.
func (s *Service) UpdateUser(ctx context.Context, principal auth.Principal, id string, in UpdateUserInput) (*models.User, error) {
	if !principal.IsAdmin() {
		if principal.ID != id {
			return nil, auth.ErrPermissionDenied
		}
		if in.Role != nil || in.Disabled != nil {
			return nil, fmt.Errorf("%w: role and disabled state are admin managed", auth.ErrPermissionDenied)
		}
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, errors.New("password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, fmt.Errorf("unknown role %q", *in.Role)
		}
		user.Role = *in.Role
	}
	if in.Disabled != nil {
		if *in.Disabled {
			now := time.Now()
			user.DisabledAt = &now
		} else {
			user.DisabledAt = nil
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.cache.invalidate(id)
	return user, nil
}

// GetUser fetches one user record. Non-admin callers only see their own
// row; anything else reads as absent.
func (s *Service) GetUser(ctx context.Context, principal auth.Principal, id string) (*models.User, error) {
	if !principal.IsAdmin() && principal.ID != id {
		return nil, fmt.Errorf("user %s: %w", id, repository.ErrNotFound)
	}
	return s.users.GetByID(ctx, id)
}

// ListUsers returns users visible to the caller: everything for admins, the
// caller's own row for everyone else.
func (s *Service) ListUsers(ctx context.Context, principal auth.Principal) ([]models.User, error) {
	if principal.IsAdmin() {
		return s.users.List(ctx)
	}
	return s.users.List(ctx, repository.UserSelfScope(principal.ID))
}

// DeleteUser removes an account. The operation gate restricts this to
// admins before the service is reached.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.invalidate(id)
	return nil
}
