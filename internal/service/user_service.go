package service

import (
	"context"
	"strings"
	"sync"

	"prtracker/internal/apperr"
	"prtracker/internal/authz"
	"prtracker/internal/hasher"
	"prtracker/internal/models"
	"prtracker/internal/repository"

	"github.com/go-playground/validator/v10"
)

// BootstrapAccount is created by EnsureDefaultAdmin on an empty store.
type BootstrapAccount struct {
	Username string
	Password string
}

var defaultBootstrap = BootstrapAccount{Username: "admin", Password: "admin"}

// UserService implements Users.
type UserService struct {
	repo      repository.Users
	hasher    hasher.PasswordHasher
	bootstrap BootstrapAccount
	validate  *validator.Validate

	dummyOnce   sync.Once
	dummyDigest string
}

func NewUserService(repo repository.Users, h hasher.PasswordHasher, bootstrap BootstrapAccount) *UserService {
	if h == nil {
		h = hasher.NewBcrypt(0)
	}
	if bootstrap.Username == "" || bootstrap.Password == "" {
		bootstrap = defaultBootstrap
	}
	return &UserService{
		repo:      repo,
		hasher:    h,
		bootstrap: bootstrap,
		validate:  newValidator(nil),
	}
}

var _ Users = (*UserService)(nil)

// Register creates a self-service account. The role is always user.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	return s.create(ctx, in.Username, in.Password, models.RoleUser, in.FullName)
}

func (s *UserService) create(ctx context.Context, username, password string, role models.Role, fullName string) (*models.User, error) {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	u := models.User{Username: username, PasswordDigest: digest, Role: role, FullName: fullName}
	id, err := s.repo.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Login returns the caller's session. Unknown usernames and wrong passwords
// fail with the same error, and both run one hash comparison.
func (s *UserService) Login(ctx context.Context, username, password string) (authz.Session, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			s.hasher.Verify(password, s.dummy())
			return authz.Session{}, apperr.Unauthorized()
		}
		return authz.Session{}, err
	}
	if !s.hasher.Verify(password, u.PasswordDigest) {
		return authz.Session{}, apperr.Unauthorized()
	}
	return authz.Session{UserID: u.ID, Role: u.Role}, nil
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyDigest, _ = s.hasher.Hash("prtracker-dummy-password")
	})
	return s.dummyDigest
}

func (s *UserService) ChangePassword(ctx context.Context, sess authz.Session, oldPassword, newPassword string) error {
	u, err := s.repo.GetByID(ctx, sess.UserID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return apperr.Unauthorized()
		}
		return err
	}
	if !s.hasher.Verify(oldPassword, u.PasswordDigest) {
		return apperr.Unauthorized()
	}
	return s.setPassword(ctx, u.ID, newPassword)
}

func (s *UserService) AdminResetPassword(ctx context.Context, sess authz.Session, targetUserID int64, newPassword string) error {
	if err := sess.RequireAdmin(); err != nil {
		return err
	}
	return s.setPassword(ctx, targetUserID, newPassword)
}

func (s *UserService) setPassword(ctx context.Context, id int64, password string) error {
	if err := validateStruct(s.validate, passwordInput{Password: password}); err != nil {
		return err
	}
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, digest)
}

func (s *UserService) CreateUser(ctx context.Context, sess authz.Session, in NewUserInput) (*models.User, error) {
	if err := sess.RequireAdmin(); err != nil {
		return nil, err
	}
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	return s.create(ctx, in.Username, in.Password, in.Role, in.FullName)
}

// UpdateUser changes role and full name. The username cannot be changed.
func (s *UserService) UpdateUser(ctx context.Context, sess authz.Session, id int64, p UserPatch) (*models.User, error) {
	if err := sess.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, p); err != nil {
		return nil, err
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.FullName != nil {
		u.FullName = strings.TrimSpace(*p.FullName)
	}
	if err := s.repo.UpdateProfile(ctx, id, u.Role, u.FullName); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes the account and all of its records. Admins cannot
// delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, sess authz.Session, id int64) error {
	if err := sess.RequireAdmin(); err != nil {
		return err
	}
	if id == sess.UserID {
		return apperr.Validation("id", "cannot delete your own account")
	}
	return s.repo.Delete(ctx, id)
}

// ListUsers is open to read-ALL scopes, which need a user picker.
func (s *UserService) ListUsers(ctx context.Context, sess authz.Session) ([]models.User, error) {
	if authz.ScopeFor(sess).Read != authz.All {
		return nil, apperr.PermissionDenied()
	}
	return s.repo.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, sess authz.Session, id int64) (*models.User, error) {
	if !authz.ScopeFor(sess).CanRead(id) {
		return nil, apperr.PermissionDenied()
	}
	return s.repo.GetByID(ctx, id)
}

// FindUser looks a user up by username under the same rule as GetUser.
func (s *UserService) FindUser(ctx context.Context, sess authz.Session, username string) (*models.User, error) {
	u, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) && authz.ScopeFor(sess).Read != authz.All {
			return nil, apperr.PermissionDenied()
		}
		return nil, err
	}
	if !authz.ScopeFor(sess).CanRead(u.ID) {
		return nil, apperr.PermissionDenied()
	}
	return u, nil
}

// EnsureDefaultAdmin creates the bootstrap admin when no user exists yet and
// reports whether it did.
func (s *UserService) EnsureDefaultAdmin(ctx context.Context) (bool, error) {
	digest, err := s.hasher.Hash(s.bootstrap.Password)
	if err != nil {
		return false, err
	}
	return s.repo.EnsureAdmin(ctx, models.User{
		Username:       s.bootstrap.Username,
		PasswordDigest: digest,
		Role:           models.RoleAdmin,
		FullName:       "Administrator",
	})
}

// BootstrapUsername is the name EnsureDefaultAdmin uses.
func (s *UserService) BootstrapUsername() string { return s.bootstrap.Username }
