package auth

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/narcomap-api/internal/domain"
	"github.com/narcomap-api/internal/pkg/validate"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult carries the issued token plus the admin's public identity,
// mirroring what the admin client stores after login.
type LoginResult struct {
	Token    string `json:"token"`
	AdminID  string `json:"adminId"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type Service interface {
	Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error)
	// Register creates a new admin. Only the super admin may call it.
	Register(ctx context.Context, callerID string, req domain.RegisterAdminRequest) (*domain.Admin, error)
	Get(ctx context.Context, adminID string) (*domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
	// Update edits name/username/active. The super-admin record may only
	// be edited by itself.
	Update(ctx context.Context, callerID, targetID string, req domain.UpdateAdminRequest) (*domain.Admin, error)
	// Delete removes an admin. The super-admin record can never be deleted,
	// and only the super admin may delete accounts.
	Delete(ctx context.Context, callerID, targetID string) error
	// ResetPassword sets a new password. Admins may reset their own; only
	// the super admin may reset another admin's.
	ResetPassword(ctx context.Context, callerID, targetID, newPassword string) error
	// Bootstrap seeds the super-admin account when the store is empty.
	Bootstrap(ctx context.Context, username, password, name string) error

	IsSuperAdmin(adminID string) bool
}

type adminStore interface {
	Put(ctx context.Context, a *domain.Admin) error
	Get(ctx context.Context, adminID string) (*domain.Admin, error)
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, adminID string, updates map[string]interface{}) error
	Delete(ctx context.Context, adminID string) error
}

type tokenSigner interface {
	Sign(a *domain.Admin) (string, error)
}

type service struct {
	repo         adminStore
	signer       tokenSigner
	superAdminID string
}

func NewService(repo adminStore, signer tokenSigner, superAdminID string) Service {
	return &service{repo: repo, signer: signer, superAdminID: superAdminID}
}

func (s *service) IsSuperAdmin(adminID string) bool {
	return adminID == s.superAdminID
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	a, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}
	if !a.Active {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	token, err := s.signer.Sign(a)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:    token,
		AdminID:  a.AdminID,
		Username: a.Username,
		Name:     a.Name,
		Role:     a.Role,
	}, nil
}

func (s *service) Register(ctx context.Context, callerID string, req domain.RegisterAdminRequest) (*domain.Admin, error) {
	if !s.IsSuperAdmin(callerID) {
		return nil, fmt.Errorf("only the super admin can add admins: %w", domain.ErrForbidden)
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	role := req.Role
	if role == "" {
		role = domain.RoleAdmin
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("unknown role %q: %w", role, domain.ErrBadRequest)
	}
	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("username already taken: %w", domain.ErrConflict)
	}
	if _, err := s.repo.Get(ctx, req.AdminID); err == nil {
		return nil, fmt.Errorf("identity number already registered: %w", domain.ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	a := &domain.Admin{
		AdminID:      req.AdminID,
		Username:     req.Username,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Get(ctx context.Context, adminID string) (*domain.Admin, error) {
	return s.repo.Get(ctx, adminID)
}

func (s *service) List(ctx context.Context) ([]domain.Admin, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(admins, func(i, j int) bool { return admins[i].CreatedAt.After(admins[j].CreatedAt) })
	return admins, nil
}

func (s *service) Update(ctx context.Context, callerID, targetID string, req domain.UpdateAdminRequest) (*domain.Admin, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if s.IsSuperAdmin(targetID) && !s.IsSuperAdmin(callerID) {
		return nil, fmt.Errorf("only the super admin can edit the super admin account: %w", domain.ErrForbidden)
	}
	a, err := s.repo.Get(ctx, targetID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Username != nil && *req.Username != a.Username {
		if _, err := s.repo.GetByUsername(ctx, *req.Username); err == nil {
			return nil, fmt.Errorf("username already taken: %w", domain.ErrConflict)
		}
		updates["username"] = *req.Username
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		return a, nil
	}
	if err := s.repo.Update(ctx, targetID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, targetID)
}

func (s *service) Delete(ctx context.Context, callerID, targetID string) error {
	if s.IsSuperAdmin(targetID) {
		return fmt.Errorf("the super admin account cannot be deleted: %w", domain.ErrForbidden)
	}
	if !s.IsSuperAdmin(callerID) {
		return fmt.Errorf("only the super admin can delete admins: %w", domain.ErrForbidden)
	}
	return s.repo.Delete(ctx, targetID)
}

func (s *service) ResetPassword(ctx context.Context, callerID, targetID, newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters: %w", domain.ErrBadRequest)
	}
	if callerID != targetID && !s.IsSuperAdmin(callerID) {
		return fmt.Errorf("only the super admin can reset another admin's password: %w", domain.ErrForbidden)
	}
	if _, err := s.repo.Get(ctx, targetID); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, targetID, map[string]interface{}{"password_hash": string(hash)})
}

func (s *service) Bootstrap(ctx context.Context, username, password, name string) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		log.Warn().Msg("no admins exist and SUPER_ADMIN_PASSWORD is unset; skipping bootstrap")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	a := &domain.Admin{
		AdminID:      s.superAdminID,
		Username:     username,
		PasswordHash: string(hash),
		Name:         name,
		Role:         domain.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, a); err != nil {
		return err
	}
	log.Info().Str("admin_id", a.AdminID).Msg("seeded super admin account")
	return nil
}
