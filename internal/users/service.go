package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"curriculum-backend/internal/shared/auth"
	"curriculum-backend/internal/shared/telemetry"
	"curriculum-backend/resume/validate"
)

type Service struct {
	Repo Repo
	// Cost is the bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// AdminInput creates or edits a user from the admin console. Empty fields are left unchanged
// on update.
type AdminInput struct {
	Username   string
	Email      string
	Password   string
	FullName   string
	PictureURL string
	Role       string
}

// Register validates the form and stores a new user with the user role.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	var fields validate.FieldErrors
	fields.Add("username", validate.Username(in.Username))
	fields.Add("email", validate.StrictEmail(in.Email))
	fields.Add("password", validate.Password(in.Password))
	fields.Add("fullName", validate.Name(in.FullName))
	if len(fields) > 0 {
		return User{}, &ValidationError{Fields: fields}
	}
	return s.create(ctx, AdminInput{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		FullName: in.FullName,
		Role:     auth.RoleUser,
	})
}

// Login checks the credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", User{}, ErrInvalidCredentials
	}
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", User{}, ErrInvalidCredentials
		}
		return "", User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		telemetry.Warn("auth.login_failed", map[string]any{"user_id": user.ID})
		return "", User{}, ErrInvalidCredentials
	}
	token, err := auth.SignJWT(auth.Claims{
		Sub:   user.ID,
		Email: user.Email,
		Name:  user.FullName,
		Role:  user.Role,
	})
	if err != nil {
		return "", User{}, err
	}
	return token, user, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]User, int, error) {
	return s.Repo.List(ctx, filter)
}

// Create is the admin variant of Register; it may assign the admin role.
func (s *Service) Create(ctx context.Context, in AdminInput) (User, error) {
	var fields validate.FieldErrors
	fields.Add("username", validate.Username(in.Username))
	fields.Add("email", validate.StrictEmail(in.Email))
	fields.Add("password", validate.Password(in.Password))
	fields.Add("role", roleMessage(in.Role))
	if len(fields) > 0 {
		return User{}, &ValidationError{Fields: fields}
	}
	if in.Role == "" {
		in.Role = auth.RoleUser
	}
	return s.create(ctx, in)
}

// Update applies the non-empty fields of in.
func (s *Service) Update(ctx context.Context, userID string, in AdminInput) (User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}

	var fields validate.FieldErrors
	if in.Username != "" {
		fields.Add("username", validate.Username(in.Username))
	}
	if in.Email != "" {
		fields.Add("email", validate.StrictEmail(in.Email))
	}
	if in.Password != "" {
		fields.Add("password", validate.Password(in.Password))
	}
	fields.Add("role", roleMessage(in.Role))
	if len(fields) > 0 {
		return User{}, &ValidationError{Fields: fields}
	}

	if in.Username != "" {
		user.Username = strings.TrimSpace(in.Username)
	}
	if in.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(in.Email))
	}
	if in.FullName != "" {
		user.FullName = strings.TrimSpace(in.FullName)
	}
	if in.PictureURL != "" {
		user.PictureURL = strings.TrimSpace(in.PictureURL)
	}
	if in.Role != "" {
		user.Role = in.Role
	}
	if in.Password != "" {
		hash, err := s.hash(in.Password)
		if err != nil {
			return User{}, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *Service) Delete(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, userID)
}

// BulkDelete removes every listed user and returns how many were deleted.
func (s *Service) BulkDelete(ctx context.Context, userIDs []string) (int, error) {
	ids := make([]string, 0, len(userIDs))
	seen := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return 0, ErrInvalidInput
	}
	n, err := s.Repo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, err
	}
	telemetry.Info("admin.users_deleted", map[string]any{"requested": len(ids), "deleted": n})
	return n, nil
}

func (s *Service) create(ctx context.Context, in AdminInput) (User, error) {
	hash, err := s.hash(in.Password)
	if err != nil {
		return User{}, err
	}
	now := s.now()
	user := User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Username:     strings.TrimSpace(in.Username),
		FullName:     strings.TrimSpace(in.FullName),
		PictureURL:   strings.TrimSpace(in.PictureURL),
		Role:         in.Role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	telemetry.Info("user.created", map[string]any{"user_id": user.ID, "role": user.Role})
	return user, nil
}

func (s *Service) hash(password string) (string, error) {
	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	out, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// roleMessage accepts an empty role, which callers treat as unchanged or default.
func roleMessage(role string) string {
	switch role {
	case "", auth.RoleUser, auth.RoleAdmin:
		return ""
	}
	return "Role must be user or admin"
}
