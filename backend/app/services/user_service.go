package services

import (
	"errors"
	"strings"

	"ponto/backend/app/models"
	"ponto/backend/app/repo"
	"ponto/pkg/api"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct{ users *repo.UserRepository }

func NewUserService(users *repo.UserRepository) *UserService { return &UserService{users: users} }

// EnsureAdmin creates an admin account unless the username is already taken.
func (s *UserService) EnsureAdmin(nomeCompleto, username, password string) (bool, error) {
	count, err := s.users.CountByUsername(username)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if nomeCompleto == "" {
		nomeCompleto = username
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	u := &models.User{NomeCompleto: nomeCompleto, Username: username, PasswordHash: string(hash), Role: string(api.RoleAdmin)}
	if err := s.users.Create(u); err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserService) CreateUser(req api.CreateUserRequest) (*models.User, error) {
	req.NomeCompleto = strings.TrimSpace(req.NomeCompleto)
	req.Username = strings.TrimSpace(req.Username)
	if req.NomeCompleto == "" || req.Username == "" || req.Password == "" {
		return nil, invalid("Nome completo, usuário e senha são obrigatórios.")
	}
	if req.Role == "" {
		req.Role = api.RoleFuncionario
	}
	if !req.Role.Valid() {
		return nil, invalid("Perfil inválido.")
	}
	count, err := s.users.CountByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{NomeCompleto: req.NomeCompleto, Username: req.Username, PasswordHash: string(hash), Role: string(req.Role)}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUser rewrites profile fields; a nil or empty password keeps the stored hash.
func (s *UserService) UpdateUser(id uint, req api.UpdateUserRequest) (*models.User, error) {
	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	req.NomeCompleto = strings.TrimSpace(req.NomeCompleto)
	req.Username = strings.TrimSpace(req.Username)
	if req.NomeCompleto == "" || req.Username == "" {
		return nil, invalid("Nome completo e usuário são obrigatórios.")
	}
	if req.Role == "" {
		req.Role = api.Role(u.Role)
	}
	if !req.Role.Valid() {
		return nil, invalid("Perfil inválido.")
	}
	if req.Username != u.Username {
		count, err := s.users.CountByUsername(req.Username)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrConflict
		}
	}
	u.NomeCompleto = req.NomeCompleto
	u.Username = req.Username
	u.Role = string(req.Role)
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	if err := s.users.Save(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) DeleteUser(id uint) error {
	if err := s.users.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *UserService) ListUsers() ([]api.User, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, err
	}
	out := make([]api.User, 0, len(users))
	for _, u := range users {
		out = append(out, ToAPIUser(u))
	}
	return out, nil
}

func (s *UserService) Get(id uint) (*models.User, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) ValidateCredentials(username, password string) (*models.User, error) {
	u, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func ToAPIUser(u models.User) api.User {
	return api.User{ID: u.ID, NomeCompleto: u.NomeCompleto, Username: u.Username, Role: api.Role(u.Role)}
}
