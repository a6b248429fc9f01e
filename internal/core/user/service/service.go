package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"besafe/internal/core/apperr"
	userEntity "besafe/internal/core/user"
	"besafe/internal/ports/envelope"
	userPort "besafe/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// defaultProfileImage is the 1x1 PNG every new account starts with, in the
// same data-URL form uploads arrive in.
const defaultProfileImage = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

type UserService struct {
	UserRepository userPort.UserRepository
	Logger         *zap.Logger
	jwtKey         []byte
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: repo,
		Logger:         logger,
		jwtKey:         jwtKey,
	}
}

// CriarUsuario registers a new account with a hashed password, the default
// profile image and the default role.
func (s *UserService) CriarUsuario(ctx context.Context, username, password string) (*envelope.Envelope, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		err := fmt.Errorf("%w: username e password são obrigatórios", apperr.ErrValidation)
		return envelope.Falha(err, "Erro ao criar usuário."), err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return envelope.Falha(err, "Erro ao criar usuário."), err
	}

	header, bytes, err := splitDataURL(defaultProfileImage)
	if err != nil {
		return envelope.Falha(err, "Erro ao criar usuário."), err
	}

	u := &userEntity.User{
		ID:          uuid.Must(uuid.NewV4()),
		Username:    username,
		Password:    string(hashed),
		Role:        "User",
		HeaderImage: header,
		BytesImage:  bytes,
	}

	created, err := s.UserRepository.Create(ctx, u)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return envelope.Falha(err, "Usuário já existe."), err
		}
		s.Logger.Error("failed to create user", zap.String("username", username), zap.Error(err))
		err = fmt.Errorf("%w: %v", apperr.ErrDatastore, err)
		return envelope.Falha(err, "Erro ao criar usuário."), err
	}

	return envelope.Sucesso(toDTO(created), "Usuário criado com sucesso!"), nil
}

// LoginUsuario checks the password and issues a 24h HS256 token with the
// username as subject.
func (s *UserService) LoginUsuario(ctx context.Context, username, password string) (*envelope.Envelope, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil || u == nil {
		err = fmt.Errorf("%w: credenciais inválidas", apperr.ErrUnauthorized)
		return envelope.Falha(err, "Erro ao efetuar login."), err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		err = fmt.Errorf("%w: credenciais inválidas", apperr.ErrUnauthorized)
		return envelope.Falha(err, "Erro ao efetuar login."), err
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	claims := &jwt.StandardClaims{
		Subject:   u.Username,
		Issuer:    "besafe",
		ExpiresAt: expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		s.Logger.Error("failed to sign token", zap.String("username", username), zap.Error(err))
		return envelope.Falha(err, "Erro ao efetuar login."), err
	}

	res := &userPort.LoginResponse{Token: token, ExpiresAt: expiresAt.Unix()}
	return envelope.Sucesso(res, "Login realizado com sucesso!"), nil
}

// ColetarUsuarioPeloNome fetches a single user by username.
func (s *UserService) ColetarUsuarioPeloNome(ctx context.Context, username string) (*envelope.Envelope, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		s.Logger.Error("failed to fetch user", zap.String("username", username), zap.Error(err))
		err = fmt.Errorf("%w: %v", apperr.ErrDatastore, err)
		return envelope.Falha(err, "Erro ao coletar usuário."), err
	}
	if u == nil {
		err = fmt.Errorf("%w: Usuário não encontrado", apperr.ErrNotFound)
		return envelope.Falha(err, "Erro ao coletar usuário."), err
	}
	return envelope.Sucesso(toDTO(u), "Usuário coletado com sucesso!"), nil
}

// ColetarUsuarios lists every account, newest first.
func (s *UserService) ColetarUsuarios(ctx context.Context) (*envelope.Envelope, error) {
	users, err := s.UserRepository.FindAll(ctx)
	if err != nil {
		s.Logger.Error("failed to list users", zap.Error(err))
		err = fmt.Errorf("%w: %v", apperr.ErrDatastore, err)
		return envelope.Falha(err, "Erro ao coletar usuarios."), err
	}

	dtos := make([]*userPort.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, toDTO(u))
	}
	return envelope.Sucesso(dtos, "Sucesso em coletar usuarios."), nil
}

// ExcluirUsuario removes an account permanently.
func (s *UserService) ExcluirUsuario(ctx context.Context, username string) (*envelope.Envelope, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		err = fmt.Errorf("%w: %v", apperr.ErrDatastore, err)
		return envelope.Falha(err, "Erro ao remover usuário."), err
	}
	if u == nil {
		err = fmt.Errorf("%w: Usuário não encontrado", apperr.ErrNotFound)
		return envelope.Falha(err, "Erro ao remover usuário."), err
	}

	if err := s.UserRepository.Delete(ctx, username); err != nil {
		s.Logger.Error("failed to delete user", zap.String("username", username), zap.Error(err))
		err = fmt.Errorf("%w: %v", apperr.ErrDatastore, err)
		return envelope.Falha(err, "Erro ao remover usuário."), err
	}
	return envelope.Sucesso(nil, "Usuário removido com sucesso."), nil
}

// UploadPerfilImage replaces the profile image from a data-URL payload
// ("data:<mime>;base64,<bytes>"). The image bytes stay an opaque blob.
func (s *UserService) UploadPerfilImage(ctx context.Context, username, base64String string) (*envelope.Envelope, error) {
	header, bytes, err := splitDataURL(base64String)
	if err != nil {
		return envelope.Falha(err, "Erro ao editar usuário."), err
	}

	updated, err := s.UserRepository.UpdateImage(ctx, username, header, bytes)
	if err != nil {
		s.Logger.Error("failed to update profile image", zap.String("username", username), zap.Error(err))
		err = fmt.Errorf("%w: %v", apperr.ErrDatastore, err)
		return envelope.Falha(err, "Erro ao editar usuário."), err
	}
	if updated == nil {
		err = fmt.Errorf("%w: Usuário não encontrado", apperr.ErrNotFound)
		return envelope.Falha(err, "Erro ao editar usuário."), err
	}
	return envelope.Sucesso(toDTO(updated), "Sucesso em editar usuário."), nil
}

// splitDataURL separates the mime header from the encoded bytes.
func splitDataURL(dataURL string) (header, bytes string, err error) {
	header, bytes, found := strings.Cut(dataURL, ",")
	if !found || !strings.HasPrefix(header, "data:") || bytes == "" {
		return "", "", fmt.Errorf("%w: imagem em formato data-URL inválido", apperr.ErrValidation)
	}
	return header, bytes, nil
}

func toDTO(u *userEntity.User) *userPort.UserDTO {
	return &userPort.UserDTO{
		ID:          u.ID.String(),
		Username:    u.Username,
		Role:        u.Role,
		HeaderImage: u.HeaderImage,
		BytesImage:  u.BytesImage,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}
