package userapp

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"besafe/internal/core/apperr"
	userEntity "besafe/internal/core/user"
	"besafe/internal/ports/envelope"
	userPort "besafe/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*userEntity.User
	clock int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*userEntity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *userEntity.User) (*userEntity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[u.Username]; exists {
		return nil, fmt.Errorf("%w: username %q", apperr.ErrConflict, u.Username)
	}
	f.clock++
	cp := *u
	cp.CreatedAt = time.Unix(int64(f.clock), 0)
	f.users[u.Username] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*userEntity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindAll(context.Context) ([]*userEntity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*userEntity.User
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeUserRepo) UpdateImage(_ context.Context, username, headerImage, bytesImage string) (*userEntity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	u.HeaderImage = headerImage
	u.BytesImage = bytesImage
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, username)
	return nil
}

var testJWTKey = []byte("test-secret")

func newUserService(repo *fakeUserRepo) *UserService {
	return NewUserService(repo, testJWTKey, zap.NewNop())
}

func TestCriarUsuario(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)

	env, err := svc.CriarUsuario(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Usuário criado com sucesso!", env.Mensagem)

	dto := env.Dados.(*userPort.UserDTO)
	assert.Equal(t, "alice", dto.Username)
	assert.Equal(t, "User", dto.Role)
	assert.Equal(t, "data:image/png;base64", dto.HeaderImage)
	assert.NotEmpty(t, dto.BytesImage)

	stored := repo.users["alice"]
	assert.NotEqual(t, "s3cret", stored.Password, "password must never be stored in plaintext")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret")))
}

func TestCriarUsuario_Duplicate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)

	_, err := svc.CriarUsuario(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	env, err := svc.CriarUsuario(context.Background(), "alice", "outra")
	require.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, "Usuário já existe.", env.Mensagem)
}

func TestCriarUsuario_MissingFields(t *testing.T) {
	svc := newUserService(newFakeUserRepo())

	_, err := svc.CriarUsuario(context.Background(), "  ", "s3cret")
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.CriarUsuario(context.Background(), "alice", "")
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestLoginUsuario(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	_, err := svc.CriarUsuario(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	env, err := svc.LoginUsuario(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Login realizado com sucesso!", env.Mensagem)

	res := env.Dados.(*userPort.LoginResponse)
	require.NotEmpty(t, res.Token)
	assert.Greater(t, res.ExpiresAt, time.Now().Unix())

	claims := &jwt.StandardClaims{}
	_, err = jwt.ParseWithClaims(res.Token, claims, func(*jwt.Token) (interface{}, error) {
		return testJWTKey, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "besafe", claims.Issuer)
}

func TestLoginUsuario_BadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	_, err := svc.CriarUsuario(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	_, err = svc.LoginUsuario(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = svc.LoginUsuario(context.Background(), "nobody", "s3cret")
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestColetarUsuarioPeloNome(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	_, err := svc.CriarUsuario(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	env, err := svc.ColetarUsuarioPeloNome(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Usuário coletado com sucesso!", env.Mensagem)
	assert.Equal(t, "alice", env.Dados.(*userPort.UserDTO).Username)

	env, err = svc.ColetarUsuarioPeloNome(context.Background(), "nobody")
	require.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "Erro ao coletar usuário.", env.Mensagem)
	assert.IsType(t, envelope.Erro{}, env.Dados)
}

func TestColetarUsuarios(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := svc.CriarUsuario(context.Background(), name, "s3cret")
		require.NoError(t, err)
	}

	env, err := svc.ColetarUsuarios(context.Background())
	require.NoError(t, err)
	dtos := env.Dados.([]*userPort.UserDTO)
	require.Len(t, dtos, 3)
	// newest first
	assert.Equal(t, "carol", dtos[0].Username)
}

func TestExcluirUsuario(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	_, err := svc.CriarUsuario(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	env, err := svc.ExcluirUsuario(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Usuário removido com sucesso.", env.Mensagem)
	assert.NotContains(t, repo.users, "alice")

	_, err = svc.ExcluirUsuario(context.Background(), "alice")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUploadPerfilImage(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	_, err := svc.CriarUsuario(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	env, err := svc.UploadPerfilImage(context.Background(), "alice", "data:image/jpeg;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "Sucesso em editar usuário.", env.Mensagem)

	dto := env.Dados.(*userPort.UserDTO)
	assert.Equal(t, "data:image/jpeg;base64", dto.HeaderImage)
	assert.Equal(t, "AAAA", dto.BytesImage)
}

func TestUploadPerfilImage_Invalid(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	_, err := svc.CriarUsuario(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	for _, payload := range []string{"", "no-comma", "image/png;base64,AAAA", "data:image/png;base64,"} {
		_, err := svc.UploadPerfilImage(context.Background(), "alice", payload)
		require.ErrorIs(t, err, apperr.ErrValidation, "payload=%q", payload)
	}

	_, err = svc.UploadPerfilImage(context.Background(), "nobody", "data:image/png;base64,AAAA")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	stored := repo.users["alice"]
	assert.Equal(t, "data:image/png;base64", stored.HeaderImage, "failed uploads must not change the image")
}
