package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/resto-admin/internal/application/auth"
	"github.com/tu-usuario/resto-admin/internal/application/dto"
	"github.com/tu-usuario/resto-admin/internal/domain"
	"github.com/tu-usuario/resto-admin/internal/domain/entity"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	err     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if r.err != nil {
		return r.err
	}
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ string) (*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func newAuthUC(repo *fakeUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret: "secret-de-prueba", ExpMinutes: 60, Issuer: "resto-admin",
	})
}

func TestRegister_RolPorDefectoCajero(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())
	out, err := uc.Register(dto.RegisterRequest{Email: "ana@resto.co", Password: "secreta"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCajero, out.Role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)
	_, err := uc.Register(dto.RegisterRequest{Email: "ana@resto.co", Password: "secreta"})
	require.NoError(t, err)
	_, err = uc.Register(dto.RegisterRequest{Email: "ana@resto.co", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Un fallo de la base al consultar el email no puede leerse como
// "usuario inexistente": el registro se aborta con el error.
func TestRegister_FalloDeConsultaSePropaga(t *testing.T) {
	repo := newFakeUserRepo()
	repo.err = errors.New("connection refused")
	uc := newAuthUC(repo)

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@resto.co", Password: "secreta"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection refused")
}

func TestRegister_RolInvalido(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo())
	_, err := uc.Register(dto.RegisterRequest{Email: "ana@resto.co", Password: "secreta", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogin_CredencialesYEstado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuthUC(repo)
	_, err := uc.Register(dto.RegisterRequest{Email: "ana@resto.co", Password: "secreta"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@resto.co", Password: "secreta"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@resto.co", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@resto.co", Password: "secreta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	repo.byEmail["ana@resto.co"].Active = false
	_, err = uc.Login(dto.LoginRequest{Email: "ana@resto.co", Password: "secreta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
