package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avidelsur/distribuidora-api/internal/application/apptest"
	"github.com/avidelsur/distribuidora-api/internal/application/auth"
	"github.com/avidelsur/distribuidora-api/internal/application/dto"
	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	pkgjwt "github.com/avidelsur/distribuidora-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newUC(s *apptest.Store) *auth.UseCase {
	return auth.NewUseCase(&apptest.UserRepo{S: s}, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "distribuidora-test",
	})
}

func registerReq() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    "juan@avidelsur.com",
		Password: "contraseña-segura",
		Name:     "Juan",
		Role:     entity.RoleChofer,
	}
}

func TestRegisterUser_CreaActivoYHashea(t *testing.T) {
	s := apptest.NewStore()
	uc := newUC(s)

	resp, err := uc.RegisterUser(registerReq())
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusActive, resp.Status)
	assert.Equal(t, entity.RoleChofer, resp.Role)

	stored := s.Users[resp.ID]
	assert.NotEqual(t, "contraseña-segura", stored.PasswordHash,
		"la password nunca se persiste en texto plano")
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	s := apptest.NewStore()
	uc := newUC(s)

	_, err := uc.RegisterUser(registerReq())
	require.NoError(t, err)

	_, err = uc.RegisterUser(registerReq())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLogin_OK(t *testing.T) {
	s := apptest.NewStore()
	uc := newUC(s)
	_, err := uc.RegisterUser(registerReq())
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "juan@avidelsur.com", Password: "contraseña-segura"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "juan@avidelsur.com", resp.User.Email)

	// El token emitido tiene que traer userID y rol.
	userID, role, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
	assert.Equal(t, entity.RoleChofer, role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	s := apptest.NewStore()
	uc := newUC(s)
	_, err := uc.RegisterUser(registerReq())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "juan@avidelsur.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailInexistente(t *testing.T) {
	uc := newUC(apptest.NewStore())

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@avidelsur.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"email inexistente responde igual que password incorrecta")
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	s := apptest.NewStore()
	uc := newUC(s)
	resp, err := uc.RegisterUser(registerReq())
	require.NoError(t, err)

	u := s.Users[resp.ID]
	u.Status = entity.UserStatusInactive
	s.Users[resp.ID] = u

	_, err = uc.Login(dto.LoginRequest{Email: "juan@avidelsur.com", Password: "contraseña-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
