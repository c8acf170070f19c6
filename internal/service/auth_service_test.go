package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowbit/helpdesk/internal/config"
	"github.com/flowbit/helpdesk/internal/domain"
	"github.com/flowbit/helpdesk/internal/repository/repotest"
	"github.com/flowbit/helpdesk/internal/service"
	apperrors "github.com/flowbit/helpdesk/pkg/util"
)

func newAuthService(users *repotest.UserRepo) *service.AuthService {
	return service.NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}, service.AuthDependencies{
		UserRepo:   users,
		TenantRepo: repotest.NewTenantRepo(),
	})
}

func TestRegisterCreatesUserWithHashedPassword(t *testing.T) {
	users := repotest.NewUserRepo()
	svc := newAuthService(users)

	user, token, _, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "U1@X.com",
		Password: "pw123456",
		TenantID: "LogisticsCo",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "u1@x.com", user.Email)
	assert.Equal(t, "LogisticsCo", user.TenantID)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "pw123456", user.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(repotest.NewUserRepo())
	ctx := context.Background()

	cases := []struct {
		name   string
		input  service.RegisterInput
		status int
	}{
		{"unknown tenant", service.RegisterInput{Email: "a@x.com", Password: "pw123456", TenantID: "NoSuchCo"}, 400},
		{"short password", service.RegisterInput{Email: "a@x.com", Password: "pw", TenantID: "LogisticsCo"}, 400},
		{"bad email", service.RegisterInput{Email: "not-an-email", Password: "pw123456", TenantID: "LogisticsCo"}, 400},
		{"bad role", service.RegisterInput{Email: "a@x.com", Password: "pw123456", TenantID: "LogisticsCo", Role: "root"}, 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := svc.Register(ctx, tc.input)
			require.Error(t, err)
			assert.Equal(t, tc.status, apperrors.ToDomainError(err).HTTPStatus)
		})
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newAuthService(repotest.NewUserRepo())
	ctx := context.Background()

	input := service.RegisterInput{Email: "u1@x.com", Password: "pw123456", TenantID: "LogisticsCo"}
	_, _, _, err := svc.Register(ctx, input)
	require.NoError(t, err)

	// Same email in a different tenant is still a conflict: email is globally unique.
	input.TenantID = "RetailGmbH"
	_, _, _, err = svc.Register(ctx, input)
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
}

func TestLogin(t *testing.T) {
	svc := newAuthService(repotest.NewUserRepo())
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, service.RegisterInput{Email: "u1@x.com", Password: "pw123456", TenantID: "LogisticsCo"})
	require.NoError(t, err)

	user, token, _, err := svc.Login(ctx, "u1@x.com", "pw123456")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "u1@x.com", user.Email)

	_, _, _, err = svc.Login(ctx, "u1@x.com", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.ToDomainError(err).HTTPStatus)

	// Unknown email fails identically to a wrong password.
	_, _, _, err = svc.Login(ctx, "nobody@x.com", "pw123456")
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.ToDomainError(err).HTTPStatus)
}

func TestChangePassword(t *testing.T) {
	users := repotest.NewUserRepo()
	svc := newAuthService(users)
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, service.RegisterInput{Email: "u1@x.com", Password: "pw123456", TenantID: "LogisticsCo"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, "wrong-password", "newpw12345")
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.ToDomainError(err).HTTPStatus)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "pw123456", "newpw12345"))

	_, _, _, err = svc.Login(ctx, "u1@x.com", "pw123456")
	assert.Error(t, err)
	_, _, _, err = svc.Login(ctx, "u1@x.com", "newpw12345")
	assert.NoError(t, err)
}
