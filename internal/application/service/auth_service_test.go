package service

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
	"github.com/sparetrack/sparetrack-api/internal/domain/enum"
	"github.com/sparetrack/sparetrack-api/pkg/apperror"
	"github.com/sparetrack/sparetrack-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(env *testEnv) *AuthService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(env.userRepo, jwtManager, logger)
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)
	user := env.createStaffUser(t, "Counter Staff", "9000000002", enum.UserRoleStaff)

	tokens, err := auth.Login(env.ctx, "9000000002", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, user.ID, tokens.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)
	env.createStaffUser(t, "Counter Staff", "9000000002", enum.UserRoleStaff)

	_, err := auth.Login(env.ctx, "9000000002", "wrong")
	assert.Equal(t, apperror.ErrInvalidCredentials, err)

	_, err = auth.Login(env.ctx, "0000000000", "secret123")
	assert.Equal(t, apperror.ErrInvalidCredentials, err)
}

func TestLogin_InactiveAccountBlocked(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)
	user := env.createStaffUser(t, "Counter Staff", "9000000002", enum.UserRoleStaff)

	require.NoError(t, env.users.DeactivateUser(env.ctx, env.shop.ID, user.ID))

	_, err := auth.Login(env.ctx, "9000000002", "secret123")
	assert.Equal(t, apperror.ErrForbidden, err)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)
	env.createStaffUser(t, "Counter Staff", "9000000002", enum.UserRoleStaff)

	tokens, err := auth.Login(env.ctx, "9000000002", "secret123")
	require.NoError(t, err)

	refreshed, err := auth.RefreshToken(env.ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = auth.RefreshToken(env.ctx, "not-a-token")
	assert.Equal(t, apperror.ErrInvalidToken, err)
}

func TestChangePassword_VerifiesCurrent(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)
	user := env.createStaffUser(t, "Counter Staff", "9000000002", enum.UserRoleStaff)

	err := auth.ChangePassword(env.ctx, user.ID, "wrong", "newsecret")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	require.NoError(t, auth.ChangePassword(env.ctx, user.ID, "secret123", "newsecret"))

	_, err = auth.Login(env.ctx, "9000000002", "newsecret")
	require.NoError(t, err)
}

func TestCreateRetailer_DuplicatePhoneRejected(t *testing.T) {
	env := newTestEnv(t)
	env.createRetailer(t, "Ravi Auto", "9000000001")

	_, err := env.users.CreateRetailer(env.ctx, env.shop.ID, &CreateRetailerInput{
		Name:     "Second Account",
		Phone:    "9000000001",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	assert.Equal(t, int64(1), env.countRows(t, &entity.User{}))
}

func TestDeactivateUser_MasterProtected(t *testing.T) {
	env := newTestEnv(t)
	master := env.createStaffUser(t, "Owner", "9000000009", enum.UserRoleMaster)

	err := env.users.DeactivateUser(env.ctx, env.shop.ID, master.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
