package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/usm-dti/event-tracker-api/internal/models"
	"github.com/usm-dti/event-tracker-api/pkg/config"
	appErrors "github.com/usm-dti/event-tracker-api/pkg/errors"
)

func newTestAuthService() (*AuthService, *toastRecorder) {
	toasts := &toastRecorder{}
	verifier := NewStaticCredentials(config.AdminConfig{Username: "admin", Password: "1234"})
	svc := NewAuthService(verifier, toasts, config.JWTConfig{Secret: "test_secret", Expiration: time.Hour}, zap.NewNop())
	return svc, toasts
}

func TestStaticCredentialsPlaintext(t *testing.T) {
	verifier := NewStaticCredentials(config.AdminConfig{Username: "admin", Password: "1234"})

	assert.True(t, verifier.Verify("admin", "1234"))
	assert.False(t, verifier.Verify("admin", "wrong"))
	assert.False(t, verifier.Verify("root", "1234"))
}

func TestStaticCredentialsBcryptHashWins(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	verifier := NewStaticCredentials(config.AdminConfig{
		Username:     "admin",
		Password:     "1234",
		PasswordHash: string(hash),
	})

	assert.True(t, verifier.Verify("admin", "s3cret"))
	assert.False(t, verifier.Verify("admin", "1234"))
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	svc, toasts := newTestAuthService()

	res, err := svc.Login(models.LoginRequest{Username: "admin", Password: "1234"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "admin", res.User.Username)
	assert.True(t, res.User.Admin)
	assert.Equal(t, int64(3600), res.ExpiresIn)

	require.Len(t, toasts.pushed, 1)
	assert.Equal(t, "Inicio de sesión exitoso", toasts.pushed[0].Message)
	assert.Equal(t, models.ToastSuccess, toasts.pushed[0].Type)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.True(t, claims.Admin)
}

func TestAuthServiceLoginRejected(t *testing.T) {
	svc, toasts := newTestAuthService()

	_, err := svc.Login(models.LoginRequest{Username: "admin", Password: "incorrecta"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)

	require.Len(t, toasts.pushed, 1)
	assert.Equal(t, "Credenciales incorrectas", toasts.pushed[0].Message)
	assert.Equal(t, models.ToastError, toasts.pushed[0].Type)
}

func TestAuthServiceLogoutToast(t *testing.T) {
	svc, toasts := newTestAuthService()

	svc.Logout("admin")

	require.Len(t, toasts.pushed, 1)
	assert.Equal(t, "Sesión cerrada correctamente", toasts.pushed[0].Message)
	assert.Equal(t, models.ToastInfo, toasts.pushed[0].Type)
}

func TestAuthServiceRejectsGarbageToken(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRejectsExpiredToken(t *testing.T) {
	toasts := &toastRecorder{}
	verifier := NewStaticCredentials(config.AdminConfig{Username: "admin", Password: "1234"})
	svc := NewAuthService(verifier, toasts, config.JWTConfig{Secret: "test_secret", Expiration: time.Hour}, zap.NewNop())
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	res, err := svc.Login(models.LoginRequest{Username: "admin", Password: "1234"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(res.AccessToken)
	assert.Error(t, err)
}

func TestAuthServiceRejectsTokenFromOtherSecret(t *testing.T) {
	first, _ := newTestAuthService()
	res, err := first.Login(models.LoginRequest{Username: "admin", Password: "1234"})
	require.NoError(t, err)

	verifier := NewStaticCredentials(config.AdminConfig{Username: "admin", Password: "1234"})
	other := NewAuthService(verifier, &toastRecorder{}, config.JWTConfig{Secret: "different", Expiration: time.Hour}, zap.NewNop())

	_, err = other.ValidateToken(res.AccessToken)
	assert.Error(t, err)
}
