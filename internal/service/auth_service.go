package service

import (
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/usm-dti/event-tracker-api/internal/models"
	"github.com/usm-dti/event-tracker-api/pkg/config"
	appErrors "github.com/usm-dti/event-tracker-api/pkg/errors"
)

// CredentialVerifier checks a credential pair against the configured admin
// identity.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// StaticCredentials verifies against the single admin account from
// configuration. When a bcrypt hash is configured it takes precedence over
// the plaintext password.
type StaticCredentials struct {
	username     string
	password     string
	passwordHash string
}

// NewStaticCredentials builds the verifier from the admin config.
func NewStaticCredentials(cfg config.AdminConfig) *StaticCredentials {
	return &StaticCredentials{
		username:     cfg.Username,
		password:     cfg.Password,
		passwordHash: cfg.PasswordHash,
	}
}

// Verify reports whether the pair matches the admin identity.
func (c *StaticCredentials) Verify(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) != 1 {
		return false
	}
	if c.passwordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(c.passwordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(c.password)) == 1
}

// AuthService issues and validates session tokens for the admin identity.
// Sessions are stateless: logout only clears client state and emits the
// confirmation toast.
type AuthService struct {
	verifier CredentialVerifier
	toasts   toastPusher
	logger   *zap.Logger
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService constructs the service.
func NewAuthService(verifier CredentialVerifier, toasts toastPusher, jwtCfg config.JWTConfig, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		verifier: verifier,
		toasts:   toasts,
		logger:   logger,
		secret:   []byte(jwtCfg.Secret),
		ttl:      jwtCfg.Expiration,
		now:      time.Now,
	}
}

// Login verifies the credential pair and issues a signed token. A failed
// attempt emits an error toast and returns ErrInvalidCredentials.
func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	if !s.verifier.Verify(req.Username, req.Password) {
		s.logger.Warn("login rejected",
			zap.String("username", req.Username),
			zap.String("ip", req.IP),
		)
		s.toasts.Push("Credenciales incorrectas", models.ToastError)
		return nil, appErrors.ErrInvalidCredentials
	}

	issuedAt := s.now()
	claims := models.JWTClaims{
		Username: req.Username,
		Admin:    true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   req.Username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	s.logger.Info("login accepted",
		zap.String("username", req.Username),
		zap.String("ip", req.IP),
	)
	s.toasts.Push("Inicio de sesión exitoso", models.ToastSuccess)

	return &models.LoginResponse{
		AccessToken: signed,
		ExpiresIn:   int64(s.ttl.Seconds()),
		User:        models.UserInfo{Username: req.Username, Admin: true},
		IssuedAt:    issuedAt,
	}, nil
}

// Logout acknowledges the end of the session.
func (s *AuthService) Logout(username string) {
	s.logger.Info("logout", zap.String("username", username))
	s.toasts.Push("Sesión cerrada correctamente", models.ToastInfo)
}

// ValidateToken parses and verifies a signed token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return claims, nil
}
