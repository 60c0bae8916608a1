package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sppku/sppku-backend/internal/config"
	"github.com/sppku/sppku-backend/internal/model"
	"github.com/sppku/sppku-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotRegistered = errors.New("account is not registered as an admin")
	ErrExchangeFailed     = errors.New("authorization code exchange failed")
	ErrSessionInvalidated = errors.New("session invalidated by a newer login")
	ErrNoActiveSession    = errors.New("no active session")
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	AdminID     int        `json:"admin_id"`
	Role        model.Role `json:"role"`
	Permissions []string   `json:"permissions"`
}

// AuthService handles authentication, JWT issuance, and session management.
// Sign-in works two ways: local email/password, or an authorization code
// from the hosted Google sign-in. Both end in the same JWT.
type AuthService struct {
	cfg       *config.Config
	rdb       *redis.Client
	adminRepo *repository.AdminRepository
	oauth     *oauth2.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, rdb *redis.Client, adminRepo *repository.AdminRepository) *AuthService {
	return &AuthService{
		cfg:       cfg,
		rdb:       rdb,
		adminRepo: adminRepo,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// LoginLocal authenticates with email and password and issues a token.
func (s *AuthService) LoginLocal(ctx context.Context, email, password string) (string, *model.Admin, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if admin.PasswordHash == "" {
		return "", nil, ErrInvalidCredentials
	}
	if err := s.CheckPassword(admin.PasswordHash, password); err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(ctx, admin)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

// AuthURL builds the hosted sign-in URL for the given anti-forgery state.
func (s *AuthService) AuthURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// LoginWithCode exchanges an authorization code, resolves the Google profile,
// and issues a token. Only emails already on the admins table may sign in;
// unknown emails get ErrAdminNotRegistered.
func (s *AuthService) LoginWithCode(ctx context.Context, code string) (string, *model.Admin, error) {
	oauthToken, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", nil, ErrExchangeFailed
	}

	profile, err := s.fetchProfile(ctx, oauthToken)
	if err != nil {
		return "", nil, fmt.Errorf("fetch profile: %w", err)
	}

	admin, err := s.adminRepo.GetByEmail(ctx, profile.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return "", nil, ErrAdminNotRegistered
		}
		return "", nil, err
	}

	// Keep the stored display name and avatar in sync with the provider.
	if profile.Name != "" || profile.Picture != "" {
		name := profile.Name
		if name == "" {
			name = admin.Name
		}
		if err := s.adminRepo.UpdateProfile(ctx, admin.ID, name, profile.Picture); err != nil {
			return "", nil, err
		}
		admin.Name = name
		admin.PictureURL = profile.Picture
	}

	token, err := s.issueToken(ctx, admin)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ValidateSession checks that the token's JTI matches the active session in
// Redis. One active session per admin: a newer login replaces the old JTI
// and older tokens stop validating.
func (s *AuthService) ValidateSession(ctx context.Context, adminID int, jti string) error {
	stored, err := s.rdb.Get(ctx, config.CacheKey.AdminSessionKey(adminID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNoActiveSession
		}
		return fmt.Errorf("check session: %w", err)
	}
	if stored != jti {
		return ErrSessionInvalidated
	}
	return nil
}

// Logout drops the admin's active session.
func (s *AuthService) Logout(ctx context.Context, adminID int) error {
	return s.rdb.Del(ctx, config.CacheKey.AdminSessionKey(adminID)).Err()
}

func (s *AuthService) issueToken(ctx context.Context, admin *model.Admin) (string, error) {
	jti := uuid.New().String()
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.Itoa(admin.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		AdminID:     admin.ID,
		Role:        admin.Role,
		Permissions: model.RolePermissions[admin.Role],
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	// Store the session with the same expiry as the JWT. Overwriting the
	// key is what invalidates any previous token.
	if err := s.rdb.Set(ctx, config.CacheKey.AdminSessionKey(admin.ID), jti, s.cfg.JWTExpiry).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return signed, nil
}

type googleProfile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *AuthService) fetchProfile(ctx context.Context, token *oauth2.Token) (*googleProfile, error) {
	resp, err := s.oauth.Client(ctx, token).Get(googleUserinfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("userinfo returned %d: %s", resp.StatusCode, body)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	if profile.Email == "" {
		return nil, errors.New("profile has no email")
	}
	return &profile, nil
}
