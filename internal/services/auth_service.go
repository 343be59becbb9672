package services

import (
	"context"
	"errors"
	"time"

	"abarto-backend/internal/domain"
	"abarto-backend/internal/repositories"
	"abarto-backend/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims is the verified claim set of an accepted token.
type Claims struct {
	AdminID int64
	Role    string
}

// AuthService authenticates admin credentials and issues/verifies the HS256
// tokens carried by protected requests.
type AuthService struct {
	Admins repositories.ResourceRepository
	Secret []byte
	TTL    time.Duration
}

func NewAuthService(admins repositories.ResourceRepository, secret string, ttl time.Duration) AuthService {
	return AuthService{Admins: admins, Secret: []byte(secret), TTL: ttl}
}

// Authenticate returns the principal, secret stripped, on a credential
// match. Unknown email and wrong password are indistinguishable to callers.
func (s AuthService) Authenticate(ctx context.Context, email, password string) (domain.Record, error) {
	email = utils.NormalizeEmail(email)

	id, hash, err := s.Admins.Credentials(ctx, "email", email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.UnauthorizedError{Msg: "invalid email or password"}
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, domain.UnauthorizedError{Msg: "invalid email or password"}
	}
	return s.Admins.GetByID(ctx, id)
}

// IssueToken signs a minimal claim set. An empty signing secret is a
// configuration error surfaced at startup; this guard only backstops it.
func (s AuthService) IssueToken(principal domain.Record) (string, error) {
	if len(s.Secret) == 0 {
		return "", domain.InternalError{Msg: "token signing secret is not configured"}
	}
	id, _ := principal["id"].(int64)
	role, _ := principal["role"].(string)

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": id,
		"role":     role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.TTL).Unix(),
	})
	return token.SignedString(s.Secret)
}

// VerifyToken fails closed: malformed, mis-signed and expired tokens all
// come back as nil claims, never as an error that could leak upstream.
func (s AuthService) VerifyToken(tokenString string) *Claims {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	rawID, ok := mc["admin_id"].(float64)
	if !ok || rawID <= 0 {
		return nil
	}
	role, _ := mc["role"].(string)
	return &Claims{AdminID: int64(rawID), Role: role}
}

// PrincipalByID reloads the acting admin fresh from the store, so deleted
// principals lose access even while their token is unexpired. The secret
// column is never part of this read.
func (s AuthService) PrincipalByID(ctx context.Context, id int64) (domain.Record, error) {
	return s.Admins.GetByID(ctx, id)
}
