package auth

import (
	"crypto/rsa"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the verified caller identity handed to every operation.
// It is produced by one of the Authenticator implementations; callers
// never see which scheme issued the token.
type Identity struct {
	UserID int
	Email  string
	Role   Role
}

type Authenticator interface {
	Authenticate(tokenString string) (*Identity, error)
}

// LocalSession verifies locally issued HS256 access tokens.
type LocalSession struct {
	secret string
}

func NewLocalSession(secret string) *LocalSession {
	return &LocalSession{secret: secret}
}

func (l *LocalSession) Authenticate(tokenString string) (*Identity, error) {
	claims, err := ValidateToken(tokenString, l.secret)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != "access" {
		return nil, ErrInvalidTokenType
	}

	return &Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// ExternalOAuth verifies RS256 tokens issued by a third-party identity
// provider. The provider is expected to carry the local user id and
// role in custom claims, provisioned at account-link time.
type ExternalOAuth struct {
	publicKey *rsa.PublicKey
	issuer    string
	audience  string
}

type externalClaims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func NewExternalOAuth(publicKeyPEM, issuer, audience string) (*ExternalOAuth, error) {
	if publicKeyPEM == "" {
		return nil, errors.New("external jwt public key cannot be empty")
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, err
	}

	return &ExternalOAuth{
		publicKey: key,
		issuer:    issuer,
		audience:  audience,
	}, nil
}

func (e *ExternalOAuth) Authenticate(tokenString string) (*Identity, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if e.issuer != "" {
		opts = append(opts, jwt.WithIssuer(e.issuer))
	}
	if e.audience != "" {
		opts = append(opts, jwt.WithAudience(e.audience))
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&externalClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return e.publicKey, nil
		},
		opts...,
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, err
	}

	claims, ok := token.Claims.(*externalClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	role, err := ParseRole(claims.Role)
	if err != nil {
		role = RoleMember
	}

	return &Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   role,
	}, nil
}
