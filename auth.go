package main

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const jwtSecretSetting = "jwt_secret"

// PlayerClaims are the claims carried by a player token
type PlayerClaims struct {
	Name string `json:"usr"`
	jwt.RegisteredClaims
}

// Auth issues and validates player tokens
type Auth struct {
	jwtSecret []byte
	ttl       time.Duration
}

// NewAuth creates an Auth. The secret comes from override when set, otherwise
// from the database settings, generating and persisting one if missing.
func NewAuth(db *DB, override string, ttl time.Duration) (*Auth, error) {
	secret := []byte(override)
	if override == "" {
		var err error
		if secret, err = loadOrCreateSecret(db); err != nil {
			return nil, err
		}
	}
	return &Auth{jwtSecret: secret, ttl: ttl}, nil
}

// loadOrCreateSecret loads the JWT secret from the database, or generates
// and persists a new one if none exists.
func loadOrCreateSecret(db *DB) ([]byte, error) {
	if db != nil {
		if h := db.GetSetting(jwtSecretSetting); h != "" {
			if b, err := hex.DecodeString(h); err == nil && len(b) == 32 {
				return b, nil
			}
			log.Printf("auth: stored secret is malformed, generating a new one")
		}
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, errors.Wrap(err, "generate jwt secret")
	}
	if db != nil {
		if err := db.SetSetting(jwtSecretSetting, hex.EncodeToString(secret)); err != nil {
			log.Printf("auth: could not persist secret: %v", err)
		}
	}
	return secret, nil
}

// IssueToken signs a token for a display name and returns it with its subject
func (a *Auth) IssueToken(name string) (string, string, error) {
	now := time.Now()
	sub := uuid.NewString()
	claims := PlayerClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.jwtSecret)
	if err != nil {
		return "", "", errors.Wrap(err, "sign token")
	}
	return token, sub, nil
}

// ValidateToken parses a token and returns its claims
func (a *Auth) ValidateToken(tokenStr string) (*PlayerClaims, error) {
	claims := &PlayerClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, errors.Wrap(err, "invalid token subject")
	}
	return claims, nil
}
