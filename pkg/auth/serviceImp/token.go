package serviceImp

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/Uvais-khan078/village360/pkg/auth/service"
)

const TokenTTL = 24 * time.Hour

type Claims struct {
	UserID string `json:"userId"`
	jwt.StandardClaims
}

type jwtIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) service.TokenIssuer {
	return &jwtIssuer{secret: []byte(secret), now: time.Now}
}

func (j *jwtIssuer) Issue(userID string) (string, error) {
	now := j.now()
	claims := &Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(TokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

func (j *jwtIssuer) Verify(raw string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", service.ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return "", service.ErrInvalidToken
	}
	return claims.UserID, nil
}
