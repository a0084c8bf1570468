package infrastructure

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"library-service/internal/apperrors"
)

// JWTService issues and verifies the HS256 bearer tokens that bind a request
// to a user identity.
type JWTService struct {
	secretKey []byte
	validity  time.Duration
}

func NewJWTService(secret string, validity time.Duration) *JWTService {
	return &JWTService{
		secretKey: []byte(secret),
		validity:  validity,
	}
}

func (j *JWTService) Validity() time.Duration {
	return j.validity
}

// GenerateToken signs a token carrying the user id as subject and an absolute
// expiry.
func (j *JWTService) GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"exp": time.Now().Add(j.validity).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// VerifyToken resolves a token string back to a user id. Missing, expired and
// otherwise invalid tokens each surface a distinct Unauthorized message.
func (j *JWTService) VerifyToken(tokenString string) (uint, error) {
	if tokenString == "" {
		return 0, apperrors.Unauthorized("You need a token to get access to this endpoint")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return j.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, apperrors.Unauthorized("Sorry, your token has expired. Please, log in again.")
		}
		return 0, apperrors.Unauthorized("Sorry, your token is invalid. Please, register or login again to obtain a valid token.")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, apperrors.Unauthorized("Sorry, your token is invalid. Please, register or login again to obtain a valid token.")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, apperrors.Unauthorized("Sorry, your token is invalid. Please, register or login again to obtain a valid token.")
	}

	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, apperrors.Unauthorized("Sorry, your token is invalid. Please, register or login again to obtain a valid token.")
	}

	return uint(userID), nil
}
