package tokens

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ritikapurwa08/free-knowledge/internals/types"
)

func GenerateTokens(user *types.User) (string, string, error) {
	accessTokenClaims := jwt.MapClaims{
		"sub":  user.Id,
		"name": user.Username,
		"exp":  time.Now().Add(15 * time.Minute).Unix(),
	}
	refreshTokenClaims := jwt.MapClaims{
		"sub": user.Id,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessTokenClaims)
	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshTokenClaims)

	secret := []byte(os.Getenv("JWT_SECRET_KEY"))

	accessTokenStr, err := accessToken.SignedString(secret)
	if err != nil {
		return "", "", err
	}
	refreshTokenStr, err := refreshToken.SignedString(secret)
	if err != nil {
		return "", "", err
	}

	return accessTokenStr, refreshTokenStr, nil
}
