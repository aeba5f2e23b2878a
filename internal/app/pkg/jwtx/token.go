package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tourshop/internal/app/domains/entity/etprimitive"
)

// ErrInvalidToken token 无效或已过期
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims 登录令牌载荷
type Claims struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer 签发与校验 HS256 令牌
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer 创建令牌签发器
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue 为操作者签发令牌
func (i *Issuer) Issue(actor etprimitive.Actor) (string, time.Time, error) {
	expiresAt := time.Now().Add(i.ttl)
	claims := Claims{
		UserID: actor.UserID,
		Role:   string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token failed: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse 校验令牌并还原操作者
func (i *Issuer) Parse(raw string) (etprimitive.Actor, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return etprimitive.Actor{}, ErrInvalidToken
	}

	role := etprimitive.Role(claims.Role)
	if claims.UserID <= 0 || (role != etprimitive.RoleAdmin && role != etprimitive.RoleCliente) {
		return etprimitive.Actor{}, ErrInvalidToken
	}
	return etprimitive.Actor{UserID: claims.UserID, Role: role}, nil
}
