package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "Cuben"
	JWTExpirationTime        = time.Hour * 24
)

// MemberClaims Token 中携带的业务信息
type MemberClaims struct {
	MemberID   uint64 `json:"member_id"`
	MemberType string `json:"member_type"`
	jwt.RegisteredClaims
}
