package tokens

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleCashier = "cashier"
	RoleKitchen = "kitchen"
	RoleManager = "manager"
)

// StaffClaims are issued by the auth service to cashier, kitchen and
// manager terminals. Subject holds the numeric staff id.
type StaffClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (c *StaffClaims) StaffID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, errors.New("subject is not a staff id")
	}
	return uint(id), nil
}

func StaffClaimsFromToken(tokenStr string, secret []byte) (*StaffClaims, error) {
	var claims StaffClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return &claims, nil
}

func SignStaffToken(staffID uint, role string, exp time.Time, secret []byte) (string, error) {
	claims := StaffClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(staffID), 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
