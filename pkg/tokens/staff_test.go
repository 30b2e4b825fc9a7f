package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-jwt-secret")

func TestSignStaffToken_RoundTrip(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(15 * time.Minute)
	token, err := SignStaffToken(12, RoleCashier, exp, secret)
	require.NoError(t, err)

	claims, err := StaffClaimsFromToken(token, secret)
	require.NoError(t, err)

	id, err := claims.StaffID()
	require.NoError(t, err)
	assert.EqualValues(t, 12, id)
	assert.Equal(t, RoleCashier, claims.Role)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestStaffClaimsFromToken_Rejects(t *testing.T) {
	t.Parallel()

	expired, err := SignStaffToken(1, RoleManager, time.Now().Add(-time.Minute), secret)
	require.NoError(t, err)
	_, err = StaffClaimsFromToken(expired, secret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))

	other, err := SignStaffToken(1, RoleManager, time.Now().Add(time.Minute), []byte("other"))
	require.NoError(t, err)
	_, err = StaffClaimsFromToken(other, secret)
	require.Error(t, err)

	_, err = StaffClaimsFromToken("not-a-jwt", secret)
	require.Error(t, err)
}

func TestStaffID_BadSubject(t *testing.T) {
	t.Parallel()

	c := StaffClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}}
	_, err := c.StaffID()
	require.Error(t, err)
}
