package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourshop/internal/app/domains/entity/etprimitive"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	token, exp, err := issuer.Issue(etprimitive.Actor{UserID: 9, Role: etprimitive.RoleAdmin})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	actor, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(9), actor.UserID)
	assert.True(t, actor.IsAdmin())
}

func TestParseRejectsForeignSecret(t *testing.T) {
	token, _, err := NewIssuer("one", time.Hour).Issue(etprimitive.Actor{UserID: 1, Role: etprimitive.RoleCliente})
	require.NoError(t, err)

	_, err = NewIssuer("two", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	issuer.ttl = -time.Minute

	token, _, err := issuer.Issue(etprimitive.Actor{UserID: 1, Role: etprimitive.RoleCliente})
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsUnknownRole(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	token, _, err := issuer.Issue(etprimitive.Actor{UserID: 1, Role: "root"})
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
