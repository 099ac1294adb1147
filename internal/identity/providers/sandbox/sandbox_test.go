package sandbox

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycgate/internal/identity/models"
)

func TestAccountsByBVNIgnoresInput(t *testing.T) {
	c := New()
	for _, bvn := range []string{"anything", "", FixtureBVN} {
		env, err := c.AccountsByBVN(context.Background(), bvn)
		require.NoError(t, err)
		assert.True(t, env.OK())
		assert.Equal(t, []models.Account{
			{AccountNo: "0124781881", Bank: "slug bank"},
			{AccountNo: "2094452855", Bank: "not-slug bank"},
		}, env.Data.Response)
	}
}

func TestConfirmNUBANFixture(t *testing.T) {
	env, err := New().ConfirmNUBAN(context.Background(), "x", "y", "z")
	require.NoError(t, err)
	assert.True(t, env.OK())
	assert.Equal(t, "1991-11-06", env.Data.Response.Birthdate)
	assert.Equal(t, "22338485291", env.Data.Response.BVN)
}

func TestConfirmBVNFixture(t *testing.T) {
	c := New()
	env, err := c.ConfirmBVN(context.Background(), "", "")
	require.NoError(t, err)
	assert.True(t, env.OK())
	resp := env.Data.Response
	assert.Equal(t, "22338485291", resp["Bvn"])
	assert.Equal(t, "John Doe", resp["FullName"])
	assert.Equal(t, false, resp["Washlist"])
	assert.Len(t, resp, 25)

	resp["Bvn"] = "mutated"
	again, err := c.ConfirmBVN(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "22338485291", again.Data.Response["Bvn"])
}
