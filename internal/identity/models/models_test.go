package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "kycgate/pkg/domain-errors"
)

func TestIdentityJSONFlattensAttributes(t *testing.T) {
	id := Identity{
		Code:       "idt_abc123",
		BVN:        "22338485291",
		Customer:   uuid.MustParse("6f1c1f9a-3f55-4a8e-9d5b-1a3e1c0e2f10"),
		Phones:     []string{"080"},
		Emails:     []string{},
		Aliases:    []string{},
		OnWashlist: true,
		OwnerCode:  "CUST001",
		Attributes: map[string]any{
			"gender": "Male",
			"bvn":    "shadowed",
		},
	}

	raw, err := json.Marshal(id)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Equal(t, "Male", flat["gender"])
	assert.Equal(t, "22338485291", flat["bvn"], "typed field wins")
	assert.Equal(t, "idt_abc123", flat["identity"])
	assert.Equal(t, true, flat["on_washlist"])
	assert.NotContains(t, flat, "OwnerCode")

	var back Identity
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, "22338485291", back.BVN)
	assert.Equal(t, map[string]any{"gender": "Male"}, back.Attributes)
	assert.Empty(t, back.OwnerCode)
}

func TestIdentityCloneIsDeep(t *testing.T) {
	orig := &Identity{Phones: []string{"1"}, Attributes: map[string]any{"a": "b"}}
	c := orig.Clone()
	c.Phones[0] = "2"
	c.Attributes["a"] = "c"

	assert.Equal(t, "1", orig.Phones[0])
	assert.Equal(t, "b", orig.Attributes["a"])
	assert.Nil(t, (*Identity)(nil).Clone())
}

func TestEnvelopeOK(t *testing.T) {
	var nilEnv *AccountsEnvelope
	assert.False(t, nilEnv.OK())
	assert.False(t, (&AccountsEnvelope{Status: "error"}).OK())
	assert.True(t, (&AccountsEnvelope{Status: StatusSuccess}).OK())
}

func TestRequestValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     interface{ Validate() error }
		wantErr bool
	}{
		{"valid bvn", &VerifyIdentityRequest{BVN: "22338485291"}, false},
		{"missing bvn", &VerifyIdentityRequest{}, true},
		{"short bvn", &AccountsByBVNRequest{BVN: "2233848529"}, true},
		{"non-digit bvn", &AccountsByBVNRequest{BVN: "2233848529x"}, true},
		{"valid nuban", &ConfirmNUBANRequest{NUBAN: "0124781881", Bank: "slug bank", BVN: "22338485291"}, false},
		{"nuban too long", &ConfirmNUBANRequest{NUBAN: "01247818811", Bank: "slug bank", BVN: "22338485291"}, true},
		{"nuban missing bank", &ConfirmNUBANRequest{NUBAN: "0124781881", BVN: "22338485291"}, true},
		{"confirm bvn needs dob", &ConfirmBVNRequest{BVN: "22338485291"}, true},
		{"valid confirm bvn", &ConfirmBVNRequest{DOB: "1991-11-06", BVN: "22338485291"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNormalizeTrims(t *testing.T) {
	req := &ConfirmNUBANRequest{NUBAN: " 0124781881 ", Bank: " slug bank ", BVN: "22338485291\n"}
	req.Normalize()
	assert.Equal(t, ConfirmNUBANRequest{NUBAN: "0124781881", Bank: "slug bank", BVN: "22338485291"}, *req)
}
