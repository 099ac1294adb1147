package models

import (
	"strings"

	dErrors "kycgate/pkg/domain-errors"
)

const (
	bvnLength   = 11
	nubanLength = 10
)

// AccountsByBVNRequest looks up the accounts linked to a BVN.
type AccountsByBVNRequest struct {
	BVN string `json:"bvn"`
}

func (r *AccountsByBVNRequest) Normalize() { r.BVN = strings.TrimSpace(r.BVN) }

func (r *AccountsByBVNRequest) Validate() error { return ValidateBVN(r.BVN) }

// ConfirmNUBANRequest confirms an account number belongs to a BVN.
type ConfirmNUBANRequest struct {
	NUBAN string `json:"nuban"`
	Bank  string `json:"bank"`
	BVN   string `json:"bvn"`
}

func (r *ConfirmNUBANRequest) Normalize() {
	r.NUBAN = strings.TrimSpace(r.NUBAN)
	r.Bank = strings.TrimSpace(r.Bank)
	r.BVN = strings.TrimSpace(r.BVN)
}

func (r *ConfirmNUBANRequest) Validate() error {
	if !isDigits(r.NUBAN, nubanLength) {
		return dErrors.New(dErrors.CodeValidation, "nuban must be 10 digits")
	}
	if r.Bank == "" {
		return dErrors.New(dErrors.CodeValidation, "bank is required")
	}
	return ValidateBVN(r.BVN)
}

// ConfirmBVNRequest fetches the identity payload for a BVN and date of birth.
type ConfirmBVNRequest struct {
	DOB string `json:"dob"`
	BVN string `json:"bvn"`
}

func (r *ConfirmBVNRequest) Normalize() {
	r.DOB = strings.TrimSpace(r.DOB)
	r.BVN = strings.TrimSpace(r.BVN)
}

func (r *ConfirmBVNRequest) Validate() error {
	if r.DOB == "" {
		return dErrors.New(dErrors.CodeValidation, "dob is required")
	}
	return ValidateBVN(r.BVN)
}

// VerifyIdentityRequest is the body of a customer identity verification.
type VerifyIdentityRequest struct {
	BVN string `json:"bvn"`
}

func (r *VerifyIdentityRequest) Normalize() { r.BVN = strings.TrimSpace(r.BVN) }

func (r *VerifyIdentityRequest) Validate() error { return ValidateBVN(r.BVN) }

// ValidateBVN checks a BVN is exactly 11 digits.
func ValidateBVN(bvn string) error {
	if bvn == "" {
		return dErrors.New(dErrors.CodeValidation, "bvn is required")
	}
	if !isDigits(bvn, bvnLength) {
		return dErrors.New(dErrors.CodeValidation, "bvn must be 11 digits")
	}
	return nil
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
