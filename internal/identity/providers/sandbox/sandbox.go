// Package sandbox is a provider client that answers every call with fixed
// fixtures, for running the service without network access.
package sandbox

import (
	"context"

	"kycgate/internal/identity/models"
	"kycgate/internal/identity/providers"
)

// ProviderID identifies the sandbox client in errors and spans.
const ProviderID = "sandbox"

// Fixture values exposed for tests that assert on merged output.
const (
	FixtureBVN       = "22338485291"
	FixtureBirthdate = "1991-11-06"
	FixturePhone     = "2348135613401"
	FixtureEmail     = "danyadegokey@gmail.com"
)

// Client returns the same literal envelopes regardless of input.
type Client struct{}

func New() *Client {
	return &Client{}
}

func (c *Client) ID() string { return ProviderID }

func (c *Client) AccountsByBVN(_ context.Context, _ string) (*models.AccountsEnvelope, error) {
	return &models.AccountsEnvelope{
		Status:  models.StatusSuccess,
		Message: "Account(s) successfully retrieved",
		Data: models.Payload[[]models.Account]{Response: []models.Account{
			{AccountNo: "0124781881", Bank: "slug bank"},
			{AccountNo: "2094452855", Bank: "not-slug bank"},
		}},
	}, nil
}

func (c *Client) ConfirmNUBAN(_ context.Context, _, _, _ string) (*models.NUBANEnvelope, error) {
	return &models.NUBANEnvelope{
		Status:  models.StatusSuccess,
		Message: "NUBAN successfully confimed",
		Data: models.Payload[models.NUBANDetails]{Response: models.NUBANDetails{
			Birthdate:     FixtureBirthdate,
			AccountNumber: "0124781881",
			Bank:          "slug bank",
			FullName:      "John Doe",
			Email:         FixtureEmail,
			PhoneNumber:   FixturePhone,
			BVN:           FixtureBVN,
		}},
	}, nil
}

func (c *Client) ConfirmBVN(_ context.Context, _, _ string) (*models.BVNEnvelope, error) {
	return &models.BVNEnvelope{
		Status:  models.StatusSuccess,
		Message: "BVN successfully confimed",
		Data:    models.Payload[models.BVNDetails]{Response: bvnFixture()},
	}, nil
}

// bvnFixture is rebuilt on every call so callers may mutate their copy.
func bvnFixture() models.BVNDetails {
	return models.BVNDetails{
		"FirstName":           "john",
		"MiddleName":          "junior",
		"LastName":            "doe",
		"DateOfBirth":         FixtureBirthdate,
		"Address":             "2a Iya Oloye",
		"Gender":              "Male",
		"PhotoId":             "http://127.0.0.1:3001/identities",
		"Enrollment_Date":     "2022-11-06",
		"Enrollment_Bank":     "slug bank",
		"Phone":               FixturePhone,
		"Email":               FixtureEmail,
		"FullName":            "John Doe",
		"Bvn":                 FixtureBVN,
		"Nin":                 "88827657012",
		"LGAOrigin":           "Chukun",
		"LGAOfResidence":      "8 Tudun-wada",
		"nationality":         "Nigerian",
		"State_of_residence":  "Lagos",
		"State_of_origin":     "Kaduna",
		"EnnrollmentBbank":    "slug Bank",
		"RegistrationDate":    "2022-11-06",
		"Washlist":            false,
		"MaritalStatus":       "single",
		"AccountLevel":        "level 1",
		"VerificationCountry": "NG",
	}
}

var _ providers.Client = (*Client)(nil)
