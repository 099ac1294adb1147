package models

// StatusSuccess is the envelope status of a successful provider call.
const StatusSuccess = "success"

// Envelope is the {status, message, data:{response}} shape every provider
// operation returns.
type Envelope[T any] struct {
	Status  string     `json:"status"`
	Message string     `json:"message,omitempty"`
	Data    Payload[T] `json:"data"`
}

type Payload[T any] struct {
	Response T `json:"response"`
}

// OK reports whether the provider signalled success.
func (e *Envelope[T]) OK() bool {
	return e != nil && e.Status == StatusSuccess
}

// Account is one bank account linked to a BVN.
type Account struct {
	AccountNo string `json:"account_no"`
	Bank      string `json:"bank"`
}

// NUBANDetails is the result of confirming an account number against a BVN.
type NUBANDetails struct {
	Birthdate     string `json:"birthdate"`
	AccountNumber string `json:"account_number"`
	Bank          string `json:"bank"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	BVN           string `json:"bvn"`
}

// BVNDetails is the full identity payload from BVN confirmation, keyed by the
// provider's own field names (FirstName, Enrollment_Date, Washlist, ...).
type BVNDetails map[string]any

type (
	AccountsEnvelope = Envelope[[]Account]
	NUBANEnvelope    = Envelope[NUBANDetails]
	BVNEnvelope      = Envelope[BVNDetails]
)
