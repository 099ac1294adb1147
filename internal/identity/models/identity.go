package models

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
)

// IdentityCodePrefix prefixes every generated identity code.
const IdentityCodePrefix = "idt_"

// Enrollment records where and when the BVN was enrolled.
type Enrollment struct {
	Bank             string `json:"bank"`
	RegistrationDate string `json:"registration_date"`
}

// Identity is the verified snapshot attached to a customer. BVN is the
// business key: no two identities share one.
//
// Attributes holds the remaining provider fields under snake_case names. They
// are flattened into the JSON object alongside the typed fields; a typed field
// wins when names collide.
type Identity struct {
	Code           string     `json:"identity"`
	BVN            string     `json:"bvn"`
	Customer       uuid.UUID  `json:"customer"`
	DOB            string     `json:"dob"`
	FullName       string     `json:"fullname"`
	EnrollmentDate string     `json:"enrollment_date"`
	EnrollmentBank string     `json:"enrollment_bank"`
	LGAOrigin      string     `json:"lga_origin"`
	LGAResidence   string     `json:"lga_residence"`
	Phones         []string   `json:"phones"`
	Emails         []string   `json:"emails"`
	Aliases        []string   `json:"aliases"`
	Enrollment     Enrollment `json:"enrollment"`
	OnWashlist     bool       `json:"on_washlist"`

	Attributes map[string]any `json:"-"`

	// OwnerCode is the code of the customer holding this identity. Stores
	// populate it on lookups; it is never serialized.
	OwnerCode string `json:"-"`
}

// identityFields mirrors Identity without methods so encoding/json does not recurse.
type identityFields Identity

// MarshalJSON flattens Attributes into the identity object.
func (i Identity) MarshalJSON() ([]byte, error) {
	typed, err := json.Marshal(identityFields(i))
	if err != nil {
		return nil, err
	}
	if len(i.Attributes) == 0 {
		return typed, nil
	}

	var known map[string]json.RawMessage
	if err := json.Unmarshal(typed, &known); err != nil {
		return nil, err
	}

	merged := make(map[string]any, len(i.Attributes)+len(known))
	for k, v := range i.Attributes {
		merged[k] = v
	}
	for k, v := range known {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON restores typed fields and collects every other key into Attributes.
func (i *Identity) UnmarshalJSON(data []byte) error {
	var typed identityFields
	if err := json.Unmarshal(data, &typed); err != nil {
		return fmt.Errorf("decode identity: %w", err)
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return fmt.Errorf("decode identity attributes: %w", err)
	}
	for _, k := range typedIdentityKeys {
		delete(all, k)
	}

	*i = Identity(typed)
	if len(all) > 0 {
		i.Attributes = all
	}
	return nil
}

var typedIdentityKeys = []string{
	"identity", "bvn", "customer", "dob", "fullname", "enrollment_date",
	"enrollment_bank", "lga_origin", "lga_residence", "phones", "emails",
	"aliases", "enrollment", "on_washlist",
}

// IsTypedIdentityKey reports whether key is serialized from a typed Identity
// field, so an attribute under that name would be shadowed.
func IsTypedIdentityKey(key string) bool {
	return slices.Contains(typedIdentityKeys, key)
}

// Clone returns a deep copy so callers can not mutate stored state.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	c.Phones = append([]string(nil), i.Phones...)
	c.Emails = append([]string(nil), i.Emails...)
	c.Aliases = append([]string(nil), i.Aliases...)
	if i.Attributes != nil {
		c.Attributes = maps.Clone(i.Attributes)
	}
	return &c
}
