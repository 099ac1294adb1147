// Package merge folds a provider identity payload and the stored customer
// into a new Identity with deduplicated contact and alias sets.
package merge

import (
	"github.com/google/uuid"

	"kycgate/internal/identity/models"
	"kycgate/pkg/random"
	kstrings "kycgate/pkg/platform/strings"
)

const identityCodeLength = 6

// Engine builds identities. It performs no I/O.
type Engine struct {
	gen random.Generator
}

func New(gen random.Generator) *Engine {
	if gen == nil {
		gen = random.NewPRNG()
	}
	return &Engine{gen: gen}
}

// NewIdentityCode returns idt_ followed by six lowercase alphanumerics.
// Codes are not checked against existing ones.
func (e *Engine) NewIdentityCode() string {
	return models.IdentityCodePrefix + e.gen.Generate(identityCodeLength, random.Alphanumeric, random.Lowercase)
}

// Merge assembles the identity for customer from the pipeline result.
// requestedBVN is used only when the payload carries no Bvn.
func (e *Engine) Merge(customer *models.Customer, requestedBVN string, details models.BVNDetails) *models.Identity {
	f := extractFields(details)

	bvn := f.BVN
	if bvn == "" {
		bvn = requestedBVN
	}

	identity := &models.Identity{
		Code:           e.NewIdentityCode(),
		BVN:            bvn,
		Customer:       customerRef(customer),
		DOB:            f.DOB,
		FullName:       f.FullName,
		EnrollmentDate: f.EnrollmentDate,
		EnrollmentBank: f.EnrollmentBank,
		LGAOrigin:      f.LGAOrigin,
		LGAResidence:   f.LGAResidence,
		Phones:         kstrings.UnionExact(customer.PhoneNumber, f.Phone),
		Emails:         kstrings.UnionExact(customer.Email, f.Email),
		Aliases:        Aliases(customer, f.FirstName, f.MiddleName, f.LastName),
		Enrollment: models.Enrollment{
			Bank:             f.EnrollmentBank,
			RegistrationDate: f.RegistrationDate,
		},
		OnWashlist: f.OnWashlist,
	}
	if len(f.Rest) > 0 {
		identity.Attributes = f.Rest
	}
	return identity
}

// Aliases collects the customer's stored names that differ from the
// provider's name in the same role, checked middle, first, then last. Each role
// is compared only with its own counterpart; the set itself only blocks exact
// repeats.
func Aliases(customer *models.Customer, first, middle, last string) []string {
	aliases := make([]string, 0, 3)
	roles := []struct{ stored, provided string }{
		{customer.OtherName, middle},
		{customer.FirstName, first},
		{customer.LastName, last},
	}
	for _, r := range roles {
		if r.stored != r.provided {
			aliases = kstrings.AppendUnique(aliases, r.stored)
		}
	}
	return aliases
}

func customerRef(c *models.Customer) uuid.UUID {
	if c == nil {
		return uuid.Nil
	}
	return c.ID
}
