package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"kycgate/internal/identity/models"
	"kycgate/pkg/platform/sentinel"
	"kycgate/pkg/testutil"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemoryStore()
	s.Require().NoError(s.store.Create(s.ctx, &models.Customer{Code: "CUST001", FirstName: "Jane"}))
	s.Require().NoError(s.store.Create(s.ctx, &models.Customer{Code: "CUST002", FirstName: "John"}))
}

func identityFor(bvn, code string) *models.Identity {
	return &models.Identity{Code: code, BVN: bvn, Phones: []string{"080"}}
}

func (s *InMemoryStoreSuite) TestCreate() {
	s.Run("assigns id and created_at", func() {
		c, err := s.store.FindByCode(s.ctx, "CUST001")
		s.Require().NoError(err)
		s.NotEmpty(c.ID)
		s.False(c.CreatedAt.IsZero())
	})

	s.Run("rejects duplicate code", func() {
		err := s.store.Create(s.ctx, &models.Customer{Code: "CUST001"})
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("rejects empty code", func() {
		s.Error(s.store.Create(s.ctx, &models.Customer{}))
	})
}

func (s *InMemoryStoreSuite) TestFindByCode() {
	_, err := s.store.FindByCode(s.ctx, "missing")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestConditionalAttachIdentity() {
	s.Run("attaches to a customer without identity", func() {
		s.Require().NoError(s.store.ConditionalAttachIdentity(s.ctx, "CUST001", "22338485291", identityFor("22338485291", "idt_aaaaaa")))

		c, err := s.store.FindByCode(s.ctx, "CUST001")
		s.Require().NoError(err)
		s.Require().NotNil(c.Identity)
		s.Equal("idt_aaaaaa", c.Identity.Code)
	})

	s.Run("same bvn is a silent no-op", func() {
		s.Require().NoError(s.store.ConditionalAttachIdentity(s.ctx, "CUST001", "22338485291", identityFor("22338485291", "idt_bbbbbb")))

		c, err := s.store.FindByCode(s.ctx, "CUST001")
		s.Require().NoError(err)
		s.Equal("idt_aaaaaa", c.Identity.Code)
	})

	s.Run("different bvn overwrites", func() {
		s.Require().NoError(s.store.ConditionalAttachIdentity(s.ctx, "CUST001", "11111111111", identityFor("11111111111", "idt_cccccc")))

		c, err := s.store.FindByCode(s.ctx, "CUST001")
		s.Require().NoError(err)
		s.Equal("idt_cccccc", c.Identity.Code)
	})

	s.Run("bvn held by another customer conflicts", func() {
		err := s.store.ConditionalAttachIdentity(s.ctx, "CUST002", "11111111111", identityFor("11111111111", "idt_dddddd"))
		s.ErrorIs(err, sentinel.ErrConflict)

		c, err := s.store.FindByCode(s.ctx, "CUST002")
		s.Require().NoError(err)
		s.Nil(c.Identity)
	})

	s.Run("missing customer is a silent no-op", func() {
		s.NoError(s.store.ConditionalAttachIdentity(s.ctx, "missing", "x", identityFor("99999999999", "idt_eeeeee")))
	})
}

func (s *InMemoryStoreSuite) TestFindIdentityByBVN() {
	_, err := s.store.FindIdentityByBVN(s.ctx, "22338485291")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.ConditionalAttachIdentity(s.ctx, "CUST002", "22338485291", identityFor("22338485291", "idt_aaaaaa")))

	found, err := s.store.FindIdentityByBVN(s.ctx, "22338485291")
	s.Require().NoError(err)
	s.Equal("CUST002", found.OwnerCode)
	s.Equal("idt_aaaaaa", found.Code)
}

func (s *InMemoryStoreSuite) TestReturnedCopiesAreIsolated() {
	s.Require().NoError(s.store.ConditionalAttachIdentity(s.ctx, "CUST001", "22338485291", identityFor("22338485291", "idt_aaaaaa")))

	c, err := s.store.FindByCode(s.ctx, "CUST001")
	s.Require().NoError(err)
	c.Identity.Phones[0] = "mutated"
	c.FirstName = "mutated"

	again, err := s.store.FindByCode(s.ctx, "CUST001")
	s.Require().NoError(err)
	s.Equal("080", again.Identity.Phones[0])
	s.Equal("Jane", again.FirstName)
}

func (s *InMemoryStoreSuite) TestConcurrentAttachSameBVN() {
	codes := []string{"CUST001", "CUST002"}
	result := testutil.RunConcurrent(20, func(idx int) error {
		code := codes[idx%2]
		return s.store.ConditionalAttachIdentity(s.ctx, code, "22338485291", identityFor("22338485291", "idt_race00"))
	})

	s.Equal(int32(0), result.Errors)
	// the winner's repeats hit the guard; every call for the other customer conflicts
	s.Equal(int32(10), result.Successes)
	s.Equal(int32(10), result.Conflicts)
	holders := 0
	for _, code := range codes {
		c, err := s.store.FindByCode(s.ctx, code)
		s.Require().NoError(err)
		if c.Identity != nil {
			holders++
		}
	}
	s.Equal(1, holders, "only one customer may hold a bvn")
}
