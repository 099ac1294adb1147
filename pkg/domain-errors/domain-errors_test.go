package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeNotFound, Message: "customer not found"}
		s.Equal("customer not found", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeNotFound}
		s.Equal("not_found", err.Error())
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeNotFound, Message: "customer not found"}
		err2 := &Error{Code: CodeNotFound, Message: "identity exists"}
		s.True(errors.Is(err1, err2))
	})

	s.Run("does not match different codes", func() {
		err1 := &Error{Code: CodeNotFound}
		err2 := &Error{Code: CodeInternal}
		s.False(errors.Is(err1, err2))
	})

	s.Run("matches through fmt wrapping", func() {
		err := fmt.Errorf("context: %w", New(CodeConflict, "exists"))
		s.True(errors.Is(err, &Error{Code: CodeConflict}))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("preserves existing domain code and details", func() {
		inner := WithDetails(errors.New("provider said no"), CodeNotFound, "lookup failed", map[string]any{"reason": "x"})
		wrapped := Wrap(inner, CodeInternal, "verification failed")

		var de *Error
		s.Require().True(errors.As(wrapped, &de))
		s.Equal(CodeNotFound, de.Code)
		s.Equal("verification failed", de.Message)
		s.Equal(map[string]any{"reason": "x"}, de.Details)
	})

	s.Run("applies code to plain errors", func() {
		wrapped := Wrap(errors.New("db down"), CodeInternal, "store failed")
		s.True(HasCode(wrapped, CodeInternal))
		s.Equal("db down", errors.Unwrap(wrapped).Error())
	})
}

func (s *DomainErrorsSuite) TestHasCode() {
	s.True(HasCode(New(CodeNotFound, "x"), CodeNotFound))
	s.False(HasCode(errors.New("plain"), CodeNotFound))
}
