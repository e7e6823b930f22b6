package jwttoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	dErrors "vardef/pkg/domain-errors"
)

const (
	testKey    = "test-signing-key"
	testIssuer = "vardef-test"
	testEmail  = "ano@ssb.no"
)

var testGroups = []string{"play-enhjoern-a-developers", "dapla-felles-developers"}

type JWTSuite struct {
	suite.Suite
	service *JWTService
}

func TestJWTSuite(t *testing.T) {
	suite.Run(t, new(JWTSuite))
}

func (s *JWTSuite) SetupTest() {
	s.service = NewJWTService(testKey, testIssuer)
}

func (s *JWTSuite) assertUnauthorized(token, message string) {
	_, err := s.service.ValidateToken(token)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	if message != "" {
		s.Equal(message, dErrors.MessageOf(err))
	}
}

// =============================================================================
// Round trip
// =============================================================================

func (s *JWTSuite) TestIssuedTokenValidates() {
	token, err := s.service.GenerateAccessToken(testEmail, testGroups, time.Hour)
	s.Require().NoError(err)

	claims, err := s.service.ValidateToken(token)
	s.Require().NoError(err)
	s.Equal(testEmail, claims.User())
	s.Equal(testGroups, claims.Groups)
	s.WithinDuration(time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func (s *JWTSuite) TestAdapterCarriesGroups() {
	token, err := s.service.GenerateAccessToken(testEmail, testGroups, time.Hour)
	s.Require().NoError(err)

	claims, err := NewJWTServiceAdapter(s.service).ValidateToken(token)
	s.Require().NoError(err)
	s.Equal(testEmail, claims.Subject)
	s.Equal(testGroups, claims.Groups)
}

func (s *JWTSuite) TestUserFallsBackToSubject() {
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "svc-account"}}
	s.Equal("svc-account", c.User())
}

// =============================================================================
// Rejections
// =============================================================================
// Justification: every rejection must surface as unauthorized so the middleware
// answers 401 without inspecting jwt library errors.

func (s *JWTSuite) TestRejectsGarbage() {
	s.assertUnauthorized("not-a-token", "invalid token")
}

func (s *JWTSuite) TestRejectsExpired() {
	token, err := s.service.GenerateAccessToken(testEmail, testGroups, -time.Minute)
	s.Require().NoError(err)
	s.assertUnauthorized(token, "token has expired")
}

func (s *JWTSuite) TestRejectsForeignKeyAndIssuer() {
	s.Run("different key", func() {
		token, err := NewJWTService("another-key", testIssuer).GenerateAccessToken(testEmail, testGroups, time.Hour)
		s.Require().NoError(err)
		s.assertUnauthorized(token, "")
	})
	s.Run("different issuer", func() {
		token, err := NewJWTService(testKey, "someone-else").GenerateAccessToken(testEmail, testGroups, time.Hour)
		s.Require().NoError(err)
		s.assertUnauthorized(token, "")
	})
}

func (s *JWTSuite) TestRejectsAnonymousToken() {
	token, err := s.service.GenerateAccessToken("", testGroups, time.Hour)
	s.Require().NoError(err)
	s.assertUnauthorized(token, "token has no subject")
}

func (s *JWTSuite) TestRejectsNonHMAC() {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Email:            testEmail,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: testIssuer},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	s.Require().NoError(err)
	s.assertUnauthorized(token, "invalid token")
}
