// internal/services/auth_service_test.go
package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/models"
	"github.com/spicekart/backoffice/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db     *gorm.DB
	mailer *fakeMailer
	svc    *AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.db = openTestDB(s.T())
	s.mailer = &fakeMailer{}
	s.svc = NewAuthService(s.db, s.mailer, testConfig())
	utils.SetJWTSecret("test-secret")
}

func (s *AuthServiceTestSuite) register() *AuthResult {
	result, err := s.svc.Register(&RegisterRequest{
		Name:  "Asha",
		Email: "asha@example.com",
		Phone: "+15551234567",
	})
	s.Require().NoError(err)
	return result
}

func (s *AuthServiceTestSuite) TestRegisterIssuesCodeAndToken() {
	result := s.register()

	s.NotEmpty(result.Token)
	s.False(result.Client.Verified)
	s.Require().Len(s.mailer.sent, 1)
	s.Regexp(regexp.MustCompile(`^[0-9A-F]{6}$`), s.mailer.sent[0])

	clientID, err := utils.ValidateClientJWT(result.Token)
	s.Require().NoError(err)
	s.Equal(result.Client.ID, clientID)
}

func (s *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	s.register()

	_, err := s.svc.Register(&RegisterRequest{
		Name:  "Other",
		Email: "asha@example.com",
		Phone: "+15559876543",
	})
	s.Require().ErrorIs(err, ErrConflict)
}

func (s *AuthServiceTestSuite) TestLoginUnknownPhone() {
	_, err := s.svc.Login("+15550000000")
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *AuthServiceTestSuite) TestVerifyRoundTrip() {
	result := s.register()

	client, err := s.svc.Verify(result.Client.ID, s.mailer.sent[0])
	s.Require().NoError(err)
	s.True(client.Verified)

	// codes are single use
	_, err = s.svc.Verify(result.Client.ID, s.mailer.sent[0])
	s.Require().ErrorIs(err, ErrVerification)
}

func (s *AuthServiceTestSuite) TestVerifyWrongCode() {
	result := s.register()

	_, err := s.svc.Verify(result.Client.ID, "FFFFFF")
	s.Require().ErrorIs(err, ErrVerification)

	// the stored code survives a failed attempt
	var count int64
	s.db.Model(&models.Otp{}).Where("client_id = ?", result.Client.ID).Count(&count)
	s.EqualValues(1, count)
}

func (s *AuthServiceTestSuite) TestVerifyExpiredCode() {
	result := s.register()

	// age the code past the TTL
	expired := time.Now().Add(-11 * time.Minute)
	s.Require().NoError(s.db.Model(&models.Otp{}).
		Where("client_id = ?", result.Client.ID).
		Update("created_at", expired).Error)

	_, err := s.svc.Verify(result.Client.ID, s.mailer.sent[0])
	s.Require().ErrorIs(err, ErrVerification)
}

func (s *AuthServiceTestSuite) TestLoginReissueThrottle() {
	result := s.register()

	_, err := s.svc.Login(result.Client.Phone)
	s.Require().ErrorIs(err, ErrRateLimited)
	s.Len(s.mailer.sent, 1)
}

func (s *AuthServiceTestSuite) TestLoginSupersedesOldCode() {
	result := s.register()

	// move the first code outside the reissue window
	s.Require().NoError(s.db.Model(&models.Otp{}).
		Where("client_id = ?", result.Client.ID).
		Update("created_at", time.Now().Add(-2*time.Minute)).Error)

	_, err := s.svc.Login(result.Client.Phone)
	s.Require().NoError(err)
	s.Require().Len(s.mailer.sent, 2)

	// the superseded code no longer verifies
	_, err = s.svc.Verify(result.Client.ID, s.mailer.sent[0])
	s.Require().ErrorIs(err, ErrVerification)

	client, err := s.svc.Verify(result.Client.ID, s.mailer.sent[1])
	s.Require().NoError(err)
	s.True(client.Verified)
}

func (s *AuthServiceTestSuite) TestMailFailureLeavesNoCode() {
	result := s.register()

	s.Require().NoError(s.db.Where("client_id = ?", result.Client.ID).Delete(&models.Otp{}).Error)

	s.mailer.fail = true
	_, err := s.svc.Login(result.Client.Phone)
	s.Require().ErrorIs(err, ErrDependency)

	var count int64
	s.db.Model(&models.Otp{}).Where("client_id = ?", result.Client.ID).Count(&count)
	s.Zero(count)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
