// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/config"
	"github.com/spicekart/backoffice/internal/metrics"
	"github.com/spicekart/backoffice/internal/models"
	"github.com/spicekart/backoffice/internal/utils"
)

// AuthService runs the client login flow: phone lookup, one-time code
// delivery over email, and code verification. Codes are single-use and
// expire after Otp.TTLMinutes; issuing a new code invalidates all
// earlier ones for the client.
type AuthService struct {
	db     *gorm.DB
	mailer Mailer
	cfg    *config.Config
}

func NewAuthService(db *gorm.DB, mailer Mailer, cfg *config.Config) *AuthService {
	return &AuthService{db: db, mailer: mailer, cfg: cfg}
}

type RegisterRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,phone"`
}

type AuthResult struct {
	Token  string         `json:"token"`
	Client *models.Client `json:"client"`
}

// Login looks the client up by phone number and emails a fresh code.
// The returned token carries only the client id; it proves possession
// of the phone number, not ownership of the inbox, until Verify.
func (s *AuthService) Login(phone string) (*AuthResult, error) {
	var client models.Client
	if err := s.db.Where("phone = ?", phone).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no account for this phone number: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.issueCode(&client); err != nil {
		return nil, err
	}

	token, err := utils.GenerateClientJWT(client.ID, s.cfg.JWT.ClientTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{Token: token, Client: &client}, nil
}

// Register creates an unverified client and emails the first code.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), ErrValidation)
	}

	var existing models.Client
	err := s.db.Where("email = ? OR phone = ?", req.Email, req.Phone).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("an account with this email or phone already exists: %w", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	client := &models.Client{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := s.db.Create(client).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("an account with this email or phone already exists: %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if err := s.issueCode(client); err != nil {
		return nil, err
	}

	token, err := utils.GenerateClientJWT(client.ID, s.cfg.JWT.ClientTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{Token: token, Client: client}, nil
}

// Verify checks the submitted code against the stored ones. On success
// the client is marked verified and every outstanding code for the
// client is consumed.
func (s *AuthService) Verify(clientID uuid.UUID, code string) (*models.Client, error) {
	var client models.Client
	if err := s.db.First(&client, "id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client not found: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	cutoff := time.Now().Add(-time.Duration(s.cfg.Otp.TTLMinutes) * time.Minute)

	var otp models.Otp
	err := s.db.Where("client_id = ? AND otp = ? AND created_at > ?", clientID, code, cutoff).
		First(&otp).Error
	if err != nil {
		metrics.OtpFailedTotal.Inc()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid or expired code: %w", ErrVerification)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&client).Update("is_verified", true).Error; err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}
		if err := tx.Where("client_id = ?", clientID).Delete(&models.Otp{}).Error; err != nil {
			return fmt.Errorf("failed to consume codes: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	client.Verified = true
	metrics.OtpVerifiedTotal.Inc()
	return &client, nil
}

// issueCode replaces any outstanding codes with a fresh one and mails
// it. A code is never left in the database unless the email went out.
func (s *AuthService) issueCode(client *models.Client) error {
	var latest models.Otp
	err := s.db.Where("client_id = ?", client.ID).
		Order("created_at desc").
		First(&latest).Error
	if err == nil {
		wait := time.Duration(s.cfg.Otp.ReissueSeconds) * time.Second
		if time.Since(latest.CreatedAt) < wait {
			return fmt.Errorf("a code was sent recently, try again later: %w", ErrRateLimited)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Where("client_id = ?", client.ID).Delete(&models.Otp{}).Error; err != nil {
		return fmt.Errorf("failed to clear previous codes: %w", err)
	}

	code, err := utils.GenerateOtpCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	otp := &models.Otp{Code: code, ClientID: client.ID}
	if err := s.db.Create(otp).Error; err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}

	if err := s.mailer.SendOtp(client.Email, client.Name, code); err != nil {
		// Back out the stored code so a delivery outage cannot strand a
		// client with a code they never received.
		s.db.Delete(&models.Otp{}, "id = ?", otp.ID)
		return fmt.Errorf("failed to send verification email: %w", ErrDependency)
	}

	metrics.OtpIssuedTotal.Inc()
	return nil
}
