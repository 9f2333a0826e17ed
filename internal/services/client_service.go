// internal/services/client_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/models"
	"github.com/spicekart/backoffice/internal/utils"
)

// ClientService covers the client-facing profile surface: the profile
// itself, the address book, and reviews. Every operation is scoped to a
// single client id taken from the verified token.
type ClientService struct {
	db *gorm.DB
}

func NewClientService(db *gorm.DB) *ClientService {
	return &ClientService{db: db}
}

func (s *ClientService) Get(clientID uuid.UUID) (*models.Client, error) {
	var client models.Client
	err := s.db.Preload("Addresses").First(&client, "id = ?", clientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client %s: %w", clientID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &client, nil
}

type UpdateClientRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
}

func (s *ClientService) Update(clientID uuid.UUID, req *UpdateClientRequest) (*models.Client, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), ErrValidation)
	}

	client, err := s.Get(clientID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if len(updates) == 0 {
		return client, nil
	}

	if err := s.db.Model(client).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("email already in use: %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// Addresses

type AddressRequest struct {
	Label      string `json:"label" validate:"omitempty,oneof=HOME WORK OTHER"`
	Line1      string `json:"line1" validate:"required,min=3,max=255"`
	Line2      string `json:"line2" validate:"max=255"`
	City       string `json:"city" validate:"max=100"`
	State      string `json:"state" validate:"max=100"`
	PostalCode string `json:"postal_code" validate:"max=20"`
	IsDefault  bool   `json:"isDefault"`
}

func (s *ClientService) ListAddresses(clientID uuid.UUID) ([]models.Address, error) {
	var addresses []models.Address
	err := s.db.Where("client_id = ?", clientID).
		Order("is_default desc, created_at desc").
		Find(&addresses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch addresses: %w", err)
	}
	return addresses, nil
}

// CreateAddress stores a new address. A HOME address is always the
// default; at most one address per client carries the default flag.
func (s *ClientService) CreateAddress(clientID uuid.UUID, req *AddressRequest) (*models.Address, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), ErrValidation)
	}

	label := models.AddressLabel(req.Label)
	if req.Label == "" {
		label = models.AddressLabelOther
	}

	address := &models.Address{
		Label:      label,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		IsDefault:  req.IsDefault || label == models.AddressLabelHome,
		ClientID:   clientID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("client_id = ?", clientID).
				Update("is_default", false).Error; err != nil {
				return fmt.Errorf("failed to clear default address: %w", err)
			}
		}
		if err := tx.Create(address).Error; err != nil {
			return fmt.Errorf("failed to create address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (s *ClientService) GetAddress(clientID, id uuid.UUID) (*models.Address, error) {
	var address models.Address
	err := s.db.Where("client_id = ?", clientID).First(&address, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("address %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &address, nil
}

func (s *ClientService) UpdateAddress(clientID, id uuid.UUID, req *AddressRequest) (*models.Address, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), ErrValidation)
	}

	address, err := s.GetAddress(clientID, id)
	if err != nil {
		return nil, err
	}

	label := models.AddressLabel(req.Label)
	if req.Label == "" {
		label = address.Label
	}
	makeDefault := req.IsDefault || label == models.AddressLabelHome

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if makeDefault && !address.IsDefault {
			if err := tx.Model(&models.Address{}).
				Where("client_id = ?", clientID).
				Update("is_default", false).Error; err != nil {
				return fmt.Errorf("failed to clear default address: %w", err)
			}
		}
		updates := map[string]interface{}{
			"label":       label,
			"line1":       req.Line1,
			"line2":       req.Line2,
			"city":        req.City,
			"state":       req.State,
			"postal_code": req.PostalCode,
			"is_default":  makeDefault,
		}
		if err := tx.Model(address).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update address: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// DeleteAddress refuses to drop an address still referenced by an order.
func (s *ClientService) DeleteAddress(clientID, id uuid.UUID) error {
	address, err := s.GetAddress(clientID, id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(address).Error; err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("address is used by existing orders: %w", ErrConflict)
		}
		return fmt.Errorf("failed to delete address: %w", err)
	}
	return nil
}

// Reviews

type ReviewRequest struct {
	Rating       int        `json:"rating" validate:"required,min=1,max=5"`
	Comment      string     `json:"comment" validate:"max=2000"`
	ProductID    *uuid.UUID `json:"product_id"`
	SubproductID *uuid.UUID `json:"subproduct_id"`
}

func (s *ClientService) ListReviews(clientID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("client_id = ?", clientID).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, nil
}

func (s *ClientService) CreateReview(clientID uuid.UUID, req *ReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), ErrValidation)
	}
	if req.ProductID == nil && req.SubproductID == nil {
		return nil, fmt.Errorf("a review must reference a product or a subproduct: %w", ErrValidation)
	}

	review := &models.Review{
		Rating:       req.Rating,
		Comment:      req.Comment,
		ProductID:    req.ProductID,
		SubproductID: req.SubproductID,
		ClientID:     clientID,
	}
	if err := s.db.Create(review).Error; err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("reviewed item does not exist: %w", ErrValidation)
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

func (s *ClientService) DeleteReview(clientID, id uuid.UUID) error {
	res := s.db.Where("client_id = ?", clientID).Delete(&models.Review{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("review %s: %w", id, ErrNotFound)
	}
	return nil
}
