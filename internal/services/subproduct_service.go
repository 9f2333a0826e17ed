// internal/services/subproduct_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/database"
	"github.com/spicekart/backoffice/internal/models"
)

// Package-weight tiers. The token is the multiplier applied to the
// per-unit (100 gram) price.
var tierLabels = map[string]string{
	"1":   "100 grams",
	"2.5": "250 grams",
	"5":   "500 grams",
}

type SubproductService struct {
	db      *gorm.DB
	storage ObjectStorage
}

type CreateSubproductRequest struct {
	Name         string       `json:"name" validate:"required,min=1,max=255"`
	Stock        int          `json:"stock" validate:"required,min=0"`
	PerUnitPrice float64      `json:"perunitprice" validate:"required,gt=0"`
	Discount     float64      `json:"discount" validate:"min=0,max=100"`
	Tiers        []string     `json:"prices" validate:"required,min=1"`
	InStock      bool         `json:"inStock"`
	Featured     bool         `json:"featured"`
	ProductID    uuid.UUID    `json:"product_id" validate:"required"`
	Images       []ImageInput `json:"image,omitempty" validate:"omitempty,dive"`
}

type UpdateSubproductRequest struct {
	Name         string       `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Stock        *int         `json:"stock,omitempty"`
	PerUnitPrice *float64     `json:"perunitprice,omitempty" validate:"omitempty,gt=0"`
	Discount     *float64     `json:"discount,omitempty"`
	Tiers        []string     `json:"prices,omitempty"`
	InStock      *bool        `json:"inStock,omitempty"`
	Featured     *bool        `json:"featured,omitempty"`
	Images       []ImageInput `json:"image,omitempty" validate:"omitempty,dive"`
}

func NewSubproductService(db *gorm.DB, storage ObjectStorage) *SubproductService {
	return &SubproductService{db: db, storage: storage}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeTierPrices derives the price entry of each requested tier:
// round2(perunit × tier multiplier × (1 − discount/100)). A token
// outside the documented tier set fails validation rather than being
// silently dropped.
func ComputeTierPrices(perUnitPrice, discount float64, tiers []string) (models.TierPriceList, error) {
	if discount < 0 || discount > 100 {
		return nil, fmt.Errorf("discount must be between 0 and 100: %w", ErrValidation)
	}

	prices := make(models.TierPriceList, 0, len(tiers))
	for _, tier := range tiers {
		label, ok := tierLabels[tier]
		if !ok {
			return nil, fmt.Errorf("unknown tier %q: %w", tier, ErrValidation)
		}
		multiplier, err := strconv.ParseFloat(tier, 64)
		if err != nil {
			return nil, fmt.Errorf("unknown tier %q: %w", tier, ErrValidation)
		}

		base := perUnitPrice * multiplier
		prices = append(prices, models.TierPrice{
			Value: tier,
			Label: label,
			Price: round2(base - base*discount/100),
		})
	}

	return prices, nil
}

func (s *SubproductService) List(storeID uuid.UUID) ([]models.Subproduct, error) {
	var subproducts []models.Subproduct
	if err := s.db.Preload("Images").Preload("Reviews").
		Joins("JOIN products ON products.id = subproducts.product_id").
		Where("products.store_id = ?", storeID).
		Order("subproducts.created_at desc").
		Find(&subproducts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch subproducts: %w", err)
	}
	return subproducts, nil
}

func (s *SubproductService) Get(storeID, id uuid.UUID) (*models.Subproduct, error) {
	var subproduct models.Subproduct
	if err := s.db.Preload("Images").
		Joins("JOIN products ON products.id = subproducts.product_id").
		Where("products.store_id = ?", storeID).
		First(&subproduct, "subproducts.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("subproduct %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &subproduct, nil
}

func (s *SubproductService) Create(storeID uuid.UUID, req *CreateSubproductRequest) (*models.Subproduct, error) {
	var product models.Product
	if err := s.db.Where("store_id = ?", storeID).First(&product, "id = ?", req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", req.ProductID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	prices, err := ComputeTierPrices(req.PerUnitPrice, req.Discount, req.Tiers)
	if err != nil {
		return nil, err
	}

	subproduct := &models.Subproduct{
		Name:         req.Name,
		Stock:        req.Stock,
		PerUnitPrice: req.PerUnitPrice,
		Discount:     req.Discount,
		Tiers:        req.Tiers,
		Prices:       prices,
		InStock:      req.InStock,
		Featured:     req.Featured,
		ProductID:    req.ProductID,
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(subproduct).Error; err != nil {
			return fmt.Errorf("failed to create subproduct: %w", err)
		}
		return attachImages(tx, "subproduct", subproduct.ID, req.Images)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(storeID, subproduct.ID)
}

// Update recomputes tiered pricing whenever the per-unit price, the
// discount or the tier set changes.
func (s *SubproductService) Update(storeID, id uuid.UUID, req *UpdateSubproductRequest) (*models.Subproduct, error) {
	subproduct, err := s.Get(storeID, id)
	if err != nil {
		return nil, err
	}

	perUnit := subproduct.PerUnitPrice
	if req.PerUnitPrice != nil {
		perUnit = *req.PerUnitPrice
	}
	discount := subproduct.Discount
	if req.Discount != nil {
		discount = *req.Discount
	}
	tiers := []string(subproduct.Tiers)
	if req.Tiers != nil {
		tiers = req.Tiers
	}

	prices, err := ComputeTierPrices(perUnit, discount, tiers)
	if err != nil {
		return nil, err
	}

	var removedKeys []string
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"per_unit_price": perUnit,
			"discount":       discount,
			"tiers":          pq.StringArray(tiers),
			"prices":         prices,
		}
		if req.Name != "" {
			updates["name"] = req.Name
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				return fmt.Errorf("stock cannot be negative: %w", ErrValidation)
			}
			updates["stock"] = *req.Stock
		}
		if req.InStock != nil {
			updates["in_stock"] = *req.InStock
		}
		if req.Featured != nil {
			updates["featured"] = *req.Featured
		}

		if err := tx.Model(subproduct).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update subproduct: %w", err)
		}

		if req.Images != nil {
			removedKeys, err = replaceImages(tx, "subproduct", subproduct.ID, req.Images)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	subproduct, err = s.Get(storeID, id)
	if err != nil {
		return nil, err
	}

	if err := dropObjects(s.storage, removedKeys); err != nil {
		return subproduct, err
	}
	return subproduct, nil
}

func (s *SubproductService) Delete(storeID, id uuid.UUID) error {
	subproduct, err := s.Get(storeID, id)
	if err != nil {
		return err
	}

	var removedKeys []string
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		removedKeys, err = replaceImages(tx, "subproduct", subproduct.ID, nil)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.Subproduct{}, "id = ?", subproduct.ID).Error; err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("subproduct has related records: %w", ErrConflict)
			}
			return fmt.Errorf("failed to delete subproduct: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return dropObjects(s.storage, removedKeys)
}
