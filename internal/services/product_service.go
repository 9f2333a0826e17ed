// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/database"
	"github.com/spicekart/backoffice/internal/models"
	"github.com/spicekart/backoffice/internal/utils"
)

type ProductService struct {
	db      *gorm.DB
	storage ObjectStorage
}

type CreateProductRequest struct {
	Name          string       `json:"name" validate:"required,min=1,max=255"`
	Description   string       `json:"description,omitempty"`
	Price         float64      `json:"price" validate:"required,gt=0"`
	Stock         int          `json:"stock" validate:"min=0"`
	Discount      float64      `json:"discount" validate:"min=0,max=100"`
	CategoryID    uuid.UUID    `json:"category_id" validate:"required"`
	Subcategories []uuid.UUID  `json:"subcategories,omitempty"`
	Images        []ImageInput `json:"image,omitempty" validate:"omitempty,dive"`
}

type UpdateProductRequest struct {
	Name          string       `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description   *string      `json:"description,omitempty"`
	Price         float64      `json:"price,omitempty" validate:"omitempty,gt=0"`
	Stock         *int         `json:"stock,omitempty" validate:"omitempty"`
	Discount      *float64     `json:"discount,omitempty" validate:"omitempty"`
	CategoryID    *uuid.UUID   `json:"category_id,omitempty"`
	Subcategories []uuid.UUID  `json:"subcategories,omitempty"`
	Images        []ImageInput `json:"image,omitempty" validate:"omitempty,dive"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	CategoryID    *uuid.UUID
	SubcategoryID *uuid.UUID
	MinPrice      *float64
	MaxPrice      *float64
}

func NewProductService(db *gorm.DB, storage ObjectStorage) *ProductService {
	return &ProductService{db: db, storage: storage}
}

// resolveSubcategories loads the full subcategory records for the given
// ids. An id with no matching record fails the request instead of being
// silently dropped.
func (s *ProductService) resolveSubcategories(tx *gorm.DB, storeID uuid.UUID, ids []uuid.UUID) ([]models.Subcategory, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var subcategories []models.Subcategory
	if err := tx.Where("store_id = ? AND id IN ?", storeID, ids).Find(&subcategories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch subcategories: %w", err)
	}

	if len(subcategories) != len(ids) {
		found := make(map[uuid.UUID]bool, len(subcategories))
		for _, sub := range subcategories {
			found[sub.ID] = true
		}
		var missing []string
		for _, id := range ids {
			if !found[id] {
				missing = append(missing, id.String())
			}
		}
		return nil, fmt.Errorf("unknown subcategory ids %s: %w", strings.Join(missing, ", "), ErrValidation)
	}

	return subcategories, nil
}

func (s *ProductService) Create(storeID uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	// the category must belong to the same store
	var category models.Category
	if err := s.db.Where("store_id = ?", storeID).First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %s: %w", req.CategoryID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Discount:    req.Discount,
		CategoryID:  req.CategoryID,
		StoreID:     storeID,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		subcategories, err := s.resolveSubcategories(tx, storeID, req.Subcategories)
		if err != nil {
			return err
		}

		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		if len(subcategories) > 0 {
			if err := tx.Model(product).Association("Subcategories").Append(&subcategories); err != nil {
				return fmt.Errorf("failed to attach subcategories: %w", err)
			}
		}

		return attachImages(tx, "product", product.ID, req.Images)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(storeID, product.ID)
}

func (s *ProductService) Get(storeID, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Category").Preload("Subcategories").Preload("Images").Preload("Subproducts").
		Where("store_id = ?", storeID).
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) Search(storeID uuid.UUID, params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Where("products.store_id = ?", storeID)

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}

	if params.SubcategoryID != nil {
		query = query.Joins("JOIN product_subcategories ps ON ps.product_id = products.id").
			Where("ps.subcategory_id = ?", *params.SubcategoryID)
	}

	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}

	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "price"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Preload("Category").Preload("Subcategories").Preload("Images").
		Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) Update(storeID, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	product, err := s.Get(storeID, id)
	if err != nil {
		return nil, err
	}

	if req.Discount != nil && (*req.Discount < 0 || *req.Discount > 100) {
		return nil, fmt.Errorf("discount must be between 0 and 100: %w", ErrValidation)
	}

	var removedKeys []string
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		updates := make(map[string]interface{})
		if req.Name != "" {
			updates["name"] = req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Price > 0 {
			updates["price"] = req.Price
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				return fmt.Errorf("stock cannot be negative: %w", ErrValidation)
			}
			updates["stock"] = *req.Stock
		}
		if req.Discount != nil {
			updates["discount"] = *req.Discount
		}
		if req.CategoryID != nil {
			var category models.Category
			if err := tx.Where("store_id = ?", storeID).First(&category, "id = ?", *req.CategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("category %s: %w", *req.CategoryID, ErrNotFound)
				}
				return fmt.Errorf("database error: %w", err)
			}
			updates["category_id"] = *req.CategoryID
		}

		if len(updates) > 0 {
			if err := tx.Model(product).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
		}

		if req.Subcategories != nil {
			subcategories, err := s.resolveSubcategories(tx, storeID, req.Subcategories)
			if err != nil {
				return err
			}
			if err := tx.Model(product).Association("Subcategories").Replace(&subcategories); err != nil {
				return fmt.Errorf("failed to replace subcategories: %w", err)
			}
		}

		if req.Images != nil {
			var err error
			removedKeys, err = replaceImages(tx, "product", product.ID, req.Images)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	product, err = s.Get(storeID, id)
	if err != nil {
		return nil, err
	}

	if err := dropObjects(s.storage, removedKeys); err != nil {
		return product, err
	}
	return product, nil
}

func (s *ProductService) Delete(storeID, id uuid.UUID) error {
	product, err := s.Get(storeID, id)
	if err != nil {
		return err
	}

	var removedKeys []string
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		removedKeys, err = replaceImages(tx, "product", product.ID, nil)
		if err != nil {
			return err
		}
		if err := tx.Model(product).Association("Subcategories").Clear(); err != nil {
			return fmt.Errorf("failed to clear subcategory associations: %w", err)
		}
		if err := tx.Delete(&models.Product{}, "id = ?", product.ID).Error; err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("product has related records: %w", ErrConflict)
			}
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return dropObjects(s.storage, removedKeys)
}
