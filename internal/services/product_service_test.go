// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/models"
	"github.com/spicekart/backoffice/internal/utils"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	storage  *fakeStorage
	svc      *ProductService
	store    *models.Store
	category *models.Category
}

func (s *ProductServiceTestSuite) SetupTest() {
	s.db = openTestDB(s.T())
	s.storage = &fakeStorage{}
	s.svc = NewProductService(s.db, s.storage)
	s.store = seedStore(s.T(), s.db)

	s.category = &models.Category{Name: "Whole Spices", StoreID: s.store.ID}
	s.Require().NoError(s.db.Create(s.category).Error)
}

func (s *ProductServiceTestSuite) seedSubcategory(name string) *models.Subcategory {
	sub := &models.Subcategory{Name: name, StoreID: s.store.ID}
	s.Require().NoError(s.db.Create(sub).Error)
	return sub
}

func (s *ProductServiceTestSuite) TestCreateWithSubcategoriesAndImages() {
	organic := s.seedSubcategory("Organic")

	product, err := s.svc.Create(s.store.ID, &CreateProductRequest{
		Name:          "Black Pepper",
		Price:         12.50,
		Stock:         100,
		CategoryID:    s.category.ID,
		Subcategories: []uuid.UUID{organic.ID},
		Images:        []ImageInput{{URL: "https://cdn.example.com/p.jpg", Key: "catalog/p.jpg"}},
	})
	s.Require().NoError(err)

	s.Require().Len(product.Subcategories, 1)
	s.Equal("Organic", product.Subcategories[0].Name)
	s.Require().Len(product.Images, 1)
	s.Equal("catalog/p.jpg", product.Images[0].Key)
}

func (s *ProductServiceTestSuite) TestCreateRejectsUnknownSubcategory() {
	_, err := s.svc.Create(s.store.ID, &CreateProductRequest{
		Name:          "Black Pepper",
		Price:         12.50,
		CategoryID:    s.category.ID,
		Subcategories: []uuid.UUID{uuid.New()},
	})
	s.Require().ErrorIs(err, ErrValidation)

	// nothing persisted
	var count int64
	s.db.Model(&models.Product{}).Count(&count)
	s.Zero(count)
}

func (s *ProductServiceTestSuite) TestCreateRejectsForeignCategory() {
	otherStore := seedStore(s.T(), s.db)
	foreign := &models.Category{Name: "Elsewhere", StoreID: otherStore.ID}
	s.Require().NoError(s.db.Create(foreign).Error)

	_, err := s.svc.Create(s.store.ID, &CreateProductRequest{
		Name:       "Black Pepper",
		Price:      12.50,
		CategoryID: foreign.ID,
	})
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *ProductServiceTestSuite) TestDiscountedPriceDerivedOnFetch() {
	created, err := s.svc.Create(s.store.ID, &CreateProductRequest{
		Name:       "Saffron",
		Price:      200,
		Discount:   15,
		CategoryID: s.category.ID,
	})
	s.Require().NoError(err)
	s.InDelta(170.0, created.DiscountedPrice, 0.001)

	// changing the discount changes the derived value on the next fetch
	s.Require().NoError(s.db.Model(&models.Product{}).
		Where("id = ?", created.ID).
		Update("discount", 50).Error)

	fetched, err := s.svc.Get(s.store.ID, created.ID)
	s.Require().NoError(err)
	s.InDelta(100.0, fetched.DiscountedPrice, 0.001)
}

func (s *ProductServiceTestSuite) TestSearchFilters() {
	organic := s.seedSubcategory("Organic")

	cheap, err := s.svc.Create(s.store.ID, &CreateProductRequest{
		Name:       "Cumin",
		Price:      5,
		CategoryID: s.category.ID,
	})
	s.Require().NoError(err)

	_, err = s.svc.Create(s.store.ID, &CreateProductRequest{
		Name:          "Saffron",
		Price:         200,
		CategoryID:    s.category.ID,
		Subcategories: []uuid.UUID{organic.ID},
	})
	s.Require().NoError(err)

	maxPrice := 10.0
	products, total, err := s.svc.Search(s.store.ID, ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"},
		MaxPrice:         &maxPrice,
	})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Equal(cheap.ID, products[0].ID)

	products, total, err = s.svc.Search(s.store.ID, ProductSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"},
		SubcategoryID:    &organic.ID,
	})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Equal("Saffron", products[0].Name)
}

func (s *ProductServiceTestSuite) TestUpdateReplacesSubcategories() {
	organic := s.seedSubcategory("Organic")
	smoked := s.seedSubcategory("Smoked")

	product, err := s.svc.Create(s.store.ID, &CreateProductRequest{
		Name:          "Paprika",
		Price:         8,
		CategoryID:    s.category.ID,
		Subcategories: []uuid.UUID{organic.ID},
	})
	s.Require().NoError(err)

	updated, err := s.svc.Update(s.store.ID, product.ID, &UpdateProductRequest{
		Subcategories: []uuid.UUID{smoked.ID},
	})
	s.Require().NoError(err)

	s.Require().Len(updated.Subcategories, 1)
	s.Equal("Smoked", updated.Subcategories[0].Name)
}

func (s *ProductServiceTestSuite) TestUpdateImagesDropsReplacedObjects() {
	product, err := s.svc.Create(s.store.ID, &CreateProductRequest{
		Name:       "Paprika",
		Price:      8,
		CategoryID: s.category.ID,
		Images:     []ImageInput{{URL: "https://cdn.example.com/old.jpg", Key: "catalog/old.jpg"}},
	})
	s.Require().NoError(err)

	_, err = s.svc.Update(s.store.ID, product.ID, &UpdateProductRequest{
		Images: []ImageInput{{URL: "https://cdn.example.com/new.jpg", Key: "catalog/new.jpg"}},
	})
	s.Require().NoError(err)

	s.Contains(s.storage.deleted, "catalog/old.jpg")
}

func (s *ProductServiceTestSuite) TestDeleteScopedByStore() {
	product, err := s.svc.Create(s.store.ID, &CreateProductRequest{
		Name:       "Paprika",
		Price:      8,
		CategoryID: s.category.ID,
	})
	s.Require().NoError(err)

	otherStore := seedStore(s.T(), s.db)
	s.Require().ErrorIs(s.svc.Delete(otherStore.ID, product.ID), ErrNotFound)
	s.Require().NoError(s.svc.Delete(s.store.ID, product.ID))
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
