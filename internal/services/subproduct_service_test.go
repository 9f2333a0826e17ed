// internal/services/subproduct_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/models"
)

func TestComputeTierPrices(t *testing.T) {
	tests := []struct {
		name         string
		perUnitPrice float64
		discount     float64
		tiers        []string
		want         []float64
		wantErr      bool
	}{
		{
			name:         "no discount",
			perUnitPrice: 100,
			tiers:        []string{"1", "2.5", "5"},
			want:         []float64{100, 250, 500},
		},
		{
			name:         "ten percent off",
			perUnitPrice: 100,
			discount:     10,
			tiers:        []string{"2.5"},
			want:         []float64{225},
		},
		{
			name:         "rounds to cents",
			perUnitPrice: 3.33,
			discount:     7,
			tiers:        []string{"2.5"},
			want:         []float64{7.74}, // 3.33 * 2.5 * 0.93 = 7.742...
		},
		{
			name:         "unknown tier token",
			perUnitPrice: 100,
			tiers:        []string{"1", "10"},
			wantErr:      true,
		},
		{
			name:         "discount out of range",
			perUnitPrice: 100,
			discount:     120,
			tiers:        []string{"1"},
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prices, err := ComputeTierPrices(tt.perUnitPrice, tt.discount, tt.tiers)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			require.Len(t, prices, len(tt.want))
			for i, want := range tt.want {
				assert.InDelta(t, want, prices[i].Price, 0.001)
				assert.Equal(t, tt.tiers[i], prices[i].Value)
				assert.NotEmpty(t, prices[i].Label)
			}
		})
	}
}

type SubproductServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	svc     *SubproductService
	store   *models.Store
	product *models.Product
}

func (s *SubproductServiceTestSuite) SetupTest() {
	s.db = openTestDB(s.T())
	s.svc = NewSubproductService(s.db, &fakeStorage{})
	s.store = seedStore(s.T(), s.db)
	_, s.product = seedCatalog(s.T(), s.db, s.store.ID)
}

func (s *SubproductServiceTestSuite) TestCreateComputesPrices() {
	sub, err := s.svc.Create(s.store.ID, &CreateSubproductRequest{
		Name:         "Pepper Jar",
		Stock:        20,
		PerUnitPrice: 40,
		Discount:     25,
		Tiers:        []string{"1", "5"},
		InStock:      true,
		ProductID:    s.product.ID,
	})
	s.Require().NoError(err)

	s.Require().Len(sub.Prices, 2)
	s.InDelta(30.0, sub.Prices[0].Price, 0.001)  // 40 * 1 * 0.75
	s.InDelta(150.0, sub.Prices[1].Price, 0.001) // 40 * 5 * 0.75
	s.Equal("100 grams", sub.Prices[0].Label)
	s.Equal("500 grams", sub.Prices[1].Label)
}

func (s *SubproductServiceTestSuite) TestCreateRejectsUnknownTier() {
	_, err := s.svc.Create(s.store.ID, &CreateSubproductRequest{
		Name:         "Pepper Jar",
		Stock:        20,
		PerUnitPrice: 40,
		Tiers:        []string{"3"},
		ProductID:    s.product.ID,
	})
	s.Require().ErrorIs(err, ErrValidation)
}

func (s *SubproductServiceTestSuite) TestCreateRequiresOwnedProduct() {
	otherStore := seedStore(s.T(), s.db)
	_, otherProduct := seedCatalog(s.T(), s.db, otherStore.ID)

	_, err := s.svc.Create(s.store.ID, &CreateSubproductRequest{
		Name:         "Stolen Jar",
		Stock:        1,
		PerUnitPrice: 10,
		Tiers:        []string{"1"},
		ProductID:    otherProduct.ID,
	})
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *SubproductServiceTestSuite) TestUpdateRecomputesPrices() {
	sub, err := s.svc.Create(s.store.ID, &CreateSubproductRequest{
		Name:         "Pepper Jar",
		Stock:        20,
		PerUnitPrice: 40,
		Tiers:        []string{"1"},
		ProductID:    s.product.ID,
	})
	s.Require().NoError(err)

	newPrice := 60.0
	updated, err := s.svc.Update(s.store.ID, sub.ID, &UpdateSubproductRequest{
		PerUnitPrice: &newPrice,
		Tiers:        []string{"1", "2.5"},
	})
	s.Require().NoError(err)

	s.Require().Len(updated.Prices, 2)
	s.InDelta(60.0, updated.Prices[0].Price, 0.001)
	s.InDelta(150.0, updated.Prices[1].Price, 0.001)
}

func TestSubproductServiceSuite(t *testing.T) {
	suite.Run(t, new(SubproductServiceTestSuite))
}
