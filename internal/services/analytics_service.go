// internal/services/analytics_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spicekart/backoffice/internal/models"
)

type AnalyticsService struct {
	db *gorm.DB
}

type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type DashboardStats struct {
	TotalOrders     int64            `json:"total_orders"`
	OrdersByStatus  map[string]int64 `json:"orders_by_status"`
	Revenue         float64          `json:"revenue"`
	MonthlyRevenue  []MonthlyRevenue `json:"monthly_revenue"`
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// MonthlyRevenue buckets a store's orders by the calendar month of
// their creation time. Only DELIVERED orders count toward recognized
// revenue.
func (s *AnalyticsService) MonthlyRevenue(storeID uuid.UUID, year int) ([]MonthlyRevenue, error) {
	var orders []models.Order
	if err := s.db.
		Where("store_id = ? AND status = ?", storeID, models.OrderStatusDelivered).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	totals := make(map[time.Month]float64)
	for _, order := range orders {
		if order.CreatedAt.Year() != year {
			continue
		}
		totals[order.CreatedAt.Month()] += order.Amount
	}

	buckets := make([]MonthlyRevenue, 0, 12)
	for m := time.January; m <= time.December; m++ {
		buckets = append(buckets, MonthlyRevenue{
			Month:   m.String(),
			Revenue: totals[m],
		})
	}

	return buckets, nil
}

func (s *AnalyticsService) Dashboard(storeID uuid.UUID) (*DashboardStats, error) {
	stats := &DashboardStats{
		OrdersByStatus: make(map[string]int64),
	}

	type statusCount struct {
		Status models.OrderStatus
		Count  int64
	}
	var counts []statusCount
	if err := s.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Where("store_id = ?", storeID).
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	for _, c := range counts {
		stats.OrdersByStatus[string(c.Status)] = c.Count
		stats.TotalOrders += c.Count
	}

	if err := s.db.Model(&models.Order{}).
		Select("COALESCE(sum(amount), 0)").
		Where("store_id = ? AND status = ?", storeID, models.OrderStatusDelivered).
		Scan(&stats.Revenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	monthly, err := s.MonthlyRevenue(storeID, time.Now().Year())
	if err != nil {
		return nil, err
	}
	stats.MonthlyRevenue = monthly

	return stats, nil
}
