package service

import (
	"context"
	"time"

	"pos-service/internal/model"
	"pos-service/internal/store"
)

// DashboardService computes the dashboard figures on every call
type DashboardService struct {
	store store.Store
	now   func() time.Time
}

// NewDashboardService uses time.Now when now is nil
func NewDashboardService(st store.Store, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{store: st, now: now}
}

func (s *DashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.store.ListSales(ctx, store.SaleFilter{})
	if err != nil {
		return nil, err
	}

	stats := ComputeDashboardStats(products, sales, s.now())
	return &stats, nil
}
