package service

import (
	"context"
	"sort"

	"bazaar-orders/internal/domain"
	"bazaar-orders/internal/repo"
)

// Stats aggregates every order ever placed. Line items group by their
// snapshotted product name, so renamed or deleted products keep their
// historical sales.
type Stats struct {
	TotalRevenue    int64          `json:"totalRevenue"`
	TotalWeightKg   float64        `json:"totalWeightKg"`
	PendingOrders   int            `json:"pendingOrders"`
	CompletedOrders int            `json:"completedOrders"`
	ProductSales    []ProductSales `json:"productSales"`
}

type ProductSales struct {
	Name          string  `json:"name"`
	TotalWeightKg float64 `json:"totalWeightKg"`
	TotalAmount   int64   `json:"totalAmount"`
	Count         int     `json:"count"`
}

type StatsService interface {
	Stats(ctx context.Context) (*Stats, error)
}

type statsService struct {
	orderRepo repo.OrderRepo
}

func NewStatsService(orderRepo repo.OrderRepo) StatsService {
	return &statsService{orderRepo: orderRepo}
}

func (s *statsService) Stats(ctx context.Context) (*Stats, error) {
	orders, err := s.orderRepo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{ProductSales: []ProductSales{}}
	byName := make(map[string]*ProductSales)

	for _, order := range orders {
		switch order.Status {
		case domain.OrderCompleted:
			stats.CompletedOrders++
		default:
			stats.PendingOrders++
		}
		for _, item := range order.Items {
			stats.TotalRevenue += item.PaidAmount
			stats.TotalWeightKg += item.WeightKg

			ps, ok := byName[item.ProductName]
			if !ok {
				ps = &ProductSales{Name: item.ProductName}
				byName[item.ProductName] = ps
			}
			ps.TotalWeightKg += item.WeightKg
			ps.TotalAmount += item.PaidAmount
			ps.Count++
		}
	}

	for _, ps := range byName {
		stats.ProductSales = append(stats.ProductSales, *ps)
	}
	sort.Slice(stats.ProductSales, func(i, j int) bool {
		a, b := stats.ProductSales[i], stats.ProductSales[j]
		if a.TotalAmount != b.TotalAmount {
			return a.TotalAmount > b.TotalAmount
		}
		return a.Name < b.Name
	})

	return stats, nil
}
