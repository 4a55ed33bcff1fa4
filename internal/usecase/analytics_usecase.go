package usecase

import (
	"context"
	"net/http"
	"time"

	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// 管理ダッシュボードの集計。
type AnalyticsUsecase struct {
	userRepo  repo.UserRepository
	itemRepo  repo.ItemRepository
	orderRepo repo.OrderRepository
	clock     Clock
}

type Clock interface {
	Now() time.Time
}

func NewAnalyticsUsecase(
	userRepo repo.UserRepository,
	itemRepo repo.ItemRepository,
	orderRepo repo.OrderRepository,
	clock Clock,
) *AnalyticsUsecase {
	return &AnalyticsUsecase{
		userRepo:  userRepo,
		itemRepo:  itemRepo,
		orderRepo: orderRepo,
		clock:     clock,
	}
}

type DashboardOutput struct {
	TotalUsers  int64 `json:"total_users"`
	TotalOrders int64 `json:"total_orders"`
	TotalItems  int64 `json:"total_items"`
}

type DailyPoint struct {
	Label  string          `json:"label"`
	Orders int64           `json:"orders"`
	Sales  decimal.Decimal `json:"sales"`
}

type AnalyticsOutput struct {
	DashboardOutput
	//売上合計（キャンセル含む現行挙動のまま）
	TotalSales decimal.Decimal `json:"total_sales"`
	//直近7日（古い日から順）
	Last7Days []DailyPoint `json:"last_7_days"`
}

func (u *AnalyticsUsecase) Dashboard(ctx context.Context) (DashboardOutput, error) {
	users, err := u.userRepo.Count(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	orders, err := u.orderRepo.Count(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	items, err := u.itemRepo.Count(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return DashboardOutput{
		TotalUsers:  users,
		TotalOrders: orders,
		TotalItems:  items,
	}, nil
}

func (u *AnalyticsUsecase) Analytics(ctx context.Context) (AnalyticsOutput, error) {
	dash, err := u.Dashboard(ctx)
	if err != nil {
		return AnalyticsOutput{}, err
	}

	totalSales, err := u.orderRepo.SumTotals(ctx)
	if err != nil {
		return AnalyticsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//直近7日を日単位で集計
	now := u.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	points := make([]DailyPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		dayStart := today.AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		orders, err := u.orderRepo.ListCreatedBetween(ctx, dayStart, dayEnd)
		if err != nil {
			return AnalyticsOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		daySales := decimal.Zero
		for _, o := range orders {
			daySales = daySales.Add(o.Total)
		}

		points = append(points, DailyPoint{
			Label:  dayStart.Format("02 Jan"),
			Orders: int64(len(orders)),
			Sales:  daySales,
		})
	}

	return AnalyticsOutput{
		DashboardOutput: dash,
		TotalSales:      totalSales,
		Last7Days:       points,
	}, nil
}
