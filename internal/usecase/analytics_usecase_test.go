package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestAnalyticsUsecase_Dashboard(t *testing.T) {
	ctx := context.Background()

	userRepo := new(UserRepoMock)
	itemRepo := new(ItemRepoMock)
	orderRepo := new(OrderRepoMock)

	userRepo.On("Count", mock.Anything).Return(int64(3), nil)
	orderRepo.On("Count", mock.Anything).Return(int64(5), nil)
	itemRepo.On("Count", mock.Anything).Return(int64(12), nil)

	uc := usecase.NewAnalyticsUsecase(userRepo, itemRepo, orderRepo, fixedClock{now: time.Now()})

	out, err := uc.Dashboard(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.TotalUsers)
	assert.Equal(t, int64(5), out.TotalOrders)
	assert.Equal(t, int64(12), out.TotalItems)
}

func TestAnalyticsUsecase_Analytics_Last7Days(t *testing.T) {
	ctx := context.Background()

	userRepo := new(UserRepoMock)
	itemRepo := new(ItemRepoMock)
	orderRepo := new(OrderRepoMock)

	userRepo.On("Count", mock.Anything).Return(int64(3), nil)
	orderRepo.On("Count", mock.Anything).Return(int64(5), nil)
	itemRepo.On("Count", mock.Anything).Return(int64(12), nil)
	orderRepo.On("SumTotals", mock.Anything).Return(decimal.NewFromInt(990), nil)

	now := time.Date(2025, 6, 15, 13, 30, 0, 0, time.UTC)
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	//今日だけ2件、それ以外は0件
	orderRepo.On("ListCreatedBetween", mock.Anything, today, today.AddDate(0, 0, 1)).Return([]model.Order{
		{ID: 1, Total: decimal.NewFromInt(100)},
		{ID: 2, Total: decimal.NewFromInt(30)},
	}, nil)
	orderRepo.On("ListCreatedBetween", mock.Anything, mock.Anything, mock.Anything).Return([]model.Order{}, nil)

	uc := usecase.NewAnalyticsUsecase(userRepo, itemRepo, orderRepo, fixedClock{now: now})

	out, err := uc.Analytics(ctx)
	assert.NoError(t, err)
	assert.True(t, decimal.NewFromInt(990).Equal(out.TotalSales))
	assert.Equal(t, 7, len(out.Last7Days))

	//末尾が今日
	last := out.Last7Days[6]
	assert.Equal(t, "15 Jun", last.Label)
	assert.Equal(t, int64(2), last.Orders)
	assert.True(t, decimal.NewFromInt(130).Equal(last.Sales))

	//先頭は6日前で0件
	first := out.Last7Days[0]
	assert.Equal(t, "09 Jun", first.Label)
	assert.Equal(t, int64(0), first.Orders)
}
