package repo

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xxz807/watertaxi/internal/booking/domain"
)

func setupBookingRepo(t *testing.T) *GormBookingRepo {
	t.Helper()
	dsn := fmt.Sprintf("file:bookingrepo_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.Booking{}))
	return NewBookingRepo(db)
}

func TestBookingRepo_FindByID_NotFound(t *testing.T) {
	r := setupBookingRepo(t)
	_, err := r.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestBookingRepo_UpdateOptimisticLock(t *testing.T) {
	r := setupBookingRepo(t)
	ctx := context.Background()

	b := &domain.Booking{
		ID:                "booking-1",
		BoatID:            "boat-1",
		OwnerID:           "owner-1",
		RiderName:         "Ada",
		BaseFare:          decimal.NewFromInt(1000),
		AdjustmentPercent: decimal.Zero,
		Status:            domain.StatusPending,
		Version:           1,
	}
	require.NoError(t, r.Create(ctx, b))

	// 两个请求读到同一版本
	first, err := r.FindByID(ctx, b.ID)
	require.NoError(t, err)
	second, err := r.FindByID(ctx, b.ID)
	require.NoError(t, err)

	first.Status = domain.StatusAccepted
	require.NoError(t, r.Update(ctx, first))
	assert.Equal(t, int64(2), first.Version)

	second.Status = domain.StatusCancelled
	assert.ErrorIs(t, r.Update(ctx, second), domain.ErrConcurrentUpdate)

	stored, err := r.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, stored.Status)
	assert.Equal(t, int64(2), stored.Version)
	assert.False(t, stored.FinalFare.Valid)
}
