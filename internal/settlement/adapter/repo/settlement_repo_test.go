package repo

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	bookingdomain "github.com/xxz807/watertaxi/internal/booking/domain"
	"github.com/xxz807/watertaxi/internal/platform/database"
	"github.com/xxz807/watertaxi/internal/settlement/domain"
)

var t0 = time.Date(2026, 7, 4, 12, 0, 0, 0, time.UTC)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:settlementrepo_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(database.NewSQLiteDialector(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&bookingdomain.Booking{}, &domain.Settlement{}))
	return db
}

func settlementFor(bookingID, owner string, fare int64, at time.Time) *domain.Settlement {
	return domain.Settle(domain.SettleInput{
		BookingID:         bookingID,
		BoatID:            "boat-1",
		OwnerID:           owner,
		BaseFare:          decimal.NewFromInt(fare),
		AdjustmentPercent: decimal.Zero,
		FinalFare:         decimal.NewFromInt(fare),
		CompletedAt:       at,
	}, []domain.RosterEntry{{InvestorID: "inv-a", Name: "Harbor Capital", SharePercentage: decimal.NewFromInt(50)}})
}

func TestUpsert_ReplacesSingleRow(t *testing.T) {
	db := setupDB(t)
	r := NewSettlementRepo(db)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, settlementFor("booking-1", "owner-1", 1000, t0)))
	require.NoError(t, r.Upsert(ctx, settlementFor("booking-1", "owner-1", 2000, t0.Add(time.Hour))))

	var count int64
	require.NoError(t, db.Model(&domain.Settlement{}).Where("booking_id = ?", "booking-1").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := r.FindByBookingID(ctx, "booking-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2000).Equal(stored.FinalFare), "latest write wins")
	assert.True(t, decimal.NewFromInt(400).Equal(stored.PlatformFee))
	require.Len(t, stored.InvestorPayouts, 1)
	assert.Equal(t, "Harbor Capital", stored.InvestorPayouts[0].Name)
	assert.True(t, decimal.NewFromInt(200).Equal(stored.InvestorPayouts[0].Payout))
	assert.True(t, t0.Add(time.Hour).Equal(stored.CompletedAt))
}

func TestUpsert_EmptyPayoutsRoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSettlementRepo(db)
	ctx := context.Background()

	s := domain.Settle(domain.SettleInput{BookingID: "booking-1", BoatID: "boat-1", OwnerID: "owner-1", FinalFare: decimal.NewFromInt(100), CompletedAt: t0}, nil)
	require.NoError(t, r.Upsert(ctx, s))

	stored, err := r.FindByBookingID(ctx, "booking-1")
	require.NoError(t, err)
	assert.Empty(t, stored.InvestorPayouts)
	assert.Nil(t, stored.CaptainID)
	assert.True(t, stored.PlatformResidual.Equal(stored.PlatformFee))
}

func TestUpsert_KeepsFullPrecision(t *testing.T) {
	r := NewSettlementRepo(setupDB(t))
	ctx := context.Background()

	fare := decimal.RequireFromString("1234567.89")
	s := domain.Settle(domain.SettleInput{
		BookingID:   "booking-1",
		BoatID:      "boat-1",
		OwnerID:     "owner-1",
		BaseFare:    fare,
		FinalFare:   fare,
		CompletedAt: t0,
	}, []domain.RosterEntry{{InvestorID: "inv-a", SharePercentage: decimal.RequireFromString("33.3333")}})
	require.NoError(t, r.Upsert(ctx, s))

	stored, err := r.FindByBookingID(ctx, "booking-1")
	require.NoError(t, err)
	assert.True(t, s.PlatformFee.Equal(stored.PlatformFee))
	assert.True(t, s.PlatformResidual.Equal(stored.PlatformResidual), "residual %s, want %s", stored.PlatformResidual, s.PlatformResidual)
	assert.True(t, s.OwnerShare.Equal(stored.OwnerShare))
	assert.True(t, fare.Equal(stored.Distributed()))
}

func TestFindByBookingID_NotFound(t *testing.T) {
	r := NewSettlementRepo(setupDB(t))
	_, err := r.FindByBookingID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSettlementNotFound)
}

func TestList_Filters(t *testing.T) {
	r := NewSettlementRepo(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, settlementFor("b1", "owner-1", 100, t0)))
	require.NoError(t, r.Upsert(ctx, settlementFor("b2", "owner-1", 200, t0.Add(time.Hour))))
	require.NoError(t, r.Upsert(ctx, settlementFor("b3", "owner-2", 300, t0.Add(2*time.Hour))))

	all, err := r.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "b3", all[0].BookingID, "newest first")

	owner1, err := r.List(ctx, domain.ListFilter{OwnerID: "owner-1"})
	require.NoError(t, err)
	assert.Len(t, owner1, 2)

	window, err := r.List(ctx, domain.ListFilter{From: t0.Add(30 * time.Minute), To: t0.Add(2 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "b2", window[0].BookingID)

	page, err := r.List(ctx, domain.ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b2", page[0].BookingID)
}

func TestFindUnsettledBookingIDs(t *testing.T) {
	db := setupDB(t)
	r := NewSettlementRepo(db)
	ctx := context.Background()

	done := t0
	bookings := []bookingdomain.Booking{
		{ID: "settled", Status: bookingdomain.StatusCompleted, FinalFare: decimal.NewNullDecimal(decimal.NewFromInt(100)), CompletedAt: &done},
		{ID: "unsettled", Status: bookingdomain.StatusCompleted, FinalFare: decimal.NewNullDecimal(decimal.NewFromInt(100)), CompletedAt: &done},
		{ID: "no-fare", Status: bookingdomain.StatusCompleted, CompletedAt: &done},
		{ID: "confirmed", Status: bookingdomain.StatusConfirmed, FinalFare: decimal.NewNullDecimal(decimal.NewFromInt(100))},
	}
	for i := range bookings {
		bookings[i].BoatID = "boat-1"
		bookings[i].OwnerID = "owner-1"
		bookings[i].RiderName = "Ada"
		bookings[i].BaseFare = decimal.NewFromInt(100)
		bookings[i].AdjustmentPercent = decimal.Zero
		bookings[i].Version = 1
		require.NoError(t, db.Create(&bookings[i]).Error)
	}
	require.NoError(t, r.Upsert(ctx, settlementFor("settled", "owner-1", 100, t0)))

	ids, err := r.FindUnsettledBookingIDs(ctx, "", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"unsettled"}, ids)
}

func TestFindUnsettledBookingIDs_Cursor(t *testing.T) {
	db := setupDB(t)
	r := NewSettlementRepo(db)
	ctx := context.Background()

	done := t0
	for _, id := range []string{"c", "a", "d", "b"} {
		require.NoError(t, db.Create(&bookingdomain.Booking{
			ID:                id,
			BoatID:            "boat-1",
			OwnerID:           "owner-1",
			RiderName:         "Ada",
			BaseFare:          decimal.NewFromInt(100),
			AdjustmentPercent: decimal.Zero,
			FinalFare:         decimal.NewNullDecimal(decimal.NewFromInt(100)),
			Status:            bookingdomain.StatusCompleted,
			Version:           1,
			CompletedAt:       &done,
		}).Error)
	}

	first, err := r.FindUnsettledBookingIDs(ctx, "", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, first)

	second, err := r.FindUnsettledBookingIDs(ctx, "b", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, second)

	tail, err := r.FindUnsettledBookingIDs(ctx, "d", 2)
	require.NoError(t, err)
	assert.Empty(t, tail)
}
