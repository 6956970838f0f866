package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xxz807/watertaxi/internal/settlement/domain"
)

func seedSettlements(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	roster := []domain.RosterEntry{
		{InvestorID: "inv-a", Name: "Harbor Capital", SharePercentage: decimal.NewFromInt(60)},
		{InvestorID: "inv-b", Name: "Lagoon Fund", SharePercentage: decimal.NewFromInt(10)},
	}
	rows := []struct {
		id      string
		owner   string
		captain *string
		fare    int64
		at      time.Time
	}{
		{"b1", "owner-1", captain("captain-1"), 1000, settledAt},
		{"b2", "owner-1", nil, 500, settledAt.Add(time.Hour)},
		{"b3", "owner-2", captain("captain-1"), 2000, settledAt.Add(48 * time.Hour)},
	}
	for _, r := range rows {
		s := domain.Settle(domain.SettleInput{
			BookingID:         r.id,
			BoatID:            "boat-1",
			OwnerID:           r.owner,
			CaptainID:         r.captain,
			BaseFare:          decimal.NewFromInt(r.fare),
			AdjustmentPercent: decimal.Zero,
			FinalFare:         decimal.NewFromInt(r.fare),
			CompletedAt:       r.at,
		}, roster)
		require.NoError(t, f.repo.Upsert(ctx, s))
	}
}

func TestReportService_OwnerSummary(t *testing.T) {
	f := setupSettlementService(t)
	seedSettlements(t, f)
	reports := NewReportService(f.repo)

	sum, err := reports.OwnerSummary(context.Background(), "owner-1", Period{})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Trips)
	assertDecimal(t, "1500", sum.GrossFare, "gross fare")
	assertDecimal(t, "1080", sum.OwnerShare, "owner share")

	empty, err := reports.OwnerSummary(context.Background(), "owner-9", Period{})
	require.NoError(t, err)
	assert.Zero(t, empty.Trips)
	assert.True(t, empty.OwnerShare.IsZero())
}

func TestReportService_CaptainPayouts(t *testing.T) {
	f := setupSettlementService(t)
	seedSettlements(t, f)
	reports := NewReportService(f.repo)

	p, err := reports.CaptainPayouts(context.Background(), "captain-1", Period{})
	require.NoError(t, err)
	assert.Equal(t, 2, p.Trips, "unassigned booking b2 is not attributed")
	assertDecimal(t, "240", p.Commission, "commission")

	day, err := reports.CaptainPayouts(context.Background(), "captain-1", Period{From: settledAt, To: settledAt.Add(24 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, 1, day.Trips)
	assertDecimal(t, "80", day.Commission, "commission for the day")
}

func TestReportService_InvestorPayouts(t *testing.T) {
	f := setupSettlementService(t)
	seedSettlements(t, f)
	reports := NewReportService(f.repo)

	totals, err := reports.InvestorPayouts(context.Background(), Period{})
	require.NoError(t, err)
	require.Len(t, totals, 2)

	// 平台服务费合计 700
	assert.Equal(t, "inv-a", totals[0].InvestorID, "largest payout first")
	assert.Equal(t, 3, totals[0].Trips)
	assertDecimal(t, "420", totals[0].Payout, "inv-a payout")
	assert.Equal(t, "Lagoon Fund", totals[1].Name)
	assertDecimal(t, "70", totals[1].Payout, "inv-b payout")
}

func TestReportService_PlatformDashboard(t *testing.T) {
	f := setupSettlementService(t)
	seedSettlements(t, f)
	reports := NewReportService(f.repo)

	d, err := reports.PlatformDashboard(context.Background(), Period{})
	require.NoError(t, err)
	assert.Equal(t, 3, d.Trips)
	assertDecimal(t, "3500", d.GrossFare, "gross fare")
	assertDecimal(t, "700", d.PlatformFee, "platform fee")
	assertDecimal(t, "490", d.InvestorPayouts, "investor payouts")
	assertDecimal(t, "210", d.PlatformResidual, "platform residual")
	assertDecimal(t, "280", d.CaptainCommission, "captain commission")
	assertDecimal(t, "2520", d.OwnerShare, "owner share")

	total := d.InvestorPayouts.Add(d.PlatformResidual).Add(d.CaptainCommission).Add(d.OwnerShare)
	assert.True(t, d.GrossFare.Equal(total))
}
