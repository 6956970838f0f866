package database

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xxz807/watertaxi/internal/platform/config"
)

type moneyRow struct {
	ID     uint
	Amount decimal.Decimal     `gorm:"type:numeric;not null"`
	Share  decimal.Decimal     `gorm:"type:decimal(7,4)"`
	Fare   decimal.NullDecimal `gorm:"type:numeric"`
}

func TestSQLiteDialector_KeepsDecimalDigits(t *testing.T) {
	db, err := Open(config.DatabaseConfig{DSN: "file:money_test?mode=memory&cache=shared", MaxOpenConns: 1}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&moneyRow{}))

	amount := decimal.RequireFromString("12345678901234.56789")
	row := moneyRow{Amount: amount, Share: decimal.RequireFromString("33.3333"), Fare: decimal.NewNullDecimal(amount)}
	require.NoError(t, db.Create(&row).Error)

	var stored moneyRow
	require.NoError(t, db.First(&stored, row.ID).Error)
	assert.True(t, amount.Equal(stored.Amount), "amount read back as %s", stored.Amount)
	assert.True(t, stored.Fare.Valid)
	assert.True(t, amount.Equal(stored.Fare.Decimal))
	assert.True(t, decimal.RequireFromString("33.3333").Equal(stored.Share))

	var storage string
	require.NoError(t, db.Raw("SELECT typeof(amount) FROM money_rows WHERE id = ?", row.ID).Scan(&storage).Error)
	assert.Equal(t, "text", storage)
}

func TestIsDecimalType(t *testing.T) {
	for _, dt := range []string{"numeric", "NUMERIC", "decimal(7,4)", "numeric(20, 4)", "decimal"} {
		assert.True(t, isDecimalType(dt), dt)
	}
	for _, dt := range []string{"", "text", "int", "datetime", "varchar(36)"} {
		assert.False(t, isDecimalType(dt), dt)
	}
}
