package repo

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xxz807/watertaxi/internal/investor/domain"
)

func TestLockRosterSQL(t *testing.T) {
	assert.Equal(t, "LOCK TABLE investors IN SHARE ROW EXCLUSIVE MODE", lockRosterSQL("postgres"))
	assert.Empty(t, lockRosterSQL("sqlite"))
}

func TestLockRoster_SQLiteNoop(t *testing.T) {
	dsn := fmt.Sprintf("file:investorrepo_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Investor{}))

	r := NewInvestorRepo(db)
	err = db.Transaction(func(tx *gorm.DB) error {
		return r.LockRoster(context.Background(), tx)
	})
	assert.NoError(t, err)
}
