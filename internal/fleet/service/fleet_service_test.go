package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xxz807/watertaxi/internal/fleet/adapter/repo"
	"github.com/xxz807/watertaxi/internal/fleet/domain"
)

func setupFleetService(t *testing.T) *FleetService {
	t.Helper()
	dsn := fmt.Sprintf("file:fleet_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.Boat{}))
	return NewFleetService(repo.NewBoatRepo(db), zap.NewNop())
}

func TestCreateBoat_Validation(t *testing.T) {
	svc := setupFleetService(t)
	ctx := context.Background()

	_, err := svc.CreateBoat(ctx, CreateBoatRequest{OwnerID: "owner-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidBoatName)

	_, err = svc.CreateBoat(ctx, CreateBoatRequest{Name: "Marlin"})
	assert.ErrorIs(t, err, domain.ErrInvalidOwner)
}

func TestCaptainAssignmentLifecycle(t *testing.T) {
	svc := setupFleetService(t)
	ctx := context.Background()

	boat, err := svc.CreateBoat(ctx, CreateBoatRequest{Name: "Marlin", OwnerID: "owner-1"})
	require.NoError(t, err)

	captain, err := svc.CaptainFor(ctx, boat.ID)
	require.NoError(t, err)
	assert.Nil(t, captain, "new boat has no captain")

	updated, err := svc.AssignCaptain(ctx, boat.ID, "captain-7")
	require.NoError(t, err)
	require.NotNil(t, updated.CaptainID)
	assert.Equal(t, "captain-7", *updated.CaptainID)

	captain, err = svc.CaptainFor(ctx, boat.ID)
	require.NoError(t, err)
	require.NotNil(t, captain)
	assert.Equal(t, "captain-7", *captain)

	updated, err = svc.UnassignCaptain(ctx, boat.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.CaptainID)
}

func TestCaptainFor_UnknownBoat(t *testing.T) {
	svc := setupFleetService(t)

	_, err := svc.CaptainFor(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrBoatNotFound)

	_, err = svc.AssignCaptain(context.Background(), "missing", "captain-1")
	assert.ErrorIs(t, err, domain.ErrBoatNotFound)
}
