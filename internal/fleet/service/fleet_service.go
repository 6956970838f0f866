package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xxz807/watertaxi/internal/fleet/domain"
)

type CreateBoatRequest struct {
	Name      string
	OwnerID   string
	CaptainID string // 可选
}

// FleetService 船只与船长指派
type FleetService struct {
	repo   domain.BoatRepository
	logger *zap.Logger
}

func NewFleetService(repo domain.BoatRepository, logger *zap.Logger) *FleetService {
	return &FleetService{
		repo:   repo,
		logger: logger.Named("fleet.service"),
	}
}

func (s *FleetService) CreateBoat(ctx context.Context, req CreateBoatRequest) (*domain.Boat, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidBoatName
	}
	ownerID := strings.TrimSpace(req.OwnerID)
	if ownerID == "" {
		return nil, domain.ErrInvalidOwner
	}

	boat := &domain.Boat{
		ID:      uuid.NewString(),
		Name:    name,
		OwnerID: ownerID,
	}
	if captainID := strings.TrimSpace(req.CaptainID); captainID != "" {
		boat.CaptainID = &captainID
	}

	if err := s.repo.Create(ctx, boat); err != nil {
		return nil, err
	}
	s.logger.Info("boat created", zap.String("boat_id", boat.ID), zap.String("owner_id", boat.OwnerID))
	return boat, nil
}

func (s *FleetService) GetBoat(ctx context.Context, id string) (*domain.Boat, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *FleetService) AssignCaptain(ctx context.Context, boatID, captainID string) (*domain.Boat, error) {
	captainID = strings.TrimSpace(captainID)
	if captainID == "" {
		return nil, domain.ErrInvalidCaptain
	}
	if err := s.repo.UpdateCaptain(ctx, boatID, &captainID); err != nil {
		return nil, err
	}
	s.logger.Info("captain assigned", zap.String("boat_id", boatID), zap.String("captain_id", captainID))
	return s.repo.FindByID(ctx, boatID)
}

func (s *FleetService) UnassignCaptain(ctx context.Context, boatID string) (*domain.Boat, error) {
	if err := s.repo.UpdateCaptain(ctx, boatID, nil); err != nil {
		return nil, err
	}
	s.logger.Info("captain unassigned", zap.String("boat_id", boatID))
	return s.repo.FindByID(ctx, boatID)
}

// CaptainFor 查询船只当前船长，未指派时返回 nil
func (s *FleetService) CaptainFor(ctx context.Context, boatID string) (*string, error) {
	boat, err := s.repo.FindByID(ctx, boatID)
	if err != nil {
		return nil, err
	}
	if !boat.HasCaptain() {
		return nil, nil
	}
	captainID := *boat.CaptainID
	return &captainID, nil
}
