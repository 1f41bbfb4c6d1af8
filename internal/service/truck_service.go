package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"turnout/backend/internal/dto"
	"turnout/backend/internal/model"
	"turnout/backend/internal/repository"
)

// ── truck errors ──

var (
	ErrTruckNotFound    = errors.New("truck not found")
	ErrPositionNotFound = errors.New("position not found")
)

// TruckService is the fleet administration surface: trucks, their
// positions, and display order.
type TruckService interface {
	List(ctx context.Context, brigadeID string) ([]dto.TruckResponse, error)
	Create(ctx context.Context, brigadeID string, req *dto.CreateTruckRequest) (*dto.TruckResponse, error)
	Update(ctx context.Context, brigadeID, truckID string, req *dto.UpdateTruckRequest) (*dto.TruckResponse, error)
	Delete(ctx context.Context, brigadeID, truckID string) error
	Reorder(ctx context.Context, brigadeID string, req *dto.ReorderTrucksRequest) ([]dto.TruckResponse, error)

	CreatePosition(ctx context.Context, brigadeID, truckID string, req *dto.CreatePositionRequest) (*dto.TruckResponse, error)
	UpdatePosition(ctx context.Context, brigadeID, positionID string, req *dto.UpdatePositionRequest) (*dto.TruckResponse, error)
	DeletePosition(ctx context.Context, brigadeID, positionID string) error
}

type truckService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTruckService creates a TruckService.
func NewTruckService(repo *repository.Repository, logger *zap.Logger) TruckService {
	return &truckService{repo: repo, logger: logger}
}

func (s *truckService) List(ctx context.Context, brigadeID string) ([]dto.TruckResponse, error) {
	trucks, err := s.repo.Truck.ListByBrigade(ctx, brigadeID)
	if err != nil {
		s.logger.Error("listing trucks failed", zap.String("brigade_id", brigadeID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.TruckResponse, 0, len(trucks))
	for i := range trucks {
		result = append(result, toTruckResponse(&trucks[i]))
	}
	return result, nil
}

func (s *truckService) Create(ctx context.Context, brigadeID string, req *dto.CreateTruckRequest) (*dto.TruckResponse, error) {
	existing, err := s.repo.Truck.ListByBrigade(ctx, brigadeID)
	if err != nil {
		return nil, err
	}

	truck := &model.Truck{
		BrigadeID: brigadeID,
		Name:      req.Name,
		IsStation: req.IsStation,
		SortIndex: len(existing),
	}
	if err := s.repo.Truck.Create(ctx, truck); err != nil {
		s.logger.Error("creating truck failed", zap.Error(err))
		return nil, err
	}

	resp := toTruckResponse(truck)
	return &resp, nil
}

func (s *truckService) Update(ctx context.Context, brigadeID, truckID string, req *dto.UpdateTruckRequest) (*dto.TruckResponse, error) {
	truck, err := s.load(ctx, brigadeID, truckID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		truck.Name = *req.Name
	}
	if req.IsStation != nil {
		truck.IsStation = *req.IsStation
	}

	if err := s.repo.Truck.Update(ctx, truck); err != nil {
		s.logger.Error("updating truck failed", zap.String("truck_id", truckID), zap.Error(err))
		return nil, err
	}

	return s.reload(ctx, truckID)
}

func (s *truckService) Delete(ctx context.Context, brigadeID, truckID string) error {
	if _, err := s.load(ctx, brigadeID, truckID); err != nil {
		return err
	}
	if err := s.repo.Truck.Delete(ctx, truckID); err != nil {
		s.logger.Error("deleting truck failed", zap.String("truck_id", truckID), zap.Error(err))
		return err
	}
	return nil
}

func (s *truckService) Reorder(ctx context.Context, brigadeID string, req *dto.ReorderTrucksRequest) ([]dto.TruckResponse, error) {
	if err := s.repo.Truck.Reorder(ctx, brigadeID, req.TruckIDs); err != nil {
		s.logger.Error("reordering trucks failed", zap.String("brigade_id", brigadeID), zap.Error(err))
		return nil, err
	}
	return s.List(ctx, brigadeID)
}

func (s *truckService) CreatePosition(ctx context.Context, brigadeID, truckID string, req *dto.CreatePositionRequest) (*dto.TruckResponse, error) {
	truck, err := s.load(ctx, brigadeID, truckID)
	if err != nil {
		return nil, err
	}

	position := &model.Position{
		TruckID:       truck.TruckID,
		Name:          req.Name,
		AllowMultiple: req.AllowMultiple,
		SortIndex:     len(truck.Positions),
	}
	if err := s.repo.Truck.CreatePosition(ctx, position); err != nil {
		s.logger.Error("creating position failed", zap.Error(err))
		return nil, err
	}

	return s.reload(ctx, truckID)
}

func (s *truckService) UpdatePosition(ctx context.Context, brigadeID, positionID string, req *dto.UpdatePositionRequest) (*dto.TruckResponse, error) {
	position, err := s.loadPosition(ctx, brigadeID, positionID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		position.Name = *req.Name
	}
	if req.AllowMultiple != nil {
		position.AllowMultiple = *req.AllowMultiple
	}

	position.Truck = nil
	if err := s.repo.Truck.UpdatePosition(ctx, position); err != nil {
		s.logger.Error("updating position failed", zap.String("position_id", positionID), zap.Error(err))
		return nil, err
	}

	return s.reload(ctx, position.TruckID)
}

func (s *truckService) DeletePosition(ctx context.Context, brigadeID, positionID string) error {
	if _, err := s.loadPosition(ctx, brigadeID, positionID); err != nil {
		return err
	}
	if err := s.repo.Truck.DeletePosition(ctx, positionID); err != nil {
		s.logger.Error("deleting position failed", zap.String("position_id", positionID), zap.Error(err))
		return err
	}
	return nil
}

func (s *truckService) load(ctx context.Context, brigadeID, truckID string) (*model.Truck, error) {
	truck, err := s.repo.Truck.GetByID(ctx, truckID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTruckNotFound
		}
		return nil, err
	}
	if truck.BrigadeID != brigadeID {
		return nil, ErrTruckNotFound
	}
	return truck, nil
}

func (s *truckService) loadPosition(ctx context.Context, brigadeID, positionID string) (*model.Position, error) {
	position, err := s.repo.Truck.GetPosition(ctx, positionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPositionNotFound
		}
		return nil, err
	}
	if position.Truck == nil || position.Truck.BrigadeID != brigadeID {
		return nil, ErrPositionNotFound
	}
	return position, nil
}

func (s *truckService) reload(ctx context.Context, truckID string) (*dto.TruckResponse, error) {
	truck, err := s.repo.Truck.GetByID(ctx, truckID)
	if err != nil {
		return nil, err
	}
	resp := toTruckResponse(truck)
	return &resp, nil
}

func toTruckResponse(t *model.Truck) dto.TruckResponse {
	resp := dto.TruckResponse{
		ID:        t.TruckID,
		BrigadeID: t.BrigadeID,
		Name:      t.Name,
		IsStation: t.IsStation,
		SortIndex: t.SortIndex,
		Positions: make([]dto.PositionResponse, 0, len(t.Positions)),
	}
	for _, p := range t.Positions {
		resp.Positions = append(resp.Positions, dto.PositionResponse{
			ID:            p.PositionID,
			TruckID:       p.TruckID,
			Name:          p.Name,
			AllowMultiple: p.AllowMultiple,
			SortIndex:     p.SortIndex,
		})
	}
	return resp
}
