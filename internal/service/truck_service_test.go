package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"turnout/backend/internal/dto"
)

func newTruckService(e *testEnv) TruckService {
	return NewTruckService(e.repo, zap.NewNop())
}

func TestTruckCreateAppendsToOrder(t *testing.T) {
	env := newTestEnv()
	brigade, _, _, _, _, _ := env.seedBrigade(t)
	svc := newTruckService(env)

	created, err := svc.Create(context.Background(), brigade.BrigadeID, &dto.CreateTruckRequest{Name: "Tanker 1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.SortIndex != 2 { // pump and station already seeded
		t.Fatalf("new truck sort index = %d, want 2", created.SortIndex)
	}
}

func TestTruckReorder(t *testing.T) {
	env := newTestEnv()
	brigade, _, _, _, _, _ := env.seedBrigade(t)
	svc := newTruckService(env)
	ctx := context.Background()

	before, err := svc.List(ctx, brigade.BrigadeID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	reversed := []string{before[1].ID, before[0].ID}

	after, err := svc.Reorder(ctx, brigade.BrigadeID, &dto.ReorderTrucksRequest{TruckIDs: reversed})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	for i, id := range reversed {
		if after[i].ID != id {
			t.Fatalf("after[%d] = %s, want %s", i, after[i].ID, id)
		}
	}
}

func TestPositionLifecycle(t *testing.T) {
	env := newTestEnv()
	brigade, _, _, pump, _, _ := env.seedBrigade(t)
	svc := newTruckService(env)
	ctx := context.Background()

	truck, err := svc.CreatePosition(ctx, brigade.BrigadeID, pump.TruckID, &dto.CreatePositionRequest{
		Name: "Hose Operator",
	})
	if err != nil {
		t.Fatalf("CreatePosition failed: %v", err)
	}
	if len(truck.Positions) != 3 {
		t.Fatalf("truck has %d positions, want 3", len(truck.Positions))
	}

	var posID string
	for _, p := range truck.Positions {
		if p.Name == "Hose Operator" {
			posID = p.ID
		}
	}
	if posID == "" {
		t.Fatalf("new position missing from truck response")
	}

	allow := true
	updated, err := svc.UpdatePosition(ctx, brigade.BrigadeID, posID, &dto.UpdatePositionRequest{AllowMultiple: &allow})
	if err != nil {
		t.Fatalf("UpdatePosition failed: %v", err)
	}
	found := false
	for _, p := range updated.Positions {
		if p.ID == posID && p.AllowMultiple {
			found = true
		}
	}
	if !found {
		t.Fatalf("position update not reflected")
	}

	if err := svc.DeletePosition(ctx, brigade.BrigadeID, posID); err != nil {
		t.Fatalf("DeletePosition failed: %v", err)
	}
	if _, err := svc.UpdatePosition(ctx, brigade.BrigadeID, posID, &dto.UpdatePositionRequest{}); !errors.Is(err, ErrPositionNotFound) {
		t.Fatalf("expected ErrPositionNotFound after delete, got %v", err)
	}
}

func TestTruckDeleteRemovesPositions(t *testing.T) {
	env := newTestEnv()
	brigade, _, _, pump, oic, _ := env.seedBrigade(t)
	svc := newTruckService(env)
	ctx := context.Background()

	if err := svc.Delete(ctx, brigade.BrigadeID, pump.TruckID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.UpdatePosition(ctx, brigade.BrigadeID, oic.PositionID, &dto.UpdatePositionRequest{}); !errors.Is(err, ErrPositionNotFound) {
		t.Fatalf("positions survived truck deletion: %v", err)
	}
}

func TestTruckScopedToBrigade(t *testing.T) {
	env := newTestEnv()
	_, _, _, pump, _, _ := env.seedBrigade(t)
	svc := newTruckService(env)

	name := "Hijacked"
	if _, err := svc.Update(context.Background(), "someone-else", pump.TruckID, &dto.UpdateTruckRequest{
		Name: &name,
	}); !errors.Is(err, ErrTruckNotFound) {
		t.Fatalf("expected ErrTruckNotFound for foreign brigade, got %v", err)
	}
}
