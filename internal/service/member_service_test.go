package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"turnout/backend/internal/dto"
)

func newMemberService(e *testEnv) MemberService {
	return NewMemberService(e.repo, zap.NewNop())
}

func TestMemberCreateAndList(t *testing.T) {
	env := newTestEnv()
	brigade, _, _, _, _, _ := env.seedBrigade(t)
	svc := newMemberService(env)
	ctx := context.Background()

	joined := "2015-04-12"
	created, err := svc.Create(ctx, brigade.BrigadeID, &dto.CreateMemberRequest{
		Name:     "Cathy Carter",
		Rank:     "QFF",
		JoinedAt: &joined,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !created.Active {
		t.Fatalf("new member not active")
	}
	if created.JoinedAt == nil || *created.JoinedAt != joined {
		t.Fatalf("join date mangled: %+v", created.JoinedAt)
	}

	list, err := svc.List(ctx, brigade.BrigadeID, &dto.MemberListRequest{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 { // two seeded plus the new one
		t.Fatalf("list has %d members, want 3", len(list))
	}
}

func TestMemberDeactivateKeepsHistory(t *testing.T) {
	env := newTestEnv()
	brigade, memberA, _, _, _, _ := env.seedBrigade(t)
	svc := newMemberService(env)
	ctx := context.Background()

	if err := svc.Deactivate(ctx, brigade.BrigadeID, memberA.MemberID); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	active, _ := svc.List(ctx, brigade.BrigadeID, &dto.MemberListRequest{})
	for _, m := range active {
		if m.ID == memberA.MemberID {
			t.Fatalf("deactivated member still in the active list")
		}
	}

	// Soft retire: the row survives for historical attendance.
	all, _ := svc.List(ctx, brigade.BrigadeID, &dto.MemberListRequest{IncludeInactive: true})
	found := false
	for _, m := range all {
		if m.ID == memberA.MemberID && !m.Active {
			found = true
		}
	}
	if !found {
		t.Fatalf("deactivated member missing from the full list")
	}
}

func TestMemberUpdateScopedToBrigade(t *testing.T) {
	env := newTestEnv()
	_, memberA, _, _, _, _ := env.seedBrigade(t)
	svc := newMemberService(env)

	name := "New Name"
	if _, err := svc.Update(context.Background(), "someone-else", memberA.MemberID, &dto.UpdateMemberRequest{
		Name: &name,
	}); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound for foreign brigade, got %v", err)
	}
}
