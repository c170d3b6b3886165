package audit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jalvarez-dev/supplysim-backend/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:audit_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestRepositoryCreateAndList(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	actor := uuid.New()
	recorder := NewRecorder(repo)
	if err := recorder.Record(ctx, actor, "first action"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := recorder.Record(ctx, actor, "second action"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Action != "second action" {
		t.Fatalf("expected newest first, got %q", entries[0].Action)
	}
	if entries[0].ActorID != actor {
		t.Fatalf("unexpected actor: %s", entries[0].ActorID)
	}
}

func TestRepositoryListLimit(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.Create(ctx, &models.AuditLog{ActorID: uuid.New(), Action: "noise"}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	entries, err := repo.List(ctx, 3)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected limit of 3, got %d", len(entries))
	}
}
