package presentation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/deckgen-backend/internal/data/repos/testutil"
	types "github.com/yungbote/deckgen-backend/internal/domain"
)

func TestPresentationRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewPresentationRepo(db, testutil.Logger(t))
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := make([]*types.Presentation, 0, 3)
	for i := 0; i < 3; i++ {
		rows = append(rows, &types.Presentation{
			Title:      fmt.Sprintf("Deck %d", i),
			Source:     types.SourcePlan,
			Plan:       datatypes.JSON([]byte(`{"title":"Deck","slides":[]}`)),
			FileName:   fmt.Sprintf("presentation_%d_%s.pptx", i, uuid.NewString()),
			FilePath:   "/tmp/x.pptx",
			SlideCount: i,
			SizeBytes:  100,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
	}
	created, err := repo.Create(ctx, tx, rows)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created[0].ID == uuid.Nil {
		t.Fatal("Create: id not assigned")
	}

	got, err := repo.GetByID(ctx, tx, created[1].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Title != "Deck 1" || string(got.Plan) == "" {
		t.Fatalf("GetByID: unexpected row %+v", got)
	}

	missing, err := repo.GetByID(ctx, tx, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("GetByID missing: row=%v err=%v", missing, err)
	}

	byName, err := repo.GetByFileName(ctx, tx, created[2].FileName)
	if err != nil || byName == nil || byName.ID != created[2].ID {
		t.Fatalf("GetByFileName: row=%v err=%v", byName, err)
	}
	unknown, err := repo.GetByFileName(ctx, tx, "presentation_unknown.pptx")
	if err != nil || unknown != nil {
		t.Fatalf("GetByFileName unknown: row=%v err=%v", unknown, err)
	}

	recent, err := repo.ListRecent(ctx, tx, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(recent) != 2 || recent[0].Title != "Deck 2" || recent[1].Title != "Deck 1" {
		t.Fatalf("ListRecent: unexpected order %+v", recent)
	}
	if len(recent[0].Plan) != 0 {
		t.Fatal("ListRecent: plan payload should be omitted")
	}

	empty, err := repo.Create(ctx, tx, nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("Create(nil): %v %v", empty, err)
	}
}
