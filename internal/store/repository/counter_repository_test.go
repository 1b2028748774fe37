package repository_test

import (
	"context"
	"testing"

	"github.com/Srinu-likitha/store-management-mvp/internal/store/numbering"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/repository"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/testutil"
)

func TestCounterNextTx(t *testing.T) {
	db := testutil.SetupTestDB(t)
	counters := repository.NewCounterRepository(db)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		ref, err := counters.NextTx(ctx, db, numbering.KindSerial)
		if err != nil {
			t.Fatalf("NextTx failed: %v", err)
		}
		if want := numbering.Format(numbering.KindSerial, int64(i)); ref != want {
			t.Errorf("NextTx = %q, want %q", ref, want)
		}
	}

	// Sequences are independent.
	ref, err := counters.NextTx(ctx, db, numbering.KindMRN)
	if err != nil {
		t.Fatalf("NextTx failed: %v", err)
	}
	if ref != "MRN-00001" {
		t.Errorf("NextTx = %q, want MRN-00001", ref)
	}
}

func TestCounterNextTxRollsBackWithTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	counters := repository.NewCounterRepository(db)
	ctx := context.Background()

	tx := db.Begin()
	if _, err := counters.NextTx(ctx, tx, numbering.KindSerial); err != nil {
		t.Fatalf("NextTx failed: %v", err)
	}
	tx.Rollback()

	ref, err := counters.NextTx(ctx, db, numbering.KindSerial)
	if err != nil {
		t.Fatalf("NextTx failed: %v", err)
	}
	if ref != "INV-00001" {
		t.Errorf("Counter should roll back with its transaction, got %q", ref)
	}
}

func TestCounterNextTxUnseeded(t *testing.T) {
	db := testutil.SetupTestDB(t)
	counters := repository.NewCounterRepository(db)

	if _, err := counters.NextTx(context.Background(), db, numbering.Kind("unknown")); err == nil {
		t.Fatal("Expected error for unseeded counter kind")
	}
}

func TestCounterSeedOnlyMovesForward(t *testing.T) {
	db := testutil.SetupTestDB(t)
	counters := repository.NewCounterRepository(db)
	ctx := context.Background()

	if err := counters.Seed(ctx, numbering.KindGIN, 41); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	// Seeding a lower value must not rewind the sequence.
	if err := counters.Seed(ctx, numbering.KindGIN, 10); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	ref, err := counters.NextTx(ctx, db, numbering.KindGIN)
	if err != nil {
		t.Fatalf("NextTx failed: %v", err)
	}
	if ref != "GIN-00042" {
		t.Errorf("NextTx = %q, want GIN-00042", ref)
	}
}
