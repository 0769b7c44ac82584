package uow

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"explorer/internal/infrastructure/persistence/model"
	"explorer/internal/ports"
	"explorer/internal/testutil"
)

func put(ctx context.Context, db *gorm.DB, key string) error {
	if tx, ok := ports.TxFromContext(ctx).(*gorm.DB); ok {
		db = tx
	}
	return db.WithContext(ctx).Create(&model.KVEntry{Key: key, Value: "v", UpdatedAt: time.Now()}).Error
}

func count(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	if err := db.Model(&model.KVEntry{}).Count(&n).Error; err != nil {
		t.Fatalf("count kv_store: %v", err)
	}
	return n
}

func TestWithTxCommitsAndJoinsNestedCalls(t *testing.T) {
	db := testutil.OpenMigratedDB(t)
	u := NewUnitOfWork(db)
	ctx := context.Background()

	err := u.WithTx(ctx, func(txCtx context.Context) error {
		outer := ports.TxFromContext(txCtx)
		if err := put(txCtx, db, "push_status:Ethereum"); err != nil {
			return err
		}
		return u.WithTx(txCtx, func(innerCtx context.Context) error {
			if ports.TxFromContext(innerCtx) != outer {
				t.Fatalf("nested WithTx opened a second transaction")
			}
			return put(innerCtx, db, "push_status:Near")
		})
	})
	if err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}
	if got := count(t, db); got != 2 {
		t.Fatalf("rows = %d, want 2", got)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := testutil.OpenMigratedDB(t)
	u := NewUnitOfWork(db)
	boom := errors.New("boom")

	err := u.WithTx(context.Background(), func(txCtx context.Context) error {
		if err := put(txCtx, db, "push_status:Solana"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want boom", err)
	}
	if got := count(t, db); got != 0 {
		t.Fatalf("rows after rollback = %d, want 0", got)
	}
}
