package domain

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Hotel{}, &Seller{}, &Vegetable{}, &Requirement{}, &Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		(Hotel{}).TableName():       "hotels",
		(Seller{}).TableName():      "sellers",
		(Vegetable{}).TableName():   "vegetables",
		(Requirement{}).TableName(): "requirements",
		(Idempotency{}).TableName(): "idempotency",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName() = %q; want %q", got, want)
		}
	}
}

func TestRequirementStatus_Valid(t *testing.T) {
	if !StatusPending.Valid() || !StatusDelivered.Valid() {
		t.Fatal("known statuses must be valid")
	}
	for _, s := range []RequirementStatus{"", "shipped", "PENDING"} {
		if s.Valid() {
			t.Fatalf("%q should not be valid", s)
		}
	}
}

func TestMigrations_Indexes(t *testing.T) {
	db := newDomainDB(t)
	m := db.Migrator()

	for _, tbl := range []any{&Hotel{}, &Seller{}, &Vegetable{}, &Requirement{}, &Idempotency{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}
	for _, idx := range []string{"ux_requirement_natural_key", "idx_requirements_hotel_date", "idx_requirements_date", "idx_requirements_status"} {
		if !m.HasIndex(&Requirement{}, idx) {
			t.Fatalf("expected index %s on requirements", idx)
		}
	}
	if !m.HasIndex(&Vegetable{}, "idx_vegetables_seller") {
		t.Fatal("expected index idx_vegetables_seller on vegetables")
	}
	if !m.HasIndex(&Idempotency{}, "ux_idempotency_scope_key") {
		t.Fatal("expected unique index ux_idempotency_scope_key on idempotency")
	}
}

func TestRequirement_NaturalKeyIsUnique(t *testing.T) {
	db := newDomainDB(t)
	now := time.Now().UTC()

	r1 := &Requirement{ID: "r1", HotelID: "h1", VegetableID: "v1", Date: "2024-01-01", Quantity: 5, Unit: "kg", Status: StatusPending, CreatedAt: now, UpdatedAt: now}
	if err := db.Create(r1).Error; err != nil {
		t.Fatalf("insert r1: %v", err)
	}

	dup := &Requirement{ID: "r2", HotelID: "h1", VegetableID: "v1", Date: "2024-01-01", Quantity: 1, Unit: "kg", Status: StatusPending, CreatedAt: now, UpdatedAt: now}
	if err := db.Create(dup).Error; err == nil {
		t.Fatal("expected unique violation for duplicate natural key")
	}

	otherDay := &Requirement{ID: "r3", HotelID: "h1", VegetableID: "v1", Date: "2024-01-02", Quantity: 1, Unit: "kg", Status: StatusPending, CreatedAt: now, UpdatedAt: now}
	if err := db.Create(otherDay).Error; err != nil {
		t.Fatalf("different date must be accepted: %v", err)
	}
}

func TestRequirement_CheckConstraints(t *testing.T) {
	db := newDomainDB(t)
	now := time.Now().UTC()

	neg := &Requirement{ID: "n1", HotelID: "h1", VegetableID: "v1", Date: "2024-01-01", Quantity: -1, Unit: "kg", Status: StatusPending, CreatedAt: now, UpdatedAt: now}
	if err := db.Create(neg).Error; err == nil {
		t.Fatal("expected check violation for negative quantity")
	}

	bad := &Requirement{ID: "n2", HotelID: "h1", VegetableID: "v2", Date: "2024-01-01", Quantity: 1, Unit: "kg", Status: "lost", CreatedAt: now, UpdatedAt: now}
	if err := db.Create(bad).Error; err == nil {
		t.Fatal("expected check violation for unknown status")
	}
}

func TestRequirement_TimestampsAreNotManagedByGORM(t *testing.T) {
	db := newDomainDB(t)
	created := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	r := &Requirement{ID: "t1", HotelID: "h1", VegetableID: "v1", Date: "2024-01-01", Quantity: 2, Unit: "kg", Status: StatusPending, CreatedAt: created, UpdatedAt: created}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.Model(&Requirement{}).Where("id = ?", "t1").Update("quantity", 3).Error; err != nil {
		t.Fatalf("update: %v", err)
	}

	var got Requirement
	if err := db.First(&got, "id = ?", "t1").Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !got.CreatedAt.Equal(created) || !got.UpdatedAt.Equal(created) {
		t.Fatalf("timestamps changed: created=%v updated=%v", got.CreatedAt, got.UpdatedAt)
	}
}
