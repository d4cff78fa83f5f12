// Package domain defines the persistence models for hotels, sellers, their
// vegetable catalogs, and the daily requirements hotels place against them.
// These types are mapped with GORM and shared by the repo and service layers.
package domain

import "time"

// DefaultUnit is the unit applied when a vegetable or requirement is stored
// without one.
const DefaultUnit = "kg"

// DateLayout is the calendar-date format used for requirement dates.
const DateLayout = "2006-01-02"

// RequirementStatus is the delivery state of a single requirement line.
type RequirementStatus string

const (
	StatusPending   RequirementStatus = "pending"
	StatusDelivered RequirementStatus = "delivered"
)

// Valid reports whether s is one of the known requirement states.
func (s RequirementStatus) Valid() bool {
	return s == StatusPending || s == StatusDelivered
}

// HotelStatus is the rolled-up delivery state of a hotel for one date.
type HotelStatus string

const (
	HotelStatusNone      HotelStatus = "none"
	HotelStatusPending   HotelStatus = "pending"
	HotelStatusDelivered HotelStatus = "delivered"
)

// Hotel is a buyer that places daily requirements.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Name: display name, used for matrix column ordering.
//   - ManagerName / ManagerPhone: contact for the receiving manager.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Hotel struct {
	ID           string    `json:"id"            gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name"          gorm:"type:varchar(255);not null;index:idx_hotels_name"`
	ManagerName  string    `json:"manager_name"  gorm:"type:varchar(255);not null"`
	ManagerPhone string    `json:"manager_phone" gorm:"type:varchar(64);not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for Hotel.
func (Hotel) TableName() string { return "hotels" }

// Seller supplies a catalog of vegetables.
type Seller struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(255);not null;index:idx_sellers_name"`
	Phone     string    `json:"phone"      gorm:"type:varchar(64);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Seller.
func (Seller) TableName() string { return "sellers" }

// Vegetable is one catalog entry offered by a seller.
//
// Fields:
//   - SellerID: owning seller (indexed). Removing a seller removes its
//     vegetables; the service layer performs that cascade.
//   - Unit: the unit quantities are requested in, "kg" unless set.
type Vegetable struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(255);not null;index:idx_vegetables_name"`
	Unit      string    `json:"unit"       gorm:"type:varchar(32);not null"`
	SellerID  string    `json:"seller_id"  gorm:"type:char(36);not null;index:idx_vegetables_seller"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Vegetable.
func (Vegetable) TableName() string { return "vegetables" }

// Requirement is one hotel's demand for one vegetable on one calendar date.
// At most one row exists per (hotel_id, vegetable_id, date); the unique
// index ux_requirement_natural_key backs that rule in the store.
//
// Hotel and vegetable ids are plain references without foreign keys so
// that orphaned rows can still be listed with placeholder names.
//
// Timestamps are written by the service clock, never by GORM.
type Requirement struct {
	ID          string            `json:"id"           gorm:"type:char(36);primaryKey"`
	HotelID     string            `json:"hotel_id"     gorm:"type:char(36);not null;uniqueIndex:ux_requirement_natural_key,priority:1;index:idx_requirements_hotel_date,priority:1"`
	VegetableID string            `json:"vegetable_id" gorm:"type:char(36);not null;uniqueIndex:ux_requirement_natural_key,priority:2"`
	Date        string            `json:"date"         gorm:"type:varchar(10);not null;uniqueIndex:ux_requirement_natural_key,priority:3;index:idx_requirements_hotel_date,priority:2;index:idx_requirements_date"`
	Quantity    float64           `json:"quantity"     gorm:"not null;check:chk_requirements_quantity,quantity >= 0"`
	Unit        string            `json:"unit"         gorm:"type:varchar(32);not null"`
	Status      RequirementStatus `json:"status"       gorm:"type:varchar(16);not null;index:idx_requirements_status;check:chk_requirements_status,status IN ('pending','delivered')"`
	CreatedAt   time.Time         `json:"created_at"   gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time         `json:"updated_at"   gorm:"autoUpdateTime:false"`
}

// TableName returns the database table name for Requirement.
func (Requirement) TableName() string { return "requirements" }
