package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing statuses. ACTIVE → RESERVED → COLLECTED, with RESERVED → ACTIVE on
// dispute. Deletion is only legal from ACTIVE.
const (
	StatusActive    = "ACTIVE"
	StatusReserved  = "RESERVED"
	StatusCollected = "COLLECTED"
)

// Waste type enum.
const (
	WasteMixed   = "MIXED"
	WasteMetal   = "METAL"
	WastePlastic = "PLASTIC"
	WastePaper   = "PAPER"
	WasteEWaste  = "E_WASTE"
)

// WasteTypes is the set of recognized waste types.
var WasteTypes = map[string]bool{
	WasteMixed:   true,
	WasteMetal:   true,
	WastePlastic: true,
	WastePaper:   true,
	WasteEWaste:  true,
}

// ScrapListing is a posted unit of scrap material available for pickup.
//
// Status invariants, maintained by every transition:
//   - RESERVED  ⇔ CollectorID and PickupTime are set
//   - ACTIVE    ⇒ CollectorID and PickupTime are unset
//   - COLLECTED ⇒ CollectorID, CompletedAt and the settlement fields are set
//
// Version is the optimistic row marker bumped on every conditional update.
type ScrapListing struct {
	ListingID       uuid.UUID  `gorm:"column:listing_id;type:uuid;primaryKey" json:"listing_id"`
	Title           string     `gorm:"column:title;not null" json:"title"`
	Description     string     `gorm:"column:description" json:"description"`
	WasteType       string     `gorm:"column:waste_type;type:varchar(20);not null" json:"waste_type"`
	EstimatedWeight float64    `gorm:"column:estimated_weight;type:decimal(10,2);not null" json:"estimated_weight"`
	Latitude        float64    `gorm:"column:latitude;not null" json:"latitude"`
	Longitude       float64    `gorm:"column:longitude;not null" json:"longitude"`
	Address         string     `gorm:"column:address;not null" json:"address"`
	ImageURL        string     `gorm:"column:image_url" json:"image_url"`
	Status          string     `gorm:"column:status;type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	SellerID        uuid.UUID  `gorm:"column:seller_id;type:uuid;not null" json:"seller_id"`
	CollectorID     *uuid.UUID `gorm:"column:collector_id;type:uuid" json:"collector_id"`
	PickupTime      *time.Time `gorm:"column:pickup_time" json:"pickup_time"`
	CompletedAt     *time.Time `gorm:"column:completed_at" json:"completed_at"`
	ActualWeight    *float64   `gorm:"column:actual_weight;type:decimal(10,2)" json:"actual_weight"`
	UnitPrice       *float64   `gorm:"column:unit_price;type:decimal(18,2)" json:"unit_price"`
	TotalAmount     *float64   `gorm:"column:total_amount;type:decimal(18,2)" json:"total_amount"`
	Version         int64      `gorm:"column:version;not null;default:0" json:"-"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	Seller    *User `gorm:"foreignKey:SellerID;references:UserID" json:"-"`
	Collector *User `gorm:"foreignKey:CollectorID;references:UserID" json:"-"`
}

func (ScrapListing) TableName() string {
	return "ScrapListings"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (l *ScrapListing) BeforeCreate(tx *gorm.DB) error {
	if l.ListingID == uuid.Nil {
		l.ListingID = uuid.New()
	}
	return nil
}
