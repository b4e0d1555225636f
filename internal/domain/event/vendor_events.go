package event

import (
	"time"

	"lunchly/internal/domain/model"
)

// VendorAdded event
type VendorAdded struct {
	VendorID   string    `json:"vendor_id" bson:"vendor_id"`
	Name       string    `json:"name" bson:"name"`
	Email      string    `json:"email" bson:"email"`
	Phones     []string  `json:"phones" bson:"phones"`
	PODeadline string    `json:"po_deadline" bson:"po_deadline"`
	AddedBy    string    `json:"added_by" bson:"added_by"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}

func (e *VendorAdded) EventType() string     { return "VendorAdded" }
func (e *VendorAdded) AggregateID() string   { return e.VendorID }
func (e *VendorAdded) OccurredAt() time.Time { return e.Timestamp }
func (e *VendorAdded) Version() int          { return 1 }

// VendorUpdated event
type VendorUpdated struct {
	VendorID     string    `json:"vendor_id" bson:"vendor_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Phones       []string  `json:"phones" bson:"phones"`
	PODeadline   string    `json:"po_deadline" bson:"po_deadline"`
	UpdatedBy    string    `json:"updated_by" bson:"updated_by"`
	EventVersion int       `json:"version" bson:"version"`
	Timestamp    time.Time `json:"timestamp" bson:"timestamp"`
}

func (e *VendorUpdated) EventType() string     { return "VendorUpdated" }
func (e *VendorUpdated) AggregateID() string   { return e.VendorID }
func (e *VendorUpdated) OccurredAt() time.Time { return e.Timestamp }
func (e *VendorUpdated) Version() int          { return e.EventVersion }

// MenuImported event
type MenuImported struct {
	VendorID     string       `json:"vendor_id" bson:"vendor_id"`
	MenuID       string       `json:"menu_id" bson:"menu_id"`
	Dishes       []model.Dish `json:"dishes" bson:"dishes"`
	ImportedBy   string       `json:"imported_by" bson:"imported_by"`
	EventVersion int          `json:"version" bson:"version"`
	Timestamp    time.Time    `json:"timestamp" bson:"timestamp"`
}

func (e *MenuImported) EventType() string     { return "MenuImported" }
func (e *MenuImported) AggregateID() string   { return e.VendorID }
func (e *MenuImported) OccurredAt() time.Time { return e.Timestamp }
func (e *MenuImported) Version() int          { return e.EventVersion }

// DateRangeForMenuSet event
type DateRangeForMenuSet struct {
	VendorID     string              `json:"vendor_id" bson:"vendor_id"`
	MenuID       string              `json:"menu_id" bson:"menu_id"`
	Range        model.MenuDateRange `json:"range" bson:"range"`
	SetBy        string              `json:"set_by" bson:"set_by"`
	EventVersion int                 `json:"version" bson:"version"`
	Timestamp    time.Time           `json:"timestamp" bson:"timestamp"`
}

func (e *DateRangeForMenuSet) EventType() string     { return "DateRangeForMenuSet" }
func (e *DateRangeForMenuSet) AggregateID() string   { return e.VendorID }
func (e *DateRangeForMenuSet) OccurredAt() time.Time { return e.Timestamp }
func (e *DateRangeForMenuSet) Version() int          { return e.EventVersion }
