package aggregate

import (
	"fmt"
	"time"

	"lunchly/internal/domain/event"
	"lunchly/internal/domain/model"
	"lunchly/internal/domain/rejection"
	"lunchly/internal/domain/validation"
)

// Vendor owns a vendor's profile and its menus. Vendors are never deleted;
// menus individually gain an effective date range once one is set.
type Vendor struct {
	id         string
	name       string
	email      string
	phones     []string
	poDeadline string
	menus      []model.Menu
	version    int
	createdAt  time.Time
	updatedAt  time.Time

	uncommittedEvents []event.DomainEvent
}

// NewVendor creates a vendor and raises VendorAdded. Name uniqueness is a
// cross-aggregate fact checked by the command handler before calling this.
func NewVendor(id, name, email string, phones []string, poDeadline, addedBy string) (*Vendor, error) {
	if id == "" {
		return nil, fmt.Errorf("id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}

	vendor := &Vendor{}
	vendor.raiseEvent(&event.VendorAdded{
		VendorID:   id,
		Name:       name,
		Email:      email,
		Phones:     phones,
		PODeadline: poDeadline,
		AddedBy:    addedBy,
		Timestamp:  now(),
	})
	return vendor, nil
}

// NewVendorFromHistory rebuilds a vendor by replaying its events.
func NewVendorFromHistory(events []event.DomainEvent) (*Vendor, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("no events provided")
	}

	vendor := &Vendor{}
	if err := vendor.LoadFromHistory(events); err != nil {
		return nil, err
	}
	return vendor, nil
}

// Update replaces the vendor's profile fields, last writer wins.
func (v *Vendor) Update(name, email string, phones []string, poDeadline, updatedBy string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	v.raiseEvent(&event.VendorUpdated{
		VendorID:     v.id,
		Name:         name,
		Email:        email,
		Phones:       phones,
		PODeadline:   poDeadline,
		UpdatedBy:    updatedBy,
		EventVersion: v.version + 1,
		Timestamp:    now(),
	})
	return nil
}

// ImportMenu appends a new menu with no date range yet.
func (v *Vendor) ImportMenu(menuID string, dishes []model.Dish, importedBy string) error {
	if menuID == "" {
		return fmt.Errorf("menu id cannot be empty")
	}

	v.raiseEvent(&event.MenuImported{
		VendorID:     v.id,
		MenuID:       menuID,
		Dishes:       dishes,
		ImportedBy:   importedBy,
		EventVersion: v.version + 1,
		Timestamp:    now(),
	})
	return nil
}

// SetDateRangeForMenu sets or rewrites the effective date range of a menu.
// Returns CannotSetDateRange when the range is malformed, retroactive, or
// overlaps another menu's effective range.
func (v *Vendor) SetDateRangeForMenu(menuID string, r model.MenuDateRange, setBy string) error {
	if _, ok := v.menuByID(menuID); !ok {
		return rejection.NewCannotSetDateRange(v.id, menuID, r, "menu not found")
	}
	if !validation.IsDateRangeValid(r, today()) {
		return rejection.NewCannotSetDateRange(v.id, menuID, r, "range is invalid or starts in the past")
	}
	if validation.OverlapsAny(r, v.otherMenuRanges(menuID)) {
		return rejection.NewCannotSetDateRange(v.id, menuID, r, "range overlaps another menu")
	}

	v.raiseEvent(&event.DateRangeForMenuSet{
		VendorID:     v.id,
		MenuID:       menuID,
		Range:        r,
		SetBy:        setBy,
		EventVersion: v.version + 1,
		Timestamp:    now(),
	})
	return nil
}

// MenuAvailableOn reports whether the given menu is effective on the date.
func (v *Vendor) MenuAvailableOn(menuID string, d model.Date) bool {
	m, ok := v.menuByID(menuID)
	return ok && m.Covers(d)
}

func (v *Vendor) menuByID(menuID string) (model.Menu, bool) {
	for _, m := range v.menus {
		if m.ID == menuID {
			return m, true
		}
	}
	return model.Menu{}, false
}

func (v *Vendor) otherMenuRanges(menuID string) []model.MenuDateRange {
	var ranges []model.MenuDateRange
	for _, m := range v.menus {
		if m.ID != menuID && !m.DateRange.IsZero() {
			ranges = append(ranges, m.DateRange)
		}
	}
	return ranges
}

func (v *Vendor) GetUncommittedEvents() []event.DomainEvent {
	return v.uncommittedEvents
}

func (v *Vendor) ClearUncommittedEvents() {
	v.uncommittedEvents = nil
}

func (v *Vendor) raiseEvent(ev event.DomainEvent) {
	v.uncommittedEvents = append(v.uncommittedEvents, ev)
	v.applyEvent(ev)
}

func (v *Vendor) applyEvent(ev event.DomainEvent) error {
	switch e := ev.(type) {
	case *event.VendorAdded:
		v.id = e.VendorID
		v.name = e.Name
		v.email = e.Email
		v.phones = e.Phones
		v.poDeadline = e.PODeadline
		v.createdAt = e.Timestamp
		v.updatedAt = e.Timestamp
		v.version = 1

	case *event.VendorUpdated:
		v.name = e.Name
		v.email = e.Email
		v.phones = e.Phones
		v.poDeadline = e.PODeadline
		v.version = e.EventVersion
		v.updatedAt = e.Timestamp

	case *event.MenuImported:
		v.menus = append(v.menus, model.Menu{ID: e.MenuID, Dishes: e.Dishes})
		v.version = e.EventVersion
		v.updatedAt = e.Timestamp

	case *event.DateRangeForMenuSet:
		for i := range v.menus {
			if v.menus[i].ID == e.MenuID {
				v.menus[i].DateRange = e.Range
				break
			}
		}
		v.version = e.EventVersion
		v.updatedAt = e.Timestamp

	default:
		return fmt.Errorf("unknown event type: %T", ev)
	}

	return nil
}

// Getters
func (v *Vendor) ID() string           { return v.id }
func (v *Vendor) Name() string         { return v.name }
func (v *Vendor) Email() string        { return v.email }
func (v *Vendor) Phones() []string     { return v.phones }
func (v *Vendor) PODeadline() string   { return v.poDeadline }
func (v *Vendor) Menus() []model.Menu  { return v.menus }
func (v *Vendor) Version() int         { return v.version }
func (v *Vendor) CreatedAt() time.Time { return v.createdAt }
func (v *Vendor) UpdatedAt() time.Time { return v.updatedAt }

// Entity interface implementation
func (v *Vendor) GetID() string      { return v.id }
func (v *Vendor) SetID(id string)    { v.id = id }
func (v *Vendor) GetVersion() int    { return v.version }
func (v *Vendor) SetVersion(ver int) { v.version = ver }

// AggregateRoot interface implementation
func (v *Vendor) MarkEventsAsCommitted() {
	v.uncommittedEvents = nil
}

func (v *Vendor) LoadFromHistory(events []event.DomainEvent) error {
	for _, e := range events {
		if err := v.applyEvent(e); err != nil {
			return fmt.Errorf("failed to apply event %s: %w", e.EventType(), err)
		}
	}
	return nil
}
