package models

import (
	"bookit/src/types"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrDateNotAvailable  = errors.New("no slots available on the requested date")
	ErrSlotNotFound      = errors.New("requested time slot does not exist")
	ErrSlotSoldOut       = errors.New("requested time slot is sold out")
	ErrCapacityExceeded  = errors.New("requested quantity exceeds remaining capacity")
	ErrProductUnbookable = errors.New("product is not open for booking")
)

type Slot struct {
	Time     string           `json:"time"`
	Capacity int              `json:"capacity"`
	Booked   int              `json:"booked"`
	Status   types.SlotStatus `json:"status"`
}

// Remaining is the bookable headroom on the slot.
func (s *Slot) Remaining() int {
	return s.Capacity - s.Booked
}

// Take consumes qty seats from the slot and recomputes its status. The
// caller must hold the product row lock before mutating.
func (s *Slot) Take(qty int) error {
	if s.Status == types.SLOT_SOLDOUT {
		return ErrSlotSoldOut
	}
	if qty > s.Remaining() {
		return ErrCapacityExceeded
	}
	s.Booked += qty
	if s.Remaining() <= 0 {
		s.Status = types.SLOT_SOLDOUT
	}
	return nil
}

type DateBucket struct {
	Date  time.Time `json:"date"`
	Slots []Slot    `json:"slots"`
}

type ProductDates []DateBucket

func (d ProductDates) Value() (driver.Value, error) {
	valueString, err := json.Marshal(d)
	return string(valueString), err
}
func (d *ProductDates) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	return nil
}

type ProductImage struct {
	URL string `json:"url"`
	Key string `json:"key,omitempty"`
}

type ProductImages []ProductImage

func (i ProductImages) Value() (driver.Value, error) {
	valueString, err := json.Marshal(i)
	return string(valueString), err
}
func (i *ProductImages) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &i); err != nil {
		return err
	}
	return nil
}

type Product struct {
	ID               uint           `json:"id"`
	Title            string         `json:"title,omitempty"`
	Slug             string         `gorm:"uniqueIndex" json:"slug,omitempty"`
	Description      string         `json:"description,omitempty"`
	ShortDescription string         `json:"short_description,omitempty"`
	BasePrice        float64        `json:"base_price,omitempty"`
	Currency         types.Currency `gorm:"default:'INR'" json:"currency,omitempty"`
	Images           ProductImages  `gorm:"type:jsonb" json:"images,omitempty"`
	Location         types.JSONB    `gorm:"type:jsonb" json:"location,omitempty"`
	Guide            types.JSONB    `gorm:"type:jsonb" json:"guide,omitempty"`
	GearIncluded     bool           `json:"gear_included,omitempty"`
	SafetyInfo       string         `json:"safety_info,omitempty"`
	MinAge           int            `json:"min_age,omitempty"`
	MaxGroupSize     int            `json:"max_group_size,omitempty"`
	Dates            ProductDates   `gorm:"type:jsonb" json:"dates,omitempty"`
	Category         string         `json:"category,omitempty"`
	Duration         string         `json:"duration,omitempty"`
	IsActive         bool           `gorm:"default:true" json:"is_active"`
	IsFeatured       bool           `json:"is_featured"`
	SEO              types.JSONB    `gorm:"type:jsonb" json:"seo,omitempty"`
	CreatedBy        uint           `json:"created_by,omitempty"`

	Creator  User      `gorm:"foreignKey:created_by" json:"-"`
	Bookings []Booking `json:"bookings,omitempty"`

	types.Timestamps
}

// SameCalendarDay compares two instants on the calendar-day level,
// ignoring the time-of-day component.
func SameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// LocateSlot resolves a requested date and time against the product's slot
// grid. Date matching is calendar-day, time matching is an exact string
// match. The returned pointer aliases the product's own slice so callers
// holding a row lock can mutate through it.
func (p *Product) LocateSlot(date time.Time, timeLabel string) (*Slot, error) {
	for di := range p.Dates {
		if !SameCalendarDay(p.Dates[di].Date, date) {
			continue
		}
		for si := range p.Dates[di].Slots {
			if p.Dates[di].Slots[si].Time == timeLabel {
				return &p.Dates[di].Slots[si], nil
			}
		}
		return nil, ErrSlotNotFound
	}
	return nil, ErrDateNotAvailable
}

// ValidateSlotGrid checks invariants on an incoming slot grid before it is
// persisted: no duplicate dates, no duplicate times within a date, and
// booked never exceeding capacity.
func ValidateSlotGrid(dates ProductDates) error {
	seenDates := map[string]bool{}
	for _, bucket := range dates {
		day := bucket.Date.Format("2006-01-02")
		if seenDates[day] {
			return fmt.Errorf("duplicate date in slot grid: %s", day)
		}
		seenDates[day] = true
		seenTimes := map[string]bool{}
		for _, slot := range bucket.Slots {
			if seenTimes[slot.Time] {
				return fmt.Errorf("duplicate time %q on date %s", slot.Time, day)
			}
			seenTimes[slot.Time] = true
			if slot.Capacity < 0 || slot.Booked < 0 {
				return fmt.Errorf("negative capacity or booked count on %s %s", day, slot.Time)
			}
			if slot.Booked > slot.Capacity {
				return fmt.Errorf("booked exceeds capacity on %s %s", day, slot.Time)
			}
		}
	}
	return nil
}

// NormalizeSlotStatuses recomputes every slot's status from its counts.
// Used when admins submit a grid so stored statuses never disagree with
// the numbers.
func NormalizeSlotStatuses(dates ProductDates) {
	for di := range dates {
		for si := range dates[di].Slots {
			s := &dates[di].Slots[si]
			if s.Remaining() <= 0 {
				s.Status = types.SLOT_SOLDOUT
			} else {
				s.Status = types.SLOT_AVAILABLE
			}
		}
	}
}
