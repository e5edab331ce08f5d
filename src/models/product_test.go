package models

import (
	"bookit/src/types"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleProduct() *Product {
	return &Product{
		ID:        1,
		Title:     "Kayak Sunset Tour",
		BasePrice: 1500,
		Currency:  types.CURRENCY_INR,
		IsActive:  true,
		Dates: ProductDates{
			{
				Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
				Slots: []Slot{
					{Time: "10:00", Capacity: 10, Booked: 4, Status: types.SLOT_AVAILABLE},
					{Time: "14:00", Capacity: 5, Booked: 5, Status: types.SLOT_SOLDOUT},
				},
			},
			{
				Date: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
				Slots: []Slot{
					{Time: "10:00", Capacity: 8, Booked: 0, Status: types.SLOT_AVAILABLE},
				},
			},
		},
	}
}

func TestLocateSlot(t *testing.T) {
	p := sampleProduct()

	slot, err := p.LocateSlot(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "10:00")
	assert.Nil(t, err)
	assert.Equal(t, 10, slot.Capacity)
	assert.Equal(t, 4, slot.Booked)

	_, err = p.LocateSlot(time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC), "10:00")
	assert.ErrorIs(t, err, ErrDateNotAvailable)

	_, err = p.LocateSlot(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "16:00")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestLocateSlotIgnoresTimeOfDay(t *testing.T) {
	p := sampleProduct()

	slot, err := p.LocateSlot(time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC), "10:00")
	assert.Nil(t, err)
	assert.Equal(t, "10:00", slot.Time)
}

func TestLocateSlotAliasesProduct(t *testing.T) {
	p := sampleProduct()

	slot, err := p.LocateSlot(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "10:00")
	assert.Nil(t, err)

	slot.Booked = 9
	assert.Equal(t, 9, p.Dates[0].Slots[0].Booked)
}

func TestSlotTake(t *testing.T) {
	slot := &Slot{Time: "10:00", Capacity: 10, Booked: 4, Status: types.SLOT_AVAILABLE}

	err := slot.Take(3)
	assert.Nil(t, err)
	assert.Equal(t, 7, slot.Booked)
	assert.Equal(t, types.SLOT_AVAILABLE, slot.Status)

	err = slot.Take(5)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 7, slot.Booked)

	err = slot.Take(3)
	assert.Nil(t, err)
	assert.Equal(t, 10, slot.Booked)
	assert.Equal(t, types.SLOT_SOLDOUT, slot.Status)

	err = slot.Take(1)
	assert.ErrorIs(t, err, ErrSlotSoldOut)
}

func TestSlotTakeConcurrent(t *testing.T) {
	slot := &Slot{Time: "10:00", Capacity: 10, Booked: 2, Status: types.SLOT_AVAILABLE}

	var mu sync.Mutex
	var wg sync.WaitGroup
	accepted := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu.Lock()
			defer mu.Unlock()
			if err := slot.Take(1); err == nil {
				accepted++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, accepted)
	assert.Equal(t, slot.Capacity, slot.Booked)
	assert.Equal(t, types.SLOT_SOLDOUT, slot.Status)
}

func TestValidateSlotGrid(t *testing.T) {
	ok := ProductDates{
		{
			Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			Slots: []Slot{
				{Time: "10:00", Capacity: 10},
				{Time: "14:00", Capacity: 5},
			},
		},
	}
	assert.Nil(t, ValidateSlotGrid(ok))

	duplicateDate := ProductDates{
		{Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Slots: []Slot{{Time: "10:00", Capacity: 1}}},
		{Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Slots: []Slot{{Time: "14:00", Capacity: 1}}},
	}
	assert.NotNil(t, ValidateSlotGrid(duplicateDate))

	duplicateTime := ProductDates{
		{
			Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			Slots: []Slot{
				{Time: "10:00", Capacity: 1},
				{Time: "10:00", Capacity: 2},
			},
		},
	}
	assert.NotNil(t, ValidateSlotGrid(duplicateTime))

	overbooked := ProductDates{
		{Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Slots: []Slot{{Time: "10:00", Capacity: 5, Booked: 6}}},
	}
	assert.NotNil(t, ValidateSlotGrid(overbooked))
}

func TestNormalizeSlotStatuses(t *testing.T) {
	dates := ProductDates{
		{
			Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			Slots: []Slot{
				{Time: "10:00", Capacity: 10, Booked: 4},
				{Time: "14:00", Capacity: 5, Booked: 5, Status: types.SLOT_AVAILABLE},
			},
		},
	}
	NormalizeSlotStatuses(dates)
	assert.Equal(t, types.SLOT_AVAILABLE, dates[0].Slots[0].Status)
	assert.Equal(t, types.SLOT_SOLDOUT, dates[0].Slots[1].Status)
}
