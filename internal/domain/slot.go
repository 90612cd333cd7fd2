package domain

import (
	"errors"
	"time"
)

// SlotStatus represents the availability state of a slot ("turno")
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "disponible"
	SlotUnavailable SlotStatus = "no_disponible"
)

// SlotEvent is an event applied to a slot state machine
type SlotEvent string

const (
	// SlotEventClaim занимает слот при создании резервации или турнира
	SlotEventClaim SlotEvent = "claim"
	// SlotEventRelease освобождает слот при отмене резервации
	SlotEventRelease SlotEvent = "release"
)

// ErrSlotTransition возвращается при недопустимом переходе состояния слота
var ErrSlotTransition = errors.New("domain: invalid slot state transition")

// Slot is the bookable unit: court x schedule block x calendar date.
// Slots are created lazily and never deleted, only transitioned.
type Slot struct {
	ID         int64
	CourtID    int64
	ScheduleID int64
	Date       time.Time
	Status     SlotStatus
}

// IsAvailable returns true if the slot can be claimed
func (s *Slot) IsAvailable() bool {
	return s.Status == SlotAvailable
}

// TransitionSlot применяет событие к состоянию слота.
// Все правила переходов слота централизованы здесь:
//
//	disponible    --claim-->   no_disponible
//	no_disponible --release--> disponible
//
// Любая другая комбинация недопустима.
func TransitionSlot(current SlotStatus, event SlotEvent) (SlotStatus, error) {
	switch {
	case current == SlotAvailable && event == SlotEventClaim:
		return SlotUnavailable, nil
	case current == SlotUnavailable && event == SlotEventRelease:
		return SlotAvailable, nil
	default:
		return current, ErrSlotTransition
	}
}
