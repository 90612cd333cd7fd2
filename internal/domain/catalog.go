package domain

import "github.com/shopspring/decimal"

// Справочные сущности. Ядро читает их как read-only lookups,
// управление ими лежит за пределами этого сервиса.

// Court is a bookable field ("cancha")
type Court struct {
	ID          int64
	CourtTypeID int64
	Name        string
	Active      bool
}

// CourtType carries the hourly price shared by courts of the same kind
type CourtType struct {
	ID          int64
	Description string
	HourlyPrice decimal.Decimal
}

// Schedule is a fixed daily time block ("horario")
type Schedule struct {
	ID        int64
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
}

// FacilityService is an extra service attached to a court (lighting, gear rental)
// whose cost is added on top of the court type's hourly price
type FacilityService struct {
	ID          int64
	Description string
	Cost        decimal.Decimal
}

// PaymentMethod reference entry
type PaymentMethod struct {
	ID          int64
	Description string
}
