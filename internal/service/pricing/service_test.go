package pricing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	catalogRepo "github.com/m04kA/SFC-ReservaService/internal/infra/storage/catalog"
)

type fakeCatalog struct {
	courts     map[int64]*domain.Court
	courtTypes map[int64]*domain.CourtType
	services   map[int64]*domain.FacilityService
	byCourt    map[int64][]int64
}

func (f *fakeCatalog) GetCourt(_ context.Context, id int64) (*domain.Court, error) {
	c, ok := f.courts[id]
	if !ok {
		return nil, catalogRepo.ErrCourtNotFound
	}
	return c, nil
}

func (f *fakeCatalog) GetCourtType(_ context.Context, id int64) (*domain.CourtType, error) {
	ct, ok := f.courtTypes[id]
	if !ok {
		return nil, catalogRepo.ErrCourtTypeNotFound
	}
	return ct, nil
}

func (f *fakeCatalog) GetServiceIDsByCourt(_ context.Context, courtID int64) ([]int64, error) {
	return f.byCourt[courtID], nil
}

func (f *fakeCatalog) GetService(_ context.Context, id int64) (*domain.FacilityService, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestPriceWithAttachedService(t *testing.T) {
	catalog := &fakeCatalog{
		courts:     map[int64]*domain.Court{1: {ID: 1, CourtTypeID: 10, Name: "Cancha 1", Active: true}},
		courtTypes: map[int64]*domain.CourtType{10: {ID: 10, Description: "Fútbol 5", HourlyPrice: decimal.NewFromInt(70000)}},
		services:   map[int64]*domain.FacilityService{5: {ID: 5, Description: "Iluminación", Cost: decimal.NewFromInt(3000)}},
		byCourt:    map[int64][]int64{1: {5}},
	}
	svc := NewService(catalog, nopLogger{})

	price, err := svc.Price(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(73000)), "expected 73000, got %s", price)
}

func TestPriceIsDeterministic(t *testing.T) {
	catalog := &fakeCatalog{
		courts:     map[int64]*domain.Court{1: {ID: 1, CourtTypeID: 10}},
		courtTypes: map[int64]*domain.CourtType{10: {ID: 10, HourlyPrice: decimal.NewFromInt(50000)}},
		services: map[int64]*domain.FacilityService{
			2: {ID: 2, Cost: decimal.NewFromInt(1500)},
			3: {ID: 3, Cost: decimal.NewFromInt(2500)},
		},
		byCourt: map[int64][]int64{1: {2, 3}},
	}
	svc := NewService(catalog, nopLogger{})

	first, err := svc.Price(context.Background(), 1)
	require.NoError(t, err)
	second, err := svc.Price(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.True(t, first.Equal(decimal.NewFromInt(54000)))
}

func TestPriceCourtNotFound(t *testing.T) {
	svc := NewService(&fakeCatalog{courts: map[int64]*domain.Court{}}, nopLogger{})

	_, err := svc.Price(context.Background(), 99)
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestPriceCourtTypeMissing(t *testing.T) {
	catalog := &fakeCatalog{
		courts:     map[int64]*domain.Court{1: {ID: 1, CourtTypeID: 10}},
		courtTypes: map[int64]*domain.CourtType{},
	}
	svc := NewService(catalog, nopLogger{})

	_, err := svc.Price(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCourtTypeNotFound)
}
