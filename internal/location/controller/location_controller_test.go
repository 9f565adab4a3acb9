package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stockroom/internal/domain"
	"stockroom/internal/dto"
)

type mockLister struct {
	ListLocationsFunc func(ctx context.Context) ([]domain.Location, error)
}

func (m *mockLister) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return m.ListLocationsFunc(ctx)
}

func TestHandleList_OK(t *testing.T) {
	named := "Cold room"
	lister := &mockLister{ListLocationsFunc: func(ctx context.Context) ([]domain.Location, error) {
		return []domain.Location{
			{ShelfID: "s-1", ZoneCode: "L", ZoneName: "Left", ChamberNumber: 3, ShelfNumber: 1},
			{ShelfID: "s-2", ZoneCode: "L", ZoneName: "Left", ChamberNumber: 4, ChamberName: &named, ShelfNumber: 2},
		}, nil
	}}
	c := NewController(lister, zap.NewNop())

	rec := httptest.NewRecorder()
	c.HandleList(rec, httptest.NewRequest(http.MethodGet, "/locations", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.LocationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Locations, 2)
	assert.Equal(t, "L-C03-S01", resp.Locations[0].Code)
	assert.Equal(t, "Middle", resp.Locations[0].ChamberName)
	assert.Equal(t, "Left → Middle → Shelf 1", resp.Locations[0].Label)
	assert.Equal(t, "Cold room", resp.Locations[1].ChamberName)
}

func TestHandleList_Error(t *testing.T) {
	lister := &mockLister{ListLocationsFunc: func(ctx context.Context) ([]domain.Location, error) {
		return nil, errors.New("db down")
	}}
	c := NewController(lister, zap.NewNop())

	rec := httptest.NewRecorder()
	c.HandleList(rec, httptest.NewRequest(http.MethodGet, "/locations", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
