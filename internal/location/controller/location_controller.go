package controller

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockroom/internal/api"
	"stockroom/internal/domain"
	"stockroom/internal/dto"
)

type Lister interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
}

type Controller struct {
	locations Lister
	logger    *zap.Logger
}

func NewController(locations Lister, logger *zap.Logger) *Controller {
	return &Controller{locations: locations, logger: logger}
}

// HandleList returns every active shelf, used to pick where a purchase is
// stored.
func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.NewString()
	logger := c.logger.With(zap.String("traceId", traceID))

	locations, err := c.locations.ListLocations(r.Context())
	if err != nil {
		api.WriteError(w, logger, traceID, err)
		return
	}

	out := make([]dto.LocationDTO, 0, len(locations))
	for _, l := range locations {
		out = append(out, dto.LocationDTO{
			ShelfID:       l.ShelfID,
			Code:          l.Code(),
			Label:         l.Label(),
			ZoneCode:      l.ZoneCode,
			ZoneName:      l.ZoneName,
			ChamberNumber: l.ChamberNumber,
			ChamberName:   domain.ChamberPositionName(l.ChamberNumber),
			ShelfNumber:   l.ShelfNumber,
		})
		if l.ChamberName != nil && *l.ChamberName != "" {
			out[len(out)-1].ChamberName = *l.ChamberName
		}
	}

	api.WriteJSON(w, logger, http.StatusOK, dto.LocationsResponse{
		TraceID:   traceID,
		Locations: out,
	})
}
