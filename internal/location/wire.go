package location

import (
	"go.uber.org/zap"

	"stockroom/internal/location/controller"
)

func NewModule(locations controller.Lister, logger *zap.Logger) *controller.Controller {
	return controller.NewController(locations, logger)
}
