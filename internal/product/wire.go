package product

import (
	"go.uber.org/zap"

	"stockroom/internal/product/controller"
	"stockroom/internal/product/service"
	"stockroom/internal/product/usecase"
)

func NewModule(repo service.Repository, logger *zap.Logger) *controller.Controller {
	svc := service.NewService(repo)
	uc := usecase.NewSearchUseCase(svc)
	return controller.NewController(uc, logger)
}
