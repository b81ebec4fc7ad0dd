package add_product_line

import (
	"context"

	addProductLine "github.com/m04kA/SMC-SpaBookingService/internal/usecase/add_product_line"
)

type AddProductLineUseCase interface {
	Execute(ctx context.Context, req *addProductLine.Request) (*addProductLine.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
