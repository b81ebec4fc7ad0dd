package add_service_line

import (
	"context"

	addServiceLine "github.com/m04kA/SMC-SpaBookingService/internal/usecase/add_service_line"
)

type AddServiceLineUseCase interface {
	Execute(ctx context.Context, req *addServiceLine.Request) (*addServiceLine.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
