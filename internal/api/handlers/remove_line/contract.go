package remove_line

import (
	"context"

	removeLine "github.com/m04kA/SMC-SpaBookingService/internal/usecase/remove_line"
)

type RemoveLineUseCase interface {
	Execute(ctx context.Context, req *removeLine.Request) (*removeLine.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
