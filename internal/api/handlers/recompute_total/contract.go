package recompute_total

import (
	"context"

	recomputeTotal "github.com/m04kA/SMC-SpaBookingService/internal/usecase/recompute_total"
)

type RecomputeTotalUseCase interface {
	Execute(ctx context.Context, req *recomputeTotal.Request) (*recomputeTotal.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
