package update_persons

import (
	"context"

	updatePersons "github.com/m04kA/SMC-SpaBookingService/internal/usecase/update_persons"
)

type UpdatePersonsUseCase interface {
	Execute(ctx context.Context, req *updatePersons.Request) (*updatePersons.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
