package appointment

import (
	"context"
	"time"

	"github.com/himsog/himsog-api/internal/domain/schedule"
	"github.com/himsog/himsog-api/internal/dto"
	"github.com/himsog/himsog-api/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo schedule.Repository
}

func NewListAppointmentsByMonth(
	repo schedule.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	providerID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	provider, err := uc.repo.GetProviderByID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(provider.Timezone)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		providerID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return toListDTOs(appointments), nil
}
