package appointment

import (
	"context"
	"time"

	"github.com/himsog/himsog-api/internal/domain/schedule"
	"github.com/himsog/himsog-api/internal/dto"
	"github.com/himsog/himsog-api/internal/models"
	"github.com/himsog/himsog-api/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo schedule.Repository
}

func NewListAppointmentsByDate(
	repo schedule.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	providerID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	provider, err := uc.repo.GetProviderByID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(provider.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

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

func toListDTOs(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		names := make([]string, 0, len(ap.Services))
		for _, svc := range ap.Services {
			names = append(names, svc.Name)
		}
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			Reference:   ap.Reference,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			PatientName: ap.PatientName,
			TotalPrice:  ap.TotalPrice,
			Services:    names,
		})
	}
	return out
}
