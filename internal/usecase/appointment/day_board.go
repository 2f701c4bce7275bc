package appointment

import (
	"context"
	"sort"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type DayBoardInput struct {
	SalonID        uint
	ProfessionalID uint
	Date           string
}

// GetDayBoard é a visão da equipe: todos os registros do dia com o estado
// reconciliado de cada janela.
type GetDayBoard struct {
	Deps
}

func NewGetDayBoard(deps Deps) *GetDayBoard {
	return &GetDayBoard{Deps: deps}
}

func (uc *GetDayBoard) Execute(
	ctx context.Context,
	in DayBoardInput,
) ([]dto.AppointmentListDTO, error) {

	salon, err := uc.Repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	day, err := timezone.ParseDate(salon.Timezone, in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	start, end := timezone.DayBounds(day)

	records, err := uc.Repo.ListSalonRecords(ctx, in.SalonID, in.ProfessionalID, start, end)
	if err != nil {
		return nil, err
	}

	groups := byProfessional(records)

	out := make([]dto.AppointmentListDTO, 0, len(records))
	for _, r := range records {
		item := dto.AppointmentList(r)
		item.SlotState = string(domain.ResolveSlot(groups[r.ProfessionalID], r.StartTime, r.EndTime))
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})

	return out, nil
}
