package slots

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
	"github.com/m04kA/SMC-InventoryService/internal/service/slots/models"
)

// Stats считает загрузку ресурса за период.
// Если в периоде нет ни одного слота, возвращает ErrNoData, а не нулевой отчет.
func (s *Service) Stats(ctx context.Context, req *models.StatsRequest) (*models.StatsResponse, error) {
	// 1. Валидация
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	resourceID := strings.TrimSpace(req.ResourceID)
	if resourceID == "" || len(resourceID) > domain.MaxResourceIDLength {
		s.logger.Warn("Stats: invalid resource_id=%q", req.ResourceID)
		return nil, fmt.Errorf("%w: resource_id must be 1..%d characters", ErrInvalidInput, domain.MaxResourceIDLength)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if err := domain.ValidateDateRange(req.StartDate, req.EndDate); err != nil {
		s.logger.Warn("Stats: invalid range: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	start := domain.TruncateToDay(req.StartDate)
	end := domain.TruncateToDay(req.EndDate)

	s.logger.Info("Stats: resource=%s, range=%s..%s",
		resourceID, start.Format(domain.DateFormat), end.Format(domain.DateFormat))

	// 2. Читаем слоты периода
	found, err := s.slotRepo.ListByResourceAndRange(ctx, resourceID, start, end)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	if len(found) == 0 {
		s.logger.Warn("Stats: no slots for resource=%s in range", resourceID)
		return nil, ErrNoData
	}

	// 3. Агрегируем
	resp := &models.StatsResponse{
		ResourceID: resourceID,
		StartDate:  start.Format(domain.DateFormat),
		EndDate:    end.Format(domain.DateFormat),
		TotalSlots: len(found),
	}

	perDate := make([]dateLoad, 0, len(found))
	var utilizationSum float64
	for _, slot := range found {
		resp.TotalCapacity += slot.MaxCapacity
		resp.TotalBooked += slot.BookedCount
		resp.TotalAvailable += slot.AvailableCount()

		if slot.MaxCapacity <= 0 {
			continue
		}
		u := slot.Utilization()
		utilizationSum += u
		perDate = append(perDate, dateLoad{
			utilization: u,
			out: models.DateUtilization{
				Date:        slot.Date.Format(domain.DateFormat),
				Utilization: round2(u),
				BookedCount: slot.BookedCount,
				MaxCapacity: slot.MaxCapacity,
			},
		})
	}

	if len(perDate) > 0 {
		resp.AverageUtilization = round2(utilizationSum / float64(len(perDate)))
	}

	resp.PeakDates = topDates(perDate, true)
	resp.LowPerformanceDates = topDates(perDate, false)

	s.logger.Info("Stats: resource=%s, slots=%d, avg_utilization=%.2f",
		resourceID, resp.TotalSlots, resp.AverageUtilization)

	return resp, nil
}

// dateLoad загрузка даты до округления, по ней идет сортировка
type dateLoad struct {
	utilization float64
	out         models.DateUtilization
}

// topDates первые StatsTopDates дат по загрузке (по убыванию для peak,
// по возрастанию иначе), при равенстве раньше идет более ранняя дата
func topDates(perDate []dateLoad, peak bool) []models.DateUtilization {
	sorted := make([]dateLoad, len(perDate))
	copy(sorted, perDate)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.utilization != b.utilization {
			if peak {
				return a.utilization > b.utilization
			}
			return a.utilization < b.utilization
		}
		// DateFormat сортируется лексикографически
		return a.out.Date < b.out.Date
	})

	if len(sorted) > domain.StatsTopDates {
		sorted = sorted[:domain.StatsTopDates]
	}

	top := make([]models.DateUtilization, 0, len(sorted))
	for _, d := range sorted {
		top = append(top, d.out)
	}
	return top
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
