package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-InventoryService/internal/domain"
	slotRepo "github.com/m04kA/SMC-InventoryService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-InventoryService/internal/service/slots/models"
)

// Service сервис чтения слотов: поиск, карточка слота, статистика
type Service struct {
	slotRepo  SlotRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:  slotRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	s.logger.Info("GetByID: fetching slot id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: slot id must be positive", ErrInvalidInput)
	}

	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched slot id=%d", id)
	return models.FromDomainSlot(slot), nil
}

// Search ищет слоты по фильтрам с пагинацией и сортировкой.
// Подсчет и страница читаются в одной read-only транзакции, поэтому Total
// согласован со страницей.
func (s *Service) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
	// 1. Валидируем и нормализуем параметры
	filter, page, limit, err := buildFilter(req)
	if err != nil {
		s.logger.Warn("Search: validation failed: %v", err)
		return nil, err
	}

	s.logger.Info("Search: resource=%v, sort=%s desc=%t, page=%d, limit=%d",
		derefString(filter.ResourceID), filter.SortBy, filter.SortDesc, page, limit)

	// 2. Читаем страницу и общее количество
	var (
		found []*domain.Slot
		total int
	)
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		found, total, err = s.slotRepo.Search(txCtx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	s.logger.Info("Search: found %d slots (page %d/%d)", total, page, totalPages)

	return &models.SearchResponse{
		Slots:      models.FromDomainSlotList(found),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// buildFilter переводит запрос в фильтр репозитория
func buildFilter(req *models.SearchRequest) (domain.SlotSearchFilter, int, int, error) {
	if req == nil {
		req = &models.SearchRequest{}
	}

	page := req.Page
	if page == 0 {
		page = domain.DefaultPage
	}
	if page < 1 {
		return domain.SlotSearchFilter{}, 0, 0, fmt.Errorf("%w: page must be positive", ErrInvalidInput)
	}

	limit := req.Limit
	if limit == 0 {
		limit = domain.DefaultPageSize
	}
	if limit < 1 {
		return domain.SlotSearchFilter{}, 0, 0, fmt.Errorf("%w: limit must be positive", ErrInvalidInput)
	}
	if limit > domain.MaxPageSize {
		limit = domain.MaxPageSize
	}

	if req.MinPrice != nil && req.MaxPrice != nil && req.MinPrice.GreaterThan(*req.MaxPrice) {
		return domain.SlotSearchFilter{}, 0, 0, fmt.Errorf("%w: minPrice must not exceed maxPrice", ErrInvalidInput)
	}

	filter := domain.SlotSearchFilter{
		Available:   req.Available,
		HasCapacity: req.HasCapacity,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		SortBy:      domain.ParseSortField(req.SortBy),
		SortDesc:    strings.EqualFold(req.SortOrder, "desc"),
		Limit:       limit,
		Offset:      (page - 1) * limit,
	}

	if req.ResourceID != nil {
		if id := strings.TrimSpace(*req.ResourceID); id != "" {
			filter.ResourceID = &id
		}
	}
	if req.StartDate != nil {
		d := domain.TruncateToDay(*req.StartDate)
		filter.StartDate = &d
	}
	if req.EndDate != nil {
		d := domain.TruncateToDay(*req.EndDate)
		filter.EndDate = &d
	}

	return filter, page, limit, nil
}

func derefString(s *string) string {
	if s == nil {
		return "*"
	}
	return *s
}
