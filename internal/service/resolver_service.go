package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/models"
	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/repository"
)

// ErrNotFound ни один ключ-кандидат не дал записи с URL назначения
var ErrNotFound = errors.New("short link not found")

// ResolverService разрешает входящий запрос в URL назначения
type ResolverService interface {
	Resolve(ctx context.Context, req *models.ResolveRequest) (string, error)
}

type resolverService struct {
	linkRepo    repository.LinkRepository
	clicks      ClickProcessor
	logger      *zap.Logger
	multiTenant bool
}

func NewResolverService(
	linkRepo repository.LinkRepository,
	clicks ClickProcessor,
	multiTenant bool,
	logger *zap.Logger,
) ResolverService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &resolverService{
		linkRepo:    linkRepo,
		clicks:      clicks,
		logger:      logger,
		multiTenant: multiTenant,
	}
}

// Resolve перебирает ключи-кандидаты по порядку до первой записи с непустым
// URL назначения, добавляет трекинг-параметры и ставит учёт кликов в очередь.
// Ошибки чтения из хранилища фатальны для запроса; ошибки учёта — никогда.
func (s *resolverService) Resolve(ctx context.Context, req *models.ResolveRequest) (string, error) {
	candidates := CandidateKeys(req.Path, req.ForwardedHost, s.multiTenant)
	if len(candidates) == 0 {
		return "", ErrNotFound
	}

	var record *models.LinkRecord
	var resolvedKey string
	// Перебор намеренно последовательный: кандидаты упорядочены по
	// специфичности, побеждает первое совпадение
	for _, key := range candidates {
		found, err := s.linkRepo.Get(ctx, key)
		if err != nil {
			if errors.Is(err, repository.ErrLinkNotFound) {
				continue
			}
			return "", fmt.Errorf("lookup failed for key %q: %w", key, err)
		}
		// Запись без URL назначения приравнивается к отсутствующей
		if found.URL != "" {
			record = found
			resolvedKey = key
			break
		}
	}

	if record == nil {
		return "", ErrNotFound
	}

	destination := MergeTrackingParams(record.URL, req.Query, req.RawQuery)

	if !IsBot(req.UserAgent) {
		s.recordClick(ctx, record, resolvedKey)
	}

	return destination, nil
}

// recordClick ставит событие клика в очередь фонового учёта.
// Ключ события — именно тот кандидат, по которому запись была найдена.
func (s *resolverService) recordClick(ctx context.Context, record *models.LinkRecord, resolvedKey string) {
	event := &models.ClickEvent{
		Campaign:  record.Campaign,
		Domain:    record.Domain,
		OfferID:   record.Offer(),
		AccountID: record.AccountID,
	}
	if record.TracksClicks() {
		event.LinkKey = resolvedKey
	}

	if event.LinkKey == "" && !event.HasOffer() {
		return
	}

	if err := s.clicks.Record(ctx, event); err != nil {
		s.logger.Debug("Failed to enqueue click event (non-blocking)",
			zap.String("key", resolvedKey),
			zap.Error(err),
		)
	}
}
