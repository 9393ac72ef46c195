package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/models"
	"github.com/andre-mr/centerpromos-shortlinks-resolver/internal/repository"
)

var accountingFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "shortlinks_accounting_failures_total",
	Help: "Click accounting operations that failed, were skipped or were dropped",
}, []string{"kind"})

// Константы worker pool
const (
	defaultWorkerCount   = 3    // Количество воркеров
	defaultChannelBuffer = 1000 // Размер буфера канала
	incrementTimeout     = 5 * time.Second
)

const offerKeyPrefix = "OFFER#"

// AccountingConfig настройки оффер-учёта
type AccountingConfig struct {
	// MultiAccount включает выбор таблицы офферов по аккаунту
	MultiAccount bool
	// DefaultOffersTable таблица офферов по умолчанию
	DefaultOffersTable string
	// DomainsToCampaigns отображение домен -> кампания для записей без кампании
	DomainsToCampaigns map[string]string
}

// ClickProcessor асинхронный учёт кликов. Record не блокирует и не подводит
// вызывающего: любые сбои учёта логируются и гасятся внутри пула.
type ClickProcessor interface {
	Start()
	Stop()
	Record(ctx context.Context, event *models.ClickEvent) error
}

// clickProcessor реализация на основе worker pool
type clickProcessor struct {
	counters     repository.CounterRepository
	cfg          AccountingConfig
	logger       *zap.Logger
	clickChannel chan *models.ClickEvent
	workerCount  int
	wg           sync.WaitGroup
	stopOnce     sync.Once
}

// NewClickProcessor создаёт новый экземпляр процессора кликов
func NewClickProcessor(
	counters repository.CounterRepository,
	cfg AccountingConfig,
	logger *zap.Logger,
) ClickProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &clickProcessor{
		counters:     counters,
		cfg:          cfg,
		logger:       logger,
		clickChannel: make(chan *models.ClickEvent, defaultChannelBuffer),
		workerCount:  defaultWorkerCount,
	}
}

// Start запускает worker pool
func (p *clickProcessor) Start() {
	p.logger.Info("Запуск воркеров учёта кликов", zap.Int("count", p.workerCount))

	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop закрывает канал и дожидается, пока воркеры дообработают очередь.
// Поставленные в очередь события не теряются при остановке.
func (p *clickProcessor) Stop() {
	p.stopOnce.Do(func() {
		p.logger.Info("Остановка учёта кликов...")
		close(p.clickChannel)
		p.wg.Wait()
		p.logger.Info("Учёт кликов остановлен")
	})
}

// worker обрабатывает события кликов из канала
func (p *clickProcessor) worker(id int) {
	defer p.wg.Done()

	p.logger.Debug("Воркер учёта кликов запущен", zap.Int("id", id))

	for event := range p.clickChannel {
		p.processClick(event)
	}

	p.logger.Debug("Воркер учёта кликов остановлен", zap.Int("id", id))
}

// processClick выполняет оба инкремента независимо: сбой одного не мешает
// другому. Инкременты не повторяются при ошибке — повтор после неоднозначного
// сбоя мог бы удвоить счётчик.
func (p *clickProcessor) processClick(event *models.ClickEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), incrementTimeout)
	defer cancel()

	if event.LinkKey != "" {
		if err := p.counters.IncrementLinkClicks(ctx, event.LinkKey); err != nil {
			accountingFailures.WithLabelValues("link").Inc()
			p.logger.Error("Не удалось увеличить счётчик кликов ссылки",
				zap.String("key", event.LinkKey),
				zap.Error(err),
			)
		}
	}

	if event.HasOffer() {
		p.incrementOfferClicks(ctx, event)
	}
}

// incrementOfferClicks начисляет клик офферу по составному ключу
// OFFER#{кампания-или-домен} + offerID. Невыполнимые предусловия — пропуск
// с логом, отсутствующая запись оффера — тихий no-op.
func (p *clickProcessor) incrementOfferClicks(ctx context.Context, event *models.ClickEvent) {
	campaign := normalizeCampaign(event.Campaign)
	account := normalizeAccount(event.AccountID)

	table := p.cfg.DefaultOffersTable
	// В multi-tenant режиме таблицей оффера служит имя аккаунта
	if p.cfg.MultiAccount && account != "" {
		table = account
	}

	mappedDomain := p.cfg.DomainsToCampaigns[event.Domain]

	if (campaign == "" && mappedDomain == "") || event.OfferID == "" || table == "" {
		accountingFailures.WithLabelValues("offer_skipped").Inc()
		p.logger.Warn("Недостаточно данных для оффер-учёта, пропуск",
			zap.String("campaign", event.Campaign),
			zap.String("domain", event.Domain),
			zap.String("offer_id", event.OfferID),
		)
		return
	}

	partitionKey := offerKeyPrefix + campaign
	if campaign == "" {
		partitionKey = offerKeyPrefix + mappedDomain
	}

	if err := p.counters.IncrementOfferClicks(ctx, table, partitionKey, event.OfferID); err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			p.logger.Debug("Запись оффера отсутствует, клик не начислен",
				zap.String("partition_key", partitionKey),
				zap.String("offer_id", event.OfferID),
			)
			return
		}
		accountingFailures.WithLabelValues("offer").Inc()
		p.logger.Error("Не удалось увеличить счётчик кликов оффера",
			zap.String("partition_key", partitionKey),
			zap.String("offer_id", event.OfferID),
			zap.Error(err),
		)
	}
}

// Record отправляет событие клика в worker pool (неблокирующая операция)
func (p *clickProcessor) Record(ctx context.Context, event *models.ClickEvent) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.clickChannel <- event:
		return nil
	default:
		// Канал заполнен: предупреждаем и теряем событие, но не тормозим ответ
		accountingFailures.WithLabelValues("dropped").Inc()
		p.logger.Warn("Буфер канала кликов заполнен, событие потеряно",
			zap.String("key", event.LinkKey),
		)
		return nil
	}
}

// normalizeCampaign убирает все пробельные символы и приводит к верхнему регистру
func normalizeCampaign(campaign string) string {
	return strings.ToUpper(strings.Join(strings.Fields(campaign), ""))
}

// normalizeAccount обрезает пробелы и приводит к нижнему регистру
func normalizeAccount(account string) string {
	return strings.ToLower(strings.TrimSpace(account))
}
