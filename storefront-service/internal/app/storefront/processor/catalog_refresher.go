package processor

import (
	"context"

	"qkart/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CatalogSource - источник каталога, который нужно периодически обновлять
type CatalogSource interface {
	RefreshCatalog(ctx context.Context) error
}

// CatalogRefresher периодически перечитывает каталог с backend,
// чтобы витрина не отдавала устаревший снимок
type CatalogRefresher struct {
	cron    *cron.Cron
	catalog CatalogSource
}

// NewCatalogRefresher создает новый планировщик обновления каталога
func NewCatalogRefresher(catalog CatalogSource) *CatalogRefresher {
	return &CatalogRefresher{
		cron:    cron.New(),
		catalog: catalog,
	}
}

// Start запускает периодическое обновление по расписанию
// и сразу выполняет первое обновление
func (r *CatalogRefresher) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting catalog refresher")

	_, err := r.cron.AddFunc(schedule, func() {
		logger.Debug().Msg("Cron job triggered: refreshing catalog")

		if err := r.catalog.RefreshCatalog(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to refresh catalog")
		} else {
			logger.Debug().Msg("Catalog refresh completed")
		}
	})
	if err != nil {
		return err
	}

	r.cron.Start()

	if err := r.catalog.RefreshCatalog(ctx); err != nil {
		logger.Warn().Err(err).Msg("Initial catalog refresh failed")
	}

	return nil
}

// Stop останавливает планировщик и дожидается завершения задач
func (r *CatalogRefresher) Stop() {
	logger.Info().Msg("Stopping catalog refresher")
	ctx := r.cron.Stop()
	<-ctx.Done()
}

// Entries возвращает запланированные задачи
func (r *CatalogRefresher) Entries() []cron.Entry {
	return r.cron.Entries()
}
