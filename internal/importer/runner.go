package importer

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/boundary-importer/internal/config"
	"github.com/boundary-importer/internal/domain/repository"
)

// RunSummary - итог мультистранового прогона
type RunSummary struct {
	Succeeded  int
	Failed     int
	WithErrors int
}

// CountryImporter - импорт одной страны; реализуется Pipeline
type CountryImporter interface {
	ImportCountry(ctx context.Context, iso3 string) (*ImportResult, error)
}

// Runner выполняет импорт каталога стран батчами с ограниченным параллелизмом.
// Страны со статусом completed пропускаются, что делает прогон возобновляемым.
type Runner struct {
	pipeline    CountryImporter
	progress    repository.ImportProgressRepository
	countries   []string
	concurrency int
	batchDelay  time.Duration
	logger      *zap.Logger
}

// NewRunner создает новый Runner
func NewRunner(cfg *config.Config, pipeline CountryImporter, progress repository.ImportProgressRepository, logger *zap.Logger) *Runner {
	countries := cfg.Importer.Countries
	if len(countries) == 0 {
		countries = DefaultCountries
	}

	return &Runner{
		pipeline:    pipeline,
		progress:    progress,
		countries:   countries,
		concurrency: cfg.Importer.CountryConcurrency,
		batchDelay:  cfg.Importer.CountryBatchDelay,
		logger:      logger,
	}
}

// Run импортирует все незавершенные страны каталога.
// Сбой одной страны не влияет на остальные.
func (r *Runner) Run(ctx context.Context) (*RunSummary, error) {
	pending, err := r.pendingCountries(ctx)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Starting multi-country import",
		zap.Int("catalogue", len(r.countries)),
		zap.Int("pending", len(pending)),
		zap.Int("concurrency", r.concurrency))

	summary := &RunSummary{}
	var mu sync.Mutex

	for start := 0; start < len(pending); start += r.concurrency {
		if start > 0 {
			select {
			case <-time.After(r.batchDelay):
			case <-ctx.Done():
				return summary, ctx.Err()
			}
		}

		end := start + r.concurrency
		if end > len(pending) {
			end = len(pending)
		}

		var wg sync.WaitGroup
		for _, iso3 := range pending[start:end] {
			wg.Add(1)
			go func(iso3 string) {
				defer wg.Done()

				result, err := r.pipeline.ImportCountry(ctx, iso3)

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err != nil:
					summary.Failed++
				case result.Errors > 0:
					summary.WithErrors++
				default:
					summary.Succeeded++
				}
			}(iso3)
		}
		wg.Wait()
	}

	r.logger.Info("Multi-country import finished",
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("with_errors", summary.WithErrors))

	return summary, nil
}

// pendingCountries возвращает каталог за вычетом уже завершенных стран
func (r *Runner) pendingCountries(ctx context.Context) ([]string, error) {
	completed, err := r.progress.ListCompleted(ctx, r.countries)
	if err != nil {
		return nil, err
	}

	done := make(map[string]struct{}, len(completed))
	for _, iso3 := range completed {
		done[iso3] = struct{}{}
	}

	pending := make([]string, 0, len(r.countries))
	for _, iso3 := range r.countries {
		if _, ok := done[iso3]; !ok {
			pending = append(pending, iso3)
		}
	}
	return pending, nil
}
