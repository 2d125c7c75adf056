package importer

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/boundary-importer/internal/config"
	"github.com/boundary-importer/internal/domain"
	"github.com/boundary-importer/internal/domain/repository"
)

// ImportResult - итог импорта одной страны
type ImportResult struct {
	CountryCode      string
	RelationsFetched int
	Inserted         int
	Errors           int
}

// Pipeline - импорт одной страны: обнаружение уровней, сборка геометрии,
// сохранение сырых строк, обогащение категориями Commons и батчевый апсерт
type Pipeline struct {
	discoverer *Discoverer
	assembler  *Assembler
	wikidata   repository.WikidataRepository
	raw        repository.RawRelationRepository
	enriched   repository.EnrichedBoundaryRepository
	progress   repository.ImportProgressRepository
	verifier   *Verifier
	minLevel   int
	maxLevel   int
	logger     *zap.Logger
}

// NewPipeline создает новый Pipeline
func NewPipeline(
	cfg *config.Config,
	overpass repository.OverpassRepository,
	wikidata repository.WikidataRepository,
	raw repository.RawRelationRepository,
	enriched repository.EnrichedBoundaryRepository,
	progress repository.ImportProgressRepository,
	stats repository.ImportStatsRepository,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		discoverer: NewDiscoverer(overpass, logger),
		assembler: NewAssembler(
			overpass,
			cfg.Overpass.GeometryBatchSize,
			cfg.Overpass.GeometryBatchDelay,
			logger,
		),
		wikidata: wikidata,
		raw:      raw,
		enriched: enriched,
		progress: progress,
		verifier: NewVerifier(stats, logger),
		minLevel: cfg.Importer.MinAdminLevel,
		maxLevel: cfg.Importer.MaxAdminLevel,
		logger:   logger,
	}
}

// ImportCountry выполняет полный импорт страны. Ошибка означает, что страна
// переведена в failed; частично сохраненные сырые уровни не откатываются.
func (p *Pipeline) ImportCountry(ctx context.Context, iso3 string) (*ImportResult, error) {
	log := p.logger.With(
		zap.String("country", iso3),
		zap.String("run_id", uuid.New().String()),
	)
	log.Info("Starting country import",
		zap.Int("min_level", p.minLevel),
		zap.Int("max_level", p.maxLevel))

	if err := p.progress.Start(ctx, iso3, p.minLevel); err != nil {
		return nil, fmt.Errorf("failed to start progress: %w", err)
	}

	result := &ImportResult{CountryCode: iso3}

	levels, err := p.discoverer.DiscoverLevels(ctx, iso3, p.minLevel, p.maxLevel)
	if err != nil {
		return nil, p.fail(ctx, log, iso3, err)
	}

	if err := p.persistLevels(ctx, log, iso3, levels, result); err != nil {
		return nil, p.fail(ctx, log, iso3, err)
	}

	relations, err := p.raw.ListByCountry(ctx, iso3)
	if err != nil {
		return nil, p.fail(ctx, log, iso3, err)
	}

	categories, err := p.fetchCategories(ctx, relations)
	if err != nil {
		return nil, p.fail(ctx, log, iso3, err)
	}

	records, stats := Transform(relations, categories)
	log.Info("Transform finished",
		zap.Int("accepted", stats.Accepted),
		zap.Int("missing_wikidata", stats.MissingWikidata),
		zap.Int("missing_category", stats.MissingCategory),
		zap.Int("invalid_geometry", stats.InvalidGeometry),
		zap.Int("duplicates", stats.Duplicates))

	persisted, err := p.enriched.UpsertBatch(ctx, records)
	if err != nil {
		return nil, p.fail(ctx, log, iso3, err)
	}
	result.Inserted = persisted.Inserted
	result.Errors = len(persisted.Errors) + stats.InvalidGeometry

	for i, recErr := range persisted.Errors {
		if i >= 10 {
			log.Warn("More row errors omitted", zap.Int("total", len(persisted.Errors)))
			break
		}
		log.Warn("Row upsert failed",
			zap.String("record", recErr.RecordName),
			zap.String("error", recErr.Error))
	}

	p.verifier.Report(ctx, iso3)

	if err := p.progress.MarkCompleted(ctx, iso3, result.Errors); err != nil {
		return nil, fmt.Errorf("failed to mark progress completed: %w", err)
	}

	log.Info("Country import completed",
		zap.Int("relations_fetched", result.RelationsFetched),
		zap.Int("inserted", result.Inserted),
		zap.Int("errors", result.Errors))

	return result, nil
}

// persistLevels собирает геометрию и сохраняет сырые строки уровень за уровнем.
// Уровень L полностью сохранен до начала загрузки уровня L+1.
func (p *Pipeline) persistLevels(ctx context.Context, log *zap.Logger, iso3 string, levels map[int][]int64, result *ImportResult) error {
	ordered := make([]int, 0, len(levels))
	for level := range levels {
		ordered = append(ordered, level)
	}
	sort.Ints(ordered)

	for _, level := range ordered {
		rows, err := p.assembler.FetchLevel(ctx, iso3, level, levels[level])
		if err != nil {
			return err
		}

		n, err := p.raw.UpsertBatch(ctx, rows)
		if err != nil {
			return fmt.Errorf("failed to persist raw relations at level %d: %w", level, err)
		}
		result.RelationsFetched += n

		if err := p.progress.UpdateLevel(ctx, iso3, level, n); err != nil {
			return fmt.Errorf("failed to update progress at level %d: %w", level, err)
		}

		log.Info("Level persisted",
			zap.Int("level", level),
			zap.Int("rows", n))
	}

	return nil
}

func (p *Pipeline) fetchCategories(ctx context.Context, relations []*domain.RawRelation) (map[string]string, error) {
	ids := make([]string, 0, len(relations))
	for _, rel := range relations {
		if rel.WikidataID != nil {
			ids = append(ids, *rel.WikidataID)
		}
	}
	return p.wikidata.FetchCommonsCategories(ctx, ids)
}

// fail переводит страну в failed и возвращает исходную ошибку
func (p *Pipeline) fail(ctx context.Context, log *zap.Logger, iso3 string, cause error) error {
	log.Error("Country import failed", zap.Error(cause))
	if err := p.progress.MarkFailed(ctx, iso3, cause.Error()); err != nil {
		log.Error("Failed to mark progress failed", zap.Error(err))
	}
	return cause
}
