package importer

import (
	"context"

	"go.uber.org/zap"

	"github.com/boundary-importer/internal/domain/repository"
)

// Verifier печатает сводку по стране после импорта: счетчики по уровням,
// совпадения wikidata, пустые поля и невалидные геометрии
type Verifier struct {
	stats  repository.ImportStatsRepository
	logger *zap.Logger
}

// NewVerifier создает новый Verifier
func NewVerifier(stats repository.ImportStatsRepository, logger *zap.Logger) *Verifier {
	return &Verifier{
		stats:  stats,
		logger: logger,
	}
}

// Report собирает и логирует сводку. Сбой отдельной проверки
// не прерывает импорт, страна к этому моменту уже сохранена.
func (v *Verifier) Report(ctx context.Context, countryCode string) {
	log := v.logger.With(zap.String("country", countryCode))

	if byLevel, err := v.stats.CountRawByLevel(ctx, countryCode); err != nil {
		log.Warn("Failed to count raw relations by level", zap.Error(err))
	} else {
		for level, count := range byLevel {
			log.Info("Raw relations at level",
				zap.Int("level", level),
				zap.Int("count", count))
		}
	}

	if matches, err := v.stats.CountWikidataMatches(ctx, countryCode); err != nil {
		log.Warn("Failed to count wikidata matches", zap.Error(err))
	} else {
		log.Info("Enriched rows matching raw wikidata ids", zap.Int("count", matches))
	}

	if nulls, err := v.stats.CountNullFields(ctx); err != nil {
		log.Warn("Failed to count null fields", zap.Error(err))
	} else if nulls > 0 {
		log.Warn("Enriched rows with null fields", zap.Int("count", nulls))
	}

	if invalid, err := v.stats.CountInvalidGeometries(ctx); err != nil {
		log.Warn("Failed to count invalid geometries", zap.Error(err))
	} else if invalid > 0 {
		log.Warn("Enriched rows with invalid geometry", zap.Int("count", invalid))
	}
}
