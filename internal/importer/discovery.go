package importer

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/boundary-importer/internal/domain/repository"
)

// Discoverer обходит иерархию административных уровней страны
// и собирает множество relation id на каждом уровне
type Discoverer struct {
	overpass repository.OverpassRepository
	logger   *zap.Logger
}

// NewDiscoverer создает новый Discoverer
func NewDiscoverer(overpass repository.OverpassRepository, logger *zap.Logger) *Discoverer {
	return &Discoverer{
		overpass: overpass,
		logger:   logger,
	}
}

// DiscoverLevels возвращает карту уровень -> уникальные relation id.
//
// Уровни обходятся по возрастанию. Пока родительское множество пусто,
// очередной уровень зондируется корневым запросом по ISO3-тегу; дальше
// каждый relation предыдущего непустого уровня служит областью поиска
// детей. Пустой уровень пропускается, родительское множество сохраняется.
// Если ни один уровень не дал relations, страна признается нежизнеспособной.
func (d *Discoverer) DiscoverLevels(ctx context.Context, iso3 string, minLevel, maxLevel int) (map[int][]int64, error) {
	result := make(map[int][]int64)
	var parents []int64

	for level := minLevel; level <= maxLevel; level++ {
		ids, err := d.discoverLevel(ctx, iso3, level, parents)
		if err != nil {
			return nil, fmt.Errorf("discovery at level %d: %w", level, err)
		}

		if len(ids) == 0 {
			d.logger.Debug("No relations at level, keeping parent set",
				zap.String("country", iso3),
				zap.Int("level", level))
			continue
		}

		d.logger.Info("Discovered relations",
			zap.String("country", iso3),
			zap.Int("level", level),
			zap.Int("count", len(ids)))

		result[level] = ids
		parents = ids
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("no relations found for %s in levels %d-%d", iso3, minLevel, maxLevel)
	}

	return result, nil
}

func (d *Discoverer) discoverLevel(ctx context.Context, iso3 string, level int, parents []int64) ([]int64, error) {
	if len(parents) == 0 {
		return d.overpass.FetchCountryRelationIDs(ctx, iso3, level)
	}

	// один и тот же ребенок может вернуться от нескольких родителей
	// на сухопутных границах, поэтому собираем в множество
	seen := make(map[int64]struct{})
	for _, parentID := range parents {
		childIDs, err := d.overpass.FetchChildRelationIDs(ctx, parentID, level)
		if err != nil {
			return nil, err
		}
		for _, id := range childIDs {
			seen[id] = struct{}{}
		}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids, nil
}
