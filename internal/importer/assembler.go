package importer

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/boundary-importer/internal/domain"
	"github.com/boundary-importer/internal/domain/repository"
	"github.com/boundary-importer/internal/geometry"
)

// Assembler запрашивает геометрию relations батчами и собирает
// из way-фрагментов готовые строки сырой таблицы
type Assembler struct {
	overpass   repository.OverpassRepository
	batchSize  int
	batchDelay time.Duration
	logger     *zap.Logger
}

// NewAssembler создает новый Assembler
func NewAssembler(overpass repository.OverpassRepository, batchSize int, batchDelay time.Duration, logger *zap.Logger) *Assembler {
	return &Assembler{
		overpass:   overpass,
		batchSize:  batchSize,
		batchDelay: batchDelay,
		logger:     logger,
	}
}

// FetchLevel загружает геометрию relations одного уровня.
// Сбой любого батча прерывает уровень: частично собранный уровень
// не должен сохраняться как полный.
func (a *Assembler) FetchLevel(ctx context.Context, countryCode string, level int, ids []int64) ([]*domain.RawRelation, error) {
	relations := make([]*domain.RawRelation, 0, len(ids))

	for start := 0; start < len(ids); start += a.batchSize {
		if start > 0 {
			select {
			case <-time.After(a.batchDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		end := start + a.batchSize
		if end > len(ids) {
			end = len(ids)
		}

		batch, err := a.overpass.FetchGeometry(ctx, ids[start:end])
		if err != nil {
			return nil, fmt.Errorf("geometry batch %d-%d at level %d: %w", start, end, level, err)
		}

		relations = append(relations, a.parseBatch(batch, countryCode)...)
	}

	return relations, nil
}

// parseBatch превращает ответ geometry-запроса в строки сырой таблицы.
// Relations без name или admin_level отбрасываются целиком.
func (a *Assembler) parseBatch(batch *domain.OSMGeometryBatch, countryCode string) []*domain.RawRelation {
	now := time.Now().UTC()
	rows := make([]*domain.RawRelation, 0, len(batch.Relations))

	for _, rel := range batch.Relations {
		name := rel.Tags["name"]
		adminLevel, err := strconv.Atoi(rel.Tags["admin_level"])
		if name == "" || err != nil {
			a.logger.Debug("Skipping relation without name or admin_level",
				zap.Int64("relation_id", rel.ID))
			continue
		}

		row := &domain.RawRelation{
			RelationID:  rel.ID,
			CountryCode: countryCode,
			AdminLevel:  adminLevel,
			Name:        name,
			Geometry:    a.assembleGeometry(rel, batch.Ways),
			Tags:        rel.Tags,
			FetchedAt:   now,
		}

		if wd := rel.Tags["wikidata"]; domain.WikidataIDPattern.MatchString(wd) {
			row.WikidataID = &wd
		}

		rows = append(rows, row)
	}

	return rows
}

// assembleGeometry сшивает way-члены relation в полигон и сериализует в EWKT.
// Строка без единого внешнего кольца получает вырожденный плейсхолдер,
// который позже отбракует трансформация.
func (a *Assembler) assembleGeometry(rel *domain.OSMRelation, ways map[int64]*domain.OSMWay) string {
	var outers, inners [][]orb.Point

	for _, member := range rel.Members {
		if member.Type != "way" {
			continue
		}
		way, ok := ways[member.Ref]
		if !ok || len(way.Points) == 0 {
			continue
		}

		points := make([]orb.Point, len(way.Points))
		for i, p := range way.Points {
			points[i] = orb.Point{p.Lon, p.Lat}
		}

		switch member.Role {
		case "inner":
			inners = append(inners, points)
		default:
			// пустая роль трактуется как outer
			outers = append(outers, points)
		}
	}

	geom, droppedInners := geometry.BuildGeometry(outers, inners)
	if droppedInners > 0 {
		a.logger.Warn("Dropped inner rings without containing outer",
			zap.Int64("relation_id", rel.ID),
			zap.Int("dropped", droppedInners))
	}
	if geom == nil {
		a.logger.Warn("Relation has no buildable outer ring",
			zap.Int64("relation_id", rel.ID))
		return geometry.PlaceholderGeometry
	}

	return geometry.EncodeEWKT(geom)
}
