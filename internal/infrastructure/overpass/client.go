// Package overpass реализует клиент read-only эндпоинта запросов OpenStreetMap.
package overpass

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/boundary-importer/internal/config"
	"github.com/boundary-importer/internal/domain"
	"github.com/boundary-importer/internal/domain/repository"
	"github.com/boundary-importer/internal/infrastructure/httpclient"
)

// response - сырой JSON-ответ интерпретатора Overpass
type response struct {
	Elements []element `json:"elements"`
}

type element struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Tags     map[string]string `json:"tags"`
	Members  []member          `json:"members"`
	Geometry []point           `json:"geometry"`
}

type member struct {
	Type string `json:"type"`
	Ref  int64  `json:"ref"`
	Role string `json:"role"`
}

type point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type client struct {
	http    *httpclient.Client
	url     string
	queries *QueryBuilder
	logger  *zap.Logger
}

// NewClient создает новый клиент Overpass API
func NewClient(cfg *config.OverpassConfig, userAgent string, logger *zap.Logger) repository.OverpassRepository {
	return &client{
		http:    httpclient.New(cfg.RequestTimeout, cfg.MaxAttempts, cfg.RetryBaseDelay, userAgent),
		url:     cfg.URL,
		queries: NewQueryBuilder(cfg.QueryTimeout),
		logger:  logger,
	}
}

// FetchCountryRelationIDs возвращает id корневых relations страны на уровне level
func (c *client) FetchCountryRelationIDs(ctx context.Context, iso3 string, level int) ([]int64, error) {
	query := c.queries.CountryRoot(iso3, level)

	c.logger.Debug("Executing country root query",
		zap.String("country", iso3),
		zap.Int("admin_level", level))

	var resp response
	if err := c.http.PostText(ctx, c.url, query, &resp); err != nil {
		return nil, fmt.Errorf("country root query failed: %w", err)
	}

	return relationIDs(&resp), nil
}

// FetchChildRelationIDs возвращает id relations уровня level внутри area родителя
func (c *client) FetchChildRelationIDs(ctx context.Context, parentID int64, level int) ([]int64, error) {
	query := c.queries.ChildrenOf(parentID, level)

	var resp response
	if err := c.http.PostText(ctx, c.url, query, &resp); err != nil {
		return nil, fmt.Errorf("children query failed for relation %d: %w", parentID, err)
	}

	return relationIDs(&resp), nil
}

// FetchGeometry возвращает relations и их way-члены с полной геометрией
func (c *client) FetchGeometry(ctx context.Context, ids []int64) (*domain.OSMGeometryBatch, error) {
	if len(ids) == 0 {
		return &domain.OSMGeometryBatch{Ways: map[int64]*domain.OSMWay{}}, nil
	}

	query := c.queries.Geometry(ids)

	c.logger.Debug("Executing geometry query", zap.Int("relation_count", len(ids)))

	var resp response
	if err := c.http.PostText(ctx, c.url, query, &resp); err != nil {
		return nil, fmt.Errorf("geometry query failed: %w", err)
	}

	return toGeometryBatch(&resp), nil
}

// relationIDs извлекает id элементов типа relation
func relationIDs(resp *response) []int64 {
	var ids []int64
	for _, el := range resp.Elements {
		if el.Type == "relation" {
			ids = append(ids, el.ID)
		}
	}
	return ids
}

// toGeometryBatch индексирует ways по id и собирает relations с членами
func toGeometryBatch(resp *response) *domain.OSMGeometryBatch {
	batch := &domain.OSMGeometryBatch{
		Ways: make(map[int64]*domain.OSMWay),
	}

	for _, el := range resp.Elements {
		switch el.Type {
		case "way":
			way := &domain.OSMWay{ID: el.ID, Points: make([]domain.OSMPoint, len(el.Geometry))}
			for i, p := range el.Geometry {
				way.Points[i] = domain.OSMPoint{Lat: p.Lat, Lon: p.Lon}
			}
			batch.Ways[el.ID] = way

		case "relation":
			rel := &domain.OSMRelation{
				ID:      el.ID,
				Tags:    el.Tags,
				Members: make([]domain.OSMMember, len(el.Members)),
			}
			for i, m := range el.Members {
				rel.Members[i] = domain.OSMMember{Type: m.Type, Ref: m.Ref, Role: m.Role}
			}
			batch.Relations = append(batch.Relations, rel)
		}
	}

	return batch
}
