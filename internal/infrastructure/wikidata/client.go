// Package wikidata реализует батчевый клиент wbgetentities для вытягивания
// категорий Wikimedia Commons (свойство P373).
//
// Идентификаторы вида Q<digits> передаются с префиксом "Q" на всех этапах:
// отбрасывание префикса - запрещённый паттерн.
package wikidata

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/boundary-importer/internal/config"
	"github.com/boundary-importer/internal/domain/repository"
	"github.com/boundary-importer/internal/infrastructure/httpclient"
)

// commonsCategoryProperty - свойство Wikidata "Commons category"
const commonsCategoryProperty = "P373"

type entitiesResponse struct {
	Entities map[string]entity `json:"entities"`
}

type entity struct {
	Missing bool               `json:"missing"`
	Claims  map[string][]claim `json:"claims"`
}

type claim struct {
	Mainsnak struct {
		Datavalue struct {
			Value string `json:"value"`
		} `json:"datavalue"`
	} `json:"mainsnak"`
}

type client struct {
	http       *httpclient.Client
	baseURL    string
	batchSize  int
	batchDelay time.Duration
	logger     *zap.Logger
}

// NewClient создает новый клиент Wikidata API
func NewClient(cfg *config.WikidataConfig, userAgent string, logger *zap.Logger) repository.WikidataRepository {
	return &client{
		http:       httpclient.New(cfg.RequestTimeout, cfg.MaxAttempts, cfg.RetryBaseDelay, userAgent),
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		batchSize:  cfg.BatchSize,
		batchDelay: cfg.BatchDelay,
		logger:     logger,
	}
}

// FetchCommonsCategories возвращает частичную карту id -> категория Commons.
// Сбой целого батча (транспорт, не-2xx после повторов, битый JSON) логируется
// и трактуется как пустой результат батча: частичное обогащение ценно,
// недоступность Wikidata не должна валить импорт страны.
func (c *client) FetchCommonsCategories(ctx context.Context, ids []string) (map[string]string, error) {
	unique := dedupe(ids)
	categories := make(map[string]string, len(unique))

	for start := 0; start < len(unique); start += c.batchSize {
		if start > 0 {
			select {
			case <-ctx.Done():
				return categories, ctx.Err()
			case <-time.After(c.batchDelay):
			}
		}

		end := start + c.batchSize
		if end > len(unique) {
			end = len(unique)
		}
		batch := unique[start:end]
		batchNum := start/c.batchSize + 1

		resp, err := c.fetchBatch(ctx, batch)
		if err != nil {
			c.logger.Warn("Wikidata batch failed, continuing without it",
				zap.Int("batch", batchNum),
				zap.Int("batch_size", len(batch)),
				zap.Error(err))
			continue
		}

		for id, ent := range resp.Entities {
			if ent.Missing {
				continue
			}
			claims, ok := ent.Claims[commonsCategoryProperty]
			if !ok || len(claims) == 0 {
				continue
			}
			if value := claims[0].Mainsnak.Datavalue.Value; value != "" {
				categories[id] = value
			}
		}
	}

	return categories, nil
}

func (c *client) fetchBatch(ctx context.Context, ids []string) (*entitiesResponse, error) {
	params := url.Values{}
	params.Set("action", "wbgetentities")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("ids", strings.Join(ids, "|"))
	params.Set("props", "claims")

	requestURL := fmt.Sprintf("%s/w/api.php?%s", c.baseURL, params.Encode())

	var resp entitiesResponse
	if err := c.http.GetJSON(ctx, requestURL, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// dedupe убирает дубликаты, сохраняя порядок первого вхождения и префикс "Q"
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
