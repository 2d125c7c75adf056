package repository

import "context"

// WikidataRepository определяет методы для работы с Wikidata API
type WikidataRepository interface {
	// FetchCommonsCategories возвращает частичную карту id -> категория Commons (P373).
	// Идентификаторы передаются и возвращаются с префиксом "Q".
	// Сбой отдельного батча не является ошибкой: такие id просто отсутствуют в карте.
	FetchCommonsCategories(ctx context.Context, ids []string) (map[string]string, error)
}
