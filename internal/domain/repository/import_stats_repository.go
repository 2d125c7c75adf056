package repository

import "context"

// ImportStatsRepository - агрегатные запросы верификатора импорта
type ImportStatsRepository interface {
	// CountRawByLevel возвращает число сырых relations страны по уровням
	CountRawByLevel(ctx context.Context, countryCode string) (map[int]int, error)

	// CountWikidataMatches возвращает число обогащённых строк,
	// чей wikidata_id встречается в сырой таблице этой страны
	CountWikidataMatches(ctx context.Context, countryCode string) (int, error)

	// CountNullFields возвращает число обогащённых строк с пустыми полями
	CountNullFields(ctx context.Context) (int, error)

	// CountInvalidGeometries возвращает число обогащённых строк с невалидной геометрией
	CountInvalidGeometries(ctx context.Context) (int, error)
}
