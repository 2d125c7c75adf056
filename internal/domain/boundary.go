package domain

import (
	"regexp"
	"time"
)

// WikidataIDPattern - канонический формат идентификатора Wikidata.
// Префикс "Q" является частью идентификатора и нигде не отбрасывается.
var WikidataIDPattern = regexp.MustCompile(`^Q[0-9]+$`)

// RawRelation - сырая OSM-связь (relation) с boundary=administrative,
// обнаруженная для страны. Одна строка на (relation_id, country_code).
type RawRelation struct {
	ID          int64             `json:"id" db:"id"`
	RelationID  int64             `json:"relation_id" db:"relation_id"`
	CountryCode string            `json:"country_code" db:"country_code"`
	AdminLevel  int               `json:"admin_level" db:"admin_level"`
	Name        string            `json:"name" db:"name"`
	WikidataID  *string           `json:"wikidata_id,omitempty" db:"wikidata_id"`
	Geometry    string            `json:"-" db:"geometry"` // EWKT, SRID 4326
	Tags        map[string]string `json:"tags,omitempty" db:"tags"`
	FetchedAt   time.Time         `json:"fetched_at" db:"fetched_at"`
}

// EnrichedBoundary - консьюмерская проекция: граница с категорией
// Wikimedia Commons, ключ wikidata_id уникален.
type EnrichedBoundary struct {
	ID              int64     `json:"id" db:"id"`
	WikidataID      string    `json:"wikidata_id" db:"wikidata_id"`
	CommonsCategory string    `json:"commons_category" db:"commons_category"`
	AdminLevel      int       `json:"admin_level" db:"admin_level"`
	Name            string    `json:"name" db:"name"`
	Geom            string    `json:"-" db:"geom"` // EWKT, SRID 4326
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// RecordError - ошибка вставки отдельной записи при батчевом апсерте
type RecordError struct {
	RecordName string `json:"record_name"`
	Error      string `json:"error"`
}

// PersistResult - агрегированный результат батчевого апсерта
type PersistResult struct {
	Inserted int           `json:"inserted"`
	Errors   []RecordError `json:"errors,omitempty"`
}
