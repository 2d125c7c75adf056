package geometry

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// SRIDPrefix - префикс EWKT для WGS84
const SRIDPrefix = "SRID=4326;"

// PlaceholderGeometry - вырожденная геометрия для строк, у которых не удалось
// собрать ни одного внешнего кольца. Отбраковывается проверкой ValidateEWKT
// на этапе трансформации.
const PlaceholderGeometry = SRIDPrefix + "POLYGON EMPTY"

// EncodeEWKT сериализует геометрию в EWKT с SRID 4326
func EncodeEWKT(g orb.Geometry) string {
	return SRIDPrefix + wkt.MarshalString(g)
}

// ValidateEWKT проверяет, что текст геометрии пригоден для обогащённой таблицы:
// префикс SRID, заголовок POLYGON/MULTIPOLYGON и хотя бы одно замкнутое кольцо
// из >= 4 точек.
func ValidateEWKT(s string) error {
	if !strings.HasPrefix(s, SRIDPrefix) {
		return fmt.Errorf("geometry text missing %q prefix", SRIDPrefix)
	}

	body := strings.TrimPrefix(s, SRIDPrefix)
	if !strings.HasPrefix(body, "POLYGON") && !strings.HasPrefix(body, "MULTIPOLYGON") {
		return fmt.Errorf("unsupported geometry type in %q", truncate(body, 32))
	}

	g, err := wkt.Unmarshal(body)
	if err != nil {
		return fmt.Errorf("failed to parse geometry text: %w", err)
	}

	switch geom := g.(type) {
	case orb.Polygon:
		if hasClosedRing(geom) {
			return nil
		}
	case orb.MultiPolygon:
		for _, poly := range geom {
			if hasClosedRing(poly) {
				return nil
			}
		}
	default:
		return fmt.Errorf("unexpected geometry type %T", g)
	}

	return fmt.Errorf("geometry has no closed ring with at least 4 points")
}

func hasClosedRing(poly orb.Polygon) bool {
	for _, ring := range poly {
		if len(ring) >= 4 && pointsEqual(ring[0], ring[len(ring)-1]) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
