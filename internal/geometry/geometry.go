package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// BuildGeometry собирает полигон из outer- и inner-фрагментов relation.
//
// Outer-фрагменты сшиваются во внешние кольца, inner - в дыры. Дыра
// прикрепляется к первому по порядку обхода внешнему кольцу, содержащему её
// первую точку (ray casting); дыра без содержащего кольца отбрасывается,
// их число возвращается вторым значением. Одно внешнее кольцо даёт Polygon,
// несколько - MultiPolygon. Без внешних колец возвращается nil.
func BuildGeometry(outers, inners [][]orb.Point) (orb.Geometry, int) {
	outerRings := MergeRings(outers)
	innerRings := MergeRings(inners)

	if len(outerRings) == 0 {
		return nil, len(innerRings)
	}

	polygons := make([]orb.Polygon, len(outerRings))
	for i, ring := range outerRings {
		polygons[i] = orb.Polygon{ring}
	}

	droppedInners := 0
	for _, hole := range innerRings {
		attached := false
		for i, outer := range outerRings {
			if planar.RingContains(outer, hole[0]) {
				polygons[i] = append(polygons[i], hole)
				attached = true
				break
			}
		}
		if !attached {
			droppedInners++
		}
	}

	for i := range polygons {
		for j := range polygons[i] {
			ring := SimplifyRing(polygons[i][j])
			polygons[i][j] = LimitRingPoints(ring, MaxRingPoints)
		}
	}

	if len(polygons) == 1 {
		return polygons[0], droppedInners
	}
	return orb.MultiPolygon(polygons), droppedInners
}
