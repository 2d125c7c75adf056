// Package geometry собирает неупорядоченные фрагменты OSM way в замкнутые
// кольца полигонов, сопоставляет дыры внешним кольцам и сериализует результат
// в EWKT для PostGIS.
package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// CoordinateEpsilon - абсолютный допуск сравнения координат при сшивке колец
const CoordinateEpsilon = 1e-7

// pointsEqual сравнивает точки с допуском CoordinateEpsilon
func pointsEqual(a, b orb.Point) bool {
	return math.Abs(a[0]-b[0]) <= CoordinateEpsilon && math.Abs(a[1]-b[1]) <= CoordinateEpsilon
}

// MergeRings сшивает фрагменты (возможно развёрнутые задом наперёд)
// в замкнутые кольца. Кольцо растёт с хвоста, затем с головы, пока находится
// неиспользованный фрагмент с совпадающим концом. Компоненты короче трёх точек
// до замыкания отбрасываются. Каждое выданное кольцо замкнуто явно.
func MergeRings(fragments [][]orb.Point) []orb.Ring {
	used := make([]bool, len(fragments))
	var rings []orb.Ring

	for seed := range fragments {
		if used[seed] || len(fragments[seed]) == 0 {
			continue
		}
		used[seed] = true
		ring := append([]orb.Point(nil), fragments[seed]...)

		for {
			if extendTail(&ring, fragments, used) {
				continue
			}
			if extendHead(&ring, fragments, used) {
				continue
			}
			break
		}

		if len(ring) < 3 {
			continue
		}
		if !pointsEqual(ring[0], ring[len(ring)-1]) {
			ring = append(ring, ring[0])
		}
		rings = append(rings, orb.Ring(ring))
	}

	return rings
}

// extendTail пришивает к хвосту кольца фрагмент, начинающийся или
// заканчивающийся в текущей хвостовой точке
func extendTail(ring *[]orb.Point, fragments [][]orb.Point, used []bool) bool {
	tail := (*ring)[len(*ring)-1]
	for i, frag := range fragments {
		if used[i] || len(frag) == 0 {
			continue
		}
		if pointsEqual(frag[0], tail) {
			*ring = append(*ring, frag[1:]...)
			used[i] = true
			return true
		}
		if pointsEqual(frag[len(frag)-1], tail) {
			for j := len(frag) - 2; j >= 0; j-- {
				*ring = append(*ring, frag[j])
			}
			used[i] = true
			return true
		}
	}
	return false
}

// extendHead пришивает фрагмент к голове кольца (прямо или развёрнуто)
func extendHead(ring *[]orb.Point, fragments [][]orb.Point, used []bool) bool {
	head := (*ring)[0]
	for i, frag := range fragments {
		if used[i] || len(frag) == 0 {
			continue
		}
		if pointsEqual(frag[len(frag)-1], head) {
			*ring = append(append([]orb.Point(nil), frag[:len(frag)-1]...), *ring...)
			used[i] = true
			return true
		}
		if pointsEqual(frag[0], head) {
			prefix := make([]orb.Point, 0, len(frag)-1)
			for j := len(frag) - 1; j >= 1; j-- {
				prefix = append(prefix, frag[j])
			}
			*ring = append(prefix, *ring...)
			used[i] = true
			return true
		}
	}
	return false
}
