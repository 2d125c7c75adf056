package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// MaxRingPoints - верхняя граница числа точек в выдаваемом кольце;
// страхует от строк-переростков в хранилище
const MaxRingPoints = 500

// SimplifyRing удаляет коллинеарные внутренние точки кольца.
// Точка выбрасывается, если векторное произведение соседних рёбер
// не превышает CoordinateEpsilon. Первая и последняя точки сохраняются.
func SimplifyRing(ring orb.Ring) orb.Ring {
	if len(ring) <= 4 {
		return ring
	}

	out := make(orb.Ring, 0, len(ring))
	out = append(out, ring[0])

	for i := 1; i < len(ring)-1; i++ {
		prev := out[len(out)-1]
		cur := ring[i]
		next := ring[i+1]

		cross := (cur[0]-prev[0])*(next[1]-prev[1]) - (cur[1]-prev[1])*(next[0]-prev[0])
		if math.Abs(cross) > CoordinateEpsilon {
			out = append(out, cur)
		}
	}

	out = append(out, ring[len(ring)-1])
	return out
}

// LimitRingPoints прореживает кольцо равномерной выборкой до максимум max
// точек: при n > max берётся каждая ceil(n/max)-я точка, последняя точка
// сохраняется всегда, чтобы кольцо осталось замкнутым.
func LimitRingPoints(ring orb.Ring, max int) orb.Ring {
	n := len(ring)
	if n <= max {
		return ring
	}

	step := int(math.Ceil(float64(n) / float64(max)))
	out := make(orb.Ring, 0, n/step+2)
	for i := 0; i < n; i += step {
		out = append(out, ring[i])
	}
	if !pointsEqual(out[len(out)-1], ring[n-1]) {
		out = append(out, ring[n-1])
	}
	return out
}
