package domain

// OSMPoint - координата узла в WGS84
type OSMPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// OSMWay - упорядоченный список точек; фрагмент границы
type OSMWay struct {
	ID     int64
	Points []OSMPoint
}

// OSMMember - член relation с ролью outer/inner (пустая роль трактуется как outer)
type OSMMember struct {
	Type string
	Ref  int64
	Role string
}

// OSMRelation - relation с тегами и членами-фрагментами
type OSMRelation struct {
	ID      int64
	Tags    map[string]string
	Members []OSMMember
}

// OSMGeometryBatch - ответ geometry-запроса: relations вперемешку с ways,
// проиндексированными по id
type OSMGeometryBatch struct {
	Relations []*OSMRelation
	Ways      map[int64]*OSMWay
}
