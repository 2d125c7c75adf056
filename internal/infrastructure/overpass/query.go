package overpass

import (
	"fmt"
	"strconv"
	"strings"
)

// AreaIDOffset - преобразование relation id в area id языка запросов Overpass
const AreaIDOffset int64 = 3_600_000_000

// QueryBuilder собирает запросы Overpass QL с общим таймаутом
type QueryBuilder struct {
	timeout int // секунды
}

// NewQueryBuilder создает новый QueryBuilder
func NewQueryBuilder(timeoutSec int) *QueryBuilder {
	return &QueryBuilder{timeout: timeoutSec}
}

func (b *QueryBuilder) header() string {
	return fmt.Sprintf("[out:json][timeout:%d];", b.timeout)
}

// CountryRoot - корневые relations страны: boundary=administrative
// нужного уровня с тегом ISO3166-1:alpha3. Только id, чтобы минимизировать ответ.
func (b *QueryBuilder) CountryRoot(iso3 string, level int) string {
	return b.header() + "\n" +
		fmt.Sprintf(`relation["boundary"="administrative"]["admin_level"="%d"]["ISO3166-1:alpha3"="%s"];`, level, iso3) + "\n" +
		"out ids;"
}

// ChildrenOf - дочерние relations уровня level внутри area родителя
func (b *QueryBuilder) ChildrenOf(parentID int64, level int) string {
	return b.header() + "\n" +
		fmt.Sprintf("area(%d)->.parent;", AreaIDOffset+parentID) + "\n" +
		fmt.Sprintf(`relation["boundary"="administrative"]["admin_level"="%d"](area.parent);`, level) + "\n" +
		"out ids;"
}

// Geometry - relations по списку id вместе с их way-членами и полной геометрией
func (b *QueryBuilder) Geometry(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return b.header() + "\n" +
		fmt.Sprintf("relation(id:%s);", strings.Join(parts, ",")) + "\n" +
		"(._; way(r););" + "\n" +
		"out geom;"
}
