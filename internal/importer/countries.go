package importer

// DefaultCountries - каталог стран для мультистранового режима (ISO3).
// Переопределяется переменной окружения IMPORT_COUNTRIES.
var DefaultCountries = []string{
	"ALB", "AND", "AUT", "BEL", "BGR", "BIH", "BLR", "CHE", "CYP", "CZE",
	"DEU", "DNK", "ESP", "EST", "FIN", "FRA", "GBR", "GRC", "HRV", "HUN",
	"IRL", "ISL", "ITA", "KOS", "LIE", "LTU", "LUX", "LVA", "MCO", "MDA",
	"MKD", "MLT", "MNE", "NLD", "NOR", "POL", "PRT", "ROU", "SMR", "SRB",
	"SVK", "SVN", "SWE", "UKR", "VAT", "XKX",
}
