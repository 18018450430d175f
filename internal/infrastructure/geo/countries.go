package geo

// Built-in country data: region and land borders for the jurisdictions
// most commonly seen in transaction data, plus the high-risk list.
// Every code referenced in a neighbor set has its own entry, so a
// neighbor lookup never falls through to unknown-country scoring.
// Deployments with broader coverage load a full table from file and
// swap it in via Replace.
var defaultEntries = []Entry{
	// North and Central America
	{Code: "US", Region: "North America", Neighbors: []string{"CA", "MX"}},
	{Code: "CA", Region: "North America", Neighbors: []string{"US"}},
	{Code: "MX", Region: "North America", Neighbors: []string{"US", "GT", "BZ"}},
	{Code: "GT", Region: "North America", Neighbors: []string{"MX", "BZ"}},
	{Code: "BZ", Region: "North America", Neighbors: []string{"MX", "GT"}},
	{Code: "PA", Region: "North America", Neighbors: []string{"CO"}},

	// Europe
	{Code: "GB", Region: "Europe", Neighbors: []string{"IE", "FR"}},
	{Code: "IE", Region: "Europe", Neighbors: []string{"GB"}},
	{Code: "FR", Region: "Europe", Neighbors: []string{"GB", "BE", "LU", "DE", "CH", "IT", "ES"}},
	{Code: "DE", Region: "Europe", Neighbors: []string{"FR", "NL", "BE", "LU", "CH", "AT", "PL", "DK", "CZ"}},
	{Code: "ES", Region: "Europe", Neighbors: []string{"FR", "PT"}},
	{Code: "PT", Region: "Europe", Neighbors: []string{"ES"}},
	{Code: "IT", Region: "Europe", Neighbors: []string{"FR", "CH", "AT", "SI"}},
	{Code: "NL", Region: "Europe", Neighbors: []string{"DE", "BE"}},
	{Code: "BE", Region: "Europe", Neighbors: []string{"FR", "NL", "DE", "LU"}},
	{Code: "LU", Region: "Europe", Neighbors: []string{"FR", "BE", "DE"}},
	{Code: "CH", Region: "Europe", Neighbors: []string{"FR", "DE", "IT", "AT"}},
	{Code: "AT", Region: "Europe", Neighbors: []string{"DE", "CH", "IT", "SI", "CZ", "SK", "HU"}},
	{Code: "PL", Region: "Europe", Neighbors: []string{"DE", "CZ", "SK", "UA", "BY", "LT", "RU"}},
	{Code: "CZ", Region: "Europe", Neighbors: []string{"DE", "PL", "AT", "SK"}},
	{Code: "SK", Region: "Europe", Neighbors: []string{"CZ", "PL", "AT", "HU", "UA"}},
	{Code: "HU", Region: "Europe", Neighbors: []string{"AT", "SK", "SI", "UA", "RO"}},
	{Code: "SI", Region: "Europe", Neighbors: []string{"IT", "AT", "HU"}},
	{Code: "RO", Region: "Europe", Neighbors: []string{"HU", "UA", "MD", "BG"}},
	{Code: "MD", Region: "Europe", Neighbors: []string{"RO", "UA"}},
	{Code: "BG", Region: "Europe", Neighbors: []string{"RO", "GR", "TR"}},
	{Code: "GR", Region: "Europe", Neighbors: []string{"BG", "TR"}},
	{Code: "SE", Region: "Europe", Neighbors: []string{"NO", "FI"}},
	{Code: "NO", Region: "Europe", Neighbors: []string{"SE", "FI", "RU"}},
	{Code: "DK", Region: "Europe", Neighbors: []string{"DE"}},
	{Code: "FI", Region: "Europe", Neighbors: []string{"SE", "NO", "RU"}},
	{Code: "EE", Region: "Europe", Neighbors: []string{"LV", "RU"}},
	{Code: "LV", Region: "Europe", Neighbors: []string{"EE", "LT", "BY", "RU"}},
	{Code: "LT", Region: "Europe", Neighbors: []string{"LV", "PL", "BY", "RU"}},
	{Code: "UA", Region: "Europe", Neighbors: []string{"PL", "SK", "HU", "RO", "MD", "BY", "RU"}},
	{Code: "BY", Region: "Europe", Neighbors: []string{"PL", "LT", "LV", "UA", "RU"}, HighRisk: true},
	{Code: "RU", Region: "Europe", Neighbors: []string{"NO", "FI", "EE", "LV", "LT", "PL", "BY", "UA", "GE", "KZ", "MN", "CN", "KP"}},

	// Middle East and Caucasus
	{Code: "TR", Region: "Middle East", Neighbors: []string{"GR", "BG", "GE", "AM", "IR", "IQ", "SY"}},
	{Code: "GE", Region: "Middle East", Neighbors: []string{"RU", "TR", "AM", "AZ"}},
	{Code: "AM", Region: "Middle East", Neighbors: []string{"GE", "TR", "AZ", "IR"}},
	{Code: "AZ", Region: "Middle East", Neighbors: []string{"GE", "AM", "RU", "IR"}},
	{Code: "SA", Region: "Middle East", Neighbors: []string{"IQ", "JO", "YE", "OM", "AE", "QA", "KW"}},
	{Code: "AE", Region: "Middle East", Neighbors: []string{"SA", "OM"}},
	{Code: "OM", Region: "Middle East", Neighbors: []string{"SA", "AE", "YE"}},
	{Code: "YE", Region: "Middle East", Neighbors: []string{"SA", "OM"}},
	{Code: "QA", Region: "Middle East", Neighbors: []string{"SA"}},
	{Code: "KW", Region: "Middle East", Neighbors: []string{"SA", "IQ"}},
	{Code: "IL", Region: "Middle East", Neighbors: []string{"EG", "JO", "LB", "SY"}},
	{Code: "LB", Region: "Middle East", Neighbors: []string{"SY", "IL"}},
	{Code: "JO", Region: "Middle East", Neighbors: []string{"IL", "SY", "IQ", "SA"}},
	{Code: "IQ", Region: "Middle East", Neighbors: []string{"TR", "SY", "JO", "SA", "KW", "IR"}},
	{Code: "IR", Region: "Middle East", Neighbors: []string{"IQ", "TR", "AM", "AZ", "TM", "AF", "PK"}, HighRisk: true},
	{Code: "SY", Region: "Middle East", Neighbors: []string{"TR", "IQ", "JO", "LB", "IL"}, HighRisk: true},

	// Asia
	{Code: "CN", Region: "Asia", Neighbors: []string{"RU", "MN", "KZ", "KP", "VN", "LA", "MM", "IN", "PK", "NP", "AF"}},
	{Code: "MN", Region: "Asia", Neighbors: []string{"RU", "CN"}},
	{Code: "KZ", Region: "Asia", Neighbors: []string{"RU", "CN", "TM"}},
	{Code: "TM", Region: "Asia", Neighbors: []string{"IR", "AF", "KZ"}},
	{Code: "AF", Region: "Asia", Neighbors: []string{"IR", "PK", "TM", "CN"}},
	{Code: "JP", Region: "Asia", Neighbors: []string{}},
	{Code: "KR", Region: "Asia", Neighbors: []string{"KP"}},
	{Code: "KP", Region: "Asia", Neighbors: []string{"KR", "CN", "RU"}, HighRisk: true},
	{Code: "IN", Region: "Asia", Neighbors: []string{"PK", "CN", "NP", "BD", "MM"}},
	{Code: "PK", Region: "Asia", Neighbors: []string{"IN", "IR", "AF", "CN"}},
	{Code: "NP", Region: "Asia", Neighbors: []string{"IN", "CN"}},
	{Code: "BD", Region: "Asia", Neighbors: []string{"IN", "MM"}},
	{Code: "MM", Region: "Asia", Neighbors: []string{"IN", "BD", "CN", "LA", "TH"}, HighRisk: true},
	{Code: "TH", Region: "Asia", Neighbors: []string{"MM", "LA", "KH", "MY"}},
	{Code: "LA", Region: "Asia", Neighbors: []string{"CN", "MM", "TH", "VN", "KH"}},
	{Code: "KH", Region: "Asia", Neighbors: []string{"TH", "LA", "VN"}},
	{Code: "VN", Region: "Asia", Neighbors: []string{"CN", "LA", "KH"}},
	{Code: "MY", Region: "Asia", Neighbors: []string{"TH", "SG", "ID", "BN"}},
	{Code: "BN", Region: "Asia", Neighbors: []string{"MY"}},
	{Code: "SG", Region: "Asia", Neighbors: []string{"MY"}},
	{Code: "ID", Region: "Asia", Neighbors: []string{"MY", "PG", "TL"}},
	{Code: "TL", Region: "Asia", Neighbors: []string{"ID"}},

	// Africa
	{Code: "EG", Region: "Africa", Neighbors: []string{"LY", "SD", "IL"}},
	{Code: "LY", Region: "Africa", Neighbors: []string{"EG", "SD", "TD", "NE"}},
	{Code: "ZA", Region: "Africa", Neighbors: []string{"NA", "BW", "ZW", "MZ", "SZ", "LS"}},
	{Code: "NA", Region: "Africa", Neighbors: []string{"ZA", "BW", "ZM"}},
	{Code: "BW", Region: "Africa", Neighbors: []string{"ZA", "NA", "ZW", "ZM"}},
	{Code: "MZ", Region: "Africa", Neighbors: []string{"ZA", "ZW", "SZ", "TZ", "ZM"}},
	{Code: "SZ", Region: "Africa", Neighbors: []string{"ZA", "MZ"}},
	{Code: "LS", Region: "Africa", Neighbors: []string{"ZA"}},
	{Code: "ZM", Region: "Africa", Neighbors: []string{"CD", "TZ", "MZ", "ZW", "BW", "NA"}},
	{Code: "NG", Region: "Africa", Neighbors: []string{"BJ", "NE", "TD", "CM"}},
	{Code: "BJ", Region: "Africa", Neighbors: []string{"NG", "NE"}},
	{Code: "NE", Region: "Africa", Neighbors: []string{"NG", "BJ", "TD", "LY"}},
	{Code: "TD", Region: "Africa", Neighbors: []string{"NE", "NG", "CM", "CF", "LY", "SD"}},
	{Code: "CM", Region: "Africa", Neighbors: []string{"NG", "TD", "CF"}},
	{Code: "CF", Region: "Africa", Neighbors: []string{"TD", "CM", "SD", "SS", "CD"}},
	{Code: "CD", Region: "Africa", Neighbors: []string{"CF", "SS", "UG", "TZ", "ZM"}},
	{Code: "KE", Region: "Africa", Neighbors: []string{"ET", "SO", "SS", "UG", "TZ"}},
	{Code: "ET", Region: "Africa", Neighbors: []string{"ER", "SO", "KE", "SS", "SD"}},
	{Code: "SO", Region: "Africa", Neighbors: []string{"ET", "KE"}},
	{Code: "ER", Region: "Africa", Neighbors: []string{"SD", "ET"}},
	{Code: "UG", Region: "Africa", Neighbors: []string{"KE", "SS", "TZ", "CD"}},
	{Code: "TZ", Region: "Africa", Neighbors: []string{"KE", "UG", "MZ", "ZM", "CD"}},
	{Code: "SD", Region: "Africa", Neighbors: []string{"EG", "LY", "TD", "CF", "SS", "ET", "ER"}, HighRisk: true},
	{Code: "SS", Region: "Africa", Neighbors: []string{"SD", "ET", "KE", "UG", "CD", "CF"}, HighRisk: true},
	{Code: "ZW", Region: "Africa", Neighbors: []string{"ZA", "BW", "ZM", "MZ"}, HighRisk: true},

	// South America
	{Code: "BR", Region: "South America", Neighbors: []string{"AR", "UY", "PY", "BO", "PE", "CO", "VE", "GY", "SR"}},
	{Code: "AR", Region: "South America", Neighbors: []string{"CL", "BO", "PY", "BR", "UY"}},
	{Code: "UY", Region: "South America", Neighbors: []string{"BR", "AR"}},
	{Code: "PY", Region: "South America", Neighbors: []string{"BR", "AR", "BO"}},
	{Code: "BO", Region: "South America", Neighbors: []string{"BR", "AR", "CL", "PE", "PY"}},
	{Code: "CL", Region: "South America", Neighbors: []string{"AR", "PE", "BO"}},
	{Code: "CO", Region: "South America", Neighbors: []string{"VE", "BR", "PE", "EC", "PA"}},
	{Code: "EC", Region: "South America", Neighbors: []string{"CO", "PE"}},
	{Code: "PE", Region: "South America", Neighbors: []string{"EC", "CO", "BR", "BO", "CL"}},
	{Code: "VE", Region: "South America", Neighbors: []string{"CO", "BR", "GY"}, HighRisk: true},
	{Code: "GY", Region: "South America", Neighbors: []string{"VE", "BR", "SR"}},
	{Code: "SR", Region: "South America", Neighbors: []string{"GY", "BR"}},

	// Caribbean
	{Code: "CU", Region: "Caribbean", Neighbors: []string{}, HighRisk: true},

	// Oceania
	{Code: "AU", Region: "Oceania", Neighbors: []string{}},
	{Code: "NZ", Region: "Oceania", Neighbors: []string{}},
	{Code: "PG", Region: "Oceania", Neighbors: []string{"ID"}},
}
