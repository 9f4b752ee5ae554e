package config

// DefaultTeams returns the AP top 25 school slugs used when no team list is
// configured. A fresh slice is returned on every call.
func DefaultTeams() []string {
	return []string{
		"duke",
		"houston",
		"auburn",
		"florida",
		"tennessee",
		"alabama",
		"michigan-state",
		"st-johns-ny",
		"texas-tech",
		"iowa-state",
		"maryland",
		"wisconsin",
		"kentucky",
		"arizona",
		"purdue",
		"clemson",
		"texas-am",
		"louisville",
		"gonzaga",
		"michigan",
		"brigham-young",
		"saint-marys-ca",
		"oregon",
		"missouri",
		"connecticut",
	}
}

// ConferenceCodes maps the schedule page's conference abbreviations to stable
// integer codes. A fresh map is returned on every call.
func ConferenceCodes() map[string]int64 {
	return map[string]int64{
		"ACC":          1,
		"Big 12":       2,
		"Big East":     3,
		"Big Ten":      4,
		"SEC":          5,
		"Pac-12":       6,
		"AAC":          7,
		"A-10":         8,
		"MWC":          9,
		"WCC":          10,
		"MVC":          11,
		"CUSA":         12,
		"MAC":          13,
		"Sun Belt":     14,
		"CAA":          15,
		"Horizon":      16,
		"Ivy":          17,
		"MAAC":         18,
		"Big Sky":      19,
		"Big South":    20,
		"Big West":     21,
		"ASUN":         22,
		"America East": 23,
		"MEAC":         24,
		"NEC":          25,
		"OVC":          26,
		"Patriot":      27,
		"SoCon":        28,
		"Southland":    29,
		"Summit":       30,
		"SWAC":         31,
		"WAC":          32,
	}
}
