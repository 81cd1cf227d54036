package menu

// Entry is one element of the raw upstream menu sequence for a single day.
// Headers carry Text; food items carry Food. Order is significant: a header
// applies to every item that follows it until the next header.
type Entry struct {
	IsStationHeader bool   `json:"is_station_header"`
	Text            string `json:"text,omitempty"`
	Food            *Food  `json:"food,omitempty"`
}

// Food holds the name of a single menu item.
type Food struct {
	Name string `json:"name"`
}

// Day is one day-record inside the upstream week document.
type Day struct {
	Date      string  `json:"date"`
	MenuItems []Entry `json:"menu_items"`
}

// Week is the week-shaped document returned by the upstream provider.
// A nil Days slice after decoding means the field was absent entirely,
// which callers treat as a malformed response.
type Week struct {
	Days []Day `json:"days"`
}

// FormattedMenu holds the rendered text for both meals of one day.
type FormattedMenu struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
}

// FindDay returns the menu entries for the given date (YYYY-MM-DD).
// A week without a matching day yields an empty entry sequence, not an error.
func FindDay(week *Week, date string) []Entry {
	if week == nil {
		return nil
	}
	for _, day := range week.Days {
		if day.Date == date {
			return day.MenuItems
		}
	}
	return nil
}
