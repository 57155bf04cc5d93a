package i18n

var english = map[string]string{
	"title":    "Family Tree (MVP)",
	"persons":  "👤 Persons",
	"families": "👪 Families",
	"events":   "📅 Events",
	"settings": "⚙ Settings",

	"save":    "Save",
	"load":    "Load",
	"male":    "Male",
	"female":  "Female",
	"unknown": "Unknown",

	"manage_families": "Manage Families",
	"new_event":       "New Event",

	"tooltip_name":     "Name",
	"tooltip_birth":    "Birth",
	"tooltip_death":    "Death",
	"tooltip_age":      "years old",
	"tooltip_died_at":  "died at",
	"tooltip_deceased": "Deceased",
	"tooltip_yes":      "Yes",
	"tooltip_memo":     "Memo",
}
