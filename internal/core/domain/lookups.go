package domain

import "strings"

// CategoryOther is the fallback category for unrecognised resources.
const CategoryOther = "Other"

// DefaultPopularity is assigned to resource.action pairs absent from
// the popularity table. A deliberately coarse mid-range heuristic,
// not measured usage.
const DefaultPopularity = 50

// Lookups holds the static configuration tables used for indexing and
// scoring. Treated as immutable data injected at construction time so
// tests can substitute fixtures and sessions never share hidden state.
type Lookups struct {
	// Categories maps a resource to its display category.
	Categories map[string]string

	// Popularity maps "resource.action" to a score in [0,100].
	Popularity map[string]int

	// ResourceSynonyms maps a resource to additional search keywords.
	ResourceSynonyms map[string][]string

	// ActionSynonyms maps an action to additional search keywords.
	ActionSynonyms map[string][]string

	// ActionVerbs maps an action to its display verb.
	ActionVerbs map[string]string

	// ResourceNouns maps a resource to its display noun.
	ResourceNouns map[string]string

	// ScopeNouns maps a scope to its display noun.
	ScopeNouns map[string]string

	// SystemResources marks resources whose permissions are
	// system-internal.
	SystemResources map[string]bool
}

// CategoryFor returns the category for a resource, falling back to
// CategoryOther for unrecognised resources.
func (l Lookups) CategoryFor(resource string) string {
	if c, ok := l.Categories[resource]; ok {
		return c
	}
	return CategoryOther
}

// PopularityFor returns the popularity score for a resource.action
// pair, defaulting to DefaultPopularity for unknown combinations.
func (l Lookups) PopularityFor(resource, action string) int {
	if p, ok := l.Popularity[resource+"."+action]; ok {
		return p
	}
	return DefaultPopularity
}

// DisplayNameFor builds "{ActionVerb} {ResourceNoun} ({ScopeNoun})".
// Unrecognised values pass through verbatim, capitalised.
func (l Lookups) DisplayNameFor(resource, action, scope string) string {
	verb, ok := l.ActionVerbs[action]
	if !ok {
		verb = capitalise(action)
	}
	noun, ok := l.ResourceNouns[resource]
	if !ok {
		noun = capitalise(resource)
	}
	scopeNoun, ok := l.ScopeNouns[scope]
	if !ok {
		scopeNoun = capitalise(scope)
	}
	return verb + " " + noun + " (" + scopeNoun + ")"
}

// SynonymsFor returns synonym keywords for a resource/action pair.
func (l Lookups) SynonymsFor(resource, action string) []string {
	var out []string
	out = append(out, l.ResourceSynonyms[resource]...)
	out = append(out, l.ActionSynonyms[action]...)
	return out
}

// capitalise upper-cases the first rune of s.
func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// DefaultLookups returns the built-in configuration tables covering
// the standard catalog resources.
func DefaultLookups() Lookups {
	return Lookups{
		Categories: map[string]string{
			"user":        "Administration",
			"role":        "Administration",
			"permission":  "Administration",
			"setting":     "Administration",
			"reservation": "Front Desk",
			"guest":       "Front Desk",
			"room":        "Front Desk",
			"rate":        "Revenue",
			"invoice":     "Revenue",
			"payment":     "Revenue",
			"report":      "Reporting",
			"document":    "Content",
			"file":        "Content",
		},
		Popularity: map[string]int{
			"reservation.create": 95,
			"reservation.view":   90,
			"reservation.update": 85,
			"guest.view":         85,
			"guest.create":       80,
			"room.view":          80,
			"user.view":          75,
			"user.create":        70,
			"report.view":        70,
			"invoice.create":     65,
			"rate.update":        60,
			"role.view":          55,
			"role.create":        45,
			"permission.assign":  40,
			"setting.update":     30,
		},
		ResourceSynonyms: map[string][]string{
			"user":        {"staff", "employee", "account"},
			"role":        {"group", "profile"},
			"permission":  {"access", "right", "privilege"},
			"reservation": {"booking", "stay"},
			"guest":       {"customer", "visitor"},
			"room":        {"unit", "accommodation"},
			"rate":        {"price", "tariff"},
			"invoice":     {"bill", "folio"},
			"report":      {"analytics", "statistics"},
			"document":    {"record", "attachment"},
			"setting":     {"configuration", "preference"},
		},
		ActionSynonyms: map[string][]string{
			"create":  {"add", "new", "register"},
			"view":    {"read", "see", "list"},
			"update":  {"edit", "modify", "change"},
			"delete":  {"remove", "cancel"},
			"approve": {"confirm", "authorize"},
			"assign":  {"grant", "attach"},
			"export":  {"download", "extract"},
		},
		ActionVerbs: map[string]string{
			"create":  "Create",
			"view":    "View",
			"update":  "Update",
			"delete":  "Delete",
			"approve": "Approve",
			"assign":  "Assign",
			"export":  "Export",
			"manage":  "Manage",
		},
		ResourceNouns: map[string]string{
			"user":        "User",
			"role":        "Role",
			"permission":  "Permission",
			"reservation": "Reservation",
			"guest":       "Guest",
			"room":        "Room",
			"rate":        "Rate",
			"invoice":     "Invoice",
			"payment":     "Payment",
			"report":      "Report",
			"document":    "Document",
			"file":        "File",
			"setting":     "Setting",
		},
		ScopeNouns: map[string]string{
			"own":          "Own",
			"department":   "Department",
			"property":     "Property",
			"organization": "Organization",
			"platform":     "Platform",
		},
		SystemResources: map[string]bool{
			"setting": true,
		},
	}
}
