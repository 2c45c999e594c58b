package ticket

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// IDMarker prefixes an explicit by-identifier search, as in "#42".
const IDMarker = "#"

// SearchKind tells how a search term is matched against tickets.
type SearchKind int

const (
	// SearchNone matches nothing and must not reach the store.
	SearchNone SearchKind = iota
	SearchByID
	SearchBySubject
)

var garbledNumber = regexp.MustCompile(`^#?[-+]\d+$`)

// SearchTerm is a normalized, dispatched search input.
type SearchTerm struct {
	Kind    SearchKind
	ID      uint
	Subject string
}

// ParseSearchTerm dispatches term in priority order: "#<digits>" is an exact id,
// all digits is an exact id, anything else matches the subject. Blank, signed
// or overflowing numeric input yields SearchNone.
func ParseSearchTerm(term string) SearchTerm {
	term = strings.TrimSpace(term)
	if term == "" {
		return SearchTerm{Kind: SearchNone}
	}

	if digits, ok := strings.CutPrefix(term, IDMarker); ok && isDigits(digits) {
		return parseIDTerm(digits)
	}
	if isDigits(term) {
		return parseIDTerm(term)
	}
	if garbledNumber.MatchString(term) {
		return SearchTerm{Kind: SearchNone}
	}

	return SearchTerm{Kind: SearchBySubject, Subject: term}
}

// FoldSubject returns the Unicode case-folded form subjects are matched on.
// Stored subjects and search fragments must both pass through it.
func FoldSubject(s string) string {
	return cases.Fold().String(s)
}

func parseIDTerm(digits string) SearchTerm {
	id, err := strconv.ParseUint(digits, 10, 0)
	if err != nil || id == 0 {
		return SearchTerm{Kind: SearchNone}
	}
	return SearchTerm{Kind: SearchByID, ID: uint(id)}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// TicketSearchCriteria is the store-level query the finder issues. The
// restrictions compose with AND; a nil slice means unrestricted, an empty
// non-nil slice matches nothing.
type TicketSearchCriteria struct {
	TicketID           *uint
	SubjectContains    string
	ProjectIDs         []uint
	CandidateIDs       []uint
	IncludeProjectName bool
	Limit              int
}

// TicketSummary is a search hit. ProjectName is set only when requested.
type TicketSummary struct {
	ID          uint
	Subject     string
	ProjectName *string
}
