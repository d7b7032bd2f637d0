// Package filter turns the optional list-filter parameters of the leads
// endpoint into a typed query. Building is pure: the current time and the
// reporting time zone are passed in, and nothing touches the store.
package filter

import (
	"strconv"
	"strings"
	"time"

	"sales_portal_backend/internal/leads/domain"
	"sales_portal_backend/platform/apperr"
)

// Field names a filterable or sortable lead attribute.
type Field string

const (
	FieldName        Field = "name"
	FieldCompany     Field = "company"
	FieldIndustry    Field = "industry"
	FieldStatus      Field = "status"
	FieldMatchScore  Field = "matchScore"
	FieldCompanySize Field = "companySize"
	FieldLocation    Field = "location"
	FieldCreatedAt   Field = "createdAt"
	FieldLastUpdated Field = "lastUpdated"
)

// Confidence buckets over matchScore.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
	ConfidenceAll    = "All"
)

// lastUpdated windows.
const (
	UpdatedToday      = "Today"
	UpdatedLast7Days  = "Last 7 days"
	UpdatedLast30Days = "Last 30 days"
	UpdatedAll        = "All"
)

// Sort orders.
const (
	SortNewest = "newest"
	SortOldest = "oldest"
)

const (
	highConfidenceFloor   = 85
	mediumConfidenceFloor = 70
)

// Params are the raw query-string values. Empty means "not supplied".
type Params struct {
	Industry    string
	Status      string
	MinScore    string
	MaxScore    string
	Search      string
	Confidence  string
	CompanySize string
	Location    string
	LastUpdated string
	Sort        string
}

// Clause is one predicate of a Query. Clauses are combined with AND.
type Clause interface {
	key() string
}

// AnyOf matches when Field equals one of Values.
type AnyOf struct {
	Field  Field
	Values []string
}

// Range bounds an integer field. Max is inclusive; Min is exclusive when
// MinExclusive is set.
type Range struct {
	Field        Field
	Min          *int
	MinExclusive bool
	Max          *int
}

// Contains is a case-insensitive substring match against any of Fields.
type Contains struct {
	Fields []Field
	Value  string
}

// Equals is an exact match.
type Equals struct {
	Field Field
	Value string
}

// Since matches timestamps at or after At.
type Since struct {
	Field Field
	At    time.Time
}

func (c AnyOf) key() string    { return "any:" + string(c.Field) }
func (c Range) key() string    { return "range:" + string(c.Field) }
func (c Equals) key() string   { return "eq:" + string(c.Field) }
func (c Since) key() string    { return "since:" + string(c.Field) }
func (c Contains) key() string { return "contains:" + joinFields(c.Fields) }

// Sort is a single-key ordering. Ties fall back to the store's natural order.
type Sort struct {
	Field Field
	Desc  bool
}

// Query is the structured predicate plus sort order handed to the store.
type Query struct {
	Clauses []Clause
	Sort    Sort
}

// DefaultSort orders by matchScore, highest first.
var DefaultSort = Sort{Field: FieldMatchScore, Desc: true}

type builder struct {
	clauses []Clause
}

// put appends c, or overwrites an earlier clause on the same key in place.
// Overwriting is what makes a confidence bucket replace explicit
// minScore/maxScore bounds instead of intersecting with them.
func (b *builder) put(c Clause) {
	for i, existing := range b.clauses {
		if existing.key() == c.key() {
			b.clauses[i] = c
			return
		}
	}
	b.clauses = append(b.clauses, c)
}

// Build maps p to a Query. now and loc fix the meaning of "Today" and the
// rolling windows. Malformed numbers and unknown vocabulary values are
// reported as InvalidArgument.
func Build(p Params, now time.Time, loc *time.Location) (Query, error) {
	if loc == nil {
		loc = time.UTC
	}
	b := &builder{}

	if industries := splitList(p.Industry); len(industries) > 0 && !isAll(industries) {
		b.put(AnyOf{Field: FieldIndustry, Values: industries})
	}

	if raw := splitList(p.Status); len(raw) > 0 && !isAll(raw) {
		statuses := make([]string, 0, len(raw))
		for _, value := range raw {
			status, ok := domain.ParseStatus(value)
			if !ok {
				return Query{}, apperr.InvalidArgument("invalid status filter: " + value)
			}
			statuses = append(statuses, string(status))
		}
		b.put(AnyOf{Field: FieldStatus, Values: statuses})
	}

	minScore, err := parseScore("minScore", p.MinScore)
	if err != nil {
		return Query{}, err
	}
	maxScore, err := parseScore("maxScore", p.MaxScore)
	if err != nil {
		return Query{}, err
	}
	if minScore != nil || maxScore != nil {
		b.put(Range{Field: FieldMatchScore, Min: minScore, Max: maxScore})
	}

	if search := strings.TrimSpace(p.Search); search != "" {
		b.put(Contains{Fields: []Field{FieldCompany, FieldName, FieldIndustry}, Value: search})
	}

	if confidence := strings.TrimSpace(p.Confidence); confidence != "" {
		scoreRange, ok, err := confidenceRange(confidence)
		if err != nil {
			return Query{}, err
		}
		if ok {
			b.put(scoreRange)
		}
	}

	if size := strings.TrimSpace(p.CompanySize); size != "" && !strings.EqualFold(size, "All") {
		b.put(Equals{Field: FieldCompanySize, Value: size})
	}

	if location := strings.TrimSpace(p.Location); location != "" {
		b.put(Contains{Fields: []Field{FieldLocation}, Value: location})
	}

	if window := strings.TrimSpace(p.LastUpdated); window != "" {
		since, ok, err := updatedSince(window, now, loc)
		if err != nil {
			return Query{}, err
		}
		if ok {
			b.put(Since{Field: FieldLastUpdated, At: since})
		}
	}

	return Query{Clauses: b.clauses, Sort: parseSort(p.Sort)}, nil
}

// StartOfDay returns local midnight of now in loc.
func StartOfDay(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func confidenceRange(value string) (Range, bool, error) {
	high, medium := highConfidenceFloor, mediumConfidenceFloor
	switch {
	case strings.EqualFold(value, ConfidenceHigh):
		return Range{Field: FieldMatchScore, Min: &high, MinExclusive: true}, true, nil
	case strings.EqualFold(value, ConfidenceMedium):
		return Range{Field: FieldMatchScore, Min: &medium, MinExclusive: true, Max: &high}, true, nil
	case strings.EqualFold(value, ConfidenceLow):
		return Range{Field: FieldMatchScore, Max: &medium}, true, nil
	case strings.EqualFold(value, ConfidenceAll):
		return Range{}, false, nil
	default:
		return Range{}, false, apperr.InvalidArgument("invalid confidence filter: " + value)
	}
}

func updatedSince(value string, now time.Time, loc *time.Location) (time.Time, bool, error) {
	local := now.In(loc)
	switch {
	case strings.EqualFold(value, UpdatedToday):
		return StartOfDay(now, loc), true, nil
	case strings.EqualFold(value, UpdatedLast7Days):
		return local.AddDate(0, 0, -7), true, nil
	case strings.EqualFold(value, UpdatedLast30Days):
		return local.AddDate(0, 0, -30), true, nil
	case strings.EqualFold(value, UpdatedAll):
		return time.Time{}, false, nil
	default:
		return time.Time{}, false, apperr.InvalidArgument("invalid lastUpdated filter: " + value)
	}
}

func parseSort(value string) Sort {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case SortNewest:
		return Sort{Field: FieldCreatedAt, Desc: true}
	case SortOldest:
		return Sort{Field: FieldCreatedAt, Desc: false}
	default:
		return DefaultSort
	}
}

func parseScore(name, raw string) (*int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, apperr.InvalidArgument(name + " must be an integer")
	}
	return &value, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func isAll(values []string) bool {
	return len(values) == 1 && strings.EqualFold(values[0], "All")
}

func joinFields(fields []Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ",")
}
