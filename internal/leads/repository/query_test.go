package repository

import (
	"testing"
	"time"

	"sales_portal_backend/internal/leads/filter"
)

func TestCompileQueryEmpty(t *testing.T) {
	compiled, err := compileQuery(filter.Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if compiled.Where != "TRUE" {
		t.Fatalf("expected TRUE, got %q", compiled.Where)
	}
	if compiled.OrderBy != "match_score DESC" {
		t.Fatalf("expected default order, got %q", compiled.OrderBy)
	}
	if len(compiled.Args) != 0 {
		t.Fatalf("expected no args, got %v", compiled.Args)
	}
}

func TestCompileQueryFromBuiltFilter(t *testing.T) {
	now := time.Date(2026, time.March, 18, 12, 0, 0, 0, time.UTC)
	q, err := filter.Build(filter.Params{
		Status:      "new,contacted",
		MinScore:    "80",
		MaxScore:    "90",
		Search:      "acme",
		CompanySize: "51-200",
		LastUpdated: "Today",
		Sort:        "oldest",
	}, now, time.UTC)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	compiled, err := compileQuery(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantWhere := "lower(status) = ANY($1) AND match_score >= $2 AND match_score <= $3 AND " +
		"(company ILIKE $4 OR name ILIKE $4 OR industry ILIKE $4) AND company_size = $5 AND last_updated >= $6"
	if compiled.Where != wantWhere {
		t.Fatalf("unexpected where:\n got  %q\n want %q", compiled.Where, wantWhere)
	}
	if compiled.OrderBy != "created_at ASC" {
		t.Fatalf("unexpected order %q", compiled.OrderBy)
	}
	if len(compiled.Args) != 6 {
		t.Fatalf("expected 6 args, got %d", len(compiled.Args))
	}
	statuses, ok := compiled.Args[0].([]string)
	if !ok || len(statuses) != 2 || statuses[1] != "contacted" {
		t.Fatalf("unexpected status arg %#v", compiled.Args[0])
	}
	if compiled.Args[1] != 80 || compiled.Args[2] != 90 {
		t.Fatalf("unexpected score args %v %v", compiled.Args[1], compiled.Args[2])
	}
	if compiled.Args[3] != "%acme%" {
		t.Fatalf("unexpected search arg %v", compiled.Args[3])
	}
}

func TestCompileQueryHighConfidenceIsExclusive(t *testing.T) {
	q, err := filter.Build(filter.Params{Confidence: "High"}, time.Now(), time.UTC)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	compiled, err := compileQuery(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if compiled.Where != "match_score > $1" {
		t.Fatalf("unexpected where %q", compiled.Where)
	}
}

func TestCompileQueryEscapesLikePattern(t *testing.T) {
	q := filter.Query{Clauses: []filter.Clause{
		filter.Contains{Fields: []filter.Field{filter.FieldLocation}, Value: `50%_off\`},
	}}

	compiled, err := compileQuery(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if compiled.Where != "location ILIKE $1" {
		t.Fatalf("unexpected where %q", compiled.Where)
	}
	if compiled.Args[0] != `%50\%\_off\\%` {
		t.Fatalf("unexpected pattern %q", compiled.Args[0])
	}
}

func TestCompileQueryRejectsUnknownField(t *testing.T) {
	q := filter.Query{Clauses: []filter.Clause{filter.Equals{Field: "ownerId", Value: "x"}}}

	if _, err := compileQuery(q); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}
