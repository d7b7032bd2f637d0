package repository

import (
	"fmt"
	"strings"

	"sales_portal_backend/internal/leads/filter"
)

var leadColumns = map[filter.Field]string{
	filter.FieldName:        "name",
	filter.FieldCompany:     "company",
	filter.FieldIndustry:    "industry",
	filter.FieldStatus:      "lower(status)",
	filter.FieldMatchScore:  "match_score",
	filter.FieldCompanySize: "company_size",
	filter.FieldLocation:    "location",
	filter.FieldCreatedAt:   "created_at",
	filter.FieldLastUpdated: "last_updated",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// compiledQuery is a filter.Query rendered as SQL fragments with positional args.
type compiledQuery struct {
	Where   string
	OrderBy string
	Args    []interface{}
}

// compileQuery renders q for the leads table. Unknown fields are an error,
// never silently dropped.
func compileQuery(q filter.Query) (compiledQuery, error) {
	whereClauses := make([]string, 0, len(q.Clauses))
	args := make([]interface{}, 0, len(q.Clauses))
	argIdx := 1

	nextArg := func(value interface{}) string {
		args = append(args, value)
		placeholder := fmt.Sprintf("$%d", argIdx)
		argIdx++
		return placeholder
	}

	for _, clause := range q.Clauses {
		switch c := clause.(type) {
		case filter.AnyOf:
			column, err := columnFor(c.Field)
			if err != nil {
				return compiledQuery{}, err
			}
			whereClauses = append(whereClauses, fmt.Sprintf("%s = ANY(%s)", column, nextArg(c.Values)))
		case filter.Range:
			column, err := columnFor(c.Field)
			if err != nil {
				return compiledQuery{}, err
			}
			if c.Min != nil {
				op := ">="
				if c.MinExclusive {
					op = ">"
				}
				whereClauses = append(whereClauses, fmt.Sprintf("%s %s %s", column, op, nextArg(*c.Min)))
			}
			if c.Max != nil {
				whereClauses = append(whereClauses, fmt.Sprintf("%s <= %s", column, nextArg(*c.Max)))
			}
		case filter.Contains:
			placeholder := nextArg("%" + likeEscaper.Replace(c.Value) + "%")
			ors := make([]string, 0, len(c.Fields))
			for _, field := range c.Fields {
				column, err := columnFor(field)
				if err != nil {
					return compiledQuery{}, err
				}
				ors = append(ors, fmt.Sprintf("%s ILIKE %s", column, placeholder))
			}
			if len(ors) == 1 {
				whereClauses = append(whereClauses, ors[0])
			} else if len(ors) > 1 {
				whereClauses = append(whereClauses, "("+strings.Join(ors, " OR ")+")")
			}
		case filter.Equals:
			column, err := columnFor(c.Field)
			if err != nil {
				return compiledQuery{}, err
			}
			whereClauses = append(whereClauses, fmt.Sprintf("%s = %s", column, nextArg(c.Value)))
		case filter.Since:
			column, err := columnFor(c.Field)
			if err != nil {
				return compiledQuery{}, err
			}
			whereClauses = append(whereClauses, fmt.Sprintf("%s >= %s", column, nextArg(c.At)))
		default:
			return compiledQuery{}, fmt.Errorf("unsupported clause %T", clause)
		}
	}

	where := "TRUE"
	if len(whereClauses) > 0 {
		where = strings.Join(whereClauses, " AND ")
	}

	sort := q.Sort
	if sort.Field == "" {
		sort = filter.DefaultSort
	}
	sortColumn, err := columnFor(sort.Field)
	if err != nil {
		return compiledQuery{}, err
	}
	sortOrder := "ASC"
	if sort.Desc {
		sortOrder = "DESC"
	}

	return compiledQuery{
		Where:   where,
		OrderBy: sortColumn + " " + sortOrder,
		Args:    args,
	}, nil
}

func columnFor(field filter.Field) (string, error) {
	column, ok := leadColumns[field]
	if !ok {
		return "", fmt.Errorf("unknown lead field %q", field)
	}
	return column, nil
}
