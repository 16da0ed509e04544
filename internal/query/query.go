package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DefaultLimit is the page size used when the request does not set one.
const DefaultLimit = 50

// Spec describes how one resource's list endpoint may be filtered and sorted.
// SortColumns maps the allow-listed sort_by values to column names; anything
// outside the map is rejected at the boundary, never defaulted.
type Spec struct {
	MaxLimit     int
	SearchColumn string
	SortColumns  map[string]string
}

// Params holds validated list parameters.
type Params struct {
	Skip     int
	Limit    int
	Q        string
	orderBy  string
	orderDir string
	search   string
}

// Parse extracts skip/limit/q/sort_by/sort_dir from the request and validates
// them against the resource's Spec. Out-of-range values are errors, not
// clamped.
func Parse(c *gin.Context, spec Spec) (Params, error) {
	params := Params{
		Skip:     0,
		Limit:    DefaultLimit,
		orderDir: "asc",
		search:   spec.SearchColumn,
	}

	if skipStr := c.Query("skip"); skipStr != "" {
		skip, err := strconv.Atoi(skipStr)
		if err != nil || skip < 0 {
			return Params{}, fmt.Errorf("skip must be a non-negative integer")
		}
		params.Skip = skip
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return Params{}, fmt.Errorf("limit must be a positive integer")
		}
		if limit > spec.MaxLimit {
			return Params{}, fmt.Errorf("limit must not exceed %d", spec.MaxLimit)
		}
		params.Limit = limit
	}

	params.Q = c.Query("q")

	if sortBy := c.Query("sort_by"); sortBy != "" {
		column, ok := spec.SortColumns[sortBy]
		if !ok {
			return Params{}, fmt.Errorf("sort_by must be one of: %s", strings.Join(sortKeys(spec.SortColumns), ", "))
		}
		params.orderBy = column
	}

	if sortDir := c.Query("sort_dir"); sortDir != "" {
		if sortDir != "asc" && sortDir != "desc" {
			return Params{}, fmt.Errorf("sort_dir must be asc or desc")
		}
		params.orderDir = sortDir
	}

	return params, nil
}

// Scope applies the substring filter, ordering, offset and limit to a query.
// Any parent scoping (project_id, issue_id) must already be on the query.
func (p Params) Scope() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.Q != "" && p.search != "" {
			// Literal substring match; LIKE metacharacters are not escaped.
			pattern := "%" + strings.ToLower(p.Q) + "%"
			db = db.Where(fmt.Sprintf("LOWER(%s) LIKE ?", p.search), pattern)
		}
		if p.orderBy != "" {
			db = db.Order(p.orderBy + " " + p.orderDir)
		}
		return db.Offset(p.Skip).Limit(p.Limit)
	}
}

func sortKeys(columns map[string]string) []string {
	keys := make([]string, 0, len(columns))
	for k := range columns {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
