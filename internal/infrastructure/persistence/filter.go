package persistence

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
)

// columnRegex whitelists what may be interpolated as a column name in
// ORDER BY and filter clauses
var columnRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// applyFilter applies search, column filters, ordering and pagination
// to a query. searchColumns are the columns matched by Filter.Search.
func applyFilter(query *gorm.DB, filter shared.Filter, searchColumns []string) *gorm.DB {
	query = applyFilterWithoutPagination(query, filter, searchColumns)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" && columnRegex.MatchString(filter.OrderBy) {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies search and column filters only.
// Used by Count so totals reflect the filtered set, not the page.
func applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter, searchColumns []string) *gorm.DB {
	if filter.Search != "" && len(searchColumns) > 0 {
		pattern := "%" + filter.Search + "%"
		clauses := make([]string, 0, len(searchColumns))
		args := make([]interface{}, 0, len(searchColumns))
		for _, col := range searchColumns {
			clauses = append(clauses, col+" ILIKE ?")
			args = append(args, pattern)
		}
		query = query.Where(strings.Join(clauses, " OR "), args...)
	}

	for key, value := range filter.Filters {
		if !columnRegex.MatchString(key) {
			continue
		}
		switch v := value.(type) {
		case []string:
			if len(v) > 0 {
				query = query.Where(fmt.Sprintf("%s IN ?", key), v)
			}
		case time.Time:
			// Convention: *_after and *_before filter on created_at
			switch {
			case strings.HasSuffix(key, "_after"):
				query = query.Where("created_at >= ?", v)
			case strings.HasSuffix(key, "_before"):
				query = query.Where("created_at <= ?", v)
			default:
				query = query.Where(fmt.Sprintf("%s = ?", key), v)
			}
		default:
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}
	}

	return query
}
