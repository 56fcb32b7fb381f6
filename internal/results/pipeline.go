package results

import (
	"sort"
	"strings"
	"time"

	"docfind/internal/domain"
)

// SortKey selects the ordering applied to filtered rows.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortDate      SortKey = "date"
	SortType      SortKey = "type"
	SortTitle     SortKey = "title"
)

// Reserved filter names. Named categories come from configuration; FilterOther
// is the computed fallback bucket for rows no configured rule claims.
const (
	FilterAll   = "all"
	FilterOther = "otros"
)

// CategoryRule assigns rows to a named category when the row's category or
// doc type contains any keyword, case-insensitively. Rules are checked in
// order and the first match wins, so the named buckets plus the fallback
// partition any row set.
type CategoryRule struct {
	Name     string
	Keywords []string
}

// DefaultPageSize matches the backend-agnostic display contract.
const DefaultPageSize = 10

// Pipeline derives the displayed slice of a search result set. It is pure
// state-free computation; all methods leave their input untouched.
type Pipeline struct {
	rules    []CategoryRule
	pageSize int
}

// NewPipeline creates a pipeline with the given category rules and page size.
func NewPipeline(rules []CategoryRule, pageSize int) *Pipeline {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pipeline{rules: rules, pageSize: pageSize}
}

// PageSize returns the fixed number of rows per page.
func (p *Pipeline) PageSize() int { return p.pageSize }

// Categories returns the configured category names, without the reserved
// "all" and fallback names.
func (p *Pipeline) Categories() []string {
	names := make([]string, 0, len(p.rules))
	for _, r := range p.rules {
		names = append(names, r.Name)
	}
	return names
}

// assign returns the name of the first rule matching the row, or FilterOther.
func (p *Pipeline) assign(row domain.ResultRow) string {
	cat := strings.ToLower(row.Category)
	typ := strings.ToLower(row.DocType)
	for _, rule := range p.rules {
		for _, kw := range rule.Keywords {
			k := strings.ToLower(kw)
			if strings.Contains(cat, k) || strings.Contains(typ, k) {
				return rule.Name
			}
		}
	}
	return FilterOther
}

// Filter returns the rows belonging to the given category. FilterAll passes
// everything through; FilterOther (and any unknown name) selects the rows no
// configured rule matched.
func (p *Pipeline) Filter(rows []domain.ResultRow, category string) []domain.ResultRow {
	if category == FilterAll || category == "" {
		return rows
	}
	out := make([]domain.ResultRow, 0, len(rows))
	for _, row := range rows {
		if p.assign(row) == category {
			out = append(out, row)
		}
	}
	return out
}

// Sort returns a sorted copy of rows; the input slice is never reordered.
// Ties keep their relative order from the input.
func (p *Pipeline) Sort(rows []domain.ResultRow, key SortKey) []domain.ResultRow {
	sorted := make([]domain.ResultRow, len(rows))
	copy(sorted, rows)
	switch key {
	case SortDate:
		sort.SliceStable(sorted, func(i, j int) bool {
			return dateOf(sorted[i]).After(dateOf(sorted[j]))
		})
	case SortType:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].DocType < sorted[j].DocType
		})
	case SortTitle:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Title < sorted[j].Title
		})
	default: // SortRelevance: higher score first
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Score > sorted[j].Score
		})
	}
	return sorted
}

// dateOf treats a missing modification date as the zero time so undated rows
// sort last under the newest-first date ordering.
func dateOf(row domain.ResultRow) time.Time {
	if row.DateModified == nil {
		return time.Time{}
	}
	return *row.DateModified
}

// TotalPages reports how many pages a filtered count occupies. An empty set
// still has one (empty) page.
func (p *Pipeline) TotalPages(filteredCount int) int {
	if filteredCount <= 0 {
		return 1
	}
	return (filteredCount + p.pageSize - 1) / p.pageSize
}

// ClampPage resolves an out-of-range 1-indexed page to the nearest boundary.
func (p *Pipeline) ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// View is the derived presentation of one result set for one page.
type View struct {
	// Rows is the current page: a contiguous slice of the sorted, filtered set.
	Rows []domain.ResultRow
	// Start is the 0-based offset of Rows[0] within the sorted set.
	Start int
	// Page is the clamped 1-indexed current page.
	Page       int
	TotalPages int
	// FilteredCount is the size of the filtered set; TotalCount of the raw set.
	FilteredCount int
	TotalCount    int
	// TopResult is the first sorted row, present iff the filtered set is
	// non-empty. It is featured only on page 1 and still appears in Rows.
	TopResult *domain.ResultRow
}

// ShowFeatured reports whether the top result gets its own summary card.
func (v View) ShowFeatured() bool { return v.TopResult != nil && v.Page == 1 }

// View runs the full pipeline: filter, sort, clamp the page, slice it out and
// pick the top result. An empty input yields an empty page, never an error.
func (p *Pipeline) View(rows []domain.ResultRow, category string, key SortKey, page int) View {
	filtered := p.Filter(rows, category)
	sorted := p.Sort(filtered, key)
	totalPages := p.TotalPages(len(sorted))
	page = p.ClampPage(page, totalPages)
	start := (page - 1) * p.pageSize
	end := start + p.pageSize
	if start > len(sorted) {
		start = len(sorted)
	}
	if end > len(sorted) {
		end = len(sorted)
	}
	v := View{
		Rows:          sorted[start:end],
		Start:         start,
		Page:          page,
		TotalPages:    totalPages,
		FilteredCount: len(sorted),
		TotalCount:    len(rows),
	}
	if len(sorted) > 0 {
		top := sorted[0]
		v.TopResult = &top
	}
	return v
}

// Ellipsis marks a gap in a PageWindow.
const Ellipsis = -1

// PageWindow returns the page numbers worth rendering for a pager: the first
// and last page, the pages within two of current, and Ellipsis markers for
// the gaps.
func PageWindow(current, total int) []int {
	if total <= 1 {
		return []int{1}
	}
	var out []int
	for page := 1; page <= total; page++ {
		show := page == 1 || page == total || abs(page-current) <= 2
		if show {
			out = append(out, page)
			continue
		}
		if page == current-3 || page == current+3 {
			out = append(out, Ellipsis)
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
