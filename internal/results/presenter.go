package results

import "docfind/internal/domain"

// Presenter holds the mutable presentation state for one result set: the
// active filter, sort key and page. Changing the filter or sort resets the
// page to 1 in the same step, so the page index never points past the new
// total.
type Presenter struct {
	pipeline *Pipeline
	rows     []domain.ResultRow
	category string
	sortKey  SortKey
	page     int
}

// NewPresenter creates a presenter with no rows, the all-categories filter,
// relevance ordering and page 1.
func NewPresenter(pipeline *Pipeline) *Presenter {
	return &Presenter{
		pipeline: pipeline,
		category: FilterAll,
		sortKey:  SortRelevance,
		page:     1,
	}
}

// SetRows replaces the result set and returns to page 1. Filter and sort
// choices survive across searches.
func (p *Presenter) SetRows(rows []domain.ResultRow) {
	p.rows = rows
	p.page = 1
}

// SetFilter activates a category filter and resets the page.
func (p *Presenter) SetFilter(category string) {
	if category == "" {
		category = FilterAll
	}
	p.category = category
	p.page = 1
}

// SetSort activates a sort key and resets the page.
func (p *Presenter) SetSort(key SortKey) {
	p.sortKey = key
	p.page = 1
}

// SetPage moves to a 1-indexed page, clamped to the valid range.
func (p *Presenter) SetPage(page int) {
	total := p.pipeline.TotalPages(len(p.pipeline.Filter(p.rows, p.category)))
	p.page = p.pipeline.ClampPage(page, total)
}

// NextPage advances one page if one exists.
func (p *Presenter) NextPage() { p.SetPage(p.page + 1) }

// PrevPage goes back one page if one exists.
func (p *Presenter) PrevPage() { p.SetPage(p.page - 1) }

// Filter returns the active category filter.
func (p *Presenter) Filter() string { return p.category }

// Sort returns the active sort key.
func (p *Presenter) Sort() SortKey { return p.sortKey }

// Page returns the current 1-indexed page.
func (p *Presenter) Page() int { return p.page }

// View computes the derived view for the current state.
func (p *Presenter) View() View {
	return p.pipeline.View(p.rows, p.category, p.sortKey, p.page)
}
