package models

const DefaultPageSize = 50

// Paginate returns the 1-based page of items along with the page count.
// Out-of-range pages are clamped.
func Paginate[T any](items []T, pageSize, page int) ([]T, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := TotalPages(len(items), pageSize)
	page = clampPage(page, total)
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	if start >= len(items) {
		return items[:0:0], total
	}
	return items[start:end], total
}

// TotalPages is never below 1; an empty result still has one (empty) page.
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if count <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

func clampPage(page, total int) int {
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// Paginator tracks the current page over an already materialized result.
// Navigating never refetches. Not safe for concurrent use.
type Paginator[T any] struct {
	items    []T
	pageSize int
	current  int
}

func NewPaginator[T any](items []T, pageSize int) *Paginator[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Paginator[T]{items: items, pageSize: pageSize, current: 1}
}

// Reset swaps in a new result and returns to page 1.
func (p *Paginator[T]) Reset(items []T) {
	p.items = items
	p.current = 1
}

func (p *Paginator[T]) Len() int        { return len(p.items) }
func (p *Paginator[T]) PageSize() int   { return p.pageSize }
func (p *Paginator[T]) Current() int    { return p.current }
func (p *Paginator[T]) TotalPages() int { return TotalPages(len(p.items), p.pageSize) }

func (p *Paginator[T]) Items() []T {
	page, _ := Paginate(p.items, p.pageSize, p.current)
	return page
}

// Bounds returns the 1-based first and last positions shown on the current
// page, or 0, 0 when there is nothing to show.
func (p *Paginator[T]) Bounds() (int, int) {
	if len(p.items) == 0 {
		return 0, 0
	}
	start := (p.current-1)*p.pageSize + 1
	end := min(p.current*p.pageSize, len(p.items))
	return start, end
}

func (p *Paginator[T]) First() { p.current = 1 }
func (p *Paginator[T]) Last()  { p.current = p.TotalPages() }

func (p *Paginator[T]) Next() {
	if p.current < p.TotalPages() {
		p.current++
	}
}

func (p *Paginator[T]) Prev() {
	if p.current > 1 {
		p.current--
	}
}

func (p *Paginator[T]) Goto(page int) {
	p.current = clampPage(page, p.TotalPages())
}
