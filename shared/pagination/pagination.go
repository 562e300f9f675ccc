// Package pagination slices ordered listings into numbered pages.
//
// Out-of-range page numbers are never an error: a page below 1 is page 1 and
// a page past the end is the last page, so stale links still render something.
// An empty listing is page 1 of 1.
package pagination

// Window describes one page of a listing of TotalItems elements.
// Storage uses Offset/Limit to fetch exactly that page.
type Window struct {
	Number     int
	Size       int // 0 means the listing is not paginated
	TotalPages int
	TotalItems int
}

// PageCount returns ceil(total/pageSize), never less than 1.
// A non-positive pageSize means everything fits on one page.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// NewWindow clamps page into [1, PageCount(total, pageSize)].
func NewWindow(total, pageSize, page int) Window {
	if total < 0 {
		total = 0
	}
	if pageSize < 0 {
		pageSize = 0
	}
	pages := PageCount(total, pageSize)
	return Window{
		Number:     min(max(page, 1), pages),
		Size:       pageSize,
		TotalPages: pages,
		TotalItems: total,
	}
}

func (w Window) Offset() int {
	if w.Size == 0 {
		return 0
	}
	return (w.Number - 1) * w.Size
}

func (w Window) Limit() int {
	if w.Size == 0 {
		return w.TotalItems
	}
	return w.Size
}

func (w Window) HasNext() bool {
	return w.Number < w.TotalPages
}

func (w Window) HasPrevious() bool {
	return w.Number > 1
}

// Range returns page numbers within adjacent of the current one, for
// rendering "1 2 [3] 4 5" style navigation.
func (w Window) Range(adjacent int) []int {
	if adjacent < 0 {
		adjacent = 0
	}
	from := max(1, w.Number-adjacent)
	to := min(w.TotalPages, w.Number+adjacent)
	pages := make([]int, 0, to-from+1)
	for p := from; p <= to; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Page is a bounded slice of a listing plus everything needed to render
// navigation without redoing the math.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"page"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	PageSize    int  `json:"page_size"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewPage wraps items already fetched for w.
func NewPage[T any](w Window, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		Number:      w.Number,
		TotalPages:  w.TotalPages,
		TotalItems:  w.TotalItems,
		PageSize:    w.Size,
		HasNext:     w.HasNext(),
		HasPrevious: w.HasPrevious(),
	}
}

// Paginate slices an in-memory ordered sequence.
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	w := NewWindow(len(items), pageSize, page)
	start := min(w.Offset(), len(items))
	end := min(start+w.Limit(), len(items))
	return NewPage(w, items[start:end])
}

// Map converts the items of p, keeping its navigation.
func Map[T, U any](p Page[T], f func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = f(item)
	}
	return Page[U]{
		Items:       items,
		Number:      p.Number,
		TotalPages:  p.TotalPages,
		TotalItems:  p.TotalItems,
		PageSize:    p.PageSize,
		HasNext:     p.HasNext,
		HasPrevious: p.HasPrevious,
	}
}
