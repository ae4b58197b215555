package pagination

import "math"

// Request is a zero-based page index and a page size.
type Request struct {
	Page int
	Size int
}

// Offset is the number of rows to skip for this page. It saturates at
// math.MaxInt instead of wrapping for very large page indexes.
func (r Request) Offset() int {
	if r.Page <= 0 || r.Size <= 0 {
		return 0
	}
	if r.Page > math.MaxInt/r.Size {
		return math.MaxInt
	}
	return r.Page * r.Size
}

// Beyond reports whether the page starts at or after the last of total rows,
// in which case there is nothing to read.
func (r Request) Beyond(total int64) bool {
	return r.Offset() > 0 && int64(r.Offset()) >= total
}

// Page is one slice of a larger ordered result.
type Page[T any] struct {
	Content          []T   `json:"content"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

// New builds a page from its content and the total number of matching rows.
// A page index past the end yields empty content with the real totals.
func New[T any](content []T, req Request, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := TotalPages(total, req.Size)
	return Page[T]{
		Content:          content,
		Number:           req.Page,
		Size:             req.Size,
		TotalElements:    total,
		TotalPages:       pages,
		NumberOfElements: len(content),
		First:            req.Page == 0,
		Last:             req.Page >= pages-1,
		Empty:            len(content) == 0,
	}
}

// Map converts the content of a page, keeping its metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, 0, len(p.Content))
	for _, v := range p.Content {
		out = append(out, fn(v))
	}
	return Page[U]{
		Content:          out,
		Number:           p.Number,
		Size:             p.Size,
		TotalElements:    p.TotalElements,
		TotalPages:       p.TotalPages,
		NumberOfElements: len(out),
		First:            p.First,
		Last:             p.Last,
		Empty:            len(out) == 0,
	}
}

// TotalPages is ceil(total/size), 0 for a non-positive size.
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
