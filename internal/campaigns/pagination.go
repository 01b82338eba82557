package campaigns

import "github.com/project-sentinel/sentinel-client/internal/models"

// Page is a clamped pagination window over a row set.
type Page struct {
	Number     int `json:"page"`
	Size       int `json:"pageSize"`
	TotalRows  int `json:"totalRows"`
	TotalPages int `json:"totalPages"`
}

// NewPage derives the page window for a requested page number. TotalPages
// is ceil(totalRows/size) with a minimum of 1, and the requested number is
// clamped into [1, totalPages] so a stale page selection never produces an
// out-of-bounds window.
func NewPage(requested, size, totalRows int) Page {
	if size < 1 {
		size = 1
	}
	if totalRows < 0 {
		totalRows = 0
	}

	totalPages := (totalRows + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	if requested < 1 {
		requested = 1
	}
	if requested > totalPages {
		requested = totalPages
	}

	return Page{Number: requested, Size: size, TotalRows: totalRows, TotalPages: totalPages}
}

// Slice returns the rows visible on this page. The bounds are re-checked
// against the actual slice length, so a short row set never panics.
func (p Page) Slice(rows []models.Campaign) []models.Campaign {
	start := (p.Number - 1) * p.Size
	if start >= len(rows) {
		return nil
	}
	end := start + p.Size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// FirstRow and LastRow are the 1-based display bounds ("Showing 11-20 of
// 54"). FirstRow is 0 when the page is empty.
func (p Page) FirstRow() int {
	if p.TotalRows == 0 {
		return 0
	}
	return (p.Number-1)*p.Size + 1
}

func (p Page) LastRow() int {
	last := p.Number * p.Size
	if last > p.TotalRows {
		last = p.TotalRows
	}
	return last
}
