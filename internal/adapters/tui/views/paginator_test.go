package views

import "testing"

func TestPaginator(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(7)

	for range 4 {
		p.CursorDown()
	}
	if p.Cursor() != 4 || p.CurrentPage() != 2 {
		t.Errorf("expected cursor 4 on page 2, got %d on %d", p.Cursor(), p.CurrentPage())
	}
	if start, end := p.VisibleRange(); start != 3 || end != 6 {
		t.Errorf("expected range 3-6, got %d-%d", start, end)
	}

	p.SetCursor(99)
	if p.Cursor() != 6 || p.TotalPages() != 3 {
		t.Errorf("expected cursor clamped to 6 of 3 pages, got %d of %d", p.Cursor(), p.TotalPages())
	}
	if start, end := p.VisibleRange(); start != 6 || end != 7 {
		t.Errorf("expected last page 6-7, got %d-%d", start, end)
	}

	p.SetTotal(2)
	if p.Cursor() != 1 || p.CurrentPage() != 1 {
		t.Errorf("expected cursor pulled back to 1, got %d on %d", p.Cursor(), p.CurrentPage())
	}

	p.SetTotal(0)
	if p.Cursor() != 0 || p.TotalPages() != 1 {
		t.Errorf("expected empty list at 0, got %d", p.Cursor())
	}
}
