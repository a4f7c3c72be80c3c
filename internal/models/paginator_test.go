package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count    int
		expected int
	}{
		{0, 1},
		{1, 1},
		{49, 1},
		{50, 1},
		{51, 2},
		{100, 2},
		{101, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, TotalPages(tt.count, DefaultPageSize), "count=%d", tt.count)
	}
}

func TestPaginate_ConcatenationReconstructsResult(t *testing.T) {
	for _, n := range []int{0, 1, 49, 50, 51, 137, 250} {
		items := seq(n)
		_, total := Paginate(items, DefaultPageSize, 1)

		var joined []int
		for page := 1; page <= total; page++ {
			chunk, _ := Paginate(items, DefaultPageSize, page)
			joined = append(joined, chunk...)
		}
		if n == 0 {
			assert.Empty(t, joined)
			continue
		}
		assert.Equal(t, items, joined, "n=%d", n)
	}
}

func TestPaginate_ClampsPage(t *testing.T) {
	items := seq(120)

	page, total := Paginate(items, 50, 0)
	assert.Equal(t, 3, total)
	assert.Equal(t, 0, page[0])

	page, _ = Paginate(items, 50, 99)
	require.Len(t, page, 20)
	assert.Equal(t, 100, page[0])
}

func TestPaginate_DefaultsPageSize(t *testing.T) {
	page, total := Paginate(seq(60), 0, 1)
	assert.Len(t, page, DefaultPageSize)
	assert.Equal(t, 2, total)
}

func TestPaginator_Navigation(t *testing.T) {
	p := NewPaginator(seq(120), 50)
	assert.Equal(t, 1, p.Current())
	assert.Equal(t, 3, p.TotalPages())

	p.Prev()
	assert.Equal(t, 1, p.Current(), "prev is a no-op on the first page")

	p.Next()
	assert.Equal(t, 2, p.Current())
	start, end := p.Bounds()
	assert.Equal(t, 51, start)
	assert.Equal(t, 100, end)

	p.Last()
	assert.Equal(t, 3, p.Current())
	assert.Len(t, p.Items(), 20)

	p.Next()
	assert.Equal(t, 3, p.Current(), "next is a no-op on the last page")

	p.First()
	assert.Equal(t, 1, p.Current())

	p.Goto(42)
	assert.Equal(t, 3, p.Current())
	p.Goto(-1)
	assert.Equal(t, 1, p.Current())
}

func TestPaginator_ResetReturnsToFirstPage(t *testing.T) {
	p := NewPaginator(seq(120), 50)
	p.Last()

	p.Reset(seq(10))
	assert.Equal(t, 1, p.Current())
	assert.Equal(t, 1, p.TotalPages())
	assert.Equal(t, 10, p.Len())
}

func TestPaginator_Empty(t *testing.T) {
	p := NewPaginator([]int{}, 50)
	assert.Equal(t, 1, p.TotalPages())
	assert.Empty(t, p.Items())

	start, end := p.Bounds()
	assert.Zero(t, start)
	assert.Zero(t, end)
}
