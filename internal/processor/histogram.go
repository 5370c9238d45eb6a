package processor

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// WidthHistogram counts page widths and remembers the order in which each
// width was first observed.
type WidthHistogram struct {
	counts map[int]int
	order  []int
}

func NewWidthHistogram() WidthHistogram {
	return WidthHistogram{counts: make(map[int]int)}
}

func (h *WidthHistogram) Add(width int) {
	if h.counts == nil {
		h.counts = make(map[int]int)
	}
	if _, seen := h.counts[width]; !seen {
		h.order = append(h.order, width)
	}
	h.counts[width]++
}

func (h WidthHistogram) Count(width int) int {
	return h.counts[width]
}

// Widths returns the distinct widths in first-seen order.
func (h WidthHistogram) Widths() []int {
	return append([]int(nil), h.order...)
}

func (h WidthHistogram) Total() int {
	total := 0
	for _, c := range h.counts {
		total += c
	}
	return total
}

// Mode returns the most frequent width. Among widths sharing the highest
// count the one observed first wins. ok is false for an empty histogram.
func (h WidthHistogram) Mode() (width int, ok bool) {
	best := -1
	for _, w := range h.order {
		if c := h.counts[w]; c > best {
			best = c
			width = w
		}
	}
	return width, best > 0
}

func (h WidthHistogram) Map() map[int]int {
	out := make(map[int]int, len(h.counts))
	for w, c := range h.counts {
		out[w] = c
	}
	return out
}

func (h WidthHistogram) String() string {
	parts := make([]string, 0, len(h.order))
	for _, w := range h.order {
		parts = append(parts, fmt.Sprintf("%d: %d", w, h.counts[w]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// SortedWidths returns the distinct widths in ascending order.
func (h WidthHistogram) SortedWidths() []int {
	widths := h.Widths()
	sort.Ints(widths)
	return widths
}

func (h WidthHistogram) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Map())
}
