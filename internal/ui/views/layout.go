package views

import (
	"github.com/tgienger/kanban/internal/drag"
	"github.com/tgienger/kanban/internal/models"
	"github.com/tgienger/kanban/internal/ui/styles"
)

// Screen rows above the columns: header, search or status line, blank.
const (
	boardTop    = 3
	footerRows  = 2
	cardHeight  = 3 // two lines of card plus a spacer
	cardsTop    = 3 // border, column header, blank
	colGap      = 1
	minColWidth = 18
	minColRows  = 8
)

// layout holds the geometry of one frame. Rendering and mouse hit testing
// both derive from it so regions always match what is drawn.
type layout struct {
	columns   int
	colWidth  int
	colHeight int
	offset    int
}

func newLayout(width, height, columns int) layout {
	if columns < 1 {
		columns = 1
	}
	content := styles.ContentWidth(width)
	w := (content - colGap*(columns-1)) / columns
	if w < minColWidth {
		w = minColWidth
	}
	h := height - boardTop - footerRows
	if h < minColRows {
		h = minColRows
	}
	return layout{columns: columns, colWidth: w, colHeight: h, offset: styles.Offset(width)}
}

func (l layout) columnRect(i int) drag.Rect {
	return drag.Rect{X: l.offset + i*(l.colWidth+colGap), Y: boardTop, W: l.colWidth, H: l.colHeight}
}

// cardRect is the area of the card shown in visible slot of column i
func (l layout) cardRect(i, slot int) drag.Rect {
	c := l.columnRect(i)
	return drag.Rect{X: c.X + 1, Y: c.Y + cardsTop + slot*cardHeight, W: c.W - 2, H: cardHeight - 1}
}

// visibleCards is how many cards fit in a column
func (l layout) visibleCards() int {
	return max((l.colHeight-2-2)/cardHeight, 1)
}

// innerWidth is the text width inside a column border
func (l layout) innerWidth() int {
	return l.colWidth - 2
}

// regions lists every droppable: all columns first, then the visible cards.
// visible returns the cards drawn for column i.
func (l layout) regions(cols models.Columns, visible func(i int) []models.Task) []drag.Region {
	regions := make([]drag.Region, 0, len(cols))
	for i, col := range cols {
		regions = append(regions, drag.Region{ID: string(col.Key), Kind: drag.RegionColumn, Rect: l.columnRect(i)})
	}
	for i := range cols {
		for slot, t := range visible(i) {
			regions = append(regions, drag.Region{ID: t.ID, Kind: drag.RegionTask, Rect: l.cardRect(i, slot)})
		}
	}
	return regions
}

// columnAt returns the column index under p
func (l layout) columnAt(p drag.Point) (int, bool) {
	for i := 0; i < l.columns; i++ {
		if l.columnRect(i).Contains(p) {
			return i, true
		}
	}
	return 0, false
}
