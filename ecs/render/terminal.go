package render

import (
	"sort"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/bouncer/common"
	"github.com/milk9111/bouncer/ecs"
)

// Arrow glyphs by 45 degree sector, clockwise from heading 0 (rightward, y down).
var arrows = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// TerminalSurface paints each handle as a heading arrow on a tcell screen.
// One cell covers CellWidth x CellHeight viewport pixels.
type TerminalSurface struct {
	mu         sync.Mutex
	screen     tcell.Screen
	handles    map[ecs.Entity]*terminalHandle
	cellWidth  float64
	cellHeight float64
}

// NewTerminalSurface wraps screen. Non-positive cell sizes default to 8x16.
func NewTerminalSurface(screen tcell.Screen, cellWidth, cellHeight float64) *TerminalSurface {
	if cellWidth <= 0 {
		cellWidth = 8
	}
	if cellHeight <= 0 {
		cellHeight = 16
	}
	return &TerminalSurface{
		screen:     screen,
		handles:    make(map[ecs.Entity]*terminalHandle),
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
	}
}

// Viewport converts the screen's cell grid into viewport pixels.
func (s *TerminalSurface) Viewport() ecs.Viewport {
	cols, rows := s.screen.Size()
	return ecs.Viewport{Width: float64(cols) * s.cellWidth, Height: float64(rows) * s.cellHeight}
}

type terminalHandle struct {
	Props
	id      ecs.Entity
	surface *TerminalSurface
}

func (s *TerminalSurface) Create(id ecs.Entity) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := &terminalHandle{id: id, surface: s}
	s.handles[id] = h
	return h
}

// Len is the number of live handles.
func (s *TerminalSurface) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

// Draw clears the screen and paints every handle at the cell under its centre.
func (s *TerminalSurface) Draw() {
	s.mu.Lock()
	defer s.mu.Unlock()

	handles := make([]*terminalHandle, 0, len(s.handles))
	for _, h := range s.handles {
		handles = append(handles, h)
	}
	sort.SliceStable(handles, func(i, j int) bool {
		if handles[i].ZIndex != handles[j].ZIndex {
			return handles[i].ZIndex < handles[j].ZIndex
		}
		return handles[i].id < handles[j].id
	})

	s.screen.Clear()
	for _, h := range handles {
		col := int((h.Left + h.Width/2) / s.cellWidth)
		row := int((h.Top + h.Height/2) / s.cellHeight)
		style := tcell.StyleDefault.Foreground(tcell.ColorAqua)
		if h.VerticalFlip {
			style = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
		}
		s.screen.SetContent(col, row, ArrowFor(h.Rotation), nil, style)
	}
	s.screen.Show()
}

// ArrowFor picks the arrow glyph closest to a rotation in degrees.
func ArrowFor(degrees int) rune {
	norm := common.NormalizeDegrees(float64(degrees))
	sector := int((norm+22.5)/45) % len(arrows)
	return arrows[sector]
}

func (h *terminalHandle) SetSize(width, height float64) {
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	h.Props.SetSize(width, height)
}

func (h *terminalHandle) SetPosition(left, top float64) {
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	h.Props.SetPosition(left, top)
}

func (h *terminalHandle) SetZIndex(z int) {
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	h.Props.SetZIndex(z)
}

// SetRotation snaps; a cell grid has nothing to ease between.
func (h *terminalHandle) SetRotation(degrees int, transition time.Duration) {
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	h.Rotation = degrees
	h.Transition = transition
}

func (h *terminalHandle) SetVerticalFlip(flip bool) {
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	h.Props.SetVerticalFlip(flip)
}

func (h *terminalHandle) Destroy() {
	h.surface.mu.Lock()
	defer h.surface.mu.Unlock()
	if cur, ok := h.surface.handles[h.id]; ok && cur == h {
		delete(h.surface.handles, h.id)
	}
}
