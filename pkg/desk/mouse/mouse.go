// Package mouse maps terminal click coordinates to named screen regions.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// doubleClickWindow is the max gap between two clicks on one region.
const doubleClickWindow = 400 * time.Millisecond

// Rect is a screen rectangle. W and H are exclusive extents.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) falls inside the rect
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named, hit-testable area
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds regions in registration order. Later regions win on overlap.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty hit map
func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect registers a region
func (hm *HitMap) AddRect(id string, x, y, w, h int, data any) {
	hm.regions = append(hm.regions, Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h}, Data: data})
}

// Test returns the topmost region at (x, y), or nil
func (hm *HitMap) Test(x, y int) *Region {
	for i := len(hm.regions) - 1; i >= 0; i-- {
		if hm.regions[i].Rect.Contains(x, y) {
			return &hm.regions[i]
		}
	}
	return nil
}

// Regions returns the registered regions
func (hm *HitMap) Regions() []Region {
	return hm.regions
}

// Clear removes all regions. Call before each render.
func (hm *HitMap) Clear() {
	hm.regions = hm.regions[:0]
}

// ActionType classifies a mouse event
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionHover
	ActionScrollUp
	ActionScrollDown
)

// Action is the interpreted result of a mouse event
type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int
}

// ClickResult is returned by HandleClick
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler interprets mouse events against a hit map
type Handler struct {
	HitMap *HitMap

	lastClickID string
	lastClickAt time.Time
}

// NewHandler creates a handler with an empty hit map
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap()}
}

// HandleClick hit-tests a click and tracks double clicks on the same region.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	if region == nil {
		h.lastClickID = ""
		return ClickResult{}
	}

	now := time.Now()
	double := region.ID == h.lastClickID && now.Sub(h.lastClickAt) <= doubleClickWindow
	if double {
		// a third click starts a new sequence
		h.lastClickID = ""
	} else {
		h.lastClickID = region.ID
		h.lastClickAt = now
	}
	return ClickResult{Region: region, IsDoubleClick: double}
}

// HandleMouse converts a bubbletea mouse message into an Action
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	action := Action{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			action.Type = ActionScrollUp
			action.Region = h.HitMap.Test(msg.X, msg.Y)
		case tea.MouseButtonWheelDown:
			action.Type = ActionScrollDown
			action.Region = h.HitMap.Test(msg.X, msg.Y)
		case tea.MouseButtonLeft:
			res := h.HandleClick(msg.X, msg.Y)
			action.Region = res.Region
			action.Type = ActionClick
			if res.IsDoubleClick {
				action.Type = ActionDoubleClick
			}
		}
	case tea.MouseActionMotion:
		action.Type = ActionHover
		action.Region = h.HitMap.Test(msg.X, msg.Y)
	}

	return action
}

// Clear resets the hit map
func (h *Handler) Clear() {
	h.HitMap.Clear()
}
