package dashboard

// SelectionController tracks the sector under inspection. Every Select bumps
// the generation, including re-selecting the current sector; selection-scoped
// responses tagged with an older generation are stale.
type SelectionController struct {
	id         int
	selected   bool
	generation uint64
}

func (s *SelectionController) Select(id int) uint64 {
	s.id = id
	s.selected = true
	s.generation++
	return s.generation
}

func (s *SelectionController) Current() (int, bool) { return s.id, s.selected }
func (s *SelectionController) Generation() uint64   { return s.generation }

func (s *SelectionController) Matches(generation uint64) bool {
	return s.selected && generation == s.generation
}
