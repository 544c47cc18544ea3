package tui

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/airwatch/internal/airquality"
	"github.com/jask/airwatch/widgets"
)

// maxTypos is how far a query may be from a name and still be listed.
const maxTypos = 2

type pickerItem struct {
	ID    int
	Label string
}

type scoredPickerItem struct {
	item     pickerItem
	matched  bool
	score    int
	distance int
}

// sectorPicker is the "/" popup. Subsequence matches rank first; names
// within maxTypos edits of the query follow, closest first.
type sectorPicker struct {
	items    []pickerItem
	filtered []pickerItem
	query    string
	cursor   int
}

type pickerAction int

const (
	pickerActionNone pickerAction = iota
	pickerActionSelected
	pickerActionCancelled
)

func newSectorPicker(sectors []airquality.Sector) *sectorPicker {
	p := &sectorPicker{}
	for _, s := range sectors {
		p.items = append(p.items, pickerItem{ID: s.ID, Label: s.Name})
	}
	p.rebuild()
	return p
}

func (p *sectorPicker) SetQuery(q string) {
	p.query = q
	p.rebuild()
}

// HandleKey applies a key and reports the chosen sector id on select.
func (p *sectorPicker) HandleKey(keyName string) (pickerAction, int) {
	switch keyName {
	case "up", "ctrl+k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "ctrl+j":
		if p.cursor < len(p.filtered)-1 {
			p.cursor++
		}
	case "enter":
		if len(p.filtered) == 0 {
			return pickerActionNone, 0
		}
		return pickerActionSelected, p.filtered[p.cursor].ID
	case "esc":
		return pickerActionCancelled, 0
	case "backspace":
		if len(p.query) > 0 {
			p.SetQuery(p.query[:len(p.query)-1])
		}
	default:
		if isPrintableASCIIKey(keyName) {
			p.SetQuery(p.query + keyName)
		}
	}
	return pickerActionNone, 0
}

func (p *sectorPicker) View(width int) string {
	rows := make([]string, 0, len(p.filtered))
	for _, it := range p.filtered {
		rows = append(rows, strconv.Itoa(it.ID)+"  "+it.Label)
	}
	list := widgets.List{
		Title:  "Find sector: " + p.query + "▏",
		Items:  rows,
		Cursor: p.cursor,
		Empty:  mutedStyle.Render("no matching sectors"),
	}
	w := min(max(24, width/2), 48)
	return list.Render(w, len(rows)+2)
}

func (p *sectorPicker) rebuild() {
	q := strings.ToLower(strings.TrimSpace(p.query))
	scored := make([]scoredPickerItem, 0, len(p.items))
	for _, it := range p.items {
		s := scorePickerItem(it, q)
		if !s.matched && s.distance > maxTypos {
			continue
		}
		scored = append(scored, s)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.matched != b.matched {
			return a.matched
		}
		if a.score != b.score {
			return a.score > b.score
		}
		if a.distance != b.distance {
			return a.distance < b.distance
		}
		return a.item.ID < b.item.ID
	})

	p.filtered = p.filtered[:0]
	for _, s := range scored {
		p.filtered = append(p.filtered, s.item)
	}
	if p.cursor >= len(p.filtered) {
		p.cursor = max(0, len(p.filtered)-1)
	}
}

func scorePickerItem(it pickerItem, query string) scoredPickerItem {
	s := scoredPickerItem{item: it}
	if query == "" {
		s.matched = true
		return s
	}
	label := strings.ToLower(it.Label)
	if query == strconv.Itoa(it.ID) {
		s.matched, s.score = true, 100
		return s
	}
	s.matched, s.score = subsequenceScore(label, query)
	s.distance = nameDistance(label, query)
	return s
}

// subsequenceScore rewards a match at the start and consecutive runs.
func subsequenceScore(label, query string) (bool, int) {
	matchIdx := make([]int, 0, len(query))
	from := 0
	for i := 0; i < len(query); i++ {
		j := strings.IndexByte(label[from:], query[i])
		if j < 0 {
			return false, 0
		}
		matchIdx = append(matchIdx, from+j)
		from += j + 1
	}
	score := len(query)
	if matchIdx[0] == 0 {
		score += 10
	}
	for i := 1; i < len(matchIdx); i++ {
		if matchIdx[i] == matchIdx[i-1]+1 {
			score += 3
		}
	}
	if label == query {
		score += 20
	}
	return true, score
}

// nameDistance is the smallest edit distance between query and the label
// or any of its words, each cut to the query's length.
func nameDistance(label, query string) int {
	best := levenshtein.ComputeDistance(prefix(label, len(query)), query)
	for _, word := range strings.Fields(label) {
		best = min(best, levenshtein.ComputeDistance(prefix(word, len(query)), query))
	}
	return best
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func isPrintableASCIIKey(keyName string) bool {
	return len(keyName) == 1 && keyName[0] >= 32 && keyName[0] < 127
}
