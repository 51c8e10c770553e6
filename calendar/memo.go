package calendar

import "sync"

type memoKey struct {
	year, month int
	today       date
}

// Memo caches grids per (year, month) for the current date. Entries built
// on an earlier date are dropped once a later date is seen. A Memo is safe for
// concurrent use; callers receive their own copy of each grid.
type Memo struct {
	opts options

	mu    sync.Mutex
	grids map[memoKey][]Cell
}

// NewMemo returns a Memo building grids with opts.
func NewMemo(opts ...Option) *Memo {
	return &Memo{opts: newOptions(opts), grids: make(map[memoKey][]Cell)}
}

// Month is the cached counterpart of the package-level Month.
func (m *Memo) Month(year, month int) ([]Cell, error) {
	if err := checkMonth(month); err != nil {
		return nil, err
	}
	key := memoKey{year: year, month: month, today: m.opts.today()}

	m.mu.Lock()
	g, ok := m.grids[key]
	m.mu.Unlock()
	if ok {
		return append([]Cell(nil), g...), nil
	}

	g = build(year, month, key.today, m.opts)

	m.mu.Lock()
	// a build that read an older date must not displace newer grids
	newer := false
	for k := range m.grids {
		switch {
		case k.today.before(key.today):
			delete(m.grids, k)
		case key.today.before(k.today):
			newer = true
		}
	}
	if !newer {
		m.grids[key] = g
	}
	m.mu.Unlock()
	return append([]Cell(nil), g...), nil
}

// Len returns the number of cached grids.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.grids)
}
