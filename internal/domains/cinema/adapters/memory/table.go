package memory

import (
	"sort"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
)

// table holds rows of one entity type. It is not safe for concurrent use on its own;
// the owning Store serializes access.
type table[T any] struct {
	name   string
	rows   map[int64]T
	nextID int64

	base  func(*T) *domain.Base
	strip func(*T)

	unique     func(existing, candidate *T) bool
	references func(*T) bool
	cascade    func(id int64)
	includes   map[ports.Include]func(*T)
}

func newTable[T any](name string, base func(*T) *domain.Base, strip func(*T)) *table[T] {
	return &table[T]{
		name:    name,
		rows:    make(map[int64]T),
		base:    base,
		strip:   strip,
		cascade: func(int64) {},
	}
}

func (t *table[T]) reset() {
	t.rows = make(map[int64]T)
	t.nextID = 0
}

func (t *table[T]) has(id int64) bool {
	_, ok := t.rows[id]
	return ok
}

// get returns a detached copy of the row, or nil.
func (t *table[T]) get(id int64) *T {
	row, ok := t.rows[id]
	if !ok {
		return nil
	}
	return &row
}

func (t *table[T]) put(id int64, entity *T) T {
	row := *entity
	t.strip(&row)
	t.rows[id] = row
	return row
}

func (t *table[T]) remove(id int64) {
	delete(t.rows, id)
}

// where returns detached copies of matching rows ordered by id.
func (t *table[T]) where(match func(*T) bool) []*T {
	out := make([]*T, 0)
	for _, row := range t.rows {
		row := row
		if match == nil || match(&row) {
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return t.base(out[i]).ID < t.base(out[j]).ID })
	return out
}

func (t *table[T]) conflicts(candidate *T, selfID int64) bool {
	if t.unique == nil {
		return false
	}
	for id, row := range t.rows {
		row := row
		if id != selfID && t.unique(&row, candidate) {
			return true
		}
	}
	return false
}
