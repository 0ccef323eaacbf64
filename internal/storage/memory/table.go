package memory

// table is one keyed collection plus its id sequence. Rows come back in
// insertion order. Callers hold the store lock.
type table[T any] struct {
	seq   *Sequence
	rows  map[int64]T
	order []int64
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &table[T]{seq: NewSequence(), rows: map[int64]T{}, clone: clone}
}

func (t *table[T]) get(id int64) (T, bool) {
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(v), true
}

func (t *table[T]) put(id int64, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = t.clone(v)
}

func (t *table[T]) delete(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	if len(t.order) > 2*len(t.rows)+16 {
		t.compact()
	}
	return true
}

// scan returns every row that keep accepts; a nil keep accepts all.
func (t *table[T]) scan(keep func(T) bool) []T {
	out := make([]T, 0)
	for _, id := range t.order {
		v, ok := t.rows[id]
		if !ok {
			continue
		}
		if keep == nil || keep(v) {
			out = append(out, t.clone(v))
		}
	}
	return out
}

func (t *table[T]) compact() {
	live := t.order[:0]
	for _, id := range t.order {
		if _, ok := t.rows[id]; ok {
			live = append(live, id)
		}
	}
	t.order = live
}
