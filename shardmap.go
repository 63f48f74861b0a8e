package qunit

// shardMap is the ordered sequence of shards indexed by logical qubit
// position. Logical positions shift on
// insert/erase, so every operation that removes or inserts a qubit must go
// through this type rather than slicing the backing array directly.
type shardMap struct {
	items []*Shard
}

// newShardMap returns a shard map of n freshly allocated ground-state
// shards.
func newShardMap(n int) *shardMap {
	items := make([]*Shard, n)
	for i := range items {
		items[i] = newGroundShard()
	}
	return &shardMap{items: items}
}

func (m *shardMap) len() int {
	return len(m.items)
}

func (m *shardMap) at(i int) *Shard {
	return m.items[i]
}

// insert splices shard s into logical position i, shifting everything at
// or after i up by one.
func (m *shardMap) insert(i int, s *Shard) {
	m.items = append(m.items, nil)
	copy(m.items[i+1:], m.items[i:])
	m.items[i] = s
}

// erase removes the shard at logical position i, shifting everything after
// it down by one, and returns the removed shard.
func (m *shardMap) erase(i int) *Shard {
	s := m.items[i]
	copy(m.items[i:], m.items[i+1:])
	m.items = m.items[:len(m.items)-1]
	return s
}

// swap exchanges the shards at logical positions i and j with no engine
// interaction — callers decide separately whether an engine-level swap is
// also required.
func (m *shardMap) swap(i, j int) {
	m.items[i], m.items[j] = m.items[j], m.items[i]
}

// indexOf returns the logical position of shard s, or -1 if it is not in
// the map. Used sparingly (entangler bookkeeping); most code threads
// logical indices explicitly instead.
func (m *shardMap) indexOf(s *Shard) int {
	for i, item := range m.items {
		if item == s {
			return i
		}
	}
	return -1
}

// all returns the full backing slice. Callers must not retain it across an
// insert/erase, which may reallocate.
func (m *shardMap) all() []*Shard {
	return m.items
}
