package component

// ChildGroup names one collection of boss-spawned dependents.
type ChildGroup string

const (
	GroupRunningMinions ChildGroup = "running_minions"
	GroupFlyingMinions  ChildGroup = "flying_minions"
)

// ChildRegistry tracks non-owning handles to entities a boss spawned. It never
// resolves handles itself; callers pass liveness queries in.
type ChildRegistry struct {
	order  []ChildGroup
	groups map[ChildGroup][]uint64
}

// Track adds id to group. Tracking an id twice is a no-op.
func (r *ChildRegistry) Track(group ChildGroup, id uint64) {
	if id == 0 || r.Contains(id) {
		return
	}
	if r.groups == nil {
		r.groups = make(map[ChildGroup][]uint64)
	}
	if _, ok := r.groups[group]; !ok {
		r.order = append(r.order, group)
	}
	r.groups[group] = append(r.groups[group], id)
}

// Untrack removes id from whichever group holds it.
func (r *ChildRegistry) Untrack(id uint64) bool {
	for _, g := range r.order {
		ids := r.groups[g]
		for i, tracked := range ids {
			if tracked == id {
				r.groups[g] = append(ids[:i], ids[i+1:]...)
				return true
			}
		}
	}
	return false
}

func (r *ChildRegistry) Contains(id uint64) bool {
	for _, g := range r.order {
		for _, tracked := range r.groups[g] {
			if tracked == id {
				return true
			}
		}
	}
	return false
}

// PruneDead drops every handle isDead reports as dead and returns them.
func (r *ChildRegistry) PruneDead(isDead func(id uint64) bool) []uint64 {
	var pruned []uint64
	for _, g := range r.order {
		ids := r.groups[g]
		kept := ids[:0]
		for _, id := range ids {
			if isDead(id) {
				pruned = append(pruned, id)
				continue
			}
			kept = append(kept, id)
		}
		r.groups[g] = kept
	}
	return pruned
}

// DestroyAll empties the registry and returns every handle it held so the
// caller can tear them down.
func (r *ChildRegistry) DestroyAll() []uint64 {
	var all []uint64
	for _, g := range r.order {
		all = append(all, r.groups[g]...)
	}
	r.order = nil
	r.groups = nil
	return all
}

// Group returns a copy of the handles in group.
func (r *ChildRegistry) Group(group ChildGroup) []uint64 {
	return append([]uint64(nil), r.groups[group]...)
}

// Count returns the number of handles in group.
func (r *ChildRegistry) Count(group ChildGroup) int {
	return len(r.groups[group])
}

// Len returns the number of handles across all groups.
func (r *ChildRegistry) Len() int {
	n := 0
	for _, g := range r.order {
		n += len(r.groups[g])
	}
	return n
}

var ChildRegistryComponent = NewComponent[ChildRegistry]()
