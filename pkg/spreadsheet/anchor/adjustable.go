package anchor

// Adjustable is implemented by every object that carries a grid position.
//
// A remove edit must test IsRemovalEligible against the pre-edit
// coordinates before calling ShiftRemove.
type Adjustable interface {
	// ShiftInsert adds count to every index >= pivot on axis.
	ShiftInsert(axis Axis, pivot, count uint32)
	// ShiftRemove applies RemoveIndex to every index on axis.
	ShiftRemove(axis Axis, pivot, count uint32)
	// IsRemovalEligible reports whether the whole bounding box lies inside
	// [pivot, pivot+count) on axis.
	IsRemovalEligible(axis Axis, pivot, count uint32) bool
}

// Compact removes the eligible items from s, keeping the order of the rest,
// then shifts the survivors. The backing array of s is reused.
func Compact[T Adjustable](s []T, axis Axis, pivot, count uint32) []T {
	if count == 0 {
		return s
	}
	kept := s[:0]
	for _, item := range s {
		if !item.IsRemovalEligible(axis, pivot, count) {
			kept = append(kept, item)
		}
	}
	var zero T
	for i := len(kept); i < len(s); i++ {
		s[i] = zero
	}
	for _, item := range kept {
		item.ShiftRemove(axis, pivot, count)
	}
	return kept
}

// ShiftAll applies ShiftInsert to every item of s.
func ShiftAll[T Adjustable](s []T, axis Axis, pivot, count uint32) {
	if count == 0 {
		return
	}
	for _, item := range s {
		item.ShiftInsert(axis, pivot, count)
	}
}
