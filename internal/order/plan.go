package order

// baseline returns the order a mutation starts from: custom (when non-empty) else fallback.
// Ids of fallback that custom does not mention are appended in fallback order; they are
// already displayed after every custom id, so appending them does not move anything.
func baseline(custom, fallback []int) []int {
	if len(custom) == 0 {
		return append([]int{}, fallback...)
	}
	out := append([]int{}, custom...)
	seen := make(map[int]bool, len(out))
	for _, id := range out {
		seen[id] = true
	}
	for _, id := range fallback {
		if !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	return out
}

func indexOf(ids []int, id int) int {
	for i, x := range ids {
		if x == id {
			return i
		}
	}
	return -1
}

// PlanSwap computes the order after exchanging visible[a] and visible[b].
func PlanSwap(custom, visible, gated []int, a, b int) ([]int, bool) {
	if a == b || a < 0 || b < 0 || a >= len(visible) || b >= len(visible) {
		return nil, false
	}
	idA, idB := visible[a], visible[b]

	work := baseline(custom, gated)
	pa := indexOf(work, idA)
	pb := indexOf(work, idB)
	if pa < 0 || pb < 0 {
		return nil, false
	}
	work[pa], work[pb] = work[pb], work[pa]
	return work, true
}

// PlanDrag computes the order after dropping draggedID at targetIndex.
//
// The id occupying targetIndex in the visible list with draggedID removed is the anchor;
// draggedID is inserted immediately before the anchor in the baseline, or appended when
// targetIndex is at or past the end.
func PlanDrag(custom, visible []int, draggedID, targetIndex, originIndex int) ([]int, bool) {
	if targetIndex == originIndex || targetIndex < 0 {
		return nil, false
	}
	if indexOf(visible, draggedID) < 0 {
		return nil, false
	}

	work := baseline(custom, visible)
	if p := indexOf(work, draggedID); p >= 0 {
		work = append(work[:p], work[p+1:]...)
	}

	rest := make([]int, 0, len(visible))
	for _, id := range visible {
		if id != draggedID {
			rest = append(rest, id)
		}
	}

	if targetIndex >= len(rest) {
		return append(work, draggedID), true
	}
	anchor := rest[targetIndex]
	at := indexOf(work, anchor)
	if at < 0 {
		return append(work, draggedID), true
	}
	out := make([]int, 0, len(work)+1)
	out = append(out, work[:at]...)
	out = append(out, draggedID)
	out = append(out, work[at:]...)
	return out, true
}
