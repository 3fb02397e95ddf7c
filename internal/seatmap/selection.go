package seatmap

// Selection is the session-scoped set of seat UIDs a customer has picked
// before checkout.  It lives for one seat-picking session, is never shared
// across requests, and is discarded after the checkout redirect.  UIDs holds
// insertion order so the checkout payload lists seats the way the user
// picked them; membership is tracked separately for O(1) toggles.
type Selection struct {
	order   []string
	members map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{members: make(map[string]struct{})}
}

// Toggle flips membership of uid: a non-member is added, a member is
// removed.  Toggling the same uid twice restores the prior state, and a uid
// never appears more than once.
func (s *Selection) Toggle(uid string) {
	if _, ok := s.members[uid]; ok {
		delete(s.members, uid)
		for i, v := range s.order {
			if v == uid {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return
	}
	s.members[uid] = struct{}{}
	s.order = append(s.order, uid)
}

// Contains reports whether uid is currently selected.
func (s *Selection) Contains(uid string) bool {
	_, ok := s.members[uid]
	return ok
}

// UIDs returns the selected seat UIDs in the order they were picked.  The
// returned slice is a copy; mutating it does not affect the selection.
func (s *Selection) UIDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of selected seats.
func (s *Selection) Len() int {
	return len(s.order)
}

// Clear empties the selection, e.g. on navigation away or after a
// successful checkout redirect.
func (s *Selection) Clear() {
	s.order = s.order[:0]
	s.members = make(map[string]struct{})
}
