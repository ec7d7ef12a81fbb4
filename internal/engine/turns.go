package engine

import "github.com/tableroom/tableroom/internal/model"

// turnSequencer decides whose turn it is. It keeps participants in join
// order plus a rotating pointer; all the modulo and removal-shift logic
// lives here and nowhere else. Authorization ("is it my turn") is the
// Room's job, not the sequencer's.
type turnSequencer struct {
	order []model.ParticipantID
	index int
}

// current returns the acting participant, or false for an empty order.
func (t *turnSequencer) current() (model.ParticipantID, bool) {
	if len(t.order) == 0 {
		return "", false
	}
	return t.order[t.index%len(t.order)], true
}

// add appends id at the end of the order and reports whether it became the
// acting participant (only true for the first participant ever added, whose
// turn starts immediately).
func (t *turnSequencer) add(id model.ParticipantID) bool {
	t.order = append(t.order, id)
	return len(t.order) == 1
}

// remove drops id from the order. When the removed position is strictly
// before the pointer, the pointer shifts back by one so it keeps tracking
// the same logical slot; removing the acting participant leaves the pointer
// in place, which after the shift lands on their successor. The pointer then
// wraps to zero if the order emptied or it ran off the end. If the removed
// participant was the acting one, remove returns the participant whose turn
// now begins, so the game does not stall on a mid-turn disconnect.
func (t *turnSequencer) remove(id model.ParticipantID) (model.ParticipantID, bool) {
	pos := -1
	for i, pid := range t.order {
		if pid == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return "", false
	}

	wasCurrent := pos == t.index
	t.order = append(t.order[:pos], t.order[pos+1:]...)

	if pos < t.index && t.index > 0 {
		t.index--
	}
	if len(t.order) == 0 {
		t.index = 0
		return "", false
	}
	if t.index >= len(t.order) {
		t.index = 0
	}

	if wasCurrent {
		return t.order[t.index], true
	}
	return "", false
}

// advance moves the pointer to the next participant and returns them. It is
// a no-op on an empty order. In a solo room the same participant stays
// current, which still counts as a new turn for the caller's purposes.
func (t *turnSequencer) advance() (model.ParticipantID, bool) {
	if len(t.order) == 0 {
		return "", false
	}
	t.index = (t.index + 1) % len(t.order)
	return t.order[t.index], true
}

func (t *turnSequencer) len() int {
	return len(t.order)
}
