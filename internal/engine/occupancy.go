package engine

import "github.com/tableroom/tableroom/internal/model"

// occupancy tracks at most one marker (ephemeral ping) and one token
// (persistent piece) per participant. Writes overwrite in place; no history
// is kept. Snapshot assembly never iterates these maps directly — it walks
// the seat-ordered player list and looks entries up, keeping output
// deterministic.
type occupancy struct {
	markers map[model.ParticipantID]model.BoardIndex
	tokens  map[model.ParticipantID]model.BoardIndex
}

func newOccupancy() occupancy {
	return occupancy{
		markers: make(map[model.ParticipantID]model.BoardIndex),
		tokens:  make(map[model.ParticipantID]model.BoardIndex),
	}
}

func (o *occupancy) setMarker(id model.ParticipantID, index model.BoardIndex) {
	o.markers[id] = index
}

func (o *occupancy) setToken(id model.ParticipantID, index model.BoardIndex) {
	o.tokens[id] = index
}

func (o *occupancy) marker(id model.ParticipantID) (model.BoardIndex, bool) {
	index, ok := o.markers[id]
	return index, ok
}

func (o *occupancy) token(id model.ParticipantID) (model.BoardIndex, bool) {
	index, ok := o.tokens[id]
	return index, ok
}

// clear removes both entries for a departing participant.
func (o *occupancy) clear(id model.ParticipantID) {
	delete(o.markers, id)
	delete(o.tokens, id)
}
