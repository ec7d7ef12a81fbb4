package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tableroom/tableroom/internal/model"
)

func ids(order ...string) []model.ParticipantID {
	out := make([]model.ParticipantID, len(order))
	for i, s := range order {
		out[i] = model.ParticipantID(s)
	}
	return out
}

func TestCurrentOnEmptyOrder(t *testing.T) {
	var seq turnSequencer
	_, ok := seq.current()
	assert.False(t, ok)
}

func TestFirstAddedBecomesCurrent(t *testing.T) {
	var seq turnSequencer
	assert.True(t, seq.add("a"))
	assert.False(t, seq.add("b"))

	current, ok := seq.current()
	assert.True(t, ok)
	assert.Equal(t, model.ParticipantID("a"), current)
}

func TestAdvanceRotatesInJoinOrder(t *testing.T) {
	var seq turnSequencer
	seq.add("a")
	seq.add("b")
	seq.add("c")

	next, ok := seq.advance()
	assert.True(t, ok)
	assert.Equal(t, model.ParticipantID("b"), next)

	next, _ = seq.advance()
	assert.Equal(t, model.ParticipantID("c"), next)

	next, _ = seq.advance()
	assert.Equal(t, model.ParticipantID("a"), next)
}

func TestAdvanceOnEmptyOrderIsNoop(t *testing.T) {
	var seq turnSequencer
	_, ok := seq.advance()
	assert.False(t, ok)
}

func TestAdvanceSoloKeepsSameParticipant(t *testing.T) {
	var seq turnSequencer
	seq.add("a")

	next, ok := seq.advance()
	assert.True(t, ok)
	assert.Equal(t, model.ParticipantID("a"), next)
}

func TestRemoveCurrentHandsTurnToSuccessor(t *testing.T) {
	var seq turnSequencer
	seq.add("a")
	seq.add("b")
	seq.add("c")

	next, pass := seq.remove("a")
	assert.True(t, pass)
	assert.Equal(t, model.ParticipantID("b"), next)
	assert.Equal(t, ids("b", "c"), seq.order)

	current, _ := seq.current()
	assert.Equal(t, model.ParticipantID("b"), current)
}

func TestRemoveBeforePointerPreservesCurrent(t *testing.T) {
	var seq turnSequencer
	seq.add("a")
	seq.add("b")
	seq.add("c")
	seq.advance() // b current
	seq.advance() // c current

	_, pass := seq.remove("a")
	assert.False(t, pass)

	current, _ := seq.current()
	assert.Equal(t, model.ParticipantID("c"), current)
}

func TestRemoveAfterPointerPreservesCurrent(t *testing.T) {
	var seq turnSequencer
	seq.add("a")
	seq.add("b")
	seq.add("c")

	_, pass := seq.remove("c")
	assert.False(t, pass)

	current, _ := seq.current()
	assert.Equal(t, model.ParticipantID("a"), current)
}

func TestRemoveCurrentMidOrderHandsTurnForward(t *testing.T) {
	var seq turnSequencer
	seq.add("a")
	seq.add("b")
	seq.add("c")
	seq.advance() // b current

	next, pass := seq.remove("b")
	assert.True(t, pass)
	assert.Equal(t, model.ParticipantID("c"), next)
	assert.Equal(t, ids("a", "c"), seq.order)

	current, _ := seq.current()
	assert.Equal(t, model.ParticipantID("c"), current)
}

func TestRemoveCurrentAtEndWrapsToStart(t *testing.T) {
	var seq turnSequencer
	seq.add("a")
	seq.add("b")
	seq.advance() // b current

	next, pass := seq.remove("b")
	assert.True(t, pass)
	assert.Equal(t, model.ParticipantID("a"), next)
}

func TestRemoveLastParticipantEmptiesOrder(t *testing.T) {
	var seq turnSequencer
	seq.add("a")

	_, pass := seq.remove("a")
	assert.False(t, pass)
	assert.Zero(t, seq.len())

	_, ok := seq.current()
	assert.False(t, ok)
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	var seq turnSequencer
	seq.add("a")

	_, pass := seq.remove("b")
	assert.False(t, pass)
	assert.Equal(t, ids("a"), seq.order)
}
