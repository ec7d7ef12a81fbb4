package engine

import "github.com/tableroom/tableroom/internal/model"

// RejectReason classifies why a command was refused. Reasons exist so a
// future interface can surface them; today every transport stays silent on
// rejection and clients infer it from the unchanged snapshot.
type RejectReason string

const (
	RejectNone               RejectReason = ""
	RejectMalformedInput     RejectReason = "malformed_input"
	RejectUnknownRoom        RejectReason = "unknown_room"
	RejectUnknownParticipant RejectReason = "unknown_participant"
	RejectNotYourTurn        RejectReason = "not_your_turn"
	RejectInsufficientAP     RejectReason = "insufficient_action_points"
)

// Result is the outcome of one command. Exactly one of the following holds:
//   - Accepted with a Snapshot to broadcast,
//   - Accepted with a nil Snapshot (the room was destroyed; nothing to
//     broadcast to),
//   - not Accepted, with a Reason and no state change.
type Result struct {
	Accepted bool
	Reason   RejectReason
	Snapshot *model.Snapshot
}

func accepted(snapshot *model.Snapshot) Result {
	return Result{Accepted: true, Snapshot: snapshot}
}

func rejected(reason RejectReason) Result {
	return Result{Reason: reason}
}
