package redis

import "github.com/tableroom/tableroom/internal/model"

// Key prefixes for all stored types
const (
	keyPrefix = "tableroom:"

	identityPrefix = keyPrefix + "identity:"
)

func identityKey(id model.ParticipantID) string {
	return identityPrefix + string(id)
}
