package request

// CreateParticipantRequest is the request body for minting an identity
type CreateParticipantRequest struct {
	DisplayName string `json:"display_name"`
}

// JoinRoomRequest is the request body for joining a room
type JoinRoomRequest struct {
	DisplayName string `json:"display_name"`
}

// PlaceRequest is the request body for marker and token placement
type PlaceRequest struct {
	Index int `json:"index"`
}
