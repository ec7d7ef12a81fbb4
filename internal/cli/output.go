package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Participant:
		o.printParticipant(v)
	case Snapshot:
		o.printSnapshot(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Participant response type (matches API)
type Participant struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Snapshot response type
type Snapshot struct {
	RoomID          string       `json:"room_id"`
	Players         []PlayerView `json:"players"`
	CurrentPlayerID *string      `json:"current_player_id"`
	Board           BoardView    `json:"board"`
}

// PlayerView response type
type PlayerView struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	Seat            int    `json:"seat"`
	ActionPoints    int    `json:"action_points"`
	ActionPointsMax int    `json:"action_points_max"`
	HealthPoints    int    `json:"health_points"`
	HealthPointsMax int    `json:"health_points_max"`
}

// BoardView response type
type BoardView struct {
	Selections []Placement `json:"selections"`
	Tokens     []Placement `json:"tokens"`
}

// Placement response type
type Placement struct {
	PlayerID string `json:"player_id"`
	Index    int    `json:"index"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}

func (o *Output) printParticipant(p Participant) {
	fmt.Printf("Participant: %s (%s)\n", p.DisplayName, p.ID)
	if !p.CreatedAt.IsZero() {
		fmt.Printf("Created: %s\n", p.CreatedAt.Format(time.RFC3339))
	}
}

func (o *Output) printSnapshot(s Snapshot) {
	fmt.Printf("Room: %s\n", s.RoomID)
	fmt.Printf("Players (%d):\n", len(s.Players))
	for _, p := range s.Players {
		turnStr := ""
		if s.CurrentPlayerID != nil && *s.CurrentPlayerID == p.ID {
			turnStr = " [turn]"
		}
		fmt.Printf("  %d. %s (%s) AP %d/%d HP %d/%d%s\n",
			p.Seat, p.DisplayName, p.ID,
			p.ActionPoints, p.ActionPointsMax,
			p.HealthPoints, p.HealthPointsMax,
			turnStr)
	}

	if len(s.Board.Selections) > 0 {
		fmt.Println("Markers:")
		for _, sel := range s.Board.Selections {
			fmt.Printf("  %s -> cell %d\n", sel.PlayerID, sel.Index)
		}
	}
	if len(s.Board.Tokens) > 0 {
		fmt.Println("Tokens:")
		for _, tok := range s.Board.Tokens {
			fmt.Printf("  %s -> cell %d\n", tok.PlayerID, tok.Index)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Rooms: %d\n", h.Rooms)
}
