package main

import "gridsnake/snake"

// Protocol uses single-character JSON keys to keep frames small.
//
// Message type constants (value of "t" field):
//   Client → Server:
//     "j" = join      {"t":"j","n":"PlayerName"}
//     "d" = direction {"t":"d","d":"up"}   (up/down/left/right or h/j/k/l)
//     "r" = reset     {"t":"r"}            (fresh session, same name)
//   Server → Client:
//     "w" = welcome {"t":"w","i":"id","hw":400,"hh":400,"c":8}
//     "s" = state   {"t":"s","s":[[x,y],...],"f":[x,y],"o":0,"n":1,"k":12}
//     "o" = over    {"t":"o","r":"self-collision","n":7}

// Message type identifiers
const (
	MsgJoin      = "j"
	MsgDirection = "d"
	MsgReset     = "r"
	MsgWelcome   = "w"
	MsgState     = "s"
	MsgOver      = "o"
	MsgError     = "e"
)

// ClientMessage is any incoming message from the browser.
type ClientMessage struct {
	Type      string `json:"t"`
	Name      string `json:"n,omitempty"`
	Direction string `json:"d,omitempty"`
}

// WelcomeMsg is sent on connect so the client can size its canvas.
type WelcomeMsg struct {
	Type       string `json:"t"`
	ID         string `json:"i"`
	HalfWidth  int    `json:"hw"`
	HalfHeight int    `json:"hh"`
	CellSize   int    `json:"c"`
}

// StateMsg is the per-tick snapshot of one session.
// Segments are [x,y] pairs, head first.
type StateMsg struct {
	Type     string   `json:"t"`
	Segments [][2]int `json:"s"`
	Food     [2]int   `json:"f"`
	Over     int      `json:"o"` // 0 running, 1 over
	Length   int      `json:"n"`
	Tick     int      `json:"k"`
}

// OverMsg is sent once when a session ends.
type OverMsg struct {
	Type   string `json:"t"`
	Reason string `json:"r"`
	Length int    `json:"n"`
}

// ErrorMsg carries a human readable reason before the server hangs up.
type ErrorMsg struct {
	Type    string `json:"t"`
	Message string `json:"m"`
}

// NewStateMsg converts an engine snapshot to its wire form
func NewStateMsg(s snake.Snapshot) StateMsg {
	segs := make([][2]int, len(s.Segments))
	for i, p := range s.Segments {
		segs[i] = [2]int{p.X, p.Y}
	}
	over := 0
	if s.Status == snake.Over {
		over = 1
	}
	return StateMsg{
		Type:     MsgState,
		Segments: segs,
		Food:     [2]int{s.Food.X, s.Food.Y},
		Over:     over,
		Length:   len(s.Segments),
		Tick:     s.Tick,
	}
}

// NewOverMsg builds the terminal message for a finished session
func NewOverMsg(s snake.Snapshot) OverMsg {
	return OverMsg{Type: MsgOver, Reason: s.Reason.String(), Length: len(s.Segments)}
}
