package main

import (
	"encoding/json"
	"testing"

	"gridsnake/snake"
)

func TestStateMsgWireFormat(t *testing.T) {
	msg := NewStateMsg(snake.Snapshot{
		Segments: []snake.Point{{X: 8, Y: 0}, {X: 0, Y: 0}},
		Food:     snake.Point{X: 32, Y: 16},
		Status:   snake.Running,
		Tick:     3,
	})
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"t":"s","s":[[8,0],[0,0]],"f":[32,16],"o":0,"n":2,"k":3}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestOverMsgWireFormat(t *testing.T) {
	msg := NewOverMsg(snake.Snapshot{
		Segments: []snake.Point{{X: -8, Y: 0}, {X: -8, Y: 8}, {X: 0, Y: 8}},
		Status:   snake.Over,
		Reason:   snake.SelfCollision,
	})
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"t":"o","r":"self-collision","n":3}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestClientMessageDecode(t *testing.T) {
	var msg ClientMessage
	if err := json.Unmarshal([]byte(`{"t":"d","d":"left"}`), &msg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if msg.Type != MsgDirection || msg.Direction != "left" {
		t.Errorf("unexpected message %+v", msg)
	}
}
