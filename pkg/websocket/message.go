package websocket

import "time"

// Envelope wraps every message pushed to a client; Type tells the frontend
// how to read Payload.
type Envelope struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}
