package console

import "time"

// Kind says who produced a transcript line.
type Kind string

const (
	KindSystem Kind = "system"
	KindInput  Kind = "input"
	KindOutput Kind = "output"
)

// Message is a single line of the console transcript.
type Message struct {
	ID        string    `json:"id"`
	Seq       uint64    `json:"seq"`
	Kind      Kind      `json:"kind"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Seed lines printed when a session opens.
const (
	BannerLine = "LIFELOOP Terminal v2.1.0 - Agentic AI Simulation Layer"
	PromptLine = "Type your life question below..."
)

// Snapshot is a read-only view of a session for rendering.
type Snapshot struct {
	Log          []Message
	PendingInput string
	IsProcessing bool
	TurnCount    int
	Completed    bool
}
