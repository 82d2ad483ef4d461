package search

import (
	"context"
	"fmt"
)

// Diffbot is a placeholder for an organizational-data lookup backend. No real
// API is wired; it returns a fixed simulated result so the rest of the
// pipeline can be exercised end to end.
type Diffbot struct{}

func NewDiffbot() *Diffbot {
	return &Diffbot{}
}

func (d *Diffbot) Name() string {
	return "diffbot"
}

func (d *Diffbot) Search(ctx context.Context, topic string) (string, error) {
	return fmt.Sprintf("Simulated Diffbot search results for topic: %s", topic), nil
}
