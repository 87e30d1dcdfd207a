// Command planner is a command-line client for trip itineraries. It runs the
// same itinerary planner as the web UI, either against a running API server
// or directly against the database, and manages migrations and seed data.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
