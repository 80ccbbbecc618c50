package main

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

// TestMain runs before all tests and loads .env if available
func TestMain(m *testing.M) {
	// Ignore the error: a missing .env just means CI-style defaults.
	_ = godotenv.Load()

	os.Exit(m.Run())
}
