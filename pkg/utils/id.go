package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateRunID returns an ID of the form run-YYYYMMDD-HHMMSS-xxxxxxxx.
func GenerateRunID() string {
	timestamp := time.Now().UTC().Format("20060102-150405")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("run-%s-%s", timestamp, suffix)
}

// GenerateRequestID returns a random UUID for correlating API calls in logs.
func GenerateRequestID() string {
	return uuid.NewString()
}
