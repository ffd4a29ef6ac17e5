package feed

import "time"

const (
	defaultHTTPTimeout = 30 * time.Second

	// maxBodyBytes caps how much of an error body is echoed into messages.
	maxBodyBytes = 512
)
