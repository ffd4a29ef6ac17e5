package timeutil

import "time"

// StampLayout defines the canonical timestamp format used for catalog
// updates and session sync times (RFC 3339, UTC).
const StampLayout = time.RFC3339

// FileStampLayout is a filesystem-safe variant used in snapshot names.
const FileStampLayout = "20060102T150405Z"

// Now returns the current UTC time truncated to whole seconds.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// FormatStamp formats a time as RFC 3339 in UTC.
func FormatStamp(t time.Time) string {
	return t.UTC().Format(StampLayout)
}

// ParseStamp parses an RFC 3339 timestamp.
func ParseStamp(value string) (time.Time, error) {
	return time.Parse(StampLayout, value)
}

// FileStamp formats a time for use in snapshot filenames.
func FileStamp(t time.Time) string {
	return t.UTC().Format(FileStampLayout)
}
