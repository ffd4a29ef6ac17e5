package advice

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Recommendation is one player-target suggestion from the advice service.
// SuggestedPrice is optional; zero means the service gave no price.
type Recommendation struct {
	Name           string  `json:"name"`
	Reasoning      string  `json:"reasoning"`
	SuggestedPrice float64 `json:"suggestedPrice,omitempty"`
}

// ParseError reports an advice response that could not be turned into
// recommendations.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse advice response: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("parse advice response: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pErr *ParseError
	return errors.As(err, &pErr)
}

type adviceEnvelope struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// ExtractRecommendations pulls the first balanced JSON object out of a
// free-text advice response and decodes its recommendations array. Models
// wrap the JSON in prose often enough that plain unmarshal is not reliable.
func ExtractRecommendations(raw string) ([]Recommendation, error) {
	object, ok := firstJSONObject(raw)
	if !ok {
		return nil, &ParseError{Message: "no JSON object in response"}
	}

	var envelope adviceEnvelope
	if err := json.Unmarshal([]byte(object), &envelope); err != nil {
		return nil, &ParseError{Message: "malformed JSON object", Err: err}
	}
	if len(envelope.Recommendations) == 0 {
		return nil, &ParseError{Message: "no recommendations in response"}
	}

	recs := make([]Recommendation, 0, len(envelope.Recommendations))
	for _, r := range envelope.Recommendations {
		r.Name = strings.TrimSpace(r.Name)
		if r.Name == "" {
			continue
		}
		recs = append(recs, r)
	}
	if len(recs) == 0 {
		return nil, &ParseError{Message: "recommendations missing player names"}
	}
	return recs, nil
}

// firstJSONObject scans for the first balanced top-level {...} span, skipping
// braces inside JSON strings.
func firstJSONObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}
