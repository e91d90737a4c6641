package valueobjects

import "fmt"

// MediaType distinguishes photographic evidence captured before remediation
// work from evidence captured after it.
type MediaType string

const (
	MediaBefore MediaType = "BEFORE"
	MediaAfter  MediaType = "AFTER"
)

func (m MediaType) String() string {
	return string(m)
}

func (m MediaType) IsValid() bool {
	return m == MediaBefore || m == MediaAfter
}

func NewMediaType(s string) (MediaType, error) {
	m := MediaType(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid media type: %s", s)
	}
	return m, nil
}
