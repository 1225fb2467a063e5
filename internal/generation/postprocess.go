package generation

import (
	"strings"

	"github.com/ohgiri-live/ohgiri-api/internal/domain"
)

// Truncation layout: text over the limit keeps the first truncateKeepRunes
// runes and gains the ellipsis marker, yielding exactly
// domain.CommentaryMaxRunes displayable characters.
const (
	ellipsisMarker    = "..."
	truncateKeepRunes = domain.CommentaryMaxRunes - len(ellipsisMarker)
)

// PostProcess normalizes raw generator output into displayable commentary
// text. It trims surrounding whitespace and truncates over-long text to the
// display limit. The retry executor runs every backend's output through this,
// so the retry policy sees uniform results.
//
// An empty return value means the output was empty or whitespace-only: a soft
// failure the caller retries, never valid commentary.
func PostProcess(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	runes := []rune(text)
	if len(runes) > domain.CommentaryMaxRunes {
		text = string(runes[:truncateKeepRunes]) + ellipsisMarker
	}

	return text
}
