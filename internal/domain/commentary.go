package domain

import "unicode/utf8"

// CommentaryStatus represents the processing state of an answer's commentary.
type CommentaryStatus string

// Possible commentary status values. The state machine is
// pending -> ready or pending -> failed, exactly once.
const (
	CommentaryStatusPending CommentaryStatus = "pending"
	CommentaryStatusReady   CommentaryStatus = "ready"
	CommentaryStatusFailed  CommentaryStatus = "failed"
)

// Fixed commentary strings. These match the strings the product has always
// shown and must not be reworded.
const (
	// CommentaryPlaceholder is rendered while commentary is pending.
	CommentaryPlaceholder = "生成中..."

	// CommentaryFailedApology is stored when generation attempts are exhausted.
	CommentaryFailedApology = "申し訳ありません。総評の生成に失敗しました。"

	// CommentaryErrorApology is stored when the final attempt failed with a
	// transport or timeout error.
	CommentaryErrorApology = "申し訳ありません。総評の生成中にエラーが発生しました。"
)

// CommentaryMaxRunes is the display limit for generated commentary text,
// counted in runes since commentary is Japanese.
const CommentaryMaxRunes = 75

// Commentary is the state of an answer's AI-generated one-line remark.
// The zero value is not valid; use PendingCommentary, NewReadyCommentary,
// or NewFailedCommentary.
type Commentary struct {
	Status CommentaryStatus `json:"status"`
	Text   string           `json:"text"`
}

// PendingCommentary returns the initial commentary state set at answer creation.
func PendingCommentary() Commentary {
	return Commentary{Status: CommentaryStatusPending}
}

// NewReadyCommentary returns a terminal success commentary carrying the
// generated text. The text must be non-empty and within the display limit.
func NewReadyCommentary(text string) (Commentary, error) {
	if text == "" {
		return Commentary{}, ErrEmptyAnswerText
	}
	if utf8.RuneCountInString(text) > CommentaryMaxRunes {
		return Commentary{}, ErrCommentaryTooLong
	}
	return Commentary{Status: CommentaryStatusReady, Text: text}, nil
}

// NewFailedCommentary returns a terminal failure commentary. The text must be
// one of the fixed apology messages so the client never sees a raw error.
func NewFailedCommentary(apology string) (Commentary, error) {
	if apology != CommentaryFailedApology && apology != CommentaryErrorApology {
		return Commentary{}, ErrUnknownApology
	}
	return Commentary{Status: CommentaryStatusFailed, Text: apology}, nil
}

// Terminal reports whether the commentary has reached a final state.
func (c Commentary) Terminal() bool {
	return c.Status == CommentaryStatusReady || c.Status == CommentaryStatusFailed
}

// Display returns the string shown to clients for this commentary state.
// Pending commentary renders as the fixed placeholder.
func (c Commentary) Display() string {
	if c.Status == CommentaryStatusPending {
		return CommentaryPlaceholder
	}
	return c.Text
}

// Validate checks the commentary for a known status and consistent text.
func (c Commentary) Validate() error {
	switch c.Status {
	case CommentaryStatusPending:
		return nil
	case CommentaryStatusReady:
		if c.Text == "" {
			return ErrEmptyAnswerText
		}
		if utf8.RuneCountInString(c.Text) > CommentaryMaxRunes {
			return ErrCommentaryTooLong
		}
		return nil
	case CommentaryStatusFailed:
		if c.Text != CommentaryFailedApology && c.Text != CommentaryErrorApology {
			return ErrUnknownApology
		}
		return nil
	default:
		return ErrInvalidCommentaryStatus
	}
}
