package generation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPostProcess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "trims surrounding whitespace",
			raw:  "  見事なボケです。 \n",
			want: "見事なボケです。",
		},
		{
			name: "empty input is a soft failure",
			raw:  "",
			want: "",
		},
		{
			name: "whitespace-only input is a soft failure",
			raw:  " \t\n　",
			want: "",
		},
		{
			name: "text at the limit passes through",
			raw:  strings.Repeat("あ", 75),
			want: strings.Repeat("あ", 75),
		},
		{
			name: "over-long text keeps 72 runes plus the ellipsis marker",
			raw:  strings.Repeat("あ", 80),
			want: strings.Repeat("あ", 72) + "...",
		},
		{
			name: "ascii over-long text truncates the same way",
			raw:  strings.Repeat("x", 100),
			want: strings.Repeat("x", 72) + "...",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PostProcess(tc.raw))
		})
	}
}

func TestPostProcessTruncatedLengthIsExactlyTheLimit(t *testing.T) {
	t.Parallel()

	for _, length := range []int{76, 80, 100, 500} {
		got := PostProcess(strings.Repeat("笑", length))
		assert.Equal(t, 75, utf8.RuneCountInString(got), "input length %d", length)
		assert.True(t, strings.HasSuffix(got, "..."))
	}
}
