package utils

import (
	"testing"

	"github.com/sosodev/duration"
	"github.com/stretchr/testify/assert"
)

func TestHumanizeDuration(t *testing.T) {
	tests := []struct {
		in   duration.Duration
		want string
	}{
		{duration.Duration{}, "0s"},
		{duration.Duration{Seconds: 59}, "59s"},
		{duration.Duration{Days: 1, Hours: 2, Seconds: 5}, "1d 2h 5s"},
		{duration.Duration{Hours: 3, Minutes: 4}, "3h 4m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanizeDuration(&tt.in))
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;Tom &amp; &#34;Jerry&#39;s&#34;&lt;/b&gt;", Escape(`<b>Tom &amp; "Jerry's"</b>`))
}

func TestEmbedGUID(t *testing.T) {
	assert.Equal(t, "\n(<code>abc</code>)", EmbedGUID("abc"))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "General", Capitalize("general"))
	assert.Equal(t, "Écran", Capitalize("écran"))
	assert.Equal(t, "", Capitalize(""))
}

func TestFormatThousand(t *testing.T) {
	assert.Equal(t, "1.500.000", FormatThousand(1500000))
	assert.Equal(t, "-1.000", FormatThousand(-1000))
	assert.Equal(t, "999", FormatThousand(999))
}
