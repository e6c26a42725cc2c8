package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello", "hello"},
		{"trims whitespace", "  hello  ", "hello"},
		{"strips tags", "<b>hello</b>", "hello"},
		{"strips script", "<script>alert(1)</script>ann", "ann"},
		{"markup only", "<img src=x>", ""},
		{"keeps inner text", "a <i>b</i> c", "a b c"},
		{"unescapes entities", "a &amp; b", "a & b"},
		{"accented text", "joão", "joão"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}
