package clickup

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"abc"`, "abc"},
		{`12345`, "12345"},
		{`12.5`, "12.5"},
		{`null`, ""},
		{`{"nested":true}`, ""},
		{`[1,2]`, ""},
		{`true`, ""},
	}
	for _, tt := range tests {
		var s flexString
		require.NoError(t, json.Unmarshal([]byte(tt.in), &s), tt.in)
		assert.Equal(t, tt.want, string(s), tt.in)
	}
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{`42`, 42, true},
		{`"42"`, 42, true},
		{`42.9`, 42, true},
		{`null`, 0, false},
		{`"not a number"`, 0, false},
		{`{}`, 0, false},
	}
	for _, tt := range tests {
		var n flexInt
		require.NoError(t, json.Unmarshal([]byte(tt.in), &n), tt.in)
		assert.Equal(t, tt.ok, n.OK, tt.in)
		assert.Equal(t, tt.want, n.Val, tt.in)
	}
}

func TestDecodeCursor(t *testing.T) {
	intp := func(v int64) *flexInt { return &flexInt{Val: v, OK: true} }

	t.Run("no signals means exhausted", func(t *testing.T) {
		assert.Equal(t, cursorExhausted, decodeCursor(pageSignals{}, 0).kind)
	})

	t.Run("cursor token wins", func(t *testing.T) {
		got := decodeCursor(pageSignals{Cursor: "abc", NextPage: intp(5)}, 0)
		assert.Equal(t, cursorToken, got.kind)
		assert.Equal(t, "abc", got.token)
	})

	t.Run("advancing next_page", func(t *testing.T) {
		got := decodeCursor(pageSignals{NextPage: intp(3)}, 2)
		assert.Equal(t, cursorPageNumber, got.kind)
		assert.Equal(t, 3, got.nextPage)
	})

	t.Run("non-advancing next_page stops the scan", func(t *testing.T) {
		assert.Equal(t, cursorExhausted, decodeCursor(pageSignals{NextPage: intp(2)}, 2).kind)
		assert.Equal(t, cursorExhausted, decodeCursor(pageSignals{NextPage: intp(0)}, 0).kind)
	})

	t.Run("last_page count", func(t *testing.T) {
		got := decodeCursor(pageSignals{LastPage: intp(2)}, 0)
		assert.Equal(t, cursorLastPageCount, got.kind)
		assert.Equal(t, 1, got.nextPage)

		assert.Equal(t, cursorExhausted, decodeCursor(pageSignals{LastPage: intp(2)}, 2).kind)
	})
}
