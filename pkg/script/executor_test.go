package script

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession scripts one reply per command name.
type fakeSession struct {
	replies map[string]any
	errs    map[string]error
	calls   [][]any
}

func (s *fakeSession) Do(_ context.Context, args ...any) (any, error) {
	s.calls = append(s.calls, args)
	name := fmt.Sprintf("%v", args[0])
	if err, ok := s.errs[name]; ok {
		return nil, err
	}
	return s.replies[name], nil
}

func TestRunExecutesInOrder(t *testing.T) {
	session := &fakeSession{replies: map[string]any{
		"SET": "OK",
		"GET": "1",
		"DEL": int64(1),
	}}

	results := NewExecutor(session, nil).Run(context.Background(), "SET a 1\nGET a\nDEL a")
	require.Len(t, results, 3)

	assert.Equal(t, Result{Command: "SET a 1", Output: "OK"}, results[0])
	assert.Equal(t, Result{Command: "GET a", Output: "1"}, results[1])
	assert.Equal(t, Result{Command: "DEL a", Output: "1"}, results[2])

	require.Len(t, session.calls, 3)
	assert.Equal(t, []any{"SET", "a", "1"}, session.calls[0])
	assert.Equal(t, []any{"GET", "a"}, session.calls[1])
	assert.Equal(t, []any{"DEL", "a"}, session.calls[2])
}

func TestRunFailingCommandDoesNotStopScript(t *testing.T) {
	session := &fakeSession{
		replies: map[string]any{"PING": "PONG"},
		errs:    map[string]error{"BROKEN": errors.New("unknown command")},
	}

	text := "PING one\nPING two\nBROKEN now\nPING four\nPING five"
	results := NewExecutor(session, nil).Run(context.Background(), text)

	require.Len(t, results, 5)
	for i, r := range results {
		if i == 2 {
			assert.Equal(t, "Error: unknown command", r.Output)
			continue
		}
		assert.Equal(t, "PONG", r.Output, "entry %d", i)
	}
	assert.Equal(t, "BROKEN now", results[2].Command)
}

func TestRunSkippedLinesProduceNoEntries(t *testing.T) {
	session := &fakeSession{replies: map[string]any{"PING": "PONG"}}

	text := "PING one\n\nPING two\n# comment\nPING three"
	results := NewExecutor(session, nil).Run(context.Background(), text)

	require.Len(t, results, 3)
	assert.Equal(t, "PING one", results[0].Command)
	assert.Equal(t, "PING two", results[1].Command)
	assert.Equal(t, "PING three", results[2].Command)
}

func TestRunNilReply(t *testing.T) {
	session := &fakeSession{replies: map[string]any{"GET": nil}}

	results := NewExecutor(session, nil).Run(context.Background(), "GET missing")
	require.Len(t, results, 1)
	assert.Equal(t, "(nil)", results[0].Output)
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name  string
		reply any
		want  string
	}{
		{name: "nil", reply: nil, want: "(nil)"},
		{name: "status", reply: "OK", want: "OK"},
		{name: "bulk bytes", reply: []byte("value"), want: "value"},
		{name: "integer", reply: int64(42), want: "42"},
		{name: "bool", reply: true, want: "true"},
		{name: "float", reply: 1.5, want: "1.5"},
		{name: "array falls back to debug form", reply: []any{"a", int64(1)}, want: "[a 1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stringify(tt.reply))
		})
	}
}
