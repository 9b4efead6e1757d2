package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/moodscape"
	"github.com/aretw0/moodscape/pkg/adapters/memory"
	"github.com/aretw0/moodscape/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, label domain.MoodLabel, opts ...Option) *Server {
	t.Helper()
	eng, err := moodscape.New(memory.NewStatic(label))
	require.NoError(t, err)
	t.Cleanup(eng.Close)
	return NewServer(eng, "test", opts...)
}

func TestSubmitWaitsForRitual(t *testing.T) {
	s := newServer(t, domain.MoodOverwhelmed)
	ctx := context.Background()

	resp, err := s.handleSubmit(ctx, mcp.CallToolRequest{}, map[string]interface{}{"text": "too much on my plate"})
	require.NoError(t, err)
	assert.Equal(t, domain.PhasePlaying, resp.Session.Phase)
	assert.Equal(t, "5-4-3-2-1 Grounding", resp.Session.Ritual.Title)
	assert.Equal(t, "Look around you.", resp.Step)
	assert.Equal(t, "slate", resp.Theme.Name)

	resp, err = s.handleAdvance(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Name 5 things you see.", resp.Step)

	_, err = s.handleSubmit(ctx, mcp.CallToolRequest{}, map[string]interface{}{"text": "again"})
	assert.ErrorIs(t, err, domain.ErrNotIdle)

	resp, err = s.handleReset(ctx, mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseIdle, resp.Session.Phase)
	assert.Empty(t, resp.Step)
}

func TestSubmitRejectsInput(t *testing.T) {
	s := newServer(t, domain.MoodCalm, WithMaxInputSize(3))

	_, err := s.handleSubmit(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"text": "too long"})
	assert.Error(t, err)

	resp, err := s.handleGet(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseIdle, resp.Session.Phase)
}

func TestReflect(t *testing.T) {
	s := newServer(t, domain.MoodCalm)

	resp, err := s.handleReflect(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"text": "hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Reply)
	assert.True(t, resp.Mood.IsNone())
}

func TestRitualsJSON(t *testing.T) {
	s := newServer(t, domain.MoodCalm)

	payload, err := s.ritualsJSON()
	require.NoError(t, err)

	var out map[string]domain.Ritual
	require.NoError(t, json.Unmarshal([]byte(payload), &out))
	assert.Len(t, out, 7)
	assert.Equal(t, "4-7-8 Breathing", out["Anxious"].Title)
}
