package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	text   string
	err    error
	topK   int
	query  string
	k      int
	called bool
}

func (f *fakeService) Lookup(ctx context.Context, query string, k int) (string, error) {
	f.called = true
	f.query = query
	f.k = k
	return f.text, f.err
}

func (f *fakeService) TopK() int { return f.topK }

func callRequest(args map[string]any) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Name = Name
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return content.Text
}

func TestLookup_Handle(t *testing.T) {
	testCases := []struct {
		description string
		args        map[string]any
		service     *fakeService
		expectText  string
		expectK     int
		expectError bool
	}{
		{
			description: "default k",
			args:        map[string]any{"query": "How many rotors does a drone have?"},
			service:     &fakeService{text: "Drones use four rotors.", topK: 2},
			expectText:  "Drones use four rotors.",
			expectK:     2,
		},
		{
			description: "explicit k",
			args:        map[string]any{"query": "sky", "k": float64(3)},
			service:     &fakeService{text: "a\nb\nc", topK: 2},
			expectText:  "a\nb\nc",
			expectK:     3,
		},
		{
			description: "empty knowledge base",
			args:        map[string]any{"query": "sky"},
			service:     &fakeService{text: "No knowledge base available.", topK: 2},
			expectText:  "No knowledge base available.",
			expectK:     2,
		},
		{
			description: "service failure",
			args:        map[string]any{"query": "sky"},
			service:     &fakeService{err: errors.New("embedder unavailable"), topK: 2},
			expectK:     2,
			expectError: true,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			lookup := New(testCase.service, logr.Discard())
			result, err := lookup.Handle(context.Background(), callRequest(testCase.args))
			require.NoError(t, err)
			assert.Equal(t, testCase.expectError, result.IsError)
			assert.True(t, testCase.service.called)
			assert.Equal(t, testCase.expectK, testCase.service.k)
			assert.Equal(t, testCase.args["query"], testCase.service.query)
			if !testCase.expectError {
				assert.Equal(t, testCase.expectText, resultText(t, result))
			}
		})
	}
}

func TestLookup_MissingQuery(t *testing.T) {
	svc := &fakeService{topK: 2}
	result, err := New(svc, logr.Discard()).Handle(context.Background(), callRequest(map[string]any{"k": float64(1)}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.False(t, svc.called)
}

func TestLookup_Definition(t *testing.T) {
	def := New(&fakeService{topK: 2}, logr.Discard()).Definition()
	assert.Equal(t, Name, def.Name)
	assert.Contains(t, def.InputSchema.Properties, "query")
	assert.Contains(t, def.InputSchema.Properties, "k")
	assert.Equal(t, []string{"query"}, def.InputSchema.Required)
}

func TestNewServer(t *testing.T) {
	srv := NewServer(New(&fakeService{topK: 2}, logr.Discard()), "test")
	require.NotNil(t, srv)
}
