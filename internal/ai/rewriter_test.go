package ai

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseWordSequence_ValidArray parses a clean JSON reply.
func TestParseWordSequence_ValidArray(t *testing.T) {
	raw := `[
		{"word":"quick","level1":"fast","level2":"rapid","level3":"swift","level4":"expeditious"},
		{"word":"house","level1":"home","level2":"house","level3":"residence","level4":"dwelling"}
	]`

	sequence := ParseWordSequence(raw)
	require.Len(t, sequence, 2)
	assert.Equal(t, "quick", sequence[0].Word)
	assert.Equal(t, "fast", sequence[0].Level1)
	assert.Equal(t, "expeditious", sequence[0].Level4)
	assert.Equal(t, "residence", sequence[1].Level3)
}

// TestParseWordSequence_ArrayWithCommentary extracts the array out of a
// reply that wraps it in prose.
func TestParseWordSequence_ArrayWithCommentary(t *testing.T) {
	raw := `Sure, here is the breakdown you asked for:

[{"word":"run","level1":"run","level2":"jog","level3":"sprint","level4":"dash"}]

Let me know if you need anything else.`

	sequence := ParseWordSequence(raw)
	require.Len(t, sequence, 1)
	assert.Equal(t, "run", sequence[0].Word)
}

// TestParseWordSequence_FiltersIncompleteEntries drops entries missing any
// of the five required string fields.
func TestParseWordSequence_FiltersIncompleteEntries(t *testing.T) {
	raw := `[
		{"word":"good","level1":"good","level2":"fine","level3":"solid","level4":"commendable"},
		{"word":"bad","level1":"bad","level2":"poor","level4":"deficient"},
		{"word":"odd","level1":"odd","level2":"strange","level3":7,"level4":"anomalous"}
	]`

	sequence := ParseWordSequence(raw)
	require.Len(t, sequence, 1)
	assert.Equal(t, "good", sequence[0].Word)
}

// TestParseWordSequence_MalformedReply verifies broken or non-array
// replies yield an empty, non-nil sequence.
func TestParseWordSequence_MalformedReply(t *testing.T) {
	replies := []string{
		"",
		"I cannot produce that output.",
		`[{"word":"half"`,
		`{"word":"quick","level1":"fast","level2":"rapid","level3":"swift","level4":"quick"}`,
		"]backwards[",
	}
	for _, raw := range replies {
		sequence := ParseWordSequence(raw)
		assert.NotNil(t, sequence, "reply %q", raw)
		assert.Empty(t, sequence, "reply %q", raw)
	}
}

// TestExtractJSONArray covers span extraction edge cases.
func TestExtractJSONArray(t *testing.T) {
	assert.Equal(t, `[1,2]`, extractJSONArray(`prefix [1,2] suffix`))
	assert.Equal(t, `[[1],[2]]`, extractJSONArray(`[[1],[2]]`))
	assert.Equal(t, "", extractJSONArray(`no array here`))
	assert.Equal(t, "", extractJSONArray(`] reversed [`))
}

// TestAdaptParagraph_SameLevel verifies a same-level request returns the
// paragraph unchanged without touching the API.
func TestAdaptParagraph_SameLevel(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_API_URL", "http://localhost:1/unreachable")

	client, err := New()
	require.NoError(t, err)

	text, err := client.AdaptParagraph("The paragraph.", 4, 4)
	require.NoError(t, err)
	assert.Equal(t, "The paragraph.", text)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Rewriter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_API_URL", server.URL)

	client, err := New()
	require.NoError(t, err)
	return client
}

// TestChat_NonJSONErrorReply verifies a gateway-style failure whose body
// is not the JSON error envelope reports the HTTP status instead of an
// opaque decode error.
func TestChat_NonJSONErrorReply(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream timeout</html>"))
	})

	_, err := client.AdaptText("Some text.", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

// TestChat_APIErrorEnvelope verifies the API's own error message is
// surfaced.
func TestChat_APIErrorEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	})

	_, err := client.AdaptText("Some text.", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

// TestNew_RequiresAPIKey verifies client construction fails without a key
// and honors endpoint overrides.
func TestNew_RequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := New()
	require.Error(t, err)

	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("OPENAI_API_URL", "http://localhost:9999/v1/chat/completions")
	t.Setenv("OPENAI_MODEL", "test-model")

	client, err := New()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/v1/chat/completions", client.apiURL)
	assert.Equal(t, "test-model", client.model)
}
