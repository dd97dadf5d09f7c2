package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnalysisResponse_PlainJSON(t *testing.T) {
	parsed, err := parseAnalysisResponse(`{"summary": "All good.", "sentiment": "Positive"}`)
	require.NoError(t, err)
	assert.Equal(t, "All good.", parsed.Summary)
	assert.Equal(t, "Positive", parsed.Sentiment)
}

func TestParseAnalysisResponse_CodeFenced(t *testing.T) {
	content := "```json\n{\"summary\": \"Fenced.\", \"sentiment\": \"Neutral\"}\n```"
	parsed, err := parseAnalysisResponse(content)
	require.NoError(t, err)
	assert.Equal(t, "Fenced.", parsed.Summary)
	assert.Equal(t, "Neutral", parsed.Sentiment)
}

func TestParseAnalysisResponse_SurroundingWhitespace(t *testing.T) {
	content := "\n\n  {\"summary\": \"Padded.\", \"sentiment\": \"Negative\"}  \n"
	parsed, err := parseAnalysisResponse(content)
	require.NoError(t, err)
	assert.Equal(t, "Padded.", parsed.Summary)
}

func TestParseAnalysisResponse_Empty(t *testing.T) {
	parsed, err := parseAnalysisResponse("   ")
	assert.Nil(t, parsed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty model response")
}

func TestParseAnalysisResponse_NotJSON(t *testing.T) {
	parsed, err := parseAnalysisResponse("Sorry, I can't help with that.")
	assert.Nil(t, parsed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestParseAnalysisResponse_MissingSummary(t *testing.T) {
	parsed, err := parseAnalysisResponse(`{"sentiment": "Positive"}`)
	assert.Nil(t, parsed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing summary")
}

func TestParseAnalysisResponse_ExtraKeysIgnored(t *testing.T) {
	parsed, err := parseAnalysisResponse(`{"summary": "s", "sentiment": "Neutral", "confidence": 0.9}`)
	require.NoError(t, err)
	assert.Equal(t, "s", parsed.Summary)
}
