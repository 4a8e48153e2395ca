package lang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
  "item.minecraft.diamond": "Diamond",
  "block.minecraft.stone": "Stone",
  "gui.done": "Done",
  "biome.minecraft.plains": "Plains"
}`

func TestDecode_PreservesUpstreamOrder(t *testing.T) {
	m, err := Decode([]byte(samplePayload))
	require.NoError(t, err)

	assert.Equal(t, 4, m.Len())
	assert.Equal(t, []string{
		"item.minecraft.diamond",
		"block.minecraft.stone",
		"gui.done",
		"biome.minecraft.plains",
	}, m.Keys())

	v, ok := m.Get("block.minecraft.stone")
	require.True(t, ok)
	assert.Equal(t, "Stone", v)

	_, ok = m.Get("missing.key")
	assert.False(t, ok)
}

func TestDecode_DuplicateKeyKeepsLastValue(t *testing.T) {
	m, err := Decode([]byte(`{"a": "one", "b": "two", "a": "three"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, _ := m.Get("a")
	assert.Equal(t, "three", v)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "not json"},
		{"array payload", `["a", "b"]`},
		{"non-string value", `{"a": 1}`},
		{"truncated object", `{"a": "one"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.payload))
			assert.Error(t, err)
		})
	}
}

func TestFilter_SubsetInOrder(t *testing.T) {
	m, err := Decode([]byte(samplePayload))
	require.NoError(t, err)

	filtered := m.Filter(IsValidKey)

	assert.Equal(t, []string{
		"item.minecraft.diamond",
		"block.minecraft.stone",
		"biome.minecraft.plains",
	}, filtered.Keys())

	// Every filtered entry exists in the source with the same value.
	for _, e := range filtered.Entries() {
		v, ok := m.Get(e.Key)
		require.True(t, ok)
		assert.Equal(t, v, e.Value)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	m, err := Decode([]byte(samplePayload))
	require.NoError(t, err)

	first, err := m.Encode()
	require.NoError(t, err)
	second, err := m.Encode()
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// Decoding the encoded form round-trips to the same entries.
	again, err := Decode(first)
	require.NoError(t, err)
	assert.Equal(t, m.Entries(), again.Entries())
}

func TestEncode_Format(t *testing.T) {
	m, err := Decode([]byte(`{"effect.minecraft.speed": "迅捷", "a": "<b> & \"c\""}`))
	require.NoError(t, err)

	out, err := m.Encode()
	require.NoError(t, err)

	want := "{\n" +
		"  \"effect.minecraft.speed\": \"迅捷\",\n" +
		"  \"a\": \"<b> & \\\"c\\\"\"\n" +
		"}\n"
	assert.Equal(t, want, string(out))

	// Non-ASCII and HTML characters are written verbatim.
	assert.True(t, strings.Contains(string(out), "迅捷"))
	assert.True(t, strings.Contains(string(out), "<b>"))
}

func TestEncode_Empty(t *testing.T) {
	m, err := Decode([]byte(`{}`))
	require.NoError(t, err)

	out, err := m.Encode()
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(out))
}
