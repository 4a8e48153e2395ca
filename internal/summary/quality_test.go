package summary

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SkyEye-FAST/mc-lang/internal/lang"
)

func mappingFrom(t *testing.T, values []string) *lang.Mapping {
	t.Helper()

	var b strings.Builder
	b.WriteByte('{')
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%q: %q", fmt.Sprintf("key.%d", i), v)
	}
	b.WriteByte('}')

	m, err := lang.Decode([]byte(b.String()))
	require.NoError(t, err)
	return m
}

var englishValues = []string{
	"The quick brown fox jumps over the lazy dog",
	"A trusty sword forged from the hardest diamond in the land",
	"These polished granite stairs lead down into the deepest caves",
	"An enchanted golden apple restores health and grants absorption",
	"Diamond Sword", "Polished Granite Stairs", "Enchanted Golden Apple",
	"Chest of Drawers", "Weathered Copper Door", "Suspicious Gravel",
	"Block of Raw Iron", "Waxed Oxidized Cut Copper", "Heart of the Sea",
}

func TestDetectMismatch_MatchingLanguage(t *testing.T) {
	m := mappingFrom(t, englishValues)

	_, mismatch := DetectMismatch("en_us", m)
	assert.False(t, mismatch)
}

func TestDetectMismatch_EnglishDeclaredAsChinese(t *testing.T) {
	m := mappingFrom(t, englishValues)

	detected, mismatch := DetectMismatch("zh_cn", m)
	if assert.True(t, mismatch) {
		assert.Equal(t, "en", detected)
	}
}

func TestDetectMismatch_UnparseableLocale(t *testing.T) {
	m := mappingFrom(t, englishValues)

	_, mismatch := DetectMismatch("not a locale", m)
	assert.False(t, mismatch)
}

func TestDetectMismatch_EmptyMapping(t *testing.T) {
	m := mappingFrom(t, nil)

	_, mismatch := DetectMismatch("en_us", m)
	assert.False(t, mismatch)
}

func TestCheckLanguage_DoesNotPanic(t *testing.T) {
	CheckLanguage("zh_cn", mappingFrom(t, englishValues))
	CheckLanguage("en_us", mappingFrom(t, englishValues))
}
