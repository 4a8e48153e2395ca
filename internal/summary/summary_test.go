package summary

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Ratios(t *testing.T) {
	counts := map[string]Counts{
		"en_us": {TotalKeys: 6000, ValidKeys: 2000},
		"fr_fr": {TotalKeys: 5900, ValidKeys: 1800},
		"ja_jp": {TotalKeys: 5800, ValidKeys: 2000},
	}

	report := Build(counts, "en_us")
	require.Len(t, report, 3)

	require.NotNil(t, report["en_us"].CompletenessRatio)
	assert.Equal(t, 1.0, *report["en_us"].CompletenessRatio)

	require.NotNil(t, report["fr_fr"].CompletenessRatio)
	assert.Equal(t, 0.9, *report["fr_fr"].CompletenessRatio)

	require.NotNil(t, report["ja_jp"].CompletenessRatio)
	assert.Equal(t, 1.0, *report["ja_jp"].CompletenessRatio)

	assert.Equal(t, 5900, report["fr_fr"].TotalKeys)
	assert.Equal(t, 1800, report["fr_fr"].ValidKeys)
}

func TestBuild_BaseLocaleAbsent(t *testing.T) {
	counts := map[string]Counts{
		"fr_fr": {TotalKeys: 100, ValidKeys: 80},
	}

	report := Build(counts, "en_us")
	require.Len(t, report, 1)
	assert.Nil(t, report["fr_fr"].CompletenessRatio)
}

func TestBuild_BaseWithZeroValidKeys(t *testing.T) {
	counts := map[string]Counts{
		"en_us": {TotalKeys: 10, ValidKeys: 0},
		"fr_fr": {TotalKeys: 10, ValidKeys: 0},
	}

	report := Build(counts, "en_us")
	assert.Nil(t, report["en_us"].CompletenessRatio)
	assert.Nil(t, report["fr_fr"].CompletenessRatio)
}

func TestBuild_Empty(t *testing.T) {
	report := Build(nil, "en_us")
	assert.Empty(t, report)
}

func TestEncode_DeterministicAndNullRatio(t *testing.T) {
	report := Build(map[string]Counts{
		"zz_zz": {TotalKeys: 1, ValidKeys: 1},
		"aa_aa": {TotalKeys: 2, ValidKeys: 2},
	}, "en_us")

	first, err := report.Encode()
	require.NoError(t, err)
	second, err := report.Encode()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Keys are sorted and absent base renders ratios as null.
	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(first, &decoded))
	assert.Contains(t, decoded, "aa_aa")
	assert.Nil(t, decoded["aa_aa"]["completeness_ratio"])
}
