package summary

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"

	"github.com/SkyEye-FAST/mc-lang/internal/lang"
	"github.com/SkyEye-FAST/mc-lang/pkg/log"
)

// DetectMismatch samples a locale's display strings and reports the
// detected language when it reliably differs from the declared locale.
// Detection that is unreliable or cannot be compared (rare language
// codes, tiny samples) never counts as a mismatch.
func DetectMismatch(locale string, m *lang.Mapping) (detected string, mismatch bool) {
	declared := baseCode(locale)
	if declared == "" {
		return "", false
	}

	info := whatlanggo.Detect(sampleText(m))
	if !info.IsReliable() {
		return "", false
	}

	detected = info.Lang.Iso6391()
	if detected == "" {
		return "", false
	}
	return detected, detected != declared
}

// CheckLanguage logs a data-quality warning when a locale's payload
// does not look like the declared language.
func CheckLanguage(locale string, m *lang.Mapping) {
	if detected, mismatch := DetectMismatch(locale, m); mismatch {
		log.Warn("Locale %s: payload looks like %q rather than the declared language", locale, detected)
	}
}

// baseCode converts a locale code like "zh_hk" into its 2-letter
// language base ("zh"). Codes the language parser cannot resolve to a
// 2-letter base yield "".
func baseCode(locale string) string {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	code := base.String()
	if len(code) != 2 {
		return ""
	}
	return code
}
