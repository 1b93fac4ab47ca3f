package advice

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/JonnyWalker81/nutrisense/backend/internal/models"
)

// Default mood cutoffs on the 1-10 scale
const (
	DefaultLowMoodCutoff  = 4.0
	DefaultHighMoodCutoff = 8.0
)

const (
	softPrefix        = "When you feel up to it: "
	celebratorySuffix = " 🎉"
)

// AdaptTextToMood adjusts a candidate's text to the user's mood. ok is false
// when the candidate must not be shown at all: a warning to someone in a low
// mood. Tips are softened at low mood and achievements celebrated at high
// mood. A mood of 0 means unrecorded and leaves the text unchanged.
func AdaptTextToMood(text string, moodLevel float64, typ models.AdviceType) (string, bool) {
	return adaptTextToMood(text, moodLevel, typ, DefaultLowMoodCutoff, DefaultHighMoodCutoff)
}

func adaptTextToMood(text string, mood float64, typ models.AdviceType, low, high float64) (string, bool) {
	if mood <= 0 {
		return text, true
	}
	if mood < low {
		switch typ {
		case models.AdviceTypeWarning:
			return "", false
		case models.AdviceTypeTip:
			if strings.HasPrefix(text, softPrefix) {
				return text, true
			}
			return softPrefix + lowerFirst(text), true
		}
		return text, true
	}
	if mood >= high && typ == models.AdviceTypeAchievement && !strings.HasSuffix(text, celebratorySuffix) {
		return text + celebratorySuffix, true
	}
	return text, true
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
