package translate

import (
	"fmt"

	"subtrans/internal/language"
)

const (
	sourceLanguage = "en"
	targetLanguage = "ko"
)

// SystemPrompt is the fixed instruction sent with every entry.
var SystemPrompt = fmt.Sprintf(
	"You are a professional subtitle translator. Translate the %s text the user sends into natural %s (%s). "+
		"Output only the translation. Do not add explanations, labels, quotes, or markdown formatting. "+
		"Keep line breaks where the source has them.",
	language.DisplayName(sourceLanguage),
	language.DisplayName(targetLanguage),
	language.NativeName(targetLanguage),
)

