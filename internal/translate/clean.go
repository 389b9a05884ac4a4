package translate

import "strings"

// replyLabels are prefixes models sometimes put before the translation. Only
// one is stripped, and only at the start of the reply.
var replyLabels = []string{"번역:", "Translation:", "한국어:", "Korean:"}

// markdownMarkers are removed wherever they occur, in this order.
var markdownMarkers = []string{"**", "* "}

// Clean strips markdown emphasis, bullet markers, and a leading label from a
// model reply. Blank lines are dropped since they would end the SRT block.
func Clean(reply string) string {
	cleaned := strings.TrimSpace(reply)
	for _, marker := range markdownMarkers {
		cleaned = strings.ReplaceAll(cleaned, marker, "")
	}
	cleaned = strings.TrimSpace(cleaned)
	for _, label := range replyLabels {
		if rest, ok := strings.CutPrefix(cleaned, label); ok {
			cleaned = strings.TrimSpace(rest)
			break
		}
	}
	return dropBlankLines(cleaned)
}

func dropBlankLines(text string) string {
	if !strings.Contains(text, "\n") {
		return text
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}
	return strings.Join(kept, "\n")
}
