package subtitles

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

const timingSeparator = "-->"

var utf8BOM = []byte("\xef\xbb\xbf")

// Entry is one numbered subtitle cue. Text may span several lines joined by
// "\n".
type Entry struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// ParseResult holds the entries recovered from a document along with the
// number of blocks that could not be interpreted.
type ParseResult struct {
	Entries []Entry
	Skipped int
}

// Parse reads an SRT document and returns its entries in document order.
// Malformed blocks are dropped; use ParseDocument to learn how many.
func Parse(r io.Reader) ([]Entry, error) {
	result, err := ParseDocument(r)
	if err != nil {
		return nil, err
	}
	return result.Entries, nil
}

// ParseDocument reads an SRT document. Blocks are separated by one or more
// blank lines and consist of an index line, a timing line, and zero or more
// text lines. CRLF line endings and a leading UTF-8 BOM are accepted.
func ParseDocument(r io.Reader) (ParseResult, error) {
	var result ParseResult
	data, err := io.ReadAll(r)
	if err != nil {
		return result, fmt.Errorf("read srt: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var block []string
	flush := func() {
		if len(block) == 0 {
			return
		}
		entry, ok := parseBlock(block)
		if ok {
			result.Entries = append(result.Entries, entry)
		} else {
			result.Skipped++
		}
		block = block[:0]
	}
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("scan srt: %w", err)
	}
	flush()
	return result, nil
}

func parseBlock(lines []string) (Entry, bool) {
	if len(lines) < 2 {
		return Entry{}, false
	}
	index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return Entry{}, false
	}
	start, end, err := parseTiming(lines[1])
	if err != nil {
		return Entry{}, false
	}
	return Entry{
		Index: index,
		Start: start,
		End:   end,
		Text:  strings.Join(lines[2:], "\n"),
	}, true
}

func parseTiming(line string) (time.Duration, time.Duration, error) {
	startText, endText, ok := strings.Cut(line, timingSeparator)
	if !ok {
		return 0, 0, fmt.Errorf("missing %q in timing line %q", timingSeparator, line)
	}
	// Cue settings may trail the end timestamp.
	fields := strings.Fields(endText)
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("missing end timestamp in %q", line)
	}
	start, err := ParseTimestamp(startText)
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseTimestamp(fields[0])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// ParseTimestamp parses HH:MM:SS,mmm. A period is accepted in place of the
// comma.
func ParseTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	clock, fraction, ok := strings.Cut(value, ",")
	if !ok || fraction == "" {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(clock, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	if len(fraction) > 3 {
		fraction = fraction[:3]
	}
	for len(fraction) < 3 {
		fraction += "0"
	}
	millis, errMS := strconv.Atoi(fraction)
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 || millis < 0 {
		return 0, fmt.Errorf("timestamp out of range %q", value)
	}
	total := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond
	return total, nil
}

// FormatTimestamp renders d as HH:MM:SS,mmm. Sub-millisecond precision is
// truncated and negative values clamp to zero.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	hours := ms / 3_600_000
	ms -= hours * 3_600_000
	minutes := ms / 60_000
	ms -= minutes * 60_000
	seconds := ms / 1000
	ms -= seconds * 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, ms)
}

// FromSeconds converts a fractional second offset to a duration rounded to
// the nearest millisecond.
func FromSeconds(seconds float64) time.Duration {
	if math.IsNaN(seconds) || seconds <= 0 {
		return 0
	}
	return time.Duration(math.Round(seconds*1000)) * time.Millisecond
}

// WriteEntry writes a single block followed by the blank separator line.
func WriteEntry(w io.Writer, entry Entry) error {
	_, err := fmt.Fprintf(w, "%d\n%s %s %s\n%s\n\n",
		entry.Index,
		FormatTimestamp(entry.Start),
		timingSeparator,
		FormatTimestamp(entry.End),
		entry.Text,
	)
	return err
}

// Render returns the full document for entries.
func Render(entries []Entry) string {
	var b strings.Builder
	for _, entry := range entries {
		_ = WriteEntry(&b, entry)
	}
	return b.String()
}

// Renumber assigns sequential 1-based indices in slice order.
func Renumber(entries []Entry) {
	for i := range entries {
		entries[i].Index = i + 1
	}
}
