package blog

import (
	"regexp"
	"strings"
)

const wordsPerMinute = 200

var tagRegex = regexp.MustCompile(`<[^>]*>`)

// StripTags removes every HTML tag, leaving text and entities untouched.
func StripTags(html string) string {
	return tagRegex.ReplaceAllString(html, "")
}

// WordCount counts whitespace-delimited tokens once tags are removed.
func WordCount(html string) int {
	return len(strings.Fields(StripTags(html)))
}

// ReadingTime is minutes at 200 words per minute, rounded up.
func ReadingTime(html string) int {
	return ReadingMinutes(WordCount(html))
}

func ReadingMinutes(words int) int {
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
