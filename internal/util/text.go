package util

import (
	"regexp"
	"strings"
)

var mentionPattern = regexp.MustCompile(`@([\p{L}\p{N}_.]+)`)

// ExtractMentions returns the distinct @usernames referenced in text,
// in order of first appearance and without the leading @.
func ExtractMentions(text string) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	mentions := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimRight(m[1], ".")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		mentions = append(mentions, name)
	}
	return mentions
}
