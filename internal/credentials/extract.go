// Package credentials recovers the bootstrap root principal pair the
// catalog server prints to its log on first start.
package credentials

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dataloomhq/polaris-bootstrap/internal/errdefs"
	"github.com/dataloomhq/polaris-bootstrap/internal/model"
)

// Phrase every credential-bearing log line contains
const credentialPhrase = "root principal credentials"

// Pattern that captures everything after the phrase and its colon up
// to end of line. Stricter than the phrase filter: a line can pass
// the filter and still not match here, so the two checks must stay
// separate.
var credentialPattern = regexp.MustCompile(`(?i)root principal credentials\s*:(.*?)(?:\n|$)`)

// MostRecentCredentialLine filters lines down to those containing the
// credential phrase and returns the most recent one by timestamp.
func MostRecentCredentialLine(lines []model.LogLine) (model.LogLine, error) {
	var matched []model.LogLine
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line.Raw), credentialPhrase) {
			matched = append(matched, line)
		}
	}
	if len(matched) == 0 {
		return model.LogLine{}, errdefs.NewNotFound("credential line", credentialPhrase)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	return matched[0], nil
}

// ParsePair extracts the client id / secret pair from a credential
// line. The captured text after the phrase's colon is trimmed as a
// whole and split on its first colon; the parts themselves are not
// trimmed further.
func ParsePair(line string) (model.Credentials, error) {
	match := credentialPattern.FindStringSubmatch(line)
	if match == nil {
		return model.Credentials{}, errdefs.NewNotFound("credential pair", "")
	}

	pair := strings.SplitN(strings.TrimSpace(match[1]), ":", 2)
	if len(pair) != 2 {
		return model.Credentials{}, errdefs.NewNotFound("credential pair", "")
	}

	return model.Credentials{ClientID: pair[0], ClientSecret: pair[1]}, nil
}

// FromLogs runs both extraction stages over a full log capture.
func FromLogs(lines []model.LogLine) (model.Credentials, error) {
	line, err := MostRecentCredentialLine(lines)
	if err != nil {
		return model.Credentials{}, err
	}
	return ParsePair(line.Raw)
}
