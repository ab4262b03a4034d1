package sync

import (
	"strings"

	"github.com/inful/mdfp"

	"github.com/thatguysimon/docs.pact.io/internal/frontmatter"
)

// Fingerprint hashes a rendered document as front matter plus body, so line
// ending noise in an otherwise identical file does not count as a change.
func Fingerprint(content []byte) string {
	normalized := []byte(strings.ReplaceAll(string(content), "\r\n", "\n"))
	fm, body, had, err := frontmatter.Split(normalized)
	if err != nil || !had {
		return mdfp.CalculateFingerprintFromParts("", string(normalized))
	}
	return mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(fm), "\n"), string(body))
}
