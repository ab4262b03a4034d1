package forge

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/thatguysimon/docs.pact.io/internal/foundation/errors"
)

// newHTTPClient30s returns an HTTP client with a 30s timeout.
func newHTTPClient30s() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// blobPayload is the JSON shape GitHub, GitLab and Forgejo use for blob contents.
type blobPayload struct {
	SHA      string `json:"sha"`
	Size     int64  `json:"size"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}

// decode returns the raw bytes of the blob. GitHub wraps base64 content at 60
// columns, so line breaks are dropped before decoding.
func (p blobPayload) decode(filePath string) ([]byte, error) {
	switch p.Encoding {
	case "base64":
		clean := strings.NewReplacer("\n", "", "\r", "").Replace(p.Content)
		data, err := base64.StdEncoding.DecodeString(clean)
		if err != nil {
			return nil, errors.ForgeError("failed to decode blob content").
				WithCause(err).
				WithContext("path", filePath).
				Build()
		}
		return data, nil
	case "", "utf-8", "text":
		return []byte(p.Content), nil
	default:
		return nil, errors.ForgeError("unsupported blob encoding").
			WithContext("encoding", p.Encoding).
			WithContext("path", filePath).
			Build()
	}
}

func kindOf(raw string) EntryKind {
	if raw == string(KindTree) {
		return KindTree
	}
	return KindBlob
}
