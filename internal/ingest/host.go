package ingest

import (
	"strings"

	"github.com/DjordjeVuckovic/crypto-board/internal/domain"
)

// HostOrigin extracts a short publisher label from a URL: the
// second-from-last host label when the host has more than two labels, the
// first label otherwise. Multi-part public suffixes such as co.uk are not
// special-cased.
func HostOrigin(rawURL string) string {
	if rawURL == "" {
		return domain.UnknownHost
	}

	rest := rawURL
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}

	host, _, _ := strings.Cut(rest, "/")
	host, _, _ = strings.Cut(host, "?")
	host, _, _ = strings.Cut(host, ":")

	labels := strings.Split(host, ".")
	if len(labels) > 2 {
		return labels[len(labels)-2]
	}
	return labels[0]
}
