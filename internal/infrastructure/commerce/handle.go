package commerce

import (
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// maxDecodeRounds bounds the percent-decode loop against pathological input
const maxDecodeRounds = 5

// trademarkArtifacts are glyph sequences that appear in handles when a
// trademark sign survives one or more bad encode/decode round-trips
// upstream. They never occur in real catalog handles and are removed.
var trademarkArtifacts = []string{
	"™", // ™
	"â„¢",    // UTF-8 bytes of ™ re-read as Latin-1
}

// NormalizeHandle canonicalizes a catalog handle taken from a URL path.
// Handles arrive percent-encoded, sometimes more than once, so decoding
// repeats until the string is stable or free of '%'. Path unescaping is
// used because a '+' in a path segment is a literal plus, not a space.
// The result is NFC-normalized and stripped of trademark artifacts.
func NormalizeHandle(handle string) string {
	decoded := strings.TrimSpace(handle)

	for i := 0; i < maxDecodeRounds && strings.Contains(decoded, "%"); i++ {
		next, err := url.PathUnescape(decoded)
		if err != nil || next == decoded {
			break
		}
		decoded = next
	}

	decoded = norm.NFC.String(decoded)
	for _, artifact := range trademarkArtifacts {
		decoded = strings.ReplaceAll(decoded, artifact, "")
	}

	return strings.TrimSpace(decoded)
}
