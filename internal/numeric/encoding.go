package numeric

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/alenon/tradeimport/internal/models"
)

// decodeChain is the ordered, policy-driven fallback list: UTF-8 first
// (validated, not decoded — UTF-8 bytes need no transcoding), then the
// single-byte code pages most broker exports fall back to.
var decodeChain = []*charmap.Charmap{
	charmap.Windows1252,
	charmap.ISO8859_1,
}

// DecodeBytes decodes raw file bytes using the first encoding in the
// fallback chain that succeeds: UTF-8, then Windows-1252, then
// ISO-8859-1 (both single-byte code pages accept any byte sequence, so
// in practice the chain always terminates; it exists to prefer the more
// faithful encoding when the bytes are valid UTF-8 already).
func DecodeBytes(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	for _, page := range decodeChain {
		decoded, err := page.NewDecoder().Bytes(raw)
		if err == nil {
			return string(decoded), nil
		}
	}

	return "", models.ErrEncodingFailed
}
