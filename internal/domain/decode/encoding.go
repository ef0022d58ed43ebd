package decode

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Byte-order marks seen at the front of exported CSV files.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// detectAndDecode detects the input encoding, strips any BOM, and returns
// UTF-8 bytes plus the detected encoding name. Spreadsheet exports from
// different OS/locale combinations routinely arrive as UTF-16 or Latin-1.
func detectAndDecode(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return data, "utf-8", nil
	}

	if bytes.HasPrefix(data, bomUTF8) {
		return data[len(bomUTF8):], "utf-8-bom", nil
	}

	if bytes.HasPrefix(data, bomUTF16LE) {
		decoded, err := transformBytes(data, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
		if err != nil {
			return nil, "", fmt.Errorf("utf-16le decode failed: %w", err)
		}
		return decoded, "utf-16le", nil
	}

	if bytes.HasPrefix(data, bomUTF16BE) {
		decoded, err := transformBytes(data, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder())
		if err != nil {
			return nil, "", fmt.Errorf("utf-16be decode failed: %w", err)
		}
		return decoded, "utf-16be", nil
	}

	if utf8.Valid(data) {
		return data, "utf-8", nil
	}

	// Fallback: Latin-1 maps every byte to a code point, so it cannot fail.
	decoded, err := transformBytes(data, charmap.ISO8859_1.NewDecoder())
	if err != nil {
		return nil, "", fmt.Errorf("latin-1 decode failed: %w", err)
	}
	return decoded, "latin-1", nil
}

func transformBytes(data []byte, t transform.Transformer) ([]byte, error) {
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), t))
	if err != nil {
		return nil, fmt.Errorf("transform read: %w", err)
	}
	return out, nil
}
