package concat

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// CRLF is the line ending every line of a merged script ends with.
const CRLF = "\r\n"

var (
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
)

// collapser folds every line ending variant into a single "\n".
var collapser = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// ReadText reads the whole file at path as text. A UTF-8, UTF-16 or UTF-32
// byte order mark selects the decoding and is dropped; files without one are
// read as UTF-8.
func ReadText(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return decodeText(file)
}

func decodeText(r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	var decoder transform.Transformer
	switch {
	case bytes.HasPrefix(head, bomUTF32LE):
		decoder = utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder()
	case bytes.HasPrefix(head, bomUTF32BE):
		decoder = utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder()
	default:
		// BOMOverride passes UTF-8 through untouched once it strips a BOM, so
		// the UTF-8 decoder runs after it to replace invalid sequences.
		decoder = transform.Chain(unicode.BOMOverride(transform.Nop), unicode.UTF8.NewDecoder())
	}

	data, err := io.ReadAll(transform.NewReader(br, decoder))
	if err != nil {
		return "", fmt.Errorf("failed to decode text: %w", err)
	}
	return string(data), nil
}

// NormalizeLineEndings rewrites LF, CR and CRLF line endings to CRLF. All
// variants are collapsed to LF first so an existing CRLF is never expanded
// twice.
func NormalizeLineEndings(s string) string {
	return strings.ReplaceAll(collapser.Replace(s), "\n", CRLF)
}

// EnsureTrailingNewline appends CRLF unless s already ends with one.
func EnsureTrailingNewline(s string) string {
	if strings.HasSuffix(s, CRLF) {
		return s
	}
	return s + CRLF
}
