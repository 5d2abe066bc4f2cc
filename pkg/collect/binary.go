package collect

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// sniffLen is how much of a file is inspected to decide whether it is binary.
const sniffLen = 512

// isBinaryFile reports whether the file looks binary: it contains a NUL byte
// or more than 30% non-printable bytes in its first sniffLen bytes. Files
// starting with a UTF-16 or UTF-32 byte order mark are text.
func isBinaryFile(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()

	buffer := make([]byte, sniffLen)
	n, err := io.ReadFull(file, buffer)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	return looksBinary(buffer[:n]), nil
}

func looksBinary(buffer []byte) bool {
	if len(buffer) == 0 {
		return false
	}
	if hasWideBOM(buffer) {
		return false
	}
	if bytes.IndexByte(buffer, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range buffer {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(buffer)) > 0.3
}

func hasWideBOM(b []byte) bool {
	return bytes.HasPrefix(b, []byte{0xFF, 0xFE}) || bytes.HasPrefix(b, []byte{0xFE, 0xFF}) ||
		bytes.HasPrefix(b, []byte{0x00, 0x00, 0xFE, 0xFF})
}

// isPrintable treats ASCII text, common whitespace and every byte of a
// multi-byte UTF-8 sequence as printable.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t' || b >= 0x80
}
