// Package wordlist loads and stores common-password reference lists.
//
// Flat text lists are read line by line and fed to
// strength.LoadCommonPasswords. Large breach lists can additionally be
// imported once into a local SQLite store and reloaded cheaply on later
// runs.
package wordlist

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxLineSize bounds a single wordlist line. Breach dumps occasionally
// contain very long junk lines; anything beyond this is not a password
// worth indexing.
const maxLineSize = 1024 * 1024

// ReadLines reads a wordlist, one entry per line. Lines are returned
// as-is; trimming and lowercase duplication happen at set construction.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("wordlist: failed to read list: %w", err)
	}
	return lines, nil
}

// Decoder wraps r so its contents are decoded from the named encoding
// into UTF-8. Published breach lists are frequently Latin-1 or UTF-16
// rather than UTF-8.
//
// Supported names: "utf8" (or empty, pass-through), "latin1", "utf16".
func Decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch encoding {
	case "", "utf8":
		return r, nil
	case "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "utf16":
		enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
		return transform.NewReader(r, enc.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("wordlist: unsupported encoding %q (use utf8, latin1, or utf16)", encoding)
	}
}
