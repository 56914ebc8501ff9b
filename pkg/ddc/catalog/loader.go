package catalog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Load reads a catalog data file. Both the JSON index format and its YAML
// equivalent are accepted.
func Load(path string) (*Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tree, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return tree, nil
}

// Decode parses a list of main classes from r. Input starting with '[' is
// read as JSON, anything else as YAML.
func Decode(r io.Reader) (*Tree, error) {
	br := bufio.NewReader(r)
	first, err := firstNonSpace(br)
	if err == io.EOF {
		return New(nil)
	}
	if err != nil {
		return nil, err
	}

	var roots []*Entry
	if first == '[' {
		err = json.NewDecoder(br).Decode(&roots)
	} else {
		err = yaml.NewDecoder(br).Decode(&roots)
	}
	if err == io.EOF {
		return New(nil)
	}
	if err != nil {
		return nil, err
	}
	return New(roots)
}

// firstNonSpace skips leading white space and returns the next byte
// without consuming it.
func firstNonSpace(br *bufio.Reader) (byte, error) {
	for {
		r, _, err := br.ReadRune()
		if err != nil {
			return 0, err
		}
		if r == '\uFEFF' || unicode.IsSpace(r) {
			continue
		}
		if err := br.UnreadRune(); err != nil {
			return 0, err
		}
		return byte(r), nil
	}
}
