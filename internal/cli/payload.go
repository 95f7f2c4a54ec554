package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/resultfmt"
)

var errEmptyPayload = errors.New("payload is empty")

type payloadKind int

const (
	kindJSON payloadKind = iota
	kindYAML
)

// readInput returns the contents of path, or of stdin when path is empty
// or "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return data, nil
}

// readPayload loads a JSON or YAML payload. Files with a .json, .yaml or
// .yml extension are decoded accordingly; other input is sniffed.
func readPayload(path string, stdin io.Reader) (*resultfmt.Map, error) {
	data, err := readInput(path, stdin)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%s: %w", sourceName(path), errEmptyPayload)
	}

	payload := resultfmt.NewMap()
	switch detectKind(path, data) {
	case kindJSON:
		err = json.Unmarshal(data, payload)
	default:
		err = yaml.Unmarshal(data, payload)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", sourceName(path), err)
	}
	return payload, nil
}

func detectKind(path string, data []byte) payloadKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return kindJSON
	case ".yaml", ".yml":
		return kindYAML
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return kindJSON
	}
	return kindYAML
}

func sourceName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}
