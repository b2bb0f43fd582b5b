package descriptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/jakoblorz/go-factory/internal/filesystem"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// FileName is the descriptor every project directory carries.
const FileName = "factory.json"

// ReadFile loads a descriptor file and decodes it into a JSON object tree.
func ReadFile(fs filesystem.FileSystem, path string) (interface{}, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, &FormatError{File: path, Err: ErrUnreadable, Cause: err}
	}
	return Decode(path, data)
}

// Decode validates raw descriptor bytes as UTF-8 (an optional BOM is
// dropped) and decodes them as JSON.
func Decode(file string, data []byte) (interface{}, error) {
	if !utf8.Valid(data) {
		return nil, formatError(file, ErrNotUTF8, "")
	}

	text, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), data)
	if err != nil {
		return nil, &FormatError{File: file, Err: ErrNotUTF8, Cause: err}
	}

	var root interface{}
	if err := json.Unmarshal(text, &root); err != nil {
		return nil, &FormatError{File: file, Err: ErrInvalidJSON, Detail: jsonErrorLocation(text, err), Cause: err}
	}

	return root, nil
}

func jsonErrorLocation(text []byte, err error) string {
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return ""
	}

	line, col := 1, 1
	for i := int64(0); i < syntaxErr.Offset && i < int64(len(text)); i++ {
		if text[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return fmt.Sprintf("line %d, column %d", line, col)
}
