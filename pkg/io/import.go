package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/words"
)

// Format identifies a word-list file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Document is the decoded content of a word-list file.
type Document struct {
	Settings cloud.Config
	Words    []words.Entry
}

// Default returns the built-in starter document.
func Default() Document {
	return Document{Settings: cloud.Default(), Words: words.FromSeeds(words.Defaults)}
}

// FormatFromPath picks the format by file extension. Anything other than
// .json is treated as TOML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTOML
}

// Sniff guesses the format of raw bytes: a leading '{' means JSON.
func Sniff(data []byte) Format {
	if t := bytes.TrimSpace(data); len(t) > 0 && t[0] == '{' {
		return FormatJSON
	}
	return FormatTOML
}

// Parse decodes data in the sniffed format.
func Parse(data []byte) (Document, error) {
	return Read(bytes.NewReader(data), Sniff(data))
}

// Read decodes a document from r in the given format. Read does not close r.
func Read(r io.Reader, format Format) (Document, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML, "":
		return ReadTOML(r)
	}
	return Document{}, errors.New(errors.ErrCodeInvalidFormat, "unknown word file format: %q", format)
}

// ReadTOML decodes a TOML word-list document.
func ReadTOML(r io.Reader) (Document, error) {
	f := newFile()
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Document{}, errors.New(errors.ErrCodeInvalidFormat, "unknown key %q", undecoded[0].String())
	}
	return f.document()
}

// ReadJSON decodes a JSON word-list document.
func ReadJSON(r io.Reader) (Document, error) {
	f := newFile()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return f.document()
}

// ImportFile reads the word-list file at path, choosing the format by
// extension.
func ImportFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	doc, err := Read(f, FormatFromPath(path))
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// newFile returns a file whose settings start at the defaults, so keys
// missing from the input keep them and explicit zeros survive.
func newFile() file {
	cfg := cloud.Default()
	return file{Settings: &cfg}
}

func (f file) document() (Document, error) {
	doc := Document{Settings: cloud.Default(), Words: make([]words.Entry, 0, len(f.Words))}
	if f.Settings != nil {
		doc.Settings = *f.Settings
	}
	doc.Settings.SetDefaults()
	if err := doc.Settings.Validate(); err != nil {
		return Document{}, err
	}
	for i, w := range f.Words {
		text := strings.TrimSpace(w.Text)
		if err := errors.ValidateWord(text, w.Weight); err != nil {
			return Document{}, errors.New(errors.ErrCodeValidation, "word %d: %s", i+1, errors.UserMessage(err))
		}
		doc.Words = append(doc.Words, words.Entry{Text: text, Weight: w.Weight})
	}
	return doc, nil
}
