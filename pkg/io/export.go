package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wordcloud/pkg/cloud"
)

type file struct {
	Settings *cloud.Config `toml:"settings,omitempty" json:"settings,omitempty"`
	Words    []word        `toml:"word" json:"words"`
}

type word struct {
	Text   string  `toml:"text" json:"text"`
	Weight float64 `toml:"weight" json:"weight"`
}

func exportFile(doc Document) file {
	s := doc.Settings
	f := file{Settings: &s, Words: make([]word, len(doc.Words))}
	for i, e := range doc.Words {
		f.Words[i] = word{Text: e.Text, Weight: e.Weight}
	}
	return f
}

// WriteTOML encodes doc as TOML and writes it to w.
// The output can be re-read with [ReadTOML].
func WriteTOML(doc Document, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(exportFile(doc)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteJSON encodes doc as indented JSON and writes it to w.
func WriteJSON(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(exportFile(doc)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportFile writes doc to path, choosing the format by extension.
func ExportFile(doc Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if FormatFromPath(path) == FormatJSON {
		return WriteJSON(doc, f)
	}
	return WriteTOML(doc, f)
}
