package viewmodel

import (
	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/words"
)

// EditorPage holds data for the main editor page.
type EditorPage struct {
	Title    string
	Words    WordList
	Settings Settings
	Canvas   Canvas
	Error    string
}

// WordRow is one entry of the word table.
type WordRow struct {
	Index  int
	Text   string
	Weight float64
	First  bool
	Last   bool
	Shown  bool // within the word limit
}

// WordList holds data for the word table fragment.
type WordList struct {
	Rows  []WordRow
	Limit int
}

// RotationOption is a choice in the rotation select.
type RotationOption struct {
	Value    string
	Label    string
	Selected bool
}

// Settings holds data for the settings form.
type Settings struct {
	Config    cloud.Config
	Rotations []RotationOption
	Error     string
}

// Canvas holds the initial drawing of the cloud.
type Canvas struct {
	Width  float64
	Height float64
	SVG    string
}

// ErrorFragment is the inline error returned for rejected form posts.
type ErrorFragment struct {
	Target  string
	Message string
}

// NewWordList builds table rows for entries. Rows past limit are marked as
// not shown in the cloud.
func NewWordList(entries []words.Entry, limit int) WordList {
	rows := make([]WordRow, len(entries))
	for i, e := range entries {
		rows[i] = WordRow{
			Index:  i,
			Text:   e.Text,
			Weight: e.Weight,
			First:  i == 0,
			Last:   i == len(entries)-1,
			Shown:  i < limit,
		}
	}
	return WordList{Rows: rows, Limit: limit}
}

// NewSettings builds the settings form for cfg.
func NewSettings(cfg cloud.Config) Settings {
	opts := []RotationOption{
		{Value: string(cloud.RotateNone), Label: "No rotation"},
		{Value: string(cloud.RotateRandom), Label: "Random 0° / 90°"},
		{Value: string(cloud.RotateFixed), Label: "Fixed angle"},
	}
	for i := range opts {
		opts[i].Selected = opts[i].Value == string(cfg.Rotation)
	}
	return Settings{Config: cfg, Rotations: opts}
}
