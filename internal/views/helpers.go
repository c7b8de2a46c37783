// Package views renders the editor's HTML as templ components.
//
// Components are written in the .templ files next to this one and compiled
// to the _templ.go files with templ generate.
package views

//go:generate templ generate -path .

import (
	"fmt"
	"strconv"

	"github.com/a-h/templ"
)

func fmtNum(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// wordURL is the form target for an action on the word at index.
func wordURL(index int, action string) templ.SafeURL {
	return templ.URL(fmt.Sprintf("/words/%d/%s", index, action))
}
