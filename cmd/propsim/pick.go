package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sqweek/dialog"
)

// pickConfig asks for a scene file in a native file dialog. It reports false
// when the user cancels or no dialog can be shown.
func pickConfig() (string, bool) {
	filename, err := dialog.File().
		Filter("Scene Config", "yaml", "yml").
		Filter("All Files", "*").
		Title("Open Scene Config").
		Load()
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			fmt.Fprintf(os.Stderr, "File dialog error: %v\n", err)
		}
		return "", false
	}
	return filename, true
}
