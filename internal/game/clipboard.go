package game

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// setClipboardText writes text to the system clipboard.
func setClipboardText(text string) error {
	if text == "" {
		text = " "
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
