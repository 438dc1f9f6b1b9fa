package cli

import (
	"fmt"
	"io"

	"habit-bot/internal/notify"

	"github.com/fatih/color"
)

// printMessage writes a rendered chat message, one numbered line per button
func printMessage(w io.Writer, msg notify.Message) {
	title := color.New(color.Bold)
	data := color.New(color.Faint)

	_, _ = title.Fprintln(w, msg.Text)
	for i, b := range msg.Buttons() {
		_, _ = fmt.Fprintf(w, "%2d. %s ", i+1, b.Text)
		_, _ = data.Fprintln(w, "("+b.Data+")")
	}
	if msg.HasKeyboard() {
		_, _ = data.Fprintln(w, "press one with: hb toggle <user> <data>")
	}
}

// printNotice writes a short status line under a message
func printNotice(w io.Writer, notice string) {
	if notice == "" {
		return
	}
	_, _ = color.New(color.FgYellow).Fprintln(w, notice)
}
