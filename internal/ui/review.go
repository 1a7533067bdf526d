// Package ui implements the interactive review of generated commit messages.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/oussamaachahboune/gencommit/internal/commitmsg"
	"github.com/oussamaachahboune/gencommit/internal/editor"
)

// reviewState enumerates the states of the review loop. Editing always
// returns to a fresh Presented state; Accepted and Rejected are terminal.
type reviewState int

const (
	statePresented reviewState = iota
	stateEditing
	stateAccepted
	stateRejected
)

// Review presents the suggested message and loops until the user accepts or
// rejects it. On edit, the editor result becomes the new message and the
// loop re-presents it. Returns the final message and whether it was
// accepted. There is no limit on edit cycles.
func Review(ctx context.Context, message string, ed editor.Editor, input io.Reader, output io.Writer) (string, bool, error) {
	scanner := bufio.NewScanner(input)
	state := statePresented

	for {
		switch state {
		case statePresented:
			if err := ShowCommitMessage(message, output); err != nil {
				return "", false, err
			}
			choice, err := readChoice(scanner, output)
			if err != nil {
				return "", false, err
			}
			switch choice {
			case "a", "accept":
				state = stateAccepted
			case "e", "edit":
				state = stateEditing
			case "r", "reject":
				state = stateRejected
			}

		case stateEditing:
			edited, err := ed.Edit(ctx, message)
			if err != nil {
				return "", false, err
			}
			// An emptied-out message keeps the previous one: the commit
			// message must never become empty.
			if cleaned := commitmsg.Clean(edited); cleaned != "" {
				message = cleaned
			}
			state = statePresented

		case stateAccepted:
			return message, true, nil

		case stateRejected:
			return "", false, nil
		}
	}
}

// readChoice prompts until the user enters a valid choice. Invalid input
// re-prompts without consuming a state transition.
func readChoice(scanner *bufio.Scanner, output io.Writer) (string, error) {
	for {
		if _, err := fmt.Fprint(output, "\nDo you want to (a)ccept, (e)dit, or (r)eject? "); err != nil {
			return "", err
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}

		choice := strings.TrimSpace(strings.ToLower(scanner.Text()))
		switch choice {
		case "a", "accept", "e", "edit", "r", "reject":
			return choice, nil
		default:
			if _, err := fmt.Fprintln(output, "Invalid choice. Please enter a, e, or r."); err != nil {
				return "", err
			}
		}
	}
}

// ShowCommitMessage displays a framed commit message
func ShowCommitMessage(message string, output io.Writer) error {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	if _, err := bold.Fprintln(output, "\nSuggested commit message:"); err != nil {
		return err
	}
	if _, err := cyan.Fprintln(output, strings.Repeat("─", 40)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(output, message); err != nil {
		return err
	}
	_, err := cyan.Fprintln(output, strings.Repeat("─", 40))
	return err
}
