package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword; tests replace it to
// avoid touching the terminal.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

// promptPassword prints a prompt and reads a password without echo.
func (a *App) promptPassword(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	pw, err := readPassword()
	fmt.Fprintln(a.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// promptMultiline reads lines from the input until an empty line and joins
// them with newlines.
func (a *App) promptMultiline(prompt string) (string, error) {
	fmt.Fprintf(a.out, "%s\n(press Enter on an empty line to finish)\n", prompt)

	reader := bufio.NewReader(a.in)
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// ensureUnlocked prompts for the diary password until the gate opens, with
// a small retry budget.
func (a *App) ensureUnlocked() error {
	if a.svc.Unlocked() {
		return nil
	}

	var err error
	for attempt := 0; attempt < 3; attempt++ {
		var pw string
		pw, err = a.promptPassword("Diary password: ")
		if err != nil {
			return err
		}
		if err = a.svc.Unlock(pw); err == nil {
			return nil
		}
		fmt.Fprintln(a.out, "Wrong password, try again.")
	}
	return err
}

// ensureSealKey makes sure an encryption password is in memory, prompting
// when the diary is unprotected and none was entered yet.
func (a *App) ensureSealKey() error {
	if err := a.ensureUnlocked(); err != nil {
		return err
	}
	if a.svc.HasPassword() {
		return nil
	}

	pw, err := a.promptPassword("Password to seal this entry: ")
	if err != nil {
		return err
	}
	return a.svc.Unlock(pw)
}
