package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// notesHeader is written above notes being edited and stripped afterwards.
const notesHeader = "# Notes for %s. Lines starting with # are ignored.\n# Save an empty file to clear the notes.\n"

// EditNotes opens notes for team in the user's editor and returns the edited
// text with comment lines and surrounding blank space removed.
func EditNotes(team, notes string) (string, error) {
	content := fmt.Sprintf(notesHeader, team)
	if notes != "" {
		content += notes + "\n"
	}
	edited, err := EditInEditor([]byte(content), ".txt")
	if err != nil {
		return "", err
	}
	return stripComments(string(edited)), nil
}

func stripComments(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t\r"))
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// EditInEditor writes content to a temp file with the given suffix, opens
// it in $VISUAL or $EDITOR and returns what was saved.
func EditInEditor(content []byte, suffix string) ([]byte, error) {
	editor := getEditor()
	if editor == "" {
		return nil, errors.New("EDITOR not set. Set it or pass the notes as arguments instead of -i")
	}

	tmpFile, err := os.CreateTemp("", "footy-*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	_, err = tmpFile.Write(content)
	if closeErr := tmpFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := runEditor(editor, tmpPath); err != nil {
		return nil, err
	}

	result, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	return result, nil
}

// getEditor prefers VISUAL over EDITOR.
func getEditor() string {
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	return os.Getenv("EDITOR")
}

// runEditor runs editor on path. The editor string may carry arguments,
// e.g. "code --wait".
func runEditor(editor, path string) error {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return errors.New("empty editor command")
	}

	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run editor: %w", err)
	}
	return nil
}
