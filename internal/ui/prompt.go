package ui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/rileyhilliard/sysmon/internal/errors"
)

// PromptPath asks for a file path with a huh input. An empty answer or an
// aborted form returns errors.ErrSaveCancelled.
func PromptPath(title, placeholder string) (string, error) {
	var path string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Leave empty to cancel").
				Placeholder(placeholder).
				Value(&path),
		),
	)

	if err := form.Run(); err != nil {
		if err == huh.ErrUserAborted {
			return "", errors.ErrSaveCancelled
		}
		return "", errors.WrapWithCode(err, errors.ErrInput,
			"Failed to get user input",
			"Pass the path with --out instead")
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.ErrSaveCancelled
	}
	return path, nil
}
