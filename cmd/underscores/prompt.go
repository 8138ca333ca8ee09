// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/disrpt/underscores/internal/layout"
	"github.com/disrpt/underscores/internal/runner"
)

var isTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// promptFunc asks the user for a corpus' raw directory.
var promptFunc = promptRawPath

// rawPathResolver uses --raw values first and prompts for the rest.
func rawPathResolver(raw map[string]string) runner.RawPathFunc {
	return func(_ context.Context, c layout.Corpus) (string, error) {
		if path, ok := raw[c.Name]; ok && strings.TrimSpace(path) != "" {
			return strings.TrimSpace(path), nil
		}
		if !isTerminal() {
			return "", fmt.Errorf("no raw data directory for %s; pass --raw %s=<dir>", c.Name, c.Name)
		}
		return promptFunc(c)
	}
}

func promptRawPath(c layout.Corpus) (string, error) {
	title := c.Prompt
	if title == "" {
		title = fmt.Sprintf("Enter path for the %s raw data folder", c.Name)
	}
	var path string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Prompt("> ").
			Value(&path).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("a directory is required")
				}
				return nil
			}),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt for %s raw path: %w", c.Name, err)
	}
	return strings.TrimSpace(path), nil
}
