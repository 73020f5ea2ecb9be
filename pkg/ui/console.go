package ui

import (
	"github.com/charmbracelet/huh"
	"github.com/pkg/errors"
)

// ReadSelection prompts the user to pick one of options and returns its index.
func ReadSelection(options []string, title string) (int, error) {
	if len(options) == 0 {
		return -1, errors.New("no options provided")
	}

	selected := 0
	huhOptions := make([]huh.Option[int], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt, i)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(title).
				Options(huhOptions...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return -1, err
	}
	return selected, nil
}
