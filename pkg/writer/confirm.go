// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package writer

import (
	"context"

	"github.com/charmbracelet/huh"

	"github.com/stratastor/ifmigrate/pkg/errors"
)

// Confirmer asks whether a file may be written.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// HuhConfirmer prompts on the terminal.
type HuhConfirmer struct{}

func (HuhConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return false, errors.Wrap(err, errors.WriterPromptFailed).
			WithMetadata("prompt", prompt)
	}
	return ok, nil
}

// AutoConfirmer answers every prompt with Answer. It backs --yes.
type AutoConfirmer struct {
	Answer bool
}

func (a AutoConfirmer) Confirm(context.Context, string) (bool, error) {
	return a.Answer, nil
}
