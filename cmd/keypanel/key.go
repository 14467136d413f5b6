package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ericfisherdev/keypanel/internal/application/dialog"
	"github.com/ericfisherdev/keypanel/internal/config"
	"github.com/ericfisherdev/keypanel/internal/domain/model"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// keyStatus prints whether a key is stored, showing only its masked form.
func (a *app) keyStatus(ctx context.Context, out io.Writer) error {
	return a.withStore(ctx, func(_ *config.Config, store driven.CredentialStore) error {
		key, err := store.Get(ctx)
		if err != nil {
			return fmt.Errorf("read API key: %w", err)
		}
		if key == "" {
			_, err = fmt.Fprintln(out, "No API key stored.")
			return err
		}
		_, err = fmt.Fprintf(out, "API key stored: %s\n", model.MaskCredential(key))
		return err
	})
}

// keySet reads a key from the terminal or stdin, runs the same validation as
// the dialog and stores the trimmed value.
func (a *app) keySet(ctx context.Context, out io.Writer) error {
	input, err := a.readKey(out)
	if err != nil {
		return err
	}

	value, err := dialog.Validate(input)
	if err != nil {
		return errors.New(dialog.Message(err))
	}

	return a.withStore(ctx, func(_ *config.Config, store driven.CredentialStore) error {
		if err := store.Set(ctx, value); err != nil {
			return fmt.Errorf("%w: %w", dialog.ErrSaveFailed, err)
		}
		a.logger.Info("api key saved")
		_, err := fmt.Fprintf(out, "API key saved: %s\n", model.MaskCredential(value))
		return err
	})
}

func (a *app) readKey(out io.Writer) (string, error) {
	if a.isTerminal() {
		if _, err := fmt.Fprintf(out, "Gemini API key (get one at %s): ", model.GeminiKeyURL); err != nil {
			return "", err
		}
		b, err := a.readPassword()
		_, _ = fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read API key: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read API key: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
