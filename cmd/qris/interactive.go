package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// interactive prompts for one payload, prints its fields and its static form.
func (a *app) interactive(cmd *cobra.Command) error {
	fmt.Fprint(cmd.OutOrStdout(), "Enter QRIS string: ")

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("read payload: %w", err)
	}
	input := strings.TrimSpace(line)

	p, err := a.validator.Validate(input)
	if err != nil {
		if werr := a.out.Invalid(err); werr != nil {
			return werr
		}
		return errInvalid
	}

	if err := a.out.Valid(); err != nil {
		return err
	}
	if err := a.out.Payload(p); err != nil {
		return err
	}

	static, err := a.validator.ToStatic(input)
	if werr := a.out.Static(static, err); werr != nil {
		return werr
	}
	if err != nil {
		return errInvalid
	}
	return nil
}
