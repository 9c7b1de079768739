package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkadit/qris"
	"github.com/mkadit/qris/internal/config"
)

func validateCmd(a *app) *cobra.Command {
	var convert bool

	cmd := &cobra.Command{
		Use:   "validate [payload...]",
		Short: "Validate payloads given as arguments or one per line on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := args
			if len(inputs) == 0 {
				var err error
				if inputs, err = readLines(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			proc := qris.NewProcessor(a.validator,
				qris.WithConcurrency(a.cfg.Processor.Concurrency),
				qris.WithStaticConversion(convert),
				qris.WithErrorHandler(nil),
			)
			results, err := proc.ProcessBatch(cmd.Context(), inputs)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if len(results) > 1 {
					fmt.Fprintf(cmd.OutOrStdout(), "[%d] ", r.Index+1)
				}
				if r.Payload == nil {
					failed++
					if err := a.out.Invalid(r.Err); err != nil {
						return err
					}
					continue
				}
				if err := a.out.Valid(); err != nil {
					return err
				}
				if err := a.out.Payload(r.Payload); err != nil {
					return err
				}
				if convert {
					if r.Err != nil {
						failed++
					}
					if err := a.out.Static(r.Static, r.Err); err != nil {
						return err
					}
				}
			}
			if failed > 0 {
				return errInvalid
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&convert, "convert", "c", false, "Also print the static form of valid payloads")

	return cmd
}

func decodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [payload]",
		Short: "Decode a payload without checking its CRC or required tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := qris.Decode(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			return a.out.Payload(p)
		},
	}
}

func convertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert [payload]",
		Short: "Convert a dynamic payload to a static one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			static, err := a.validator.ToStatic(strings.TrimSpace(args[0]))
			if static == "" {
				return err
			}
			if werr := a.out.Static(static, err); werr != nil {
				return werr
			}
			if err != nil {
				return errInvalid
			}
			return nil
		},
	}
}

func checksumCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checksum [body]",
		Short: "Compute the CRC of a payload body and print the stamped payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := strings.TrimSpace(args[0])
			stamped := qris.Stamp(body)
			fmt.Fprintf(cmd.OutOrStdout(), "CRC: %s\n%s\n", stamped[len(stamped)-qris.ChecksumLength:], stamped)
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		// Skip loading a config that may not exist yet.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.GlobalConfigPath()
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no home directory; pass a path")
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})

	return cmd
}

// readLines returns the non-empty trimmed lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read payloads: %w", err)
	}
	return lines, nil
}
