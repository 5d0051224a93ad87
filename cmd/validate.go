/*
Copyright © 2025 The wireframe authors
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/generator"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/ui"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/watch"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/wireframe"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|->",
	Short: "Validate a wireframe document or a saved model reply",
	Long: `Run JSON extraction, repair, defaults and validation on an existing file
without calling the model. The file may be a wireframe document or a raw
model reply with the document inside a code fence.

With --out the normalized document (defaults applied) is written.
With --watch the file is validated again every time it is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

type validateOptions struct {
	path        string
	description string
	out         string
	format      wireframe.Format
}

func runValidate(cmd *cobra.Command, args []string) error {
	description, _ := cmd.Flags().GetString("description")
	out, _ := cmd.Flags().GetString("out")
	formatFlag, _ := cmd.Flags().GetString("format")
	strict, _ := cmd.Flags().GetBool("strict")
	watching, _ := cmd.Flags().GetBool("watch")

	if watching && args[0] == "-" {
		return errors.New("--watch needs a file, not stdin")
	}
	format, err := outputFormat(formatFlag, out)
	if err != nil {
		return err
	}
	opts := validateOptions{path: args[0], description: description, out: out, format: format}

	p, err := newPipeline(cmd.Context(), pipelineOptions{command: "validate"})
	if err != nil {
		return err
	}
	defer p.Close()

	if watching {
		return watchValidate(cmd, p.gen, opts)
	}

	res, err := validateOnce(cmd, p.gen, opts)
	if err != nil {
		return err
	}
	if strict && !res.Validation.IsValid {
		return ErrInvalidWireframe
	}
	return nil
}

func validateOnce(cmd *cobra.Command, gen *generator.Generator, opts validateOptions) (*generator.Result, error) {
	data, err := readInput(cmd, opts.path)
	if err != nil {
		return nil, err
	}
	res, err := gen.ProcessReply(string(data), opts.description)
	if err != nil {
		return nil, err
	}

	fmt.Fprint(cmd.OutOrStdout(), ui.NewRenderer(cmd.OutOrStdout()).Result(res))
	if opts.out != "" {
		doc, err := wireframe.Marshal(res.Wireframe, opts.format)
		if err != nil {
			return nil, err
		}
		if err := writeOutput(cmd, opts.out, doc); err != nil {
			return nil, err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", opts.out)
	}
	return res, nil
}

// watchValidate validates once, then again on every save until interrupted.
// Failures are reported and watching continues.
func watchValidate(cmd *cobra.Command, gen *generator.Generator, opts validateOptions) error {
	rerun := func() {
		if _, err := validateOnce(cmd, gen, opts); err != nil {
			PrintError(userMessage(err), err)
		}
	}

	w, err := watch.New(opts.path, watch.DefaultDebounce, func() {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s changed\n", opts.path)
		rerun()
	})
	if err != nil {
		return err
	}

	rerun()
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes (Ctrl+C to stop)\n", opts.path)

	ctx, stop := notifyContext(cmd)
	defer stop()
	return w.Run(ctx)
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("description", "", "product description recorded in metadata when missing")
	validateCmd.Flags().StringP("out", "o", "", "write the normalized document to this file")
	validateCmd.Flags().StringP("format", "f", "", "output format: json or yaml (default from --out extension, else json)")
	validateCmd.Flags().Bool("strict", false, "exit non-zero when the document fails validation")
	validateCmd.Flags().Bool("watch", false, "validate again whenever the file is saved")
}
