/*
Copyright © 2025 The wireframe authors
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/config"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/generator"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/logger"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/ui"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/wireframe"
)

// ErrInvalidWireframe is returned by --strict runs when a document fails validation.
var ErrInvalidWireframe = errors.New("wireframe failed validation")

var generateCmd = &cobra.Command{
	Use:   "generate <description>",
	Short: "Generate a wireframe document from a product description",
	Long: `Generate a wireframe document from a product description.

Without --out the full result (document, validation report and metadata) is
printed to stdout. With --out only the document is written and a summary is
printed instead.

With --workflow (a file produced by 'wireframe pages') the prompt lists the
app's screens. Add --screen N to generate only the Nth screen (0-based), or
--all to generate every screen in turn, waiting --delay between calls.

Examples:
  wireframe generate "a recipe sharing app with saved collections"
  wireframe pages "a recipe app" --out flow.json
  wireframe generate "a recipe app" --workflow flow.json --all --out screens/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().String("workflow", "", "workflow file (JSON or YAML) from 'wireframe pages'; - reads stdin")
	generateCmd.Flags().Int("screen", -1, "generate only this workflow screen (0-based index)")
	generateCmd.Flags().Bool("all", false, "generate every workflow screen sequentially")
	generateCmd.Flags().Duration("delay", config.DefaultGenerateDelay, "pause between screens with --all")
	generateCmd.Flags().StringP("out", "o", "", "output file (directory with --all)")
	generateCmd.Flags().StringP("format", "f", "", "output format: json or yaml (default from --out extension, else json)")
	generateCmd.Flags().Bool("strict", false, "exit non-zero when the document fails validation")

	_ = viper.BindPFlag("generate.delay", generateCmd.Flags().Lookup("delay"))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		return generator.ErrEmptyDescription
	}
	logger.SetDescription(description)

	workflowPath, _ := cmd.Flags().GetString("workflow")
	screen, _ := cmd.Flags().GetInt("screen")
	all, _ := cmd.Flags().GetBool("all")
	out, _ := cmd.Flags().GetString("out")
	formatFlag, _ := cmd.Flags().GetString("format")
	strict, _ := cmd.Flags().GetBool("strict")

	if all && screen >= 0 {
		return errors.New("--all and --screen cannot be combined")
	}
	if (all || screen >= 0) && workflowPath == "" {
		return errors.New("--all and --screen need --workflow")
	}
	format, err := outputFormat(formatFlag, out)
	if err != nil {
		return err
	}

	var workflow []generator.WorkflowScreen
	if workflowPath != "" {
		if workflow, err = loadWorkflow(cmd, workflowPath); err != nil {
			return err
		}
		if screen >= len(workflow) {
			return fmt.Errorf("--screen %d is out of range (workflow has %d screens)", screen, len(workflow))
		}
	}

	p, err := newPipeline(cmd.Context(), pipelineOptions{backend: true, command: "generate"})
	if err != nil {
		return err
	}
	defer p.Close()

	if all {
		genCfg, err := config.LoadGenerateConfig()
		if err != nil {
			return err
		}
		return generateAll(cmd, p.gen, description, workflow, genCfg.Delay, out, format, strict)
	}

	res, err := p.gen.GenerateWireframe(cmd.Context(), generator.WireframeRequest{
		Description:       description,
		Workflow:          workflow,
		TargetScreenIndex: screen,
	})
	if err != nil {
		return err
	}
	if err := emitResult(cmd, res, out, format); err != nil {
		return err
	}
	if strict && !res.Validation.IsValid {
		return ErrInvalidWireframe
	}
	return nil
}

// generateAll produces one document per workflow screen. A failed screen is
// reported and skipped; the command fails at the end if any screen failed.
func generateAll(cmd *cobra.Command, gen *generator.Generator, description string, workflow []generator.WorkflowScreen,
	delay time.Duration, outDir string, format wireframe.Format, strict bool) error {
	ctx := cmd.Context()
	errOut := cmd.ErrOrStderr()
	var failed, invalid int

	for i, s := range workflow {
		if i > 0 && delay > 0 {
			if err := sleep(ctx, delay); err != nil {
				return err
			}
		}
		fmt.Fprintf(errOut, "[%d/%d] %s\n", i+1, len(workflow), s.Title)

		res, err := gen.GenerateWireframe(ctx, generator.WireframeRequest{
			Description:       description,
			Workflow:          workflow,
			TargetScreenIndex: i,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failed++
			slog.Warn("screen generation failed", "screen", s.ID, "error", err)
			PrintError("  ✗ "+userMessage(err), err)
			continue
		}
		if !res.Validation.IsValid {
			invalid++
		}

		path := ""
		if outDir != "" {
			path = filepath.Join(outDir, screenFileName(s, i)+extension(format))
		}
		if err := emitResult(cmd, res, path, format); err != nil {
			return err
		}
	}

	switch {
	case failed > 0:
		return fmt.Errorf("%d of %d screens failed", failed, len(workflow))
	case strict && invalid > 0:
		return fmt.Errorf("%w: %d of %d screens", ErrInvalidWireframe, invalid, len(workflow))
	}
	return nil
}

// emitResult writes the result envelope to stdout, or the document to path
// followed by a human summary.
func emitResult(cmd *cobra.Command, res *generator.Result, path string, format wireframe.Format) error {
	r := ui.NewRenderer(cmd.OutOrStdout())
	if path == "" {
		data, err := wireframe.Marshal(res, format)
		if err != nil {
			return err
		}
		if err := writeOutput(cmd, "", data); err != nil {
			return err
		}
		fmt.Fprint(cmd.ErrOrStderr(), ui.NewRenderer(cmd.ErrOrStderr()).Report(res.Validation))
		return nil
	}

	data, err := wireframe.Marshal(res.Wireframe, format)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, path, data); err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), r.Result(res))
	fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", path)
	return nil
}

// screenFileName names the file for the screen at index. The name never
// contains a path separator, so it stays inside the output directory.
func screenFileName(s generator.WorkflowScreen, index int) string {
	return s.Slug(index + 1)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
