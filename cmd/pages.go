/*
Copyright © 2025 The wireframe authors
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/generator"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/logger"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/ui"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/wireframe"
)

var pagesCmd = &cobra.Command{
	Use:   "pages <description>",
	Short: "List the screens of an app as a workflow",
	Long: `Ask the model for the ordered list of screens an app needs. The result
can be passed to 'wireframe generate --workflow' to generate screens one by one.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description := strings.TrimSpace(strings.Join(args, " "))
		if description == "" {
			return generator.ErrEmptyDescription
		}
		logger.SetDescription(description)

		out, _ := cmd.Flags().GetString("out")
		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := outputFormat(formatFlag, out)
		if err != nil {
			return err
		}

		p, err := newPipeline(cmd.Context(), pipelineOptions{backend: true, command: "pages"})
		if err != nil {
			return err
		}
		defer p.Close()

		res, err := p.gen.GeneratePages(cmd.Context(), description)
		if err != nil {
			return err
		}

		data, err := wireframe.Marshal(res, format)
		if err != nil {
			return err
		}
		if err := writeOutput(cmd, out, data); err != nil {
			return err
		}
		if out != "" {
			fmt.Fprint(cmd.OutOrStdout(), ui.NewRenderer(cmd.OutOrStdout()).Workflow(res.Workflow))
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d screens to %s\n", len(res.Workflow), out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pagesCmd)
	pagesCmd.Flags().StringP("out", "o", "", "output file")
	pagesCmd.Flags().StringP("format", "f", "", "output format: json or yaml (default from --out extension, else json)")
}
