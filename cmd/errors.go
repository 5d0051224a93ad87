/*
Copyright © 2025 The wireframe authors
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/generator"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/llm"
)

// HandleFatalError handles unrecoverable errors that should terminate the application.
func HandleFatalError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(1)
}

// PrintError prints an error message without exiting, allowing for recovery.
// With --verbose the technical error is printed instead of userMsg.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

// userMessage maps pipeline errors to a short explanation with a next step.
func userMessage(err error) string {
	var genErr *llm.GenerationError
	switch {
	case errors.Is(err, generator.ErrEmptyDescription):
		return "A product description is required, e.g. wireframe generate \"a recipe sharing app\"."
	case generator.IsUnparsableJSON(err):
		return "The model reply was not valid JSON, even after repair. Try again, or run with --verbose to see the reply."
	case errors.As(err, &genErr):
		if genErr.StatusCode == 401 || genErr.StatusCode == 403 {
			return fmt.Sprintf("The %s backend rejected the credentials. Check your API key (wireframe config set-llm).", genErr.Provider)
		}
		return fmt.Sprintf("The generation backend failed: %v", genErr.Err)
	default:
		return err.Error()
	}
}
