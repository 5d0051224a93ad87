package cmd

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/config"
	"github.com/Dheerajdoppalapudi/design-generator-sub000/internal/llm"
)

const validReply = "```json\n" + `{
  "app": {
    "name": "Fresh Market",
    "theme": {"primary": "#16A34A"},
    "nav": {"type": "tabs", "items": [{"name": "Home", "icon": "home", "screen": "home"}]}
  },
  "screens": [{
    "name": "home",
    "title": "Home",
    "isStartPoint": true,
    "components": [
      {"type": "Header", "dataProperties": {"title": "Fresh Market"}, "designProperties": {}}
    ]
  }]
}` + "\n```"

const invalidReply = `{
  "app": {"name": "Fresh Market", "nav": {"type": "carousel", "items": []}},
  "screens": [{"name": "home", "components": []}]
}`

const workflowJSON = `{"workflow": [
  {"id": "home", "title": "Home", "description": "Featured produce", "position": 1, "nextScreens": ["cart"]},
  {"id": "cart", "title": "Cart", "description": "Items and checkout", "position": 2, "nextScreens": []}
]}`

type fakeCompleter struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeCompleter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// setupCLI points the CLI at an in-memory filesystem and a fake backend,
// and restores every global when the test ends.
func setupCLI(t *testing.T, c llm.Completer) afero.Fs {
	t.Helper()

	origFs, origCompleter, origDir := appFs, newCompleter, config.GetGlobalConfigDir
	t.Cleanup(func() {
		appFs, newCompleter, config.GetGlobalConfigDir = origFs, origCompleter, origDir
		viper.Reset()
		bindTestFlags()
	})

	fs := afero.NewMemMapFs()
	appFs = fs
	newCompleter = func(context.Context, llm.Config) (llm.Completer, func() error, error) {
		return c, nil, nil
	}
	config.GetGlobalConfigDir = func() (string, error) { return "/home/tester/.wireframe", nil }

	viper.Reset()
	bindTestFlags()
	viper.Set("llm.provider", "http")
	viper.Set("llm.endpoint", "http://backend.test/complete")
	return fs
}

// bindTestFlags restores the flag bindings viper.Reset drops.
func bindTestFlags() {
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("generate.delay", generateCmd.Flags().Lookup("delay"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
}

func resetFlags(t *testing.T, c *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("reset flag %s: %v", f.Name, err)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(t, sub)
	}
}

// runCLI executes the root command with args and returns what it printed.
func runCLI(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(t, rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}
