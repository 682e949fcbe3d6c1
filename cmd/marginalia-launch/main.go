package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"Marginalia/internal/devserver"
	"Marginalia/internal/launch"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"gopkg.in/yaml.v3"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// exitCode carries a non-usage failure out of a command.
type exitCode int

func (c exitCode) Error() string { return fmt.Sprintf("exit status %d", int(c)) }

// run is the testable entrypoint. It returns 0 on success, 1 when the dev
// server is unreachable and 2 on usage errors.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		var code exitCode
		if errors.As(err, &code) {
			return int(code)
		}
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}
	return 0
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "marginalia-launch",
		Short:         "Inspect how the Marginalia shell resolves its launch arguments and dev server",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newResolveCmd(stdout), newProbeCmd(stdout))
	return root
}

// outputFormat is a pflag.Value limited to json and yaml.
type outputFormat string

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(v string) error {
	switch v = strings.ToLower(v); v {
	case "json", "yaml":
		*f = outputFormat(v)
		return nil
	}
	return fmt.Errorf("unknown format %q (want json or yaml)", v)
}

func (f *outputFormat) Type() string { return "format" }

var _ pflag.Value = (*outputFormat)(nil)

func newResolveCmd(stdout io.Writer) *cobra.Command {
	format := outputFormat("json")
	cmd := &cobra.Command{
		Use:   "resolve [--format json|yaml] -- [ARGS...]",
		Short: "Print the launch options the shell would resolve from ARGS",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := launch.Resolve(append([]string{"marginalia"}, args...))
			return writeOptions(stdout, opts, format)
		},
	}
	cmd.Flags().Var(&format, "format", "output format: json or yaml")
	return cmd
}

func writeOptions(w io.Writer, opts launch.Options, format outputFormat) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(opts); err != nil {
			return err
		}
		return enc.Close()
	}
	b, err := json.MarshalIndent(opts, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func newProbeCmd(stdout io.Writer) *cobra.Command {
	var (
		url     string
		once    bool
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check whether the frontend dev server accepts connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				url = devserver.URLFromEnv("")
			}
			var log logger.Logger
			if verbose {
				log = logger.NewDefaultLogger()
			}
			p := devserver.New(url, log)
			return probe(cmd.Context(), stdout, p, once)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&url, "url", "", "dev server URL (default: $"+devserver.EnvServerURL+", $"+devserver.EnvURL+" or "+devserver.DefaultURL+")")
	flags.BoolVar(&once, "once", false, "make a single attempt instead of retrying")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log each attempt")
	return cmd
}

func probe(ctx context.Context, w io.Writer, p *devserver.Prober, once bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	fmt.Fprintf(w, "url: %s\n", p.URL)
	hp, err := devserver.ParseHostPort(p.URL)
	if err != nil {
		fmt.Fprintln(w, "status: invalid url")
		return exitCode(1)
	}
	fmt.Fprintf(w, "target: %s:%d\n", hp.Host, hp.Port)
	fmt.Fprintf(w, "candidates: %s\n", strings.Join(hp.Candidates(), ", "))

	if once {
		err = p.Probe(ctx)
	} else {
		err = p.Wait(ctx)
	}
	if err != nil {
		fmt.Fprintf(w, "status: unreachable (%v)\n", err)
		return exitCode(1)
	}
	fmt.Fprintln(w, "status: reachable")
	return nil
}
