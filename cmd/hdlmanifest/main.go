package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/quantmind-br/hdlmanifest/internal/config"
	"github.com/quantmind-br/hdlmanifest/internal/manifest"
	"github.com/quantmind-br/hdlmanifest/internal/utils"
	"github.com/quantmind-br/hdlmanifest/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds state shared by the subcommands of one invocation
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool

	cfg    *config.Config
	log    *utils.Logger
	loader *manifest.Loader
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "hdlmanifest",
		Short: "Load and validate FPGA synthesis manifests",
		Long: `hdlmanifest reads hdlmake-style synthesis manifests (Manifest.py) and
checks that every required parameter is present and well-typed before a
synthesis tool is invoked.

Manifests may also be written as YAML, JSON or TOML. All paths in a manifest
are relative to the manifest's own directory.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ~/.hdlmanifest/config.yaml)")
	flags.Bool("strict", config.DefaultStrict, "Reject unknown manifest keys")
	flags.String("log-format", config.DefaultLogFormat, "Log format (pretty or json)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output")

	// Bind flags to viper
	_ = a.v.BindPFlag("manifest.strict", flags.Lookup("strict"))
	_ = a.v.BindPFlag("logging.format", flags.Lookup("log-format"))

	// Add subcommands
	rootCmd.AddCommand(a.validateCmd())
	rootCmd.AddCommand(a.showCmd())
	rootCmd.AddCommand(a.filesCmd())
	rootCmd.AddCommand(a.argsCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// setup loads configuration and builds the logger and loader
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(utils.ExpandPath(a.cfgFile))
	}

	cfg, err := config.LoadWithViper(a.v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	a.log = utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  cmd.ErrOrStderr(),
		Verbose: a.verbose,
	})

	a.loader = manifest.NewLoader(
		manifest.WithStrict(cfg.Manifest.Strict),
		manifest.WithLogger(a.log),
	)
	return nil
}

// load resolves the manifest argument and loads it
func (a *app) load(args []string) (*manifest.Manifest, string, error) {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	path := utils.ResolveManifestPath(arg, a.cfg.Manifest.DefaultName)

	m, err := a.loader.Load(path)
	if err != nil {
		return nil, path, err
	}

	a.log.WithManifest(path).Debug().
		Str("target", string(m.Target())).
		Str("device", m.SynDevice()).
		Int("files", len(m.Files())).
		Msg("Manifest loaded")

	return m, path, nil
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [manifest]",
		Short: "Check that a manifest is complete and well-typed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, err := a.load(args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK %s\n", path)
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show [manifest]",
		Short: "Print the validated manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "yaml" && format != "json" {
				return fmt.Errorf("unsupported format %q (use text, yaml or json)", format)
			}

			m, _, err := a.load(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "yaml":
				data, err := yaml.Marshal(m.Document())
				if err != nil {
					return fmt.Errorf("failed to encode manifest: %w", err)
				}
				_, err = out.Write(data)
				return err
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(m.Document())
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, f := range m.Fields() {
				fmt.Fprintf(tw, "%s\t%s\n", f.Key, f.Value)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, yaml or json)")
	return cmd
}

func (a *app) filesCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "files [manifest]",
		Short: "List source files resolved against the manifest directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := a.load(args)
			if err != nil {
				return err
			}

			files := m.ResolvedFiles()
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			if !check {
				return nil
			}

			missing, err := utils.MissingFiles(files)
			if err != nil {
				return err
			}
			for _, f := range missing {
				a.log.Warn().Str("file", f).Msg("Source file not found")
			}
			if len(missing) > 0 {
				return fmt.Errorf("%d of %d source files missing", len(missing), len(files))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Fail if any source file does not exist")
	return cmd
}

func (a *app) argsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "args [manifest]",
		Short: "Print the manifest as key=value toolchain arguments",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, err := a.load(args)
			if err != nil {
				return err
			}
			for _, arg := range m.ToolArgs() {
				fmt.Fprintln(cmd.OutOrStdout(), arg)
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// version needs no configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		},
	}
}
