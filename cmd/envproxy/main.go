// FILE: lixenwraith/envproxy/cmd/envproxy/main.go
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lixenwraith/envproxy"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "envproxy",
		Short:         "Read typed environment variables and document configuration schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := log.New()
			logger.SetOutput(cmd.ErrOrStderr())
			logger.SetLevel(log.WarnLevel)
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
			envproxy.SetLogger(logger)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log key lookups and accessor selection")

	root.AddCommand(newGetCmd(), newExportCmd(), newDumpCmd())
	return root
}

func newGetCmd() *cobra.Command {
	var (
		hint   string
		prefix string
		def    string
	)

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Read one variable and print it converted to the given type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := envproxy.ParseTypeHint(hint)
			if err != nil {
				return err
			}
			var fallback any = envproxy.Unset
			if cmd.Flags().Changed("default") {
				fallback = def
			}

			value, err := envproxy.NewAccessor(prefix).Get(h, args[0], fallback)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%v\n", value)
			return err
		},
	}
	cmd.Flags().StringVarP(&hint, "type", "t", string(envproxy.HintStr), "type hint: any, bool, float, int, str, list, json")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "key prefix")
	cmd.Flags().StringVarP(&def, "default", "d", "", "value printed when the key is absent")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		schemaPath string
		output     string
		noDefaults bool
		sortByName bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate a sample environment file from a schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := loadClass(schemaPath, nil)
			if err != nil {
				return err
			}

			opts := envproxy.ExportOptions{IncludeDefaults: !noDefaults, SortByName: sortByName}
			if output == "" || output == "-" {
				return class.ExportEnv(cmd.OutOrStdout(), opts)
			}
			return class.ExportEnvFile(output, opts)
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema file (.toml, .yaml, .json); discovered when empty")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output path, - for stdout")
	cmd.Flags().BoolVar(&noDefaults, "no-defaults", false, "leave every value empty")
	cmd.Flags().BoolVar(&sortByName, "sort", false, "sort fields by key name")
	return cmd
}

func newDumpCmd() *cobra.Command {
	var (
		schemaPath string
		format     string
		envFiles   []string
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Resolve every field of a schema against the environment and print the values",
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := loadClass(schemaPath, envFiles)
			if err != nil {
				return err
			}
			return class.Dump(cmd.OutOrStdout(), format)
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema file (.toml, .yaml, .json); discovered when empty")
	cmd.Flags().StringVarP(&format, "format", "f", envproxy.FormatTOML, "output format: toml, yaml, json, env")
	cmd.Flags().StringSliceVarP(&envFiles, "env-file", "e", nil, "dotenv files applied under the process environment")
	return cmd
}

func loadClass(schemaPath string, envFiles []string) (*envproxy.Class, error) {
	if schemaPath == "" {
		schemaPath = envproxy.DiscoverSchema(envproxy.DefaultSchemaDiscoveryOptions("envproxy"))
		if schemaPath == "" {
			return nil, errors.New("no schema given and none found; pass --schema or set ENVPROXY_SCHEMA")
		}
	}
	schema, err := envproxy.LoadSchema(schemaPath)
	if err != nil {
		return nil, err
	}
	if len(envFiles) > 0 {
		if err := envproxy.LoadDotenv(envproxy.Environ{}, envFiles...); err != nil {
			return nil, err
		}
	}
	return schema.Builder().Build()
}
