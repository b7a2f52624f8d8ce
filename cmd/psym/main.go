package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"psym"
	"psym/config"
	"psym/examples"
	"psym/logger"
	"psym/solver"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "psym",
		Short:         "Symbolic scheduler for state-machine programs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newListCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		configPath string
		program    string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the search over one of the bundled programs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			builder, ok := examples.Registry()[program]
			if !ok {
				return fmt.Errorf("unknown program %q, see `psym list`", program)
			}

			ctx := solver.NewDefaultContext()
			log := logger.New(cfg.Verbosity, os.Stderr)
			result := psym.RunSearch(ctx, cfg, builder(ctx), log)
			if result.Err != nil {
				fmt.Fprintln(os.Stderr, result.Err)
			}
			fmt.Printf("result: %s\n", result.Status)
			os.Exit(result.Status.ExitCode())
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVarP(&program, "program", "p", "ping", "bundled program to run")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the bundled programs",
		Run: func(cmd *cobra.Command, args []string) {
			names := []string{}
			for name := range examples.Registry() {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}
}
