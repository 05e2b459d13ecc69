// Package cli wires cobra flags to the language core's entry points.
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rimu-lang/rimu/compiler"
	"github.com/rimu-lang/rimu/eval"
	"github.com/rimu-lang/rimu/meta"
	"github.com/rimu-lang/rimu/stdlib"
	"github.com/rimu-lang/rimu/value"
)

var (
	sourceID string
	format   string
	watch    bool
	envPath  string
)

// Execute builds and runs the root command.
func Execute() error {
	root := &cobra.Command{
		Use:   "rimu [file]",
		Short: "Evaluate a Rimu document and print its value",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.Flags().StringVar(&sourceID, "source-id", "", "source id reported in diagnostics (defaults to the file path)")
	root.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	root.Flags().BoolVar(&watch, "watch", false, "re-evaluate on file change")
	root.Flags().StringVar(&envPath, "env", "", "JSON/YAML file merged into the root environment before evaluation")
	return root.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	path := args[0]
	if sourceID == "" {
		sourceID = path
	}

	if err := evaluateAndPrint(path); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		if !watch {
			return err
		}
	}
	if !watch {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("rimu: starting watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("rimu: watching %s: %w", path, err)
	}

	log.Printf("rimu: watching %s for changes", path)
	for event := range watcher.Events {
		if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			continue
		}
		log.Printf("rimu: %s changed, re-evaluating", path)
		if err := evaluateAndPrint(path); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	}
	return nil
}

func evaluateAndPrint(path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("rimu: reading %s: %w", path, err)
	}

	source := meta.SourceID(sourceID)
	block, errs := compiler.ParseBlock(source, string(text))
	if len(errs) > 0 {
		return reportErrors(errs, string(text))
	}

	env := value.NewEnvironment()
	stdlib.Register(env)
	if envPath != "" {
		if err := loadEnvFile(env, envPath); err != nil {
			return err
		}
	}

	result, err := eval.EvalBlock(block, env)
	if err != nil {
		return fmt.Errorf("rimu: evaluation failed: %w", err)
	}

	return printValue(result)
}

func reportErrors(errs []error, source string) error {
	for _, e := range errs {
		if reportable, ok := e.(interface{ Report() meta.ErrorReport }); ok {
			fmt.Fprintln(os.Stderr, reportable.Report().Render(source))
			continue
		}
		fmt.Fprintln(os.Stderr, e)
	}
	return fmt.Errorf("rimu: %d error(s)", len(errs))
}

func printValue(v value.Value) error {
	switch format {
	case "yaml":
		out, err := yaml.Marshal(value.ToInterface(v))
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	case "json", "":
		data, err := v.MarshalJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Println(string(data))
		return err
	default:
		return fmt.Errorf("rimu: unknown --format %q (want json or yaml)", format)
	}
}

// loadEnvFile merges a JSON or YAML file's top-level object into env for
// the `--env` flag.
func loadEnvFile(env *value.Environment, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("rimu: reading --env file %s: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("rimu: parsing --env file %s: %w", path, err)
	}
	for k, v := range raw {
		val, err := value.FromInterface(v)
		if err != nil {
			return fmt.Errorf("rimu: --env file %s: %w", path, err)
		}
		env.Insert(k, val)
	}
	return nil
}
