package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kelly-lin/bevyml/config"
	"github.com/kelly-lin/bevyml/format"
	"github.com/kelly-lin/bevyml/itree"
	"github.com/kelly-lin/bevyml/log"
	"github.com/kelly-lin/bevyml/parser"
)

var version = "dev"

var errNotAFile = errors.New("is not a readable file")

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	cfg     config.Config
	debug   bool
	logger  *log.Logger
	cleanUp func()
}

func newRootCmd(cfg config.Config) *cobra.Command {
	a := &app{cfg: cfg, logger: log.Discard(), cleanUp: func() {}}
	root := &cobra.Command{
		Use:           "bevyml",
		Short:         "Parse a Bevyml file with the tree-sitter grammar",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogging(cmd)
		},
	}
	root.PersistentFlags().BoolVarP(&a.debug, "debug", "d", cfg.Debug, "enable debugging features such as logging")

	var id string
	parseCmd := &cobra.Command{
		Use:   "parse [PATH]",
		Short: "Parse a file and report the root node kind",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.cleanUp()
			return a.reportErr(cmd, a.run(cmd, pathArg(args), false, id))
		},
	}
	parseCmd.Flags().StringVar(&id, "id", "", "also report the range of the element with this id")

	debugCmd := &cobra.Command{
		Use:   "debug [PATH]",
		Short: "Print the full tree dump as a debug view of the parser output",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.cleanUp()
			return a.reportErr(cmd, a.run(cmd, pathArg(args), true, ""))
		},
	}

	root.AddCommand(parseCmd, debugCmd)
	return root
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

// Command output goes to stdout, so we need to log to a file instead.
func (a *app) setupLogging(cmd *cobra.Command) error {
	if a.cfg.NoColor {
		color.NoColor = true
	}
	logger, cleanUp, err := log.SetupFile(a.cfg.LogFile, a.debug)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", err)
	}
	a.logger = logger
	a.cleanUp = cleanUp
	a.logger.Debugf("bevyml %s, config: %+v", version, a.cfg)
	return nil
}

func (a *app) reportErr(cmd *cobra.Command, err error) error {
	if err != nil {
		a.logger.Errorf("%s", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err)
	}
	return err
}

func (a *app) run(cmd *cobra.Command, path string, debugTree bool, id string) error {
	path, err := resolvePath(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Parsing file: %s\n", path)

	p, err := parser.Default(parser.WithLogger(a.logger))
	if err != nil {
		return fmt.Errorf("language initialization failed: %w", err)
	}
	defer p.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	tree, source, err := p.ParseFile(ctx, path)
	if errors.Is(err, itree.ErrMissingParseTree) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Parser produced no tree for `%s`. The file might be empty or invalid.\n", path)
		return nil
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("failed to read file content `%s`: %w", path, err)
	}
	if err != nil {
		return err
	}
	defer tree.Close()

	root := tree.RootNode()
	fmt.Fprintf(out, "Successfully parsed `%s`: root node `%s`\n", path, root.Type())

	if id != "" {
		reportElement(out, id, source)
	}
	elements, buildErr := itree.Build(tree, source, a.logger)
	if buildErr == nil {
		format.LogTree(a.logger, elements)
		a.logLayouts(elements)
	}
	if !debugTree {
		if buildErr != nil {
			fmt.Fprintf(out, "No element tree: %s\n", buildErr)
		}
		return nil
	}

	fmt.Fprintln(out, "Dumping tree nodes:")
	if err := format.SyntaxTree(out, root, source); err != nil {
		return err
	}
	if buildErr != nil {
		fmt.Fprintf(out, "No element tree: %s\n", buildErr)
		return nil
	}
	fmt.Fprintln(out, "Dumping element tree:")
	return format.Tree(out, elements)
}

// logLayouts dumps the computed layout of every element at debug level.
func (a *app) logLayouts(elements *itree.Tree) {
	if !a.logger.DebugEnabled() {
		return
	}
	elements.Walk(func(n *itree.Node, depth int) bool {
		a.logger.Debugf("layout of <%s> at %d:%d", n.Bundle().Name, n.StartPosition.Row+1, n.StartPosition.Column+1)
		a.logger.Dump(n.Layout)
		return true
	})
}

func reportElement(out io.Writer, id string, source []byte) {
	r, err := parser.FindElementByID(id, source)
	if err != nil {
		fmt.Fprintf(out, "Element `%s`: %s\n", id, err)
		return
	}
	fmt.Fprintf(
		out,
		"Element `%s` at %d:%d..%d:%d\n",
		id, r.Start.Row+1, r.Start.Column+1, r.End.Row+1, r.End.Column+1,
	)
}

func resolvePath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to inspect path `%s`: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("`%s` %w", path, errNotAFile)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize path `%s`: %w", path, err)
	}
	return abs, nil
}
