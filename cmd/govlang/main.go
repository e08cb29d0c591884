// Command govlang interprets .gov source files.
//
// Usage:
//
//	govlang [command] [options] <file.gov>
//
// Commands:
//
//	run     Interpret and execute the program (default)
//	parse   Print the parsed AST structure
//	debug   Execute with detailed runtime tracing
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"github.com/gosuda/govlang"
	"github.com/gosuda/govlang/ast"
	gruntime "github.com/gosuda/govlang/runtime"
)

func main() {
	app := cli.NewApp()
	app.Name = "govlang"
	app.Usage = "interpreter for the .gov scripting language"
	app.ArgsUsage = "<file.gov>"
	app.HideVersion = true
	app.Action = runAction
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "interpret and execute the program (default)",
			ArgsUsage: "<file.gov>",
			Action:    runAction,
		},
		{
			Name:      "parse",
			Usage:     "print the parsed AST structure",
			ArgsUsage: "<file.gov>",
			Action:    parseAction,
		},
		{
			Name:      "debug",
			Usage:     "execute with detailed runtime tracing",
			ArgsUsage: "<file.gov>",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "verbose, v",
					Usage: "trace verbosity `LEVEL` (0-3)",
					Value: 1,
				},
				cli.BoolFlag{
					Name:  "step, s",
					Usage: "pause before every statement",
				},
				cli.StringFlag{
					Name:  "dump-env",
					Usage: "write the final environment snapshot to `FILE`",
				},
				cli.StringFlag{
					Name:  "load-env",
					Usage: "pre-seed the environment from snapshot `FILE`",
				},
			},
			Action: debugAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadProgram reads and parses the positional source file argument. Any
// failure maps to exit status 1.
func loadProgram(ctx *cli.Context) (*ast.Program, error) {
	path := ctx.Args().First()
	if path == "" {
		cli.ShowAppHelp(ctx)
		return nil, cli.NewExitError("error: no filename provided", 1)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, cli.NewExitError(fmt.Sprintf("error: could not open file %s", path), 1)
	}
	prog, err := govlang.Parse(string(src), os.Stderr)
	if err != nil || prog == nil {
		return nil, cli.NewExitError(fmt.Sprintf("error: parse failed: %v", err), 1)
	}
	return prog, nil
}

func runAction(ctx *cli.Context) error {
	prog, err := loadProgram(ctx)
	if err != nil {
		return err
	}
	gruntime.New().Run(prog)
	return nil
}

func parseAction(ctx *cli.Context) error {
	prog, err := loadProgram(ctx)
	if err != nil {
		return err
	}
	ast.Fprint(os.Stdout, prog)
	return nil
}

func debugAction(ctx *cli.Context) error {
	prog, err := loadProgram(ctx)
	if err != nil {
		return err
	}

	level := ctx.Int("verbose")
	if level < 0 {
		level = 0
	}
	if level > 3 {
		level = 3
	}

	if ctx.Bool("step") && isatty.IsTerminal(os.Stdout.Fd()) {
		return runStepper(stepperConfig{
			prog:    prog,
			level:   level,
			loadEnv: ctx.String("load-env"),
			dumpEnv: ctx.String("dump-env"),
		})
	}

	in := gruntime.New()
	if path := ctx.String("load-env"); path != "" {
		if err := loadSnapshot(in, path); err != nil {
			return cli.NewExitError(fmt.Sprintf("error: %v", err), 1)
		}
	}

	tr := newTrace(level, ctx.Bool("step"))
	in.SetTracer(tr)

	tr.printf("Starting program execution")
	if level >= 2 {
		tr.printf("Total statements: %d", len(prog.Statements))
	}
	in.Run(prog)
	tr.printf("Program execution completed")
	if level >= 2 {
		tr.printf("Final state:")
		tr.dumpVars(in.Env())
	}

	if path := ctx.String("dump-env"); path != "" {
		if err := dumpSnapshot(in, path); err != nil {
			return cli.NewExitError(fmt.Sprintf("error: %v", err), 1)
		}
	}
	return nil
}

func loadSnapshot(in *gruntime.Interp, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return in.ReadSnapshot(f)
}

func dumpSnapshot(in *gruntime.Interp, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return in.WriteSnapshot(f)
}
