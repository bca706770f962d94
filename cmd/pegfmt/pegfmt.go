/*
pegfmt is a console utility that compiles a grammar description and matches
it against an input file. Usage is

	pegfmt [-trace] <grammar-file> <input-file>

-trace enables per-rule match tracing on stderr.

<grammar-file> defines a grammar description parsable by langdef.Parse();
<input-file> is matched against its start rule. The matched result is
printed to stdout as Go syntax; a compile or match failure is printed to
stderr and exits non-zero.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/ava12/peg"
)

var trace bool

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage is  pegfmt [-trace] <grammar-file> <input-file>")
		flag.PrintDefaults()
	}

	flag.BoolVar(&trace, "trace", false, "log per-rule match attempts to stderr")
	flag.Parse()

	grammarFileName, inputFileName := flag.Arg(0), flag.Arg(1)
	if grammarFileName == "" || inputFileName == "" {
		flag.Usage()
		os.Exit(2)
	}

	grammarText, e := os.ReadFile(grammarFileName)
	if e != nil {
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(3)
	}

	input, e := os.ReadFile(inputFileName)
	if e != nil {
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(3)
	}

	log := hclog.New(&hclog.LoggerOptions{Name: "pegfmt", Output: os.Stderr, Level: hclog.Warn})
	if trace {
		log.SetLevel(hclog.Trace)
	}

	p, e := peg.CreateParser(string(grammarText), peg.WithLogger(log), peg.WithTrace(trace))
	if e != nil {
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(3)
	}

	result := p.Match(string(input))
	if result.Error != "" {
		fmt.Fprintln(os.Stderr, result.Error)
		os.Exit(1)
	}

	fmt.Printf("%#v\n", result.Result)
}
