package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"

	"huffcodec/algorithms/backend"
	"huffcodec/algorithms/huffman"
)

var errUsage = errors.New("usage")

// Config 单个子命令的参数
type Config struct {
	Command    string
	Input      string
	Output     string
	Decoded    string
	FreqPath   string
	Pack       string
	PlotPath   string
	Workers    int
	ChunkSize  int
	PrintCodes bool
	Verbose    bool
}

const usage = `usage:
  huffcodec run [flags] <input> <encoded> <decoded>
  huffcodec encode -i <input> -o <encoded> [-freq <file>] [-pack <backend>] [-workers N]
  huffcodec decode -i <encoded> -o <output> [-freq <file>] [-pack <backend>]
  huffcodec codes -i <input>
  huffcodec bench -i <input> [-plot <png>]
  huffcodec plot -i <input> -o <png>
`

func parseConfig(args []string, stderr io.Writer) (*Config, error) {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return nil, errUsage
	}
	cfg := &Config{Command: args[0]}

	fs := flag.NewFlagSet(cfg.Command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&cfg.Verbose, "v", false, "debug logging")

	switch cfg.Command {
	case "run":
		fs.BoolVar(&cfg.PrintCodes, "codes", true, "print the code table")
		fs.IntVar(&cfg.Workers, "workers", 1, "parallel encode workers")
		fs.IntVar(&cfg.ChunkSize, "chunk", huffman.DefaultChunkSize, "bytes per parallel encode chunk")
	case "encode":
		fs.StringVar(&cfg.Input, "i", "", "input file")
		fs.StringVar(&cfg.Output, "o", "", "encoded output file")
		fs.StringVar(&cfg.FreqPath, "freq", "", "frequency file (default <output>.freq)")
		fs.StringVar(&cfg.Pack, "pack", backend.None, fmt.Sprintf("pack the bit stream with one of %v", backend.Names()))
		fs.IntVar(&cfg.Workers, "workers", runtime.GOMAXPROCS(0), "parallel encode workers")
		fs.IntVar(&cfg.ChunkSize, "chunk", huffman.DefaultChunkSize, "bytes per parallel encode chunk")
		fs.BoolVar(&cfg.PrintCodes, "codes", false, "print the code table")
	case "decode":
		fs.StringVar(&cfg.Input, "i", "", "encoded input file")
		fs.StringVar(&cfg.Output, "o", "", "decoded output file")
		fs.StringVar(&cfg.FreqPath, "freq", "", "frequency file (default <input>.freq)")
		fs.StringVar(&cfg.Pack, "pack", backend.None, "backend the bit stream was packed with")
	case "codes", "bench":
		fs.StringVar(&cfg.Input, "i", "", "input file")
		fs.StringVar(&cfg.PlotPath, "plot", "", "write a PNG chart here")
	case "plot":
		fs.StringVar(&cfg.Input, "i", "", "input file")
		fs.StringVar(&cfg.PlotPath, "o", "", "output PNG")
	default:
		fmt.Fprint(stderr, usage)
		return nil, fmt.Errorf("%w: unknown command %q", errUsage, cfg.Command)
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if cfg.Command == "run" {
		if fs.NArg() != 3 {
			fmt.Fprint(stderr, usage)
			return nil, fmt.Errorf("%w: run needs <input> <encoded> <decoded>", errUsage)
		}
		cfg.Input, cfg.Output, cfg.Decoded = fs.Arg(0), fs.Arg(1), fs.Arg(2)
	}
	return cfg, cfg.validate()
}

func (cfg *Config) validate() error {
	if cfg.Input == "" {
		return fmt.Errorf("%w: %s: input file is required", errUsage, cfg.Command)
	}
	switch cfg.Command {
	case "encode":
		if cfg.Output == "" {
			return fmt.Errorf("%w: encode: output file is required", errUsage)
		}
		if cfg.FreqPath == "" {
			cfg.FreqPath = cfg.Output + ".freq"
		}
	case "decode":
		if cfg.Output == "" {
			return fmt.Errorf("%w: decode: output file is required", errUsage)
		}
		if cfg.FreqPath == "" {
			cfg.FreqPath = cfg.Input + ".freq"
		}
	case "plot":
		if cfg.PlotPath == "" {
			return fmt.Errorf("%w: plot: output file is required", errUsage)
		}
	}
	if cfg.Pack != "" {
		if _, err := backend.Lookup(cfg.Pack); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
	}
	if cfg.Workers < 0 || cfg.ChunkSize < 0 {
		return fmt.Errorf("%w: workers and chunk must not be negative", errUsage)
	}
	return nil
}
