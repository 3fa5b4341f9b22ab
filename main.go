package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"

	"huffcodec/algorithms/backend"
	"huffcodec/algorithms/huffman"
	"huffcodec/common"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("huffcodecFailed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	switch cfg.Command {
	case "run":
		return runPipeline(ctx, cfg, stdout)
	case "encode":
		return runEncode(ctx, cfg, stdout)
	case "decode":
		return runDecode(cfg)
	case "codes":
		return runCodes(cfg, stdout)
	case "bench":
		return runBench(cfg, stdout)
	case "plot":
		return runPlot(cfg)
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cfg.Command)
}

// loadTable 第一遍读取：统计频率并构建树和编码表
func loadTable(f *os.File) (*common.FreqFile, *huffman.Node, huffman.CodeTable, error) {
	start := time.Now()
	ff, err := common.NewFreqFile(f)
	if err != nil {
		return nil, nil, nil, err
	}
	root := huffman.Build(ff.Freq)
	codes := huffman.Generate(root)
	slog.Debug("treeBuilt", "bytes", ff.Size, "duration", time.Since(start).String())
	return ff, root, codes, nil
}

// encodeFile 第二遍读取：从头编码 f 并写入 w
func encodeFile(ctx context.Context, cfg *Config, codes huffman.CodeTable, f *os.File, w io.Writer) (int64, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("rewind input: %w", err)
	}
	if cfg.Workers <= 1 {
		return huffman.Encode(codes, f, w)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return 0, fmt.Errorf("read input: %w", err)
	}
	return huffman.EncodeParallel(ctx, codes, data, w, cfg.Workers, cfg.ChunkSize)
}

// runPipeline 输入文件 -> 编码文件 -> 解码文件，输出编码表与压缩率
func runPipeline(ctx context.Context, cfg *Config, stdout io.Writer) error {
	in, err := os.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	ff, root, codes, err := loadTable(in)
	if err != nil {
		return err
	}
	if cfg.PrintCodes {
		if err := common.WriteCodeTable(stdout, codes); err != nil {
			return err
		}
	}

	bits, err := writeFile(cfg.Output, func(w io.Writer) (int64, error) {
		return encodeFile(ctx, cfg, codes, in, w)
	})
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	encoded, err := os.Open(cfg.Output)
	if err != nil {
		return fmt.Errorf("open encoded: %w", err)
	}
	defer encoded.Close()
	n, err := writeFile(cfg.Decoded, func(w io.Writer) (int64, error) {
		return huffman.Decode(root, encoded, w)
	})
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	slog.Debug("pipelineDone", "encodedBits", bits, "decodedBytes", n)

	report := common.Report{OriginalBytes: ff.Size, EncodedBits: bits}
	_, err = report.WriteTo(stdout)
	return err
}

func runEncode(ctx context.Context, cfg *Config, stdout io.Writer) error {
	in, err := os.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	ff, _, codes, err := loadTable(in)
	if err != nil {
		return err
	}
	if cfg.PrintCodes {
		if err := common.WriteCodeTable(stdout, codes); err != nil {
			return err
		}
	}

	pack, err := backend.Lookup(cfg.Pack)
	if err != nil {
		return err
	}
	var bits int64
	if pack.Name == backend.None {
		bits, err = writeFile(cfg.Output, func(w io.Writer) (int64, error) {
			return encodeFile(ctx, cfg, codes, in, w)
		})
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	} else {
		var buf bytes.Buffer
		bits, err = encodeFile(ctx, cfg, codes, in, &buf)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		packed, err := pack.Compress(nil, buf.Bytes())
		if err != nil {
			return fmt.Errorf("pack %s: %w", pack.Name, err)
		}
		if err := os.WriteFile(cfg.Output, packed, 0644); err != nil {
			return fmt.Errorf("write encoded: %w", err)
		}
		slog.Info("packed", "backend", pack.Name, "bits", bits, "packedBytes", len(packed))
	}

	if err := common.WriteFreqFile(cfg.FreqPath, ff); err != nil {
		return err
	}
	slog.Info("encodeDone", "input", cfg.Input, "output", cfg.Output, "freq", cfg.FreqPath, "bits", bits)

	report := common.Report{OriginalBytes: ff.Size, EncodedBits: bits}
	_, err = report.WriteTo(stdout)
	return err
}

func runDecode(cfg *Config) error {
	ff, err := common.ReadFreqFile(cfg.FreqPath)
	if err != nil {
		return err
	}
	root := huffman.Build(ff.Freq)

	pack, err := backend.Lookup(cfg.Pack)
	if err != nil {
		return err
	}
	var src io.Reader
	if pack.Name == backend.None {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return fmt.Errorf("open encoded: %w", err)
		}
		defer f.Close()
		src = f
	} else {
		packed, err := os.ReadFile(cfg.Input)
		if err != nil {
			return fmt.Errorf("read encoded: %w", err)
		}
		bits, err := pack.Decompress(nil, packed)
		if err != nil {
			return fmt.Errorf("unpack %s: %w", pack.Name, err)
		}
		src = bytes.NewReader(bits)
	}

	digest := xxhash.New()
	n, err := writeFile(cfg.Output, func(w io.Writer) (int64, error) {
		return huffman.Decode(root, src, io.MultiWriter(w, digest))
	})
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if n != ff.Size {
		return fmt.Errorf("decoded %d bytes, expected %d", n, ff.Size)
	}
	if err := ff.Verify(digest.Sum64()); err != nil {
		return err
	}
	slog.Info("decodeDone", "input", cfg.Input, "output", cfg.Output, "bytes", n)
	return nil
}

func runCodes(cfg *Config, stdout io.Writer) error {
	in, err := os.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	ff, _, codes, err := loadTable(in)
	if err != nil {
		return err
	}
	if err := common.WriteCodeTable(stdout, codes); err != nil {
		return err
	}
	stats := common.AnalyzeCodes(ff.Freq, codes)
	_, err = fmt.Fprintf(stdout, "entropy = %.4f bits/symbol\naverage code length = %.4f bits/symbol\nunique symbols = %d\n",
		stats.Entropy, stats.AvgCodeLength, stats.UniqueCount)
	if err != nil {
		return err
	}
	if cfg.PlotPath != "" {
		return writePlot(cfg.PlotPath, func(w io.Writer) error {
			return common.PlotCodeLengths(w, ff.Freq, codes)
		})
	}
	return nil
}

func runPlot(cfg *Config) error {
	in, err := os.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	ff, _, codes, err := loadTable(in)
	if err != nil {
		return err
	}
	return writePlot(cfg.PlotPath, func(w io.Writer) error {
		return common.PlotCodeLengths(w, ff.Freq, codes)
	})
}

// writeFile 创建 path 并通过缓冲写入，关闭失败同样返回错误
func writeFile(path string, fn func(io.Writer) (int64, error)) (n int64, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create '%s': %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close '%s': %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	n, err = fn(bw)
	if err != nil {
		return n, err
	}
	if err := bw.Flush(); err != nil {
		return n, fmt.Errorf("flush '%s': %w", path, err)
	}
	return n, nil
}

func writePlot(path string, fn func(io.Writer) error) error {
	_, err := writeFile(path, func(w io.Writer) (int64, error) {
		return 0, fn(w)
	})
	if err == nil {
		slog.Info("plotWritten", "path", path)
	}
	return err
}
