package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"huffcodec/algorithms/backend"
	"huffcodec/algorithms/huffman"
	"huffcodec/common"
)

// benchResult 一种压缩方式的结果，Err 非空时 Size 无意义
type benchResult struct {
	Name     string
	Size     int64
	Duration time.Duration
	Err      error
}

// benchmark 对比本实现与各压缩库在同一输入上的大小，并校验每种方式都能还原
func benchmark(src []byte) []benchResult {
	freq := common.CountBytes(src)
	root := huffman.Build(freq)
	codes := huffman.Generate(root)

	start := time.Now()
	text, err := huffman.EncodeBytes(codes, src)
	elapsed := time.Since(start)
	results := []benchResult{{Name: "original", Size: int64(len(src))}}
	if err != nil {
		return append(results, benchResult{Name: "huffman", Err: err})
	}
	if decoded, err := huffman.DecodeBytes(root, text); err != nil || !bytes.Equal(decoded, src) {
		return append(results, benchResult{Name: "huffman", Err: fmt.Errorf("round trip failed: %v", err)})
	}
	report := common.Report{OriginalBytes: int64(len(src)), EncodedBits: int64(len(text))}
	results = append(results,
		benchResult{Name: "huffman (bits/8)", Size: report.CompressedBytes(), Duration: elapsed},
		benchResult{Name: "huffman (text)", Size: report.InterchangeBytes(), Duration: elapsed},
	)

	for _, b := range backend.All() {
		if b.Name == backend.None {
			continue
		}
		results = append(results,
			measure(b.Name+" (raw)", b, src),
			measure(b.Name+" (huffman text)", b, text),
		)
	}
	for _, b := range backend.References() {
		results = append(results, measure(b.Name, b, src))
	}
	return results
}

func measure(name string, b backend.Backend, src []byte) benchResult {
	start := time.Now()
	packed, err := b.Compress(nil, src)
	elapsed := time.Since(start)
	if err != nil {
		return benchResult{Name: name, Err: err}
	}
	unpacked, err := b.Decompress(nil, packed)
	if err != nil {
		return benchResult{Name: name, Err: err}
	}
	if !bytes.Equal(unpacked, src) {
		return benchResult{Name: name, Err: fmt.Errorf("round trip mismatch")}
	}
	return benchResult{Name: name, Size: int64(len(packed)), Duration: elapsed}
}

func writeBench(w io.Writer, results []benchResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "codec\tbytes\tratio\ttime")
	var original int64
	for _, r := range results {
		if r.Name == "original" {
			original = r.Size
		}
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\terror\t-\t%v\n", r.Name, r.Err)
			continue
		}
		ratio := "n/a"
		if r.Size > 0 {
			ratio = fmt.Sprintf("%.3f", float64(original)/float64(r.Size))
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", r.Name, r.Size, ratio, r.Duration)
	}
	return tw.Flush()
}

func runBench(cfg *Config, stdout io.Writer) error {
	src, err := os.ReadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	results := benchmark(src)
	for _, r := range results {
		if r.Err != nil {
			slog.Warn("benchCodecFailed", "codec", r.Name, "err", r.Err)
		}
	}
	if err := writeBench(stdout, results); err != nil {
		return err
	}
	if cfg.PlotPath == "" {
		return nil
	}

	var bars []common.Bar
	for _, r := range results {
		if r.Err == nil {
			bars = append(bars, common.Bar{Label: r.Name, Value: float64(r.Size)})
		}
	}
	return writePlot(cfg.PlotPath, func(w io.Writer) error {
		return common.PlotBars(w, "compressed size", "codec", "bytes", bars)
	})
}
