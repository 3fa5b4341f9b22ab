package common

import (
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	_ "gonum.org/v1/plot/vg/vgimg"

	"huffcodec/algorithms/huffman"
)

// Bar 柱状图中的一根柱子
type Bar struct {
	Label string
	Value float64
}

// CodeLengthBars 出现过的符号按码长分组计数
func CodeLengthBars(freq huffman.FrequencyTable, codes huffman.CodeTable) []Bar {
	counts := make(map[int]int)
	maxLen := 0
	for sym, count := range freq {
		if count == 0 {
			continue
		}
		l := len(codes[byte(sym)])
		counts[l]++
		maxLen = max(maxLen, l)
	}

	var bars []Bar
	for l := 1; l <= maxLen; l++ {
		bars = append(bars, Bar{Label: strconv.Itoa(l), Value: float64(counts[l])})
	}
	return bars
}

// PlotCodeLengths 绘制码长分布图（PNG）
func PlotCodeLengths(w io.Writer, freq huffman.FrequencyTable, codes huffman.CodeTable) error {
	return PlotBars(w, "Huffman code lengths", "code length (bits)", "symbols", CodeLengthBars(freq, codes))
}

// PlotBars 绘制柱状图并以 PNG 写入 w
func PlotBars(w io.Writer, title, xLabel, yLabel string, bars []Bar) error {
	if len(bars) == 0 {
		return fmt.Errorf("plot %q: no data", title)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	values := make(plotter.Values, len(bars))
	labels := make([]string, len(bars))
	for i, b := range bars {
		values[i] = b.Value
		labels[i] = b.Label
	}

	chart, err := plotter.NewBarChart(values, vg.Points(16))
	if err != nil {
		return fmt.Errorf("plot %q: %w", title, err)
	}
	p.Add(chart)
	p.NominalX(labels...)

	wt, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("plot %q: %w", title, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("plot %q: %w", title, err)
	}
	return nil
}
