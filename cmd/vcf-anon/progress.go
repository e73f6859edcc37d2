package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// progress wraps an optional progress bar on stderr.
type progress struct {
	bar *progressbar.ProgressBar
}

func newProgress(enabled bool, total int, description string) *progress {
	if !enabled || total == 0 {
		return &progress{}
	}
	return &progress{bar: progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)}
}

func (p *progress) add() {
	if p.bar == nil {
		return
	}
	if err := p.bar.Add(1); err != nil {
		logger.Warn("failed to update progress bar", zap.Error(err))
	}
}
