package main

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// cliNotifier prints engine milestones to out and, when progress is a
// terminal, renders a live bar on it. The bar is created lazily because the
// row total is only known once the mapping file has loaded.
type cliNotifier struct {
	out      io.Writer
	progress io.Writer
	bar      *progressbar.ProgressBar
}

func newCLINotifier(out, progress io.Writer) *cliNotifier {
	return &cliNotifier{out: out, progress: progress}
}

func (n *cliNotifier) RowDone(done, total int) {
	if !isTerminal(n.progress) {
		return
	}
	if n.bar == nil {
		n.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(n.progress),
			progressbar.OptionSetDescription("organizing"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = n.bar.Set(done)
	if done >= total {
		_ = n.bar.Finish()
		n.bar = nil
	}
}

func (n *cliNotifier) Status(message string) {
	if n.bar != nil {
		_ = n.bar.Clear()
	}
	fmt.Fprintln(n.out, message)
}
