package cli

import (
	"fmt"
	"io"
)

// termNotifier prints action outcomes to the terminal, standing in for
// the web storefront's toasts.
type termNotifier struct {
	w io.Writer
}

func newNotifier(w io.Writer) *termNotifier { return &termNotifier{w: w} }

func (n *termNotifier) Success(msg string) { fmt.Fprintln(n.w, "ok:", msg) }
func (n *termNotifier) Info(msg string)    { fmt.Fprintln(n.w, "--", msg) }
func (n *termNotifier) Error(msg string)   { fmt.Fprintln(n.w, "error:", msg) }
