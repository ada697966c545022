// Package shell executes external commands with timeout enforcement,
// structured output capture and critical-vs-recoverable failure
// classification. It is the only place in the program that spawns
// processes.
package shell

import "strings"

// Result is the outcome of one subprocess invocation. Exactly one of
// Exception and ReturnCode is set: a process either fails to execute
// or communicate, or it runs to completion with an exit status.
type Result struct {
	Command        []string `json:"command"`
	Stdin          string   `json:"stdin,omitempty"`
	Dir            string   `json:"dir,omitempty"`
	Exception      string   `json:"exception,omitempty"`
	TimeoutSeconds float64  `json:"timeout,omitempty"`
	Stdout         []string `json:"stdout,omitempty"`
	Stderr         []string `json:"stderr,omitempty"`
	ReturnCode     *int     `json:"returncode,omitempty"`
	Critical       *bool    `json:"critical,omitempty"`
}

// Out returns the most relevant message of the invocation: the
// exception if one occurred, else joined stderr, else joined stdout.
func (r *Result) Out() string {
	if r.Exception != "" {
		return r.Exception
	}
	if len(r.Stderr) > 0 {
		return strings.Join(r.Stderr, "\n")
	}
	return strings.Join(r.Stdout, "\n")
}

// Succeeded reports whether the process completed with exit status 0.
func (r *Result) Succeeded() bool {
	return r.ReturnCode != nil && *r.ReturnCode == 0
}

// Failed reports whether the invocation ended in an exception or a
// non-zero exit status.
func (r *Result) Failed() bool {
	return !r.Succeeded()
}

// splitLines breaks process output into lines, dropping blank ones.
func splitLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
