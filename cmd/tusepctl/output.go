package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"tusep-web/internal/notify"
)

// printer writes either aligned tables or indented JSON.
type printer struct {
	w    io.Writer
	json bool
}

func newPrinter(w io.Writer, asJSON bool) *printer {
	return &printer{w: w, json: asJSON}
}

// table prints rows under header. In JSON mode raw is printed instead.
func (p *printer) table(raw any, header []string, rows [][]string) error {
	if p.json {
		return p.raw(raw)
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

// fields prints label/value pairs, one per line.
func (p *printer) fields(raw any, pairs ...[2]string) error {
	if p.json {
		return p.raw(raw)
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	for _, kv := range pairs {
		fmt.Fprintf(tw, "%s:\t%s\n", kv[0], kv[1])
	}
	return tw.Flush()
}

func (p *printer) raw(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// notice prints a toast. Errors are returned by the command, so only
// success and info toasts reach here.
func (p *printer) notice(n notify.Notification) {
	if p.json {
		p.raw(n)
		return
	}
	fmt.Fprintf(p.w, "[%s] %s\n", n.Level, n.Message)
}

// toastError shows the toast text while keeping the cause for errors.Is.
type toastError struct {
	msg string
	err error
}

func (e *toastError) Error() string { return e.msg }
func (e *toastError) Unwrap() error { return e.err }

// fail turns an error toast into the command's error.
func fail(n notify.Notification, err error) error {
	return &toastError{msg: n.Message, err: err}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
