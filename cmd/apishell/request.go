package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bft-labs/apishell/pkg/api"
)

// requestFlags are the per-call flags shared by get/post/put/delete.
type requestFlags struct {
	data    string
	headers []string
	query   []string
	raw     bool
}

func (a *app) requestCmd(method api.Method, aliases ...string) *cobra.Command {
	var rf requestFlags

	cmd := &cobra.Command{
		Use:     method.String() + " <url>",
		Aliases: aliases,
		Short:   fmt.Sprintf("Send a %s request", method.HTTP()),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := rf.options()
			if err != nil {
				return err
			}

			var data any
			if method.HasBody() {
				if data, err = rf.body(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			resp, err := a.client.Do(cmd.Context(), method, args[0], data, opts)
			var se *api.StatusError
			if errors.As(err, &se) {
				resp = se.Response
			}
			if resp != nil {
				if werr := writeResponse(cmd.OutOrStdout(), cmd.ErrOrStderr(), resp, rf.raw); werr != nil && err == nil {
					err = werr
				}
			}
			return err
		},
	}

	f := cmd.Flags()
	if method.HasBody() {
		f.StringVarP(&rf.data, "data", "d", "", "request body; JSON is sent as application/json, @file reads a file, @- reads stdin")
	}
	f.StringArrayVarP(&rf.headers, "header", "H", nil, "extra header as key:value (repeatable)")
	f.StringArrayVarP(&rf.query, "query", "q", nil, "query parameter as key=value (repeatable)")
	f.BoolVar(&rf.raw, "raw", false, "print the body exactly as received")
	return cmd
}

// options turns the -H and -q flags into api.Options.
func (rf requestFlags) options() (api.Options, error) {
	var opts api.Options
	for _, h := range rf.headers {
		k, v, ok := strings.Cut(h, ":")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return opts, fmt.Errorf("invalid header %q, want key:value", h)
		}
		if opts.Headers == nil {
			opts.Headers = map[string]string{}
		}
		opts.Headers[k] = strings.TrimSpace(v)
	}
	for _, q := range rf.query {
		k, v, ok := strings.Cut(q, "=")
		if !ok || k == "" {
			return opts, fmt.Errorf("invalid query %q, want key=value", q)
		}
		if opts.Params == nil {
			opts.Params = url.Values{}
		}
		opts.Params.Add(k, v)
	}
	return opts, nil
}

// body resolves -d into a request payload. Valid JSON goes out as JSON,
// anything else as a raw string.
func (rf requestFlags) body(stdin io.Reader) (any, error) {
	if rf.data == "" {
		return nil, nil
	}

	raw := []byte(rf.data)
	if strings.HasPrefix(rf.data, "@") {
		var err error
		if rf.data == "@-" {
			raw, err = io.ReadAll(stdin)
		} else {
			raw, err = os.ReadFile(rf.data[1:])
		}
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
	}

	if json.Valid(raw) {
		return json.RawMessage(raw), nil
	}
	return string(raw), nil
}

// writeResponse prints the status line to errOut and the body to out.
// JSON bodies are indented unless raw is set.
func writeResponse(out, errOut io.Writer, resp *api.Response, raw bool) error {
	fmt.Fprintln(errOut, resp.Status)

	body := resp.Body
	if !raw && json.Valid(body) {
		var buf bytes.Buffer
		if err := json.Indent(&buf, body, "", "  "); err == nil {
			body = buf.Bytes()
		}
	}
	if len(body) == 0 {
		return nil
	}
	if _, err := out.Write(body); err != nil {
		return err
	}
	if body[len(body)-1] != '\n' {
		_, err := fmt.Fprintln(out)
		return err
	}
	return nil
}
