package dispatch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// maxRequestSize bounds a single request line; documents travel inline.
const maxRequestSize = 16 << 20

// Request is one command invocation on the wire.
type Request struct {
	ID   string          `json:"id,omitempty"`
	Cmd  string          `json:"cmd"`
	Args json.RawMessage `json:"args,omitempty"`
}

// Response answers exactly one Request.
type Response struct {
	ID     string `json:"id"`
	OK     bool   `json:"ok"`
	Result any    `json:"result"`
	Error  string `json:"error,omitempty"`
}

// Handle runs a request and flattens any failure into the response.
func (d *Dispatcher) Handle(ctx context.Context, req Request) Response {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	result, err := d.Dispatch(ctx, req.Cmd, req.Args)
	if err != nil {
		return Response{ID: req.ID, Error: err.Error()}
	}
	return Response{ID: req.ID, OK: true, Result: result}
}

// Serve reads newline-delimited JSON requests from r and writes one response
// line per request to w, strictly in arrival order. A malformed line yields
// an error response and the loop continues. Serve returns nil at EOF.
// Cancellation is observed between requests.
func (d *Dispatcher) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRequestSize)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp Response
		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			resp = Response{ID: uuid.NewString(), Error: fmt.Sprintf("malformed request: %v", err)}
		} else {
			d.logger.Debug("request", "id", req.ID, "cmd", req.Cmd)
			resp = d.Handle(ctx, req)
		}

		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	return nil
}
