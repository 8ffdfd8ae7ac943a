// Copyright (C) 2021-2026, The Revault Developers. All rights reserved.
// See the file LICENSE for licensing terms.

package revaultd

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Request is the wire shape of one daemon call: a method name and an
// ordered list of positional parameters. There is no id field because a
// connection never carries more than one request.
//
// Params must stay omitempty: the daemon treats a missing params field as
// "no argument", which is a different request than an empty list (for
// listtransactions, missing means "no filter" while [[]] means "filter to
// nothing").
type Request struct {
	Method string      `json:"method"`
	Params interface{} `json:"params,omitempty"`
}

// Response is the wire shape of one daemon reply: exactly one of Result
// or Error. A reply carrying neither is a protocol violation and is
// reported as KindNoAnswer by the dispatcher.
type Response struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *RPCError       `json:"error,omitempty"`
}

// RPCError is a daemon-reported failure payload.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// hasResult reports whether the response carries a usable result. A JSON
// null result counts as absent, matching the daemon's habit of answering
// {"result": null} when it has nothing to say.
func (r *Response) hasResult() bool {
	return len(r.Result) > 0 && !bytes.Equal(r.Result, []byte("null"))
}
