package stream

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONLinesEncoder frames events as newline-delimited JSON objects:
//
//	{"id":1,"event":"accepting_path","data":{...}}
type JSONLinesEncoder struct {
	w io.Writer
}

func NewJSONLinesEncoder(w io.Writer) *JSONLinesEncoder {
	return &JSONLinesEncoder{w: w}
}

func (e *JSONLinesEncoder) ContentType() string {
	return "application/x-ndjson"
}

func (e *JSONLinesEncoder) Encode(f Frame) error {
	line, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if _, err := e.w.Write(append(line, '\n')); err != nil {
		return err
	}
	flush(e.w)
	return nil
}
