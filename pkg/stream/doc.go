/*
Package stream frames exploration events for incremental delivery.

An explorer emits abstract domain.Event values; this package turns each one into
a self-contained record and writes it to the consumer as soon as it arrives.
Two framings are provided:

  - SSEEncoder: Server-Sent Events ("event:", "id:", "data:" lines), flushed per frame.
  - JSONLinesEncoder: one JSON object per line.

Pump drains an event channel into an Encoder, preserving order and skipping
frames that cannot be serialized.
*/
package stream
