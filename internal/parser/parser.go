// Package parser converts a single input line into a model.Request, or into
// a diagnostic describing why the line was rejected. The grammar is strict:
// no whitespace tolerance anywhere, no sign on integers, and every numeric
// field must consume the whole of its comma-delimited slice.
package parser

import (
	"math"
	"strconv"
	"strings"

	"fenrir/internal/model"
)

// maxOffendingInputLen is the truncation length §4.2 mandates for the
// offending-input portion of a parse diagnostic.
const maxOffendingInputLen = 50

// ParseError describes why a line failed to parse. It carries enough detail
// to render the exact diagnostic format §4.2 specifies, but is also a plain
// Go error so callers that don't care about the wire format can treat it as
// one.
type ParseError struct {
	Reason string
	Input  string
}

func (e *ParseError) Error() string {
	return "Bad message: " + e.Reason + " : " + truncate(e.Input, maxOffendingInputLen)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func parseErr(input, reason string) *ParseError {
	return &ParseError{Reason: reason, Input: input}
}

// Parse is a pure function: a single line (no trailing newline) in, a
// model.Request or a *ParseError out. It never mutates or retains its input.
func Parse(line string) (model.Request, *ParseError) {
	if line == "" {
		return nil, parseErr(line, "empty message")
	}

	fields := strings.Split(line, ",")
	switch fields[0] {
	case "0":
		return parseAddOrder(line, fields)
	case "1":
		return parseCancelOrder(line, fields)
	default:
		return nil, parseErr(line, "unknown message type")
	}
}

func parseAddOrder(line string, fields []string) (model.Request, *ParseError) {
	const nFields = 5
	if len(fields) != nFields {
		return nil, parseErr(line, "wrong number of fields for add order")
	}

	id, err := parseUint(fields[1])
	if err != nil {
		return nil, parseErr(line, "invalid order id")
	}

	side, err := parseSide(fields[2])
	if err != nil {
		return nil, parseErr(line, "invalid side")
	}

	qty, err := parseUint(fields[3])
	if err != nil {
		return nil, parseErr(line, "invalid quantity")
	}
	if qty == 0 {
		return nil, parseErr(line, "quantity must be positive")
	}

	price, err := parsePrice(fields[4])
	if err != nil {
		return nil, parseErr(line, "invalid price")
	}
	if !(price > 0) {
		return nil, parseErr(line, "price must be positive")
	}

	return model.AddOrder{
		Id:       model.OrderId(id),
		Side:     side,
		Quantity: model.Quantity(qty),
		Price:    model.Price(price),
	}, nil
}

func parseCancelOrder(line string, fields []string) (model.Request, *ParseError) {
	const nFields = 2
	if len(fields) != nFields {
		return nil, parseErr(line, "wrong number of fields for cancel order")
	}

	id, err := parseUint(fields[1])
	if err != nil {
		return nil, parseErr(line, "invalid order id")
	}

	return model.CancelOrder{Id: model.OrderId(id)}, nil
}

// parseUint enforces the grammar's uint production: one or more digits, no
// sign, no leading '+'. strconv.ParseUint already rejects signs, empty input
// and partial consumption; the empty-field and digit-only checks below make
// that rule explicit before it is called.
func parseUint(field string) (uint64, error) {
	if field == "" {
		return 0, strconv.ErrSyntax
	}
	for _, r := range field {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.ParseUint(field, 10, 64)
}

func parseSide(field string) (model.Side, error) {
	switch field {
	case "0":
		return model.Buy, nil
	case "1":
		return model.Sell, nil
	default:
		return 0, strconv.ErrSyntax
	}
}

// parsePrice enforces the grammar's number production: a standard double
// parse that must not start with whitespace and must consume the whole
// field. strconv.ParseFloat already rejects surrounding whitespace and
// partial consumption; this additionally rejects non-finite results, since
// §3 requires a finite positive real number.
func parsePrice(field string) (float64, error) {
	if field == "" {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}
