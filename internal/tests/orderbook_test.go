// Package tests holds cross-component, end-to-end scenarios: a raw text
// session fed through the parser and the engine together, asserting on the
// exact wire-format lines of the output sink and on the count and key
// substrings of the error-sink diagnostics. This is the teacher's own
// internal/tests convention, generalized from inspecting book internals
// directly to driving the whole pipeline the way a real input source would.
package tests

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fenrir/internal/engine"
	"fenrir/internal/model"
	"fenrir/internal/parser"
)

// runSession feeds every line through the parser, then the engine,
// returning the accumulated output-sink lines and error-sink lines.
func runSession(eng *engine.Engine, lines []string) (output []string, errs []string) {
	events := model.EventSinkFunc(func(ev model.Event) {
		output = append(output, ev.WireLine())
	})
	diags := model.DiagnosticSinkFunc(func(msg string) {
		errs = append(errs, msg)
	})

	for _, line := range lines {
		req, perr := parser.Parse(line)
		if perr != nil {
			diags.Diagnose(perr.Error())
			continue
		}
		eng.Process(req, events, diags)
	}
	return output, errs
}

func splitLines(session string) []string {
	return strings.Split(strings.TrimRight(session, "\n"), "\n")
}

func TestSession_CancelOnEmptyBook(t *testing.T) {
	output, errs := runSession(engine.New(), []string{"1,999"})

	assert.Empty(t, output)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "No such order with id: 999")
}

func TestSession_TwoSidedCross(t *testing.T) {
	output, errs := runSession(engine.New(), splitLines(`0,1111,1,15,11
0,1112,0,15,12`))

	assert.Empty(t, errs)
	assert.Equal(t, []string{"2,15,11", "3,1112", "3,1111"}, output)
}

func TestSession_MultiLevelSweep(t *testing.T) {
	output, errs := runSession(engine.New(), splitLines(`0,1111,1,15,11
0,1113,1,5,10
0,1112,0,20,12`))

	assert.Empty(t, errs)
	assert.Equal(t, []string{
		"2,5,10",
		"4,1112,15",
		"3,1113",
		"2,15,11",
		"3,1112",
		"3,1111",
	}, output)
}

func TestSession_IntegratedSessionWithBadMessageAndCancel(t *testing.T) {
	output, errs := runSession(engine.New(), splitLines(`0,1000000,1,1,1075
0,1000001,0,9,1000
0,1000002,0,30,975
0,1000003,1,10,1050
0,1000004,0,10,950
BADMESSAGE
0,1000005,1,2,1025
0,1000006,0,1,1000
1,1000004
0,1000007,1,5,1025
0,1000008,0,3,1050`))

	assert.Equal(t, []string{
		"2,2,1025",
		"4,1000008,1",
		"3,1000005",
		"2,1,1025",
		"3,1000008",
		"4,1000007,4",
	}, output)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Bad message")
}

func TestSession_DuplicateIdAndMalformedLinesAreSoftErrors(t *testing.T) {
	eng := engine.New()

	output, errs := runSession(eng, []string{
		"0,1,0,10,100",
		"0,1,1,5,90",        // duplicate id
		"0,2,0,-1,100",      // negative quantity: not a valid uint
		"0,3,0,5,notaprice", // unparseable price
		"1,1,2,3",           // wrong field count for cancel
	})

	assert.Empty(t, output)
	require.Len(t, errs, 4)
	assert.Contains(t, errs[0], "Order id is being repeated: 1")
	assert.Contains(t, errs[1], "Bad message")
	assert.Contains(t, errs[2], "Bad message")
	assert.Contains(t, errs[3], "Bad message")
}

func TestSession_EngineSnapshotAndLogBookDoNotAffectOutput(t *testing.T) {
	eng := engine.New()
	output, errs := runSession(eng, []string{"0,1,0,10,100"})
	assert.Empty(t, output)
	assert.Empty(t, errs)

	// Snapshot/LogBook are read-only diagnostics, not output-sink events.
	snap := eng.Snapshot()
	require.Len(t, snap.Bids, 1)
	assert.Equal(t, model.Price(100), snap.Bids[0].Price)
	eng.LogBook()
}
