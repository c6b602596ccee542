// Package script parses warehouse instruction scripts.
//
// The first line of a script is a free-text description of the scenario.
// Every following non-blank line is one instruction:
//
//	Order <model> <color>
//	Truck new
//	<Role> <name> ready
//	<Role> <name> get
//	<Role> <name> rescan
//	<Role> <name> pick|sequence|check|replenish|scan <sku-or-location> [front|rear]
//	<Role> <name> marshal|move|load
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/warehouse-sim/warehouse-sim/sim"
)

// actVerbs present a token to the worker; pushVerbs hand work downstream.
var (
	actVerbs  = map[string]bool{"pick": true, "sequence": true, "check": true, "replenish": true, "scan": true}
	pushVerbs = map[string]bool{"marshal": true, "move": true, "load": true}
)

// Script is a parsed instruction script.
type Script struct {
	Description  string
	Instructions []sim.Instruction
}

// ParseError reports a line that is not a valid instruction.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("script line %d %q: %s", e.Line, e.Text, e.Reason)
}

// Unwrap classifies every parse error as a configuration error.
func (e *ParseError) Unwrap() error { return sim.ErrConfig }

// ParseFile reads and parses the script at path.
func ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open script: %w", sim.ErrConfig, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a script from r. Parsing stops at the first invalid line.
func Parse(r io.Reader) (*Script, error) {
	s := &Script{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if lineNo == 1 {
			s.Description = text
			continue
		}
		if text == "" {
			continue
		}
		in, err := ParseLine(text)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = lineNo
			}
			return nil, err
		}
		s.Instructions = append(s.Instructions, in)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read script: %w", sim.ErrConfig, err)
	}
	return s, nil
}

// ParseLine parses a single instruction. The returned ParseError has Line 0.
func ParseLine(text string) (sim.Instruction, error) {
	fields := strings.Fields(text)
	fail := func(format string, args ...any) error {
		return &ParseError{Text: text, Reason: fmt.Sprintf(format, args...)}
	}
	if len(fields) == 0 {
		return nil, fail("empty instruction")
	}

	switch fields[0] {
	case "Order":
		if len(fields) != 3 {
			return nil, fail("want \"Order <model> <color>\"")
		}
		return sim.OrderInstruction{Model: fields[1], Color: fields[2]}, nil
	case "Truck":
		if len(fields) != 2 || fields[1] != "new" {
			return nil, fail("want \"Truck new\"")
		}
		return sim.TruckInstruction{}, nil
	}

	role, err := sim.ParseRole(fields[0])
	if err != nil {
		return nil, fail("unknown instruction %q", fields[0])
	}
	if len(fields) < 3 {
		return nil, fail("want \"<Role> <name> <verb>\"")
	}
	name, verb := fields[1], fields[2]
	args := fields[3:]

	switch {
	case verb == "ready":
		return sim.HireInstruction{Role: role, Name: name}, nil
	case verb == "get":
		return sim.ReceiveInstruction{Role: role, Name: name}, nil
	case verb == "rescan":
		return sim.RescanInstruction{Role: role, Name: name}, nil
	case pushVerbs[verb]:
		return sim.PushInstruction{Role: role, Name: name, Verb: verb}, nil
	case actVerbs[verb]:
		if len(args) < 1 || len(args) > 2 {
			return nil, fail("%s takes a SKU or location and an optional pallet side", verb)
		}
		tok := sim.Token{Value: args[0]}
		if len(args) == 2 {
			side, err := sim.ParseSide(args[1])
			if err != nil || side == sim.SideNone {
				return nil, fail("unknown pallet side %q", args[1])
			}
			tok.Side = side
		}
		return sim.ActInstruction{Role: role, Name: name, Verb: verb, Token: tok}, nil
	}
	return nil, fail("unknown verb %q", verb)
}
