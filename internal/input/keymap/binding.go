package keymap

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/dshills/vimdent/internal/input"
	"github.com/dshills/vimdent/internal/input/key"
)

// Condition operators.
const (
	OpEqual         = "equal"
	OpNotEqual      = "not_equal"
	OpRegexMatch    = "regex_match"
	OpNotRegexMatch = "not_regex_match"
)

// Condition is one entry of a binding's context list.
type Condition struct {
	Key      string
	Operator string
	Operand  any
}

// Eval reports whether the condition holds in ctx. A key the context does
// not know never matches.
func (c Condition) Eval(ctx *input.Context) bool {
	if ctx == nil {
		return false
	}
	v, ok := ctx.Value(c.Key)
	if !ok {
		return false
	}

	operand := c.Operand
	if operand == nil {
		operand = true
	}

	switch c.Operator {
	case "", OpEqual:
		return equalValues(v, operand)
	case OpNotEqual:
		return !equalValues(v, operand)
	case OpRegexMatch, OpNotRegexMatch:
		re, err := regexp.Compile("^(?:" + fmt.Sprint(operand) + ")$")
		if err != nil {
			return false
		}
		return re.MatchString(fmt.Sprint(v)) == (c.Operator == OpRegexMatch)
	}
	return false
}

// equalValues compares condition values, treating all numbers alike since
// JSON operands always decode as float64.
func equalValues(a, b any) bool {
	fa, aNum := toFloat(a)
	fb, bNum := toFloat(b)
	if aNum && bNum {
		return fa == fb
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// Binding maps a key sequence to a command.
type Binding struct {
	// Keys is the key sequence, one specification per press.
	Keys []string

	// Command is the action name handed to the dispatcher.
	Command string

	// Args are fixed arguments for the command.
	Args map[string]any

	// Context lists conditions that must all hold.
	Context []Condition

	// Description provides documentation for the binding.
	Description string
}

// Action builds the dispatcher action for this binding.
func (b Binding) Action(source input.ActionSource) input.Action {
	return input.Action{Name: b.Command, Args: b.Args, Source: source}
}

// Enabled reports whether every context condition holds in ctx.
func (b Binding) Enabled(ctx *input.Context) bool {
	for _, c := range b.Context {
		if !c.Eval(ctx) {
			return false
		}
	}
	return true
}

// parsedBinding is a binding with its key sequence parsed.
type parsedBinding struct {
	Binding
	seq []key.Event
}

func (pb parsedBinding) matches(seq []key.Event) bool {
	if len(pb.seq) != len(seq) {
		return false
	}
	return pb.hasPrefix(seq)
}

func (pb parsedBinding) hasPrefix(seq []key.Event) bool {
	if len(seq) > len(pb.seq) {
		return false
	}
	for i, ev := range seq {
		if !pb.seq[i].Equals(ev) {
			return false
		}
	}
	return true
}
