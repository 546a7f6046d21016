package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"saltino/pkg/interpreter"
)

var ErrInvalidValue = errors.New("invalid value")

// ParseValue reads one argument value: an integer, true, false, a list
// written as [1, 2, 3] or in cons form 1 :: 2 :: [].
func ParseValue(s string) (interpreter.Value, error) {
	s = strings.TrimSpace(s)

	switch s {
	case "true":
		return interpreter.Bool(true), nil
	case "false":
		return interpreter.Bool(false), nil
	case "[]":
		return interpreter.List(), nil
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		inner := strings.TrimSpace(s[1 : len(s)-1])
		if inner == "" {
			return interpreter.List(), nil
		}
		xs, err := parseInts(strings.Split(inner, ","), s)
		if err != nil {
			return interpreter.Value{}, err
		}
		return interpreter.List(xs...), nil
	}

	if strings.Contains(s, "::") {
		parts := strings.Split(s, "::")
		if strings.TrimSpace(parts[len(parts)-1]) != "[]" {
			return interpreter.Value{}, fmt.Errorf("%w: %q must end with []", ErrInvalidValue, s)
		}
		xs, err := parseInts(parts[:len(parts)-1], s)
		if err != nil {
			return interpreter.Value{}, err
		}
		return interpreter.List(xs...), nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return interpreter.Value{}, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	return interpreter.Int(n), nil
}

func parseInts(parts []string, whole string) ([]int64, error) {
	xs := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a list of integers", ErrInvalidValue, whole)
		}
		xs = append(xs, n)
	}
	return xs, nil
}

// ParseArgs reads a comma-separated argument list such as
// `1, [2, 3], true`. Commas inside brackets belong to the list.
func ParseArgs(s string) ([]interpreter.Value, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var (
		args  []interpreter.Value
		depth int
		start int
	)
	flush := func(end int) error {
		v, err := ParseValue(s[start:end])
		if err != nil {
			return err
		}
		args = append(args, v)
		return nil
	}

	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				if err := flush(i); err != nil {
					return nil, err
				}
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: unbalanced brackets in %q", ErrInvalidValue, s)
	}
	if err := flush(len(s)); err != nil {
		return nil, err
	}

	return args, nil
}
