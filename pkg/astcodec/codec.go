// Package astcodec stores parsed programs as CBOR so they can be run again
// without re-parsing.
package astcodec

import (
	"errors"
	"fmt"
	"os"

	"saltino/pkg/ast"

	"github.com/fxamacker/cbor/v2"
)

// Version is the envelope format written by Encode
const Version = 1

// Extension is the conventional file extension for encoded programs
const Extension = ".saltc"

var (
	ErrVersion   = errors.New("unsupported program format version")
	ErrMalformed = errors.New("malformed program encoding")
)

// envelope wraps an encoded program with its format version and the path
// of the source it was parsed from.
type envelope struct {
	Version int     `cbor:"1,keyasint"`
	Source  string  `cbor:"2,keyasint,omitempty"`
	Program *record `cbor:"3,keyasint"`
}

// Decoded is the content of an envelope
type Decoded struct {
	Source  string
	Program *ast.Program
}

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("astcodec: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// Encode serializes prog. Resolver annotations are dropped; a decoded
// program must be resolved again before it runs.
func Encode(prog *ast.Program, source string) ([]byte, error) {
	return encMode.Marshal(&envelope{
		Version: Version,
		Source:  source,
		Program: toRecord(prog),
	})
}

// Decode deserializes a program written by Encode
func Decode(data []byte) (*Decoded, error) {
	var env envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("astcodec: unmarshal program: %w", err)
	}
	if env.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, env.Version)
	}

	prog, err := decodeProgram(env.Program)
	if err != nil {
		return nil, err
	}

	return &Decoded{Source: env.Source, Program: prog}, nil
}

// WriteFile encodes prog into path
func WriteFile(path string, prog *ast.Program, source string) error {
	data, err := Encode(prog, source)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// ReadFile decodes the program stored in path
func ReadFile(path string) (*Decoded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Decode(data)
}
