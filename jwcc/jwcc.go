// Package jwcc implements a parser for JSON With Commas and Comments (JWCC) as
// defined by https://nigeltao.github.io/blog/2021/json-with-commas-comments.html
//
// JWCC input is converted to standard JSON by replacing comments and trailing
// commas with whitespace, and the result is parsed strictly. Because the
// conversion preserves byte offsets and line breaks, the positions reported
// in errors refer to the original input.
package jwcc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/creachadair/jparse/ast"
	"github.com/tailscale/hujson"
	"go4.org/mem"
)

// ErrSyntax is reported (wrapped) when the input is not valid JWCC.
var ErrSyntax = errors.New("invalid JWCC")

// Standardize returns a copy of data with comments and trailing commas
// replaced by spaces. The input is not modified. If data is not valid JWCC,
// the error wraps ErrSyntax. Input nested more than ast.DefaultMaxDepth deep
// is rejected with a *jparse.Error of kind MaxDepthExceeded.
func Standardize(data []byte) ([]byte, error) { return standardize(data, ast.DefaultMaxDepth) }

func standardize(data []byte, maxDepth int) ([]byte, error) {
	// The standardizer recurses once per nesting level, so bound the depth
	// before handing it the input.
	if err := checkDepth(data, maxDepth); err != nil {
		return nil, err
	}
	std, err := hujson.Standardize(bytes.Clone(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return std, nil
}

// Parse parses data as a single JWCC value.
func Parse(data []byte) (ast.Value, error) { return ParseDepth(data, 0) }

// ParseDepth parses data as a single JWCC value, with nesting limited to
// maxDepth. If maxDepth <= 0, ast.DefaultMaxDepth is used.
func ParseDepth(data []byte, maxDepth int) (ast.Value, error) {
	if maxDepth <= 0 {
		maxDepth = ast.DefaultMaxDepth
	}
	std, err := standardize(data, maxDepth)
	if err != nil {
		return nil, err
	}
	p := ast.NewParser(mem.B(std))
	p.SetMaxDepth(maxDepth)
	return p.Parse()
}

// ParseReader reads all of r and parses it as a single JWCC value. An error
// reading r is returned as-is.
func ParseReader(r io.Reader) (ast.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
