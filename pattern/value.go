// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package pattern

import (
	"strconv"
)

// Kind is the runtime type of a scalar value.
type Kind uint8

const (
	Int Kind = iota
	Bool
	String
	None

	// NumKinds is the number of scalar kinds.
	NumKinds = int(None) + 1
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Bool:
		return "bool"
	case String:
		return "str"
	case None:
		return "none"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a scalar: an integer, a boolean, a string, or the absence-of-value constant.
//
// Only the payload field selected by Kind is meaningful.
type Value struct {
	Kind Kind
	Int  int64
	Bool bool
	Str  string
}

func IntValue(i int64) Value     { return Value{Kind: Int, Int: i} }
func BoolValue(b bool) Value     { return Value{Kind: Bool, Bool: b} }
func StringValue(s string) Value { return Value{Kind: String, Str: s} }
func NoneValue() Value           { return Value{Kind: None} }

// Equal reports whether a and b have the same kind and payload.
func (v Value) Equal(w Value) bool {
	if v.Kind != w.Kind {
		return false
	}
	switch v.Kind {
	case Int:
		return v.Int == w.Int
	case Bool:
		return v.Bool == w.Bool
	case String:
		return v.Str == w.Str
	}
	return true
}

// Key returns a kind-qualified encoding of v, unique per distinct value.
func (v Value) Key() string {
	switch v.Kind {
	case Int:
		return "int:" + strconv.FormatInt(v.Int, 10)
	case Bool:
		return "bool:" + strconv.FormatBool(v.Bool)
	case String:
		return "str:" + strconv.Quote(v.Str)
	}
	return "none"
}

// String renders v the way it would be written in a pattern.
func (v Value) String() string {
	switch v.Kind {
	case Int:
		return strconv.FormatInt(v.Int, 10)
	case Bool:
		return strconv.FormatBool(v.Bool)
	case String:
		return strconv.Quote(v.Str)
	}
	return "null"
}

// Interface returns the payload as a plain Go value (int64, bool, string or nil).
func (v Value) Interface() interface{} {
	switch v.Kind {
	case Int:
		return v.Int
	case Bool:
		return v.Bool
	case String:
		return v.Str
	}
	return nil
}
