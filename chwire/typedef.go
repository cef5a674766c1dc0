// © Copyright 2025-2026, Query.Farm LLC - https://query.farm
// SPDX-License-Identifier: Apache-2.0

package chwire

import (
	"regexp"
	"strconv"
	"strings"
)

// Wrapper is a modifier type that wraps another type name.
type Wrapper string

const (
	WrapperNullable       Wrapper = "Nullable"
	WrapperLowCardinality Wrapper = "LowCardinality"
)

// ArgKind discriminates the Argument union.
type ArgKind int

const (
	// ArgInt is a bare integer argument, e.g. the 3 in DateTime64(3).
	ArgInt ArgKind = iota
	// ArgDecimal is a numeral containing a decimal point, kept as raw text.
	ArgDecimal
	// ArgString is a single-quoted literal with quotes stripped and
	// escapes resolved, e.g. the time zone in DateTime('Europe/Moscow').
	ArgString
	// ArgType is a nested type name, kept raw for the consuming codec
	// constructor to resolve.
	ArgType
)

// Argument is one parenthesized argument of a parameterized type.
type Argument struct {
	Kind ArgKind
	Int  int64
	Str  string
}

// TypeDef is the structured form of a ClickHouse type name. It is treated
// as immutable once built; registry normalization fills in Base spelling
// and Size before the definition is used as a cache key.
type TypeDef struct {
	// Base is the type keyword without wrappers, arguments, or (after
	// normalization) a trailing size suffix.
	Base string
	// Size is the numeric suffix split off the keyword during registry
	// normalization (128 for Int128, 5 for Decimal32's width class), 0
	// when the keyword has none.
	Size int
	// Wrappers lists modifier wrappers outermost first.
	Wrappers []Wrapper
	// Args holds non-enum arguments in order.
	Args []Argument
	// Keys and Values are the parallel label/code sequences of an Enum,
	// in encounter order. On duplicate labels or codes the first
	// occurrence wins.
	Keys   []string
	Values []int64
}

var (
	intArgRe     = regexp.MustCompile(`^-?\d+$`)
	decimalArgRe = regexp.MustCompile(`^-?\d+\.\d*$`)
)

// ParseTypeName parses a ClickHouse type name into its structured form.
// The grammar covers wrapper modifiers, parenthesized arguments with
// nesting and quoted strings, and Enum label/code pairs. Failures return a
// *WireError with KindMalformedTypeName naming the offending input.
func ParseTypeName(name string) (*TypeDef, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return nil, errMalformed(name, "empty type name")
	}
	def := &TypeDef{}
	for {
		if inner, ok := stripWrapper(s, WrapperNullable); ok {
			def.Wrappers = append(def.Wrappers, WrapperNullable)
			s = inner
			continue
		}
		if inner, ok := stripWrapper(s, WrapperLowCardinality); ok {
			def.Wrappers = append(def.Wrappers, WrapperLowCardinality)
			s = inner
			continue
		}
		break
	}
	if s == "" {
		return nil, errMalformed(name, "wrapper with empty inner type")
	}

	paren := strings.IndexByte(s, '(')
	if paren < 0 {
		if strings.ContainsAny(s, ")',") {
			return nil, errMalformed(name, "unexpected character in %q", s)
		}
		def.Base = s
		return def, nil
	}
	if paren == 0 {
		return nil, errMalformed(name, "missing type keyword before arguments")
	}
	if s[len(s)-1] != ')' {
		return nil, errMalformed(name, "unbalanced parentheses in %q", s)
	}
	def.Base = strings.TrimSpace(s[:paren])

	if strings.HasPrefix(strings.ToUpper(def.Base), "ENUM") {
		keys, values, err := parseEnumArgs(name, s[paren+1:len(s)-1])
		if err != nil {
			return nil, err
		}
		def.Keys, def.Values = keys, values
		return def, nil
	}

	args, err := parseArgs(name, s[paren+1:len(s)-1])
	if err != nil {
		return nil, err
	}
	def.Args = args
	return def, nil
}

// stripWrapper removes one "Keyword(...)" layer when Keyword matches
// case-insensitively and the wrapper's closing paren is the final
// character of s.
func stripWrapper(s string, w Wrapper) (string, bool) {
	kw := string(w)
	if len(s) < len(kw)+2 {
		return "", false
	}
	if !strings.EqualFold(s[:len(kw)], kw) || s[len(kw)] != '(' {
		return "", false
	}
	if s[len(s)-1] != ')' {
		return "", false
	}
	return strings.TrimSpace(s[len(kw)+1 : len(s)-1]), true
}

// parseQuoted consumes a single-quoted literal starting at the opening
// quote s[i] and returns the unescaped content and the index just past the
// closing quote. The only escape is a backslash before a quote, and even
// that is suppressed when the quote is followed by " = " or ")": there the
// backslash is literal and the quote closes the literal. This matches how
// the server prints labels that themselves end in a backslash.
func parseQuoted(full, s string, i int) (string, int, error) {
	var b strings.Builder
	i++
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) && s[i+1] == '\'' {
			rest := s[i+1:]
			if !strings.HasPrefix(rest, "' = ") && !strings.HasPrefix(rest, "')") && rest != "'" {
				b.WriteByte('\'')
				i += 2
				continue
			}
		}
		if c == '\'' {
			return b.String(), i + 1, nil
		}
		b.WriteByte(c)
		i++
	}
	return "", 0, errMalformed(full, "unterminated string literal")
}

// parseArgs splits s on top-level commas, respecting parentheses and
// quoted strings, and classifies each piece.
func parseArgs(full, s string) ([]Argument, error) {
	var args []Argument
	i, n := 0, len(s)
	for i < n {
		for i < n && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= n {
			break
		}
		if s[i] == '\'' {
			lit, next, err := parseQuoted(full, s, i)
			if err != nil {
				return nil, err
			}
			i = next
			for i < n && s[i] != ',' {
				if s[i] != ' ' {
					return nil, errMalformed(full, "unexpected %q after string literal", string(s[i]))
				}
				i++
			}
			if i < n {
				i++
			}
			args = append(args, Argument{Kind: ArgString, Str: lit})
			continue
		}
		start := i
		depth := 0
		for i < n {
			c := s[i]
			if c == '\'' {
				_, next, err := parseQuoted(full, s, i)
				if err != nil {
					return nil, err
				}
				i = next
				continue
			}
			if c == '(' {
				depth++
			} else if c == ')' {
				if depth == 0 {
					return nil, errMalformed(full, "unbalanced parentheses in arguments")
				}
				depth--
			} else if c == ',' && depth == 0 {
				break
			}
			i++
		}
		if depth != 0 {
			return nil, errMalformed(full, "unbalanced parentheses in arguments")
		}
		raw := strings.TrimSpace(s[start:i])
		if i < n {
			i++
		}
		if raw == "" {
			return nil, errMalformed(full, "empty argument")
		}
		args = append(args, classifyArg(raw))
	}
	return args, nil
}

func classifyArg(raw string) Argument {
	if intArgRe.MatchString(raw) {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			return Argument{Kind: ArgInt, Int: v}
		}
	}
	if decimalArgRe.MatchString(raw) {
		return Argument{Kind: ArgDecimal, Str: raw}
	}
	return Argument{Kind: ArgType, Str: raw}
}

// parseEnumArgs parses "'label' = code, ..." into parallel sequences.
// Duplicate labels and duplicate codes keep their first occurrence.
func parseEnumArgs(full, s string) ([]string, []int64, error) {
	var keys []string
	var values []int64
	seenKey := map[string]bool{}
	seenVal := map[int64]bool{}
	i, n := 0, len(s)
	for {
		for i < n && s[i] == ' ' {
			i++
		}
		if i >= n {
			if len(keys) == 0 {
				return nil, nil, errMalformed(full, "empty enum definition")
			}
			break
		}
		if s[i] != '\'' {
			return nil, nil, errMalformed(full, "expected quoted enum label at position %d", i)
		}
		label, next, err := parseQuoted(full, s, i)
		if err != nil {
			return nil, nil, err
		}
		i = next
		for i < n && s[i] == ' ' {
			i++
		}
		if i >= n || s[i] != '=' {
			return nil, nil, errMalformed(full, "expected '=' after enum label %q", label)
		}
		i++
		for i < n && s[i] == ' ' {
			i++
		}
		start := i
		if i < n && (s[i] == '-' || s[i] == '+') {
			i++
		}
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		code, err2 := strconv.ParseInt(strings.TrimSpace(s[start:i]), 10, 64)
		if err2 != nil {
			return nil, nil, errMalformed(full, "bad enum code for label %q", label)
		}
		if !seenKey[label] && !seenVal[code] {
			keys = append(keys, label)
			values = append(values, code)
			seenKey[label] = true
			seenVal[code] = true
		}
		for i < n && s[i] == ' ' {
			i++
		}
		if i >= n {
			break
		}
		if s[i] != ',' {
			return nil, nil, errMalformed(full, "expected ',' between enum entries")
		}
		i++
	}
	return keys, values, nil
}

// BaseName renders the canonical name without wrappers.
func (d *TypeDef) BaseName() string {
	var b strings.Builder
	b.WriteString(d.Base)
	if d.Size > 0 {
		b.WriteString(strconv.Itoa(d.Size))
	}
	switch {
	case len(d.Keys) > 0:
		b.WriteByte('(')
		for i, k := range d.Keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('\'')
			b.WriteString(strings.ReplaceAll(k, "'", `\'`))
			b.WriteString("' = ")
			b.WriteString(strconv.FormatInt(d.Values[i], 10))
		}
		b.WriteByte(')')
	case len(d.Args) > 0:
		b.WriteByte('(')
		for i, a := range d.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			switch a.Kind {
			case ArgInt:
				b.WriteString(strconv.FormatInt(a.Int, 10))
			case ArgDecimal:
				b.WriteString(a.Str)
			case ArgString:
				b.WriteByte('\'')
				b.WriteString(strings.ReplaceAll(a.Str, "'", `\'`))
				b.WriteByte('\'')
			case ArgType:
				b.WriteString(a.Str)
			}
		}
		b.WriteByte(')')
	}
	return b.String()
}

// String renders the full canonical name, wrappers included. Parsing the
// result yields an equal TypeDef.
func (d *TypeDef) String() string {
	s := d.BaseName()
	for i := len(d.Wrappers) - 1; i >= 0; i-- {
		s = string(d.Wrappers[i]) + "(" + s + ")"
	}
	return s
}
