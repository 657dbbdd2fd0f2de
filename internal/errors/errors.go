// Package errors formats AISpec compiler diagnostics with source context
// and a caret pointing at the offending token, the same presentation the
// teacher module uses for its own compiler errors.
package errors

import (
	"fmt"
	"strings"

	"github.com/spak-project/spak/internal/lexer"
)

// ParseError is a single parse failure with position and source context.
// The compiler never returns a partial AST alongside a ParseError: a parse
// failure is fatal to the compile operation.
type ParseError struct {
	Message string
	Source  string
	File    string
	Pos     lexer.Position
	Token   string
}

// NewParseError builds a ParseError anchored at pos, carrying the offending
// token literal for diagnostics.
func NewParseError(pos lexer.Position, message, token, source, file string) *ParseError {
	return &ParseError{Pos: pos, Message: message, Token: token, Source: source, File: file}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return e.Format(false)
}

// Format renders the error with a source line and caret indicator.
// If color is true, ANSI escapes highlight the caret and message.
func (e *ParseError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	sourceLine := e.sourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		caretCol := e.Pos.Column - 1
		if caretCol < 0 {
			caretCol = 0
		}
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+caretCol))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if e.Token != "" {
		sb.WriteString(fmt.Sprintf(" (got %q)", e.Token))
	}
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *ParseError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors renders one or more ParseErrors, numbering them when there is
// more than one.
func FormatErrors(errs []*ParseError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Compilation failed with %d error(s):\n\n", len(errs)))
	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
