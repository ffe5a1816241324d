// Package token defines the closed set of lexical token kinds produced
// by the lexer and consumed by the parser.
package token

import (
	"fmt"

	"github.com/dauw-lang/dauw/internal/source"
)

// Kind is the closed set of token kinds from spec.md §6.
type Kind uint8

const (
	END Kind = iota
	NEWLINE
	INDENT
	DEDENT
	COMMENT

	PARENTHESIS_LEFT
	PARENTHESIS_RIGHT
	SQUARE_BRACKET_LEFT
	SQUARE_BRACKET_RIGHT
	CURLY_BRACKET_LEFT
	CURLY_BRACKET_RIGHT

	SYMBOL_COLON
	SYMBOL_COMMA
	SYMBOL_DOT
	SYMBOL_BACKSLASH

	OPERATOR_MAYBE        // ?
	OPERATOR_INTERSECTION // &
	OPERATOR_UNION        // |
	OPERATOR_LENGTH       // #
	OPERATOR_STRING       // $
	OPERATOR_MULTIPLY     // *
	OPERATOR_DIVIDE       // /
	OPERATOR_QUOTIENT     // //
	OPERATOR_REMAINDER    // %
	OPERATOR_ADD          // +
	OPERATOR_SUBTRACT     // -
	OPERATOR_RANGE        // ..
	OPERATOR_COMPARE      // <=>
	OPERATOR_LESS         // <
	OPERATOR_LESS_EQUAL   // <=
	OPERATOR_GREATER      // >
	OPERATOR_GREATER_EQUAL
	OPERATOR_MATCH     // =~
	OPERATOR_NOT_MATCH // !~
	OPERATOR_EQUAL     // ==
	OPERATOR_NOT_EQUAL // !=
	OPERATOR_IDENTICAL
	OPERATOR_NOT_IDENTICAL
	OPERATOR_LOGIC_NOT // not
	OPERATOR_LOGIC_AND // and
	OPERATOR_LOGIC_OR  // or
	OPERATOR_ASSIGN    // =

	KEYWORD_DEF
	KEYWORD_DO
	KEYWORD_ECHO
	KEYWORD_ELSE
	KEYWORD_FALSE
	KEYWORD_FOR
	KEYWORD_IF
	KEYWORD_IN
	KEYWORD_NOTHING
	KEYWORD_THEN
	KEYWORD_TRUE
	KEYWORD_UNTIL
	KEYWORD_WHILE

	IDENTIFIER

	LITERAL_INT
	LITERAL_REAL
	LITERAL_RUNE
	LITERAL_STRING
	LITERAL_REGEX
)

var names = map[Kind]string{
	END: "END", NEWLINE: "NEWLINE", INDENT: "INDENT", DEDENT: "DEDENT", COMMENT: "COMMENT",
	PARENTHESIS_LEFT: "(", PARENTHESIS_RIGHT: ")",
	SQUARE_BRACKET_LEFT: "[", SQUARE_BRACKET_RIGHT: "]",
	CURLY_BRACKET_LEFT: "{", CURLY_BRACKET_RIGHT: "}",
	SYMBOL_COLON: ":", SYMBOL_COMMA: ",", SYMBOL_DOT: ".", SYMBOL_BACKSLASH: "\\",
	OPERATOR_MAYBE: "?", OPERATOR_INTERSECTION: "&", OPERATOR_UNION: "|",
	OPERATOR_LENGTH: "#", OPERATOR_STRING: "$",
	OPERATOR_MULTIPLY: "*", OPERATOR_DIVIDE: "/", OPERATOR_QUOTIENT: "//", OPERATOR_REMAINDER: "%",
	OPERATOR_ADD: "+", OPERATOR_SUBTRACT: "-", OPERATOR_RANGE: "..",
	OPERATOR_COMPARE: "<=>", OPERATOR_LESS: "<", OPERATOR_LESS_EQUAL: "<=",
	OPERATOR_GREATER: ">", OPERATOR_GREATER_EQUAL: ">=",
	OPERATOR_MATCH: "=~", OPERATOR_NOT_MATCH: "!~",
	OPERATOR_EQUAL: "==", OPERATOR_NOT_EQUAL: "!=",
	OPERATOR_IDENTICAL: "===", OPERATOR_NOT_IDENTICAL: "!==",
	OPERATOR_LOGIC_NOT: "not", OPERATOR_LOGIC_AND: "and", OPERATOR_LOGIC_OR: "or",
	OPERATOR_ASSIGN: "=",
	KEYWORD_DEF:    "def", KEYWORD_DO: "do", KEYWORD_ECHO: "echo", KEYWORD_ELSE: "else",
	KEYWORD_FALSE:   "false", KEYWORD_FOR: "for", KEYWORD_IF: "if", KEYWORD_IN: "in",
	KEYWORD_NOTHING: "nothing", KEYWORD_THEN: "then", KEYWORD_TRUE: "true",
	KEYWORD_UNTIL: "until", KEYWORD_WHILE: "while",
	IDENTIFIER: "identifier",
	LITERAL_INT: "int literal", LITERAL_REAL: "real literal", LITERAL_RUNE: "rune literal",
	LITERAL_STRING: "string literal", LITERAL_REGEX: "regex literal",
}

// Keywords maps the reserved-word spelling to its Kind. The lexer does
// not consult it; it matches each keyword with its own rule-table entry.
var Keywords = map[string]Kind{
	"def": KEYWORD_DEF, "do": KEYWORD_DO, "echo": KEYWORD_ECHO, "else": KEYWORD_ELSE,
	"false": KEYWORD_FALSE, "for": KEYWORD_FOR, "if": KEYWORD_IF, "in": KEYWORD_IN,
	"nothing": KEYWORD_NOTHING, "then": KEYWORD_THEN, "true": KEYWORD_TRUE,
	"until": KEYWORD_UNTIL, "while": KEYWORD_WHILE,
	"not": OPERATOR_LOGIC_NOT, "and": OPERATOR_LOGIC_AND, "or": OPERATOR_LOGIC_OR,
}

// String renders the kind's canonical spelling, used in error messages.
func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Token is a single lexical unit: its kind, the source text it carries
// (empty for punctuation and keywords), and its starting location.
type Token struct {
	Kind     Kind
	Text     string
	Location source.Location
}

// HasText reports whether this kind's lexeme carries information beyond
// its kind (identifiers, literals, comments).
func (t Token) HasText() bool {
	switch t.Kind {
	case IDENTIFIER, COMMENT, LITERAL_INT, LITERAL_REAL, LITERAL_RUNE, LITERAL_STRING, LITERAL_REGEX:
		return true
	default:
		return false
	}
}

func (t Token) String() string {
	if t.HasText() {
		return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Text, t.Location)
	}
	return fmt.Sprintf("%s@%s", t.Kind, t.Location)
}
