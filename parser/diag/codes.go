package diag

import "sort"

// Code is a stable, machine readable parse error name.
type Code string

const (
	InvalidCodepoint Code = "invalid-codepoint"

	// Character references.
	InvalidNumericEntityReplaced    Code = "invalid-numeric-entity-replaced"
	NumericEntityWithoutSemicolon   Code = "numeric-entity-without-semicolon"
	ExpectedNumericEntityButGotEOF  Code = "expected-numeric-entity-but-got-eof"
	ExpectedNumericEntity           Code = "expected-numeric-entity"
	NamedEntityWithoutSemicolon     Code = "named-entity-without-semicolon"
	ExpectedNamedEntity             Code = "expected-named-entity"
	AttributesInEndTag              Code = "attributes-in-end-tag"
	SelfClosingFlagOnEndTag         Code = "self-closing-flag-on-end-tag"
	NonVoidElementWithTrailingSlash Code = "non-void-element-with-trailing-solidus"

	// Tags and attributes.
	BareLessThanSignAtEOF                       Code = "bare-less-than-sign-at-eof"
	ExpectedTagNameButGotRightBracket           Code = "expected-tag-name-but-got-right-bracket"
	ExpectedTagNameButGotQuestionMark           Code = "expected-tag-name-but-got-question-mark"
	ExpectedTagName                             Code = "expected-tag-name"
	ExpectedClosingTagButGotRightBracket        Code = "expected-closing-tag-but-got-right-bracket"
	ExpectedClosingTagButGotEOF                 Code = "expected-closing-tag-but-got-eof"
	ExpectedClosingTagButGotChar                Code = "expected-closing-tag-but-got-char"
	EOFInTagName                                Code = "eof-in-tag-name"
	ExpectedAttributeNameButGotEOF              Code = "expected-attribute-name-but-got-eof"
	EOFInAttributeName                          Code = "eof-in-attribute-name"
	InvalidCharacterInAttributeName             Code = "invalid-character-in-attribute-name"
	DuplicateAttribute                          Code = "duplicate-attribute"
	ExpectedEndOfTagButGotEOF                   Code = "expected-end-of-tag-but-got-eof"
	ExpectedAttributeValueButGotEOF             Code = "expected-attribute-value-but-got-eof"
	ExpectedAttributeValueButGotRightBracket    Code = "expected-attribute-value-but-got-right-bracket"
	UnexpectedCharacterInUnquotedAttributeValue Code = "unexpected-character-in-unquoted-attribute-value"
	InvalidCharacterAfterAttributeName          Code = "invalid-character-after-attribute-name"
	UnexpectedCharacterAfterAttributeValue      Code = "unexpected-character-after-attribute-value"
	EOFInAttributeValueDoubleQuote              Code = "eof-in-attribute-value-double-quote"
	EOFInAttributeValueSingleQuote              Code = "eof-in-attribute-value-single-quote"
	EOFInAttributeValueNoQuotes                 Code = "eof-in-attribute-value-no-quotes"
	EOFAfterAttributeValue                      Code = "eof-after-attribute-value"
	UnexpectedEOFAfterSolidusInTag              Code = "unexpected-eof-after-solidus-in-tag"
	UnexpectedCharacterAfterSolidusInTag        Code = "unexpected-character-after-solidus-in-tag"

	// Markup declarations, comments and doctypes.
	ExpectedDashesOrDoctype                Code = "expected-dashes-or-doctype"
	UnexpectedBangAfterDoubleDashInComment Code = "unexpected-bang-after-double-dash-in-comment"
	IncorrectComment                       Code = "incorrect-comment"
	EOFInComment                           Code = "eof-in-comment"
	EOFInCommentEndDash                    Code = "eof-in-comment-end-dash"
	UnexpectedDashAfterDoubleDashInComment Code = "unexpected-dash-after-double-dash-in-comment"
	EOFInCommentDoubleDash                 Code = "eof-in-comment-double-dash"
	EOFInCommentEndBangState               Code = "eof-in-comment-end-bang-state"
	UnexpectedCharInComment                Code = "unexpected-char-in-comment"
	EOFInCDATA                             Code = "eof-in-cdata"
	NeedSpaceAfterDoctype                  Code = "need-space-after-doctype"
	ExpectedDoctypeNameButGotRightBracket  Code = "expected-doctype-name-but-got-right-bracket"
	ExpectedDoctypeNameButGotEOF           Code = "expected-doctype-name-but-got-eof"
	EOFInDoctypeName                       Code = "eof-in-doctype-name"
	EOFInDoctype                           Code = "eof-in-doctype"
	ExpectedSpaceOrRightBracketInDoctype   Code = "expected-space-or-right-bracket-in-doctype"
	UnexpectedEndOfDoctype                 Code = "unexpected-end-of-doctype"
	UnexpectedCharInDoctype                Code = "unexpected-char-in-doctype"
	EOFInBogusDoctype                      Code = "eof-in-bogus-doctype"
	EOFInScript                            Code = "eof-in-script"
)

var messages = map[Code]string{
	InvalidCodepoint:                "Invalid codepoint in stream.",
	InvalidNumericEntityReplaced:    "Numeric entity represents an illegal codepoint (U+{charAsInt}).",
	NumericEntityWithoutSemicolon:   "Numeric entity didn't end with ';'.",
	ExpectedNumericEntityButGotEOF:  "Numeric entity expected. Got end of file instead.",
	ExpectedNumericEntity:           "Numeric entity expected but none found.",
	NamedEntityWithoutSemicolon:     "Named entity didn't end with ';'.",
	ExpectedNamedEntity:             "Named entity expected. Got none.",
	AttributesInEndTag:              "End tag contains unexpected attributes.",
	SelfClosingFlagOnEndTag:         "End tag contains unexpected self-closing flag.",
	NonVoidElementWithTrailingSlash: "Trailing solidus not allowed on element {name}.",

	BareLessThanSignAtEOF:                       "End of file after <.",
	ExpectedTagNameButGotRightBracket:           "Expected tag name. Got '>' instead.",
	ExpectedTagNameButGotQuestionMark:           "Expected tag name. Got '?' instead. (HTML doesn't support processing instructions.)",
	ExpectedTagName:                             "Expected tag name. Got something else instead.",
	ExpectedClosingTagButGotRightBracket:        "Expected closing tag. Got '>' instead. Ignoring '</>'.",
	ExpectedClosingTagButGotEOF:                 "Expected closing tag. Unexpected end of file.",
	ExpectedClosingTagButGotChar:                "Expected closing tag. Unexpected character '{data}' found.",
	EOFInTagName:                                "Unexpected end of file in the tag name.",
	ExpectedAttributeNameButGotEOF:              "Unexpected end of file. Expected attribute name instead.",
	EOFInAttributeName:                          "Unexpected end of file in attribute name.",
	InvalidCharacterInAttributeName:             "Invalid character in attribute name.",
	DuplicateAttribute:                          "Dropped duplicate attribute '{name}' on tag.",
	ExpectedEndOfTagButGotEOF:                   "Unexpected end of file. Expected = or end of tag.",
	ExpectedAttributeValueButGotEOF:             "Unexpected end of file. Expected attribute value.",
	ExpectedAttributeValueButGotRightBracket:    "Expected attribute value. Got '>' instead.",
	UnexpectedCharacterInUnquotedAttributeValue: "Unexpected character in unquoted attribute.",
	InvalidCharacterAfterAttributeName:          "Unexpected character after attribute name.",
	UnexpectedCharacterAfterAttributeValue:      "Unexpected character after attribute value.",
	EOFInAttributeValueDoubleQuote:              "Unexpected end of file in attribute value (\").",
	EOFInAttributeValueSingleQuote:              "Unexpected end of file in attribute value (').",
	EOFInAttributeValueNoQuotes:                 "Unexpected end of file in attribute value.",
	EOFAfterAttributeValue:                      "Unexpected end of file after attribute value.",
	UnexpectedEOFAfterSolidusInTag:              "Unexpected end of file in tag. Expected >.",
	UnexpectedCharacterAfterSolidusInTag:        "Unexpected character after / in tag. Expected >.",

	ExpectedDashesOrDoctype:                "Expected '--' or 'DOCTYPE'. Not found.",
	UnexpectedBangAfterDoubleDashInComment: "Unexpected ! after -- in comment.",
	IncorrectComment:                       "Incorrect comment.",
	EOFInComment:                           "Unexpected end of file in comment.",
	EOFInCommentEndDash:                    "Unexpected end of file in comment (-).",
	UnexpectedDashAfterDoubleDashInComment: "Unexpected '-' after '--' found in comment.",
	EOFInCommentDoubleDash:                 "Unexpected end of file in comment (--).",
	EOFInCommentEndBangState:               "Unexpected end of file in comment.",
	UnexpectedCharInComment:                "Unexpected character in comment found.",
	EOFInCDATA:                             "Unexpected end of file in CDATA section.",
	NeedSpaceAfterDoctype:                  "No space after literal string 'DOCTYPE'.",
	ExpectedDoctypeNameButGotRightBracket:  "Unexpected > character. Expected DOCTYPE name.",
	ExpectedDoctypeNameButGotEOF:           "Unexpected end of file. Expected DOCTYPE name.",
	EOFInDoctypeName:                       "Unexpected end of file in DOCTYPE name.",
	EOFInDoctype:                           "Unexpected end of file in DOCTYPE.",
	ExpectedSpaceOrRightBracketInDoctype:   "Expected space or '>'. Got '{data}'.",
	UnexpectedEndOfDoctype:                 "Unexpected end of DOCTYPE.",
	UnexpectedCharInDoctype:                "Unexpected character in DOCTYPE.",
	EOFInBogusDoctype:                      "Unexpected end of file in bogus doctype.",
	EOFInScript:                            "Unexpected end of file. Expected script content.",
}

// Codes returns every known code in a stable order.
func Codes() []Code {
	codes := make([]Code, 0, len(messages))
	for c := range messages {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Known reports whether c is part of the taxonomy.
func (c Code) Known() bool {
	_, ok := messages[c]
	return ok
}

// Template returns the unformatted message for c.
func (c Code) Template() string {
	if m, ok := messages[c]; ok {
		return m
	}
	return string(c)
}
