package parser

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTML5Tests is the file format of the html5lib tokenizer tests.
type HTML5Tests struct {
	Tests []HTML5Test `json:"tests"`
}

type HTML5Test struct {
	Description   string          `json:"description"`
	Input         string          `json:"input"`
	Output        [][]interface{} `json:"output"`
	DoubleEscaped bool            `json:"doubleEscaped"`
	LastStartTag  string          `json:"lastStartTag"`
	Errors        []struct {
		Code string `json:"code"`
		Line int    `json:"line"`
		Col  int    `json:"col"`
	} `json:"errors,omitempty"`
	InitialStates []string `json:"initialStates,omitempty"`
}

func TestHTML5Lib(t *testing.T) {
	allTests := &HTML5Tests{
		Tests: make([]HTML5Test, 0),
	}
	dir := "./testdata/tokenizer/"
	files, err := ioutil.ReadDir(dir)
	require.NoError(t, err)

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".test") {
			continue
		}
		path := filepath.Join(dir, file.Name())
		data, err := ioutil.ReadFile(path)
		require.NoError(t, err)

		var tests *HTML5Tests
		require.NoError(t, json.Unmarshal(data, &tests), path)

		allTests.Tests = append(allTests.Tests, tests.Tests...)
	}
	require.NotEmpty(t, allTests.Tests)

	for _, test := range allTests.Tests {
		runHTML5Test(test, t)
	}
}

func getInitContentModel(state string) (ContentModel, error) {
	switch state {
	case "Data state":
		return NormalContent, nil
	case "PLAINTEXT state":
		return PlaintextContent, nil
	case "RCDATA state":
		return EscapableRawContent, nil
	case "RAWTEXT state":
		return RawContent, nil
	case "Script data state":
		return ScriptContent, nil
	default:
		return NormalContent, errors.Errorf("invalid tokenizer state %s", state)
	}
}

func formatString(v interface{}, de bool) interface{} {
	s, ok := v.(string)
	if !ok || !de {
		return v
	}
	n, err := doubleEscape(s)
	if err != nil {
		return s
	}
	return n
}

// formatOutputs unescapes the strings of the expected output when the test
// is double escaped.
func formatOutputs(outputs [][]interface{}, de bool) [][]interface{} {
	formatted := make([][]interface{}, 0, len(outputs))
	for _, v := range outputs {
		row := make([]interface{}, len(v))
		for i, field := range v {
			row[i] = formatString(field, de)
		}
		formatted = append(formatted, row)
	}
	return formatted
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// html5libOutput renders tokens in the html5lib output format.
func html5libOutput(tokens []Token) [][]interface{} {
	out := make([][]interface{}, 0, len(tokens))
	for _, token := range tokens {
		switch t := token.(type) {
		case StartTag:
			attrs := make(map[string]interface{}, len(t.Attributes))
			for _, a := range t.Attributes {
				attrs[a.Name] = a.Value
			}
			row := []interface{}{"StartTag", t.Name, attrs}
			if t.SelfClosing {
				row = append(row, true)
			}
			out = append(out, row)
		case EndTag:
			out = append(out, []interface{}{"EndTag", t.Name})
		case Comment:
			out = append(out, []interface{}{"Comment", t.Data})
		case Characters:
			out = append(out, []interface{}{"Character", t.Data})
		case Doctype:
			var name interface{}
			if t.Name != "" {
				name = t.Name
			}
			out = append(out, []interface{}{"DOCTYPE", name, nullable(t.PublicID), nullable(t.SystemID), !t.ForceQuirks})
		}
	}
	return out
}

func doubleEscape(s string) (string, error) {
	ns := strconv.QuoteToASCII(s)
	rs := strings.ReplaceAll(ns, "\\\\", "\\")

	n, err := strconv.Unquote(rs)
	if err != nil {
		return s, err
	}

	return n, nil
}

func runHTML5Test(test HTML5Test, t *testing.T) {
	t.Run(test.Description, func(t *testing.T) {
		t.Parallel()
		if test.DoubleEscaped {
			var err error
			test.Input, err = doubleEscape(test.Input)
			require.NoError(t, err)
		}

		if len(test.InitialStates) == 0 {
			test.InitialStates = []string{"Data state"}
		}
		expectedTokens := formatOutputs(test.Output, test.DoubleEscaped)
		for _, initState := range test.InitialStates {
			model, err := getInitContentModel(initState)
			require.NoError(t, err)

			res, err := NewParserString(test.Input, Options{
				ContentModel: model,
				LastStartTag: test.LastStartTag,
				Coalesce:     true,
			}).Parse()
			require.NoError(t, err)

			// the expected tokens don't include the EOF token, but `tokens` does
			tokens := res.Tokens[:len(res.Tokens)-1]
			assert.Equal(t, expectedTokens, html5libOutput(tokens), initState)

			require.Len(t, res.Errors, len(test.Errors), initState)
			for i, want := range test.Errors {
				got := res.Errors[i]
				assert.Equal(t, want.Code, string(got.Code), initState)
				if want.Line != 0 {
					assert.Equal(t, want.Line, got.Line, initState)
					assert.Equal(t, want.Col, got.Column, initState)
				}
			}
		}
	})
}
