package engine_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepankarm/jsonrepair/pkg/internal/engine"
	"github.com/deepankarm/jsonrepair/pkg/internal/errors"
)

type repairCase struct {
	name  string
	input string
	want  string
}

func repair(input string, opts engine.Options) string {
	return engine.NewParser(opts).Parse(input).Value.String()
}

func runCases(t *testing.T, cases []repairCase) {
	t.Helper()
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repair(tt.input, engine.Options{}), "input: %s", tt.input)
			assert.Equal(t, tt.want, repair(tt.want, engine.Options{}), "repairing the output changed it")
		})
	}
}

func TestParseObject(t *testing.T) {
	runCases(t, []repairCase{
		{"empty", `{}`, `{}`},
		{"unclosed brace", `{`, `{}`},
		{"spaces only", ` { } `, `{}`},
		{"capitalized literal", `{ "key": "value", "key2": 1, "key3": True }`, `{"key":"value","key2":1,"key3":true}`},
		{"unquoted value and missing comma", `{ "key": value, "key2": 1 "key3": null }`, `{"key":"value","key2":1,"key3":null}`},
		{"missing colon", `{"key": "value", "key2" 123}`, `{"key":"value","key2":23}`},
		{"missing comma between members", `{"key": "value" "key2": "value2"}`, `{"key":"value","key2":"value2"}`},
		{"missing colon before quoted value", `{"key" "value"}`, `{"key":"value"}`},
		{"value missing closing quote", `{"name": "John", "age": 30, "city": "New York, "gender": "male"}`, `{"name":"John","age":30,"city":"New York","gender":"male"}`},
		{"unquoted value runs into key", `{"a": value"b": 1}`, `{"a":"value","b":1}`},
		{"unquoted value with commas", `{"lorem": ipsum, sic, datum.",}`, `{"lorem":"ipsum, sic, datum."}`},
		{"values missing opening quotes", `{ "words": abcdef", "numbers": 12345", "words2": ghijkl" }`, `{"words":"abcdef","numbers":12345,"words2":"ghijkl"}`},
		{"adjacent strings", `{"number": 1,"reason": "According...""ans": "YES"}`, `{"number":1,"reason":"According...","ans":"YES"}`},
		{"brace inside value", `{ "a" : "{ b": {} }" }`, `{"a":"{ b"}`},
		{"trailing literal", `{"b": "xxxxx" true}`, `{"b":"xxxxx"}`},
		{"comment word before key", `{"value_1": true, COMMENT "value_2": "data"}`, `{"value_1":true,"value_2":"data"}`},
		{"garbage words", `{"value_1": true, SHOULD_NOT_EXIST "value_2": "data" AAAA }`, `{"value_1":true,"value_2":"data"}`},
		{"truncated", `{"key": "value"`, `{"key":"value"}`},
		{"truncated nested", `{"nested": {"key": "value"`, `{"nested":{"key":"value"}}`},
		{"truncated array value", `{"items": [1, 2, 3`, `{"items":[1,2,3]}`},
		{"array closed by brace", `{foo: [}`, `{"foo":[]}`},
		{"unquoted keys", `{a:1,'b':'x'}`, `{"a":1,"b":"x"}`},
		{"stray colon before key", `{: "a": 1}`, `{"a":1}`},
		{"empty key before spaced colon", `{"" : true, "key2": "value2"}`, `{"":true,"key2":"value2"}`},
		{"stray comma value", `{"a": , "b": 1}`, `{"a":null,"b":1}`},
		{"value at end of input", `{"key":`, `{"key":""}`},
		{"key without value", `{"key": "value", "other"`, `{"key":"value"}`},
		{"doubled quotes", `{""answer"":[{""traits"":''Female aged 60+'',""answer1"":""5""}]}`, `{"answer":[{"traits":"Female aged 60+","answer1":"5"}]}`},
		{"array continued under a key", `{"a": [1, 2], [3, 4]}`, `{"a":[1,2,3,4]}`},
		{"nested array continued under a key", `{"a": [1], [[2, 3]]}`, `{"a":[1,2,3]}`},
		{"members after closing brace", `{"a": 1}, "b": 2`, `{"a":1,"b":2}`},
		{"big integer", `{"key": 12345678901234567890}`, `{"key":12345678901234567890}`},
	})
}

func TestParseArray(t *testing.T) {
	runCases(t, []repairCase{
		{"empty", `[]`, `[]`},
		{"unclosed", `[`, `[]`},
		{"numbers", `[1, 2, 3, 4]`, `[1,2,3,4]`},
		{"nested unclosed", "[[1\n\n]", `[[1]]`},
		{"broken object", `[{]`, `[]`},
		{"lone quote", `["`, `[]`},
		{"trailing comma", `[1,2,3,]`, `[1,2,3]`},
		{"truncated after comma", `[1, 2, 3,`, `[1,2,3]`},
		{"truncated", `[1,2,3`, `[1,2,3]`},
		{"ellipsis at end", `[1, 2, 3, ...]`, `[1,2,3]`},
		{"ellipsis in middle", `[1, 2, ... , 3]`, `[1,2,3]`},
		{"quoted ellipsis kept", `[1, 2, '...', 3]`, `[1,2,"...",3]`},
		{"literals then ellipsis", `[true, false, null, ...]`, `[true,false,null]`},
		{"missing commas", `["a" "b" "c" 1`, `["a","b","c",1]`},
		{"missing commas in value", `{"key": ["value" "value1" "value2"]}`, `{"key":["value","value1","value2"]}`},
		{"object missing opening brace", `["key":"value"}]`, `[{"key":"value"}]`},
		{"duplicate key starts new object", `[{"key": "value", "key"`, `[{"key":"value"}]`},
		{"duplicate key with value", `[{"a": 1, "a": 2}]`, `[{"a":1},{"a":2}]`},
		{"extra closing brace", `[{"a": 1}}, {"b": 2}]`, `[{"a":1},{"b":2}]`},
		{"object closed by bracket", `[{"a": 1 ]`, `[{"a":1}]`},
		{"item missing opening quote", `["value1" value2", "value3"]`, `["value1","value2","value3"]`},
		{"unquoted trailing item", `{"bad_one":["Lorem Ipsum", "consectetur" comment" ], "good_one":[ "elit", "sed", "tempor"]}`, `{"bad_one":["Lorem Ipsum","consectetur","comment"],"good_one":["elit","sed","tempor"]}`},
		{"unquoted item before bracket", `{"bad_one": ["Lorem Ipsum","consectetur" comment],"good_one": ["elit","sed","tempor"]}`, `{"bad_one":["Lorem Ipsum","consectetur","comment"],"good_one":["elit","sed","tempor"]}`},
		{"nested truncated", `[[1, 2], [3, 4`, `[[1,2],[3,4]]`},
		{"truncated strings", `{"employees":["John", "Anna",`, `{"employees":["John","Anna"]}`},
		{"identifiers", `[undefined, None]`, `[null,null]`},
	})
}

func TestParseString(t *testing.T) {
	runCases(t, []repairCase{
		{"inner quote", `{"foo":"abc"def"}`, `{"foo":"abc\"def"}`},
		{"inner quote before next key", `{"key": "v"alue", "key2": "value2"}`, `{"key":"v\"alue","key2":"value2"}`},
		{"quoted words in array item", `["lorem "ipsum" sic"]`, `["lorem \"ipsum\" sic"]`},
		{"quoted words in value", `{"comment": "lorem, "ipsum" sic "tamet". To improve"}`, `{"comment":"lorem, \"ipsum\" sic \"tamet\". To improve"}`},
		{"quoted url", `{ "content": "[LINK]("https://google.com")" }`, `{"content":"[LINK](\"https://google.com\")"}`},
		{"unclosed paren", `{ "content": "[LINK](" }`, `{"content":"[LINK]("}`},
		{"quotes inside key", `{"k"e"y": "value"}`, `{"k\"e\"y":"value"}`},
		{"single quotes", `{'key': 'value'}`, `{"key":"value"}`},
		{"curly quotes", `{"key": “curly”}`, `{"key":"curly"}`},
		{"unicode escape", `{"key": "value\u263a"}`, `{"key":"value☺"}`},
		{"hex escape", `{"key": "valu\x41e"}`, `{"key":"valuAe"}`},
		{"surrogate pair", `{"k": "\ud83d\ude00"}`, `{"k":"😀"}`},
		{"unpaired surrogate", `{"k": "\ud83d"}`, `{"k":"` + "�" + `"}`},
		{"unknown escape", `{"key": "a\qb"}`, `{"key":"aqb"}`},
		{"escaped newline", `{"key": "value\nvalue"}`, `{"key":"value\nvalue"}`},
		{"raw tab", "{\"k\": \"a\tb\"}", `{"k":"a\tb"}`},
		{"newline before close", "{\n \"name\": \"John\\n\n}", `{"name":"John"}`},
		{"escape then brace", `{"incomplete": "text\n}`, `{"incomplete":"text"}`},
		{"trailing backslash", `{"key": "val\`, `{"key":"val\\"}`},
		{"unclosed value trimmed", `{"key": "value   `, `{"key":"value"}`},
		{"unquoted value", `{"key": value , }`, `{"key":"value"}`},
		{"word starting like a literal", `{"key": nullable}`, `{"key":"nullable"}`},
		{"nan", `{"key": NaN}`, `{"key":null}`},
		{"negative infinity", `{"key": -Infinity}`, `{"key":null}`},
		{"number followed by letters", `{"key": 1notanumber}`, `{"key":"1notanumber"}`},
	})
}

func TestParseNumber(t *testing.T) {
	runCases(t, []repairCase{
		{"addition", `{"n":1+3}`, `{"n":4}`},
		{"division by zero", `{"n":1/0}`, `{"n":null}`},
		{"fraction kept", `{"key":1/3}`, `{"key":"1/3"}`},
		{"grouping and modulo", `{"key": (1+2)*3, "m": 10%3}`, `{"key":9,"m":1}`},
		{"normalization", `[.5, 1., +1, 1_000]`, `[0.5,1,1,1000]`},
		{"localized number", `{"key": 105,12}`, `{"key":"105,12"}`},
		{"version", `{"version": 1.2.3}`, `{"version":"1.2.3"}`},
		{"exponent", `{"key": 1e10}`, `{"key":10000000000}`},
		{"dangling exponent", `{"key": 2e}`, `{"key":2}`},
		{"negative", `[-1, -0.5]`, `[-1,-0.5]`},
		{"lone minus", `[-]`, `[]`},
		{"negative zero", `[-0., -0.0]`, `[0,0]`},
	})
}

func TestParseLiteral(t *testing.T) {
	runCases(t, []repairCase{
		{"mixed case", `{"key": TRUE, "key2": False, "key3": Null}`, `{"key":true,"key2":false,"key3":null}`},
		{"in array", `[true, false, null]`, `[true,false,null]`},
	})
}

func TestParseComment(t *testing.T) {
	runCases(t, []repairCase{
		{"block and line", "/*c*/{a:1 //tail\n}", `{"a":1}`},
		{"hash after value", "{\"key\": \"value\" # comment\n}", `{"key":"value"}`},
		{"line comment in array", "[1, 2 // two\n, 3]", `[1,2,3]`},
		{"block comment between members", `{"a": 1 /* c */, "b": 2}`, `{"a":1,"b":2}`},
		{"unclosed block comment", `{"a": 1 /* c`, `{"a":1}`},
		{"only a comment", `// nothing here`, `null`},
	})
}

func TestTopLevel(t *testing.T) {
	runCases(t, []repairCase{
		{"empty input", ``, `null`},
		{"whitespace", "  \n ", `null`},
		{"stray brace", `}`, `null`},
		{"stray bracket", `]`, `null`},
		{"bare word", `hello`, `null`},
		{"array then object", `[]{}`, `[[],{}]`},
		{"three values", `{}[]{}`, `[{},[],{}]`},
		{"object then array", `{}[]`, `[{},[]]`},
		{"object then array with literal", `{"key":"value"}[1,2,3,True]`, `[{"key":"value"},[1,2,3,true]]`},
		{"same shape replaces", `[{"key":"value"}][{"key":"value_after"}]`, `[{"key":"value_after"}]`},
		{"same shape objects", `{"k":1}{"k":2}`, `{"k":2}`},
		{"text around value", `Here you go: {"a": 1} hope it helps`, `{"a":1}`},
	})
}

func TestValidJSONUnchanged(t *testing.T) {
	inputs := []string{
		`{"name":"John","age":30,"city":"New York"}`,
		`{"employees":["John","Anna","Peter"]}`,
		`{"key":"value:value"}`,
		`{"text":"The quick brown fox,"}`,
		`{"text":"The quick brown fox won't jump"}`,
		`{"key":""}`,
		`{"key1":{"key2":[1,2,3]}}`,
		`{"data":"item1,item2,item3"}`,
		`{"key":"Lorem \"ipsum\" s,"}`,
		`["lorem \"ipsum\" sic"]`,
		`{"中文":"测试","emoji":"😀🎉"}`,
		`[[1,2],[3,4]]`,
		`[{"arr":[1,2,3]}]`,
		`{"a":true,"b":false,"c":null,"d":-1.5}`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once := repair(in, engine.Options{})
			assert.Equal(t, in, once)
			assert.Equal(t, once, repair(once, engine.Options{}))
		})
	}
}

func TestNeverFails(t *testing.T) {
	seeds := []string{
		`{"key": "v"alu,e", "key2": "value2"}`,
		`[{"key": "value", COMMENT "notes": "lorem \"ipsum\", sic." }]`,
		`{"a": [1, {"b": 'x', c: [true, nul`,
		"```json\n{\"a\": 1}\n```",
		`{"n": (1+2, "m": 1e, "o": --3}`,
		`["a", 'b', “c”, d, 1.2.3, /* x */ 4 // y`,
		"\x00\x01{\x02\"a\x1f\": \"\x7f\"}",
		`{"a":"b\u12`,
		`{{{{[[[["""'''`,
		`:,:,]}{[`,
	}
	for _, seed := range seeds {
		runes := []rune(seed)
		for n := 0; n <= len(runes); n++ {
			in := string(runes[:n])
			for _, opts := range []engine.Options{{}, {StreamStable: true}, {Strict: true, Logging: true}} {
				out := repair(in, opts)
				require.True(t, json.Valid([]byte(out)), "input %q produced invalid JSON %q", in, out)
			}
		}
	}
}

func TestStreamStable(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		stable string
		plain  string
	}{
		{"trailing backslash", `{"key": "val\`, `{"key":"val"}`, `{"key":"val\\"}`},
		{"trailing spaces", `{"key": "value   `, `{"key":"value   "}`, `{"key":"value"}`},
		{"complete input", `{"key": "value"}`, `{"key":"value"}`, `{"key":"value"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.stable, repair(tt.input, engine.Options{StreamStable: true}))
			assert.Equal(t, tt.plain, repair(tt.input, engine.Options{}))
		})
	}
}

func TestLogging(t *testing.T) {
	parser := engine.NewParser(engine.Options{Logging: true})
	result := parser.Parse(`{"a": 1,}`)
	require.NotEmpty(t, result.Log)
	for _, entry := range result.Log {
		assert.NotEmpty(t, entry.Text)
		assert.LessOrEqual(t, len([]rune(entry.Context)), 20)
	}

	quiet := engine.NewParser(engine.Options{}).Parse(`{"a": 1,}`)
	assert.Empty(t, quiet.Log)
	assert.Equal(t, result.Value.String(), quiet.Value.String())
}

func TestLoggingContextWindow(t *testing.T) {
	input := strings.Repeat("x", 30) + `{"a": 1 // note` + "\n}"
	result := engine.NewParser(engine.Options{Logging: true}).Parse(input)
	require.NotEmpty(t, result.Log)
	for _, entry := range result.Log {
		assert.Contains(t, input, entry.Context)
	}
}

func TestStrictViolations(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		typ     errors.ErrorType
		loc     []string
		wantOut string
	}{
		{"multiple values", `{"a":1}[1]`, errors.ErrorTypeMultipleValues, nil, `[{"a":1},[1]]`},
		{"missing colon", `{"key": "value", "key2" 123}`, errors.ErrorTypeMissingColon, []string{"key2"}, `{"key":"value","key2":23}`},
		{"empty value", `{"a": , "b": 1}`, errors.ErrorTypeEmptyValue, []string{"a"}, `{"a":null,"b":1}`},
		{"duplicate key", `[{"a": 1, "a": 2}]`, errors.ErrorTypeDuplicateKey, []string{"[0]", "a"}, `[{"a":1},{"a":2}]`},
		{"empty key", `{"": 1}`, errors.ErrorTypeEmptyKey, []string{""}, `{"":1}`},
		{"doubled quotes", `{"key": ""value""}`, errors.ErrorTypeDoubledQuotes, []string{"key"}, `{"key":"value"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strict := engine.NewParser(engine.Options{Strict: true}).Parse(tt.input)
			assert.Equal(t, tt.wantOut, strict.Value.String())
			require.True(t, strict.Violations.Has(tt.typ), "violations: %v", strict.Violations)

			for _, v := range strict.Violations {
				if v.Type == tt.typ {
					assert.Equal(t, tt.loc, v.Loc)
					break
				}
			}

			plain := engine.NewParser(engine.Options{}).Parse(tt.input)
			assert.Empty(t, plain.Violations)
			assert.Equal(t, strict.Value.String(), plain.Value.String())
		})
	}
}

func TestStrictCleanInput(t *testing.T) {
	result := engine.NewParser(engine.Options{Strict: true}).Parse(`{"a": [1, 2, {"b": "c"}]}`)
	assert.Empty(t, result.Violations)
	assert.True(t, result.Found)
}

func TestFound(t *testing.T) {
	assert.False(t, engine.NewParser(engine.Options{}).Parse("").Found)
	assert.False(t, engine.NewParser(engine.Options{}).Parse("no json here").Found)
	assert.True(t, engine.NewParser(engine.Options{}).Parse("[]").Found)
}
