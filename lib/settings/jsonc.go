package settings

import (
	"regexp"
	"strings"
)

type Options struct {
	Whitespace     bool
	TrailingCommas bool
}

const (
	notInsideComment = iota
	singleComment
	multiComment
)

var nonSpace = regexp.MustCompile(`\S`)

func isEscaped(jsonString string, quotePosition int) bool {
	backslashCount := 0
	for index := quotePosition - 1; index >= 0 && jsonString[index] == '\\'; index-- {
		backslashCount++
	}
	return backslashCount%2 == 1
}

// StripWithOptions removes // and /* */ comments from a settings file and,
// when asked, the trailing commas JSON does not allow. With Whitespace set
// stripped text is blanked instead of cut so error offsets stay valid.
func StripWithOptions(jsonString string, options *Options) string {
	if options == nil {
		options = &Options{Whitespace: true}
	}
	blank := func(s string) string {
		if options.Whitespace {
			return nonSpace.ReplaceAllString(s, " ")
		}
		return ""
	}

	insideString := false
	comment := notInsideComment
	offset := 0
	commaIndex := -1
	var result, buffer strings.Builder

	for index := 0; index < len(jsonString); index++ {
		current := jsonString[index]
		var next byte
		if index+1 < len(jsonString) {
			next = jsonString[index+1]
		}

		if comment == notInsideComment && current == '"' && !isEscaped(jsonString, index) {
			insideString = !insideString
		}
		if insideString {
			continue
		}

		switch {
		case comment == notInsideComment && current == '/' && next == '/':
			buffer.WriteString(jsonString[offset:index])
			offset = index
			comment = singleComment
			index++
		case comment == singleComment && current == '\r' && next == '\n':
			index++
			comment = notInsideComment
			buffer.WriteString(blank(jsonString[offset:index]))
			offset = index
		case comment == singleComment && current == '\n':
			comment = notInsideComment
			buffer.WriteString(blank(jsonString[offset:index]))
			offset = index
		case comment == notInsideComment && current == '/' && next == '*':
			buffer.WriteString(jsonString[offset:index])
			offset = index
			comment = multiComment
			index++
		case comment == multiComment && current == '*' && next == '/':
			index++
			comment = notInsideComment
			buffer.WriteString(blank(jsonString[offset : index+1]))
			offset = index + 1
		case options.TrailingCommas && comment == notInsideComment:
			if commaIndex != -1 {
				if current == '}' || current == ']' {
					buffer.WriteString(jsonString[offset:index])
					pending := buffer.String()
					result.WriteString(blank(pending[:1]))
					result.WriteString(pending[1:])
					buffer.Reset()
					offset = index
					commaIndex = -1
				} else if current != ' ' && current != '\t' && current != '\r' && current != '\n' {
					buffer.WriteString(jsonString[offset:index])
					offset = index
					commaIndex = -1
				}
			} else if current == ',' {
				result.WriteString(buffer.String())
				result.WriteString(jsonString[offset:index])
				buffer.Reset()
				offset = index
				commaIndex = index
			}
		}
	}

	end := jsonString[offset:]
	if comment != notInsideComment {
		end = blank(end)
	}
	return result.String() + buffer.String() + end
}
