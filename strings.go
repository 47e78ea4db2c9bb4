package wiregen

import (
	"bytes"
	"fmt"
	"unicode"
	"unicode/utf8"
)

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return fmt.Sprintf("%c%s", unicode.ToUpper(r), s[size:])
}

// symbolName turns a schema identifier into an exported Go symbol name,
// eg. user_id -> UserId.
func symbolName(s string) string {
	return capitalize(toUpperAfterAny(s, ".-_ "))
}

// varName turns a schema identifier into an unexported Go variable name,
// eg. user_id -> userId.
func varName(s string) string {
	n := toUpperAfterAny(s, ".-_ ")
	r, size := utf8.DecodeRuneInString(n)
	return fmt.Sprintf("%c%s", unicode.ToLower(r), n[size:])
}

func toUpperAfterAny(s string, chars string) string {
	var buf bytes.Buffer
	var upnext bool
OuterLoop:
	for _, r := range s {
		for _, c := range chars {
			if r == c {
				upnext = true
				continue OuterLoop
			}
		}
		if upnext {
			_, _ = buf.WriteRune(unicode.ToUpper(r))
			upnext = false
			continue
		}
		_, _ = buf.WriteRune(r)
	}
	return buf.String()
}

// isIdent reports whether s is a plain identifier: letters, digits and
// underscores, not starting with a digit.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case unicode.IsDigit(r):
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
