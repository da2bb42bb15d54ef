// Package jsobject turns the embed player's inline script into a playlist Descriptor.
//
// Two decoders share one contract (script text in, Descriptor out): Normalize rewrites
// the script's object literals into JSON with a fixed list of substitutions, and Evaluate
// runs the script in a JavaScript VM. Normalize assumes the player's current script shape:
//
//	window.video = {...};
//	window.streams = [...];
//	window.masterPlaylist = {
//	    params: {'token': '...', 'expires': '...',},
//	    url: 'https://.../playlist/1?b=1',
//	}
//	window.canPlayFHD = true
package jsobject

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrNoAssignments means the script holds no window.<name> = ... statement.
	ErrNoAssignments = errors.New("no window assignments in script")

	// ErrMalformed means the rewritten or evaluated script did not yield a valid object.
	ErrMalformed = errors.New("malformed player script")
)

var (
	assignment   = regexp.MustCompile(`;?\s*window\.([A-Za-z_$][\w$]*)\s*=([^=])`)
	bareKey      = regexp.MustCompile(`([{,]\s*)([A-Za-z_$][\w$]*)(\s*:)`)
	trailingSeps = regexp.MustCompile(`[,;]\s*([}\]])`)
)

// Normalize rewrites the player script into a JSON object keyed by the assigned window
// properties. Substitutions, in order:
//
//  1. backslashes are dropped (`\/` becomes `/`);
//  2. every `window.name =` becomes `,"name":`, swallowing the previous statement's `;`;
//  3. single-quoted strings become double-quoted;
//  4. bare identifier keys after `{` or `,` are quoted;
//  5. `,` or `;` directly before `}` or `]` is removed, as is a trailing `;`;
//  6. the result is wrapped in braces.
//
// Steps 4 and 5 only touch code between string literals, so names such as
// "Love, Death: Robots" survive. Text before the first assignment is discarded. The output is not validated; Decode reports
// invalid JSON as ErrMalformed.
func Normalize(script string) (string, error) {
	s := strings.ReplaceAll(script, `\`, "")

	loc := assignment.FindStringIndex(s)
	if loc == nil {
		return "", ErrNoAssignments
	}
	s = s[loc[0]:]

	s = assignment.ReplaceAllString(s, `,"$1":$2`)
	s = strings.TrimPrefix(strings.TrimSpace(s), ",")
	s = rewriteCode(s, func(code string) string {
		code = bareKey.ReplaceAllString(code, `$1"$2"$3`)
		return trailingSeps.ReplaceAllString(code, "$1")
	})
	s = strings.TrimRight(s, "; \t\r\n")

	return "{" + strings.TrimSpace(s) + "}", nil
}

// rewriteCode applies fn to every stretch of s outside string literals and re-emits the
// literals double-quoted. An unterminated literal runs to the end of s.
func rewriteCode(s string, fn func(string) string) string {
	var (
		out   strings.Builder
		start int
	)

	for i := 0; i < len(s); i++ {
		quote := s[i]
		if quote != '"' && quote != '\'' {
			continue
		}

		out.WriteString(fn(s[start:i]))

		end := strings.IndexByte(s[i+1:], quote)
		if end < 0 {
			end = len(s)
		} else {
			end += i + 1
		}

		body := s[i+1 : end]
		if quote == '\'' {
			body = strings.ReplaceAll(body, `"`, `\"`)
		}
		out.WriteString(`"` + body + `"`)

		i = end
		start = end + 1
	}

	if start < len(s) {
		out.WriteString(fn(s[start:]))
	}

	return out.String()
}
