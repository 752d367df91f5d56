package playerjs

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Fixed names the extracted functions are renamed to.
const (
	NFunction   = "f"
	SigFunction = "s"
)

const (
	playerPathMarker  = `"jsUrl":"`
	nFunctionMarker   = `=function(a){var b=a.split(`
	sigFunctionMarker = `=function(a){a=a.split("")`
)

var stsPattern = regexp.MustCompile(`(?:signatureTimestamp|sts):(\d+)`)

// Snippet is the part of a player script loaded into the script engine.
type Snippet struct {
	PlayerPath string
	// Source defines NFunction, the helper object and SigFunction.
	Source string
	// SignatureTimestamp is sent with player requests; zero when the script has none.
	SignatureTimestamp int
}

// PlayerPath finds the player script path in a watch page.
func PlayerPath(watchPage string) (string, error) {
	i := strings.Index(watchPage, playerPathMarker)
	if i < 0 {
		return "", &AnchorError{What: "player path", Marker: playerPathMarker, Source: "watch page"}
	}
	rest := watchPage[i+len(playerPathMarker):]
	end := strings.IndexByte(rest, '"')
	if end <= 0 {
		return "", &AnchorError{What: "player path end", Marker: `"`, Source: "watch page"}
	}
	return strings.ReplaceAll(rest[:end], `\/`, "/"), nil
}

// Extract locates the n and signature functions in a player script by their
// structural markers, renames them to NFunction and SigFunction, and returns
// them with the helper object the signature function calls.
func Extract(js string) (*Snippet, error) {
	nFunc, err := extractNamed(js, nFunctionMarker, "n function", NFunction)
	if err != nil {
		return nil, err
	}
	sigFunc, err := extractNamed(js, sigFunctionMarker, "signature function", SigFunction)
	if err != nil {
		return nil, err
	}
	helper, err := extractHelper(js, sigFunc)
	if err != nil {
		return nil, err
	}

	snippet := &Snippet{
		Source: "var " + nFunc + ";\n" + helper + "\nvar " + sigFunc + ";\n",
	}
	if m := stsPattern.FindStringSubmatch(js); len(m) == 2 {
		snippet.SignatureTimestamp, _ = strconv.Atoi(m[1])
	}
	return snippet, nil
}

// extractNamed finds marker, walks back to the identifier it is assigned to
// and returns the whole assignment with the identifier replaced by rename.
func extractNamed(js, marker, what, rename string) (string, error) {
	at := strings.Index(js, marker)
	if at < 0 {
		return "", &AnchorError{What: what, Marker: marker, Source: "player script"}
	}
	start := at
	for start > 0 && isIdentByte(js[start-1]) {
		start--
	}
	if start == at {
		return "", &AnchorError{What: what + " name", Marker: marker, Source: "player script"}
	}
	body, err := matchBraces(js, at+len("=function(a)"))
	if err != nil {
		return "", &AnchorError{What: what + " body", Marker: "}", Source: "player script"}
	}
	return rename + "=function(a)" + body, nil
}

// extractHelper finds the object the signature function calls into,
// e.g. XY in `a=a.split("");XY.wa(a,0);...`, and returns its declaration.
func extractHelper(js, sigFunc string) (string, error) {
	i := strings.Index(sigFunc, `a=a.split("");`)
	if i < 0 {
		return "", &AnchorError{What: "helper call", Marker: `a=a.split("");`, Source: "player script"}
	}
	rest := sigFunc[i+len(`a=a.split("");`):]
	n := 0
	for n < len(rest) && isIdentByte(rest[n]) {
		n++
	}
	if n == 0 || n >= len(rest) || (rest[n] != '.' && rest[n] != '[') {
		return "", &AnchorError{What: "helper name", Marker: `a=a.split("");`, Source: "player script"}
	}
	name := rest[:n]

	marker := "var " + name + "={"
	at := strings.Index(js, marker)
	if at < 0 {
		return "", &AnchorError{What: "helper object", Marker: marker, Source: "player script"}
	}
	body, err := matchBraces(js, at+len(marker)-1)
	if err != nil {
		return "", &AnchorError{What: "helper object body", Marker: "}", Source: "player script"}
	}
	return "var " + name + "=" + body + ";", nil
}

// matchBraces returns js[open:end] where js[open] is '{' and end is just past
// its matching '}'. Braces inside string literals, regex literals and
// comments are ignored.
func matchBraces(js string, open int) (string, error) {
	if open >= len(js) || js[open] != '{' {
		return "", fmt.Errorf("expected '{' at offset %d", open)
	}
	var strChar byte
	pos := open + 1
	for depth := 1; depth > 0; pos++ {
		if pos >= len(js) {
			return "", errUnterminated
		}
		b := js[pos]
		if strChar != 0 {
			switch b {
			case '\\':
				pos++
			case strChar:
				strChar = 0
			}
			continue
		}
		switch b {
		case '{':
			depth++
		case '}':
			depth--
		case '`', '"', '\'':
			strChar = b
		case '/':
			end, ok := skipSlash(js, pos)
			if !ok {
				return "", errUnterminated
			}
			pos = end
		}
	}
	return js[open:pos], nil
}

var errUnterminated = errors.New("unterminated function body")

// skipSlash handles a '/' outside strings at js[pos]. For a comment or a regex
// literal it returns the offset of its last byte; for division it returns pos.
func skipSlash(js string, pos int) (int, bool) {
	if pos+1 < len(js) {
		switch js[pos+1] {
		case '/':
			nl := strings.IndexByte(js[pos:], '\n')
			if nl < 0 {
				return 0, false
			}
			return pos + nl, true
		case '*':
			end := strings.Index(js[pos+2:], "*/")
			if end < 0 {
				return 0, false
			}
			return pos + 2 + end + 1, true
		}
	}
	if !regexAllowed(js, pos) {
		return pos, true
	}
	inClass := false
	for i := pos + 1; i < len(js); i++ {
		switch js[i] {
		case '\\':
			i++
		case '\n':
			return 0, false
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				return i, true
			}
		}
	}
	return 0, false
}

// regexAllowed reports whether a '/' at pos starts a regex literal, judged by
// the previous significant byte. After an operand it is a division.
func regexAllowed(js string, pos int) bool {
	i := pos - 1
	for i >= 0 && (js[i] == ' ' || js[i] == '\t' || js[i] == '\n' || js[i] == '\r') {
		i--
	}
	if i < 0 {
		return true
	}
	if isIdentByte(js[i]) {
		return strings.HasSuffix(js[:i+1], "return") || strings.HasSuffix(js[:i+1], "typeof")
	}
	return strings.IndexByte("(,=:[!&|?{};+-*%<>~^", js[i]) >= 0
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
