package stream

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/famomatic/yttui/internal/playerjs"
	"github.com/famomatic/yttui/internal/types"
)

// Caller invokes a loaded script function. *playerjs.Script implements it.
type Caller interface {
	Call(name, arg string) (string, error)
}

const nMarker = "&n="

// Decrypter undoes both URL obfuscation schemes for the formats of one video.
// n results are memoized since every format of a video carries the same token.
type Decrypter struct {
	script Caller
	n      map[string]string
}

func NewDecrypter(script Caller) *Decrypter {
	return &Decrypter{script: script, n: make(map[string]string)}
}

// SubstituteN replaces the n token in rawURL with its decrypted value.
// Everything outside the token is left byte-identical; a URL without a
// token is returned unchanged.
func (d *Decrypter) SubstituteN(rawURL string) (string, error) {
	i := strings.Index(rawURL, nMarker)
	if i < 0 {
		return rawURL, nil
	}
	start := i + len(nMarker)
	end := len(rawURL)
	if j := strings.IndexByte(rawURL[start:], '&'); j >= 0 {
		end = start + j
	}
	token := rawURL[start:end]

	out, ok := d.n[token]
	if !ok {
		var err error
		out, err = d.script.Call(playerjs.NFunction, token)
		if err != nil {
			return "", fmt.Errorf("failed to solve n challenge: %w", err)
		}
		d.n[token] = out
	}
	return rawURL[:start] + out + rawURL[end:], nil
}

// DecodeCipher reassembles a signature cipher (s, sp and url fields) into a
// playable URL. The signature function is called with a string whose runes
// are their own positions; each rune of its output indexes the signature.
func (d *Decrypter) DecodeCipher(cipher string) (string, error) {
	fields := make(map[string]string, 3)
	for _, part := range strings.Split(cipher, "&") {
		k, v, _ := strings.Cut(part, "=")
		fields[k] = v
	}

	sig, err := url.PathUnescape(fields["s"])
	if err != nil {
		return "", fmt.Errorf("%w: signature cipher: bad s: %w", types.ErrUnparseable, err)
	}
	target, err := unescapeTwice(fields["url"])
	if err != nil {
		return "", fmt.Errorf("%w: signature cipher: bad url: %w", types.ErrUnparseable, err)
	}
	if sig == "" || target == "" {
		return "", fmt.Errorf("%w: signature cipher without s or url", types.ErrUnparseable)
	}
	sp := "signature"
	if v, ok := fields["sp"]; ok && v != "" {
		if sp, err = url.PathUnescape(v); err != nil {
			return "", fmt.Errorf("%w: signature cipher: bad sp: %w", types.ErrUnparseable, err)
		}
	}

	sigRunes := []rune(sig)
	positions := make([]rune, len(sigRunes))
	for i := range positions {
		positions[i] = rune(i)
	}
	order, err := d.script.Call(playerjs.SigFunction, string(positions))
	if err != nil {
		return "", fmt.Errorf("failed to descramble signature: %w", err)
	}

	var b strings.Builder
	for _, r := range order {
		if int(r) >= len(sigRunes) {
			return "", &playerjs.ScriptError{
				Function: playerjs.SigFunction,
				Err:      fmt.Errorf("index %d out of range for signature of length %d", r, len(sigRunes)),
			}
		}
		b.WriteRune(sigRunes[r])
	}
	return target + "&" + sp + "=" + b.String(), nil
}

func unescapeTwice(s string) (string, error) {
	once, err := url.PathUnescape(s)
	if err != nil {
		return "", err
	}
	return url.PathUnescape(once)
}
