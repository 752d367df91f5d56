package cookies

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/renameio/v2"
)

const header = "# Netscape HTTP Cookie File\n"

// ParseNetscape parses a Netscape cookies.txt format.
// Format: domain flag path secure expiration name value
func ParseNetscape(r io.Reader) ([]*http.Cookie, error) {
	var cookies []*http.Cookie
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		httpOnly := false
		if rest, ok := strings.CutPrefix(line, "#HttpOnly_"); ok {
			line, httpOnly = rest, true
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "\t")
		if len(parts) < 7 {
			continue
		}

		expiresUnix, _ := strconv.ParseInt(parts[4], 10, 64)
		cookie := &http.Cookie{
			Name:     parts[5],
			Value:    parts[6],
			Domain:   parts[0],
			Path:     parts[2],
			Secure:   strings.EqualFold(parts[3], "TRUE"),
			HttpOnly: httpOnly,
		}
		if expiresUnix > 0 {
			cookie.Expires = time.Unix(expiresUnix, 0)
		}
		cookies = append(cookies, cookie)
	}

	return cookies, scanner.Err()
}

// WriteNetscape writes cookies in Netscape cookies.txt format for domain.
// Cookies returned by a jar carry no domain, so domain is used for every line.
func WriteNetscape(w io.Writer, domain string, cookies []*http.Cookie) error {
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	for _, c := range cookies {
		d := c.Domain
		if d == "" {
			d = domain
		}
		path := c.Path
		if path == "" {
			path = "/"
		}
		var expires int64
		if !c.Expires.IsZero() {
			expires = c.Expires.Unix()
		}
		prefix := ""
		if c.HttpOnly {
			prefix = "#HttpOnly_"
		}
		_, err := fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			prefix, d, boolField(strings.HasPrefix(d, ".")), path, boolField(c.Secure), expires, c.Name, c.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

func boolField(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// Jar is the part of http.CookieJar used for persistence.
type Jar interface {
	SetCookies(u *url.URL, cookies []*http.Cookie)
	Cookies(u *url.URL) []*http.Cookie
}

// Load seeds jar for u from the file at path. A missing file is not an error.
func Load(path string, jar Jar, u *url.URL) (int, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to open cookies: %w", err)
	}
	defer f.Close()

	parsed, err := ParseNetscape(f)
	if err != nil {
		return 0, fmt.Errorf("failed to parse cookies: %w", err)
	}
	jar.SetCookies(u, parsed)
	return len(parsed), nil
}

// Save atomically writes the jar's cookies for u to path.
func Save(path string, jar Jar, u *url.URL) error {
	var buf bytes.Buffer
	if err := WriteNetscape(&buf, "."+strings.TrimPrefix(u.Hostname(), "www."), jar.Cookies(u)); err != nil {
		return err
	}
	return renameio.WriteFile(path, buf.Bytes(), 0o600)
}
