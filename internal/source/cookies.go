package source

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// loadCookies parses a Netscape-format cookies.txt file into http.Cookie
// values. Lines starting with # are comments; the #HttpOnly_ prefix on the
// domain field is recognized and stripped.
func loadCookies(path string) ([]*http.Cookie, error) {
	f, err := os.Open(path) //nolint:gosec // cookie path from trusted config
	if err != nil {
		return nil, fmt.Errorf("opening cookies file: %w", err)
	}
	defer f.Close()

	var cookies []*http.Cookie

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		httpOnly := false
		if rest, ok := strings.CutPrefix(line, "#HttpOnly_"); ok {
			httpOnly = true
			line = rest
		} else if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			return nil, fmt.Errorf("cookies file line %d: expected 7 tab-separated fields, got %d", lineNo, len(fields))
		}

		expires, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cookies file line %d: parsing expiry: %w", lineNo, err)
		}
		_ = expires // expiry enforced by the remote server, not replayed

		cookies = append(cookies, &http.Cookie{
			Domain:   fields[0],
			Path:     fields[2],
			Secure:   fields[3] == "TRUE",
			Name:     fields[5],
			Value:    fields[6],
			HttpOnly: httpOnly,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading cookies file: %w", err)
	}

	return cookies, nil
}
