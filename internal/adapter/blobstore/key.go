// Package blobstore holds the pieces shared by the object store adapters:
// object key construction, file name sanitizing and content type detection.
package blobstore

import (
	"net/url"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

const (
	maxNameBytes = 128
	fallbackName = "document"
)

// SanitizeName reduces a client supplied file name to a single safe path
// segment. The result is never empty.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	if name == "." || name == "/" {
		name = ""
	}

	var b strings.Builder
	b.Grow(len(name))
	prevUnderscore := false
	for _, r := range name {
		switch {
		case r == utf8.RuneError, unicode.IsSpace(r), unicode.IsControl(r), strings.ContainsRune(`/\:*?"<>|#%`, r):
			if !prevUnderscore {
				b.WriteByte('_')
			}
			prevUnderscore = true
		default:
			b.WriteRune(r)
			prevUnderscore = r == '_'
		}
	}

	out := strings.TrimLeft(b.String(), ".")
	out = truncateUTF8(out, maxNameBytes)
	if strings.Trim(out, "_") == "" {
		return fallbackName
	}
	return out
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// ObjectKey returns "<namespace>/<unix nanos>-<sanitized name>".
func ObjectKey(namespace, name string, at time.Time) string {
	ns := strings.Trim(namespace, "/")
	stem := strconv.FormatInt(at.UnixNano(), 10) + "-" + SanitizeName(name)
	if ns == "" {
		return stem
	}
	return ns + "/" + stem
}

// Clock hands out strictly increasing timestamps, so keys built in the same
// nanosecond still differ.
type Clock struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewClock returns a Clock backed by time.Now.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// Now returns the current time, bumped by a nanosecond if it does not advance
// past the previous value.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now()
	if !t.After(c.last) {
		t = c.last.Add(time.Nanosecond)
	}
	c.last = t
	return t
}

// Key builds an ObjectKey stamped with the clock's next timestamp.
func (c *Clock) Key(namespace, name string) string {
	return ObjectKey(namespace, name, c.Now())
}

// ContentType sniffs payload. Octet-stream results fall back to the file
// extension.
func ContentType(payload []byte, name string) string {
	mt := mimetype.Detect(payload)
	if mt.Is("application/octet-stream") {
		if byExt := extensionType(name); byExt != "" {
			return byExt
		}
	}
	return mt.String()
}

func extensionType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return ""
	}
}

// JoinURL appends key to base, escaping each key segment.
func JoinURL(base, key string) string {
	segs := strings.Split(key, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segs, "/")
}
