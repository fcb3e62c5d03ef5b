// Package compose derives plus-tag addresses from the primary email and
// performs the copy action.
package compose

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// IsValid reports whether email looks like an address. The check is lenient
// and only gates copying.
func IsValid(email string) bool {
	return emailPattern.MatchString(email)
}

// AutoTag is the tag used when none is selected: the epoch milliseconds of at.
func AutoTag(at time.Time) string {
	return strconv.FormatInt(at.UnixMilli(), 10)
}

// DeriveAt splices tag into primary after the local part. An empty tag is
// replaced by AutoTag(at). Only the first "@" splits; without one the tag is
// appended so the preview still shows it.
func DeriveAt(primary, tag string, at time.Time) string {
	if tag == "" {
		tag = AutoTag(at)
	}
	local, domain, ok := strings.Cut(primary, "@")
	if !ok {
		return primary + "+" + tag
	}
	return local + "+" + tag + "@" + domain
}

// Derive is DeriveAt at the current time.
func Derive(primary, tag string) string {
	return DeriveAt(primary, tag, time.Now())
}
