package auth

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// AvatarURL derives the gravatar image for an email: 200px, pg rated,
// mystery-person fallback.
func AvatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}
