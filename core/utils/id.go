package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/gosimple/slug"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateID returns a short URL-safe identifier for share links.
func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 10)
	if err != nil {
		return ""
	}
	return id
}

// GenerateEventID builds a readable event id from the event name, e.g.
// "team-offsite-Xq3fTz9aKp". Falls back to a bare nanoid for empty names.
func GenerateEventID(eventName string) string {
	s := slug.Make(eventName)
	if len(s) > 40 {
		s = s[:40]
	}
	id := GenerateID()
	if s == "" {
		return id
	}
	return fmt.Sprintf("%s-%s", s, id)
}

// GenerateRandomString generates a cryptographically secure random string.
func GenerateRandomString(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		id, _ := gonanoid.Generate(idAlphabet, length)
		return id
	}
	return base64.URLEncoding.EncodeToString(bytes)[:length]
}
