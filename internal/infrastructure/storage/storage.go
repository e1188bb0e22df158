// Package storage persists uploaded media either on local disk or in an
// S3-compatible bucket. Both back ends use the same relative object names.
package storage

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// Directory picks the top-level folder for an upload field.
func Directory(field string) string {
	switch field {
	case "video":
		return "videos"
	case "audio":
		return "audio"
	default:
		return "images"
	}
}

// ObjectName builds "<dir>/<field>-<uuid>-<base>" for an upload. The base is
// reduced to a safe file name so client paths never escape the directory.
func ObjectName(field, originalName string) string {
	return Directory(field) + "/" + field + "-" + uuid.NewString() + "-" + sanitize(originalName)
}

func sanitize(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	base := path.Base(name)

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	out := strings.TrimLeft(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}

// validKey reports whether key is a relative object name produced by
// ObjectName, so Remove cannot be pointed outside the media root.
func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return false
	}
	if path.Clean(key) != key {
		return false
	}
	dir, _, ok := strings.Cut(key, "/")
	return ok && (dir == "images" || dir == "videos" || dir == "audio")
}
