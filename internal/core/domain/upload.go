package domain

import (
	"io"
	"mime"
	"path/filepath"
	"strings"
)

// AudioFile is one file handed to the upload port.
type AudioFile struct {
	// Name is the base file name sent in the multipart part.
	Name string

	// Size is the file size in bytes, used for logging only.
	Size int64

	// Body streams the file contents.
	Body io.Reader
}

// audioTypes maps common audio extensions to their MIME types. The
// platform MIME table is consulted for anything else.
var audioTypes = map[string]string{
	".aac":  "audio/aac",
	".aif":  "audio/aiff",
	".aiff": "audio/aiff",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".mp3":  "audio/mpeg",
	".oga":  "audio/ogg",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".wav":  "audio/wav",
	".weba": "audio/webm",
	".wma":  "audio/x-ms-wma",
}

// AudioContentType returns the audio MIME type for a file name, or an
// empty string if the file is not recognised as audio.
func AudioContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	if t, ok := audioTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); strings.HasPrefix(t, "audio/") {
		return t
	}
	return ""
}

// IsAudioFile returns true if the file name has an audio extension.
func IsAudioFile(name string) bool {
	return AudioContentType(name) != ""
}
