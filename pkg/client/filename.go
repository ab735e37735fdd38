package client

import (
	"fmt"
	"mime"
	"path"
	"strings"
)

// DefaultDownloadName is used when a download carries no usable file name.
const DefaultDownloadName = "attachment"

// FilenameFromContentDisposition extracts the file name from a
// Content-Disposition header value. Quoted, unquoted and RFC 5987
// (filename*) forms are accepted; anything else yields DefaultDownloadName.
func FilenameFromContentDisposition(header string) string {
	if strings.TrimSpace(header) == "" {
		return DefaultDownloadName
	}

	// mime decodes filename* into filename.
	if _, params, err := mime.ParseMediaType(header); err == nil {
		if name := cleanName(params["filename"]); name != "" {
			return name
		}
	}

	// Lenient fallback for headers mime rejects, e.g. unquoted names with spaces.
	for _, part := range strings.Split(header, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(k), "filename") {
			continue
		}
		if name := cleanName(strings.Trim(strings.TrimSpace(v), `"`)); name != "" {
			return name
		}
	}
	return DefaultDownloadName
}

func cleanName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}

// FormatSize renders a byte count for display. Sizes from 1 MiB up stay in
// MB, e.g. "1.5 MB" or "2048.0 MB".
func FormatSize(n int64) string {
	switch {
	case n < 1<<10:
		return fmt.Sprintf("%d B", n)
	case n < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	}
}
