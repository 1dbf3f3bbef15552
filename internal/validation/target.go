package validation

import (
	"fmt"
	"net/url"
	"strings"
)

const maxURLLength = 2048

// TargetKind says how a place or document target is opened.
type TargetKind int

const (
	TargetPath TargetKind = iota
	TargetURL
)

var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"file":  true,
	"ftp":   false,
}

// CheckTarget classifies target as a URL or a filesystem path and returns
// the normalized form to hand to the opener.
func CheckTarget(target string) (TargetKind, string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return 0, "", fmt.Errorf("target cannot be empty")
	}

	if i := strings.Index(target, "://"); i > 0 {
		u, err := checkURL(target)
		if err != nil {
			return 0, "", err
		}
		return TargetURL, u, nil
	}

	path, err := ValidatePath(target)
	if err != nil {
		return 0, "", err
	}
	return TargetPath, path, nil
}

func checkURL(raw string) (string, error) {
	if len(raw) > maxURLLength {
		return "", fmt.Errorf("URL too long (max %d characters)", maxURLLength)
	}
	if strings.ContainsAny(raw, "<>\"'`") {
		return "", fmt.Errorf("URL contains invalid characters")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}
	if !allowedSchemes[strings.ToLower(u.Scheme)] {
		return "", fmt.Errorf("URL scheme %q is not allowed", u.Scheme)
	}
	if u.Scheme != "file" && u.Host == "" {
		return "", fmt.Errorf("URL must have a hostname")
	}
	return u.String(), nil
}
