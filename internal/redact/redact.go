package redact

import (
	"path/filepath"
	"regexp"
	"strings"
)

const placeholder = "[REDACTED]"

// DefaultPaths are glob patterns for files whose diff sections are always
// withheld from the prompt.
var DefaultPaths = []string{"**/.env", "**/.env.*", "**/*.pem", "**/*.key", "**/*secrets*"}

// secretPatterns are regex heuristics for common secret types.
var secretPatterns = []*regexp.Regexp{
	// Generic API keys (long hex/base64 strings after common key patterns)
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	regexp.MustCompile(`(?i)(aws[_-]?secret[_-]?access[_-]?key)\s*[:=]\s*["']?([A-Za-z0-9/+=]{40})["']?`),
	// Azure storage and service bus connection strings
	regexp.MustCompile(`(?i)(AccountKey|SharedAccessKey)=[A-Za-z0-9/+=]{20,}`),
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`),
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+|EC\s+|OPENSSH\s+)?PRIVATE KEY-----`),
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{20,}`),
	regexp.MustCompile(`sk-[A-Za-z0-9]{20,}`),
	regexp.MustCompile(`(?i)(key|secret|token)\s*[:=]\s*["']?[0-9a-f]{32,}["']?`),
}

// Stats counts what a redaction pass removed.
type Stats struct {
	Secrets int
	Files   []string
}

// Total is the number of individual redactions.
func (s Stats) Total() int { return s.Secrets + len(s.Files) }

// Secrets replaces detected secrets in text with [REDACTED] and reports how
// many matches were replaced.
func Secrets(text string) (string, int) {
	n := 0
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllStringFunc(result, func(string) string {
			n++
			return placeholder
		})
	}
	return result, n
}

// ShouldRedactPath checks if a file path matches any of the redaction path patterns.
func ShouldRedactPath(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, path)
		if err == nil && matched {
			return true
		}
		// "**/x" also matches x at any depth.
		cleanPattern := strings.TrimPrefix(pattern, "**/")
		if cleanPattern != pattern {
			matched, err = filepath.Match(cleanPattern, filepath.Base(path))
			if err == nil && matched {
				return true
			}
		}
	}
	return false
}

// Diff scrubs a unified diff. Sections for files matching paths keep their
// header line but lose their body; every other line is scanned for secrets.
func Diff(diff string, paths []string) (string, Stats) {
	var (
		stats    Stats
		out      strings.Builder
		dropping bool
	)
	lines := strings.SplitAfter(diff, "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, "diff --git ") {
			path := sectionPath(line)
			dropping = path != "" && ShouldRedactPath(path, paths)
			out.WriteString(line)
			if dropping {
				stats.Files = append(stats.Files, path)
				out.WriteString(placeholder + " (file content redacted by path policy)\n")
			}
			continue
		}
		if dropping {
			continue
		}
		clean, n := Secrets(line)
		stats.Secrets += n
		out.WriteString(clean)
	}
	return out.String(), stats
}

// sectionPath extracts the post-image path from a "diff --git a/x b/x" header.
func sectionPath(header string) string {
	header = strings.TrimRight(header, "\r\n")
	i := strings.LastIndex(header, " b/")
	if i < 0 {
		return ""
	}
	return header[i+3:]
}
