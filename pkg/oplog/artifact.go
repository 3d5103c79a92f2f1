package oplog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// maxNameLen caps the sanitized description segment of artifact filenames.
const maxNameLen = 60

// writeArtifact serializes a finalized logger's buffer into one artifact
// file and returns its path. The caller guarantees the buffer is non-empty.
func (r *Registry) writeArtifact(l *Logger) (string, error) {
	name := artifactName(l, l.entries[0].Time, r.nextSeq(), r.ext)

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("creating artifact directory: %w", err)
	}

	path := filepath.Join(r.dir, name)
	if err := os.WriteFile(path, []byte(renderArtifact(l)), 0644); err != nil {
		return "", fmt.Errorf("writing artifact: %w", err)
	}
	return path, nil
}

// artifactName builds {timestamp}-{sequence}-{LEVEL}-{sanitized}[.partN].{ext}.
// The timestamp is the first entry's, at millisecond precision; the sequence
// disambiguates artifacts created within the same millisecond; LEVEL is the
// highest severity buffered.
func artifactName(l *Logger, first time.Time, seq int64, ext string) string {
	ts := first.UTC()
	stamp := fmt.Sprintf("%s%03d", ts.Format("20060102T150405"), ts.Nanosecond()/int(time.Millisecond))

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s-%04d-%s-%s", stamp, seq, maxLevel(l.entries), sanitizeName(l.name))
	if l.multipart {
		fmt.Fprintf(&sb, ".part%d", l.part)
	}
	sb.WriteByte('.')
	sb.WriteString(ext)
	return sb.String()
}

// maxLevel returns the highest severity present in the buffer.
func maxLevel(entries []Entry) Level {
	level := LevelDebug
	for _, e := range entries {
		if e.Level > level {
			level = e.Level
		}
	}
	return level
}

// sanitizeName lowercases the operation name and reduces it to a
// filesystem-safe slug.
func sanitizeName(name string) string {
	var sb strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.TrimRight(sb.String(), "-")
	if slug == "" {
		slug = "operation"
	}
	if len(slug) > maxNameLen {
		slug = slug[:maxNameLen]
	}
	return slug
}

// renderArtifact serializes the buffer as readable text, one entry per
// line, with a header identifying the record and its continuation links.
func renderArtifact(l *Logger) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# operation log: %s\n", l.name)
	if l.prevPart > 0 {
		fmt.Fprintf(&sb, "# continues part %d\n", l.prevPart)
	} else if l.multipart {
		fmt.Fprintf(&sb, "# continued in part %d\n", l.part+1)
	}
	sb.WriteByte('\n')

	for _, e := range l.entries {
		fmt.Fprintf(&sb, "%s %-5s %s", e.Time.UTC().Format("2006-01-02T15:04:05.000Z"), e.Level, e.Message)
		for _, k := range sortedKeys(e.Fields) {
			fmt.Fprintf(&sb, " %s=%v", k, e.Fields[k])
		}
		if e.Err != nil {
			fmt.Fprintf(&sb, " error=%q", e.Err.Error())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func sortedKeys(fields map[string]interface{}) []string {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
