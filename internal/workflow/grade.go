package workflow

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/noah-isme/lessonplan-api/internal/models"
)

var gradeLabelPattern = regexp.MustCompile(`(?i)l[ớơo]p\s*(\d+)`)

// ParseGradeLabel extracts N from a label such as "Lớp 5".
func ParseGradeLabel(label string) (int64, bool) {
	match := gradeLabelPattern.FindStringSubmatch(strings.TrimSpace(label))
	if match == nil {
		return 0, false
	}
	grade, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil || grade <= 0 {
		return 0, false
	}
	return grade, true
}

// GradeForProfile prefers the numeric grade id and falls back to the label.
func GradeForProfile(profile models.Profile) (int64, bool) {
	if profile.GradeID != nil && *profile.GradeID > 0 {
		return *profile.GradeID, true
	}
	return ParseGradeLabel(profile.GradeLabel)
}
