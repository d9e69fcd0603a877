package services

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"mediabox/models"

	"golang.org/x/text/unicode/norm"
)

var weekdayNames = map[string]string{
	"Monday":    "Senin",
	"Tuesday":   "Selasa",
	"Wednesday": "Rabu",
	"Thursday":  "Kamis",
	"Friday":    "Jumat",
	"Saturday":  "Sabtu",
	"Sunday":    "Minggu",
}

// LocalizeWeekday maps an English weekday name to Indonesian. Unknown input is
// returned as is.
func LocalizeWeekday(name string) string {
	if id, ok := weekdayNames[name]; ok {
		return id
	}
	return name
}

// DayFolder is the date bucket of t, e.g. 2024-05-01_Rabu.
func DayFolder(t time.Time) string {
	return t.Format("2006-01-02") + "_" + LocalizeWeekday(t.Weekday().String())
}

// ReadableDate formats t for display, e.g. "Rabu, 2024-05-01 • 14:30".
func ReadableDate(t time.Time) string {
	return LocalizeWeekday(t.Weekday().String()) + ", " + t.Format("2006-01-02") + " • " + t.Format("15:04")
}

func ClassifyMediaType(hint string) string {
	if hint == "" {
		hint = "gambar"
	}
	if strings.Contains(strings.ToLower(hint), "vid") {
		return models.MainVideo
	}
	return models.MainImage
}

// AllowedFile reports whether the extension after the last dot is in allowed.
// Names without a dot are never allowed.
func AllowedFile(filename string, allowed []string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	ext := strings.ToLower(filename[idx+1:])
	for _, a := range allowed {
		if strings.TrimPrefix(strings.ToLower(strings.TrimSpace(a)), ".") == ext {
			return true
		}
	}
	return false
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces name to a flat ASCII filename safe to use as the
// last storage path segment. The result may be empty.
func SanitizeFilename(name string) string {
	name = stripNonASCII(norm.NFKD.String(name))
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

func stripNonASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
}

// StoragePath joins the three path segments. Uploads that share all three
// overwrite each other in the object store.
func StoragePath(main string, folder string, name string) string {
	return main + "/" + folder + "/" + name
}
