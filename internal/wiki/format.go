package wiki

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pkg/errors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("wiki").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*.tmpl"))

// FormatLong renders the full record, one "LABEL: value" line per present field.
func FormatLong(record Record) (string, error) {
	var buffer bytes.Buffer
	if err := templates.ExecuteTemplate(&buffer, string(record.Kind())+".tmpl", record); err != nil {
		return "", errors.Wrapf(err, "executing %s template", record.Kind())
	}
	return strings.TrimRight(buffer.String(), "\n"), nil
}

// FormatShort renders a single listing line.
func FormatShort(record Record) string {
	meta := record.Meta()
	line := fmt.Sprintf("• %s (%s)", strings.ToUpper(meta.Name), strings.ToUpper(meta.Franchise))
	if classifier := record.Classifier(); classifier != "" {
		line += " — " + strings.ToUpper(classifier)
	}
	return line
}

// FormatListing renders a titled short-form listing.
func FormatListing(title string, records []Record) string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, fmt.Sprintf("%s: %d %s FOUND", strings.ToUpper(title), len(records), plural(len(records), "RECORD")))
	for _, record := range records {
		lines = append(lines, FormatShort(record))
	}
	return strings.Join(lines, "\n")
}

// FormatHelp renders the directive reference with per-kind record counts.
func FormatHelp(counts map[Kind]int) string {
	var builder strings.Builder
	builder.WriteString("WEYLAND-YUTANI REFERENCE DATABASE\n")
	builder.WriteString("AVAILABLE DIRECTIVES:\n")
	fmt.Fprintf(&builder, "%-24s%s\n", "/WIKI <QUERY>", "SEARCH ALL RECORDS")
	for _, kind := range Kinds {
		count := counts[kind]
		fmt.Fprintf(&builder, "%-24s%s (%d %s)\n", "/"+strings.ToUpper(kind.Plural())+" [QUERY]", strings.ToUpper(kind.Plural()), count, plural(count, "RECORD"))
	}
	builder.WriteString("OMIT THE QUERY TO LIST EVERY RECORD OF A CATEGORY.")
	return builder.String()
}

func plural(count int, word string) string {
	if count == 1 {
		return word
	}
	return word + "S"
}
