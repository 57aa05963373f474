// package formatter exports item lists to various formats (JSON, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/condoriano/internal/models"
	"github.com/desertthunder/condoriano/internal/shared"
)

// Format names an export format.
type Format string

const (
	JSON     Format = "json"
	CSV      Format = "csv"
	Markdown Format = "markdown"
	Text     Format = "txt"
)

// Formats lists the accepted --format values.
var Formats = []Format{JSON, CSV, Markdown, Text}

// ParseFormat accepts a format name or its common file extension ("md", "text").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	case "txt", "text":
		return Text, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string {
	if f == Markdown {
		return "md"
	}
	return string(f)
}

type listExport struct {
	Kind      models.ListKind `json:"kind"`
	Owner     string          `json:"owner"`
	Count     int             `json:"count"`
	Items     []string        `json:"items"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// Export renders list in format f.
func Export(list *models.ItemList, f Format) ([]byte, error) {
	switch f {
	case JSON:
		return ExportToJSON(list)
	case CSV:
		return ExportToCSV(list)
	case Markdown:
		return ExportToMarkdown(list)
	case Text:
		return ExportToText(list)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, f)
}

// ExportToJSON converts an ItemList to indented JSON with its key, count and items.
func ExportToJSON(list *models.ItemList) ([]byte, error) {
	export := listExport{
		Kind:  list.Key.Kind,
		Owner: list.Key.Owner,
		Count: list.Len(),
		Items: list.Items,
	}
	if export.Items == nil {
		export.Items = []string{}
	}
	if !list.UpdatedAt.IsZero() {
		export.UpdatedAt = &list.UpdatedAt
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal list: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToCSV converts an ItemList to CSV format with columns: Position, Item
func ExportToCSV(list *models.ItemList) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Position", "Item"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, item := range list.Items {
		if err := writer.Write([]string{strconv.Itoa(i + 1), item}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts an ItemList to a Markdown document with a numbered list
func ExportToMarkdown(list *models.ItemList) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title(list.Key)))
	buf.WriteString(fmt.Sprintf("**Items**: %d\n", list.Len()))
	if !list.UpdatedAt.IsZero() {
		buf.WriteString(fmt.Sprintf("**Updated**: %s\n", list.UpdatedAt.UTC().Format(time.RFC3339)))
	}
	buf.WriteString("\n")

	if list.Len() == 0 {
		buf.WriteString("_No items._\n")
		return buf.Bytes(), nil
	}

	for i, item := range list.Items {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, item))
	}

	return buf.Bytes(), nil
}

// ExportToText converts an ItemList to plain text, one "<n>. <item>" line per item, matching the chat "show" reply
func ExportToText(list *models.ItemList) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n", title(list.Key)))
	buf.WriteString(fmt.Sprintf("Items: %d\n\n", list.Len()))

	for i, item := range list.Items {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, item))
	}

	return buf.Bytes(), nil
}

// WriteExport writes list in format f to path.
//
// Defaults to {kind}_{owner}.{ext} as the filename.
func WriteExport(list *models.ItemList, f Format, path string) (string, error) {
	if path == "" {
		path = DefaultFilename(list.Key, f)
	}

	data, err := Export(list, f)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", f, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// DefaultFilename builds a filesystem-safe export name for key.
func DefaultFilename(key models.ListKey, f Format) string {
	owner := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, key.Owner)
	return fmt.Sprintf("%s_%s.%s", key.Kind, owner, f.Extension())
}

func title(key models.ListKey) string {
	name := strings.ToUpper(key.Kind.Plural()[:1]) + key.Kind.Plural()[1:]
	if key.Owner == models.GlobalOwner {
		return name
	}
	return fmt.Sprintf("%s for %s", name, key.Owner)
}
