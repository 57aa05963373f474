package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/condoriano/internal/models"
	"github.com/desertthunder/condoriano/internal/shared"
	"golang.org/x/net/html"
)

const defaultDictionaryURL = "https://www.merriam-webster.com/dictionary/"

// Dictionary implements the "define" command by scraping a dictionary entry page.
//
// The first element with class "definition-list" is read; every "definition-inner-item" inside it becomes one chunk.
type Dictionary struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewDictionary creates a [Dictionary]. baseURL is the page prefix the lower-cased word is appended to.
func NewDictionary(baseURL string, client *http.Client, logger *log.Logger) *Dictionary {
	if baseURL == "" {
		baseURL = defaultDictionaryURL
	}
	if client == nil {
		client = NewHTTPClient(0)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Dictionary{baseURL: baseURL, httpClient: client, logger: shared.WithLogger(logger, "command", "define")}
}

func (d *Dictionary) Name() string { return "define" }

// Handle looks up the first word of args.
func (d *Dictionary) Handle(ctx context.Context, msg models.Message, args []string) []models.Chunk {
	if len(args) == 0 {
		return models.Texts("No word entered. Example 'define cat'")
	}

	word := strings.ToLower(args[0])
	definitions, err := d.Define(ctx, word)
	if err != nil {
		d.logger.Error("definition lookup failed", "word", word, "error", err)
		return models.Texts(Broken)
	}

	if len(definitions) == 0 {
		return models.Texts("No definition found.")
	}

	chunks := make([]models.Chunk, 0, len(definitions))
	for i, def := range definitions {
		chunks = append(chunks, models.Text(strconv.Itoa(i+1)+"\t"+def))
	}
	return chunks
}

// Define fetches the entry page for word and returns its definitions in page order.
//
// A 404 is not an error; it yields no definitions.
func (d *Dictionary) Define(ctx context.Context, word string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+url.PathEscape(word), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "condoriano/1.0")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	return ParseDefinitions(doc), nil
}

// ParseDefinitions extracts definitions from a parsed entry page.
//
// Each definition is the text of the spans inside one "definition-inner-item", skipping lone ":" separators.
func ParseDefinitions(doc *html.Node) []string {
	list := findFirst(doc, "definition-list")
	if list == nil {
		return nil
	}

	var definitions []string
	for _, item := range findAll(list, "definition-inner-item") {
		var parts []string
		walk(item, func(n *html.Node) bool {
			if n.Type != html.ElementNode || n.Data != "span" {
				return true
			}
			if text := strings.TrimSpace(textContent(n)); text != "" && text != ":" {
				parts = append(parts, text)
			}
			return false
		})

		if len(parts) > 0 {
			definitions = append(definitions, strings.Join(parts, "\n\n  \t\t"))
		}
	}
	return definitions
}

// walk visits n and its descendants depth first. Returning false from fn skips the node's children.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func findFirst(root *html.Node, class string) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if hasClass(n, class) {
			found = n
			return false
		}
		return true
	})
	return found
}

func findAll(root *html.Node, class string) []*html.Node {
	var nodes []*html.Node
	walk(root, func(n *html.Node) bool {
		if hasClass(n, class) {
			nodes = append(nodes, n)
			return false
		}
		return true
	})
	return nodes
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}
