package models

// ChunkKind describes how a chunk is rendered by the chat surface.
type ChunkKind string

const (
	ChunkText     ChunkKind = "text"
	ChunkMarkdown ChunkKind = "markdown"
	ChunkCard     ChunkKind = "card"
	ChunkCarousel ChunkKind = "carousel"
)

// Chunk is one discrete outbound reply unit.
type Chunk struct {
	Kind  ChunkKind `json:"kind"`
	Text  string    `json:"text,omitempty"`
	Cards []Card    `json:"cards,omitempty"`
}

// Card is a hero card with optional images and link buttons.
type Card struct {
	Title   string       `json:"title,omitempty"`
	Text    string       `json:"text,omitempty"`
	Images  []string     `json:"images,omitempty"`
	Buttons []CardButton `json:"buttons,omitempty"`
}

// CardButton opens URL when pressed.
type CardButton struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Text builds a plain text chunk.
func Text(s string) Chunk {
	return Chunk{Kind: ChunkText, Text: s}
}

// Texts builds one plain text chunk per string.
func Texts(lines ...string) []Chunk {
	chunks := make([]Chunk, 0, len(lines))
	for _, l := range lines {
		chunks = append(chunks, Text(l))
	}
	return chunks
}

// Markdown builds a markdown chunk.
func Markdown(s string) Chunk {
	return Chunk{Kind: ChunkMarkdown, Text: s}
}

// SingleCard builds a chunk holding one card.
func SingleCard(c Card) Chunk {
	return Chunk{Kind: ChunkCard, Cards: []Card{c}}
}

// Carousel builds a chunk laying cards out horizontally.
func Carousel(cards ...Card) Chunk {
	return Chunk{Kind: ChunkCarousel, Cards: cards}
}
