package models

// Activity types the webhook distinguishes.
const (
	ActivityMessage               = "message"
	ActivityContactRelationUpdate = "contactRelationUpdate"
)

// Attachment content types for rich chunks.
const (
	ContentTypeHeroCard = "application/vnd.microsoft.card.hero"
	LayoutCarousel      = "carousel"
	TextFormatMarkdown  = "markdown"
	TextFormatPlain     = "plain"
)

// Activity is the JSON envelope exchanged with the chat channel, both inbound on the webhook and outbound to the connector.
type Activity struct {
	Type             string       `json:"type"`
	ID               string       `json:"id,omitempty"`
	Timestamp        string       `json:"timestamp,omitempty"`
	ChannelID        string       `json:"channelId,omitempty"`
	ServiceURL       string       `json:"serviceUrl,omitempty"`
	From             Account      `json:"from"`
	Recipient        Account      `json:"recipient"`
	Conversation     Account      `json:"conversation"`
	ReplyToID        string       `json:"replyToId,omitempty"`
	Action           string       `json:"action,omitempty"`
	Text             string       `json:"text,omitempty"`
	TextFormat       string       `json:"textFormat,omitempty"`
	AttachmentLayout string       `json:"attachmentLayout,omitempty"`
	Attachments      []Attachment `json:"attachments,omitempty"`
}

// Attachment carries a rich card in an outbound activity.
type Attachment struct {
	ContentType string `json:"contentType"`
	Content     any    `json:"content"`
}

// HeroCard is the wire form of [Card].
type HeroCard struct {
	Title   string       `json:"title,omitempty"`
	Text    string       `json:"text,omitempty"`
	Images  []CardImage  `json:"images,omitempty"`
	Buttons []CardAction `json:"buttons,omitempty"`
}

type CardImage struct {
	URL string `json:"url"`
}

type CardAction struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Value string `json:"value"`
}

// Address returns where replies to a should be sent.
func (a Activity) Address() Conversation {
	return Conversation{
		ID:         a.Conversation.ID,
		ServiceURL: a.ServiceURL,
		Bot:        a.Recipient,
		User:       a.From,
		ReplyToID:  a.ID,
	}
}

// HeroCard converts c to its wire form. Buttons open their URL.
func (c Card) HeroCard() HeroCard {
	hc := HeroCard{Title: c.Title, Text: c.Text}
	for _, src := range c.Images {
		hc.Images = append(hc.Images, CardImage{URL: src})
	}
	for _, b := range c.Buttons {
		hc.Buttons = append(hc.Buttons, CardAction{Type: "openUrl", Title: b.Title, Value: b.URL})
	}
	return hc
}

// Activity renders the chunk as an outbound message activity addressed to conv.
func (c Chunk) Activity(conv Conversation) Activity {
	a := Activity{
		Type:         ActivityMessage,
		From:         conv.Bot,
		Recipient:    conv.User,
		Conversation: Account{ID: conv.ID},
		ReplyToID:    conv.ReplyToID,
	}

	switch c.Kind {
	case ChunkMarkdown:
		a.Text = c.Text
		a.TextFormat = TextFormatMarkdown
	case ChunkCard, ChunkCarousel:
		a.Text = c.Text
		for _, card := range c.Cards {
			a.Attachments = append(a.Attachments, Attachment{ContentType: ContentTypeHeroCard, Content: card.HeroCard()})
		}
		if c.Kind == ChunkCarousel {
			a.AttachmentLayout = LayoutCarousel
		}
	default:
		a.Text = c.Text
		a.TextFormat = TextFormatPlain
	}
	return a
}
