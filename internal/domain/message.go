package domain

// InboundMessage is the part of a chat update the bot acts on.
type InboundMessage struct {
	CorrespondentID string
	Text            string
}

type OutboundMessage struct {
	Recipient string
	Text      string
}
