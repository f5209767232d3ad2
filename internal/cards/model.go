package cards

// Card is one page of a card news deck: a title line and content that may
// span several lines.
type Card struct {
	PageIndex int    `json:"page"`
	Title     string `json:"title"`
	Content   string `json:"content"`
}

// Empty reports whether the card has no text at all.
func (c Card) Empty() bool {
	return c.Title == "" && c.Content == ""
}
