package domain

// FAQEntry is a single marketing question/answer pair.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Metadata holds optional marketing content attached to a product. It carries
// no invariants of its own and is only editable while the product is a draft.
type Metadata struct {
	Features []string   `json:"features,omitempty"`
	FAQ      []FAQEntry `json:"faq,omitempty"`
	Terms    string     `json:"terms,omitempty"`
}
