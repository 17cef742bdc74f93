package catalog

// Entry is one symbol in the tradable directory
type Entry struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Theme  string `json:"theme"`
}
