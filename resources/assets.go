package resources

import "embed"

//go:embed deck.yaml
var deckFS embed.FS

// Deck returns the embedded default game configuration document.
func Deck() ([]byte, error) {
	return deckFS.ReadFile("deck.yaml")
}

// MustDeck returns the embedded deck or panics on error.
func MustDeck() []byte {
	data, err := Deck()
	if err != nil {
		panic(err)
	}
	return data
}
