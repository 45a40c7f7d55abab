package catalog

import "placebook/models"

const (
	// NoResultsMessage is shown instead of cards when nothing matches.
	NoResultsMessage = "해당 조건의 식당이 없습니다."

	// OtherCategory labels venues without a category.
	OtherCategory = "기타"

	cardPlaceholderImage = "https://via.placeholder.com/300x200.png?text=No+Image"
)

// Card is the summary shown for one venue in the list.
type Card struct {
	Title    string
	Category string
	ImageURL string
	Venue    models.Venue
}

// CardList is the rendered card area: either cards, or a single message.
type CardList struct {
	Cards   []Card
	Message string
}

// Empty reports whether the list renders a message instead of cards.
func (l CardList) Empty() bool {
	return len(l.Cards) == 0
}

// RenderCards maps venues to cards in order. An empty input renders exactly
// one no-results message and no cards.
func RenderCards(venues []models.Venue) CardList {
	if len(venues) == 0 {
		return CardList{Message: NoResultsMessage}
	}
	cards := make([]Card, 0, len(venues))
	for _, v := range venues {
		cards = append(cards, Card{
			Title:    v.Title,
			Category: orDefault(v.Category, OtherCategory),
			ImageURL: orDefault(v.ImageURL, cardPlaceholderImage),
			Venue:    v,
		})
	}
	return CardList{Cards: cards}
}

// FailedCards is the card area after a load failure.
func FailedCards() CardList {
	return CardList{Message: LoadFailedMessage}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
