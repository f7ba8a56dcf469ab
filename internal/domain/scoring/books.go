package scoring

import "strings"

const chapterFraction = 0.2

var publisherBase = map[string]float64{
	"IP": 50,
	"NP": 25,
	"LP": 15,
}

var bookLead = oneOf("first/principal author")

// Book is one item-15 entry: a book, or chapters of one.
type Book struct {
	Title            string   `json:"title,omitempty"`
	PublisherType    string   `json:"publisher_type"`
	IsChapter        Flag     `json:"is_chapter"`
	NumberOfChapters Number   `json:"number_of_chapters"`
	UserAuthorType   string   `json:"user_author_type"`
	OtherAuthors     []Author `json:"other_authors"`
}

// BookBase is the undivided score of a book. Chapters earn 20% of the
// publisher score each.
func BookBase(b Book) float64 {
	base := publisherBase[strings.ToUpper(strings.TrimSpace(b.PublisherType))]
	if b.IsChapter.Bool() {
		base = b.NumberOfChapters.Float() * chapterFraction * base
	}
	return base
}

// ScoreBook returns the caller's share of a book.
func ScoreBook(b Book) float64 {
	return splitByRole(BookBase(b), b.UserAuthorType, b.OtherAuthors, bookLead)
}

// ScoreBooks scores item 15.
func ScoreBooks(books []Book) Result {
	res := Result{Entries: make([]Outcome, 0, len(books))}
	for _, b := range books {
		res.Entries = append(res.Entries, Scored(ScoreBook(b)))
	}
	res.Score = sumEntries(res.Entries)
	return res
}
