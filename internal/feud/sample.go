/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package feud

// Seed adds the demonstration questions used when no question file is
// configured.
func Seed(g *Game) {
	_ = g.AddQuestion("Name a popular first name", []AnswerInput{
		{Text: "John", Points: 35},
		{Text: "Anna", Points: 30},
		{Text: "Peter", Points: 20},
		{Text: "Kate", Points: 10},
		{Text: "Andrew", Points: 5},
	})

	_ = g.AddQuestion("Name a dish served at a wedding", []AnswerInput{
		{Text: "Potato salad", Points: 40},
		{Text: "Roast beef", Points: 30},
		{Text: "Pâté", Points: 20},
		{Text: "Pickled herring", Points: 10},
	})
}
