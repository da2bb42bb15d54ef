package constant

// Titles is the built-in watch list resolved when no titles are configured or passed.
var Titles = []string{
	"Avengers: Endgame",
	"Spider-Man: No Way Home",
	"Black Panther",
	"Thor: Ragnarok",
	"WandaVision",
}
