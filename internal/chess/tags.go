package chess

// PGN tag names read by the game and catalog loaders.
const (
	EventTag        = "Event"
	SiteTag         = "Site"
	DateTag         = "Date"
	RoundTag        = "Round"
	WhiteTag        = "White"
	BlackTag        = "Black"
	ResultTag       = "Result"
	WhiteEloTag     = "WhiteElo"
	BlackEloTag     = "BlackElo"
	ECOTag          = "ECO"
	OpeningTag      = "Opening"
	VariationTag    = "Variation"
	SubVariationTag = "SubVariation"
	SetupTag        = "SetUp"
	FENTag          = "FEN"

	// Non-standard tags used by lichess exports and opening catalogs.
	GameIDTag    = "GameId"
	LinkTag      = "Link"
	OpeningIDTag = "OpeningId"
	FamilyTag    = "Family"
)

// SevenTagRoster holds the seven tags every PGN game must carry, in order.
var SevenTagRoster = []string{EventTag, SiteTag, DateTag, RoundTag, WhiteTag, BlackTag, ResultTag}

// EloTags returns the rating tag names for colour and its opponent.
func EloTags(colour Colour) (own, opp string) {
	if colour == White {
		return WhiteEloTag, BlackEloTag
	}
	return BlackEloTag, WhiteEloTag
}
