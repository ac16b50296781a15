package staticdata

type Champion struct {
	ChampionID int
	Key        string
	Name       string
	Title      string
}

type Spell struct {
	SpellID       int
	Key           string
	Name          string
	Description   string
	SummonerLevel int
}
