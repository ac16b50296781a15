package postgres

type championTableModel struct {
	ChampionID int    `db:"champion_id"`
	Key        string `db:"key"`
	Name       string `db:"name"`
	Title      string `db:"title"`
}

type spellTableModel struct {
	SpellID       int    `db:"spell_id"`
	Key           string `db:"key"`
	Name          string `db:"name"`
	Description   string `db:"description"`
	SummonerLevel int    `db:"summoner_level"`
}
