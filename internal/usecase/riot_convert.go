package usecase

import (
	"time"

	"github.com/riskibarqy/lol-stats/external/riot"
	"github.com/riskibarqy/lol-stats/internal/domain/league"
	"github.com/riskibarqy/lol-stats/internal/domain/match"
	"github.com/riskibarqy/lol-stats/internal/domain/staticdata"
	"github.com/riskibarqy/lol-stats/internal/domain/summoner"
)

func summonerFromRiot(region string, in riot.Summoner, now time.Time) summoner.Summoner {
	revision := time.UnixMilli(in.RevisionDate).UTC()
	return summoner.Summoner{
		Region:        region,
		SummonerID:    in.ID,
		ProfileIconID: in.ProfileIconID,
		SummonerLevel: in.SummonerLevel,
		RevisionDate:  &revision,
		LastUpdate:    now,
	}.WithName(in.Name)
}

func leagueKeyFromRiot(region string, in riot.League) league.Key {
	return league.Key{
		Region: region,
		Queue:  in.Queue,
		Name:   in.Name,
		Tier:   in.Tier,
	}
}

func leagueEntriesFromRiot(in []riot.LeagueEntry) []league.Entry {
	out := make([]league.Entry, 0, len(in))
	for _, e := range in {
		entry := league.Entry{
			PlayerOrTeamID:   e.PlayerOrTeamID,
			PlayerOrTeamName: e.PlayerOrTeamName,
			Division:         e.Division,
			LeaguePoints:     e.LeaguePoints,
			Wins:             e.Wins,
			Losses:           e.Losses,
			IsFreshBlood:     e.IsFreshBlood,
			IsHotStreak:      e.IsHotStreak,
			IsInactive:       e.IsInactive,
			IsVeteran:        e.IsVeteran,
		}
		if e.MiniSeries != nil {
			entry.MiniSeries = &league.MiniSeries{
				Wins:     e.MiniSeries.Wins,
				Losses:   e.MiniSeries.Losses,
				Target:   e.MiniSeries.Target,
				Progress: e.MiniSeries.Progress,
			}
		}
		out = append(out, entry)
	}
	return out
}

func matchFromRiot(region string, in riot.MatchDetail) match.Match {
	m := match.Match{
		Region:       region,
		MatchID:      in.MatchID,
		PlatformID:   in.PlatformID,
		MapID:        in.MapID,
		Creation:     time.UnixMilli(in.MatchCreation).UTC(),
		Duration:     time.Duration(in.MatchDuration) * time.Second,
		Mode:         in.MatchMode,
		Type:         in.MatchType,
		Version:      in.MatchVersion,
		QueueType:    in.QueueType,
		Season:       in.Season,
		Participants: make([]match.Participant, 0, len(in.Participants)),
		Identities:   make([]match.ParticipantIdentity, 0, len(in.ParticipantIdentities)),
		Teams:        make([]match.Team, 0, len(in.Teams)),
	}

	for _, p := range in.Participants {
		st := p.Stats
		m.Participants = append(m.Participants, match.Participant{
			ParticipantID:             p.ParticipantID,
			TeamID:                    p.TeamID,
			ChampionID:                p.ChampionID,
			Spell1ID:                  p.Spell1ID,
			Spell2ID:                  p.Spell2ID,
			HighestAchievedSeasonTier: p.HighestAchievedSeasonTier,
			Winner:                    st.Winner,
			Kills:                     st.Kills,
			Deaths:                    st.Deaths,
			Assists:                   st.Assists,
			GoldEarned:                st.GoldEarned,
			ChampLevel:                st.ChampLevel,
			MinionsKilled:             st.MinionsKilled,
			Items:                     [7]int{st.Item0, st.Item1, st.Item2, st.Item3, st.Item4, st.Item5, st.Item6},
		})
	}

	for _, id := range in.ParticipantIdentities {
		identity := match.ParticipantIdentity{ParticipantID: id.ParticipantID}
		if id.Player != nil && id.Player.SummonerID > 0 {
			identity.Player = &summoner.Partial{
				Region:        region,
				SummonerID:    id.Player.SummonerID,
				Name:          id.Player.SummonerName,
				ProfileIconID: id.Player.ProfileIcon,
			}
		}
		m.Identities = append(m.Identities, identity)
	}

	for _, t := range in.Teams {
		m.Teams = append(m.Teams, match.Team{
			TeamID:      t.TeamID,
			Winner:      t.Winner,
			FirstBlood:  t.FirstBlood,
			FirstTower:  t.FirstTower,
			TowerKills:  t.TowerKills,
			DragonKills: t.DragonKills,
			BaronKills:  t.BaronKills,
		})
	}
	return m
}

func championsFromRiot(in riot.ChampionList) []staticdata.Champion {
	out := make([]staticdata.Champion, 0, len(in.Data))
	for _, c := range in.Data {
		out = append(out, staticdata.Champion{
			ChampionID: c.ID,
			Key:        c.Key,
			Name:       c.Name,
			Title:      c.Title,
		})
	}
	return out
}

func spellsFromRiot(in riot.SpellList) []staticdata.Spell {
	out := make([]staticdata.Spell, 0, len(in.Data))
	for _, s := range in.Data {
		out = append(out, staticdata.Spell{
			SpellID:       s.ID,
			Key:           s.Key,
			Name:          s.Name,
			Description:   s.Description,
			SummonerLevel: s.SummonerLevel,
		})
	}
	return out
}
