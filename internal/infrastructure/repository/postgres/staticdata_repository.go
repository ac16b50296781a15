package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/lol-stats/internal/domain/staticdata"
	qb "github.com/riskibarqy/lol-stats/internal/platform/querybuilder"
)

type StaticDataRepository struct {
	db *sqlx.DB
}

func NewStaticDataRepository(db *sqlx.DB) *StaticDataRepository {
	return &StaticDataRepository{db: db}
}

func (r *StaticDataRepository) AddChampions(ctx context.Context, champions []staticdata.Champion) (int, error) {
	if len(champions) == 0 {
		return 0, nil
	}
	rows := make([]championTableModel, 0, len(champions))
	for _, c := range champions {
		rows = append(rows, championTableModel(c))
	}

	query, args, err := qb.InsertModels("champions", rows, "ON CONFLICT (champion_id) DO NOTHING")
	if err != nil {
		return 0, fmt.Errorf("build insert champions query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert champions: %w", err)
	}
	created, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for insert champions: %w", err)
	}
	return int(created), nil
}

func (r *StaticDataRepository) ReplaceSpells(ctx context.Context, spells []staticdata.Spell) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx for spell replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const clearSpellsQuery = `DELETE FROM summoner_spells`
	if _, err := tx.ExecContext(ctx, clearSpellsQuery); err != nil {
		return 0, fmt.Errorf("clear summoner spells: %w", err)
	}

	if len(spells) > 0 {
		rows := make([]spellTableModel, 0, len(spells))
		for _, s := range spells {
			rows = append(rows, spellTableModel(s))
		}
		query, args, err := qb.InsertModels("summoner_spells", rows, "")
		if err != nil {
			return 0, fmt.Errorf("build insert summoner spells query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, mapWriteError("insert summoner spells", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit spell replace tx: %w", err)
	}
	return len(spells), nil
}

func (r *StaticDataRepository) ListChampions(ctx context.Context) ([]staticdata.Champion, error) {
	query, args, err := qb.Select("*").From("champions").OrderBy("champion_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select champions query: %w", err)
	}
	var rows []championTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select champions: %w", err)
	}
	out := make([]staticdata.Champion, 0, len(rows))
	for _, row := range rows {
		out = append(out, staticdata.Champion(row))
	}
	return out, nil
}

func (r *StaticDataRepository) ListSpells(ctx context.Context) ([]staticdata.Spell, error) {
	query, args, err := qb.Select("*").From("summoner_spells").OrderBy("spell_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select summoner spells query: %w", err)
	}
	var rows []spellTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select summoner spells: %w", err)
	}
	out := make([]staticdata.Spell, 0, len(rows))
	for _, row := range rows {
		out = append(out, staticdata.Spell(row))
	}
	return out, nil
}
