package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/cards"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/db"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/schema"
	"github.com/gnames/gnfmt"
)

// cardColumns lists the cards table columns in insert order.
var cardColumns = []string{
	"oracle_id", "scryfall_id",
	"original_name", "display_name", "search_key",
	"mana_cost", "mana_value", "type_line", "rules_text",
	"colors", "color_identity", "rarity", "set_code", "legal_sets",
	"can_be_commander", "can_be_companion", "companion_restriction",
	"image_uris", "back_image_uris",
	"preferred_orientation", "has_back_face", "meld_partner",
	"updated_at",
}

// pgxCardStore implements db.CardStore using the operator's pgx pool.
type pgxCardStore struct {
	operator db.Operator
	enc      gnfmt.Encoder
}

// NewCardStore creates a card store backed by the given operator. The
// operator must be connected before the store is used.
func NewCardStore(op db.Operator) db.CardStore {
	return &pgxCardStore{
		operator: op,
		enc:      gnfmt.GNjson{},
	}
}

// ClearAll truncates the cards and search_terms tables together so a
// fresh import never leaves terms pointing at deleted cards.
func (s *pgxCardStore) ClearAll(ctx context.Context) error {
	pool := s.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	query := "TRUNCATE TABLE cards, search_terms RESTART IDENTITY"
	if _, err := pool.Exec(ctx, query); err != nil {
		return QueryError("clear cards", err)
	}
	return nil
}

// InsertCards writes a batch of canonical cards with a multi-row
// parameterized INSERT with ON CONFLICT DO NOTHING. Duplicate oracle
// IDs cannot happen after deduplication, so a conflict means the row
// survived an interrupted run and is left in place.
func (s *pgxCardStore) InsertCards(
	ctx context.Context,
	batch []cards.CanonicalCard,
) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}
	pool := s.operator.Pool()
	if pool == nil {
		return 0, NotConnectedError()
	}

	var valueStrings []string
	var valueArgs []any
	argIdx := 1

	for i := range batch {
		rec := &batch[i]

		imageJSON, err := s.encodeImages(rec.ImageURIs)
		if err != nil {
			return 0, QueryError("encode images", err)
		}
		backJSON, err := s.encodeImages(rec.BackImageURIs)
		if err != nil {
			return 0, QueryError("encode images", err)
		}

		placeholders := make([]string, len(cardColumns))
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", argIdx+j)
		}
		valueStrings = append(
			valueStrings,
			"("+strings.Join(placeholders, ", ")+")",
		)
		argIdx += len(cardColumns)

		valueArgs = append(valueArgs,
			rec.OracleID, rec.ScryfallID,
			rec.OriginalName, rec.DisplayName, rec.SearchKey,
			rec.ManaCost, rec.ManaValue, rec.TypeLine, rec.RulesText,
			schema.JoinList(rec.Colors),
			schema.JoinList(rec.ColorIdentity),
			rec.Rarity, rec.SetCode,
			schema.JoinList(rec.LegalSets),
			rec.CanBeCommander, rec.CanBeCompanion,
			nullString(rec.CompanionRestriction),
			imageJSON, backJSON,
			rec.DisplayHints.PreferredOrientation,
			rec.DisplayHints.HasBackFace,
			nullString(rec.DisplayHints.MeldPartner),
			rec.UpdatedAt,
		)
	}

	insertQuery := fmt.Sprintf(
		`INSERT INTO cards (%s) VALUES %s
		 ON CONFLICT (oracle_id) DO NOTHING`,
		strings.Join(cardColumns, ", "),
		strings.Join(valueStrings, ", "),
	)

	result, err := pool.Exec(ctx, insertQuery, valueArgs...)
	if err != nil {
		return 0, QueryError("insert cards", err)
	}

	return int(result.RowsAffected()), nil
}

// InsertSearchTerms writes a batch of search terms.
func (s *pgxCardStore) InsertSearchTerms(
	ctx context.Context,
	batch []cards.SearchTerm,
) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}
	pool := s.operator.Pool()
	if pool == nil {
		return 0, NotConnectedError()
	}

	var valueStrings []string
	var valueArgs []any
	argIdx := 1

	for _, term := range batch {
		valueStrings = append(
			valueStrings,
			fmt.Sprintf("($%d, $%d, $%d)", argIdx, argIdx+1, argIdx+2),
		)
		valueArgs = append(valueArgs,
			term.OracleID, term.Term, term.IsPrimary)
		argIdx += 3
	}

	insertQuery := fmt.Sprintf(
		`INSERT INTO search_terms (oracle_id, term, is_primary)
		 VALUES %s`,
		strings.Join(valueStrings, ", "),
	)

	result, err := pool.Exec(ctx, insertQuery, valueArgs...)
	if err != nil {
		return 0, QueryError("insert search terms", err)
	}

	return int(result.RowsAffected()), nil
}

// DeleteSearchTerms removes every search term belonging to the given
// oracle IDs.
func (s *pgxCardStore) DeleteSearchTerms(
	ctx context.Context,
	oracleIDs []string,
) error {
	if len(oracleIDs) == 0 {
		return nil
	}
	pool := s.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	query := "DELETE FROM search_terms WHERE oracle_id = ANY($1)"
	if _, err := pool.Exec(ctx, query, oracleIDs); err != nil {
		return QueryError("delete search terms", err)
	}
	return nil
}

// CountCards returns the number of stored cards matching the filter.
func (s *pgxCardStore) CountCards(
	ctx context.Context,
	filter db.CardFilter,
) (int, error) {
	pool := s.operator.Pool()
	if pool == nil {
		return 0, NotConnectedError()
	}

	query := "SELECT COUNT(*) FROM cards"
	switch filter {
	case db.FilterCommanders:
		query += " WHERE can_be_commander"
	case db.FilterCompanions:
		query += " WHERE can_be_companion"
	}

	var count int
	if err := pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, QueryError("count cards", err)
	}
	return count, nil
}

// CountOrphanTerms returns the number of search terms whose oracle ID
// has no matching card row.
func (s *pgxCardStore) CountOrphanTerms(ctx context.Context) (int, error) {
	pool := s.operator.Pool()
	if pool == nil {
		return 0, NotConnectedError()
	}

	query := `
		SELECT COUNT(*)
		FROM search_terms st
		LEFT JOIN cards c ON c.oracle_id = st.oracle_id
		WHERE c.oracle_id IS NULL
	`

	var count int
	if err := pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, QueryError("count orphan terms", err)
	}
	return count, nil
}

// TermsByEquality returns matches for terms exactly equal to any of
// the given search keys.
func (s *pgxCardStore) TermsByEquality(
	ctx context.Context,
	keys []string,
) ([]db.TermMatch, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	pool := s.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	query := `
		SELECT oracle_id, term, is_primary
		FROM search_terms
		WHERE term = ANY($1)
	`

	rows, err := pool.Query(ctx, query, keys)
	if err != nil {
		return nil, QueryError("terms by equality", err)
	}
	defer rows.Close()

	var matches []db.TermMatch
	for rows.Next() {
		var m db.TermMatch
		if err := rows.Scan(&m.OracleID, &m.Term, &m.IsPrimary); err != nil {
			return nil, QueryError("terms by equality", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, QueryError("terms by equality", err)
	}
	return matches, nil
}

// TermsByPrefix returns matches for terms starting with the given
// search key.
func (s *pgxCardStore) TermsByPrefix(
	ctx context.Context,
	key string,
) ([]db.TermMatch, error) {
	if key == "" {
		return nil, nil
	}
	pool := s.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	query := `
		SELECT oracle_id, term, is_primary
		FROM search_terms
		WHERE term LIKE $1 || '%'
	`

	rows, err := pool.Query(ctx, query, key)
	if err != nil {
		return nil, QueryError("terms by prefix", err)
	}
	defer rows.Close()

	var matches []db.TermMatch
	for rows.Next() {
		var m db.TermMatch
		if err := rows.Scan(&m.OracleID, &m.Term, &m.IsPrimary); err != nil {
			return nil, QueryError("terms by prefix", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, QueryError("terms by prefix", err)
	}
	return matches, nil
}

// CardsByOracleIDs loads full card records for the given oracle IDs.
func (s *pgxCardStore) CardsByOracleIDs(
	ctx context.Context,
	oracleIDs []string,
) ([]cards.CanonicalCard, error) {
	if len(oracleIDs) == 0 {
		return nil, nil
	}
	pool := s.operator.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}

	query := fmt.Sprintf(
		"SELECT %s FROM cards WHERE oracle_id = ANY($1)",
		strings.Join(cardColumns, ", "),
	)

	rows, err := pool.Query(ctx, query, oracleIDs)
	if err != nil {
		return nil, QueryError("cards by oracle ids", err)
	}
	defer rows.Close()

	var res []cards.CanonicalCard
	for rows.Next() {
		var (
			rec                    cards.CanonicalCard
			colors, colorIdentity  string
			legalSets              string
			companion, meldPartner sql.NullString
			imageJSON, backJSON    sql.NullString
			preferredOrientation   string
			hasBackFace            bool
		)
		err := rows.Scan(
			&rec.OracleID, &rec.ScryfallID,
			&rec.OriginalName, &rec.DisplayName, &rec.SearchKey,
			&rec.ManaCost, &rec.ManaValue, &rec.TypeLine, &rec.RulesText,
			&colors, &colorIdentity, &rec.Rarity, &rec.SetCode, &legalSets,
			&rec.CanBeCommander, &rec.CanBeCompanion, &companion,
			&imageJSON, &backJSON,
			&preferredOrientation, &hasBackFace, &meldPartner,
			&rec.UpdatedAt,
		)
		if err != nil {
			return nil, QueryError("cards by oracle ids", err)
		}

		rec.Colors = schema.SplitList(colors)
		rec.ColorIdentity = schema.SplitList(colorIdentity)
		rec.LegalSets = schema.SplitList(legalSets)
		rec.CompanionRestriction = companion.String
		rec.DisplayHints = cards.DisplayHints{
			PreferredOrientation: preferredOrientation,
			HasBackFace:          hasBackFace,
			MeldPartner:          meldPartner.String,
		}

		if rec.ImageURIs, err = s.decodeImages(imageJSON); err != nil {
			return nil, QueryError("cards by oracle ids", err)
		}
		if rec.BackImageURIs, err = s.decodeImages(backJSON); err != nil {
			return nil, QueryError("cards by oracle ids", err)
		}

		res = append(res, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, QueryError("cards by oracle ids", err)
	}
	return res, nil
}

// LatestCardTimestamp returns the most recent updated_at among stored
// cards, or the zero time when the table is empty.
func (s *pgxCardStore) LatestCardTimestamp(
	ctx context.Context,
) (time.Time, error) {
	pool := s.operator.Pool()
	if pool == nil {
		return time.Time{}, NotConnectedError()
	}

	query := "SELECT COALESCE(MAX(updated_at), 'epoch'::timestamptz) FROM cards"

	var ts time.Time
	if err := pool.QueryRow(ctx, query).Scan(&ts); err != nil {
		return time.Time{}, QueryError("latest card timestamp", err)
	}
	if ts.Unix() == 0 {
		return time.Time{}, nil
	}
	return ts, nil
}

func (s *pgxCardStore) encodeImages(
	uris *cards.ImageURIs,
) (sql.NullString, error) {
	if uris == nil {
		return sql.NullString{}, nil
	}
	bs, err := s.enc.Encode(uris)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(bs), Valid: true}, nil
}

func (s *pgxCardStore) decodeImages(
	col sql.NullString,
) (*cards.ImageURIs, error) {
	if !col.Valid || col.String == "" {
		return nil, nil
	}
	var uris cards.ImageURIs
	if err := s.enc.Decode([]byte(col.String), &uris); err != nil {
		return nil, err
	}
	return &uris, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
