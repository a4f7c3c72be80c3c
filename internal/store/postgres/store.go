// Package postgres implements store.RecordStore on PostgreSQL. Roster search
// is pushed down as ILIKE predicates; call and identity writes are
// idempotent.
package postgres

import (
	"calltracker/internal/models"
	"calltracker/internal/store"
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const upsertBatchSize = 500

// DB is the subset of *pgxpool.Pool the store needs. pgxmock satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var voterColumns = []string{
	"id",
	"COALESCE(first_name, '')",
	"COALESCE(last_name, '')",
	"full_name",
	"COALESCE(contact, '')",
	"COALESCE(address, '')",
	"COALESCE(pincode, '')",
	"COALESCE(city, '')",
	"COALESCE(metadata, '')",
	"COALESCE(photo_url, '')",
	"COALESCE(qr_code_url, '')",
}

var voterInsertColumns = []string{
	"id", "first_name", "last_name", "full_name", "contact", "address",
	"pincode", "city", "metadata", "photo_url", "qr_code_url",
}

var _ store.RecordStore = (*Store)(nil)

type Store struct {
	db                     DB
	addressMatchesMetadata bool
}

func New(db DB, addressMatchesMetadata bool) *Store {
	return &Store{db: db, addressMatchesMetadata: addressMatchesMetadata}
}

// escapeLike quotes the LIKE metacharacters so user input only ever matches
// literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func contains(s string) string {
	return "%" + escapeLike(s) + "%"
}

func (s *Store) criteriaPredicate(c models.FilterCriteria) sq.And {
	and := sq.And{}
	if c.Name != "" {
		and = append(and, sq.ILike{"full_name": contains(c.Name)})
	}
	if c.FirstName != "" {
		and = append(and, sq.ILike{"first_name": contains(c.FirstName)})
	}
	if c.LastName != "" {
		and = append(and, sq.ILike{"last_name": contains(c.LastName)})
	}
	if c.Pincode != "" {
		and = append(and, sq.ILike{"pincode": contains(c.Pincode)})
	}
	if c.Address != "" {
		if s.addressMatchesMetadata {
			and = append(and, sq.Or{
				sq.ILike{"address": contains(c.Address)},
				sq.ILike{"metadata": contains(c.Address)},
			})
		} else {
			and = append(and, sq.ILike{"address": contains(c.Address)})
		}
	}
	return and
}

func (s *Store) queryVoters(ctx context.Context, query sq.SelectBuilder, op string) ([]models.VoterRecord, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err, op, "")
	}
	defer rows.Close()

	voters := make([]models.VoterRecord, 0)
	for rows.Next() {
		var v models.VoterRecord
		if err := rows.Scan(&v.ID, &v.FirstName, &v.LastName, &v.FullName, &v.Contact, &v.Address,
			&v.Pincode, &v.City, &v.Metadata, &v.PhotoURL, &v.QRCodeURL); err != nil {
			return nil, mapError(err, op, "")
		}
		voters = append(voters, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, op, "")
	}
	return voters, nil
}

func (s *Store) FetchVoters(ctx context.Context, criteria models.FilterCriteria) ([]models.VoterRecord, error) {
	c := criteria.Normalize()
	if c.IsEmpty() {
		return make([]models.VoterRecord, 0), nil
	}
	query := psql.Select(voterColumns...).From("voters").Where(s.criteriaPredicate(c)).OrderBy("id")
	return s.queryVoters(ctx, query, "voters")
}

func (s *Store) FetchAllVoters(ctx context.Context) ([]models.VoterRecord, error) {
	return s.queryVoters(ctx, psql.Select(voterColumns...).From("voters").OrderBy("id"), "voters")
}

func (s *Store) FetchVotersByIDs(ctx context.Context, ids []string) ([]models.VoterRecord, error) {
	if len(ids) == 0 {
		return make([]models.VoterRecord, 0), nil
	}
	query := psql.Select(voterColumns...).From("voters").Where(sq.Eq{"id": ids}).OrderBy("id")
	return s.queryVoters(ctx, query, "voters")
}

func (s *Store) LookupVoters(ctx context.Context, q models.LookupQuery) ([]models.VoterRecord, error) {
	column := "full_name"
	switch q.Field {
	case models.LookupContact:
		column = "contact"
	case models.LookupMetadata:
		column = "metadata"
	}
	query := psql.Select(voterColumns...).From("voters").
		Where(sq.ILike{column: contains(q.Pattern)}).
		OrderBy("id")
	if q.Limit > 0 {
		query = query.Limit(uint64(q.Limit))
	}
	return s.queryVoters(ctx, query, "voter lookup")
}

func (s *Store) CountVoters(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM voters").Scan(&n); err != nil {
		return 0, mapError(err, "voters", "")
	}
	return n, nil
}

// UpsertVoters writes voters in one transaction, upsertBatchSize rows per
// statement.
func (s *Store) UpsertVoters(ctx context.Context, voters []models.VoterRecord) (int, error) {
	if len(voters) == 0 {
		return 0, nil
	}
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, mapError(err, "voters", "")
	}

	written := 0
	for start := 0; start < len(voters); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(voters))
		insert := psql.Insert("voters").Columns(voterInsertColumns...)
		for _, v := range voters[start:end] {
			insert = insert.Values(v.ID, nullable(v.FirstName), nullable(v.LastName), v.FullName,
				nullable(v.Contact), nullable(v.Address), nullable(v.Pincode), nullable(v.City),
				nullable(v.Metadata), nullable(v.PhotoURL), nullable(v.QRCodeURL))
		}
		insert = insert.Suffix(`ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
			full_name = EXCLUDED.full_name, contact = EXCLUDED.contact,
			address = EXCLUDED.address, pincode = EXCLUDED.pincode, city = EXCLUDED.city,
			metadata = EXCLUDED.metadata, photo_url = EXCLUDED.photo_url,
			qr_code_url = EXCLUDED.qr_code_url`)

		sql, args, err := insert.ToSql()
		if err != nil {
			_ = tx.Rollback(ctx)
			return 0, err
		}
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			_ = tx.Rollback(ctx)
			return 0, mapError(err, "voters", voters[start].ID)
		}
		written += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, mapError(err, "voters", "")
	}
	return written, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (s *Store) FetchCallEvents(ctx context.Context, identityID string) ([]models.CallEvent, error) {
	query := psql.Select("user_id", "voter_id", "created_at").From("call_records").OrderBy("created_at", "user_id", "voter_id")
	if identityID != "" {
		query = query.Where(sq.Eq{"user_id": identityID})
	}
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err, "call_records", identityID)
	}
	defer rows.Close()

	events := make([]models.CallEvent, 0)
	for rows.Next() {
		var ev models.CallEvent
		if err := rows.Scan(&ev.IdentityID, &ev.VoterID, &ev.CreatedAt); err != nil {
			return nil, mapError(err, "call_records", identityID)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "call_records", identityID)
	}
	return events, nil
}

func (s *Store) InsertCallEvent(ctx context.Context, ev models.CallEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	sql, args, err := psql.Insert("call_records").
		Columns("user_id", "voter_id", "created_at").
		Values(ev.IdentityID, ev.VoterID, ev.CreatedAt).
		Suffix("ON CONFLICT (user_id, voter_id) DO NOTHING").
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, sql, args...)
	return mapError(err, "call_record", ev.VoterID)
}

func (s *Store) DeleteCallEvent(ctx context.Context, identityID, voterID string) error {
	sql, args, err := psql.Delete("call_records").
		Where(sq.Eq{"user_id": identityID, "voter_id": voterID}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, sql, args...)
	return mapError(err, "call_record", voterID)
}

func (s *Store) FetchIdentities(ctx context.Context) ([]models.Identity, error) {
	sql, args, err := psql.Select("id", "display_name", "created_at").From("user_profiles").OrderBy("created_at", "id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err, "user_profiles", "")
	}
	defer rows.Close()

	identities := make([]models.Identity, 0)
	for rows.Next() {
		var id models.Identity
		if err := rows.Scan(&id.ID, &id.DisplayName, &id.CreatedAt); err != nil {
			return nil, mapError(err, "user_profiles", "")
		}
		identities = append(identities, id)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "user_profiles", "")
	}
	return identities, nil
}

func (s *Store) FetchIdentity(ctx context.Context, id string) (*models.Identity, error) {
	sql, args, err := psql.Select("id", "display_name", "created_at").From("user_profiles").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var identity models.Identity
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&identity.ID, &identity.DisplayName, &identity.CreatedAt); err != nil {
		return nil, mapError(err, "identity", id)
	}
	return &identity, nil
}

func (s *Store) UpsertIdentity(ctx context.Context, identity models.Identity) error {
	if identity.CreatedAt.IsZero() {
		identity.CreatedAt = time.Now().UTC()
	}
	sql, args, err := psql.Insert("user_profiles").
		Columns("id", "display_name", "created_at").
		Values(identity.ID, identity.DisplayName, identity.CreatedAt).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, sql, args...)
	return mapError(err, "identity", identity.ID)
}

func (s *Store) InsertExportEvent(ctx context.Context, ev models.ExportEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	sql, args, err := psql.Insert("export_records").
		Columns("id", "user_id", "export_type", "created_at").
		Values(ev.ID, ev.IdentityID, string(ev.Type), ev.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, sql, args...)
	return mapError(err, "export_record", ev.ID)
}

func (s *Store) CountExportEvents(ctx context.Context, identityID string) (int, error) {
	sql, args, err := psql.Select("COUNT(*)").From("export_records").Where(sq.Eq{"user_id": identityID}).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, mapError(err, "export_records", identityID)
	}
	return n, nil
}

func (s *Store) Close() {
	s.db.Close()
}
