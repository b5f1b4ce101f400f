// Package sqlite provides a SQLite implementation of the ArchiveStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ersonp/historian/internal/domain/entities"
	"github.com/ersonp/historian/internal/infrastructure/config"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// tableNames lists every table in dependency order. Dump and TableCounts
// iterate it so parents are emitted before children.
var tableNames = []string{
	"artifacts",
	"persons",
	"locations",
	"context_chunks",
	"events",
	"milestones",
	"event_participants",
	"event_venues",
	"milestone_places",
	"entity_matches",
}

// Repository implements ports.ArchiveStore using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for cascade and set-null rules
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Source documents; everything below is owned by an artifact
	CREATE TABLE IF NOT EXISTS artifacts (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		publication_year INTEGER,
		time_period_start INTEGER,
		time_period_end INTEGER,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS persons (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		aliases TEXT, -- JSON array
		artifact_id TEXT REFERENCES artifacts(id) ON DELETE CASCADE,
		birth_year INTEGER,
		death_year INTEGER,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_persons_name ON persons(name);
	CREATE INDEX IF NOT EXISTS idx_persons_artifact ON persons(artifact_id);

	CREATE TABLE IF NOT EXISTS locations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		aliases TEXT, -- JSON array
		artifact_id TEXT REFERENCES artifacts(id) ON DELETE CASCADE,
		address TEXT,
		latitude REAL,
		longitude REAL,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_locations_name ON locations(name);
	CREATE INDEX IF NOT EXISTS idx_locations_artifact ON locations(artifact_id);

	CREATE TABLE IF NOT EXISTS context_chunks (
		id TEXT PRIMARY KEY,
		artifact_id TEXT REFERENCES artifacts(id) ON DELETE CASCADE,
		chunk_label TEXT,
		page_range TEXT, -- JSON [start, end]
		summary TEXT,
		key_persons TEXT, -- JSON array of names
		key_locations TEXT, -- JSON array of names
		created_at TEXT DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_context_chunks_artifact ON context_chunks(artifact_id);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		description TEXT NOT NULL,
		artifact_id TEXT REFERENCES artifacts(id) ON DELETE CASCADE,
		page_range TEXT, -- JSON [start, end]
		context_chunk_id TEXT REFERENCES context_chunks(id) ON DELETE SET NULL,
		event_type TEXT,
		event_date TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_events_artifact ON events(artifact_id);
	CREATE INDEX IF NOT EXISTS idx_events_date ON events(event_date);

	CREATE TABLE IF NOT EXISTS milestones (
		id TEXT PRIMARY KEY,
		person_id TEXT REFERENCES persons(id) ON DELETE CASCADE,
		artifact_id TEXT REFERENCES artifacts(id) ON DELETE CASCADE,
		milestone_type TEXT,
		milestone_date TEXT,
		description TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_milestones_person ON milestones(person_id);

	CREATE TABLE IF NOT EXISTS event_participants (
		event_id TEXT REFERENCES events(id) ON DELETE CASCADE,
		person_id TEXT REFERENCES persons(id) ON DELETE CASCADE,
		role TEXT,
		PRIMARY KEY (event_id, person_id)
	);

	CREATE TABLE IF NOT EXISTS event_venues (
		event_id TEXT REFERENCES events(id) ON DELETE CASCADE,
		location_id TEXT REFERENCES locations(id) ON DELETE CASCADE,
		PRIMARY KEY (event_id, location_id)
	);

	CREATE TABLE IF NOT EXISTS milestone_places (
		milestone_id TEXT REFERENCES milestones(id) ON DELETE CASCADE,
		location_id TEXT REFERENCES locations(id) ON DELETE CASCADE,
		PRIMARY KEY (milestone_id, location_id)
	);

	CREATE TABLE IF NOT EXISTS entity_matches (
		id TEXT PRIMARY KEY,
		entity_type TEXT CHECK (entity_type IN ('person', 'location')),
		entity_id_1 TEXT NOT NULL,
		entity_id_2 TEXT NOT NULL,
		similarity_score REAL CHECK (similarity_score BETWEEN 0 AND 1),
		matching_signals TEXT, -- JSON object
		status TEXT CHECK (status IN ('pending', 'merged', 'rejected')) DEFAULT 'pending',
		reviewed_at TEXT,
		created_at TEXT DEFAULT CURRENT_TIMESTAMP,
		CHECK (entity_id_1 < entity_id_2)
	);
	CREATE INDEX IF NOT EXISTS idx_matches_status ON entity_matches(status);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveArtifact inserts an artifact.
func (r *Repository) SaveArtifact(ctx context.Context, artifact *entities.Artifact) error {
	query := `
		INSERT INTO artifacts (id, title, author, publication_year, time_period_start, time_period_end, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		artifact.ID,
		artifact.Title,
		artifact.Author,
		artifact.PublicationYear,
		artifact.TimePeriodStart,
		artifact.TimePeriodEnd,
		formatTime(artifact.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving artifact: %w", err)
	}
	return nil
}

// SavePerson inserts a person. Aliases are stored as a JSON array.
func (r *Repository) SavePerson(ctx context.Context, person *entities.Person) error {
	query := `
		INSERT INTO persons (id, name, aliases, artifact_id, birth_year, death_year, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		person.ID,
		person.Name,
		entities.EncodeAliases(person.Aliases),
		person.ArtifactID,
		person.BirthYear,
		person.DeathYear,
		formatTime(person.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving person: %w", err)
	}
	return nil
}

// SaveLocation inserts a location.
func (r *Repository) SaveLocation(ctx context.Context, location *entities.Location) error {
	query := `
		INSERT INTO locations (id, name, aliases, artifact_id, address, latitude, longitude, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		location.ID,
		location.Name,
		entities.EncodeAliases(location.Aliases),
		location.ArtifactID,
		location.Address,
		location.Latitude,
		location.Longitude,
		formatTime(location.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving location: %w", err)
	}
	return nil
}

// SaveContextChunk inserts a context chunk.
func (r *Repository) SaveContextChunk(ctx context.Context, chunk *entities.ContextChunk) error {
	pageRange, err := encodePageRange(chunk.PageRange)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO context_chunks (id, artifact_id, chunk_label, page_range, summary, key_persons, key_locations, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		chunk.ID,
		chunk.ArtifactID,
		chunk.ChunkLabel,
		pageRange,
		chunk.Summary,
		entities.EncodeAliases(chunk.KeyPersons),
		entities.EncodeAliases(chunk.KeyLocations),
		formatTime(chunk.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving context chunk: %w", err)
	}
	return nil
}

// SaveEvent inserts an event.
func (r *Repository) SaveEvent(ctx context.Context, event *entities.Event) error {
	pageRange, err := encodePageRange(event.PageRange)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO events (id, description, artifact_id, page_range, context_chunk_id, event_type, event_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		event.ID,
		event.Description,
		event.ArtifactID,
		pageRange,
		event.ContextChunkID,
		event.EventType,
		event.EventDate,
		formatTime(event.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving event: %w", err)
	}
	return nil
}

// SaveMilestone inserts a milestone.
func (r *Repository) SaveMilestone(ctx context.Context, milestone *entities.Milestone) error {
	query := `
		INSERT INTO milestones (id, person_id, artifact_id, milestone_type, milestone_date, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		milestone.ID,
		milestone.PersonID,
		milestone.ArtifactID,
		milestone.MilestoneType,
		milestone.MilestoneDate,
		milestone.Description,
		formatTime(milestone.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving milestone: %w", err)
	}
	return nil
}

// AddEventParticipant links a person to an event with an optional role.
func (r *Repository) AddEventParticipant(ctx context.Context, eventID, personID, role string) error {
	var roleValue sql.NullString
	if role != "" {
		roleValue = sql.NullString{String: role, Valid: true}
	}

	query := `INSERT OR IGNORE INTO event_participants (event_id, person_id, role) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, eventID, personID, roleValue); err != nil {
		return fmt.Errorf("adding event participant: %w", err)
	}
	return nil
}

// AddEventVenue links a location to an event.
func (r *Repository) AddEventVenue(ctx context.Context, eventID, locationID string) error {
	query := `INSERT OR IGNORE INTO event_venues (event_id, location_id) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, query, eventID, locationID); err != nil {
		return fmt.Errorf("adding event venue: %w", err)
	}
	return nil
}

// AddMilestonePlace links a location to a milestone.
func (r *Repository) AddMilestonePlace(ctx context.Context, milestoneID, locationID string) error {
	query := `INSERT OR IGNORE INTO milestone_places (milestone_id, location_id) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, query, milestoneID, locationID); err != nil {
		return fmt.Errorf("adding milestone place: %w", err)
	}
	return nil
}

// SaveEntityMatch inserts a duplicate-candidate pair. The canonical pair
// order is enforced here as well as by the schema CHECK, so a pair can
// never be stored in both orders no matter which layer creates it.
func (r *Repository) SaveEntityMatch(ctx context.Context, match *entities.EntityMatch) error {
	if match.EntityID1 >= match.EntityID2 {
		return fmt.Errorf("match pair not in canonical order: %s >= %s", match.EntityID1, match.EntityID2)
	}

	signals, err := json.Marshal(match.MatchingSignals)
	if err != nil {
		return fmt.Errorf("marshaling matching signals: %w", err)
	}

	var reviewedAt sql.NullString
	if match.ReviewedAt != nil {
		reviewedAt = sql.NullString{String: formatTime(*match.ReviewedAt), Valid: true}
	}

	query := `
		INSERT INTO entity_matches (id, entity_type, entity_id_1, entity_id_2, similarity_score, matching_signals, status, reviewed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		match.ID,
		match.EntityType,
		match.EntityID1,
		match.EntityID2,
		match.SimilarityScore,
		string(signals),
		string(match.Status),
		reviewedAt,
		formatTime(match.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving entity match: %w", err)
	}
	return nil
}

// DeleteArtifact deletes an artifact; cascade rules remove its persons,
// locations, context chunks, events and milestones.
func (r *Repository) DeleteArtifact(ctx context.Context, artifactID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM artifacts WHERE id = ?`, artifactID)
	if err != nil {
		return fmt.Errorf("deleting artifact: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("artifact not found: %s", artifactID)
	}
	return nil
}

// ListEventsChronological returns every event, dated events first in
// date order, undated events last in insertion order. SQLite has no
// NULLS LAST, so null dates are pushed back by sorting on IS NULL first.
func (r *Repository) ListEventsChronological(ctx context.Context) ([]entities.Event, error) {
	query := `
		SELECT id, description, artifact_id, page_range, context_chunk_id, event_type, event_date, created_at
		FROM events
		ORDER BY (event_date IS NULL) ASC, event_date ASC, created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	events := make([]entities.Event, 0, 64)
	for rows.Next() {
		var event entities.Event
		var pageRange, contextChunkID, eventType, eventDate, createdAt sql.NullString

		if err := rows.Scan(
			&event.ID,
			&event.Description,
			&event.ArtifactID,
			&pageRange,
			&contextChunkID,
			&eventType,
			&eventDate,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}

		event.PageRange = decodePageRange(pageRange.String)
		if contextChunkID.Valid {
			chunkID := contextChunkID.String
			event.ContextChunkID = &chunkID
		}
		event.EventType = eventType.String
		if eventDate.Valid {
			date := eventDate.String
			event.EventDate = &date
		}
		event.CreatedAt = parseTime(createdAt.String)

		events = append(events, event)
	}
	return events, rows.Err()
}

// VenuesByEventIDs returns the primary venue for each of the given
// events in a single batched query. When an event links several
// locations the one with the lowest ID wins; there is no business rule
// behind the tie-break, only a stable one.
func (r *Repository) VenuesByEventIDs(ctx context.Context, eventIDs []string) (map[string]entities.Location, error) {
	venues := make(map[string]entities.Location, len(eventIDs))
	if len(eventIDs) == 0 {
		return venues, nil
	}

	placeholders, args := buildInClause(eventIDs)
	query := fmt.Sprintf(`
		SELECT ev.event_id, l.id, l.name, l.aliases, l.artifact_id, l.address, l.latitude, l.longitude, l.created_at
		FROM event_venues ev
		JOIN locations l ON l.id = ev.location_id
		WHERE ev.event_id IN (%s)
		ORDER BY ev.event_id ASC, l.id ASC
	`, placeholders)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying event venues: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID string
		location, err := scanLocation(rows, &eventID)
		if err != nil {
			return nil, err
		}
		if _, ok := venues[eventID]; ok {
			continue
		}
		venues[eventID] = *location
	}
	return venues, rows.Err()
}

// ParticipantsByEventIDs returns all participants for each of the given
// events in a single batched query.
func (r *Repository) ParticipantsByEventIDs(ctx context.Context, eventIDs []string) (map[string][]entities.Person, error) {
	participants := make(map[string][]entities.Person, len(eventIDs))
	if len(eventIDs) == 0 {
		return participants, nil
	}

	placeholders, args := buildInClause(eventIDs)
	query := fmt.Sprintf(`
		SELECT ep.event_id, p.id, p.name, p.aliases, p.artifact_id, p.birth_year, p.death_year, p.created_at
		FROM event_participants ep
		JOIN persons p ON p.id = ep.person_id
		WHERE ep.event_id IN (%s)
		ORDER BY ep.event_id ASC, p.id ASC
	`, placeholders)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying event participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID string
		var person entities.Person
		var aliases, createdAt sql.NullString
		var birthYear, deathYear sql.NullInt64

		if err := rows.Scan(
			&eventID,
			&person.ID,
			&person.Name,
			&aliases,
			&person.ArtifactID,
			&birthYear,
			&deathYear,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning participant: %w", err)
		}

		person.Aliases = entities.ParseAliases(aliases.String)
		person.BirthYear = nullableInt(birthYear)
		person.DeathYear = nullableInt(deathYear)
		person.CreatedAt = parseTime(createdAt.String)

		participants[eventID] = append(participants[eventID], person)
	}
	return participants, rows.Err()
}

// TableCounts returns per-table row counts.
func (r *Repository) TableCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(tableNames))
	for _, table := range tableNames {
		var count int
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)
		if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		counts[table] = count
	}
	return counts, nil
}

// Dump writes a portable SQL text dump of the whole archive: the schema
// statements followed by one INSERT per row, wrapped in a transaction.
func (r *Repository) Dump(ctx context.Context, w io.Writer) error {
	if _, err := fmt.Fprintln(w, "BEGIN TRANSACTION;"); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}

	if err := r.dumpSchema(ctx, w); err != nil {
		return err
	}

	for _, table := range tableNames {
		if err := r.dumpTable(ctx, w, table); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "COMMIT;"); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}
	return nil
}

func (r *Repository) dumpSchema(ctx context.Context, w io.Writer) error {
	query := `
		SELECT sql FROM sqlite_master
		WHERE sql IS NOT NULL AND name NOT LIKE 'sqlite_%'
		ORDER BY CASE type WHEN 'table' THEN 0 ELSE 1 END, rowid
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var stmt string
		if err := rows.Scan(&stmt); err != nil {
			return fmt.Errorf("scanning schema: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s;\n", stmt); err != nil {
			return fmt.Errorf("writing dump: %w", err)
		}
	}
	return rows.Err()
}

func (r *Repository) dumpTable(ctx context.Context, w io.Writer, table string) error {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM %s`, table))
	if err != nil {
		return fmt.Errorf("reading %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("reading %s columns: %w", table, err)
	}

	values := make([]any, len(columns))
	scanTargets := make([]any, len(columns))
	for i := range values {
		scanTargets[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanTargets...); err != nil {
			return fmt.Errorf("scanning %s row: %w", table, err)
		}

		literals := make([]string, len(values))
		for i, v := range values {
			literals[i] = sqlLiteral(v)
		}

		stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);\n",
			table, strings.Join(columns, ", "), strings.Join(literals, ", "))
		if _, err := io.WriteString(w, stmt); err != nil {
			return fmt.Errorf("writing dump: %w", err)
		}
	}
	return rows.Err()
}

// sqlLiteral renders a scanned value as a SQL literal.
func sqlLiteral(v any) string {
	switch value := v.(type) {
	case nil:
		return "NULL"
	case int64:
		return fmt.Sprintf("%d", value)
	case float64:
		return fmt.Sprintf("%g", value)
	case bool:
		if value {
			return "1"
		}
		return "0"
	case []byte:
		return quoteSQLString(string(value))
	case string:
		return quoteSQLString(value)
	case time.Time:
		return quoteSQLString(formatTime(value))
	default:
		return quoteSQLString(fmt.Sprintf("%v", value))
	}
}

func quoteSQLString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// buildInClause builds the placeholder list and args for an IN (...) query.
func buildInClause(ids []string) (string, []any) {
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	return strings.Join(placeholders, ","), args
}

// scanLocation scans a location row, optionally with a leading key column.
func scanLocation(rows *sql.Rows, key *string) (*entities.Location, error) {
	var location entities.Location
	var aliases, address, createdAt sql.NullString
	var latitude, longitude sql.NullFloat64

	targets := []any{
		&location.ID,
		&location.Name,
		&aliases,
		&location.ArtifactID,
		&address,
		&latitude,
		&longitude,
		&createdAt,
	}
	if key != nil {
		targets = append([]any{key}, targets...)
	}

	if err := rows.Scan(targets...); err != nil {
		return nil, fmt.Errorf("scanning location: %w", err)
	}

	location.Aliases = entities.ParseAliases(aliases.String)
	if address.Valid {
		addr := address.String
		location.Address = &addr
	}
	if latitude.Valid {
		lat := latitude.Float64
		location.Latitude = &lat
	}
	if longitude.Valid {
		lon := longitude.Float64
		location.Longitude = &lon
	}
	location.CreatedAt = parseTime(createdAt.String)

	return &location, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// encodePageRange validates and JSON-encodes a page range for storage.
func encodePageRange(r entities.PageRange) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	if len(r) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshaling page range: %w", err)
	}
	return string(data), nil
}

// decodePageRange decodes a stored page range, tolerating malformed
// content the same way alias columns are tolerated.
func decodePageRange(raw string) entities.PageRange {
	if raw == "" {
		return entities.PageRange{}
	}
	var r entities.PageRange
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return entities.PageRange{}
	}
	return r
}

// Timestamps are stored as fixed-width UTC RFC 3339 text so lexical
// order matches chronological order for the created_at tie-break.
// RFC3339Nano would trim trailing zeros and break that property.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
