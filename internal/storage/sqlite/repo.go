// Package sqlite persists a family tree in a normalized SQLite database:
// one table per entity kind plus a single-row metadata table carrying the
// schema version. Saves clear and rewrite every table inside one
// transaction, so a partially written tree is never visible to a load.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jwnbm/familytree/internal/storage"
	"github.com/jwnbm/familytree/internal/tree"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// schemaVersion is written to tree_metadata on every save. Bump only on
// breaking schema changes.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS tree_metadata (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	schema_version INTEGER NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS persons (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	gender INTEGER NOT NULL,
	birth TEXT,
	memo TEXT NOT NULL DEFAULT '',
	position_x REAL NOT NULL DEFAULT 0,
	position_y REAL NOT NULL DEFAULT 0,
	deceased INTEGER NOT NULL DEFAULT 0,
	death TEXT,
	photo_path TEXT,
	display_mode INTEGER NOT NULL DEFAULT 0,
	photo_scale REAL NOT NULL DEFAULT 1.0
);

CREATE TABLE IF NOT EXISTS parent_child_edges (
	parent_id TEXT NOT NULL,
	child_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	PRIMARY KEY (parent_id, child_id, kind),
	FOREIGN KEY (parent_id) REFERENCES persons(id) ON DELETE CASCADE,
	FOREIGN KEY (child_id) REFERENCES persons(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS spouses (
	person1_id TEXT NOT NULL,
	person2_id TEXT NOT NULL,
	memo TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (person1_id, person2_id),
	FOREIGN KEY (person1_id) REFERENCES persons(id) ON DELETE CASCADE,
	FOREIGN KEY (person2_id) REFERENCES persons(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS families (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	color_r INTEGER,
	color_g INTEGER,
	color_b INTEGER
);

CREATE TABLE IF NOT EXISTS family_members (
	family_id TEXT NOT NULL,
	person_id TEXT NOT NULL,
	PRIMARY KEY (family_id, person_id),
	FOREIGN KEY (family_id) REFERENCES families(id) ON DELETE CASCADE,
	FOREIGN KEY (person_id) REFERENCES persons(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	date TEXT,
	description TEXT NOT NULL DEFAULT '',
	position_x REAL NOT NULL DEFAULT 0,
	position_y REAL NOT NULL DEFAULT 0,
	color_r INTEGER NOT NULL,
	color_g INTEGER NOT NULL,
	color_b INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS event_relations (
	event_id TEXT NOT NULL,
	person_id TEXT NOT NULL,
	relation_type INTEGER NOT NULL DEFAULT 0,
	memo TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (event_id, person_id),
	FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE,
	FOREIGN KEY (person_id) REFERENCES persons(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_edges_parent ON parent_child_edges(parent_id);
CREATE INDEX IF NOT EXISTS idx_edges_child ON parent_child_edges(child_id);
CREATE INDEX IF NOT EXISTS idx_family_members_person ON family_members(person_id);
CREATE INDEX IF NOT EXISTS idx_event_relations_event ON event_relations(event_id);
CREATE INDEX IF NOT EXISTS idx_event_relations_person ON event_relations(person_id);
`

// Repository is the relational backend. Connections are opened per call;
// no state is held between loads and saves.
type Repository struct{}

// New returns a SQLite repository.
func New() *Repository { return &Repository{} }

// open connects to the database at path, enables foreign keys, and ensures
// the schema exists. The schema statements are all create-if-absent, so
// opening an already populated file is harmless.
func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return db, nil
}

// Save rewrites the whole database from the in-memory tree inside a single
// transaction.
func (*Repository) Save(path string, t *tree.FamilyTree) error {
	db, err := open(path)
	if err != nil {
		return storage.Writef("%s: %v", path, err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return storage.Writef("begin transaction: %v", err)
	}
	defer tx.Rollback()

	// Clear child tables before their parents.
	for _, table := range []string{
		"event_relations", "family_members", "spouses",
		"parent_child_edges", "events", "families", "persons",
	} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return storage.Writef("clear %s: %v", table, err)
		}
	}

	for id, p := range t.Persons {
		_, err := tx.Exec(`
			INSERT INTO persons (id, name, gender, birth, memo,
				position_x, position_y, deceased, death, photo_path,
				display_mode, photo_scale)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id.String(), p.Name, encodeGender(p.Gender), p.Birth, p.Memo,
			p.Position.X, p.Position.Y, encodeBool(p.Deceased), p.Death,
			p.PhotoPath, encodeDisplayMode(p.DisplayMode), p.PhotoScale,
		)
		if err != nil {
			return storage.Writef("insert person %s: %v", id, err)
		}
	}

	for _, e := range t.Edges {
		_, err := tx.Exec(`
			INSERT INTO parent_child_edges (parent_id, child_id, kind)
			VALUES (?, ?, ?)`,
			e.Parent.String(), e.Child.String(), e.Kind,
		)
		if err != nil {
			return storage.Writef("insert edge %s -> %s: %v", e.Parent, e.Child, err)
		}
	}

	for _, s := range t.Spouses {
		_, err := tx.Exec(`
			INSERT INTO spouses (person1_id, person2_id, memo)
			VALUES (?, ?, ?)`,
			s.Person1.String(), s.Person2.String(), s.Memo,
		)
		if err != nil {
			return storage.Writef("insert spouse pair %s / %s: %v", s.Person1, s.Person2, err)
		}
	}

	for _, f := range t.Families {
		var r, g, b any
		if f.Color != nil {
			r, g, b = int(f.Color.R), int(f.Color.G), int(f.Color.B)
		}
		_, err := tx.Exec(`
			INSERT INTO families (id, name, color_r, color_g, color_b)
			VALUES (?, ?, ?, ?, ?)`,
			f.ID.String(), f.Name, r, g, b,
		)
		if err != nil {
			return storage.Writef("insert family %s: %v", f.ID, err)
		}
		for _, m := range f.Members {
			_, err := tx.Exec(`
				INSERT INTO family_members (family_id, person_id)
				VALUES (?, ?)`,
				f.ID.String(), m.String(),
			)
			if err != nil {
				return storage.Writef("insert family member %s of %s: %v", m, f.ID, err)
			}
		}
	}

	for id, e := range t.Events {
		_, err := tx.Exec(`
			INSERT INTO events (id, name, date, description,
				position_x, position_y, color_r, color_g, color_b)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id.String(), e.Name, e.Date, e.Description,
			e.Position.X, e.Position.Y,
			int(e.Color.R), int(e.Color.G), int(e.Color.B),
		)
		if err != nil {
			return storage.Writef("insert event %s: %v", id, err)
		}
	}

	for _, r := range t.EventRelations {
		// Removing a person leaves their event relations in the aggregate.
		// The schema's foreign keys would reject those rows, so they are
		// dropped here; the tree loaded back reflects the cascade.
		if _, ok := t.Persons[r.Person]; !ok {
			continue
		}
		if _, ok := t.Events[r.Event]; !ok {
			continue
		}
		_, err := tx.Exec(`
			INSERT INTO event_relations (event_id, person_id, relation_type, memo)
			VALUES (?, ?, ?, ?)`,
			r.Event.String(), r.Person.String(),
			encodeRelationType(r.RelationType), r.Memo,
		)
		if err != nil {
			return storage.Writef("insert event relation %s / %s: %v", r.Event, r.Person, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO tree_metadata (id, schema_version, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			schema_version = excluded.schema_version,
			updated_at = excluded.updated_at`,
		schemaVersion, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return storage.Writef("upsert metadata: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return storage.Writef("commit transaction: %v", err)
	}
	return nil
}

// Load reads the whole database back into a tree. A database without a
// metadata row was never saved by us and is reported as a read error rather
// than an empty tree.
func (*Repository) Load(path string) (*tree.FamilyTree, error) {
	db, err := open(path)
	if err != nil {
		return nil, storage.Readf("%s: %v", path, err)
	}
	defer db.Close()

	var version int
	err = db.QueryRow("SELECT schema_version FROM tree_metadata WHERE id = 1").Scan(&version)
	if err == sql.ErrNoRows {
		return nil, storage.Readf("no tree data found in %s", path)
	}
	if err != nil {
		return nil, storage.Readf("read metadata: %v", err)
	}

	t := tree.New()
	if err := loadPersons(db, t); err != nil {
		return nil, err
	}
	if err := loadEdges(db, t); err != nil {
		return nil, err
	}
	if err := loadSpouses(db, t); err != nil {
		return nil, err
	}
	if err := loadFamilies(db, t); err != nil {
		return nil, err
	}
	if err := loadEvents(db, t); err != nil {
		return nil, err
	}
	if err := loadEventRelations(db, t); err != nil {
		return nil, err
	}
	t.SetDefaults()
	return t, nil
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, storage.Deserializef("invalid %s %q: %v", field, raw, err)
	}
	return id, nil
}

func loadPersons(db *sql.DB, t *tree.FamilyTree) error {
	rows, err := db.Query(`
		SELECT id, name, gender, birth, memo, position_x, position_y,
		       deceased, death, photo_path, display_mode, photo_scale
		FROM persons`)
	if err != nil {
		return storage.Readf("query persons: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rawID, name, memo string
		var gender, dead, mode int
		var birth, death, photo sql.NullString
		var posX, posY, photoScl float64
		if err := rows.Scan(&rawID, &name, &gender, &birth, &memo,
			&posX, &posY, &dead, &death, &photo, &mode, &photoScl); err != nil {
			return storage.Deserializef("scan person row: %v", err)
		}

		id, err := parseID("person id", rawID)
		if err != nil {
			return err
		}
		g, err := decodeGender(gender)
		if err != nil {
			return err
		}
		deceased, err := decodeBool(dead, "deceased")
		if err != nil {
			return err
		}
		dm, err := decodeDisplayMode(mode)
		if err != nil {
			return err
		}

		t.Persons[id] = &tree.Person{
			ID:          id,
			Name:        name,
			Gender:      g,
			Birth:       nullString(birth),
			Memo:        memo,
			Position:    tree.Point{X: float32(posX), Y: float32(posY)},
			Deceased:    deceased,
			Death:       nullString(death),
			PhotoPath:   nullString(photo),
			DisplayMode: dm,
			PhotoScale:  float32(photoScl),
		}
	}
	if err := rows.Err(); err != nil {
		return storage.Readf("iterate persons: %v", err)
	}
	return nil
}

func loadEdges(db *sql.DB, t *tree.FamilyTree) error {
	rows, err := db.Query("SELECT parent_id, child_id, kind FROM parent_child_edges")
	if err != nil {
		return storage.Readf("query edges: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rawParent, rawChild, kind string
		if err := rows.Scan(&rawParent, &rawChild, &kind); err != nil {
			return storage.Deserializef("scan edge row: %v", err)
		}
		parent, err := parseID("edge parent id", rawParent)
		if err != nil {
			return err
		}
		child, err := parseID("edge child id", rawChild)
		if err != nil {
			return err
		}
		t.Edges = append(t.Edges, tree.ParentChild{Parent: parent, Child: child, Kind: kind})
	}
	if err := rows.Err(); err != nil {
		return storage.Readf("iterate edges: %v", err)
	}
	return nil
}

func loadSpouses(db *sql.DB, t *tree.FamilyTree) error {
	rows, err := db.Query("SELECT person1_id, person2_id, memo FROM spouses")
	if err != nil {
		return storage.Readf("query spouses: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw1, raw2, memo string
		if err := rows.Scan(&raw1, &raw2, &memo); err != nil {
			return storage.Deserializef("scan spouse row: %v", err)
		}
		p1, err := parseID("spouse person1 id", raw1)
		if err != nil {
			return err
		}
		p2, err := parseID("spouse person2 id", raw2)
		if err != nil {
			return err
		}
		t.Spouses = append(t.Spouses, tree.Spouse{Person1: p1, Person2: p2, Memo: memo})
	}
	if err := rows.Err(); err != nil {
		return storage.Readf("iterate spouses: %v", err)
	}
	return nil
}

func loadFamilies(db *sql.DB, t *tree.FamilyTree) error {
	rows, err := db.Query("SELECT id, name, color_r, color_g, color_b FROM families")
	if err != nil {
		return storage.Readf("query families: %v", err)
	}
	defer rows.Close()

	byID := make(map[tree.FamilyID]*tree.Family)
	for rows.Next() {
		var (
			rawID, name string
			r, g, b     sql.NullInt64
		)
		if err := rows.Scan(&rawID, &name, &r, &g, &b); err != nil {
			return storage.Deserializef("scan family row: %v", err)
		}
		id, err := parseID("family id", rawID)
		if err != nil {
			return err
		}

		var color *tree.Color
		switch {
		case r.Valid && g.Valid && b.Valid:
			color = &tree.Color{R: uint8(r.Int64), G: uint8(g.Int64), B: uint8(b.Int64)}
		case !r.Valid && !g.Valid && !b.Valid:
			// no color
		default:
			return storage.Deserializef("family %s has partial color columns", rawID)
		}

		f := &tree.Family{ID: id, Name: name, Members: []tree.PersonID{}, Color: color}
		t.Families = append(t.Families, f)
		byID[id] = f
	}
	if err := rows.Err(); err != nil {
		return storage.Readf("iterate families: %v", err)
	}

	memberRows, err := db.Query("SELECT family_id, person_id FROM family_members")
	if err != nil {
		return storage.Readf("query family members: %v", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var rawFamily, rawPerson string
		if err := memberRows.Scan(&rawFamily, &rawPerson); err != nil {
			return storage.Deserializef("scan family member row: %v", err)
		}
		familyID, err := parseID("family member family id", rawFamily)
		if err != nil {
			return err
		}
		personID, err := parseID("family member person id", rawPerson)
		if err != nil {
			return err
		}
		f, ok := byID[familyID]
		if !ok {
			return storage.Deserializef("family member %s references unknown family %s", rawPerson, rawFamily)
		}
		f.Members = append(f.Members, personID)
	}
	if err := memberRows.Err(); err != nil {
		return storage.Readf("iterate family members: %v", err)
	}
	return nil
}

func loadEvents(db *sql.DB, t *tree.FamilyTree) error {
	rows, err := db.Query(`
		SELECT id, name, date, description, position_x, position_y,
		       color_r, color_g, color_b
		FROM events`)
	if err != nil {
		return storage.Readf("query events: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rawID, name, description string
			date                     sql.NullString
			posX, posY               float64
			r, g, b                  int
		)
		if err := rows.Scan(&rawID, &name, &date, &description,
			&posX, &posY, &r, &g, &b); err != nil {
			return storage.Deserializef("scan event row: %v", err)
		}
		id, err := parseID("event id", rawID)
		if err != nil {
			return err
		}
		t.Events[id] = &tree.Event{
			ID:          id,
			Name:        name,
			Date:        nullString(date),
			Description: description,
			Position:    tree.Point{X: float32(posX), Y: float32(posY)},
			Color:       tree.Color{R: uint8(r), G: uint8(g), B: uint8(b)},
		}
	}
	if err := rows.Err(); err != nil {
		return storage.Readf("iterate events: %v", err)
	}
	return nil
}

func loadEventRelations(db *sql.DB, t *tree.FamilyTree) error {
	rows, err := db.Query("SELECT event_id, person_id, relation_type, memo FROM event_relations")
	if err != nil {
		return storage.Readf("query event relations: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rawEvent, rawPerson, memo string
			relType                   int
		)
		if err := rows.Scan(&rawEvent, &rawPerson, &relType, &memo); err != nil {
			return storage.Deserializef("scan event relation row: %v", err)
		}
		eventID, err := parseID("event relation event id", rawEvent)
		if err != nil {
			return err
		}
		personID, err := parseID("event relation person id", rawPerson)
		if err != nil {
			return err
		}
		rt, err := decodeRelationType(relType)
		if err != nil {
			return err
		}
		t.EventRelations = append(t.EventRelations, tree.EventRelation{
			Event:        eventID,
			Person:       personID,
			RelationType: rt,
			Memo:         memo,
		})
	}
	if err := rows.Err(); err != nil {
		return storage.Readf("iterate event relations: %v", err)
	}
	return nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
