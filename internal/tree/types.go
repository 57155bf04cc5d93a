// Package tree implements the in-memory family tree graph: persons,
// parent-child edges, spousal relations, family groupings, timeline events
// and event-person relations.
//
// The FamilyTree aggregate is the only unit of persistence. All mutation
// operations are synchronous, in-memory and total: absent-id lookups and
// duplicate inserts are defined as no-ops rather than errors, so UI call
// sites never need precondition checks.
package tree

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// PersonID uniquely identifies a person. IDs are generated when the entity
// is created and never reused.
type PersonID = uuid.UUID

// EventID uniquely identifies a timeline event.
type EventID = uuid.UUID

// FamilyID uniquely identifies a family grouping.
type FamilyID = uuid.UUID

// Gender of a person. The zero value is GenderUnknown so that documents
// without a gender field decode to the documented default.
type Gender int

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the gender as its name, matching the document format.
func (g Gender) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

// UnmarshalJSON decodes a gender name. An empty string maps to
// GenderUnknown; any other unrecognized value is an error.
func (g *Gender) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "Male":
		*g = GenderMale
	case "Female":
		*g = GenderFemale
	case "Unknown", "":
		*g = GenderUnknown
	default:
		return fmt.Errorf("invalid gender: %q", name)
	}
	return nil
}

// PersonDisplayMode controls how a person node is rendered on the canvas.
type PersonDisplayMode int

const (
	DisplayNameOnly PersonDisplayMode = iota
	DisplayNameAndPhoto
)

func (m PersonDisplayMode) String() string {
	if m == DisplayNameAndPhoto {
		return "NameAndPhoto"
	}
	return "NameOnly"
}

// MarshalJSON encodes the display mode as its name.
func (m PersonDisplayMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a display mode name, defaulting to NameOnly.
func (m *PersonDisplayMode) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "NameAndPhoto":
		*m = DisplayNameAndPhoto
	case "NameOnly", "":
		*m = DisplayNameOnly
	default:
		return fmt.Errorf("invalid display mode: %q", name)
	}
	return nil
}

// EventRelationType describes how an event-person relation is drawn.
type EventRelationType int

const (
	RelationLine EventRelationType = iota
	RelationArrowToPerson
	RelationArrowToEvent
)

func (r EventRelationType) String() string {
	switch r {
	case RelationArrowToPerson:
		return "ArrowToPerson"
	case RelationArrowToEvent:
		return "ArrowToEvent"
	default:
		return "Line"
	}
}

// MarshalJSON encodes the relation type as its name.
func (r EventRelationType) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a relation type name, defaulting to Line.
func (r *EventRelationType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "ArrowToPerson":
		*r = RelationArrowToPerson
	case "ArrowToEvent":
		*r = RelationArrowToEvent
	case "Line", "":
		*r = RelationLine
	default:
		return fmt.Errorf("invalid event relation type: %q", name)
	}
	return nil
}

// Point is a position in canvas (world) coordinates.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Color is an RGB triple.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Person is a node in the family tree. Birth and death are free-text date
// strings, conventionally "YYYY-MM-DD"; they are stored but never validated.
// Death is only meaningful when Deceased is set, though both fields are kept
// independently.
type Person struct {
	ID          PersonID          `json:"id"`
	Name        string            `json:"name"`
	Gender      Gender            `json:"gender,omitempty"`
	Birth       *string           `json:"birth,omitempty"`
	Memo        string            `json:"memo"`
	Position    Point             `json:"position"`
	Deceased    bool              `json:"deceased,omitempty"`
	Death       *string           `json:"death,omitempty"`
	PhotoPath   *string           `json:"photo_path,omitempty"`
	DisplayMode PersonDisplayMode `json:"display_mode,omitempty"`
	PhotoScale  float32           `json:"photo_scale,omitempty"`
}

// ParentChild is a directed parent→child edge. Kind is a free-text label
// ("biological", "adoptive", ...). The same pair may carry several edges of
// different kinds; identical (parent, child, kind) triples are unique.
type ParentChild struct {
	Parent PersonID `json:"parent"`
	Child  PersonID `json:"child"`
	Kind   string   `json:"kind"`
}

// Spouse is an unordered pair of persons. (A,B) and (B,A) denote the same
// relation.
type Spouse struct {
	Person1 PersonID `json:"person1"`
	Person2 PersonID `json:"person2"`
	Memo    string   `json:"memo"`
}

// Family is a flat grouping of persons with an optional display color. It
// has no structural tie to edges or spouse relations. Members keep insertion
// order and contain no duplicates.
type Family struct {
	ID      FamilyID   `json:"id"`
	Name    string     `json:"name"`
	Members []PersonID `json:"members"`
	Color   *Color     `json:"color,omitempty"`
}

// Event is a timeline event placed on the canvas. Unlike a person's photo,
// the color is always present.
type Event struct {
	ID          EventID `json:"id"`
	Name        string  `json:"name"`
	Date        *string `json:"date,omitempty"`
	Description string  `json:"description"`
	Position    Point   `json:"position"`
	Color       Color   `json:"color"`
}

// EventRelation ties an event to a person. At most one relation exists per
// (event, person) pair; the relation type is not part of that key.
type EventRelation struct {
	Event        EventID           `json:"event"`
	Person       PersonID          `json:"person"`
	RelationType EventRelationType `json:"relation_type,omitempty"`
	Memo         string            `json:"memo"`
}
