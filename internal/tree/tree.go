package tree

import "github.com/google/uuid"

// DefaultPhotoScale is applied to newly created persons and to persisted
// persons whose photo_scale field is absent. Editors clamp the value to
// [0.1, 3.0]; the model itself does not.
const DefaultPhotoScale = 1.0

// FamilyTree is the aggregate root owning every entity of one document. It
// is loaded and saved wholesale; there is no partial persistence. The
// aggregate is not safe for concurrent mutation; all operations are meant
// to run on the single UI thread.
type FamilyTree struct {
	Persons        map[PersonID]*Person `json:"persons"`
	Edges          []ParentChild        `json:"edges"`
	Spouses        []Spouse             `json:"spouses,omitempty"`
	Families       []*Family            `json:"families,omitempty"`
	Events         map[EventID]*Event   `json:"events,omitempty"`
	EventRelations []EventRelation      `json:"event_relations,omitempty"`
}

// New returns an empty tree with initialized collections.
func New() *FamilyTree {
	return &FamilyTree{
		Persons: make(map[PersonID]*Person),
		Events:  make(map[EventID]*Event),
	}
}

// SetDefaults fills collections and default-valued fields that older
// documents may omit: nil maps become empty, a zero photo scale becomes
// DefaultPhotoScale.
func (t *FamilyTree) SetDefaults() {
	if t.Persons == nil {
		t.Persons = make(map[PersonID]*Person)
	}
	if t.Events == nil {
		t.Events = make(map[EventID]*Event)
	}
	for _, p := range t.Persons {
		if p.PhotoScale == 0 {
			p.PhotoScale = DefaultPhotoScale
		}
	}
}

// AddPerson inserts a new person, allocating a fresh id. Any id already set
// on the argument is ignored. Returns the allocated id.
func (t *FamilyTree) AddPerson(p Person) PersonID {
	id := uuid.New()
	p.ID = id
	if p.PhotoScale == 0 {
		p.PhotoScale = DefaultPhotoScale
	}
	t.Persons[id] = &p
	return id
}

// RemovePerson removes a person and cascades: every parent-child edge
// touching the person, every spouse relation, and the person's membership in
// every family. Events and event relations referencing the person are left
// in place (the relational schema cascades those on its own). No-op if the
// id is absent.
func (t *FamilyTree) RemovePerson(id PersonID) {
	delete(t.Persons, id)
	edges := t.Edges[:0]
	for _, e := range t.Edges {
		if e.Parent != id && e.Child != id {
			edges = append(edges, e)
		}
	}
	t.Edges = edges
	spouses := t.Spouses[:0]
	for _, s := range t.Spouses {
		if s.Person1 != id && s.Person2 != id {
			spouses = append(spouses, s)
		}
	}
	t.Spouses = spouses
	for _, f := range t.Families {
		members := f.Members[:0]
		for _, m := range f.Members {
			if m != id {
				members = append(members, m)
			}
		}
		f.Members = members
	}
}

// AddParentChild inserts a parent→child edge of the given kind. Inserting an
// identical (parent, child, kind) triple is a silent no-op; a different kind
// between the same pair adds a second edge. No cycle detection is performed.
func (t *FamilyTree) AddParentChild(parent, child PersonID, kind string) {
	for _, e := range t.Edges {
		if e.Parent == parent && e.Child == child && e.Kind == kind {
			return
		}
	}
	t.Edges = append(t.Edges, ParentChild{Parent: parent, Child: child, Kind: kind})
}

// RemoveParentChild removes every edge between the pair regardless of kind.
// Note the asymmetry with AddParentChild, which is kind-specific.
func (t *FamilyTree) RemoveParentChild(parent, child PersonID) {
	edges := t.Edges[:0]
	for _, e := range t.Edges {
		if !(e.Parent == parent && e.Child == child) {
			edges = append(edges, e)
		}
	}
	t.Edges = edges
}

// AddSpouse inserts a spouse relation. The pair is unordered: if (a,b) or
// (b,a) already exists the call is a no-op and the stored memo is not
// updated.
func (t *FamilyTree) AddSpouse(person1, person2 PersonID, memo string) {
	for _, s := range t.Spouses {
		if (s.Person1 == person1 && s.Person2 == person2) ||
			(s.Person1 == person2 && s.Person2 == person1) {
			return
		}
	}
	t.Spouses = append(t.Spouses, Spouse{Person1: person1, Person2: person2, Memo: memo})
}

// RemoveSpouse removes the relation between the pair, matching either order.
func (t *FamilyTree) RemoveSpouse(person1, person2 PersonID) {
	spouses := t.Spouses[:0]
	for _, s := range t.Spouses {
		if (s.Person1 == person1 && s.Person2 == person2) ||
			(s.Person1 == person2 && s.Person2 == person1) {
			continue
		}
		spouses = append(spouses, s)
	}
	t.Spouses = spouses
}

// ParentsOf returns the parents of the given person, one entry per edge.
func (t *FamilyTree) ParentsOf(child PersonID) []PersonID {
	var parents []PersonID
	for _, e := range t.Edges {
		if e.Child == child {
			parents = append(parents, e.Parent)
		}
	}
	return parents
}

// ChildrenOf returns the children of the given person, one entry per edge.
func (t *FamilyTree) ChildrenOf(parent PersonID) []PersonID {
	var children []PersonID
	for _, e := range t.Edges {
		if e.Parent == parent {
			children = append(children, e.Child)
		}
	}
	return children
}

// SpousesOf returns every person married to the given person.
func (t *FamilyTree) SpousesOf(person PersonID) []PersonID {
	var spouses []PersonID
	for _, s := range t.Spouses {
		switch person {
		case s.Person1:
			spouses = append(spouses, s.Person2)
		case s.Person2:
			spouses = append(spouses, s.Person1)
		}
	}
	return spouses
}

// Roots returns every person that appears as a child in no edge. The set is
// recomputed on each call and can change after any edge mutation. An empty
// result for a non-empty tree means every person has a parent (a pure
// cycle); callers treat that as "everyone is generation 0".
func (t *FamilyTree) Roots() []PersonID {
	hasParent := make(map[PersonID]bool, len(t.Persons))
	for id := range t.Persons {
		hasParent[id] = false
	}
	for _, e := range t.Edges {
		hasParent[e.Child] = true
	}
	var roots []PersonID
	for id, hp := range hasParent {
		if !hp {
			roots = append(roots, id)
		}
	}
	return roots
}

// AddFamily creates an empty family grouping and returns its id.
func (t *FamilyTree) AddFamily(name string, color *Color) FamilyID {
	f := &Family{ID: uuid.New(), Name: name, Color: color}
	t.Families = append(t.Families, f)
	return f.ID
}

// RemoveFamily removes the grouping. Members themselves are untouched.
func (t *FamilyTree) RemoveFamily(familyID FamilyID) {
	families := t.Families[:0]
	for _, f := range t.Families {
		if f.ID != familyID {
			families = append(families, f)
		}
	}
	t.Families = families
}

// AddFamilyMember appends a person to the family's member list, preserving
// insertion order. No-op if the person is already a member or the family is
// absent.
func (t *FamilyTree) AddFamilyMember(familyID FamilyID, personID PersonID) {
	f := t.GetFamily(familyID)
	if f == nil {
		return
	}
	for _, m := range f.Members {
		if m == personID {
			return
		}
	}
	f.Members = append(f.Members, personID)
}

// RemoveFamilyMember removes a person from the family's member list.
func (t *FamilyTree) RemoveFamilyMember(familyID FamilyID, personID PersonID) {
	f := t.GetFamily(familyID)
	if f == nil {
		return
	}
	members := f.Members[:0]
	for _, m := range f.Members {
		if m != personID {
			members = append(members, m)
		}
	}
	f.Members = members
}

// RenameFamily sets the family's display name.
func (t *FamilyTree) RenameFamily(familyID FamilyID, name string) {
	if f := t.GetFamily(familyID); f != nil {
		f.Name = name
	}
}

// RecolorFamily sets or clears the family's color.
func (t *FamilyTree) RecolorFamily(familyID FamilyID, color *Color) {
	if f := t.GetFamily(familyID); f != nil {
		f.Color = color
	}
}

// GetFamily returns the family with the given id, or nil.
func (t *FamilyTree) GetFamily(familyID FamilyID) *Family {
	for _, f := range t.Families {
		if f.ID == familyID {
			return f
		}
	}
	return nil
}

// FamiliesContaining returns every family the person is a member of.
func (t *FamilyTree) FamiliesContaining(personID PersonID) []*Family {
	var families []*Family
	for _, f := range t.Families {
		for _, m := range f.Members {
			if m == personID {
				families = append(families, f)
				break
			}
		}
	}
	return families
}

// AddEvent inserts a new timeline event, allocating a fresh id.
func (t *FamilyTree) AddEvent(e Event) EventID {
	id := uuid.New()
	e.ID = id
	t.Events[id] = &e
	return id
}

// RemoveEvent removes the event and cascades its event relations.
func (t *FamilyTree) RemoveEvent(id EventID) {
	delete(t.Events, id)
	relations := t.EventRelations[:0]
	for _, r := range t.EventRelations {
		if r.Event != id {
			relations = append(relations, r)
		}
	}
	t.EventRelations = relations
}

// AddEventRelation ties an event to a person. Duplicate (event, person)
// pairs are a no-op regardless of relation type; changing the type requires
// an explicit remove followed by add.
func (t *FamilyTree) AddEventRelation(event EventID, person PersonID, relationType EventRelationType, memo string) {
	for _, r := range t.EventRelations {
		if r.Event == event && r.Person == person {
			return
		}
	}
	t.EventRelations = append(t.EventRelations, EventRelation{
		Event:        event,
		Person:       person,
		RelationType: relationType,
		Memo:         memo,
	})
}

// RemoveEventRelation removes the relation for the (event, person) pair.
func (t *FamilyTree) RemoveEventRelation(event EventID, person PersonID) {
	relations := t.EventRelations[:0]
	for _, r := range t.EventRelations {
		if !(r.Event == event && r.Person == person) {
			relations = append(relations, r)
		}
	}
	t.EventRelations = relations
}

// EventRelationsOf returns every relation attached to the given event.
func (t *FamilyTree) EventRelationsOf(event EventID) []EventRelation {
	var relations []EventRelation
	for _, r := range t.EventRelations {
		if r.Event == event {
			relations = append(relations, r)
		}
	}
	return relations
}
