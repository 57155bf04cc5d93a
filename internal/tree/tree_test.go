package tree

import (
	"testing"

	"github.com/google/uuid"
)

func strptr(s string) *string { return &s }

func TestAddPerson(t *testing.T) {
	tr := New()
	id := tr.AddPerson(Person{
		Name:     "Test Person",
		Gender:   GenderMale,
		Birth:    strptr("2000-01-01"),
		Memo:     "Test memo",
		Position: Point{X: 100, Y: 50},
	})

	if len(tr.Persons) != 1 {
		t.Fatalf("persons = %d, want 1", len(tr.Persons))
	}
	p := tr.Persons[id]
	if p == nil {
		t.Fatal("inserted person not found by returned id")
	}
	if p.Name != "Test Person" {
		t.Errorf("name = %q, want %q", p.Name, "Test Person")
	}
	if p.Gender != GenderMale {
		t.Errorf("gender = %v, want Male", p.Gender)
	}
	if p.Birth == nil || *p.Birth != "2000-01-01" {
		t.Errorf("birth = %v, want 2000-01-01", p.Birth)
	}
	if p.Deceased || p.Death != nil {
		t.Errorf("new person should not be deceased")
	}
	if p.PhotoScale != DefaultPhotoScale {
		t.Errorf("photo scale = %v, want default %v", p.PhotoScale, DefaultPhotoScale)
	}
}

func TestRemovePerson_Cascades(t *testing.T) {
	tr := New()
	parent := tr.AddPerson(Person{Name: "Parent", Gender: GenderFemale})
	child := tr.AddPerson(Person{Name: "Child", Gender: GenderMale})
	spouse := tr.AddPerson(Person{Name: "Spouse", Gender: GenderMale})

	tr.AddParentChild(parent, child, "biological")
	tr.AddSpouse(parent, spouse, "")

	tr.RemovePerson(parent)

	if len(tr.Persons) != 2 {
		t.Errorf("persons = %d, want 2", len(tr.Persons))
	}
	if tr.Persons[parent] != nil {
		t.Error("removed person still present")
	}
	if len(tr.Edges) != 0 {
		t.Errorf("edges = %d, want 0", len(tr.Edges))
	}
	if len(tr.Spouses) != 0 {
		t.Errorf("spouses = %d, want 0", len(tr.Spouses))
	}
}

func TestRemovePerson_AbsentIDIsNoop(t *testing.T) {
	tr := New()
	tr.AddPerson(Person{Name: "Only"})
	tr.RemovePerson(uuid.New())
	if len(tr.Persons) != 1 {
		t.Errorf("persons = %d, want 1", len(tr.Persons))
	}
}

func TestRemovePerson_KeepsEventRelations(t *testing.T) {
	tr := New()
	p := tr.AddPerson(Person{Name: "P"})
	ev := tr.AddEvent(Event{Name: "Wedding"})
	tr.AddEventRelation(ev, p, RelationLine, "")

	tr.RemovePerson(p)

	// The model leaves relations to removed persons alone; only the
	// relational schema cascades them.
	if len(tr.EventRelations) != 1 {
		t.Errorf("event relations = %d, want 1", len(tr.EventRelations))
	}
}

func TestAddParentChild_DuplicateKinds(t *testing.T) {
	tr := New()
	parent := tr.AddPerson(Person{Name: "Parent"})
	child := tr.AddPerson(Person{Name: "Child"})

	tr.AddParentChild(parent, child, "biological")
	tr.AddParentChild(parent, child, "biological")
	if len(tr.Edges) != 1 {
		t.Fatalf("edges after duplicate add = %d, want 1", len(tr.Edges))
	}

	tr.AddParentChild(parent, child, "adoptive")
	if len(tr.Edges) != 2 {
		t.Fatalf("edges after different kind = %d, want 2", len(tr.Edges))
	}
}

func TestRemoveParentChild_RemovesAllKinds(t *testing.T) {
	tr := New()
	parent := tr.AddPerson(Person{Name: "Parent"})
	child := tr.AddPerson(Person{Name: "Child"})

	tr.AddParentChild(parent, child, "biological")
	tr.AddParentChild(parent, child, "adoptive")

	tr.RemoveParentChild(parent, child)
	if len(tr.Edges) != 0 {
		t.Errorf("edges = %d, want 0 (removal ignores kind)", len(tr.Edges))
	}
}

func TestAddSpouse_SymmetricDuplicate(t *testing.T) {
	tr := New()
	a := tr.AddPerson(Person{Name: "A"})
	b := tr.AddPerson(Person{Name: "B"})

	tr.AddSpouse(a, b, "1990")
	tr.AddSpouse(a, b, "1990")
	tr.AddSpouse(b, a, "2001")
	if len(tr.Spouses) != 1 {
		t.Fatalf("spouses = %d, want 1", len(tr.Spouses))
	}
	if tr.Spouses[0].Memo != "1990" {
		t.Errorf("memo = %q, want original memo preserved", tr.Spouses[0].Memo)
	}
}

func TestRemoveSpouse_EitherOrder(t *testing.T) {
	tr := New()
	a := tr.AddPerson(Person{Name: "A"})
	b := tr.AddPerson(Person{Name: "B"})

	tr.AddSpouse(a, b, "1990")
	tr.RemoveSpouse(a, b)
	if len(tr.Spouses) != 0 {
		t.Fatalf("spouses = %d, want 0", len(tr.Spouses))
	}

	tr.AddSpouse(a, b, "1990")
	tr.RemoveSpouse(b, a)
	if len(tr.Spouses) != 0 {
		t.Fatalf("spouses after reversed removal = %d, want 0", len(tr.Spouses))
	}
}

func containsID(ids []PersonID, id PersonID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestParentsChildrenSpousesOf(t *testing.T) {
	tr := New()
	father := tr.AddPerson(Person{Name: "Father", Gender: GenderMale})
	mother := tr.AddPerson(Person{Name: "Mother", Gender: GenderFemale})
	child := tr.AddPerson(Person{Name: "Child"})
	second := tr.AddPerson(Person{Name: "Second"})

	tr.AddParentChild(father, child, "biological")
	tr.AddParentChild(mother, child, "biological")
	tr.AddSpouse(father, mother, "1990")
	tr.AddSpouse(father, second, "2000")

	parents := tr.ParentsOf(child)
	if len(parents) != 2 || !containsID(parents, father) || !containsID(parents, mother) {
		t.Errorf("ParentsOf = %v, want father and mother", parents)
	}

	children := tr.ChildrenOf(father)
	if len(children) != 1 || children[0] != child {
		t.Errorf("ChildrenOf = %v, want [child]", children)
	}

	spouses := tr.SpousesOf(father)
	if len(spouses) != 2 || !containsID(spouses, mother) || !containsID(spouses, second) {
		t.Errorf("SpousesOf(father) = %v, want mother and second", spouses)
	}
	if got := tr.SpousesOf(mother); len(got) != 1 || got[0] != father {
		t.Errorf("SpousesOf(mother) = %v, want [father]", got)
	}
}

func TestRoots(t *testing.T) {
	tr := New()
	grandparent := tr.AddPerson(Person{Name: "Grandparent"})
	parent := tr.AddPerson(Person{Name: "Parent"})
	child := tr.AddPerson(Person{Name: "Child"})
	orphan := tr.AddPerson(Person{Name: "Orphan"})

	tr.AddParentChild(grandparent, parent, "biological")
	tr.AddParentChild(parent, child, "biological")

	roots := tr.Roots()
	if len(roots) != 2 {
		t.Fatalf("roots = %d, want 2", len(roots))
	}
	if !containsID(roots, grandparent) || !containsID(roots, orphan) {
		t.Errorf("roots = %v, want grandparent and orphan", roots)
	}
	if containsID(roots, parent) || containsID(roots, child) {
		t.Errorf("roots contains non-root person")
	}
}

func TestRoots_PureCycleHasNone(t *testing.T) {
	tr := New()
	a := tr.AddPerson(Person{Name: "A"})
	b := tr.AddPerson(Person{Name: "B"})
	tr.AddParentChild(a, b, "biological")
	tr.AddParentChild(b, a, "biological")

	if roots := tr.Roots(); len(roots) != 0 {
		t.Errorf("roots = %v, want empty for a pure cycle", roots)
	}
}

func TestFamilyManagement(t *testing.T) {
	tr := New()
	p1 := tr.AddPerson(Person{Name: "Father"})
	p2 := tr.AddPerson(Person{Name: "Mother"})
	p3 := tr.AddPerson(Person{Name: "Child"})

	familyID := tr.AddFamily("Test Family", &Color{R: 100, G: 150, B: 200})
	if len(tr.Families) != 1 {
		t.Fatalf("families = %d, want 1", len(tr.Families))
	}
	f := tr.GetFamily(familyID)
	if f.Name != "Test Family" {
		t.Errorf("name = %q", f.Name)
	}
	if f.Color == nil || *f.Color != (Color{R: 100, G: 150, B: 200}) {
		t.Errorf("color = %v", f.Color)
	}

	tr.AddFamilyMember(familyID, p1)
	tr.AddFamilyMember(familyID, p2)
	tr.AddFamilyMember(familyID, p3)
	tr.AddFamilyMember(familyID, p3) // duplicate: no-op
	if len(f.Members) != 3 {
		t.Fatalf("members = %d, want 3", len(f.Members))
	}
	if f.Members[0] != p1 || f.Members[1] != p2 || f.Members[2] != p3 {
		t.Error("members not in insertion order")
	}

	tr.RemoveFamilyMember(familyID, p3)
	if len(f.Members) != 2 || containsID(f.Members, p3) {
		t.Errorf("members after removal = %v", f.Members)
	}

	tr.RenameFamily(familyID, "Renamed")
	tr.RecolorFamily(familyID, nil)
	if f.Name != "Renamed" || f.Color != nil {
		t.Errorf("rename/recolor not applied: %q %v", f.Name, f.Color)
	}

	tr.RemoveFamily(familyID)
	if len(tr.Families) != 0 {
		t.Errorf("families = %d, want 0", len(tr.Families))
	}
}

func TestRemovePerson_UpdatesFamilies(t *testing.T) {
	tr := New()
	p1 := tr.AddPerson(Person{Name: "Person1"})
	p2 := tr.AddPerson(Person{Name: "Person2"})

	familyID := tr.AddFamily("Family", nil)
	tr.AddFamilyMember(familyID, p1)
	tr.AddFamilyMember(familyID, p2)

	tr.RemovePerson(p1)

	f := tr.GetFamily(familyID)
	if len(f.Members) != 1 || f.Members[0] != p2 {
		t.Errorf("members = %v, want [p2]", f.Members)
	}
}

func TestFamiliesContaining(t *testing.T) {
	tr := New()
	p := tr.AddPerson(Person{Name: "P"})
	f1 := tr.AddFamily("One", nil)
	tr.AddFamily("Two", nil)
	tr.AddFamilyMember(f1, p)

	got := tr.FamiliesContaining(p)
	if len(got) != 1 || got[0].ID != f1 {
		t.Errorf("FamiliesContaining = %v, want family One only", got)
	}
}

func TestEventLifecycle(t *testing.T) {
	tr := New()
	p := tr.AddPerson(Person{Name: "P"})
	ev := tr.AddEvent(Event{
		Name:        "Graduation",
		Date:        strptr("2020-03-03"),
		Description: "desc",
		Position:    Point{X: 10, Y: 20},
		Color:       Color{R: 1, G: 2, B: 3},
	})

	tr.AddEventRelation(ev, p, RelationArrowToPerson, "memo")
	tr.AddEventRelation(ev, p, RelationLine, "other") // duplicate pair: no-op
	if len(tr.EventRelations) != 1 {
		t.Fatalf("relations = %d, want 1", len(tr.EventRelations))
	}
	if tr.EventRelations[0].RelationType != RelationArrowToPerson {
		t.Error("duplicate add must not update relation type")
	}
	if got := tr.EventRelationsOf(ev); len(got) != 1 {
		t.Errorf("EventRelationsOf = %v, want one relation", got)
	}

	tr.RemoveEvent(ev)
	if len(tr.Events) != 0 {
		t.Errorf("events = %d, want 0", len(tr.Events))
	}
	if len(tr.EventRelations) != 0 {
		t.Errorf("relations after event removal = %d, want 0", len(tr.EventRelations))
	}
}

func TestRemoveEventRelation(t *testing.T) {
	tr := New()
	p := tr.AddPerson(Person{Name: "P"})
	ev := tr.AddEvent(Event{Name: "E"})
	tr.AddEventRelation(ev, p, RelationLine, "")
	tr.RemoveEventRelation(ev, p)
	if len(tr.EventRelations) != 0 {
		t.Errorf("relations = %d, want 0", len(tr.EventRelations))
	}
}

func TestSetDefaults(t *testing.T) {
	var tr FamilyTree
	tr.SetDefaults()
	if tr.Persons == nil || tr.Events == nil {
		t.Fatal("SetDefaults must initialize maps")
	}

	id := uuid.New()
	tr.Persons[id] = &Person{ID: id, Name: "Old"}
	tr.SetDefaults()
	if tr.Persons[id].PhotoScale != DefaultPhotoScale {
		t.Errorf("photo scale = %v, want %v", tr.Persons[id].PhotoScale, DefaultPhotoScale)
	}
}
