package jsonfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jwnbm/familytree/internal/storage"
	"github.com/jwnbm/familytree/internal/tree"
)

func strptr(s string) *string { return &s }

// sampleTree exercises every entity kind and every optional field shape.
func sampleTree() *tree.FamilyTree {
	t := tree.New()

	father := t.AddPerson(tree.Person{
		Name:     "Taro",
		Gender:   tree.GenderMale,
		Birth:    strptr("1950-01-01"),
		Memo:     "founder",
		Position: tree.Point{X: 10, Y: 20},
		Deceased: true,
		Death:    strptr("2020-12-31"),
	})
	mother := t.AddPerson(tree.Person{
		Name:        "Hanako",
		Gender:      tree.GenderFemale,
		Birth:       strptr("1952-03-15"),
		PhotoPath:   strptr("/photos/hanako.png"),
		DisplayMode: tree.DisplayNameAndPhoto,
		PhotoScale:  1.5,
	})
	child := t.AddPerson(tree.Person{Name: "Jiro"})

	t.AddParentChild(father, child, "biological")
	t.AddParentChild(mother, child, "biological")
	t.AddSpouse(father, mother, "married 1975")

	famID := t.AddFamily("Yamada", &tree.Color{R: 200, G: 100, B: 50})
	t.AddFamilyMember(famID, father)
	t.AddFamilyMember(famID, mother)
	t.AddFamily("Uncolored", nil)

	eventID := t.AddEvent(tree.Event{
		Name:     "Wedding",
		Date:     strptr("1975-06-01"),
		Position: tree.Point{X: 300, Y: 100},
		Color:    tree.Color{R: 255, G: 255, B: 200},
	})
	t.AddEventRelation(eventID, father, tree.RelationArrowToPerson, "groom")
	t.AddEventRelation(eventID, mother, tree.RelationLine, "")

	return t
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "family.json")
	repo := New()
	want := sampleTree()

	if err := repo.Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripEmptyTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	repo := New()

	if err := repo.Save(path, tree.New()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Persons) != 0 || len(got.Edges) != 0 || len(got.Events) != 0 {
		t.Errorf("empty tree round trip produced entities: %+v", got)
	}
	if got.Persons == nil || got.Events == nil {
		t.Error("maps not initialized after load")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New().Load(filepath.Join(t.TempDir(), "absent.json"))
	var se *storage.Error
	if !errors.As(err, &se) || se.Kind != storage.KindRead {
		t.Fatalf("err = %v, want KindRead", err)
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := New().Load(path)
	var se *storage.Error
	if !errors.As(err, &se) || se.Kind != storage.KindDeserialize {
		t.Fatalf("err = %v, want KindDeserialize", err)
	}
}

func TestSaveUnwritablePath(t *testing.T) {
	err := New().Save(filepath.Join(t.TempDir(), "no", "such", "dir", "f.json"), tree.New())
	var se *storage.Error
	if !errors.As(err, &se) || se.Kind != storage.KindWrite {
		t.Fatalf("err = %v, want KindWrite", err)
	}
}

func TestLoadIgnoresUnknownFieldsAndAppliesDefaults(t *testing.T) {
	doc := `{
		"persons": {
			"0b7e4f1a-9b7a-4b58-8a8c-0f2f3c4d5e6f": {
				"id": "0b7e4f1a-9b7a-4b58-8a8c-0f2f3c4d5e6f",
				"name": "Minimal"
			}
		},
		"edges": [],
		"future_field": {"ignored": true}
	}`
	path := filepath.Join(t.TempDir(), "forward.json")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := New().Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Persons) != 1 {
		t.Fatalf("persons = %d, want 1", len(got.Persons))
	}
	for _, p := range got.Persons {
		if p.Gender != tree.GenderUnknown {
			t.Errorf("gender = %v, want unknown default", p.Gender)
		}
		if p.DisplayMode != tree.DisplayNameOnly {
			t.Errorf("display mode = %v, want name-only default", p.DisplayMode)
		}
		if p.PhotoScale != tree.DefaultPhotoScale {
			t.Errorf("photo scale = %v, want %v", p.PhotoScale, tree.DefaultPhotoScale)
		}
	}
}

func TestLoadRejectsInvalidEnumName(t *testing.T) {
	doc := `{
		"persons": {
			"0b7e4f1a-9b7a-4b58-8a8c-0f2f3c4d5e6f": {
				"id": "0b7e4f1a-9b7a-4b58-8a8c-0f2f3c4d5e6f",
				"name": "Broken",
				"gender": "martian"
			}
		}
	}`
	path := filepath.Join(t.TempDir(), "badenum.json")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := New().Load(path)
	var se *storage.Error
	if !errors.As(err, &se) || se.Kind != storage.KindDeserialize {
		t.Fatalf("err = %v, want KindDeserialize", err)
	}
}
