package sqlite

import (
	"github.com/jwnbm/familytree/internal/storage"
	"github.com/jwnbm/familytree/internal/tree"
)

// Integer enum codecs. These values are the persisted wire format and must
// never be renumbered without a schemaVersion bump.

func encodeGender(g tree.Gender) int {
	switch g {
	case tree.GenderMale:
		return 0
	case tree.GenderFemale:
		return 1
	default:
		return 2
	}
}

func decodeGender(v int) (tree.Gender, error) {
	switch v {
	case 0:
		return tree.GenderMale, nil
	case 1:
		return tree.GenderFemale, nil
	case 2:
		return tree.GenderUnknown, nil
	default:
		return 0, storage.Deserializef("invalid gender value %d", v)
	}
}

func encodeDisplayMode(m tree.PersonDisplayMode) int {
	if m == tree.DisplayNameAndPhoto {
		return 1
	}
	return 0
}

func decodeDisplayMode(v int) (tree.PersonDisplayMode, error) {
	switch v {
	case 0:
		return tree.DisplayNameOnly, nil
	case 1:
		return tree.DisplayNameAndPhoto, nil
	default:
		return 0, storage.Deserializef("invalid display_mode value %d", v)
	}
}

func encodeRelationType(r tree.EventRelationType) int {
	switch r {
	case tree.RelationArrowToPerson:
		return 1
	case tree.RelationArrowToEvent:
		return 2
	default:
		return 0
	}
}

func decodeRelationType(v int) (tree.EventRelationType, error) {
	switch v {
	case 0:
		return tree.RelationLine, nil
	case 1:
		return tree.RelationArrowToPerson, nil
	case 2:
		return tree.RelationArrowToEvent, nil
	default:
		return 0, storage.Deserializef("invalid relation_type value %d", v)
	}
}

func encodeBool(b bool) int {
	if b {
		return 1
	}
	return 0
}

func decodeBool(v int, field string) (bool, error) {
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, storage.Deserializef("invalid %s value %d", field, v)
	}
}
