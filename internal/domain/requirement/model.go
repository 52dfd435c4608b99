package requirement

import (
	"errors"

	"academy/internal/domain/game"
)

// Severity tier constants. Only critical groups gate wizard progression;
// important and standard groups are informational.
const (
	SeverityCritical  = "critical"
	SeverityImportant = "important"
	SeverityStandard  = "standard"
)

// GameGroupID is the ID of the per-game critical requirements group.
const GameGroupID = "game-requirements"

// Domain errors
var (
	ErrUnknownGroup    = errors.New("unknown requirement group")
	ErrUnknownDocument = errors.New("unknown legal document")
)

// Group is a categorized set of requirements shown to an applicant.
type Group struct {
	ID                 string
	Title              string
	Severity           string
	Items              []string
	VerificationMethod string
}

// LegalDocument is a document the applicant must open and read before applying.
type LegalDocument struct {
	ID          string
	Title       string
	Description string
	Body        string // markdown source rendered for display
	PageCount   int
	Required    bool
}

// GroupsFor returns the requirement groups for a selected game: the
// game-specific critical group first, then the fixed supplementary groups.
// PRE: g is a catalog game
// POST: Returned slice contains exactly one critical group
func GroupsFor(g game.Game) []Group {
	groups := make([]Group, 0, len(supplementaryGroups)+1)
	groups = append(groups, Group{
		ID:                 GameGroupID,
		Title:              g.Name + " Requirements",
		Severity:           SeverityCritical,
		Items:              g.Requirements,
		VerificationMethod: "Rank screenshots and match history in the proof document",
	})
	groups = append(groups, supplementaryGroups...)
	return groups
}

// Documents returns the fixed legal document catalog, independent of game.
func Documents() []LegalDocument {
	out := make([]LegalDocument, len(documents))
	copy(out, documents)
	return out
}

// GetDocument returns the legal document with the given ID.
// PRE: id is non-empty
// POST: Returns the document, or ErrUnknownDocument
func GetDocument(id string) (LegalDocument, error) {
	for _, d := range documents {
		if d.ID == id {
			return d, nil
		}
	}
	return LegalDocument{}, ErrUnknownDocument
}

// CriticalGroupIDs returns the IDs of all critical groups in the given set.
func CriticalGroupIDs(groups []Group) []string {
	var ids []string
	for _, g := range groups {
		if g.Severity == SeverityCritical {
			ids = append(ids, g.ID)
		}
	}
	return ids
}

// RequiredDocumentIDs returns the IDs of all documents with Required=true.
func RequiredDocumentIDs(docs []LegalDocument) []string {
	var ids []string
	for _, d := range docs {
		if d.Required {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// ValidGroupID reports whether id names a group in the given set.
func ValidGroupID(groups []Group, id string) bool {
	for _, g := range groups {
		if g.ID == id {
			return true
		}
	}
	return false
}
