package model

// Sex as stored in the names table. Communities are stored with SexClub.
type Sex int

const (
	SexClub   Sex = 0
	SexFemale Sex = 1
	SexMale   Sex = 2
)

// Case is a Russian grammatical case used by audit templates.
type Case int

const (
	CaseNominative Case = iota
	CaseGenitive
	CaseDative
	CaseAccusative
)

// NameInfo holds the name forms of a user or, for negative ids, of a community.
type NameInfo struct {
	Id  int64
	Sex Sex
	Nom string
	Gen string
	Dat string
	Acc string
}

func (n NameInfo) IsCommunity() bool {
	return n.Id < 0
}

func (n NameInfo) InCase(c Case) string {
	switch c {
	case CaseGenitive:
		return n.Gen
	case CaseDative:
		return n.Dat
	case CaseAccusative:
		return n.Acc
	default:
		return n.Nom
	}
}
