package entities

import "time"

// PollOption is one answer of an official poll with its running tally.
type PollOption struct {
	OptionID  string
	Text      string
	VoteCount int
}

// AdminPoll is an official one-vote-per-user poll. TotalVotes always equals
// the sum of option counts and the size of VotedUserIDs; votes are one-shot.
type AdminPoll struct {
	PollID       string
	Question     string
	Options      []PollOption
	EndDate      time.Time
	IsActive     bool
	TotalVotes   int
	VotedUserIDs []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p AdminPoll) HasVoted(userID string) bool {
	for _, voter := range p.VotedUserIDs {
		if voter == userID {
			return true
		}
	}
	return false
}

func (p AdminPoll) Option(optionID string) (PollOption, bool) {
	for _, option := range p.Options {
		if option.OptionID == optionID {
			return option, true
		}
	}
	return PollOption{}, false
}

// Open reports whether the poll still accepts votes at the given instant.
func (p AdminPoll) Open(now time.Time) bool {
	return p.IsActive && !now.After(p.EndDate)
}

type PublicChoice string

const (
	ChoiceAgree    PublicChoice = "agree"
	ChoiceDisagree PublicChoice = "disagree"
)

func ValidPublicChoice(choice PublicChoice) bool {
	return choice == ChoiceAgree || choice == ChoiceDisagree
}

// PublicPoll is a neighborhood statement users agree or disagree with.
// A user may flip their choice; AgreeCount+DisagreeCount always equals
// len(VotedUsers).
type PublicPoll struct {
	PollID        string
	UserID        string
	UserName      string
	Text          string
	AgreeCount    int
	DisagreeCount int
	VotedUsers    map[string]PublicChoice
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
