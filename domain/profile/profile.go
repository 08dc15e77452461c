// Package profile defines the display profile of a user and the matching rules
// used to browse other musicians.
package profile

import (
	"convo-lab/errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

type Profile struct {
	UserID      string   `validate:"required,excludes=:"`
	Name        string   `validate:"required,max=80"`
	Instruments []string `validate:"dive,required"`
	Genres      []string `validate:"dive,required"`
	SkillLevel  string   `validate:"omitempty,oneof=beginner intermediate advanced professional"`
	Bio         string   `validate:"max=500"`
}

func (p Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidProfile, err)
	}
	return nil
}

// MatchFilter selects candidate profiles for Self.
// Empty Instrument or Genre means "any".
type MatchFilter struct {
	Self       string
	Instrument string
	Genre      string
}

func (f MatchFilter) Matches(p Profile) bool {
	if p.UserID == f.Self {
		return false
	}
	if f.Instrument != "" && !lo.Contains(p.Instruments, f.Instrument) {
		return false
	}
	if f.Genre != "" && !lo.Contains(p.Genres, f.Genre) {
		return false
	}
	return true
}

func (f MatchFilter) Apply(profiles []Profile) []Profile {
	return lo.Filter(profiles, func(p Profile, _ int) bool {
		return f.Matches(p)
	})
}
