package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/heartmarshall/userdict/internal/mora"
)

// WordProperty is the raw user input for registering or updating a word.
// Every slice holds one element per segment.
type WordProperty struct {
	Surface       []string `json:"surface"`
	Pronunciation []string `json:"pronunciation"`
	AccentType    []int    `json:"accent_type"`
	WordType      WordType `json:"word_type"`
	Priority      int      `json:"priority"`
}

// Validate checks the structural invariants of the input and returns a
// *ValidationError listing every offending field.
func (p WordProperty) Validate() error {
	var errs []FieldError

	n := len(p.Surface)
	switch {
	case n == 0:
		errs = append(errs, FieldError{Field: "surface", Message: "required"})
	case len(p.Pronunciation) != n || len(p.AccentType) != n:
		errs = append(errs, FieldError{
			Field:   "surface",
			Message: fmt.Sprintf("segment count mismatch: surface=%d pronunciation=%d accent_type=%d", n, len(p.Pronunciation), len(p.AccentType)),
		})
	default:
		for i := range p.Surface {
			if err := checkSpelling(p.Surface[i]); err != nil {
				errs = append(errs, FieldError{Field: fmt.Sprintf("surface[%d]", i), Message: err.Error()})
			}
			errs = append(errs, checkSegment(i, p.Pronunciation[i], p.AccentType[i])...)
		}
	}

	pos, ok := LookupPartOfSpeech(p.WordType)
	if !ok {
		errs = append(errs, FieldError{
			Field:   "word_type",
			Message: fmt.Sprintf("%q is not supported", p.WordType),
			Err:     ErrUnsupportedWordType,
		})
	} else if fe, bad := checkPriority(p.Priority, pos); bad {
		errs = append(errs, fe)
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// Word is a stored dictionary record. JSON field names follow the
// analyzer's naming so the persisted file needs no translation.
//
// Fields are exported and never re-validated on read; Validate runs when a
// record is built, loaded or imported.
type Word struct {
	Surface               string     `json:"surface"`
	Priority              int        `json:"priority"`
	ContextID             int        `json:"context_id"`
	PartOfSpeech          string     `json:"part_of_speech"`
	PartOfSpeechDetail1   string     `json:"part_of_speech_detail_1"`
	PartOfSpeechDetail2   string     `json:"part_of_speech_detail_2"`
	PartOfSpeechDetail3   string     `json:"part_of_speech_detail_3"`
	InflectionalType      string     `json:"inflectional_type"`
	InflectionalForm      string     `json:"inflectional_form"`
	Stem                  []string   `json:"stem"`
	Yomi                  []string   `json:"yomi"`
	Pronunciation         []string   `json:"pronunciation"`
	AccentType            []int      `json:"accent_type"`
	AccentAssociativeRule AccentRule `json:"accent_associative_rule"`
}

// NewWord validates the input and builds the dictionary record for it.
func NewWord(p WordProperty) (Word, error) {
	if err := p.Validate(); err != nil {
		return Word{}, err
	}
	pos, _ := LookupPartOfSpeech(p.WordType)

	stem := make([]string, len(p.Surface))
	for i, s := range p.Surface {
		if pos.WidenStem {
			stem[i] = WidenText(s)
		} else {
			stem[i] = strings.TrimSpace(s)
		}
	}

	rule := AccentRuleAny
	if len(p.Surface) > 1 {
		rule = pos.DefaultRule
	}

	return Word{
		Surface:               strings.ReplaceAll(strings.Join(p.Pronunciation, ""), string(mora.UnvoicedMarker), ""),
		Priority:              p.Priority,
		ContextID:             pos.ContextID,
		PartOfSpeech:          pos.Pos,
		PartOfSpeechDetail1:   pos.PosDetail1,
		PartOfSpeechDetail2:   pos.PosDetail2,
		PartOfSpeechDetail3:   pos.PosDetail3,
		InflectionalType:      Wildcard,
		InflectionalForm:      Wildcard,
		Stem:                  stem,
		Yomi:                  clone(p.Pronunciation),
		Pronunciation:         clone(p.Pronunciation),
		AccentType:            append([]int(nil), p.AccentType...),
		AccentAssociativeRule: rule,
	}, nil
}

// Validate checks the record invariants: a supported part-of-speech tuple
// matching the context id, priority within the category cap, an allowed
// accent rule and consistent per-segment data.
func (w Word) Validate() error {
	var errs []FieldError

	if err := checkSpelling(w.Surface); err != nil {
		errs = append(errs, FieldError{Field: "surface", Message: err.Error()})
	}

	pos, ok := PartOfSpeechByTuple(w.PartOfSpeech, w.PartOfSpeechDetail1, w.PartOfSpeechDetail2, w.PartOfSpeechDetail3)
	switch {
	case !ok:
		errs = append(errs, FieldError{
			Field:   "part_of_speech",
			Message: fmt.Sprintf("unsupported part of speech %s", w.posString()),
			Err:     ErrUnsupportedWordType,
		})
	case pos.ContextID != w.ContextID:
		errs = append(errs, FieldError{
			Field:   "context_id",
			Message: fmt.Sprintf("context id %d does not match %s (%d)", w.ContextID, w.posString(), pos.ContextID),
			Err:     ErrUnsupportedWordType,
		})
	default:
		if fe, bad := checkPriority(w.Priority, pos); bad {
			errs = append(errs, fe)
		}
	}

	n := len(w.Stem)
	if n == 0 || len(w.Yomi) != n || len(w.Pronunciation) != n || len(w.AccentType) != n {
		errs = append(errs, FieldError{
			Field:   "stem",
			Message: fmt.Sprintf("segment count mismatch: stem=%d yomi=%d pronunciation=%d accent_type=%d",
				n, len(w.Yomi), len(w.Pronunciation), len(w.AccentType)),
		})
	} else {
		for i := range w.Stem {
			if err := checkSpelling(w.Stem[i]); err != nil {
				errs = append(errs, FieldError{Field: fmt.Sprintf("stem[%d]", i), Message: err.Error()})
			}
			errs = append(errs, checkSegment(i, w.Pronunciation[i], w.AccentType[i])...)
			if fe, bad := checkYomi(i, w.Yomi[i], w.Pronunciation[i]); bad {
				errs = append(errs, fe)
			}
		}
	}

	if w.InflectionalType != Wildcard {
		errs = append(errs, FieldError{
			Field:   "inflectional_type",
			Message: fmt.Sprintf("must be %q, got %q", Wildcard, w.InflectionalType),
		})
	}
	if w.InflectionalForm != Wildcard {
		errs = append(errs, FieldError{
			Field:   "inflectional_form",
			Message: fmt.Sprintf("must be %q, got %q", Wildcard, w.InflectionalForm),
		})
	}

	switch {
	case n == 1 && w.AccentAssociativeRule != AccentRuleAny:
		errs = append(errs, FieldError{
			Field:   "accent_associative_rule",
			Message: fmt.Sprintf("single-segment words must use %q, got %q", AccentRuleAny, w.AccentAssociativeRule),
		})
	case n > 1 && ok && !pos.AllowsRule(w.AccentAssociativeRule):
		errs = append(errs, FieldError{
			Field:   "accent_associative_rule",
			Message: fmt.Sprintf("%q is not allowed for %s", w.AccentAssociativeRule, pos.Type),
		})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// Type returns the word type the record's part of speech belongs to.
func (w Word) Type() (WordType, bool) {
	pos, ok := PartOfSpeechByTuple(w.PartOfSpeech, w.PartOfSpeechDetail1, w.PartOfSpeechDetail2, w.PartOfSpeechDetail3)
	return pos.Type, ok
}

// Cost returns the analyzer word cost for the record's priority.
// It assumes a validated record.
func (w Word) Cost() int {
	pos, ok := PartOfSpeechByContextID(w.ContextID)
	if !ok {
		return 0
	}
	return pos.Cost(w.Priority)
}

// Moras splits every pronunciation segment into moras.
func (w Word) Moras() ([][]mora.Mora, error) {
	out := make([][]mora.Mora, len(w.Pronunciation))
	for i, p := range w.Pronunciation {
		m, err := mora.Split(p)
		if err != nil {
			return nil, fmt.Errorf("pronunciation[%d]: %w", i, err)
		}
		out[i] = m
	}
	return out, nil
}

// Clone returns a deep copy of the record.
func (w Word) Clone() Word {
	w.Stem = clone(w.Stem)
	w.Yomi = clone(w.Yomi)
	w.Pronunciation = clone(w.Pronunciation)
	w.AccentType = append([]int(nil), w.AccentType...)
	return w
}

func (w Word) posString() string {
	return strings.Join([]string{w.PartOfSpeech, w.PartOfSpeechDetail1, w.PartOfSpeechDetail2, w.PartOfSpeechDetail3}, "/")
}

func checkSegment(i int, pronunciation string, accent int) []FieldError {
	n, err := MoraCount(pronunciation)
	if err != nil {
		fe := FieldError{Field: fmt.Sprintf("pronunciation[%d]", i), Message: err.Error()}
		if errors.Is(err, mora.ErrUnknownSymbol) {
			fe.Err = mora.ErrUnknownSymbol
		}
		return []FieldError{fe}
	}
	if accent < 0 || accent > n {
		return []FieldError{{
			Field:   fmt.Sprintf("accent_type[%d]", i),
			Message: fmt.Sprintf("must be between 0 and %d", n),
		}}
	}
	return nil
}

// checkYomi requires the reading to split into as many moras as the
// pronunciation of the same segment.
func checkYomi(i int, yomi, pronunciation string) (FieldError, bool) {
	field := fmt.Sprintf("yomi[%d]", i)
	n, err := MoraCount(yomi)
	if err != nil {
		return FieldError{Field: field, Message: err.Error()}, true
	}
	want, err := MoraCount(pronunciation)
	if err != nil {
		// reported on the pronunciation field
		return FieldError{}, false
	}
	if n != want {
		return FieldError{Field: field, Message: fmt.Sprintf("has %d moras, pronunciation has %d", n, want)}, true
	}
	return FieldError{}, false
}

func checkPriority(priority int, pos PartOfSpeech) (FieldError, bool) {
	if priority < MinPriority || priority > pos.MaxPriority {
		return FieldError{
			Field:   "priority",
			Message: fmt.Sprintf("must be between %d and %d for %s", MinPriority, pos.MaxPriority, pos.Type),
			Err:     ErrInvalidPriority,
		}, true
	}
	return FieldError{}, false
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
