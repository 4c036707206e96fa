package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// UnmarshalJSON decodes a stored record. Besides the current layout it
// accepts files written by older releases: a "cost" instead of "priority",
// a missing "context_id", and scalar values for the per-segment fields.
func (w *Word) UnmarshalJSON(data []byte) error {
	var raw struct {
		Surface               string      `json:"surface"`
		Priority              *int        `json:"priority"`
		Cost                  *int        `json:"cost"`
		ContextID             *int        `json:"context_id"`
		PartOfSpeech          string      `json:"part_of_speech"`
		PartOfSpeechDetail1   string      `json:"part_of_speech_detail_1"`
		PartOfSpeechDetail2   string      `json:"part_of_speech_detail_2"`
		PartOfSpeechDetail3   string      `json:"part_of_speech_detail_3"`
		InflectionalType      string      `json:"inflectional_type"`
		InflectionalForm      string      `json:"inflectional_form"`
		Stem                  flexStrings `json:"stem"`
		Yomi                  flexStrings `json:"yomi"`
		Pronunciation         flexStrings `json:"pronunciation"`
		AccentType            flexInts    `json:"accent_type"`
		AccentAssociativeRule AccentRule  `json:"accent_associative_rule"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Word{
		Surface:               raw.Surface,
		PartOfSpeech:          raw.PartOfSpeech,
		PartOfSpeechDetail1:   raw.PartOfSpeechDetail1,
		PartOfSpeechDetail2:   raw.PartOfSpeechDetail2,
		PartOfSpeechDetail3:   raw.PartOfSpeechDetail3,
		InflectionalType:      orWildcard(raw.InflectionalType),
		InflectionalForm:      orWildcard(raw.InflectionalForm),
		Stem:                  raw.Stem,
		Yomi:                  raw.Yomi,
		Pronunciation:         raw.Pronunciation,
		AccentType:            raw.AccentType,
		AccentAssociativeRule: AccentRule(orWildcard(string(raw.AccentAssociativeRule))),
	}

	pos, known := PartOfSpeechByTuple(out.PartOfSpeech, out.PartOfSpeechDetail1, out.PartOfSpeechDetail2, out.PartOfSpeechDetail3)
	switch {
	case raw.ContextID != nil:
		out.ContextID = *raw.ContextID
	case known:
		out.ContextID = pos.ContextID
	}

	switch {
	case raw.Priority != nil:
		out.Priority = *raw.Priority
	case raw.Cost != nil && known:
		out.Priority = pos.PriorityForCost(*raw.Cost)
	case raw.Cost != nil:
		return fmt.Errorf("cost %d given for unsupported part of speech %s", *raw.Cost, out.posString())
	default:
		return errors.New("priority is required")
	}

	*w = out
	return nil
}

func orWildcard(s string) string {
	if s == "" {
		return Wildcard
	}
	return s
}

// flexStrings decodes either a string or a list of strings.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*f = flexStrings{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*f = many
	return nil
}

// flexInts decodes either an integer or a list of integers.
type flexInts []int

func (f *flexInts) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var one int
	if err := json.Unmarshal(data, &one); err == nil {
		*f = flexInts{one}
		return nil
	}
	var many []int
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*f = many
	return nil
}
