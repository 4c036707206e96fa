package domain

// WordType is the user-facing part-of-speech category of a dictionary word.
type WordType string

const (
	WordTypeProperNoun WordType = "PROPER_NOUN"
	WordTypeCommonNoun WordType = "COMMON_NOUN"
	WordTypeVerb       WordType = "VERB"
	WordTypeAdjective  WordType = "ADJECTIVE"
	WordTypeSuffix     WordType = "SUFFIX"
)

func (t WordType) String() string { return string(t) }

func (t WordType) IsValid() bool {
	_, ok := partOfSpeechData[t]
	return ok
}

// WordTypes lists the supported categories in a stable order.
func WordTypes() []WordType {
	return []WordType{
		WordTypeProperNoun,
		WordTypeCommonNoun,
		WordTypeVerb,
		WordTypeAdjective,
		WordTypeSuffix,
	}
}

// AccentRule controls how a multi-segment word's accent combines with
// neighbouring words.
type AccentRule string

const (
	AccentRuleAny AccentRule = "*"
	AccentRuleC1  AccentRule = "C1"
	AccentRuleC2  AccentRule = "C2"
	AccentRuleC3  AccentRule = "C3"
	AccentRuleC4  AccentRule = "C4"
	AccentRuleC5  AccentRule = "C5"
)

func (r AccentRule) String() string { return string(r) }

// Wildcard is the placeholder used for empty part-of-speech and inflection fields.
const Wildcard = "*"
