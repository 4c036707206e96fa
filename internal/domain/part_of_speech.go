package domain

import "math"

// Priority bounds shared by every word type.
const (
	MinPriority = 0
	MaxPriority = 10
)

// PartOfSpeech is the fixed analyzer-side description of a word type.
type PartOfSpeech struct {
	Type        WordType
	Pos         string
	PosDetail1  string
	PosDetail2  string
	PosDetail3  string
	ContextID   int
	MaxPriority int
	// AccentRules are accepted for multi-segment words; single-segment
	// words always use AccentRuleAny.
	AccentRules []AccentRule
	DefaultRule AccentRule
	// WidenStem converts the registered spelling to its full-width form.
	WidenStem bool
	// CostCandidates is indexed by MaxPriority-priority.
	CostCandidates [MaxPriority + 1]int
}

var nounRules = []AccentRule{
	AccentRuleAny, AccentRuleC1, AccentRuleC2, AccentRuleC3, AccentRuleC4, AccentRuleC5,
}

var partOfSpeechData = map[WordType]PartOfSpeech{
	WordTypeProperNoun: {
		Type:           WordTypeProperNoun,
		Pos:            "名詞",
		PosDetail1:     "固有名詞",
		PosDetail2:     "一般",
		PosDetail3:     Wildcard,
		ContextID:      1348,
		MaxPriority:    MaxPriority,
		AccentRules:    nounRules,
		DefaultRule:    AccentRuleC1,
		WidenStem:      true,
		CostCandidates: [MaxPriority + 1]int{-988, 3488, 4768, 6048, 7328, 8609, 8734, 8859, 8984, 9110, 14176},
	},
	WordTypeCommonNoun: {
		Type:           WordTypeCommonNoun,
		Pos:            "名詞",
		PosDetail1:     "一般",
		PosDetail2:     Wildcard,
		PosDetail3:     Wildcard,
		ContextID:      1345,
		MaxPriority:    MaxPriority,
		AccentRules:    nounRules,
		DefaultRule:    AccentRuleC1,
		WidenStem:      true,
		CostCandidates: [MaxPriority + 1]int{-4445, 49, 1473, 2897, 4321, 5746, 6554, 7362, 8170, 8979, 15001},
	},
	WordTypeVerb: {
		Type:           WordTypeVerb,
		Pos:            "動詞",
		PosDetail1:     "自立",
		PosDetail2:     Wildcard,
		PosDetail3:     Wildcard,
		ContextID:      642,
		MaxPriority:    MaxPriority,
		AccentRules:    []AccentRule{AccentRuleAny},
		DefaultRule:    AccentRuleAny,
		CostCandidates: [MaxPriority + 1]int{3100, 6160, 6360, 6561, 6761, 6962, 7414, 7866, 8318, 8771, 13433},
	},
	WordTypeAdjective: {
		Type:           WordTypeAdjective,
		Pos:            "形容詞",
		PosDetail1:     "自立",
		PosDetail2:     Wildcard,
		PosDetail3:     Wildcard,
		ContextID:      20,
		MaxPriority:    MaxPriority,
		AccentRules:    []AccentRule{AccentRuleAny},
		DefaultRule:    AccentRuleAny,
		CostCandidates: [MaxPriority + 1]int{1527, 3266, 3561, 3857, 4153, 4449, 5149, 5849, 6549, 7250, 10001},
	},
	WordTypeSuffix: {
		Type:           WordTypeSuffix,
		Pos:            "名詞",
		PosDetail1:     "接尾",
		PosDetail2:     "一般",
		PosDetail3:     Wildcard,
		ContextID:      1358,
		MaxPriority:    MaxPriority,
		AccentRules:    nounRules,
		DefaultRule:    AccentRuleC1,
		WidenStem:      true,
		CostCandidates: [MaxPriority + 1]int{4399, 5373, 6041, 6710, 7378, 8047, 9440, 10834, 12228, 13622, 15847},
	},
}

// LookupPartOfSpeech returns the fixed description of a word type.
func LookupPartOfSpeech(t WordType) (PartOfSpeech, bool) {
	p, ok := partOfSpeechData[t]
	return p, ok
}

// PartOfSpeechByContextID finds the word type registered under an analyzer context id.
func PartOfSpeechByContextID(id int) (PartOfSpeech, bool) {
	for _, p := range partOfSpeechData {
		if p.ContextID == id {
			return p, true
		}
	}
	return PartOfSpeech{}, false
}

// PartOfSpeechByTuple finds the word type whose four POS levels match.
func PartOfSpeechByTuple(pos, d1, d2, d3 string) (PartOfSpeech, bool) {
	for _, p := range partOfSpeechData {
		if p.Pos == pos && p.PosDetail1 == d1 && p.PosDetail2 == d2 && p.PosDetail3 == d3 {
			return p, true
		}
	}
	return PartOfSpeech{}, false
}

// AllowsRule reports whether a multi-segment word of this type may use r.
func (p PartOfSpeech) AllowsRule(r AccentRule) bool {
	for _, a := range p.AccentRules {
		if a == r {
			return true
		}
	}
	return false
}

// Cost converts a priority into the analyzer's word cost. Higher priority
// means lower cost. The priority must already be in range.
func (p PartOfSpeech) Cost(priority int) int {
	return p.CostCandidates[MaxPriority-priority]
}

// PriorityForCost maps an analyzer cost back to the nearest priority.
func (p PartOfSpeech) PriorityForCost(cost int) int {
	best, bestDist := MinPriority, math.MaxInt
	for i, c := range p.CostCandidates {
		d := c - cost
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = MaxPriority-i, d
		}
	}
	return best
}
