package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/userdict/internal/mora"
)

func testProperty() WordProperty {
	return WordProperty{
		Surface:       []string{"test"},
		Pronunciation: []string{"テスト"},
		AccentType:    []int{1},
		WordType:      WordTypeProperNoun,
		Priority:      5,
	}
}

func TestNewWord_ProperNounFromASCII(t *testing.T) {
	t.Parallel()

	got, err := NewWord(testProperty())
	require.NoError(t, err)

	assert.Equal(t, Word{
		Surface:               "テスト",
		Priority:              5,
		ContextID:             1348,
		PartOfSpeech:          "名詞",
		PartOfSpeechDetail1:   "固有名詞",
		PartOfSpeechDetail2:   "一般",
		PartOfSpeechDetail3:   "*",
		InflectionalType:      "*",
		InflectionalForm:      "*",
		Stem:                  []string{"ｔｅｓｔ"},
		Yomi:                  []string{"テスト"},
		Pronunciation:         []string{"テスト"},
		AccentType:            []int{1},
		AccentAssociativeRule: AccentRuleAny,
	}, got)
	require.NoError(t, got.Validate())
}

func TestNewWord_KanaSurfaceKeepsStem(t *testing.T) {
	t.Parallel()

	p := testProperty()
	p.Surface = []string{"テスト"}
	got, err := NewWord(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"テスト"}, got.Stem)
	assert.Equal(t, "テスト", got.Surface)
}

func TestNewWord_VerbStemVerbatim(t *testing.T) {
	t.Parallel()

	p := testProperty()
	p.WordType = WordTypeVerb
	p.Surface = []string{"ググる"}
	p.Pronunciation = []string{"ググル"}
	got, err := NewWord(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"ググる"}, got.Stem)
	assert.Equal(t, 642, got.ContextID)
	assert.Equal(t, "動詞", got.PartOfSpeech)
}

func TestNewWord_RejectsInnerWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		surface  string
		wordType WordType
	}{
		{name: "proper noun", surface: "New York", wordType: WordTypeProperNoun},
		{name: "verb", surface: "log in", wordType: WordTypeVerb},
		{name: "ideographic space", surface: "東京\u3000タワー", wordType: WordTypeCommonNoun},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := testProperty()
			p.Surface = []string{tt.surface}
			p.Pronunciation = []string{"ニューヨーク"}
			p.WordType = tt.wordType

			_, err := NewWord(p)
			require.ErrorIs(t, err, ErrValidation)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "surface[0]", ve.Errors[0].Field)
		})
	}
}

func TestNewWord_HalfWidthVoicedKanaComposed(t *testing.T) {
	t.Parallel()

	p := testProperty()
	p.Surface = []string{"ｶﾞｲﾄﾞ"}
	p.Pronunciation = []string{"ガイド"}
	got, err := NewWord(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"\u30ac\u30a4\u30c9"}, got.Stem)
	assert.Len(t, []rune(got.Stem[0]), 3)
}

func TestNewWord_MultiSegmentUsesDefaultRule(t *testing.T) {
	t.Parallel()

	got, err := NewWord(WordProperty{
		Surface:       []string{"東京", "タワー"},
		Pronunciation: []string{"トーキョー", "タワー"},
		AccentType:    []int{0, 1},
		WordType:      WordTypeCommonNoun,
		Priority:      7,
	})
	require.NoError(t, err)
	assert.Equal(t, AccentRuleC1, got.AccentAssociativeRule)
	assert.Equal(t, "トーキョータワー", got.Surface)
	require.NoError(t, got.Validate())
}

func TestNewWord_UnvoicedMarkerDroppedFromSurface(t *testing.T) {
	t.Parallel()

	p := testProperty()
	p.Pronunciation = []string{"デス_カ"}
	got, err := NewWord(p)
	require.NoError(t, err)
	assert.Equal(t, "デスカ", got.Surface)
	assert.Equal(t, []string{"デス_カ"}, got.Pronunciation)
}

func TestNewWord_PriorityGrid(t *testing.T) {
	t.Parallel()

	for _, wt := range WordTypes() {
		pos, ok := LookupPartOfSpeech(wt)
		require.True(t, ok)
		for priority := MinPriority; priority <= MaxPriority; priority++ {
			p := testProperty()
			p.WordType = wt
			p.Priority = priority

			got, err := NewWord(p)
			if priority > pos.MaxPriority {
				require.ErrorIs(t, err, ErrInvalidPriority, "%s priority %d", wt, priority)
				continue
			}
			require.NoError(t, err, "%s priority %d", wt, priority)
			assert.Equal(t, priority, got.Priority)
		}
	}
}

func TestWordProperty_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*WordProperty)
		field   string
		wantErr error
	}{
		{
			name:   "empty surface",
			mutate: func(p *WordProperty) { p.Surface = nil },
			field:  "surface",
		},
		{
			name:   "segment count mismatch",
			mutate: func(p *WordProperty) { p.AccentType = []int{1, 2} },
			field:  "surface",
		},
		{
			name:    "unknown mora",
			mutate:  func(p *WordProperty) { p.Pronunciation = []string{"てすと"} },
			field:   "pronunciation[0]",
			wantErr: mora.ErrUnknownSymbol,
		},
		{
			name:   "accent above mora count",
			mutate: func(p *WordProperty) { p.AccentType = []int{4} },
			field:  "accent_type[0]",
		},
		{
			name:   "negative accent",
			mutate: func(p *WordProperty) { p.AccentType = []int{-1} },
			field:  "accent_type[0]",
		},
		{
			name:    "unsupported word type",
			mutate:  func(p *WordProperty) { p.WordType = "INTERJECTION" },
			field:   "word_type",
			wantErr: ErrUnsupportedWordType,
		},
		{
			name:    "priority too high",
			mutate:  func(p *WordProperty) { p.Priority = MaxPriority + 1 },
			field:   "priority",
			wantErr: ErrInvalidPriority,
		},
		{
			name:    "negative priority",
			mutate:  func(p *WordProperty) { p.Priority = -1 },
			field:   "priority",
			wantErr: ErrInvalidPriority,
		},
		{
			name:   "comma in surface",
			mutate: func(p *WordProperty) { p.Surface = []string{"a,b"} },
			field:  "surface[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := testProperty()
			tt.mutate(&p)
			err := p.Validate()
			require.ErrorIs(t, err, ErrValidation)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Errors[0].Field)
		})
	}
}

func TestWord_Validate(t *testing.T) {
	t.Parallel()

	valid, err := NewWord(testProperty())
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(*Word)
		wantErr error
	}{
		{
			name:   "invalid accent rule",
			mutate: func(w *Word) { w.AccentAssociativeRule = "invalid" },
		},
		{
			name:   "single segment with C1",
			mutate: func(w *Word) { w.AccentAssociativeRule = AccentRuleC1 },
		},
		{
			name: "unsupported part of speech",
			mutate: func(w *Word) {
				w.ContextID = 2
				w.PartOfSpeech = "フィラー"
				w.PartOfSpeechDetail1 = "*"
				w.PartOfSpeechDetail2 = "*"
				w.PartOfSpeechDetail3 = "*"
			},
			wantErr: ErrUnsupportedWordType,
		},
		{
			name:    "context id mismatch",
			mutate:  func(w *Word) { w.ContextID = 642 },
			wantErr: ErrUnsupportedWordType,
		},
		{
			name:    "priority above cap",
			mutate:  func(w *Word) { w.Priority = 11 },
			wantErr: ErrInvalidPriority,
		},
		{
			name:   "segment mismatch",
			mutate: func(w *Word) { w.Yomi = append(w.Yomi, "テスト") },
		},
		{
			name:   "empty surface",
			mutate: func(w *Word) { w.Surface = "" },
		},
		{
			name:   "inflectional type not wildcard",
			mutate: func(w *Word) { w.InflectionalType = "foo" },
		},
		{
			name:   "inflectional form not wildcard",
			mutate: func(w *Word) { w.InflectionalForm = "基本形" },
		},
		{
			name:   "yomi mora count differs",
			mutate: func(w *Word) { w.Yomi = []string{"テス"} },
		},
		{
			name:   "yomi not katakana",
			mutate: func(w *Word) { w.Yomi = []string{"てすと"} },
		},
		{
			name:   "stem with inner space",
			mutate: func(w *Word) { w.Stem = []string{"Ｎｅｗ　Ｙｏｒｋ"} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := valid.Clone()
			tt.mutate(&w)
			err := w.Validate()
			require.ErrorIs(t, err, ErrValidation)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestWord_Clone(t *testing.T) {
	t.Parallel()

	w, err := NewWord(testProperty())
	require.NoError(t, err)

	c := w.Clone()
	c.Stem[0] = "changed"
	c.AccentType[0] = 0
	assert.Equal(t, "ｔｅｓｔ", w.Stem[0])
	assert.Equal(t, 1, w.AccentType[0])
}

func TestWord_CostAndMoras(t *testing.T) {
	t.Parallel()

	w, err := NewWord(testProperty())
	require.NoError(t, err)
	assert.Equal(t, 8609, w.Cost())

	moras, err := w.Moras()
	require.NoError(t, err)
	require.Len(t, moras, 1)
	assert.Equal(t, "te-su-to", mora.Encode(moras[0]))
}

func TestWord_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("current layout", func(t *testing.T) {
		t.Parallel()

		data := `{
			"surface": "テスト", "priority": 5, "context_id": 1348,
			"part_of_speech": "名詞", "part_of_speech_detail_1": "固有名詞",
			"part_of_speech_detail_2": "一般", "part_of_speech_detail_3": "*",
			"inflectional_type": "*", "inflectional_form": "*",
			"stem": ["テスト"], "yomi": ["テスト"], "pronunciation": ["テスト"],
			"accent_type": [1], "accent_associative_rule": "*"
		}`
		var w Word
		require.NoError(t, json.Unmarshal([]byte(data), &w))
		require.NoError(t, w.Validate())
		assert.Equal(t, 5, w.Priority)
		assert.Equal(t, 1348, w.ContextID)
	})

	t.Run("missing context id is derived", func(t *testing.T) {
		t.Parallel()

		data := `{
			"surface": "テスト", "priority": 5,
			"part_of_speech": "名詞", "part_of_speech_detail_1": "固有名詞",
			"part_of_speech_detail_2": "一般", "part_of_speech_detail_3": "*",
			"inflectional_type": "*", "inflectional_form": "*",
			"stem": ["テスト"], "yomi": ["テスト"], "pronunciation": ["テスト"],
			"accent_type": [1], "accent_associative_rule": "*"
		}`
		var w Word
		require.NoError(t, json.Unmarshal([]byte(data), &w))
		assert.Equal(t, 1348, w.ContextID)
		require.NoError(t, w.Validate())
	})

	t.Run("legacy cost and scalar fields", func(t *testing.T) {
		t.Parallel()

		data := `{
			"surface": "テスト", "cost": 8609, "context_id": 1348,
			"part_of_speech": "名詞", "part_of_speech_detail_1": "固有名詞",
			"part_of_speech_detail_2": "一般", "part_of_speech_detail_3": "*",
			"stem": "テスト", "yomi": "テスト", "pronunciation": "テスト",
			"accent_type": 1
		}`
		var w Word
		require.NoError(t, json.Unmarshal([]byte(data), &w))
		assert.Equal(t, 5, w.Priority)
		assert.Equal(t, []string{"テスト"}, w.Stem)
		assert.Equal(t, []int{1}, w.AccentType)
		assert.Equal(t, "*", w.InflectionalType)
		assert.Equal(t, AccentRuleAny, w.AccentAssociativeRule)
		require.NoError(t, w.Validate())
	})

	t.Run("missing priority", func(t *testing.T) {
		t.Parallel()

		var w Word
		require.Error(t, json.Unmarshal([]byte(`{"surface": "テスト"}`), &w))
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		w, err := NewWord(testProperty())
		require.NoError(t, err)
		data, err := json.Marshal(w)
		require.NoError(t, err)

		var back Word
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, w, back)
	})
}
