// Package mora holds the fixed kana-mora ↔ phoneme table used to validate
// and re-encode pronunciations.
//
// The table is adapted from Open JTalk's mora table, reshaped so that
// every katakana mora maps to exactly one (consonant, vowel) pair.
//
//	The Japanese TTS System "Open JTalk"
//	developed by HTS Working Group
//	http://open-jtalk.sourceforge.net/
//	Copyright (c) 2008-2014  Nagoya Institute of Technology
//	                         Department of Computer Science
package mora

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrUnknownSymbol is returned for kana or phonemes outside the closed table.
var ErrUnknownSymbol = errors.New("unknown mora symbol")

// Special vowels.
const (
	VowelN  = "N"  // moraic nasal ン
	VowelCL = "cl" // geminate ッ
)

// Markers accepted inside a pronunciation besides table symbols.
const (
	// UnvoicedMarker placed directly before a mora marks its vowel unvoiced.
	UnvoicedMarker = '_'
	// LongVowel prolongs the vowel of the preceding mora.
	LongVowel = 'ー'
)

// Phoneme is the (optional consonant, vowel) pair of one mora.
type Phoneme struct {
	Consonant string
	Vowel     string
}

// String renders the pair the way the analyzer expects it, e.g. "ky"+"o" = "kyo".
func (p Phoneme) String() string { return p.Consonant + p.Vowel }

type entry struct {
	kana      string
	consonant string
	vowel     string
}

// minimum is the canonical subset: it defines both directions.
var minimum = []entry{
	{"ヴォ", "v", "o"}, {"ヴェ", "v", "e"}, {"ヴィ", "v", "i"}, {"ヴァ", "v", "a"}, {"ヴ", "v", "u"},
	{"ン", "", VowelN},
	{"ワ", "w", "a"},
	{"ロ", "r", "o"}, {"レ", "r", "e"}, {"ル", "r", "u"},
	{"リョ", "ry", "o"}, {"リュ", "ry", "u"}, {"リャ", "ry", "a"}, {"リェ", "ry", "e"},
	{"リ", "r", "i"}, {"ラ", "r", "a"},
	{"ヨ", "y", "o"}, {"ユ", "y", "u"}, {"ヤ", "y", "a"},
	{"モ", "m", "o"}, {"メ", "m", "e"}, {"ム", "m", "u"},
	{"ミョ", "my", "o"}, {"ミュ", "my", "u"}, {"ミャ", "my", "a"}, {"ミェ", "my", "e"},
	{"ミ", "m", "i"}, {"マ", "m", "a"},
	{"ポ", "p", "o"}, {"ボ", "b", "o"}, {"ホ", "h", "o"},
	{"ペ", "p", "e"}, {"ベ", "b", "e"}, {"ヘ", "h", "e"},
	{"プ", "p", "u"}, {"ブ", "b", "u"},
	{"フュ", "fy", "u"},
	{"フォ", "f", "o"}, {"フェ", "f", "e"}, {"フィ", "f", "i"}, {"ファ", "f", "a"}, {"フ", "f", "u"},
	{"ピョ", "py", "o"}, {"ピュ", "py", "u"}, {"ピャ", "py", "a"}, {"ピェ", "py", "e"}, {"ピ", "p", "i"},
	{"ビョ", "by", "o"}, {"ビュ", "by", "u"}, {"ビャ", "by", "a"}, {"ビェ", "by", "e"}, {"ビ", "b", "i"},
	{"ヒョ", "hy", "o"}, {"ヒュ", "hy", "u"}, {"ヒャ", "hy", "a"}, {"ヒェ", "hy", "e"}, {"ヒ", "h", "i"},
	{"パ", "p", "a"}, {"バ", "b", "a"}, {"ハ", "h", "a"},
	{"ノ", "n", "o"}, {"ネ", "n", "e"}, {"ヌ", "n", "u"},
	{"ニョ", "ny", "o"}, {"ニュ", "ny", "u"}, {"ニャ", "ny", "a"}, {"ニェ", "ny", "e"},
	{"ニ", "n", "i"}, {"ナ", "n", "a"},
	{"ドゥ", "d", "u"}, {"ド", "d", "o"}, {"トゥ", "t", "u"}, {"ト", "t", "o"},
	{"デョ", "dy", "o"}, {"デュ", "dy", "u"}, {"デャ", "dy", "a"}, {"デェ", "dy", "e"},
	{"ディ", "d", "i"}, {"デ", "d", "e"},
	{"テョ", "ty", "o"}, {"テュ", "ty", "u"}, {"テャ", "ty", "a"},
	{"ティ", "t", "i"}, {"テ", "t", "e"},
	{"ツォ", "ts", "o"}, {"ツェ", "ts", "e"}, {"ツィ", "ts", "i"}, {"ツァ", "ts", "a"}, {"ツ", "ts", "u"},
	{"ッ", "", VowelCL},
	{"チョ", "ch", "o"}, {"チュ", "ch", "u"}, {"チャ", "ch", "a"}, {"チェ", "ch", "e"}, {"チ", "ch", "i"},
	{"ダ", "d", "a"}, {"タ", "t", "a"},
	{"ゾ", "z", "o"}, {"ソ", "s", "o"}, {"ゼ", "z", "e"}, {"セ", "s", "e"},
	{"ズィ", "z", "i"}, {"ズ", "z", "u"}, {"スィ", "s", "i"}, {"ス", "s", "u"},
	{"ジョ", "j", "o"}, {"ジュ", "j", "u"}, {"ジャ", "j", "a"}, {"ジェ", "j", "e"}, {"ジ", "j", "i"},
	{"ショ", "sh", "o"}, {"シュ", "sh", "u"}, {"シャ", "sh", "a"}, {"シェ", "sh", "e"}, {"シ", "sh", "i"},
	{"ザ", "z", "a"}, {"サ", "s", "a"},
	{"ゴ", "g", "o"}, {"コ", "k", "o"}, {"ゲ", "g", "e"}, {"ケ", "k", "e"},
	{"グヮ", "gw", "a"}, {"グォ", "gw", "o"}, {"グェ", "gw", "e"}, {"グゥ", "gw", "u"}, {"グィ", "gw", "i"},
	{"グ", "g", "u"},
	{"クヮ", "kw", "a"}, {"クォ", "kw", "o"}, {"クェ", "kw", "e"}, {"クゥ", "kw", "u"}, {"クィ", "kw", "i"},
	{"ク", "k", "u"},
	{"ギョ", "gy", "o"}, {"ギュ", "gy", "u"}, {"ギャ", "gy", "a"}, {"ギェ", "gy", "e"}, {"ギ", "g", "i"},
	{"キョ", "ky", "o"}, {"キュ", "ky", "u"}, {"キャ", "ky", "a"}, {"キェ", "ky", "e"}, {"キ", "k", "i"},
	{"ガ", "g", "a"}, {"カ", "k", "a"},
	{"オ", "", "o"}, {"エ", "", "e"},
	{"ウォ", "w", "o"}, {"ウェ", "w", "e"}, {"ウィ", "w", "i"}, {"ウ", "", "u"},
	{"イェ", "y", "e"}, {"イ", "", "i"}, {"ア", "", "a"},
}

// additional holds aliases that decode to phonemes but are never produced
// when encoding phonemes back to kana.
var additional = []entry{
	{"ヴョ", "by", "o"}, {"ヴュ", "by", "u"}, {"ヴャ", "by", "a"},
	{"ヲ", "", "o"}, {"ヱ", "", "e"}, {"ヰ", "", "i"},
	{"ヮ", "w", "a"},
	{"ョ", "y", "o"}, {"ュ", "y", "u"},
	{"ヅ", "z", "u"},
	{"ヂョ", "j", "o"}, {"ヂュ", "j", "u"}, {"ヂャ", "j", "a"}, {"ヂェ", "j", "e"}, {"ヂ", "j", "i"},
	{"シィ", "s", "i"},
	{"グァ", "gw", "a"}, {"クァ", "kw", "a"},
	{"ヶ", "k", "e"},
	{"ャ", "y", "a"},
	{"ォ", "", "o"}, {"ェ", "", "e"}, {"ゥ", "", "u"}, {"ィ", "", "i"}, {"ァ", "", "a"},
}

var (
	kanaToPhoneme = make(map[string]Phoneme, len(minimum)+len(additional))
	phonemeToKana = make(map[string]string, len(minimum))
)

func init() {
	for _, e := range minimum {
		kanaToPhoneme[e.kana] = Phoneme{Consonant: e.consonant, Vowel: e.vowel}
		phonemeToKana[e.consonant+e.vowel] = e.kana
	}
	for _, e := range additional {
		kanaToPhoneme[e.kana] = Phoneme{Consonant: e.consonant, Vowel: e.vowel}
	}
}

// SymbolToPhoneme returns the phoneme pair for a single kana mora.
func SymbolToPhoneme(kana string) (Phoneme, error) {
	p, ok := kanaToPhoneme[kana]
	if !ok {
		return Phoneme{}, fmt.Errorf("%w: %q", ErrUnknownSymbol, kana)
	}
	return p, nil
}

// PhonemeToSymbol returns the canonical kana for a phoneme pair. Aliases
// such as ヲ never come back out of this direction.
func PhonemeToSymbol(consonant, vowel string) (string, error) {
	k, ok := phonemeToKana[consonant+strings.ToLower(vowel)]
	if !ok && (vowel == VowelN || vowel == VowelCL) {
		k, ok = phonemeToKana[consonant+vowel]
	}
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSymbol, consonant+vowel)
	}
	return k, nil
}

// Mora is one timing unit of a pronunciation.
type Mora struct {
	Kana     string
	Phoneme  Phoneme
	Unvoiced bool
}

// String renders the phoneme pair, with unvoiced vowels upper-cased.
func (m Mora) String() string {
	if m.Unvoiced {
		return m.Phoneme.Consonant + strings.ToUpper(m.Phoneme.Vowel)
	}
	return m.Phoneme.String()
}

// Split decomposes a katakana pronunciation into moras, longest match
// first. ー repeats the previous mora's vowel; _ marks the next mora
// unvoiced.
func Split(pronunciation string) ([]Mora, error) {
	var (
		moras    []Mora
		unvoiced bool
	)
	rest := pronunciation
	for rest != "" {
		r, size := utf8.DecodeRuneInString(rest)
		switch r {
		case UnvoicedMarker:
			if unvoiced {
				return nil, fmt.Errorf("%w: repeated %q", ErrUnknownSymbol, string(UnvoicedMarker))
			}
			unvoiced = true
			rest = rest[size:]
			continue
		case LongVowel:
			if len(moras) == 0 || unvoiced {
				return nil, fmt.Errorf("%w: %q without a preceding mora", ErrUnknownSymbol, string(LongVowel))
			}
			prev := moras[len(moras)-1].Phoneme
			moras = append(moras, Mora{Kana: string(LongVowel), Phoneme: Phoneme{Vowel: prev.Vowel}})
			rest = rest[size:]
			continue
		}

		kana, p, ok := longestMatch(rest)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSymbol, string(r))
		}
		moras = append(moras, Mora{Kana: kana, Phoneme: p, Unvoiced: unvoiced})
		unvoiced = false
		rest = rest[len(kana):]
	}
	if unvoiced {
		return nil, fmt.Errorf("%w: trailing %q", ErrUnknownSymbol, string(UnvoicedMarker))
	}
	return moras, nil
}

func longestMatch(s string) (string, Phoneme, bool) {
	_, first := utf8.DecodeRuneInString(s)
	if first < len(s) {
		_, second := utf8.DecodeRuneInString(s[first:])
		if p, ok := kanaToPhoneme[s[:first+second]]; ok {
			return s[:first+second], p, true
		}
	}
	p, ok := kanaToPhoneme[s[:first]]
	return s[:first], p, ok
}

// Count returns the number of moras in a pronunciation.
func Count(pronunciation string) (int, error) {
	moras, err := Split(pronunciation)
	if err != nil {
		return 0, err
	}
	return len(moras), nil
}

// Encode renders moras as phoneme pairs joined by "-", e.g. "te-su-to".
func Encode(moras []Mora) string {
	parts := make([]string, len(moras))
	for i, m := range moras {
		parts[i] = m.String()
	}
	return strings.Join(parts, "-")
}

// Kana renders moras back to katakana without unvoicing markers.
func Kana(moras []Mora) string {
	var b strings.Builder
	for _, m := range moras {
		b.WriteString(m.Kana)
	}
	return b.String()
}
