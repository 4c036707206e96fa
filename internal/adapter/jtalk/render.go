// Package jtalk turns the user dictionary into the analyzer's dictionary
// source format and drives the analyzer's compile and reload steps.
package jtalk

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/userdict/internal/domain"
	"github.com/heartmarshall/userdict/internal/mora"
)

// Column positions of a dictionary source row.
const (
	ColSurface = iota
	ColLeftID
	ColRightID
	ColCost
	ColPos
	ColPosDetail1
	ColPosDetail2
	ColPosDetail3
	ColInflectionalType
	ColInflectionalForm
	ColBase
	ColYomi
	ColPhonemes
	ColAccent
	ColRule
	NumColumns
)

// Row renders one record as a dictionary source row. The yomi column
// comes from the record's readings; phonemes and accents come from its
// pronunciations.
func Row(w domain.Word) ([]string, error) {
	moras, err := w.Moras()
	if err != nil {
		return nil, err
	}
	if len(w.Yomi) != len(moras) {
		return nil, fmt.Errorf("yomi has %d segments, pronunciation has %d", len(w.Yomi), len(moras))
	}

	yomi := make([]string, len(moras))
	phonemes := make([]string, len(moras))
	accents := make([]string, len(moras))
	for i, m := range moras {
		reading, err := mora.Split(w.Yomi[i])
		if err != nil {
			return nil, fmt.Errorf("yomi[%d]: %w", i, err)
		}
		yomi[i] = mora.Kana(reading)
		phonemes[i] = mora.Encode(m)
		accents[i] = fmt.Sprintf("%d/%d", w.AccentType[i], len(m))
	}
	ctx := strconv.Itoa(w.ContextID)

	row := make([]string, NumColumns)
	row[ColSurface] = strings.Join(w.Stem, "")
	row[ColLeftID] = ctx
	row[ColRightID] = ctx
	row[ColCost] = strconv.Itoa(w.Cost())
	row[ColPos] = w.PartOfSpeech
	row[ColPosDetail1] = w.PartOfSpeechDetail1
	row[ColPosDetail2] = w.PartOfSpeechDetail2
	row[ColPosDetail3] = w.PartOfSpeechDetail3
	row[ColInflectionalType] = w.InflectionalType
	row[ColInflectionalForm] = w.InflectionalForm
	row[ColBase] = w.Surface
	row[ColYomi] = strings.Join(yomi, " ")
	row[ColPhonemes] = strings.Join(phonemes, " ")
	row[ColAccent] = strings.Join(accents, " ")
	row[ColRule] = string(w.AccentAssociativeRule)
	return row, nil
}

// Render writes every record as one CSV row, ordered by identifier so the
// output is stable for a given dictionary.
func Render(out io.Writer, words map[uuid.UUID]domain.Word) error {
	ids := make([]uuid.UUID, 0, len(words))
	for id := range words {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	cw := csv.NewWriter(out)
	for _, id := range ids {
		row, err := Row(words[id])
		if err != nil {
			return &domain.WordError{ID: id, Err: err}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %s: %w", id, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
