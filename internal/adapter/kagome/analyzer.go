// Package kagome runs the user dictionary inside the process on top of the
// kagome morphological analyzer.
package kagome

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/heartmarshall/userdict/internal/adapter/jtalk"
)

// System dictionaries.
const (
	SystemDictIPA = "ipa"
	SystemDictUni = "uni"
)

// posSeparator joins the four POS levels inside a compiled record.
const posSeparator = "-"

// Token is one morpheme of analyzed text.
type Token struct {
	Surface string   `json:"surface"`
	POS     []string `json:"pos"`
	Reading string   `json:"reading,omitempty"`
	User    bool     `json:"user"`
	Start   int      `json:"start"`
	End     int      `json:"end"`
}

type state struct {
	tok   *tokenizer.Tokenizer
	users map[string]dict.UserDicRecord
}

// Analyzer implements jtalk.Compiler. Compile converts a dictionary source
// file to a kagome user dictionary; Reload swaps in a tokenizer built with
// it. Tokenize may run concurrently with Reload.
type Analyzer struct {
	sys   *dict.Dict
	state atomic.Pointer[state]
	log   *slog.Logger
}

var _ jtalk.Compiler = (*Analyzer)(nil)

// New loads the named system dictionary and builds a tokenizer without a
// user dictionary.
func New(systemDict string, logger *slog.Logger) (*Analyzer, error) {
	var sys *dict.Dict
	switch systemDict {
	case SystemDictIPA, "":
		sys = ipa.Dict()
	case SystemDictUni:
		sys = uni.Dict()
	default:
		return nil, fmt.Errorf("unknown system dictionary %q", systemDict)
	}

	a := &Analyzer{sys: sys, log: logger.With("component", "kagome")}
	if err := a.swap(nil); err != nil {
		return nil, err
	}
	return a, nil
}

// Ready reports whether a tokenizer is available.
func (a *Analyzer) Ready() bool { return a.state.Load() != nil }

// Ping reports an error while no tokenizer is available.
func (a *Analyzer) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !a.Ready() {
		return errors.New("tokenizer not initialized")
	}
	return nil
}

// Compile reads the dictionary source at src and writes the kagome user
// dictionary to dst. When several rows share a surface the one with the
// lowest cost wins.
func (a *Analyzer) Compile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	records, err := readSource(f)
	if err != nil {
		return fmt.Errorf("read source %s: %w", src, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if err := writeUserDict(bw, records); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("replace %s: %w", dst, err)
	}

	a.log.DebugContext(ctx, "user dictionary compiled", slog.Int("records", len(records)))
	return nil
}

// Reload builds a tokenizer with the compiled dictionary and makes it active.
func (a *Analyzer) Reload(ctx context.Context, compiled string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(compiled)
	if err != nil {
		return fmt.Errorf("open compiled dictionary: %w", err)
	}
	defer f.Close()

	records, err := dict.NewUserDicRecords(f)
	if err != nil {
		return fmt.Errorf("read compiled dictionary %s: %w", compiled, err)
	}
	if err := a.swap(records); err != nil {
		return err
	}

	a.log.InfoContext(ctx, "analyzer reloaded", slog.Int("user_words", len(records)))
	return nil
}

// Tokenize splits text into morphemes with the active tokenizer.
func (a *Analyzer) Tokenize(text string) []Token {
	st := a.state.Load()
	ktoks := st.tok.Tokenize(text)

	out := make([]Token, 0, len(ktoks))
	for _, kt := range ktoks {
		t := Token{Surface: kt.Surface, Start: kt.Start, End: kt.End}
		if rec, ok := st.users[kt.Surface]; ok && kt.Class == tokenizer.USER {
			t.User = true
			t.POS = strings.Split(rec.Pos, posSeparator)
			t.Reading = strings.Join(rec.Yomi, "")
		} else {
			t.POS = kt.POS()
			t.Reading, _ = kt.Reading()
		}
		out = append(out, t)
	}
	return out
}

func (a *Analyzer) swap(records dict.UserDictRecords) error {
	opts := []tokenizer.Option{tokenizer.OmitBosEos()}
	users := make(map[string]dict.UserDicRecord, len(records))
	if len(records) > 0 {
		udict, err := records.NewUserDict()
		if err != nil {
			return fmt.Errorf("build user dictionary: %w", err)
		}
		opts = append(opts, tokenizer.UserDict(udict))
		for _, r := range records {
			users[r.Text] = r
		}
	}

	tok, err := tokenizer.New(a.sys, opts...)
	if err != nil {
		return fmt.Errorf("create tokenizer: %w", err)
	}
	a.state.Store(&state{tok: tok, users: users})
	return nil
}

// readSource converts dictionary source rows to user dictionary records.
func readSource(r io.Reader) (dict.UserDictRecords, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = jtalk.NumColumns

	var (
		records dict.UserDictRecords
		costs   = map[string]int{}
		index   = map[string]int{}
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		surface := row[jtalk.ColSurface]
		if strings.IndexFunc(surface, unicode.IsSpace) >= 0 {
			return nil, fmt.Errorf("surface %q contains whitespace", surface)
		}
		cost, err := strconv.Atoi(row[jtalk.ColCost])
		if err != nil {
			return nil, fmt.Errorf("cost %q: %w", row[jtalk.ColCost], err)
		}
		rec := dict.UserDicRecord{
			Text:   surface,
			Tokens: []string{surface},
			Yomi:   []string{strings.ReplaceAll(row[jtalk.ColYomi], " ", "")},
			Pos: strings.Join([]string{
				row[jtalk.ColPos], row[jtalk.ColPosDetail1], row[jtalk.ColPosDetail2], row[jtalk.ColPosDetail3],
			}, posSeparator),
		}

		if i, dup := index[rec.Text]; dup {
			if cost < costs[rec.Text] {
				records[i] = rec
				costs[rec.Text] = cost
			}
			continue
		}
		index[rec.Text] = len(records)
		costs[rec.Text] = cost
		records = append(records, rec)
	}
	return records, nil
}

// writeUserDict writes records in kagome's user dictionary layout, one
// text,tokens,yomi,pos line per record with space separated tokens and
// yomi. The layout has no quoting, so fields must not contain commas.
func writeUserDict(w io.Writer, records dict.UserDictRecords) error {
	for _, r := range records {
		fields := []string{r.Text, strings.Join(r.Tokens, " "), strings.Join(r.Yomi, " "), r.Pos}
		for _, f := range fields {
			if strings.ContainsAny(f, ",\r\n") {
				return fmt.Errorf("record %q: field %q cannot be written", r.Text, f)
			}
		}
		if _, err := io.WriteString(w, strings.Join(fields, ",")+"\n"); err != nil {
			return err
		}
	}
	return nil
}
