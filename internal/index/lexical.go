package index

import (
	"math"
	"sort"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/stackdesk/faqd/internal/domain"
)

// BM25 parameters, standard values from the IR literature.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

type lexicalDoc struct {
	chunk    domain.KnowledgeChunk
	termFreq map[string]int
	tokenLen int
}

type lexicalSnapshot struct {
	docs      []lexicalDoc
	docFreq   map[string]int
	avgDocLen float64
}

// LexicalIndex is a BM25 keyword index over the FAQ corpus. Like
// VectorIndex it is replaced wholesale via snapshot swap.
type LexicalIndex struct {
	snapshot atomic.Pointer[lexicalSnapshot]
}

// NewLexicalIndex creates an empty LexicalIndex.
func NewLexicalIndex() *LexicalIndex {
	return &LexicalIndex{}
}

// ReplaceAll rebuilds the index from the given chunks. Heading and text are
// combined so headings contribute to keyword matching.
func (ix *LexicalIndex) ReplaceAll(chunks []domain.KnowledgeChunk) {
	snap := &lexicalSnapshot{
		docs:    make([]lexicalDoc, 0, len(chunks)),
		docFreq: make(map[string]int),
	}

	totalLen := 0
	for _, c := range chunks {
		tokens := Tokenize(c.Heading + " " + c.Text)
		tf := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		for term := range tf {
			snap.docFreq[term]++
		}
		totalLen += len(tokens)
		snap.docs = append(snap.docs, lexicalDoc{chunk: c, termFreq: tf, tokenLen: len(tokens)})
	}
	if len(snap.docs) > 0 {
		snap.avgDocLen = float64(totalLen) / float64(len(snap.docs))
	}

	ix.snapshot.Store(snap)
}

// Search scores the corpus against the query with BM25 and returns up to k
// positive-scoring matches, highest first, ties in insertion order. An
// unloaded or empty index yields no matches.
func (ix *LexicalIndex) Search(query string, k int) []Match {
	snap := ix.snapshot.Load()
	if snap == nil || len(snap.docs) == 0 || k <= 0 {
		return []Match{}
	}

	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 {
		return []Match{}
	}

	n := float64(len(snap.docs))
	matches := make([]Match, 0, len(snap.docs))
	for i := range snap.docs {
		doc := &snap.docs[i]
		score := 0.0
		for _, term := range queryTokens {
			tf := doc.termFreq[term]
			if tf == 0 {
				continue
			}
			df := float64(snap.docFreq[term])
			idf := math.Log(1 + (n-df+0.5)/(df+0.5))
			norm := 1 - bm25B + bm25B*float64(doc.tokenLen)/snap.avgDocLen
			score += idf * float64(tf) * (bm25K1 + 1) / (float64(tf) + bm25K1*norm)
		}
		if score > 0 {
			matches = append(matches, Match{Chunk: &doc.chunk, Similarity: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// Size returns the number of indexed chunks.
func (ix *LexicalIndex) Size() int {
	snap := ix.snapshot.Load()
	if snap == nil {
		return 0
	}
	return len(snap.docs)
}

// Tokenize lowercases text and splits on non-alphanumeric runes, keeping
// digits so version numbers and ticket IDs stay searchable.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
