package sample

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"
)

// Merchants is the merchant mix of the feed: the target gas-station chain
// plus the noise the processor is expected to skip.
var Merchants = []string{"GAS123", "SHOP456", "REST789", "GROC012", "CLTH345"}

// Generator produces transaction-log lines shaped like the real feed:
// yesterday's date, mostly random card numbers with the occasional loyalty
// member, amounts between $10 and $100.
type Generator struct {
	rng         *rand.Rand
	memberCards []string
	date        string
}

// NewGenerator creates a Generator that draws loyalty cards from memberCards.
// The rng is injected so tests can pin the sequence.
func NewGenerator(rng *rand.Rand, memberCards []string) *Generator {
	return &Generator{
		rng:         rng,
		memberCards: memberCards,
		date:        time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
	}
}

// Line produces one transaction-log line.
func (g *Generator) Line() string {
	merchant := Merchants[g.rng.Intn(len(Merchants))]
	card := g.cardNumber()
	amount := 10 + g.rng.Float64()*90
	return fmt.Sprintf("%s,%s,%s,%.2f", g.date, card, merchant, amount)
}

// cardNumber picks a loyalty member card about 10% of the time and a random
// 16-digit number otherwise.
func (g *Generator) cardNumber() string {
	if g.rng.Intn(10) == 0 && len(g.memberCards) > 0 {
		return g.memberCards[g.rng.Intn(len(g.memberCards))]
	}

	digits := make([]byte, 16)
	for i := range digits {
		digits[i] = byte('0' + g.rng.Intn(10))
	}
	return string(digits)
}

// Write writes count generated lines to w.
func (g *Generator) Write(w io.Writer, count int) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < count; i++ {
		if _, err := fmt.Fprintln(bw, g.Line()); err != nil {
			return fmt.Errorf("Write: writing line %d: %w", i+1, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("Write: flushing: %w", err)
	}
	return nil
}

// WriteFile generates count lines into the file at path, replacing whatever
// is there.
func (g *Generator) WriteFile(path string, count int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("WriteFile: creating %s: %w", path, err)
	}
	if err := g.Write(f, count); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("WriteFile: closing %s: %w", path, err)
	}
	return nil
}
