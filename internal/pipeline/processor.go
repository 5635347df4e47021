package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/loyalty-processor/internal/domain"
	"github.com/dvloznov/loyalty-processor/internal/logger"
)

// Processor runs the resumable loop over a transaction log: skip whatever a
// previous run already applied, accrue points for target-merchant lines, and
// checkpoint progress so a crash costs at most one interval of reprocessing.
type Processor struct {
	members     domain.MemberRepository
	checkpoints CheckpointStore

	merchant string
	rate     decimal.Decimal
	interval int64
}

// Options configure a Processor. Unset fields fall back to the package
// defaults. PointsRate is a pointer so that an explicitly configured rate of
// zero is honored rather than mistaken for unset.
type Options struct {
	TargetMerchant     string
	PointsRate         *decimal.Decimal
	CheckpointInterval int64
}

// New creates a Processor over the given member and checkpoint stores.
func New(members domain.MemberRepository, checkpoints CheckpointStore, opts Options) *Processor {
	if opts.TargetMerchant == "" {
		opts.TargetMerchant = DefaultTargetMerchant
	}
	rate := DefaultPointsRate
	if opts.PointsRate != nil {
		rate = *opts.PointsRate
	}
	if opts.CheckpointInterval <= 0 {
		opts.CheckpointInterval = DefaultCheckpointInterval
	}
	return &Processor{
		members:     members,
		checkpoints: checkpoints,
		merchant:    opts.TargetMerchant,
		rate:        rate,
		interval:    opts.CheckpointInterval,
	}
}

// ProcessFile runs the loop over the transaction log at path.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ProcessFile: opening transaction log: %w", err)
	}
	defer f.Close()

	return p.Process(ctx, f)
}

// Process runs the loop over an already-open transaction log, consuming it to
// EOF on success.
//
// Any I/O failure aborts the run and leaves the last saved checkpoint in
// place, so a retry resumes from the most recent interval boundary instead of
// the top of the file. Malformed lines, other merchants and unknown cards are
// counted in the report and never abort anything.
func (p *Processor) Process(ctx context.Context, r io.Reader) (*Report, error) {
	report := &Report{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
	log := logger.WithFields(logger.FromContext(ctx), map[string]interface{}{
		"run_id": report.RunID,
	})

	// 1. Resume: find out how many lines a previous run already applied.
	offset, err := p.checkpoints.Load()
	if err != nil {
		return nil, fmt.Errorf("Process: loading checkpoint: %w", err)
	}
	report.ResumedFrom = offset

	log.Info().
		Int64("resume_offset", offset).
		Str("merchant", p.merchant).
		Msg("Starting processing run")

	// 2. Skip already-applied lines without parsing them. The checkpoint
	// counts fully processed lines, so these must not be applied twice.
	br := bufio.NewReader(r)
	lineNo := int64(0)
	for lineNo < offset {
		_, ok, err := readLine(br)
		if err != nil {
			return nil, fmt.Errorf("Process: reading transaction log: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("Process: transaction log ended at line %d but checkpoint expects %d; wrong or truncated file", lineNo, offset)
		}
		lineNo++
	}

	// 3. Stream the rest of the file, one line at a time.
	for {
		line, ok, err := readLine(br)
		if err != nil {
			return nil, fmt.Errorf("Process: reading transaction log: %w", err)
		}
		if !ok {
			break
		}
		lineNo++
		if err := p.applyLine(ctx, line, report); err != nil {
			return nil, fmt.Errorf("Process: line %d: %w", lineNo, err)
		}

		// 4. Periodic checkpoint on the absolute line count, so the cadence
		// stays aligned across resumed runs.
		if lineNo%p.interval == 0 {
			if err := p.checkpoints.Save(lineNo); err != nil {
				return nil, fmt.Errorf("Process: saving checkpoint: %w", err)
			}
			log.Debug().Int64("line", lineNo).Msg("Checkpoint saved")
		}
	}

	// 5. Final checkpoint, then clear it: an absent checkpoint is the one
	// signal that the file was fully consumed.
	if err := p.checkpoints.Save(lineNo); err != nil {
		return nil, fmt.Errorf("Process: saving final checkpoint: %w", err)
	}
	if err := p.checkpoints.Clear(); err != nil {
		return nil, fmt.Errorf("Process: clearing checkpoint: %w", err)
	}

	report.LinesRead = lineNo
	report.Finished = time.Now()

	log.Info().
		Int64("lines", report.LinesRead).
		Int64("accruals", report.Accruals).
		Int64("points", report.PointsAwarded).
		Int64("malformed", report.Malformed).
		Int64("other_merchant", report.OtherMerchant).
		Int64("unknown_card", report.UnknownCard).
		Msg("Processing run complete")

	return report, nil
}

// readLine returns the next line of r without its trailing newline. Lines
// carry no length cap: an oversized line parses as malformed and is skipped
// like any other, instead of aborting the run. ok is false at end of input.
func readLine(r *bufio.Reader) (string, bool, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", false, err
	}
	if line == "" {
		return "", false, nil
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}

// applyLine classifies one line and accrues points when it is a well-formed
// transaction at the target merchant by a known member. Every other outcome
// is counted and skipped; only store failures become errors.
func (p *Processor) applyLine(ctx context.Context, line string, report *Report) error {
	rec, ok := ParseLine(line)
	if !ok {
		report.Malformed++
		return nil
	}
	if rec.MerchantID != p.merchant {
		report.OtherMerchant++
		return nil
	}

	member, err := p.members.Get(ctx, rec.CardNumber)
	if err != nil {
		return fmt.Errorf("applyLine: looking up member: %w", err)
	}
	if member == nil {
		report.UnknownCard++
		return nil
	}

	points := domain.PointsFor(rec.Amount, p.rate)
	member.Accrue(points)
	if err := p.members.Put(ctx, member); err != nil {
		return fmt.Errorf("applyLine: saving member %s: %w", member.MaskedCard(), err)
	}

	report.Accruals++
	report.PointsAwarded += points
	return nil
}
