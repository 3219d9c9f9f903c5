package services

import (
	"context"
	"fmt"
	"math/big"

	"cosmossdk.io/math"
	"github.com/lockuplabs/token-lockup-service/internal/db/model"
	"github.com/lockuplabs/token-lockup-service/internal/lockup"
	"github.com/lockuplabs/token-lockup-service/internal/observability/metrics"
	"github.com/lockuplabs/token-lockup-service/internal/queue"
	"github.com/lockuplabs/token-lockup-service/internal/types"
	"github.com/rs/zerolog/log"
)

// ClaimedAsset is the settled amount of one asset within a claim.
type ClaimedAsset struct {
	Asset  string
	Amount math.Int
}

// Claim settles every due unlock of a time-watermarked lockup for each of
// the given assets and transfers the released amounts to the owner. Each
// asset is settled independently against its own watermark and its live
// custody balance, so deposits made after initialization are captured into
// the still-unvested remainder. Claiming again before the next unlock
// releases nothing and is not an error.
func (s *Service) Claim(ctx context.Context, caller, lockupID string, assets []string) ([]ClaimedAsset, error) {
	doc, err := s.getLockup(ctx, lockupID, types.VariantTimeWatermarked)
	if err != nil {
		return nil, err
	}
	if err := s.gate.RequireCaller(caller, doc.Owner); err != nil {
		return nil, err
	}

	schedule := doc.Schedule()
	now := uint64(s.now().Unix())
	fullyUnlocked := lockup.FullyUnlocked(schedule, now)

	claims := make([]ClaimedAsset, 0, len(assets))
	for _, asset := range assets {
		// the live balance must be re-queried on every claim so that late
		// deposits vest under the remaining schedule
		balance, err := s.ledger.Balance(ctx, lockupID, asset)
		if err != nil {
			s.recordClaim(doc.Variant, true)
			return nil, fmt.Errorf("failed to get balance of asset %s: %w", asset, err)
		}

		var claimAmount math.Int
		if fullyUnlocked {
			claimAmount = balance
		} else {
			watermark, err := s.db.GetClaimWatermark(ctx, lockupID, asset)
			if err != nil {
				s.recordClaim(doc.Variant, true)
				return nil, fmt.Errorf("failed to get claim watermark of asset %s: %w", asset, err)
			}
			due := lockup.DuePercents(schedule, watermark, now)
			claimAmount, _ = lockup.ApplyPercents(balance, due)
		}

		// the watermark is advanced to now even when nothing is due, and is
		// committed before the transfer; the transfer gateway is
		// all-or-nothing per call
		if err := s.db.SetClaimWatermark(ctx, lockupID, asset, now); err != nil {
			s.recordClaim(doc.Variant, true)
			return nil, fmt.Errorf("failed to set claim watermark of asset %s: %w", asset, err)
		}
		if err := s.ledger.Transfer(ctx, lockupID, doc.Owner, asset, claimAmount); err != nil {
			s.recordClaim(doc.Variant, true)
			return nil, fmt.Errorf("failed to transfer asset %s: %w", asset, err)
		}

		claims = append(claims, ClaimedAsset{Asset: asset, Amount: claimAmount})
		metrics.RecordClaimedAmount(asset, amountToFloat(claimAmount))

		log.Ctx(ctx).Info().
			Str("lockup_id", lockupID).
			Str("asset", asset).
			Str("amount", claimAmount.String()).
			Uint64("watermark", now).
			Bool("fully_unlocked", fullyUnlocked).
			Msg("claim settled")
	}

	s.recordClaim(doc.Variant, false)
	s.emitClaimSettled(ctx, doc, claims)

	return claims, nil
}

// ClaimAt settles the unlock prefix up to and including the given sequence
// key of a sequence-consuming lockup. The key must identify an existing
// unlock at or below the current ledger sequence. The consumed prefix is
// removed from the shared schedule before any transfer, so assets left out
// of this call permanently lose those unlocks.
func (s *Service) ClaimAt(ctx context.Context, caller, lockupID string, key uint64, assets []string) ([]ClaimedAsset, error) {
	doc, err := s.getLockup(ctx, lockupID, types.VariantSequenceConsuming)
	if err != nil {
		return nil, err
	}
	if err := s.gate.RequireCaller(caller, doc.Owner); err != nil {
		return nil, err
	}

	currentSequence, err := s.ledger.CurrentSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current ledger sequence: %w", err)
	}

	schedule := lockup.NewSequenceSchedule(doc.Schedule())
	keys := schedule.Keys()
	idx, ok := lockup.FindAtOrBefore(keys, key)
	if key > currentSequence || !ok || keys[idx] != key {
		return nil, fmt.Errorf("%w: sequence %d", lockup.ErrInvalidUnlockKey, key)
	}

	percents := schedule.ConsumePrefix(idx)

	// the consumed prefix is committed before transfers; it is shared state,
	// not per-asset
	if err := s.db.UpdateLockupSchedule(ctx, lockupID, model.FromSchedule(schedule.Entries())); err != nil {
		s.recordClaim(doc.Variant, true)
		return nil, fmt.Errorf("failed to consume unlocks: %w", err)
	}

	claims := make([]ClaimedAsset, 0, len(assets))
	for _, asset := range assets {
		balance, err := s.ledger.Balance(ctx, lockupID, asset)
		if err != nil {
			s.recordClaim(doc.Variant, true)
			return nil, fmt.Errorf("failed to get balance of asset %s: %w", asset, err)
		}

		claimAmount, _ := lockup.ApplyPercents(balance, percents)
		if err := s.ledger.Transfer(ctx, lockupID, doc.Owner, asset, claimAmount); err != nil {
			s.recordClaim(doc.Variant, true)
			return nil, fmt.Errorf("failed to transfer asset %s: %w", asset, err)
		}

		claims = append(claims, ClaimedAsset{Asset: asset, Amount: claimAmount})
		metrics.RecordClaimedAmount(asset, amountToFloat(claimAmount))

		log.Ctx(ctx).Info().
			Str("lockup_id", lockupID).
			Str("asset", asset).
			Str("amount", claimAmount.String()).
			Uint64("sequence", key).
			Int("consumed_unlocks", len(percents)).
			Msg("claim settled")
	}

	s.recordClaim(doc.Variant, false)
	s.emitClaimSettled(ctx, doc, claims)

	return claims, nil
}

func (s *Service) recordClaim(variant types.LockupVariant, failure bool) {
	metrics.RecordClaimProcessed(variant.String(), failure)
}

func (s *Service) emitClaimSettled(ctx context.Context, doc *model.LockupDocument, claims []ClaimedAsset) {
	if s.queueManager == nil {
		return
	}

	amounts := make([]queue.AssetAmount, len(claims))
	for i, c := range claims {
		amounts[i] = queue.AssetAmount{Asset: c.Asset, Amount: c.Amount.String()}
	}

	event := &queue.ClaimSettledEvent{
		LockupID: doc.ID,
		Variant:  doc.Variant.String(),
		Owner:    doc.Owner,
		Amounts:  amounts,
	}
	if err := s.queueManager.PublishClaimSettled(ctx, event); err != nil {
		// events are best effort
		log.Ctx(ctx).Error().Err(err).
			Str("lockup_id", doc.ID).
			Msg("failed to publish claim settled event")
		metrics.RecordQueueSendError()
	}
}

func amountToFloat(amount math.Int) float64 {
	f, _ := new(big.Float).SetInt(amount.BigInt()).Float64()
	return f
}
