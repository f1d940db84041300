// Package wager resolves stake-and-draw games. Resolvers never look at
// balances; the caller checks the stake before invoking them.
package wager

import "errors"

var ErrUnknownKind = errors.New("unknown_wager_kind")

type Kind string

const (
	KindCoin Kind = "coin"
	KindSlot Kind = "slot"
	KindDice Kind = "dice"
)

const (
	CoinStake int64 = 100
	SlotStake int64 = 100
	DiceStake int64 = 50
)

// Reel symbols for the slot game, drawn uniformly per reel.
var SlotSymbols = []string{"cherry", "lemon", "orange", "gem", "seven"}

// Outcome describes a resolved wager. Net is the balance delta including
// the stake: a losing coin flip has Net == -CoinStake.
type Outcome struct {
	Kind  Kind
	Net   int64
	Coin  string   // coin flip side, "heads" or "tails"
	Reels []string // slot symbols, three entries
	Roll  int      // dice value, 1..6
}

// Stake returns the fixed stake for a wager kind.
func Stake(k Kind) (int64, error) {
	switch k {
	case KindCoin:
		return CoinStake, nil
	case KindSlot:
		return SlotStake, nil
	case KindDice:
		return DiceStake, nil
	default:
		return 0, ErrUnknownKind
	}
}

// Resolve draws the outcome for kind k from rnd.
func Resolve(k Kind, rnd Rand) (Outcome, error) {
	switch k {
	case KindCoin:
		return resolveCoin(rnd), nil
	case KindSlot:
		return resolveSlot(rnd), nil
	case KindDice:
		return resolveDice(rnd), nil
	default:
		return Outcome{}, ErrUnknownKind
	}
}

// Coin flip: even odds, win pays double the stake.
func resolveCoin(rnd Rand) Outcome {
	if rnd.Intn(2) == 0 {
		return Outcome{Kind: KindCoin, Coin: "heads", Net: CoinStake}
	}
	return Outcome{Kind: KindCoin, Coin: "tails", Net: -CoinStake}
}

// Slot: three reels over five symbols. Triple pays 5x the stake, a pair
// 2x, all distinct loses the stake.
func resolveSlot(rnd Rand) Outcome {
	reels := make([]string, 3)
	distinct := map[string]bool{}
	for i := range reels {
		reels[i] = SlotSymbols[rnd.Intn(len(SlotSymbols))]
		distinct[reels[i]] = true
	}
	out := Outcome{Kind: KindSlot, Reels: reels}
	switch len(distinct) {
	case 1:
		out.Net = 4 * SlotStake
	case 2:
		out.Net = SlotStake
	default:
		out.Net = -SlotStake
	}
	return out
}

// Dice: a six pays 6x the stake, anything else loses it.
func resolveDice(rnd Rand) Outcome {
	roll := rnd.Intn(6) + 1
	if roll == 6 {
		return Outcome{Kind: KindDice, Roll: roll, Net: 5 * DiceStake}
	}
	return Outcome{Kind: KindDice, Roll: roll, Net: -DiceStake}
}
