// Package item models the playing cards found in containers and the player's inventory.
package item

import (
	"fmt"
	"math/rand"
)

// Suit of a playing card.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	default:
		return "♣"
	}
}

// Rank runs from Ace (1) to King (13).
type Rank int

const (
	Ace   Rank = 1
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// Card is a loot card.
type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Value is the score of the card: Ace 11, faces 10, numerals their rank.
func (c Card) Value() int {
	switch {
	case c.Rank == Ace:
		return 11
	case c.Rank >= Jack:
		return 10
	default:
		return int(c.Rank)
	}
}

// Rare reports whether the card is an ace or a face card.
func (c Card) Rare() bool {
	return c.Rank == Ace || c.Rank >= Jack
}

// Odds selects the rank weighting of a draw.
type Odds int

const (
	OddsCommon Odds = iota // every rank equally likely
	OddsAce                // aces boosted
	OddsFace               // tens and faces boosted
)

const boostWeight = 4

func rankWeight(o Odds, r Rank) int {
	switch o {
	case OddsAce:
		if r == Ace {
			return boostWeight
		}
	case OddsFace:
		if r >= Ten {
			return boostWeight
		}
	}
	return 1
}

// Draw picks a weighted random card.
func Draw(rng *rand.Rand, o Odds) Card {
	total := 0
	for r := Ace; r <= King; r++ {
		total += rankWeight(o, r)
	}

	n := rng.Intn(total)
	rank := King
	for r := Ace; r <= King; r++ {
		n -= rankWeight(o, r)
		if n < 0 {
			rank = r
			break
		}
	}
	return Card{Rank: rank, Suit: Suit(rng.Intn(4))}
}
