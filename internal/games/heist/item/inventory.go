package item

// Inventory holds loot cards and single-use computer cards.
type Inventory struct {
	cards         []Card
	cardSlots     int
	computerCards int
	computerSlots int
}

// NewInventory creates an empty inventory with the given capacities.
func NewInventory(cardSlots, computerSlots int) *Inventory {
	return &Inventory{
		cards:         make([]Card, 0, cardSlots),
		cardSlots:     cardSlots,
		computerSlots: computerSlots,
	}
}

// AddCard stores a loot card. It returns false when the inventory is full.
func (inv *Inventory) AddCard(c Card) bool {
	if inv.CardsFull() {
		return false
	}
	inv.cards = append(inv.cards, c)
	return true
}

// CardsFull reports whether no more loot cards fit.
func (inv *Inventory) CardsFull() bool {
	return len(inv.cards) >= inv.cardSlots
}

// Cards returns a copy of the carried loot cards.
func (inv *Inventory) Cards() []Card {
	out := make([]Card, len(inv.cards))
	copy(out, inv.cards)
	return out
}

// Score sums the value of carried loot cards.
func (inv *Inventory) Score() int {
	total := 0
	for _, c := range inv.cards {
		total += c.Value()
	}
	return total
}

// AddComputerCard stores a computer card. It returns false when full.
func (inv *Inventory) AddComputerCard() bool {
	if inv.ComputerCardsFull() {
		return false
	}
	inv.computerCards++
	return true
}

// ComputerCardsFull reports whether no more computer cards fit.
func (inv *Inventory) ComputerCardsFull() bool {
	return inv.computerCards >= inv.computerSlots
}

// HasComputerCard reports whether a computer card is carried.
func (inv *Inventory) HasComputerCard() bool {
	return inv.computerCards > 0
}

// UseComputerCard consumes one computer card.
func (inv *Inventory) UseComputerCard() bool {
	if inv.computerCards == 0 {
		return false
	}
	inv.computerCards--
	return true
}

// ComputerCards returns the number of carried computer cards.
func (inv *Inventory) ComputerCards() int {
	return inv.computerCards
}

// Reset empties the inventory.
func (inv *Inventory) Reset() {
	inv.cards = inv.cards[:0]
	inv.computerCards = 0
}
