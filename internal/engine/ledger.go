package engine

import "github.com/tableroom/tableroom/internal/model"

// The resource ledger enforces the two-pool economy: action points refill at
// the start of each turn, health points only move through healing actions.

// replenish refills a player's action points to their cap. Health is never
// auto-replenished. Called exactly once per participant at the start of each
// of their turns, including turns reassigned by disconnect recovery.
func replenish(p *model.Player) {
	p.ActionPoints = p.ActionPointsMax
}

// spend deducts amount action points if the player can afford it, reporting
// whether the deduction happened. Action points never go negative.
func spend(p *model.Player, amount int) bool {
	if amount < 0 || p.ActionPoints < amount {
		return false
	}
	p.ActionPoints -= amount
	return true
}

// restoreHealth adds amount health points, clamped to the player's cap.
func restoreHealth(p *model.Player, amount int) {
	p.HealthPoints += amount
	if p.HealthPoints > p.HealthPointsMax {
		p.HealthPoints = p.HealthPointsMax
	}
}
