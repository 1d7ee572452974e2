package runner

import (
	"math"

	"github.com/vovakirdan/neon-zigzag/internal/audio"
)

// ItemKind is the category of a pickup or hazard.
type ItemKind int

const (
	ItemCoin ItemKind = iota
	ItemShield
	ItemMagnet
	ItemObstacle
)

// String returns the kind name.
func (k ItemKind) String() string {
	switch k {
	case ItemCoin:
		return "coin"
	case ItemShield:
		return "shield"
	case ItemMagnet:
		return "magnet"
	case ItemObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Item is a coin, power-up or obstacle placed on the corridor.
type Item struct {
	ID        uint64
	Pos       Vec2
	Phase     float64 // Animation phase
	Kind      ItemKind
	Collected bool
}

// maybeSpawnItem rolls for an item at the midpoint of the new segment a-b.
func (e *Engine) maybeSpawnItem(a, b Vec2) {
	ic := e.cfg.Items
	if e.rng.Float64() >= ic.SpawnChance {
		return
	}

	mid := a.Add(b).Mul(0.5)
	roll := e.rng.Float64()
	kind := ItemCoin
	switch {
	case roll < ic.PowerupRate:
		kind = ItemMagnet
		if e.rng.Float64() < 0.5 {
			kind = ItemShield
		}
	case roll < ic.PowerupRate+ic.ObstacleRate:
		kind = ItemObstacle
	}

	offset := ic.CoinOffset
	if kind != ItemCoin {
		offset = ic.HazardOffset
	}

	e.nextItemID++
	e.items = append(e.items, Item{
		ID:    e.nextItemID,
		Pos:   Vec2{mid.X() + (e.rng.Float64()-0.5)*offset, mid.Y()},
		Phase: e.rng.Float64() * 2 * math.Pi,
		Kind:  kind,
	})
}

// updateItems prunes, animates, attracts and resolves pickups.
func (e *Engine) updateItems(f float64) {
	ic := e.cfg.Items
	killY := e.cameraY + e.height + ic.KillMargin

	kept := e.items[:0]
	for _, it := range e.items {
		if it.Collected || it.Pos.Y() > killY {
			continue
		}
		kept = append(kept, it)
	}
	e.items = kept

	magnetActive := e.magnet > 0
	pull := math.Min(1, ic.MagnetPull*f)

	for i := range e.items {
		it := &e.items[i]
		it.Phase += 0.1 * f

		if magnetActive && it.Kind == ItemCoin {
			d := e.ball.Pos.Sub(it.Pos)
			if d.Len() < ic.MagnetRange {
				it.Pos = it.Pos.Add(d.Mul(pull))
			}
		}

		if !e.ball.Visible || it.Collected {
			continue
		}
		if e.ball.Pos.Sub(it.Pos).Len() < e.hitDistance(it.Kind) {
			e.resolvePickup(it)
		}
	}
}

func (e *Engine) hitDistance(k ItemKind) float64 {
	if k == ItemObstacle {
		return e.cfg.Items.ObstacleHitDist
	}
	return e.cfg.Items.CoinPickupDist
}

// resolvePickup applies the effect of touching it.
func (e *Engine) resolvePickup(it *Item) {
	it.Collected = true

	switch it.Kind {
	case ItemCoin:
		e.coins++
		e.score += e.cfg.Items.CoinValue
		e.spawnParticles(it.Pos, TintCoin, burstCoin)
		e.sink.Play(audio.CuePickup)

	case ItemShield:
		e.invuln = e.cfg.Items.ShieldDuration
		e.spawnParticles(it.Pos, TintShield, burstPowerUp)
		e.sink.Play(audio.CueScoreMilestone)

	case ItemMagnet:
		e.magnet = e.cfg.Items.MagnetDuration
		e.spawnParticles(it.Pos, TintMagnet, burstPowerUp)
		e.sink.Play(audio.CueScoreMilestone)

	case ItemObstacle:
		if e.invulnerable() {
			e.spawnParticles(it.Pos, TintObstacle, burstObstacle)
			e.sink.Play(audio.CueCrash)
			return
		}
		e.loseLife(e.closestOnCenterline(it.Pos))
	}
}
