package battle

import (
	"fmt"
	"math"

	"github.com/samdwyer/critterquest/internal/entity"
)

// =============================================================================
// BATTLE RULES
// =============================================================================
//
// Damage:
//   damage = max(1, floor((base - effectiveDefense*0.5) * factor))
//   base   = attack (attack) or attack*1.8 (special)
//   effectiveDefense = defense*1.5 while defending, else defense
//   factor = uniform in [0.8, 1.2]
//
// Costs:
//   attack  10 energy
//   special 15 energy + 1 special use
//   defend  restores 5 energy
//   capture 1 capture item, win or lose
//
// Capture rate: clamp(10, 90, (100 - defenderHP%) + 20), roll = uniform*100,
// success when roll <= rate.
//
// Flee: success when uniform > 0.3.

const (
	AttackEnergyCost  = 10
	SpecialEnergyCost = 15
	DefendEnergyGain  = 5

	specialMultiplier = 1.8
	defendMultiplier  = 1.5
	defenseWeight     = 0.5
	minDamageFactor   = 0.8
	damageFactorRange = 0.4

	minCaptureRate   = 10
	maxCaptureRate   = 90
	captureRateBonus = 20

	fleeFailChance = 0.3
)

// CalculateDamage applies the damage formula for a given random factor.
// It never returns less than 1.
func CalculateDamage(base float64, defense int, defending bool, factor float64) int {
	effectiveDefense := float64(defense)
	if defending {
		effectiveDefense *= defendMultiplier
	}
	damage := int(math.Floor((base - effectiveDefense*defenseWeight) * factor))
	return max(1, damage)
}

// captureRate is the success threshold, in percent, for a capture attempt.
func captureRate(defender *entity.Monster) float64 {
	rate := (100 - defender.HPPercent()) + captureRateBonus
	return math.Max(minCaptureRate, math.Min(maxCaptureRate, rate))
}

// CaptureRate returns the capture chance shown to the player, as a whole
// percentage.
func CaptureRate(defender *entity.Monster) int {
	return int(math.Floor(captureRate(defender)))
}

// damageFactor draws the random damage multiplier.
func damageFactor(src Source) float64 {
	return minDamageFactor + src.Float64()*damageFactorRange
}

// resolveAttack handles a basic attack.
func resolveAttack(src Source, actor, defender *entity.Monster) Result {
	if !actor.SpendEnergy(AttackEnergyCost) {
		return Result{Message: fmt.Sprintf("%s doesn't have enough energy!", actor.Name)}
	}

	damage := CalculateDamage(float64(actor.Attack), defender.Defense, defender.Defending, damageFactor(src))
	defender.TakeDamage(damage)

	return Result{
		Success:    true,
		Damage:     damage,
		EnergyCost: AttackEnergyCost,
		Message:    fmt.Sprintf("%s attacked and dealt %d damage!", actor.Name, damage),
	}
}

// resolveSpecial handles the limited-use special attack.
func resolveSpecial(src Source, actor, defender *entity.Monster) Result {
	if actor.SpecialUses <= 0 {
		return Result{Message: fmt.Sprintf("%s can't use special attacks anymore!", actor.Name)}
	}
	if actor.Energy < SpecialEnergyCost {
		return Result{Message: fmt.Sprintf("%s doesn't have enough energy!", actor.Name)}
	}

	actor.SpendEnergy(SpecialEnergyCost)
	actor.UseSpecial()

	base := float64(actor.Attack) * specialMultiplier
	damage := CalculateDamage(base, defender.Defense, defender.Defending, damageFactor(src))
	defender.TakeDamage(damage)

	return Result{
		Success:    true,
		Damage:     damage,
		EnergyCost: SpecialEnergyCost,
		Message:    fmt.Sprintf("%s used a Special Attack and dealt %d damage!", actor.Name, damage),
	}
}

// resolveDefend raises the actor's guard and recovers a little energy.
func resolveDefend(actor *entity.Monster) Result {
	actor.Defending = true
	actor.RestoreEnergy(DefendEnergyGain)
	return Result{
		Success: true,
		Message: fmt.Sprintf("%s took a defensive stance!", actor.Name),
	}
}

// resolveFlee rolls to escape. The caller ends the battle on success.
func resolveFlee(src Source, actor *entity.Monster) Result {
	if src.Float64() > fleeFailChance {
		return Result{Success: true, Message: fmt.Sprintf("%s fled the battle!", actor.Name)}
	}
	return Result{Message: fmt.Sprintf("%s couldn't get away!", actor.Name)}
}
