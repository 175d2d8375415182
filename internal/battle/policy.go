package battle

// enemyWeights is the enemy's preference before affordability checks.
var enemyWeights = []struct {
	action Action
	weight float64
}{
	{ActionAttack, 0.6},
	{ActionDefend, 0.2},
	{ActionSpecial, 0.2},
}

// ChooseEnemyAction picks the enemy's next action. It only decides; the
// caller applies the action with Apply, after whatever delay it wants.
//
// A special the enemy cannot afford becomes an attack, and an attack it
// cannot afford becomes a defend.
func (e *Engine) ChooseEnemyAction(s State) Action {
	action := ActionAttack
	draw := e.src.Float64()

	cumulative := 0.0
	for _, w := range enemyWeights {
		cumulative += w.weight
		if draw <= cumulative {
			action = w.action
			break
		}
	}

	enemy := s.Enemy
	if action == ActionSpecial && (enemy.SpecialUses <= 0 || enemy.Energy < SpecialEnergyCost) {
		action = ActionAttack
	}
	if action == ActionAttack && enemy.Energy < AttackEnergyCost {
		action = ActionDefend
	}

	return action
}
