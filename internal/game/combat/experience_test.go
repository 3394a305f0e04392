package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/tactica/internal/model"
)

func strikes(attacker, defender string, hits ...bool) Outcome {
	var out Outcome
	for _, h := range hits {
		out.Strikes = append(out.Strikes, StrikeResult{Attacker: attacker, Defender: defender, Hit: h})
	}
	return out
}

func TestExperience(t *testing.T) {
	curve := DefaultExpCurve()

	t.Run("even levels", func(t *testing.T) {
		f := newFixture(t)
		assert.Equal(t, 10, f.res.Experience(curve, f.eirika, f.bandit, strikes("eirika", "bandit", true)))
	})

	t.Run("miss gives the minimum", func(t *testing.T) {
		f := newFixture(t)
		assert.Equal(t, 1, f.res.Experience(curve, f.eirika, f.bandit, strikes("eirika", "bandit", false, false)))
	})

	t.Run("no strikes gives nothing", func(t *testing.T) {
		f := newFixture(t)
		assert.Zero(t, f.res.Experience(curve, f.eirika, f.bandit, strikes("bandit", "eirika", true)))
	})

	t.Run("kill", func(t *testing.T) {
		f := newFixture(t)
		f.bandit.SetHP(0)
		assert.Equal(t, 30, f.res.Experience(curve, f.eirika, f.bandit, strikes("eirika", "bandit", true)))
	})

	t.Run("boss kill is clamped", func(t *testing.T) {
		f := newFixture(t)
		f.bandit.SetHP(0)
		f.bandit.SetTags("Boss")
		assert.Equal(t, 70, f.res.Experience(curve, f.eirika, f.bandit, strikes("eirika", "bandit", true)))

		curve := curve
		curve.BossBonus = 200
		assert.Equal(t, 100, f.res.Experience(curve, f.eirika, f.bandit, strikes("eirika", "bandit", true)))
	})

	t.Run("exp multiplier skill", func(t *testing.T) {
		f := newFixture(t)
		f.skill(f.eirika, "exp_multiplier", 2.0)
		assert.Equal(t, 20, f.res.Experience(curve, f.eirika, f.bandit, strikes("eirika", "bandit", true)))
	})

	t.Run("higher level defender is worth more", func(t *testing.T) {
		f := newFixture(t)
		knight := model.NewUnit("knight", model.TeamEnemy, map[string]int{"HP": 40, "LVL": 10})
		// 10 * e^(0.035 * 9) = 13.7
		assert.Equal(t, 13, f.res.Experience(curve, f.eirika, knight, strikes("eirika", "knight", true)))
	})
}
