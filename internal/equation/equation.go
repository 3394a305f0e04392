// Package equation evaluates named combat equations and expression-valued
// components. Expressions are Lua; unit stats are exposed as globals.
package equation

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/Shopify/go-lua"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/tactica/internal/component"
	"github.com/udisondev/tactica/internal/model"
)

// ErrUnknownEquation is returned for names missing from the set.
var ErrUnknownEquation = errors.New("unknown equation")

// maxDepth bounds equations calling equations.
const maxDepth = 16

// Set is a collection of named equations.
type Set struct {
	exprs map[string]string
}

// Defaults are the stock combat equations. Lua 5.2 has no integer division,
// so halving goes through math.floor.
func Defaults() map[string]string {
	return map[string]string{
		"DAMAGE":        "STR",
		"MAGIC_DAMAGE":  "MAG",
		"DEFENSE":       "DEF",
		"MAGIC_DEFENSE": "RES",
		"HIT":           "SKL * 2 + math.floor(LCK / 2)",
		"AVOID":         "ATTACK_SPEED() * 2 + LCK",
		"CRIT_HIT":      "math.floor(SKL / 2)",
		"CRIT_AVOID":    "LCK",
		"ATTACK_SPEED":  "SPD",
		"HEAL":          "MAG",
		"RATING":        "(HP + STR + MAG + SKL + SPD + LCK + DEF + RES) / 8",
	}
}

// New creates a set from name -> expression pairs.
func New(exprs map[string]string) *Set {
	s := &Set{exprs: make(map[string]string, len(exprs))}
	for name, expr := range exprs {
		s.exprs[name] = expr
	}
	return s
}

// Default returns a set with the stock equations.
func Default() *Set { return New(Defaults()) }

// Load reads equations from a YAML map and layers them over the defaults.
// A missing file yields the defaults.
func Load(path string) (*Set, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading equations %s: %w", path, err)
	}

	var exprs map[string]string
	if err := yaml.Unmarshal(data, &exprs); err != nil {
		return s, fmt.Errorf("parsing equations %s: %w", path, err)
	}
	for name, expr := range exprs {
		s.exprs[strings.ToUpper(name)] = expr
	}
	return s, nil
}

// Names returns the equation names, sorted.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.exprs))
	for name := range s.exprs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Expr returns the expression behind name.
func (s *Set) Expr(name string) (string, bool) {
	expr, ok := s.exprs[name]
	return expr, ok
}

// Value evaluates the equation name for u.
func (s *Set) Value(name string, u component.Unit) (float64, error) {
	expr, ok := s.exprs[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownEquation, name)
	}
	return s.Eval(expr, u)
}

// Get evaluates the equation name for u and floors it. Failures are logged
// and yield 0.
func (s *Set) Get(name string, u component.Unit) int {
	v, err := s.Value(name, u)
	if err != nil {
		slog.Warn("equation failed", "equation", name, "err", err)
		return 0
	}
	return int(math.Floor(v))
}

// Eval evaluates a numeric expression for u.
func (s *Set) Eval(expr string, u component.Unit) (float64, error) {
	l := s.state(u)
	if err := run(l, expr); err != nil {
		return 0, err
	}
	v, ok := l.ToNumber(-1)
	if !ok {
		return 0, fmt.Errorf("expression %q is not a number", expr)
	}
	return v, nil
}

// EvalBool evaluates a condition expression for u with Lua truthiness.
func (s *Set) EvalBool(expr string, u component.Unit) (bool, error) {
	l := s.state(u)
	if err := run(l, expr); err != nil {
		return false, err
	}
	return l.ToBoolean(-1), nil
}

func run(l *lua.State, expr string) error {
	if err := lua.LoadString(l, "return "+expr); err != nil {
		return fmt.Errorf("compiling %q: %w", expr, err)
	}
	if err := l.ProtectedCall(0, 1, 0); err != nil {
		return fmt.Errorf("evaluating %q: %w", expr, err)
	}
	return nil
}

// state builds a fresh interpreter with u bound and every equation callable
// as a global function.
func (s *Set) state(u component.Unit) *lua.State {
	l := lua.NewState()
	lua.OpenLibraries(l)
	bindUnit(l, u)

	depth := 0
	for name, expr := range s.exprs {
		l.Register(name, func(l *lua.State) int {
			if depth >= maxDepth {
				lua.Errorf(l, "equation %s: recursion too deep", name)
			}
			depth++
			defer func() { depth-- }()

			if err := lua.LoadString(l, "return "+expr); err != nil {
				lua.Errorf(l, "equation %s: %s", name, err.Error())
			}
			l.Call(0, 1)
			return 1
		})
	}
	return l
}

func bindUnit(l *lua.State, u component.Unit) {
	if u == nil {
		for _, stat := range model.StatNames {
			l.PushInteger(0)
			l.SetGlobal(stat)
		}
		l.PushInteger(0)
		l.SetGlobal("MAXHP")
		return
	}

	for _, stat := range model.StatNames {
		l.PushInteger(u.Stat(stat))
		l.SetGlobal(stat)
	}
	// HP is the current value; MAXHP the stat.
	l.PushInteger(u.HP())
	l.SetGlobal("HP")
	l.PushInteger(u.MaxHP())
	l.SetGlobal("MAXHP")

	l.NewTable()
	l.PushString(u.NID())
	l.SetField(-2, "nid")
	l.PushString(u.Team())
	l.SetField(-2, "team")
	l.PushInteger(u.HP())
	l.SetField(-2, "hp")
	l.PushInteger(u.MaxHP())
	l.SetField(-2, "max_hp")
	l.SetGlobal("unit")

	tags := u.Tags()
	l.Register("has_tag", func(l *lua.State) int {
		tag := lua.CheckString(l, 1)
		l.PushBoolean(slices.Contains(tags, tag))
		return 1
	})
}

var _ component.Evaluator = (*Set)(nil)
