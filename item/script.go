package item

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"
)

// ScriptValuer runs a tengo script to value loot. The script reads the
// global `amount` and assigns `items`, an array of {name, value} maps.
// Any script failure, including running past Timeout, falls back to the
// wrapped valuer.
type ScriptValuer struct {
	compiled *tengo.Compiled
	fallback Valuer
	log      *zap.Logger
	// Timeout bounds a single valuation.
	Timeout time.Duration
}

const (
	defaultScriptTimeout = 20 * time.Millisecond
	scriptMaxAllocs      = 10000
)

func NewScriptValuer(src []byte, fallback Valuer, log *zap.Logger) (*ScriptValuer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if fallback == nil {
		fallback = DefaultDenominations()
	}

	script := tengo.NewScript(src)
	if err := script.Add("amount", 0.0); err != nil {
		return nil, fmt.Errorf("item: script add amount: %w", err)
	}
	if err := script.Add("items", []interface{}{}); err != nil {
		return nil, fmt.Errorf("item: script add items: %w", err)
	}
	script.SetImports(stdlib.GetModuleMap("math"))
	script.SetMaxAllocs(scriptMaxAllocs)

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("item: compile valuer script: %w", err)
	}
	return &ScriptValuer{compiled: compiled, fallback: fallback, log: log, Timeout: defaultScriptTimeout}, nil
}

func (v *ScriptValuer) MoneyToItems(amount float64) []Item {
	if v == nil || v.compiled == nil {
		return nil
	}
	run := v.compiled.Clone()
	if err := run.Set("amount", amount); err != nil {
		v.log.Warn("valuer script: set amount", zap.Error(err))
		return v.fallback.MoneyToItems(amount)
	}
	timeout := v.Timeout
	if timeout <= 0 {
		timeout = defaultScriptTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := run.RunContext(ctx); err != nil {
		v.log.Warn("valuer script: run", zap.Float64("amount", amount), zap.Error(err))
		return v.fallback.MoneyToItems(amount)
	}

	raw := run.Get("items").Array()
	out := make([]Item, 0, len(raw))
	for i, r := range raw {
		it, err := decodeScriptItem(r)
		if err != nil {
			v.log.Warn("valuer script: bad item", zap.Int("index", i), zap.Error(err))
			return v.fallback.MoneyToItems(amount)
		}
		out = append(out, it)
	}
	return out
}

func decodeScriptItem(raw interface{}) (Item, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return Item{}, fmt.Errorf("item is %T, want map", raw)
	}
	name, _ := m["name"].(string)
	if name == "" {
		return Item{}, fmt.Errorf("item has no name")
	}
	var value float64
	switch n := m["value"].(type) {
	case float64:
		value = n
	case int64:
		value = float64(n)
	case int:
		value = float64(n)
	default:
		return Item{}, fmt.Errorf("item %q value is %T", name, m["value"])
	}
	return Item{Name: name, Value: value}, nil
}
