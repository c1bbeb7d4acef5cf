package hxup

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pthm/hxup/lib/dom"
)

// systemMacroPriorities orders the built-in macros. A macro registered during
// boot without an explicit priority takes the priority of the first entry
// whose key appears in its selector.
var systemMacroPriorities = []struct {
	key      string
	priority int
}{
	{"[up-back]", -100}, // sets [up-href] to the previous URL
	{"[up-content]", -200},
	{"[up-drawer]", -200},
	{"[up-modal]", -200},
	{"[up-cover]", -200},
	{"[up-popup]", -200},
	{"[up-tooltip]", -200},
	{"[up-dash]", -200},
	{"[up-expand]", -300},
	{"[data-method]", -400},
	{"[data-confirm]", -400},
}

// systemMacroPriority looks up selector in the system macro table.
func systemMacroPriority(selector string) (int, bool) {
	for _, entry := range systemMacroPriorities {
		if strings.Contains(selector, entry.key) {
			return entry.priority, true
		}
	}
	return 0, false
}

// Registry stores compilers and macros in priority order.
//
// A new Registry is in its boot phase: every rule registered before
// BootComplete is flagged IsDefault and survives Reset.
//
// Registration is safe from inside a rule callback. A compile pass works on
// a snapshot taken when it starts, so rules added during a pass only apply to
// later passes.
type Registry struct {
	mu        sync.RWMutex
	macros    []*Rule
	compilers []*Rule
	booting   bool
}

// NewRegistry creates an empty registry in its boot phase.
func NewRegistry() *Registry {
	return &Registry{booting: true}
}

// BootComplete ends the boot phase. Rules registered afterwards are removed
// by Reset.
func (reg *Registry) BootComplete() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.booting = false
}

// Booting reports whether the registry is still in its boot phase.
func (reg *Registry) Booting() bool {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.booting
}

// Register adds a rule that runs fn once per matching element.
//
// Returns an error wrapping ErrConfiguration if the selector is invalid, or
// if a macro is registered during boot with neither an explicit Priority nor
// an entry in the system macro table.
func (reg *Registry) Register(kind Kind, selector string, fn CompileFunc, opts ...RuleOption) (*Rule, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: %s %q has no callback", ErrConfiguration, kind, selector)
	}
	return reg.register(kind, selector, false, eachFunc(fn), opts)
}

// RegisterBatch adds a rule that runs fn once per compile pass with every
// matching element.
func (reg *Registry) RegisterBatch(kind Kind, selector string, fn BatchFunc, opts ...RuleOption) (*Rule, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: %s %q has no callback", ErrConfiguration, kind, selector)
	}
	return reg.register(kind, selector, true, fn, opts)
}

// Compiler registers a compiler and panics on misconfiguration.
func (reg *Registry) Compiler(selector string, fn CompileFunc, opts ...RuleOption) *Rule {
	return mustRule(reg.Register(KindCompiler, selector, fn, opts...))
}

// BatchCompiler registers a batch compiler and panics on misconfiguration.
func (reg *Registry) BatchCompiler(selector string, fn BatchFunc, opts ...RuleOption) *Rule {
	return mustRule(reg.RegisterBatch(KindCompiler, selector, fn, opts...))
}

// Macro registers a macro and panics on misconfiguration.
func (reg *Registry) Macro(selector string, fn CompileFunc, opts ...RuleOption) *Rule {
	return mustRule(reg.Register(KindMacro, selector, fn, opts...))
}

func mustRule(rule *Rule, err error) *Rule {
	if err != nil {
		panic(err)
	}
	return rule
}

func (reg *Registry) register(kind Kind, selector string, batch bool, fn BatchFunc, opts []RuleOption) (*Rule, error) {
	o := &ruleOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if strings.TrimSpace(selector) == "" {
		return nil, fmt.Errorf("%w: %s with empty selector", ErrConfiguration, kind)
	}
	if _, err := dom.Compile(selector); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	rule := &Rule{
		Selector:  selector,
		Kind:      kind,
		Priority:  o.priority,
		IsDefault: reg.booting,
		Batch:     batch,
		Keep:      o.keep,
		fn:        fn,
	}

	if kind == KindMacro && reg.booting && !o.hasPriority {
		p, ok := systemMacroPriority(selector)
		if !ok {
			return nil, fmt.Errorf("%w: unregistered priority for system macro %q", ErrConfiguration, selector)
		}
		rule.Priority = p
	}

	reg.insert(rule)
	return rule, nil
}

// insert places rule before the first rule with a strictly lower priority,
// keeping registration order among equal priorities. Caller holds mu.
func (reg *Registry) insert(rule *Rule) {
	list := &reg.compilers
	if rule.Kind == KindMacro {
		list = &reg.macros
	}

	i := len(*list)
	for j, existing := range *list {
		if existing.Priority < rule.Priority {
			i = j
			break
		}
	}

	*list = append(*list, nil)
	copy((*list)[i+1:], (*list)[i:])
	(*list)[i] = rule
}

// Snapshot returns every rule in application order: all macros, then all
// compilers, each by priority. The returned slice is a copy.
func (reg *Registry) Snapshot() []*Rule {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	rules := make([]*Rule, 0, len(reg.macros)+len(reg.compilers))
	rules = append(rules, reg.macros...)
	rules = append(rules, reg.compilers...)
	return rules
}

// Len returns the number of registered rules.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.macros) + len(reg.compilers)
}

// Reset drops every rule registered after the boot phase.
func (reg *Registry) Reset() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.macros = keepDefaults(reg.macros)
	reg.compilers = keepDefaults(reg.compilers)
}

func keepDefaults(rules []*Rule) []*Rule {
	kept := rules[:0:0]
	for _, r := range rules {
		if r.IsDefault {
			kept = append(kept, r)
		}
	}
	return kept
}
