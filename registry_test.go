package hxup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func nop(*html.Node, Data) ([]Destructor, error) { return nil, nil }

func selectors(rules []*Rule) []string {
	var out []string
	for _, r := range rules {
		out = append(out, r.Selector)
	}
	return out
}

func TestRegistryPriorityOrder(t *testing.T) {
	reg := NewRegistry()
	reg.BootComplete()

	reg.Compiler(".a", nop)
	reg.Compiler(".b", nop, Priority(10))
	reg.Compiler(".c", nop, Priority(-5))
	reg.Compiler(".d", nop, Priority(10))
	reg.Compiler(".e", nop)

	want := []string{".b", ".d", ".a", ".e", ".c"}
	if diff := cmp.Diff(want, selectors(reg.Snapshot())); diff != "" {
		t.Errorf("Snapshot() order mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistrySnapshotMacrosFirst(t *testing.T) {
	reg := NewRegistry()
	reg.BootComplete()

	reg.Compiler(".high", nop, Priority(1000))
	reg.Macro(".low-macro", nop, Priority(-1000))
	reg.Macro(".macro", nop)

	want := []string{".macro", ".low-macro", ".high"}
	assert.Equal(t, want, selectors(reg.Snapshot()))
}

func TestRegistrySnapshotIsCopy(t *testing.T) {
	reg := NewRegistry()
	reg.Compiler(".a", nop)

	snap := reg.Snapshot()
	reg.Compiler(".b", nop)

	assert.Len(t, snap, 1)
	assert.Len(t, reg.Snapshot(), 2)
}

func TestRegistryBootDefaults(t *testing.T) {
	reg := NewRegistry()
	assert.True(t, reg.Booting())

	boot := reg.Compiler(".boot", nop)
	reg.BootComplete()
	late := reg.Compiler(".late", nop)

	assert.True(t, boot.IsDefault)
	assert.False(t, late.IsDefault)
	assert.False(t, reg.Booting())
}

func TestRegistryReset(t *testing.T) {
	reg := NewRegistry()
	reg.Macro("[up-dash]", nop)
	reg.Compiler(".boot", nop)
	reg.BootComplete()

	reg.Macro(".late-macro", nop)
	reg.Compiler(".late", nop, Priority(50))
	require.Equal(t, 4, reg.Len())

	reg.Reset()

	assert.Equal(t, []string{"[up-dash]", ".boot"}, selectors(reg.Snapshot()))

	// Reset is idempotent.
	reg.Reset()
	assert.Equal(t, 2, reg.Len())
}

func TestRegistrySystemMacroPriority(t *testing.T) {
	tests := []struct {
		selector string
		want     int
	}{
		{"[up-back]", -100},
		{"a[up-dash]", -200},
		{"[up-modal]", -200},
		{"[up-expand]", -300},
		{"a[data-method]", -400},
		{"[data-confirm]", -400},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			reg := NewRegistry()
			rule, err := reg.Register(KindMacro, tt.selector, nop)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rule.Priority)
		})
	}
}

func TestRegistryUnknownSystemMacroFails(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Register(KindMacro, "[x-unknown]", nop)
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
	assert.Equal(t, 0, reg.Len())

	assert.Panics(t, func() { reg.Macro("[x-unknown]", nop) })
}

func TestRegistryExplicitPriorityDuringBoot(t *testing.T) {
	reg := NewRegistry()

	rule, err := reg.Register(KindMacro, "[x-unknown]", nop, Priority(0))
	require.NoError(t, err)
	assert.Equal(t, 0, rule.Priority)
}

func TestRegistryMacroAfterBootNeedsNoTable(t *testing.T) {
	reg := NewRegistry()
	reg.BootComplete()

	rule, err := reg.Register(KindMacro, "[x-unknown]", nop)
	require.NoError(t, err)
	assert.Equal(t, 0, rule.Priority)
}

func TestRegistryInvalidRegistration(t *testing.T) {
	reg := NewRegistry()
	reg.BootComplete()

	tests := []struct {
		name     string
		selector string
		fn       CompileFunc
	}{
		{"empty selector", "  ", nop},
		{"invalid selector", "[[", nop},
		{"nil callback", ".ok", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Register(KindCompiler, tt.selector, tt.fn)
			assert.True(t, IsConfigurationError(err), "err = %v", err)
		})
	}
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryRuleFlags(t *testing.T) {
	reg := NewRegistry()
	reg.BootComplete()

	keep := reg.Compiler(".keep", nop, Keep())
	batch := reg.BatchCompiler(".batch", func([]*html.Node, Data) ([]Destructor, error) { return nil, nil })

	assert.True(t, keep.Keep)
	assert.False(t, keep.Batch)
	assert.True(t, batch.Batch)
	assert.Equal(t, KindCompiler, batch.Kind)
	assert.Equal(t, "compiler", KindCompiler.String())
	assert.Equal(t, "macro", KindMacro.String())
}
