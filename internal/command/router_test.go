package command

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"trpgdice/internal/check"
	"trpgdice/internal/dice"
	"trpgdice/internal/session"
	"trpgdice/internal/sheet"
)

// faces is a dice.Source that returns pre-set face values in order.
type faces struct {
	t      *testing.T
	values []int
}

func (f *faces) Intn(n int) int {
	if len(f.values) == 0 {
		f.t.Fatal("faces exhausted")
	}
	v := f.values[0]
	f.values = f.values[1:]
	if v < 1 || v > n {
		f.t.Fatalf("face %d out of range for d%d", v, n)
	}
	return v - 1
}

func (f *faces) push(values ...int) {
	f.values = append(f.values, values...)
}

type harness struct {
	router *Router
	faces  *faces
	store  *session.MemoryStore[sheet.Character]
}

func newHarness(t *testing.T, tag language.Tag) *harness {
	t.Helper()
	src := &faces{t: t}
	engine := dice.New(dice.DefaultConfig(), dice.WithSource(src))
	reg, err := sheet.NewRegistry(engine)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	store := session.NewMemoryStore[sheet.Character]()
	r, err := New(Deps{
		Engine:    engine,
		Judge:     check.New(engine),
		Templates: reg,
		Store:     store,
		Language:  tag,
		Now:       func() time.Time { return time.Date(2026, 10, 18, 21, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &harness{router: r, faces: src, store: store}
}

func (h *harness) run(t *testing.T, line string, values ...int) string {
	t.Helper()
	h.faces.push(values...)
	reply, err := h.router.Handle(context.Background(), "alice", line)
	if err != nil {
		t.Fatalf("Handle(%q): %v", line, err)
	}
	return reply
}

func (h *harness) fail(t *testing.T, line string, values ...int) error {
	t.Helper()
	h.faces.push(values...)
	_, err := h.router.Handle(context.Background(), "alice", line)
	if err == nil {
		t.Fatalf("Handle(%q): expected an error", line)
	}
	return err
}

func sixes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = 6
	}
	return out
}

func TestHandle_Rolls(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		values []int
		want   string
	}{
		{"basic", "r 2d6+1", []int{3, 4}, "alice rolled 2d6+1 = [3, 4]+1 = 8"},
		{"prefix and default die", ".r", []int{12}, "alice rolled d20 = [12] = 12"},
		{"critical success", "r d20", []int{20}, "alice rolled d20 = [20] = 20 Critical success!"},
		{"critical failure", "/r d20", []int{1}, "alice rolled d20 = [1] = 1 Critical failure!"},
		{"hidden", "rh 3d6", []int{1, 2, 3}, "alice rolled in secret. Result: 6"},
		{"advantage", "adv", []int{5, 17}, "alice rolled with advantage: d20 = [17] = 17"},
		{"disadvantage", "DIS 1d20+2", []int{5, 17}, "alice rolled with disadvantage: 1d20+2 = [5]+2 = 7"},
		{"modifier only", "r 5+3", nil, "alice rolled 5+3 = [0]+8 = 8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, language.English)
			if got := h.run(t, tt.line, tt.values...); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandle_BlankLine(t *testing.T) {
	h := newHarness(t, language.English)
	if got := h.run(t, "   "); got != "" {
		t.Errorf("expected no reply, got %q", got)
	}
	if got := h.run(t, "。"); got != "" {
		t.Errorf("expected no reply for a bare prefix, got %q", got)
	}
}

func TestHandle_SkillCheckWithoutCharacter(t *testing.T) {
	h := newHarness(t, language.English)

	if got, want := h.run(t, "ra Spot Hidden", 20), "alice checks Spot Hidden (50): rolled 20, Hard success"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := h.run(t, "ra 侦查 60", 5), "alice checks Spot Hidden (60): rolled 5, Extreme success"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := h.run(t, "ra 40", 100), "alice checks 40 (40): rolled 100, Fumble"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	err := h.fail(t, "ra")
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
	if got := h.router.Describe(err); !strings.HasPrefix(got, "Usage: ra") {
		t.Errorf("Describe = %q", got)
	}
}

func TestHandle_CharacterLifecycle(t *testing.T) {
	h := newHarness(t, language.English)

	if got := h.run(t, "st"); !strings.HasPrefix(got, "No active character") {
		t.Errorf("st without character = %q", got)
	}
	if got, want := h.run(t, "st new <Harvey>"), "Created Harvey"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := h.run(t, "me looks around"), "Harvey looks around"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := h.run(t, "st temp DnD5e"), "Switched Harvey to the dnd5e template"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := h.run(t, "st init", sixes(24)...), "Generated Harvey from dnd5e"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got := h.run(t, "sheet")
	if !strings.HasPrefix(got, "Character: Harvey\nSystem: DnD5e (dnd5e)\nAttributes: STR:18 DEX:18") {
		t.Errorf("unexpected sheet:\n%s", got)
	}
	if !strings.Contains(got, "Stealth:4") {
		t.Errorf("expected Stealth:4 in sheet:\n%s", got)
	}

	if got, want := h.run(t, "ra 隐匿", 12), "Harvey checks Stealth: 1d20+4 = [12]+4 = 16"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	ch, ok, err := h.router.Active(context.Background(), "alice")
	if err != nil || !ok {
		t.Fatalf("Active = %v, %v", ok, err)
	}
	if ch.ID == "" || ch.Template != "dnd5e" {
		t.Errorf("unexpected active character %+v", ch)
	}

	if got, want := h.run(t, "st del"), "Deleted Harvey"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if _, ok, _ := h.store.Get(context.Background(), "alice"); ok {
		t.Error("expected the character to be gone after st del")
	}
	if got := h.run(t, "st del"); !strings.HasPrefix(got, "No active character") {
		t.Errorf("st del without character = %q", got)
	}
}

func TestHandle_GenerateInOneStep(t *testing.T) {
	h := newHarness(t, language.English)

	if got, want := h.run(t, "st coc7 Mira", sixes(24)...), "Generated Mira from coc7"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := h.run(t, "ra 理智", 91), "Mira checks SAN (90): rolled 91, Failure"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := h.run(t, "st coc7", sixes(24)...), "Generated Mira from coc7"; got != want {
		t.Errorf("regenerating should keep the name: got %q, want %q", got, want)
	}

	err := h.fail(t, "st temp gurps")
	if got, want := h.router.Describe(err), "Error: unknown template gurps (available: coc7, dnd5e)"; got != want {
		t.Errorf("Describe = %q, want %q", got, want)
	}
	if err := h.fail(t, "st gurps"); !errors.Is(err, ErrUsage) {
		t.Errorf("expected usage error, got %v", err)
	}
	if err := h.fail(t, "st new {}"); !errors.Is(err, ErrUsage) {
		t.Errorf("expected usage error for an empty name, got %v", err)
	}
}

func TestHandle_Pool(t *testing.T) {
	h := newHarness(t, language.English)

	if got, want := h.run(t, "rp 4 7 s", 10, 7, 3, 1), "alice rolls 4 dice at difficulty 7: [10, 7, 3, 1], 3 successes"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := h.run(t, "rp 2", 1, 3), "alice rolls 2 dice at difficulty 6: [1, 3], botch!"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := h.run(t, "rp -3"), "alice rolls 0 dice at difficulty 6: [], botch!"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := h.run(t, "rp 2 1", 1, 4), "alice rolls 2 dice at difficulty 1: [1, 4], 2 successes"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	tests := []struct {
		line string
		want string
	}{
		{"rp 3 11", "Error: difficulty must be between 1 and 10"},
		{"rp 500", "Error: 500 dice is more than the limit of 100"},
		{"rp many", "Usage: rp <pool> [difficulty] [s]"},
		{"rp", "Usage: rp <pool> [difficulty] [s]"},
		{"rp 3 6 7", "Usage: rp <pool> [difficulty] [s]"},
	}
	for _, tt := range tests {
		err := h.fail(t, tt.line)
		if got := h.router.Describe(err); got != tt.want {
			t.Errorf("%s: Describe = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestHandle_DailyLuck(t *testing.T) {
	h := newHarness(t, language.English)
	if got, want := h.run(t, "jrrp"), "alice's luck today: 94 (blessed)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHandle_Errors(t *testing.T) {
	h := newHarness(t, language.English)

	tests := []struct {
		line string
		is   error
		want string
	}{
		{"fly away", ErrUnknownCommand, "Error: unknown command fly, try help"},
		{"r 3q6", dice.ErrUnparseableExpression, `Error: cannot read dice expression "3q6"`},
		{"r 2d6k3", dice.ErrInvalidKeepCount, "Error: cannot keep 3 of 2 dice"},
		{"r 200d6", dice.ErrDiceCountExceeded, "Error: 200 dice is more than the limit of 100"},
		{"r 1d5000", dice.ErrDiceSidesExceeded, "Error: a d5000 is larger than the limit of d1000"},
		{"r d6x9223372036854775807", dice.ErrValueOutOfRange, `Error: numbers in "d6x9223372036854775807" are too large`},
		{"me", ErrUsage, "Describe the action, e.g. me searches the room"},
	}
	for _, tt := range tests {
		err := h.fail(t, tt.line)
		if !errors.Is(err, tt.is) {
			t.Errorf("%s: expected %v, got %v", tt.line, tt.is, err)
		}
		if got := h.router.Describe(err); got != tt.want {
			t.Errorf("%s: Describe = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestHandle_Help(t *testing.T) {
	h := newHarness(t, language.English)
	got := h.run(t, "help")
	for _, cmd := range []string{"r [expr]", "ra <skill>", "rp <n>", "jrrp"} {
		if !strings.Contains(got, cmd) {
			t.Errorf("help is missing %q", cmd)
		}
	}
}

func TestHandle_Chinese(t *testing.T) {
	h := newHarness(t, language.Chinese)

	if got, want := h.run(t, "r 1d6", 4), "alice 掷骰: 1d6 = [4] = 4"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := h.run(t, "st dnd5e 米拉", sixes(24)...), "已按 dnd5e 模板生成角色: 米拉"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := h.run(t, "jrrp"), "米拉 的今日人品值: 94 (超级欧皇)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	err := h.fail(t, "r 2d6k3")
	if got, want := h.router.Describe(err), "错误: 无法从 2 颗骰子中保留 3 颗"; got != want {
		t.Errorf("Describe = %q, want %q", got, want)
	}
}

func TestNew_RequiresDeps(t *testing.T) {
	if _, err := New(Deps{}); err == nil {
		t.Error("expected an error for missing dependencies")
	}
}
