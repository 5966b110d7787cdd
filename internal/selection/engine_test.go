package selection

import (
	"reflect"
	"sync"
	"testing"

	"github.com/dshills/multipick/internal/option"
)

var (
	btc  = option.New("Bitcoin", "btc")
	eth  = option.New("Ethereum", "eth")
	usdt = option.New("Tether", "usdt")
	ltc  = option.New("Litecoin", "ltc")
	all  = []option.Option{btc, eth, usdt, ltc}
)

// recorder captures ValuesFunc calls.
type recorder struct {
	mu    sync.Mutex
	calls [][2][]string
}

func (r *recorder) values(selected, remaining []option.Option) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, [2][]string{option.Labels(selected), option.Labels(remaining)})
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *recorder) last() (selected, remaining []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.calls[len(r.calls)-1]
	return c[0], c[1]
}

func labels(opts []option.Option) []string {
	return option.Labels(opts)
}

func TestNewAnnouncesInitialState(t *testing.T) {
	rec := &recorder{}
	New(all, Config{Initial: []option.Option{eth}}, rec.values)

	if rec.count() != 1 {
		t.Fatalf("got %d notifications, want 1", rec.count())
	}
	sel, rem := rec.last()
	if !reflect.DeepEqual(sel, []string{"Ethereum"}) {
		t.Errorf("selected = %v", sel)
	}
	if !reflect.DeepEqual(rem, []string{"Bitcoin", "Tether", "Litecoin"}) {
		t.Errorf("remaining = %v", rem)
	}
}

func TestNewNormalizesInitial(t *testing.T) {
	e := New(all, Config{Initial: []option.Option{btc, btc, eth, usdt}, Limit: 2}, nil)

	if got := labels(e.Selected()); !reflect.DeepEqual(got, []string{"Bitcoin", "Ethereum"}) {
		t.Errorf("Selected = %v", got)
	}
	if !e.Full() {
		t.Error("Full = false with limit reached")
	}
}

func TestFilterByQuery(t *testing.T) {
	e := New([]option.Option{btc, eth}, Config{}, nil)

	e.SetQuery("bt")
	if got := labels(e.Candidates()); !reflect.DeepEqual(got, []string{"Bitcoin"}) {
		t.Errorf("Candidates(bt) = %v, want [Bitcoin]", got)
	}

	e.SetQuery("  ETH ")
	if got := labels(e.Candidates()); !reflect.DeepEqual(got, []string{"Ethereum"}) {
		t.Errorf("Candidates(ETH) = %v, want [Ethereum]", got)
	}
	if e.Query() != "  ETH " {
		t.Errorf("Query = %q, want original text", e.Query())
	}

	e.SetQuery("")
	if got := labels(e.Candidates()); !reflect.DeepEqual(got, []string{"Bitcoin", "Ethereum"}) {
		t.Errorf("Candidates() = %v", got)
	}
}

func TestSetQueryDoesNotNotify(t *testing.T) {
	rec := &recorder{}
	e := New(all, Config{}, rec.values)

	var seen []string
	e.OnQuery(func(text string) { seen = append(seen, text) })
	e.SetQuery("te")

	if rec.count() != 1 {
		t.Errorf("SetQuery notified: %d calls", rec.count())
	}
	if !reflect.DeepEqual(seen, []string{"te"}) {
		t.Errorf("OnQuery saw %v", seen)
	}
}

func TestSelect(t *testing.T) {
	rec := &recorder{}
	e := New(all, Config{Query: "coin"}, rec.values)

	var changed []string
	e.OnChange(func(o option.Option) { changed = append(changed, o.Label) })

	if !e.Select(btc) {
		t.Fatal("Select returned false")
	}
	if e.Query() != "" {
		t.Errorf("Select did not clear query: %q", e.Query())
	}

	sel, rem := rec.last()
	if !reflect.DeepEqual(sel, []string{"Bitcoin"}) {
		t.Errorf("notified selected = %v", sel)
	}
	// View is computed after the query is cleared.
	if !reflect.DeepEqual(rem, []string{"Ethereum", "Tether", "Litecoin"}) {
		t.Errorf("notified remaining = %v", rem)
	}
	if !reflect.DeepEqual(changed, []string{"Bitcoin"}) {
		t.Errorf("OnChange saw %v", changed)
	}
}

func TestSelectIsIdempotent(t *testing.T) {
	rec := &recorder{}
	e := New(all, Config{}, rec.values)

	e.Select(btc)
	e.SetQuery("x")
	if e.Select(option.New("Bitcoin", "other")) {
		t.Error("duplicate label selected")
	}
	if got := labels(e.Selected()); !reflect.DeepEqual(got, []string{"Bitcoin"}) {
		t.Errorf("Selected = %v", got)
	}
	if rec.count() != 2 {
		t.Errorf("duplicate Select notified, %d calls", rec.count())
	}
	if e.Query() != "x" {
		t.Error("no-op Select cleared the query")
	}
}

func TestSelectLimit(t *testing.T) {
	e := New(all, Config{Limit: 2}, nil)

	e.Select(btc)
	e.Select(eth)
	if e.Select(usdt) {
		t.Error("Select past limit succeeded")
	}
	if len(e.Selected()) != 2 {
		t.Fatalf("len(Selected) = %d, want 2", len(e.Selected()))
	}

	e.Remove(btc)
	if !e.Select(usdt) {
		t.Error("Select after Remove failed")
	}
	if got := labels(e.Selected()); !reflect.DeepEqual(got, []string{"Ethereum", "Tether"}) {
		t.Errorf("Selected = %v", got)
	}
	if e.Limit() != 2 {
		t.Errorf("Limit = %d", e.Limit())
	}
}

func TestSelectionInvariantsOverSequences(t *testing.T) {
	pool := []option.Option{btc, eth, btc, usdt, eth, ltc, btc, usdt}
	for limit := 0; limit <= 4; limit++ {
		e := New(all, Config{Limit: limit}, nil)
		for i, o := range pool {
			if i%3 == 2 {
				e.Remove(pool[i-1])
			}
			e.Select(o)

			sel := e.Selected()
			seen := map[string]bool{}
			for _, s := range sel {
				if seen[s.Label] {
					t.Fatalf("limit %d: duplicate %q in %v", limit, s.Label, labels(sel))
				}
				seen[s.Label] = true
			}
			if limit > 0 && len(sel) > limit {
				t.Fatalf("limit %d: selected %d", limit, len(sel))
			}
			for _, c := range e.Candidates() {
				if seen[c.Label] {
					t.Fatalf("limit %d: %q both selected and a candidate", limit, c.Label)
				}
			}
		}
	}
}

func TestRemove(t *testing.T) {
	rec := &recorder{}
	e := New(all, Config{}, rec.values)

	var removed string
	var prior []string
	e.OnRemove(func(target option.Option, before []option.Option) {
		removed = target.Label
		prior = labels(before)
	})

	e.Select(btc)
	e.Select(eth)
	e.SetQuery("e")

	if !e.Remove(option.New("Bitcoin", "")) {
		t.Fatal("Remove returned false")
	}
	if e.Query() != "" {
		t.Errorf("Remove did not clear query")
	}

	sel, rem := rec.last()
	if !reflect.DeepEqual(sel, []string{"Ethereum"}) {
		t.Errorf("selected = %v", sel)
	}
	if !reflect.DeepEqual(rem, []string{"Bitcoin", "Tether", "Litecoin"}) {
		t.Errorf("remaining = %v, want Bitcoin restored in order", rem)
	}
	if removed != "Bitcoin" {
		t.Errorf("OnRemove target = %q", removed)
	}
	if !reflect.DeepEqual(prior, []string{"Bitcoin", "Ethereum"}) {
		t.Errorf("OnRemove prior = %v", prior)
	}
}

func TestRemoveRestoresSubjectToQuery(t *testing.T) {
	e := New(all, Config{}, nil)
	e.Select(btc)
	e.Remove(btc)
	e.SetQuery("eth")

	if got := labels(e.Candidates()); !reflect.DeepEqual(got, []string{"Ethereum"}) {
		t.Errorf("Candidates = %v", got)
	}
}

func TestNewQuietDefersAnnouncement(t *testing.T) {
	rec := &recorder{}
	e := NewQuiet(all, Config{Initial: []option.Option{btc}}, rec.values)
	if rec.count() != 0 {
		t.Fatalf("NewQuiet notified %d times", rec.count())
	}

	e.Announce()
	sel, rem := rec.last()
	if rec.count() != 1 || !reflect.DeepEqual(sel, []string{"Bitcoin"}) {
		t.Errorf("Announce reported %v after %d calls", sel, rec.count())
	}
	if !reflect.DeepEqual(rem, []string{"Ethereum", "Tether", "Litecoin"}) {
		t.Errorf("Announce remaining = %v", rem)
	}
}

func TestRemoveUnselectedStillClearsAndNotifies(t *testing.T) {
	rec := &recorder{}
	e := New(all, Config{}, rec.values)
	e.Select(usdt)

	var targets []string
	var priors [][]string
	e.OnRemove(func(target option.Option, prior []option.Option) {
		targets = append(targets, target.Label)
		priors = append(priors, labels(prior))
	})
	e.SetQuery("bt")
	before := rec.count()

	if e.Remove(eth) {
		t.Error("Remove of unselected option returned true")
	}
	if e.Query() != "" {
		t.Errorf("query = %q after Remove, want cleared", e.Query())
	}
	if rec.count() != before+1 {
		t.Errorf("values calls = %d, want %d", rec.count(), before+1)
	}
	sel, rem := rec.last()
	if !reflect.DeepEqual(sel, []string{usdt.Label}) {
		t.Errorf("reported selected = %v, want [%s]", sel, usdt.Label)
	}
	if len(rem) != len(all)-1 {
		t.Errorf("reported remaining = %v, want unfiltered view minus selection", rem)
	}
	if !reflect.DeepEqual(targets, []string{eth.Label}) {
		t.Errorf("OnRemove targets = %v, want [%s]", targets, eth.Label)
	}
	if !reflect.DeepEqual(priors, [][]string{{usdt.Label}}) {
		t.Errorf("OnRemove priors = %v", priors)
	}
	if got := labels(e.Selected()); !reflect.DeepEqual(got, []string{usdt.Label}) {
		t.Errorf("Selected = %v, want unchanged", got)
	}
}

func TestResetReportsEmptySelection(t *testing.T) {
	rec := &recorder{}
	e := New(all, Config{Initial: []option.Option{usdt}}, rec.values)

	e.Select(btc)
	e.Select(eth)
	e.SetQuery("lit")
	e.Handle().CleanValues()

	sel, rem := rec.last()
	if len(sel) != 0 {
		t.Errorf("reset reported selected = %v, want []", sel)
	}
	if !reflect.DeepEqual(rem, labels(all)) {
		t.Errorf("reset reported remaining = %v, want full list", rem)
	}
	if got := labels(e.Selected()); !reflect.DeepEqual(got, []string{"Tether"}) {
		t.Errorf("internal selection after reset = %v, want initial [Tether]", got)
	}
	if got := labels(e.Initial()); !reflect.DeepEqual(got, []string{"Tether"}) {
		t.Errorf("Initial = %v", got)
	}
}

func TestResetWithEmptyOptions(t *testing.T) {
	var gotRemaining []option.Option
	e := New(nil, Config{}, func(_, remaining []option.Option) { gotRemaining = remaining })
	e.Reset()
	if gotRemaining == nil {
		t.Error("reset reported nil remaining")
	}
}

func TestSetOptions(t *testing.T) {
	rec := &recorder{}
	e := New(nil, Config{Initial: []option.Option{option.New("Bitcoin", "")}}, rec.values)

	if len(e.Candidates()) != 0 {
		t.Fatal("candidates before options arrive")
	}

	e.SetOptions(all)
	if rec.count() != 1 {
		t.Error("SetOptions notified")
	}
	if got := labels(e.Candidates()); !reflect.DeepEqual(got, []string{"Ethereum", "Tether", "Litecoin"}) {
		t.Errorf("Candidates = %v", got)
	}
	if len(e.Options()) != len(all) {
		t.Errorf("Options = %d", len(e.Options()))
	}
}

func TestCallbacksMayReenter(t *testing.T) {
	var e *Engine
	var views [][]string
	e = New(all, Config{}, func(_, remaining []option.Option) {
		if e != nil {
			views = append(views, labels(e.Candidates()))
		}
	})
	e.OnChange(func(option.Option) { _ = e.Selected() })

	e.Select(btc)
	if len(views) != 1 {
		t.Fatalf("views = %v", views)
	}
}

func TestInputAttrsCopied(t *testing.T) {
	attrs := map[string]string{"placeholder": "Enter Coin"}
	e := New(all, Config{InputAttrs: attrs}, nil)

	attrs["placeholder"] = "changed"
	got := e.InputAttrs()
	if got["placeholder"] != "Enter Coin" {
		t.Errorf("placeholder = %q", got["placeholder"])
	}
	got["placeholder"] = "mutated"
	if e.InputAttrs()["placeholder"] != "Enter Coin" {
		t.Error("InputAttrs exposed internal map")
	}
}

func TestConcurrentUse(t *testing.T) {
	e := New(all, Config{Limit: 3}, func(_, _ []option.Option) {})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			o := all[i%len(all)]
			for j := 0; j < 100; j++ {
				e.Select(o)
				e.SetQuery(o.Value)
				_ = e.Candidates()
				e.Remove(o)
			}
		}(i)
	}
	wg.Wait()

	if n := len(e.Selected()); n > 3 {
		t.Errorf("selected %d past limit", n)
	}
}
