package ecs

import (
	"testing"

	"github.com/milk9111/stealth/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
				if len(Entities(w)) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
				}
			}
		})
	}
}

func TestRecycledSlotIsNotStale(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, k, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse")
	}
	if fresh == old {
		t.Fatalf("expected a new generation")
	}
	if Has(w, fresh, k) {
		t.Fatalf("recycled entity must not inherit components")
	}
	if err := Add(w, old, k, intPtr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, h1.Kind()) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, h2.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, h2.Kind()) || !Has(w, e2, h2.Kind()) {
					t.Fatalf("expected both entities to have string component")
				}
			},
			teardown: func() bool { return Remove(w, e1, h2.Kind()) },
		},
		{
			name:  "pointer_mutation_is_shared",
			setup: func() error { return Add(w, e2, h1.Kind(), intPtr(1)) },
			check: func(t *testing.T) {
				v, _ := Get(w, e2, h1.Kind())
				*v = 5
				again, _ := Get(w, e2, h1.Kind())
				if *again != 5 {
					t.Fatalf("expected shared pointer, got %d", *again)
				}
			},
			teardown: func() bool { return Remove(w, e2, h1.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}

	if err := Add[int](w, e1, h1.Kind(), nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
}

func TestQueryAndFirst(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	_ = Add(w, e1, ka, intPtr(1))
	_ = Add(w, e2, ka, intPtr(2))
	_ = Add(w, e2, kb, stringPtr("x"))
	_ = Add(w, e3, kb, stringPtr("y"))

	res := w.Query(ka, kb)
	if len(res) != 1 || res[0] != e2 {
		t.Fatalf("expected only e2, got %v", res)
	}

	DestroyEntity(w, e2)
	if res := w.Query(ka, kb); len(res) != 0 {
		t.Fatalf("expected empty after destroy, got %v", res)
	}

	first, ok := w.First(kb)
	if !ok || first != e3 {
		t.Fatalf("expected e3 as first string holder, got %v ok=%v", first, ok)
	}
	if _, ok := w.First(component.NewComponentKind[float64]()); ok {
		t.Fatalf("expected no entity for an unused kind")
	}
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	_ = Add(w, e1, h.Kind(), intPtr(1))
	_ = Add(w, e3, h.Kind(), intPtr(3))

	seen := map[Entity]int{}
	ForEach(w, h.Kind(), func(e Entity, v *int) { seen[e] = *v })

	if seen[e1] != 1 || seen[e3] != 3 {
		t.Fatalf("unexpected ForEach result %v", seen)
	}
	if _, ok := seen[e2]; ok {
		t.Fatalf("did not expect e2 in ForEach result")
	}
}

func TestForEach3(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				_ = Add(w, e1, ka, intPtr(1))
				_ = Add(w, e2, ka, intPtr(2))
				_ = Add(w, e2, kb, intPtr(3))
				_ = Add(w, e2, kc, intPtr(5))

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "missing_store_returns_nil",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()
				_ = Add(w, e, ka, intPtr(1))

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestEventQueueTake(t *testing.T) {
	w := NewWorld()
	q := w.Events()
	q.Push(Event{Type: EventTriggerEnter, Data: TriggerEvent{Entity: 1, Trigger: 2}})
	q.Push(Event{Type: "other"})
	q.Push(Event{Type: EventTriggerEnter})

	got := q.Take(EventTriggerEnter)
	if len(got) != 2 {
		t.Fatalf("expected 2 trigger events, got %d", len(got))
	}
	if q.Len() != 1 {
		t.Fatalf("expected 1 remaining event, got %d", q.Len())
	}

	NewScheduler().Update(w)
	if q.Len() != 0 {
		t.Fatalf("expected queue flushed at end of frame")
	}
}
