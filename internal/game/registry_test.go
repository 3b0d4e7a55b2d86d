package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestRegistryCreatesFiveSlots(t *testing.T) {
	r := NewRegistry(BaseDeck, DefaultHandSize, DefaultMaxMP)

	p := r.GetOrCreate("alice")
	if p.Active != 1 {
		t.Errorf("active slot = %d, want 1", p.Active)
	}
	if len(p.Slots[0].Cards) != len(BaseDeck) {
		t.Errorf("slot 1 has %d cards, want %d", len(p.Slots[0].Cards), len(BaseDeck))
	}
	for i, s := range p.Slots {
		if want := fmt.Sprintf("Deck %d", i+1); s.Name != want {
			t.Errorf("slot %d name = %q, want %q", i+1, s.Name, want)
		}
		if i > 0 && len(s.Cards) != 0 {
			t.Errorf("slot %d should start empty, has %d cards", i+1, len(s.Cards))
		}
		if s.HandSize != DefaultHandSize || s.CurrentMP != DefaultMaxMP || s.MaxMP != DefaultMaxMP {
			t.Errorf("slot %d defaults: hand %d, MP %d/%d", i+1, s.HandSize, s.CurrentMP, s.MaxMP)
		}
	}
}

func TestRegistryGetOrCreateIsIdempotent(t *testing.T) {
	r := NewRegistry(BaseDeck, DefaultHandSize, DefaultMaxMP)

	first := r.GetOrCreate("alice")
	first.Slots[0].Cards = first.Slots[0].Cards[:1]
	if again := r.GetOrCreate("alice"); again != first {
		t.Fatal("second lookup returned a different record")
	}
	if _, ok := r.Get("bob"); ok {
		t.Error("Get must not create records")
	}
	if r.Len() != 1 {
		t.Errorf("registry has %d players, want 1", r.Len())
	}
}

func TestRegistryActiveSlot(t *testing.T) {
	r := NewRegistry(BaseDeck, DefaultHandSize, DefaultMaxMP)

	s := r.ActiveSlot("alice")
	if r.Len() != 1 {
		t.Fatalf("ActiveSlot did not create the player")
	}
	p, _ := r.Get("alice")
	if s != p.Slots[0] {
		t.Error("new player's active slot is not slot 1")
	}

	if _, err := p.SwitchSlot(4); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if r.ActiveSlot("alice") != p.Slots[3] {
		t.Error("ActiveSlot did not follow the switch")
	}
	if r.Len() != 1 {
		t.Errorf("registry has %d players, want 1", r.Len())
	}
}

func TestRegistryCopiesBase(t *testing.T) {
	base := cards("A", "B")
	r := NewRegistry(base, DefaultHandSize, DefaultMaxMP)
	base[0] = "Z"

	a := r.GetOrCreate("alice")
	a.Slots[0].Cards[1] = "Y"

	b := r.GetOrCreate("bob")
	assertCards(t, "bob's pool", b.Slots[0].Cards, "A", "B")
}

func TestSwitchSlotResetsHandAndMP(t *testing.T) {
	p := NewPlayerRecord("alice", BaseDeck, DefaultHandSize, DefaultMaxMP)
	s1 := p.Slots[0]
	if _, err := s1.Draw(seeded(1)); err != nil {
		t.Fatalf("draw: %v", err)
	}
	s1.CurrentMP = 2

	// Switching into the already-active slot still resets it.
	if _, err := p.SwitchSlot(1); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if len(s1.Hand) != 0 || s1.CurrentMP != s1.MaxMP {
		t.Errorf("slot 1 not reset: hand %v, MP %d/%d", s1.Hand, s1.CurrentMP, s1.MaxMP)
	}

	s3 := p.Slots[2]
	s3.Hand = cards("X")
	s3.CurrentMP = 0
	got, err := p.SwitchSlot(3)
	if err != nil {
		t.Fatalf("switch: %v", err)
	}
	if got != s3 || p.Active != 3 || p.ActiveSlot() != s3 {
		t.Fatalf("active slot not 3")
	}
	if len(s3.Hand) != 0 || s3.CurrentMP != s3.MaxMP {
		t.Errorf("slot 3 not reset: hand %v, MP %d/%d", s3.Hand, s3.CurrentMP, s3.MaxMP)
	}

	for _, n := range []int{0, 6} {
		if _, err := p.SwitchSlot(n); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("SwitchSlot(%d): expected ErrOutOfRange, got %v", n, err)
		}
	}
	if p.Active != 3 {
		t.Errorf("rejected switch changed active slot to %d", p.Active)
	}
}

func TestDeckByNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decks.yaml")
	data := `decks:
  - name: Starter
    cards:
      - name: "Fire - 3 Mp"
        count: 2
      - name: "Bolt - 2 Mp"
  - name: Control
    cards:
      - name: "Wall - 3 Mp"
        count: 3
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	name, deck, err := DeckByNumber(path, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Starter" {
		t.Errorf("name = %q, want Starter", name)
	}
	assertCards(t, "deck", deck, "Fire - 3 Mp", "Fire - 3 Mp", "Bolt - 2 Mp")

	if _, _, err := DeckByNumber(path, 3); err == nil {
		t.Error("expected error for missing deck 3")
	}

	df, err := ReadDeckFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(df.Decks) != 2 || len(df.Decks[1].Expand()) != 3 {
		t.Errorf("unexpected deck file: %+v", df)
	}
}
