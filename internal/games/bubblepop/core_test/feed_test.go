package core_test

import (
	"testing"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

func TestSequenceFeed(t *testing.T) {
	f := core.NewSequenceFeed(core.ColorRed, core.ColorBlue)
	expected := []core.Color{core.ColorRed, core.ColorBlue, core.ColorRed, core.ColorBlue}
	for i, want := range expected {
		if got := f.Next(nil); got != want {
			t.Errorf("Next() #%d = %v, expected %v", i, got, want)
		}
	}

	if got := core.NewSequenceFeed().Next(nil); got != core.Palette()[0] {
		t.Errorf("empty feed Next() = %v, expected %v", got, core.Palette()[0])
	}
}

func TestRandomFeedUsesFieldColors(t *testing.T) {
	g := mustField(t, core.HexGrid{}, 4, 4, "BB#Y")
	f := core.NewRandomFeed(1, 6)

	for i := 0; i < 50; i++ {
		c := f.Next(g)
		if c != core.ColorBlue && c != core.ColorYellow {
			t.Fatalf("Next() = %v, expected blue or yellow", c)
		}
	}
}

func TestRandomFeedEmptyField(t *testing.T) {
	g := core.NewGraph(core.HexGrid{}, 4, 4)
	f := core.NewRandomFeed(1, 2)

	for i := 0; i < 50; i++ {
		c := f.Next(g)
		if c != core.ColorRed && c != core.ColorGreen {
			t.Fatalf("Next() = %v, expected one of the first two colors", c)
		}
	}
}

func TestRandomFeedDeterminism(t *testing.T) {
	g := mustField(t, core.HexGrid{}, 6, 4, "RGBYPO")
	a := core.NewRandomFeed(42, 6)
	b := core.NewRandomFeed(42, 6)

	for i := 0; i < 20; i++ {
		if ca, cb := a.Next(g), b.Next(g); ca != cb {
			t.Fatalf("Next() #%d differs: %v vs %v", i, ca, cb)
		}
	}
}

func TestEventQueue(t *testing.T) {
	q := core.NewEventQueue()
	q.Push(core.Event{Kind: core.EventShoot})
	q.Push(core.Event{Kind: core.EventHit})

	if q.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", q.Len())
	}
	events := q.Consume()
	if len(events) != 2 || events[0].Kind != core.EventShoot || events[1].Kind != core.EventHit {
		t.Errorf("Consume() = %v, expected [shoot hit]", kinds(events))
	}
	if q.Len() != 0 || len(q.Consume()) != 0 {
		t.Error("queue not empty after Consume()")
	}
}
